package position_test

import (
	"testing"

	"github.com/kvanta/ukodus-core/internal/position"
)

func TestIndexRoundTrip(t *testing.T) {
	for idx := 0; idx < position.TotalCells; idx++ {
		p := position.FromIndex(idx)
		if !p.Valid() {
			t.Fatalf("FromIndex(%d) produced invalid position %v", idx, p)
		}
		if got := p.Index(); got != idx {
			t.Errorf("Index() round-trip failed: idx=%d -> %v -> %d", idx, p, got)
		}
	}
}

func TestBox(t *testing.T) {
	cases := []struct {
		p    position.Position
		want int
	}{
		{position.New(0, 0), 0},
		{position.New(2, 2), 0},
		{position.New(0, 3), 1},
		{position.New(4, 4), 4},
		{position.New(8, 8), 8},
		{position.New(6, 0), 6},
	}
	for _, c := range cases {
		if got := c.p.Box(); got != c.want {
			t.Errorf("Box(%v) = %d, want %d", c.p, got, c.want)
		}
	}
}

func TestDiagonals(t *testing.T) {
	if !position.New(4, 4).OnMainDiagonal() {
		t.Errorf("(4,4) should be on the main diagonal")
	}
	if position.New(4, 5).OnMainDiagonal() {
		t.Errorf("(4,5) should not be on the main diagonal")
	}
	if !position.New(0, 8).OnAntiDiagonal() {
		t.Errorf("(0,8) should be on the anti-diagonal")
	}
	if !position.New(8, 0).OnAntiDiagonal() {
		t.Errorf("(8,0) should be on the anti-diagonal")
	}
	if position.New(0, 0).OnAntiDiagonal() {
		t.Errorf("(0,0) should not be on the anti-diagonal")
	}
}

func TestSamePeerGroupAs(t *testing.T) {
	a := position.New(0, 0)
	sameRow := position.New(0, 5)
	sameCol := position.New(5, 0)
	sameBox := position.New(1, 1)
	unrelated := position.New(4, 5)

	for _, q := range []position.Position{sameRow, sameCol, sameBox} {
		if !a.SamePeerGroupAs(q) {
			t.Errorf("%v should be a peer of %v", q, a)
		}
	}
	if a.SamePeerGroupAs(unrelated) {
		t.Errorf("%v should not be a peer of %v", unrelated, a)
	}
	if a.SamePeerGroupAs(a) {
		t.Errorf("a cell should not be its own peer")
	}
}

func TestValid(t *testing.T) {
	if position.New(-1, 0).Valid() {
		t.Errorf("row -1 should be invalid")
	}
	if position.New(0, 9).Valid() {
		t.Errorf("col 9 should be invalid")
	}
	if !position.New(8, 8).Valid() {
		t.Errorf("(8,8) should be valid")
	}
}
