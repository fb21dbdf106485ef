package engine_test

import (
	"testing"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

const s1 = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

func TestParseRoundTrip(t *testing.T) {
	g, err := engine.ParseGrid(s1)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	want := "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	g2, err := engine.ParseGrid(g.String())
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	for i := range g.Cells {
		if g.Cells[i].Given != g2.Cells[i].Given || g.Cells[i].Value != g2.Cells[i].Value {
			t.Fatalf("round trip mismatch at cell %d", i)
		}
	}
}

func TestParseIgnoresWhitespace(t *testing.T) {
	if _, err := engine.ParseGrid(s1 + "  \n\t"); err != nil {
		t.Fatalf("surrounding whitespace should be ignored: %v", err)
	}
}

func TestParseRejectsBadLength(t *testing.T) {
	if _, err := engine.ParseGrid("123"); err != engine.ErrParseFailure {
		t.Errorf("expected ErrParseFailure, got %v", err)
	}
}

func TestParseRejectsBadChar(t *testing.T) {
	bad := s1[:80] + "x"
	if _, err := engine.ParseGrid(bad); err != engine.ErrParseFailure {
		t.Errorf("expected ErrParseFailure, got %v", err)
	}
}

func TestSetValueRejectsGiven(t *testing.T) {
	g, _ := engine.ParseGrid(s1)
	pos := position.New(0, 0) // '5', a given
	if err := g.SetValue(pos, 9); err != engine.ErrCellIsGiven {
		t.Errorf("expected ErrCellIsGiven, got %v", err)
	}
}

func TestSetValueRejectsOutOfRange(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	pos := position.New(0, 3)
	if err := g.SetValue(pos, 0); err != engine.ErrValueOutOfRange {
		t.Errorf("expected ErrValueOutOfRange, got %v", err)
	}
	if err := g.SetValue(pos, 10); err != engine.ErrValueOutOfRange {
		t.Errorf("expected ErrValueOutOfRange, got %v", err)
	}
}

func TestSetValueRejectsConstraintViolation(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	if err := g.SetValue(position.New(0, 0), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := g.SetValue(position.New(0, 1), 5)
	if _, ok := err.(*engine.ConstraintViolationError); !ok {
		t.Errorf("expected ConstraintViolationError, got %v", err)
	}
}

func TestSetValueRemovesPeerCandidates(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	if err := g.SetValue(position.New(0, 0), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Cells[position.New(0, 1).Index()].Candidates.Has(5) {
		t.Errorf("row peer should have lost candidate 5")
	}
	if g.Cells[position.New(1, 0).Index()].Candidates.Has(5) {
		t.Errorf("column peer should have lost candidate 5")
	}
	if g.Cells[position.New(1, 1).Index()].Candidates.Has(5) {
		t.Errorf("box peer should have lost candidate 5")
	}
	if g.Cells[position.New(5, 5).Index()].Candidates.Has(5) == false {
		t.Errorf("unrelated cell should still have candidate 5")
	}
}

func TestClearRestoresCandidate(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	if err := g.SetValue(position.New(0, 0), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	peer := position.New(0, 1)
	if err := g.Clear(position.New(0, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.Cells[peer.Index()].Candidates.Has(5) {
		t.Errorf("clearing should restore candidate 5 to a peer with no other blocker")
	}
}

func TestClearDoesNotRestoreWhenStillBlocked(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	// Two placed 5s both block candidate 5 at (0,1): (0,0) through the row
	// and box, (4,1) through the column.
	if err := g.SetValue(position.New(0, 0), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetValue(position.New(4, 1), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Clear(position.New(0, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Cells[position.New(0, 1).Index()].Candidates.Has(5) {
		t.Errorf("candidate 5 should remain blocked by the column peer at (4,1)")
	}
}

func TestClearRejectsGiven(t *testing.T) {
	g, _ := engine.ParseGrid(s1)
	if err := g.Clear(position.New(0, 0)); err != engine.ErrCellIsGiven {
		t.Errorf("expected ErrCellIsGiven, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, _ := engine.ParseGrid(s1)
	clone := g.Clone()
	if err := clone.SetValue(position.New(0, 2), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Cells[position.New(0, 2).Index()].Value != 0 {
		t.Errorf("mutating the clone should not affect the original")
	}
}

func TestIsCompleteAndValidate(t *testing.T) {
	g, _ := engine.ParseGrid(s1)
	if g.IsComplete() {
		t.Errorf("a puzzle with empties should not be complete")
	}
	ok, violations := g.Validate()
	if !ok || len(violations) != 0 {
		t.Errorf("a freshly parsed valid puzzle should have no violations, got %v", violations)
	}
}

func TestXSudokuDiagonalConstraint(t *testing.T) {
	g := engine.NewGrid(engine.VariantXSudoku, nil)
	if err := g.SetValue(position.New(0, 0), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := g.SetValue(position.New(4, 4), 5)
	if _, ok := err.(*engine.ConstraintViolationError); !ok {
		t.Errorf("expected diagonal constraint violation, got %v", err)
	}
	// Off-diagonal duplicate of 5 should be fine w.r.t. the diagonal rule
	// (it would still collide with row/col/box elsewhere, so pick a cell
	// that shares none of those with (0,0)).
	if err := g.SetValue(position.New(4, 5), 5); err != nil {
		t.Errorf("off-diagonal placement should not trigger the diagonal constraint: %v", err)
	}
}

func TestKillerCageSumAndUniqueness(t *testing.T) {
	cage := engine.Cage{Cells: []position.Position{position.New(0, 0), position.New(0, 1), position.New(1, 0)}, Sum: 15}
	g := engine.NewGrid(engine.VariantKiller, []engine.Cage{cage})

	if err := g.SetValue(position.New(0, 0), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetValue(position.New(0, 1), 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Last cell must be exactly 4 to hit the target sum of 15.
	err := g.SetValue(position.New(1, 0), 5)
	if _, ok := err.(*engine.ConstraintViolationError); !ok {
		t.Errorf("expected cage violation for wrong sum/duplicate, got %v", err)
	}
	if err := g.SetValue(position.New(1, 0), 4); err != nil {
		t.Errorf("unexpected error completing the cage at the right sum: %v", err)
	}
}

func TestThermoMonotoneIncrease(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	path := []position.Position{position.New(0, 0), position.New(0, 1), position.New(0, 2)}
	g.AttachThermo(path)

	if err := g.SetValue(position.New(0, 1), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetValue(position.New(0, 0), 6); err == nil {
		t.Errorf("expected a violation placing 6 before 5 on the thermo bulb")
	}
	if err := g.SetValue(position.New(0, 2), 4); err == nil {
		t.Errorf("expected a violation placing 4 after 5 on the thermo")
	}
	if err := g.SetValue(position.New(0, 0), 3); err != nil {
		t.Errorf("3 < 5 should be legal on the bulb: %v", err)
	}
}

func TestGermanWhispersRequiresDifferenceOfFive(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	line := []position.Position{position.New(0, 0), position.New(0, 1)}
	g.AttachGermanWhispers(line)

	if err := g.SetValue(position.New(0, 0), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetValue(position.New(0, 1), 8); err == nil {
		t.Errorf("expected a violation: |8-5|=3 < 5")
	}
	if err := g.SetValue(position.New(0, 1), 1); err == nil {
		t.Errorf("|1-5|=4 should still fail the whispers rule: got nil error")
	}
}

func TestGermanWhispersAcceptsValidGap(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	g.AttachGermanWhispers([]position.Position{position.New(0, 0), position.New(0, 1)})
	if err := g.SetValue(position.New(0, 0), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetValue(position.New(0, 1), 9); err != nil {
		t.Errorf("|9-1|=8 should satisfy the whispers rule: %v", err)
	}
}

func TestRenbanRequiresConsecutiveDistinctRun(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	line := []position.Position{position.New(0, 0), position.New(0, 1), position.New(0, 2)}
	g.AttachRenban(line)

	if err := g.SetValue(position.New(0, 0), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetValue(position.New(0, 1), 6); err == nil {
		t.Errorf("expected a violation: 3 and 6 cannot both fit in a 3-cell consecutive run")
	}
	if err := g.SetValue(position.New(0, 1), 4); err != nil {
		t.Errorf("3,4 should be a valid partial consecutive run: %v", err)
	}
	if err := g.SetValue(position.New(0, 2), 4); err == nil {
		t.Errorf("expected a duplicate-value violation")
	}
}
