package solver

import (
	"testing"

	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// keepOnly narrows a cell's candidates to exactly the given digits.
func keepOnly(g *engine.Grid, p position.Position, digits ...int) {
	keep := bitset.Of(digits...)
	for d := 1; d <= 9; d++ {
		if !keep.Has(d) {
			g.RemoveCandidate(p, d)
		}
	}
}

// keepRowDigitAt removes digit d from every cell of row except the listed
// columns, sculpting a line's candidate layout for a single digit.
func keepRowDigitAt(g *engine.Grid, row, d int, cols ...int) {
	for c := 0; c < position.GridSize; c++ {
		if !containsInt(cols, c) {
			g.RemoveCandidate(position.New(row, c), d)
		}
	}
}

// keepColDigitAt is keepRowDigitAt's transpose.
func keepColDigitAt(g *engine.Grid, col, d int, rows ...int) {
	for r := 0; r < position.GridSize; r++ {
		if !containsInt(rows, r) {
			g.RemoveCandidate(position.New(r, col), d)
		}
	}
}

func hasElimination(steps []Step, p position.Position, d int) bool {
	for _, s := range steps {
		for _, e := range s.Action.Eliminate {
			if e.Pos == p && e.Digit == d {
				return true
			}
		}
	}
	return false
}

func countEliminations(steps []Step) int {
	n := 0
	for _, s := range steps {
		n += len(s.Action.Eliminate)
	}
	return n
}

func TestLadderSERatingsAreNondecreasing(t *testing.T) {
	prev := 0.0
	for _, r := range ladder {
		se := SERating(r.technique)
		if se <= 0 {
			t.Fatalf("rung %v has no SE rating", r.technique)
		}
		if se < prev {
			t.Errorf("ladder rung %v (SE %.1f) sits after a harder rung (SE %.1f)", r.technique, se, prev)
		}
		prev = se
	}
}

func TestNonForcingLadderStopsAtBUG(t *testing.T) {
	cutoff := SERating(BUGPlusOne)
	for _, r := range nonForcingLadder {
		if SERating(r.technique) > cutoff {
			t.Errorf("nonForcingLadder contains %v above the UR/BUG cutoff", r.technique)
		}
	}
	for _, r := range nonForcingLadder {
		switch r.technique {
		case NishioForcingChain, CellForcingChain, RegionForcingChain, DynamicForcingChain:
			t.Fatalf("nonForcingLadder must never contain a forcing chain, found %v", r.technique)
		}
	}
}

func TestClassifyFish(t *testing.T) {
	// rows 0-8, cols 9-17, boxes 18-26
	cases := []struct {
		bases, covers []int
		want          Technique
	}{
		{[]int{0, 1}, []int{9, 10}, TechniqueNone},
		{[]int{0, 2}, []int{18, 19}, FrankenFish},
		{[]int{18, 20}, []int{9, 12}, FrankenFish},
		{[]int{0, 18}, []int{9, 10}, MutantFish},
		{[]int{0, 9}, []int{18, 19}, MutantFish},
	}
	for _, c := range cases {
		if got := classifyFish(c.bases, c.covers); got != c.want {
			t.Errorf("classifyFish(%v, %v) = %v, want %v", c.bases, c.covers, got, c.want)
		}
	}
}

func TestDetectFinnedFishFrame(t *testing.T) {
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepRowDigitAt(g, 0, 1, 0, 4)
	keepRowDigitAt(g, 4, 1, 0, 2, 4)

	steps := detectFinnedFish(g)
	if len(steps) != 1 {
		t.Fatalf("expected exactly one finned fish, got %d", len(steps))
	}
	for _, want := range []position.Position{position.New(3, 0), position.New(5, 0)} {
		if !hasElimination(steps, want, 1) {
			t.Errorf("finned fish should clear digit 1 from %s", want)
		}
	}
	if countEliminations(steps) != 2 {
		t.Errorf("expected 2 eliminations, got %d", countEliminations(steps))
	}
}

func TestDetectSiameseFishCombinesTwoReadings(t *testing.T) {
	// Rows 0 and 4 confine digit 1 to {0,1} and {0,2}: reading column 1 as
	// the fin clears box 0, reading column 2 as the fin clears box 3, and
	// the fins sit in different boxes.
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepRowDigitAt(g, 0, 1, 0, 1)
	keepRowDigitAt(g, 4, 1, 0, 2)

	steps := detectSiameseFish(g)
	if len(steps) != 1 {
		t.Fatalf("expected exactly one siamese fish, got %d", len(steps))
	}
	wants := []position.Position{
		position.New(1, 0), position.New(2, 0), position.New(1, 2), position.New(2, 2),
		position.New(3, 0), position.New(5, 0), position.New(3, 1), position.New(5, 1),
	}
	for _, want := range wants {
		if !hasElimination(steps, want, 1) {
			t.Errorf("siamese fish should clear digit 1 from %s", want)
		}
	}
	if countEliminations(steps) != len(wants) {
		t.Errorf("expected %d combined eliminations, got %d", len(wants), countEliminations(steps))
	}
}

func TestDetectComplexFishFranken(t *testing.T) {
	// Base rows 0 and 2 covered by boxes 0 and 1: a row/box mix with no
	// column sector, the franken shape.
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepRowDigitAt(g, 0, 5, 0, 4)
	keepRowDigitAt(g, 2, 5, 1, 3)

	franken := detectComplexFish(FrankenFish)(g)
	if len(franken) != 1 {
		t.Fatalf("expected exactly one franken fish, got %d", len(franken))
	}
	for c := 0; c <= 5; c++ {
		if !hasElimination(franken, position.New(1, c), 5) {
			t.Errorf("franken fish should clear digit 5 from r1c%d", c)
		}
	}
	if countEliminations(franken) != 6 {
		t.Errorf("expected 6 eliminations, got %d", countEliminations(franken))
	}

	if mutant := detectComplexFish(MutantFish)(g); len(mutant) != 0 {
		t.Errorf("a row/box frame must not be reported as mutant, got %d steps", len(mutant))
	}
}

func TestDetectThreeDMedusaClearsCandidateSeeingBothColors(t *testing.T) {
	// Digit 1 forms a four-node strong-link path (0,0)-(0,8)-(5,8)-(5,0);
	// its endpoints land on opposite colors in column 0, so every other
	// column-0 candidate of digit 1 sees both colors.
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepRowDigitAt(g, 0, 1, 0, 8)
	keepRowDigitAt(g, 5, 1, 0, 8)
	keepColDigitAt(g, 8, 1, 0, 5)

	steps := detectThreeDMedusa(g)
	if len(steps) != 1 {
		t.Fatalf("expected exactly one medusa step, got %d", len(steps))
	}
	for _, r := range []int{1, 2, 3, 4, 6, 7, 8} {
		if !hasElimination(steps, position.New(r, 0), 1) {
			t.Errorf("medusa should clear digit 1 from r%dc0", r)
		}
	}
	if countEliminations(steps) != 7 {
		t.Errorf("expected 7 eliminations, got %d", countEliminations(steps))
	}
}

func TestDetectSueDeCoqBasicPattern(t *testing.T) {
	// Intersection {r0c0, r0c1} holds {1,2,3,4}; r0c5 = {1,3} in the row,
	// r1c2 = {2,4} in the box, disjoint pairs drawn from the same pool.
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepOnly(g, position.New(0, 0), 1, 2)
	keepOnly(g, position.New(0, 1), 3, 4)
	keepOnly(g, position.New(0, 5), 1, 3)
	keepOnly(g, position.New(1, 2), 2, 4)

	steps := detectSueDeCoq(g)
	if len(steps) != 1 {
		t.Fatalf("expected exactly one sue de coq, got %d", len(steps))
	}
	for _, d := range []int{1, 3} {
		if !hasElimination(steps, position.New(0, 3), d) {
			t.Errorf("row digits %d should leave r0c3", d)
		}
	}
	for _, d := range []int{2, 4} {
		if !hasElimination(steps, position.New(2, 2), d) {
			t.Errorf("box digits %d should leave r2c2", d)
		}
	}
	if hasElimination(steps, position.New(0, 5), 1) || hasElimination(steps, position.New(1, 2), 2) {
		t.Errorf("the paired bivalue cells must keep their own digits")
	}
	if countEliminations(steps) != 22 {
		t.Errorf("expected 22 eliminations, got %d", countEliminations(steps))
	}
}

func TestDetectUniqueRectangleType5Diagonal(t *testing.T) {
	// Extras on the diagonal corners r0c0 and r1c3, both {4,7,9}.
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepOnly(g, position.New(0, 0), 4, 7, 9)
	keepOnly(g, position.New(0, 3), 4, 7)
	keepOnly(g, position.New(1, 0), 4, 7)
	keepOnly(g, position.New(1, 3), 4, 7, 9)

	steps := detectUniqueRectangleType5(g)
	if len(steps) != 1 {
		t.Fatalf("expected exactly one UR type 5, got %d", len(steps))
	}
	wants := []position.Position{
		position.New(0, 4), position.New(0, 5), position.New(1, 1), position.New(1, 2),
	}
	for _, want := range wants {
		if !hasElimination(steps, want, 9) {
			t.Errorf("UR type 5 should clear 9 from %s", want)
		}
	}
	if countEliminations(steps) != len(wants) {
		t.Errorf("expected %d eliminations, got %d", len(wants), countEliminations(steps))
	}
}

func TestDetectUniqueRectangleType6XWing(t *testing.T) {
	// Bivalue corners on one diagonal, digit 4 confined to the rectangle
	// columns in both rows: placing 4 on a roof corner would complete the
	// deadly frame.
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepOnly(g, position.New(0, 0), 4, 7)
	keepOnly(g, position.New(1, 3), 4, 7)
	keepOnly(g, position.New(0, 3), 1, 4, 7)
	keepOnly(g, position.New(1, 0), 2, 4, 7)
	keepRowDigitAt(g, 0, 4, 0, 3)
	keepRowDigitAt(g, 1, 4, 0, 3)

	steps := detectUniqueRectangleType6(g)
	if len(steps) != 1 {
		t.Fatalf("expected exactly one UR type 6, got %d", len(steps))
	}
	if !hasElimination(steps, position.New(0, 3), 4) || !hasElimination(steps, position.New(1, 0), 4) {
		t.Errorf("UR type 6 should clear 4 from both roof corners")
	}
	if countEliminations(steps) != 2 {
		t.Errorf("expected 2 eliminations, got %d", countEliminations(steps))
	}
}

func TestDetectExtendedUniqueRectangle(t *testing.T) {
	// Five cells of a 2x3 frame in band 0 confined to {1,2,3}; the sixth
	// must escape the set.
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepOnly(g, position.New(0, 0), 1, 2)
	keepOnly(g, position.New(0, 4), 2, 3)
	keepOnly(g, position.New(0, 8), 1, 3)
	keepOnly(g, position.New(1, 0), 2, 3)
	keepOnly(g, position.New(1, 4), 1, 3)

	steps := detectExtendedUniqueRectangle(g)
	if len(steps) != 1 {
		t.Fatalf("expected exactly one extended UR, got %d", len(steps))
	}
	for _, d := range []int{1, 2, 3} {
		if !hasElimination(steps, position.New(1, 8), d) {
			t.Errorf("extended UR should clear %d from r1c8", d)
		}
	}
	if countEliminations(steps) != 3 {
		t.Errorf("expected 3 eliminations, got %d", countEliminations(steps))
	}
}

func TestDetectDeathBlossomStemAndPetals(t *testing.T) {
	// Stem r4c4 = {1,2}; petals {r4c0,r4c1} (holds 1) and {r4c7,r4c8}
	// (holds 2) both carry 8 and 9, so one of them locks whichever way the
	// stem falls.
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepOnly(g, position.New(4, 4), 1, 2)
	keepOnly(g, position.New(4, 0), 1, 9)
	keepOnly(g, position.New(4, 1), 1, 8)
	keepOnly(g, position.New(4, 7), 2, 9)
	keepOnly(g, position.New(4, 8), 2, 8)

	steps := detectDeathBlossom(g)
	if len(steps) == 0 {
		t.Fatalf("expected at least one death blossom step")
	}
	if !hasElimination(steps, position.New(4, 2), 8) {
		t.Errorf("death blossom should clear 8 from r4c2")
	}
	for _, s := range steps {
		for _, e := range s.Action.Eliminate {
			if e.Pos == position.New(4, 4) {
				t.Fatalf("the stem cell must never lose a candidate to its own blossom")
			}
		}
	}
}

func TestDetectAvoidableRectangle(t *testing.T) {
	// Three non-given placements: 5 in the empty corner's row and column
	// partners, 7 on the diagonal. Completing the frame with 7 would allow
	// a row swap into a second solution.
	g := engine.NewGrid(engine.VariantClassic, nil)
	for _, place := range []struct {
		pos position.Position
		v   int
	}{
		{position.New(0, 3), 5},
		{position.New(1, 0), 5},
		{position.New(1, 3), 7},
	} {
		if err := g.SetValue(place.pos, place.v); err != nil {
			t.Fatalf("placing %d at %s: %v", place.v, place.pos, err)
		}
	}

	steps := detectAvoidableRectangle(g)
	if len(steps) != 1 {
		t.Fatalf("expected exactly one avoidable rectangle, got %d", len(steps))
	}
	if !hasElimination(steps, position.New(0, 0), 7) {
		t.Errorf("avoidable rectangle should clear 7 from the empty corner")
	}
	if countEliminations(steps) != 1 {
		t.Errorf("expected 1 elimination, got %d", countEliminations(steps))
	}

	// The same frame built from given clues pins the solution, so no
	// second solution exists and nothing may be eliminated.
	h := engine.NewGrid(engine.VariantClassic, nil)
	h.PlaceGiven(position.New(0, 3), 5)
	h.PlaceGiven(position.New(1, 0), 5)
	h.PlaceGiven(position.New(1, 3), 7)
	h.RecalculateCandidates()
	if got := detectAvoidableRectangle(h); len(got) != 0 {
		t.Errorf("given corners must never form an avoidable rectangle, got %d steps", len(got))
	}
}

func TestDetectAlignedPairExclusion(t *testing.T) {
	// Two {1,2} cells in row 0: the only legal joint assignments are (1,2)
	// and (2,1), so every common peer loses both digits.
	g := engine.NewGrid(engine.VariantClassic, nil)
	keepOnly(g, position.New(0, 0), 1, 2)
	keepOnly(g, position.New(0, 1), 1, 2)

	steps := detectAlignedPairExclusion(g)
	if len(steps) != 1 {
		t.Fatalf("expected exactly one aligned pair exclusion, got %d", len(steps))
	}
	for _, d := range []int{1, 2} {
		if !hasElimination(steps, position.New(0, 5), d) {
			t.Errorf("common row peer should lose %d", d)
		}
		if !hasElimination(steps, position.New(2, 2), d) {
			t.Errorf("common box peer should lose %d", d)
		}
	}
	if hasElimination(steps, position.New(0, 5), 3) {
		t.Errorf("digits outside the assignments must survive")
	}
	if countEliminations(steps) != 26 {
		t.Errorf("expected 26 eliminations, got %d", countEliminations(steps))
	}
}
