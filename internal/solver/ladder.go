package solver

import (
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/logger"
	"github.com/kvanta/ukodus-core/internal/observer"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detector scans a grid for every instance of one technique and returns the
// Steps it finds. A detector never mutates g.
type detector func(g *engine.Grid) []Step

type rung struct {
	technique Technique
	detect    detector
}

// ladder lists every rung in ascending SE order. The solve loop always
// tries rungs top to bottom and applies the first one that fires, then
// restarts from the top, mirroring how a human solver works a grid.
var ladder = []rung{
	{HiddenSingle, detectHiddenSingles},
	{NakedSingle, detectNakedSingles},
	{PointingPair, detectPointingPairs},
	{BoxLineReduction, detectBoxLineReduction},
	{NakedPair, detectNakedSubsets(2, NakedPair)},
	{XWing, detectFish(2, XWing)},
	{HiddenPair, detectHiddenSubsets(2, HiddenPair)},
	{NakedTriple, detectNakedSubsets(3, NakedTriple)},
	{HiddenTriple, detectHiddenSubsets(3, HiddenTriple)},
	{EmptyRectangle, detectEmptyRectangle},
	{NakedQuad, detectNakedSubsets(4, NakedQuad)},
	{HiddenQuad, detectHiddenSubsets(4, HiddenQuad)},
	{Swordfish, detectFish(3, Swordfish)},
	{XYWing, detectXYWing},
	{XYZWing, detectXYZWing},
	{WWing, detectWWing},
	{UniqueRectangleType1, detectUniqueRectangleType1},
	{UniqueRectangleType2, detectUniqueRectangleType2},
	{UniqueRectangleType5, detectUniqueRectangleType5},
	{HiddenRectangle, detectHiddenRectangle},
	{AvoidableRectangle, detectAvoidableRectangle},
	{UniqueRectangleType3, detectUniqueRectangleType3},
	{UniqueRectangleType6, detectUniqueRectangleType6},
	{UniqueRectangleType4, detectUniqueRectangleType4},
	{ExtendedUniqueRectangle, detectExtendedUniqueRectangle},
	{WXYZWing, detectWXYZWing},
	{SimpleColoring, detectSimpleColoring},
	{ThreeDMedusa, detectThreeDMedusa},
	{Jellyfish, detectFish(4, Jellyfish)},
	{FinnedFish, detectFinnedFish},
	{SiameseFish, detectSiameseFish},
	{ALSXZ, detectALSXZ},
	{BUGPlusOne, detectBUGPlusOne},
	{FrankenFish, detectComplexFish(FrankenFish)},
	{XChain, detectXChain},
	{AIC, detectAIC},
	{SueDeCoq, detectSueDeCoq},
	{AlignedPairExclusion, detectAlignedPairExclusion},
	{MutantFish, detectComplexFish(MutantFish)},
	{ALSXYWing, detectALSXYWing},
	{ALSChain, detectALSChain},
	{AlignedTripleExclusion, detectAlignedTripleExclusion},
	{DeathBlossom, detectDeathBlossom},
	{KrakenFish, detectKrakenFish},
	{NishioForcingChain, detectNishioForcingChain},
	{CellForcingChain, detectCellForcingChain},
	{RegionForcingChain, detectRegionForcingChain},
	{DynamicForcingChain, detectDynamicForcingChain},
}

// nonForcingLadder is every rung up through the UR/BUG family, the set
// Dynamic FC propagates its branches with. It contains no forcing-chain
// rung, so Dynamic FC can never recurse into itself or another forcing
// chain. Assigned in init: the ladder's forcing rungs reach back to this
// variable through propagateFull, so an initializer expression would form
// an initialization cycle.
var nonForcingLadder []rung

func init() {
	cutoff := SERating(BUGPlusOne)
	for _, r := range ladder {
		if SERating(r.technique) <= cutoff {
			nonForcingLadder = append(nonForcingLadder, r)
		}
	}
}

// Result is the outcome of SolveWithTechniques.
type Result struct {
	Solved        bool
	Steps         []Step
	HardestUsed   Technique
	SERating      float64
	Difficulty    Difficulty
	UsedBacktrack bool
}

// Solver runs the technique ladder against a Grid, optionally notifying an
// observer of every placement/elimination/stall.
type Solver struct {
	Notifier *observer.Notifier
}

// New returns a Solver with no attached observer.
func New() *Solver {
	return &Solver{Notifier: &observer.Notifier{}}
}

// SolveWithTechniques repeatedly applies the first firing rung of the
// ladder until the grid is solved, stuck, or maxSteps is reached (0 means
// unbounded). When the ladder stalls and allowBacktrack is true, it falls
// back to recursive search to finish the grid, recording Backtracking as
// the hardest technique used.
func (s *Solver) SolveWithTechniques(g *engine.Grid, maxSteps int, allowBacktrack bool) Result {
	var res Result
	var hardest Technique
	// The Beginner/Easy tier adjustment keys off how much of the puzzle
	// was empty to begin with, so the count must be taken before any
	// placement.
	initialEmpty := position.TotalCells - g.FilledCount()

	for steps := 0; maxSteps == 0 || steps < maxSteps; {
		if g.IsComplete() {
			res.Solved = true
			break
		}
		step, ok := s.applyNextStep(g)
		if !ok {
			break
		}
		steps++
		res.Steps = append(res.Steps, step)
		if SERating(step.Technique) > SERating(hardest) {
			hardest = step.Technique
		}
	}

	if !res.Solved && !g.IsComplete() {
		if allowBacktrack {
			s.Notifier.Emit(observer.Event{Kind: observer.EventStall, Message: "ladder stalled, falling back to backtracking"})
			solved, err := Solve(g)
			if err == nil {
				*g = *solved
				res.Solved = true
				res.UsedBacktrack = true
				hardest = Backtracking
			}
		}
	} else if g.IsComplete() {
		res.Solved = true
	}

	res.HardestUsed = hardest
	res.SERating = SERating(hardest)
	res.Difficulty = DifficultyForTechnique(hardest, initialEmpty)
	return res
}

// applyNextStep finds the first firing rung, applies its first Step to g
// and returns it.
func (s *Solver) applyNextStep(g *engine.Grid) (Step, bool) {
	for _, r := range ladder {
		found := r.detect(g)
		if len(found) == 0 {
			continue
		}
		step := found[0]
		applyStep(g, step)
		s.emit(step)
		return step, true
	}
	return Step{}, false
}

func (s *Solver) emit(step Step) {
	if step.Action.Place {
		logger.Technique(step.Technique.String(), "place %d at %s", step.Action.Digit, step.Action.Pos)
		s.Notifier.Emit(observer.Event{Kind: observer.EventPlacement, Technique: step.Technique.String(), CellIndex: step.Action.Pos.Index(), Digit: step.Action.Digit, Message: step.Message})
		return
	}
	for _, e := range step.Action.Eliminate {
		logger.Technique(step.Technique.String(), "eliminate %d from %s", e.Digit, e.Pos)
		s.Notifier.Emit(observer.Event{Kind: observer.EventElimination, Technique: step.Technique.String(), CellIndex: e.Pos.Index(), Digit: e.Digit, Message: step.Message})
	}
}

// applyStep commits a Step's Action to g. It never fails: every detector is
// required to only ever report actions that are currently legal.
func applyStep(g *engine.Grid, step Step) {
	if step.Action.Place {
		g.SetValue(step.Action.Pos, step.Action.Digit)
		return
	}
	for _, e := range step.Action.Eliminate {
		g.RemoveCandidate(e.Pos, e.Digit)
	}
}

// GetHint returns the next single deduction the ladder would make, without
// mutating g. When no rung of the ladder fires, it falls back to a
// Backtracking hint derived from the full solution.
func GetHint(g *engine.Grid) (Hint, bool) {
	clone := g.Clone()
	for _, r := range ladder {
		found := r.detect(clone)
		if len(found) == 0 {
			continue
		}
		step := found[0]
		return Hint{Step: step, SERating: SERating(step.Technique), Difficulty: DifficultyForSE(SERating(step.Technique))}, true
	}
	return backtrackingHint(clone)
}

// backtrackingHint solves clone via recursive search and proposes the
// first empty cell's solved value as a SetValue hint, the fallback when
// no human technique applies.
func backtrackingHint(clone *engine.Grid) (Hint, bool) {
	solved, err := Solve(clone)
	if err != nil {
		return Hint{}, false
	}
	for idx, c := range clone.Cells {
		if c.Value != 0 {
			continue
		}
		pos := position.FromIndex(idx)
		v := solved.Cells[idx].Value
		step := Step{
			Technique:  Backtracking,
			Highlights: []position.Position{pos},
			Action:     Action{Place: true, Pos: pos, Digit: v},
			Message:    "backtracking: no human technique applies",
		}
		return Hint{Step: step, SERating: SERating(Backtracking), Difficulty: DifficultyForSE(SERating(Backtracking))}, true
	}
	return Hint{}, false
}

// RateDifficulty solves a copy of g with the full ladder and reports the
// resulting difficulty tier.
func RateDifficulty(g *engine.Grid) Difficulty {
	res := New().SolveWithTechniques(g.Clone(), 0, true)
	return res.Difficulty
}

// RateSE solves a copy of g with the full ladder and reports the resulting
// SE numeric rating.
func RateSE(g *engine.Grid) float64 {
	res := New().SolveWithTechniques(g.Clone(), 0, true)
	return res.SERating
}
