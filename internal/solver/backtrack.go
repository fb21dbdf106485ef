package solver

import (
	"errors"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// ErrUnsolvable is returned when recursive search exhausts every branch
// without completing the grid.
var ErrUnsolvable = errors.New("solver: no solution exists")

// Solve completes g via recursive backtracking with minimum-remaining-
// values cell ordering, the fallback path for puzzles the technique ladder
// cannot finish.
func Solve(g *engine.Grid) (*engine.Grid, error) {
	clone := g.Clone()
	if backtrack(clone) {
		return clone, nil
	}
	return nil, ErrUnsolvable
}

// CountSolutions counts solutions of g up to limit (0 means unbounded),
// stopping early once limit is reached. Used by the generator to test
// uniqueness via CountSolutions(g, 2).
func CountSolutions(g *engine.Grid, limit int) int {
	clone := g.Clone()
	count := 0
	countBacktrack(clone, limit, &count)
	return count
}

// HasUniqueSolution reports whether g has exactly one solution.
func HasUniqueSolution(g *engine.Grid) bool {
	return CountSolutions(g, 2) == 1
}

func mrvCell(g *engine.Grid) (position.Position, bool) {
	best := -1
	bestCount := 10
	for idx, c := range g.Cells {
		if c.Value != 0 {
			continue
		}
		n := c.Candidates.Count()
		if n == 0 {
			return position.Position{}, false
		}
		if n < bestCount {
			bestCount = n
			best = idx
			if n == 1 {
				break
			}
		}
	}
	if best < 0 {
		return position.Position{}, false
	}
	return position.FromIndex(best), true
}

func backtrack(g *engine.Grid) bool {
	pos, ok := mrvCell(g)
	if !ok {
		return g.IsComplete()
	}
	cell := g.Cells[pos.Index()]
	for _, d := range cell.Candidates.Digits() {
		snapshot := *g
		if g.SetValue(pos, d) == nil {
			if backtrack(g) {
				return true
			}
		}
		*g = snapshot
	}
	return false
}

func countBacktrack(g *engine.Grid, limit int, count *int) {
	if limit > 0 && *count >= limit {
		return
	}
	pos, ok := mrvCell(g)
	if !ok {
		if g.IsComplete() {
			*count++
		}
		return
	}
	cell := g.Cells[pos.Index()]
	for _, d := range cell.Candidates.Digits() {
		if limit > 0 && *count >= limit {
			return
		}
		snapshot := *g
		if g.SetValue(pos, d) == nil {
			countBacktrack(g, limit, count)
		}
		*g = snapshot
	}
}
