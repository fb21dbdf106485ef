// Package generator builds uniquely-solvable puzzles at a chosen
// difficulty by synthesizing a full grid, then digging cells back out
// under a uniqueness constraint.
package generator

import (
	"errors"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/logger"
	"github.com/kvanta/ukodus-core/internal/position"
	"github.com/kvanta/ukodus-core/internal/rng"
	"github.com/kvanta/ukodus-core/internal/solver"
)

// Symmetry controls which cells are dug together during digging.
type Symmetry int

const (
	SymmetryNone Symmetry = iota
	SymmetryRot180
	SymmetryRot90
	SymmetryHorizontal
	SymmetryVertical
	SymmetryDiagonal
)

// SECap above which the generator stops attempting a non-trivial symmetry,
// mirroring for_se_rating's "drops to None above 6.0".
const symmetrySECutoff = 6.0

// Config tunes a single generation run.
type Config struct {
	Variant     engine.Variant
	Target      solver.Difficulty
	Symmetry    Symmetry
	Seed        uint64
	MaxAttempts int
	MinClues    int
	MaxClues    int
	// MinSE/MaxSE, when MaxSE > 0, additionally constrain accepted
	// puzzles to an SE window.
	MinSE, MaxSE float64
}

// Preset returns a Config tuned for the named tier with sensible
// defaults.
func Preset(target solver.Difficulty, seed uint64) Config {
	return Config{
		Variant:     engine.VariantClassic,
		Target:      target,
		Symmetry:    SymmetryRot180,
		Seed:        seed,
		MaxAttempts: 40,
		MinClues:    17,
		MaxClues:    60,
	}
}

// ForSERating clamps target to [1.5, 11.0], derives its tier, a givens
// window, an attempt count, a symmetry (dropped to None above the 6.0 SE
// cutoff) and a tolerance window around target: +/-0.3 at or below 5.0,
// else +/-0.5.
func ForSERating(target float64, seed uint64) Config {
	if target < 1.5 {
		target = 1.5
	}
	if target > 11.0 {
		target = 11.0
	}
	tier := solver.DifficultyForSE(target)
	tolerance := 0.5
	if target <= 5.0 {
		tolerance = 0.3
	}
	sym := SymmetryRot180
	if target > symmetrySECutoff {
		sym = SymmetryNone
	}
	minClues, maxClues := 22, 60
	switch {
	case tier <= solver.Easy:
		minClues, maxClues = 32, 45
	case tier <= solver.Medium:
		minClues, maxClues = 28, 36
	case tier <= solver.Hard:
		minClues, maxClues = 24, 30
	default:
		minClues, maxClues = 17, 26
	}
	return Config{
		Variant:     engine.VariantClassic,
		Target:      tier,
		Symmetry:    sym,
		Seed:        seed,
		MaxAttempts: 60,
		MinClues:    minClues,
		MaxClues:    maxClues,
		MinSE:       target - tolerance,
		MaxSE:       target + tolerance,
	}
}

// ErrGenerationFailed is returned when no attempt within MaxAttempts
// synthesized a filled grid, so there is no candidate puzzle to fall back
// on; otherwise Generate returns the closest candidate it found.
var ErrGenerationFailed = errors.New("generator: failed to produce a puzzle within the attempt budget")

// Puzzle is one generated puzzle plus the metadata recorded about it.
type Puzzle struct {
	Grid       *engine.Grid
	Solution   *engine.Grid
	Difficulty solver.Difficulty
	SERating   float64
	Seed       uint64
}

// Generate synthesizes a filled grid, then digs cells out under a
// uniqueness test, tracking the best candidate seen so that a caller who
// cannot hit the target tier exactly still gets the closest puzzle
// found.
func Generate(cfg Config) (Puzzle, error) {
	r := rng.New(cfg.Seed)
	var best *Puzzle
	var lastAttempt *Puzzle

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		full, err := synthesizeFilledGrid(cfg.Variant, r)
		if err != nil {
			continue
		}
		puzzle := dig(full, cfg, r)
		rating := solver.RateDifficulty(puzzle)
		se := solver.RateSE(puzzle)
		logger.Debug("generator attempt %d: clues=%d rating=%s se=%.2f", attempt, puzzle.GivenCount(), rating, se)

		candidate := Puzzle{Grid: puzzle, Solution: full, Difficulty: rating, SERating: se, Seed: cfg.Seed}
		lastAttempt = &candidate

		if difficultyAcceptable(cfg.Target, rating) && cluesInWindow(cfg, puzzle.GivenCount()) && seInWindow(cfg, se) {
			return candidate, nil
		}
		if best == nil || tierDistance(cfg.Target, rating) < tierDistance(cfg.Target, best.Difficulty) {
			c := candidate
			best = &c
		}
	}
	if best != nil {
		return *best, nil
	}
	if lastAttempt != nil {
		return *lastAttempt, nil
	}
	return Puzzle{}, ErrGenerationFailed
}

// difficultyAcceptable reports whether actual satisfies target: an exact
// match, or (when target is Easy or harder) exactly one tier easier, but
// never easier than Beginner.
func difficultyAcceptable(target, actual solver.Difficulty) bool {
	if actual == target {
		return true
	}
	if target >= solver.Easy && actual == target-1 && actual >= solver.Beginner {
		return true
	}
	return false
}

func cluesInWindow(cfg Config, clues int) bool {
	if cfg.MinClues > 0 && clues < cfg.MinClues {
		return false
	}
	if cfg.MaxClues > 0 && clues > cfg.MaxClues {
		return false
	}
	return true
}

func seInWindow(cfg Config, se float64) bool {
	if cfg.MaxSE <= 0 {
		return true
	}
	return se >= cfg.MinSE && se <= cfg.MaxSE
}

func tierDistance(a, b solver.Difficulty) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}

// synthesizeFilledGrid seeds the three diagonal boxes with a random
// permutation (they never share a row/column/box so any valid permutation
// of each is collision-free), then completes the rest via the solver's
// backtracking search.
func synthesizeFilledGrid(variant engine.Variant, r *rng.PCG) (*engine.Grid, error) {
	g := engine.NewGrid(variant, nil)
	for box := 0; box < 3; box++ {
		digits := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
		r.Shuffle(len(digits), func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })
		br, bc := box*3, box*3
		for i := 0; i < 9; i++ {
			pos := position.New(br+i/3, bc+i%3)
			if err := g.SetValue(pos, digits[i]); err != nil {
				return nil, err
			}
		}
	}
	full, err := solver.Solve(g)
	if err != nil {
		return nil, err
	}
	for i := range full.Cells {
		full.Cells[i].Given = true
	}
	return full, nil
}

// dig clears cells (respecting cfg.Symmetry) as long as the grid keeps a
// unique solution, testing uniqueness via CountSolutions(limit=2). It stops
// once the given count is at or below MinClues (17 when unset); the count is
// checked before each symmetric group, so removing a group of several cells
// can leave the puzzle below MinClues.
func dig(full *engine.Grid, cfg Config, r *rng.PCG) *engine.Grid {
	puzzle := full.Clone()
	minClues := cfg.MinClues
	if minClues <= 0 {
		minClues = 17
	}
	order := make([]int, position.TotalCells)
	for i := range order {
		order[i] = i
	}
	r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	tried := map[position.Position]bool{}
	for _, idx := range order {
		p := position.FromIndex(idx)
		if tried[p] {
			continue
		}
		if puzzle.GivenCount() <= minClues {
			break
		}
		cells := symmetricGroup(p, cfg.Symmetry)
		for _, q := range cells {
			tried[q] = true
		}
		var removed []position.Position
		var removedValues []int
		for _, q := range cells {
			cell := puzzle.Cells[q.Index()]
			if !cell.Given {
				continue
			}
			removedValues = append(removedValues, cell.Value)
			removed = append(removed, q)
			puzzle.Cells[q.Index()].Given = false
			puzzle.Cells[q.Index()].Value = 0
		}
		if len(removed) == 0 {
			continue
		}
		puzzle.RecalculateCandidates()
		if solver.CountSolutions(puzzle, 2) != 1 {
			for i, q := range removed {
				puzzle.Cells[q.Index()].Value = removedValues[i]
				puzzle.Cells[q.Index()].Given = true
			}
			puzzle.RecalculateCandidates()
		}
	}
	return puzzle
}

// symmetricGroup returns pos plus its symmetric partner(s) under sym.
func symmetricGroup(pos position.Position, sym Symmetry) []position.Position {
	last := position.GridSize - 1
	var partner position.Position
	switch sym {
	case SymmetryRot180:
		partner = position.New(last-pos.Row, last-pos.Col)
	case SymmetryRot90:
		p1 := position.New(pos.Col, last-pos.Row)
		p2 := position.New(last-pos.Row, last-pos.Col)
		p3 := position.New(last-pos.Col, pos.Row)
		out := []position.Position{pos}
		for _, p := range []position.Position{p1, p2, p3} {
			if p != pos && !containsPos(out, p) {
				out = append(out, p)
			}
		}
		return out
	case SymmetryHorizontal:
		partner = position.New(last-pos.Row, pos.Col)
	case SymmetryVertical:
		partner = position.New(pos.Row, last-pos.Col)
	case SymmetryDiagonal:
		partner = position.New(pos.Col, pos.Row)
	default:
		return []position.Position{pos}
	}
	if partner == pos {
		return []position.Position{pos}
	}
	return []position.Position{pos, partner}
}

func containsPos(list []position.Position, p position.Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
