// Package diversity estimates and empirically samples how varied a stream
// of generated puzzles is, via a fingerprint histogram and a closed-form
// theoretical estimate.
package diversity

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/solver"
)

// Fingerprint is a stable identifier for one puzzle's given-cell pattern
// plus solution, used to detect exact and near duplicates across a run.
type Fingerprint string

// FingerprintOf hashes a puzzle's given layout together with its solved
// grid, so two puzzles with the same clues but different (non-unique)
// solving paths still compare equal, and no two distinct puzzles collide
// in practice.
func FingerprintOf(puzzle, solution *engine.Grid) Fingerprint {
	h := sha256.New()
	h.Write([]byte(puzzle.String()))
	for _, c := range solution.Cells {
		h.Write([]byte{byte('0' + c.Value)})
	}
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// SampleRun records one generated puzzle observed during an empirical
// sampling pass. ID is a random identifier so runs can be correlated
// across log lines without leaking the puzzle's seed.
type SampleRun struct {
	ID          string
	Fingerprint Fingerprint
	ClueCount   int
	Difficulty  solver.Difficulty
	SERating    float64
	HardestUsed solver.Technique
}

// Sampler accumulates SampleRuns and derives histograms over them.
type Sampler struct {
	runs      []SampleRun
	seen      map[Fingerprint]int
	clueHisto map[int]int
	techHisto map[solver.Technique]int
}

// NewSampler returns an empty Sampler.
func NewSampler() *Sampler {
	return &Sampler{
		seen:      map[Fingerprint]int{},
		clueHisto: map[int]int{},
		techHisto: map[solver.Technique]int{},
	}
}

// Observe records one generated puzzle.
func (s *Sampler) Observe(puzzle, solution *engine.Grid, result solver.Result) SampleRun {
	run := SampleRun{
		ID:          uuid.NewString(),
		Fingerprint: FingerprintOf(puzzle, solution),
		ClueCount:   puzzle.GivenCount(),
		Difficulty:  result.Difficulty,
		SERating:    result.SERating,
		HardestUsed: result.HardestUsed,
	}
	s.runs = append(s.runs, run)
	s.seen[run.Fingerprint]++
	s.clueHisto[run.ClueCount]++
	s.techHisto[run.HardestUsed]++
	return run
}

// Runs returns every SampleRun observed so far.
func (s *Sampler) Runs() []SampleRun { return append([]SampleRun{}, s.runs...) }

// DuplicateRate reports the fraction of runs whose fingerprint was seen
// more than once, a proxy for how much a generation strategy is repeating
// itself.
func (s *Sampler) DuplicateRate() float64 {
	if len(s.runs) == 0 {
		return 0
	}
	dupes := 0
	for _, n := range s.seen {
		if n > 1 {
			dupes += n
		}
	}
	return float64(dupes) / float64(len(s.runs))
}

// ClueHistogram returns a copy of the clue-count -> observation-count map.
func (s *Sampler) ClueHistogram() map[int]int {
	out := make(map[int]int, len(s.clueHisto))
	for k, v := range s.clueHisto {
		out[k] = v
	}
	return out
}

// TechniqueHistogram returns a copy of the hardest-technique -> count map.
func (s *Sampler) TechniqueHistogram() map[solver.Technique]int {
	out := make(map[solver.Technique]int, len(s.techHisto))
	for k, v := range s.techHisto {
		out[k] = v
	}
	return out
}

// Estimate holds the closed-form constants the theoretical estimator
// uses, all well-known results for classic 9x9 Sudoku, plus the derived
// per-clue-count puzzle estimates built from them.
type Estimate struct {
	// TotalGrids is the count of all valid, filled 9x9 Sudoku grids.
	TotalGrids float64
	// EssentiallyUniqueGrids is TotalGrids divided by the size of the
	// symmetry group (band/stack permutations, relabeling, transposition).
	EssentiallyUniqueGrids float64
	// MinClues is the proven lower bound on givens for a uniquely solvable
	// puzzle.
	MinClues int
	// PuzzlesByClueCount estimates, per clue count in [MinClues, 50], how
	// many uniquely-solvable puzzles exist: EssentiallyUniqueGrids x
	// C(81, clues) x the uniqueness probability for that clue count.
	PuzzlesByClueCount map[int]float64
}

// TheoreticalEstimate returns the fixed closed-form constants for classic
// 9x9 Sudoku together with the per-clue-count estimates derived from
// them.
func TheoreticalEstimate() Estimate {
	e := Estimate{
		TotalGrids:             6.67e21,
		EssentiallyUniqueGrids: 5.47e9,
		MinClues:               17,
		PuzzlesByClueCount:     make(map[int]float64, 34),
	}
	for clues := e.MinClues; clues <= 50; clues++ {
		e.PuzzlesByClueCount[clues] = e.EssentiallyUniqueGrids * binomial(81, clues) * uniquenessProbability(clues)
	}
	return e
}

// uniquenessProbability is the rough probability that a random clue
// subset of that size taken from a solution grid pins a unique solution.
// The steps follow published search results: 17-clue puzzles are
// vanishingly rare, and the odds climb steeply with each band of added
// clues.
func uniquenessProbability(clues int) float64 {
	switch {
	case clues <= 17:
		return 0.0000001
	case clues <= 20:
		return 0.00001
	case clues <= 24:
		return 0.0001
	case clues <= 28:
		return 0.001
	case clues <= 32:
		return 0.01
	case clues <= 36:
		return 0.05
	case clues <= 40:
		return 0.15
	case clues <= 45:
		return 0.35
	case clues <= 50:
		return 0.60
	default:
		return 0.80
	}
}

// binomial returns C(n, k) as a float64, plenty of precision for an
// order-of-magnitude estimate.
func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return result
}

// clueWindow is the clue-count band a tier's puzzles typically land in.
func clueWindow(d solver.Difficulty) (min, max int) {
	switch d {
	case solver.Beginner:
		return 45, 55
	case solver.Easy:
		return 36, 45
	case solver.Medium:
		return 32, 38
	case solver.Intermediate:
		return 28, 34
	case solver.Hard:
		return 24, 30
	case solver.Expert:
		return 22, 26
	case solver.Master:
		return 20, 24
	default:
		return 17, 22
	}
}

// EstimateForDifficulty sums the per-clue-count estimates over the tier's
// typical clue window.
func (e Estimate) EstimateForDifficulty(d solver.Difficulty) float64 {
	min, max := clueWindow(d)
	total := 0.0
	for clues := min; clues <= max; clues++ {
		if count, ok := e.PuzzlesByClueCount[clues]; ok {
			total += count
		}
	}
	return total
}

// CoverageFraction estimates what fraction of the essentially-unique grid
// space a sample of sampleSize distinct fingerprints represents.
func (e Estimate) CoverageFraction(sampleSize int) float64 {
	if e.EssentiallyUniqueGrids <= 0 {
		return 0
	}
	return float64(sampleSize) / e.EssentiallyUniqueGrids
}
