package diversity_test

import (
	"testing"

	"github.com/kvanta/ukodus-core/internal/diversity"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/solver"
)

const s1 = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

func TestFingerprintOfIsStableAndDistinct(t *testing.T) {
	g1, _ := engine.ParseGrid(s1)
	sol1, _ := solver.Solve(g1)
	g2, _ := engine.ParseGrid(s1)
	sol2, _ := solver.Solve(g2)

	if diversity.FingerprintOf(g1, sol1) != diversity.FingerprintOf(g2, sol2) {
		t.Errorf("identical puzzles should fingerprint identically")
	}

	blank := engine.NewGrid(engine.VariantClassic, nil)
	blankSol, _ := solver.Solve(blank)
	if diversity.FingerprintOf(g1, sol1) == diversity.FingerprintOf(blank, blankSol) {
		t.Errorf("distinct puzzles should not collide")
	}
}

func TestSamplerObserveBuildsHistograms(t *testing.T) {
	g, _ := engine.ParseGrid(s1)
	res := solver.New().SolveWithTechniques(g.Clone(), 0, true)
	solved, _ := solver.Solve(g)

	s := diversity.NewSampler()
	run := s.Observe(g, solved, res)
	if run.ID == "" {
		t.Errorf("expected Observe to assign a non-empty ID")
	}
	if len(s.Runs()) != 1 {
		t.Errorf("expected exactly one recorded run")
	}
	if s.ClueHistogram()[g.GivenCount()] != 1 {
		t.Errorf("expected the clue histogram to count this puzzle's clue count")
	}
	if s.DuplicateRate() != 0 {
		t.Errorf("a single observation should have a zero duplicate rate")
	}

	s.Observe(g, solved, res)
	if s.DuplicateRate() == 0 {
		t.Errorf("observing the same puzzle twice should raise the duplicate rate")
	}
}

func TestTheoreticalEstimateCoverageFraction(t *testing.T) {
	est := diversity.TheoreticalEstimate()
	if est.MinClues != 17 {
		t.Errorf("expected the proven minimum clue bound of 17, got %d", est.MinClues)
	}
	frac := est.CoverageFraction(1000)
	if frac <= 0 || frac >= 1 {
		t.Errorf("expected a small but positive coverage fraction, got %v", frac)
	}
}

func TestTheoreticalEstimatePerClueCount(t *testing.T) {
	est := diversity.TheoreticalEstimate()
	for clues := est.MinClues; clues <= 50; clues++ {
		if est.PuzzlesByClueCount[clues] <= 0 {
			t.Fatalf("expected a positive estimate for %d clues", clues)
		}
	}
	if _, ok := est.PuzzlesByClueCount[16]; ok {
		t.Errorf("no estimate should exist below the proven minimum clue bound")
	}
	// More clues means vastly more subsets and better uniqueness odds up
	// through mid-range counts.
	if est.PuzzlesByClueCount[30] <= est.PuzzlesByClueCount[17] {
		t.Errorf("30-clue puzzles should vastly outnumber 17-clue puzzles")
	}
}

func TestEstimateForDifficultyCoversEveryTier(t *testing.T) {
	est := diversity.TheoreticalEstimate()
	for d := solver.Beginner; d <= solver.Extreme; d++ {
		if est.EstimateForDifficulty(d) <= 0 {
			t.Errorf("expected a positive estimate for tier %v", d)
		}
	}
	if est.EstimateForDifficulty(solver.Extreme) >= est.EstimateForDifficulty(solver.Hard) {
		t.Errorf("the extreme tier's sparse low-clue band should estimate below hard's")
	}
}
