package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kvanta/ukodus-core/internal/diversity"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/generator"
	"github.com/kvanta/ukodus-core/internal/logger"
	"github.com/kvanta/ukodus-core/internal/observer"
	"github.com/kvanta/ukodus-core/internal/position"
	"github.com/kvanta/ukodus-core/internal/puzzleid"
	"github.com/kvanta/ukodus-core/internal/rng"
	"github.com/kvanta/ukodus-core/internal/solver"
)

func main() {
	// Configure logger
	// Change to logger.DEBUG to see detailed solving steps
	logger.SetLevel(logger.INFO)
	logger.SetOutput(os.Stdout)

	fmt.Println("=== Ukodus Engine - Comprehensive Demo ===")

	fmt.Println("\n=== Example 1: Solving a known puzzle ===")
	const s1 = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	g, err := engine.ParseGrid(s1)
	if err != nil {
		log.Fatalf("failed to parse puzzle: %v", err)
	}

	collector := &observer.CollectingObserver{}
	s := solver.New()
	s.Notifier.Attach(collector)

	res := s.SolveWithTechniques(g, 0, true)
	fmt.Printf("Solved: %v (used backtracking: %v)\n", res.Solved, res.UsedBacktrack)
	fmt.Printf("Hardest technique used: %s (SE %.1f, difficulty %s)\n", res.HardestUsed, res.SERating, res.Difficulty)
	fmt.Printf("Ladder steps applied: %d, observer events captured: %d\n", len(res.Steps), len(collector.Events))
	fmt.Println(g.String())

	fmt.Println("\n=== Example 2: Hint API ===")
	puzzle2, _ := engine.ParseGrid(s1)
	if hint, ok := solver.GetHint(puzzle2); ok {
		fmt.Printf("Next hint: %s (SE %.1f, difficulty %s)\n", hint.Step.Message, hint.SERating, hint.Difficulty)
	} else {
		fmt.Println("No hint available; puzzle may already be solved or stuck")
	}

	fmt.Println("\n=== Example 3: Generating puzzles at several difficulty tiers ===")
	sampler := diversity.NewSampler()
	for _, tier := range []solver.Difficulty{solver.Easy, solver.Medium, solver.Hard} {
		cfg := generator.Preset(tier, uint64(tier)+42)
		puzzle, err := generator.Generate(cfg)
		if err != nil {
			logger.Warn("generation failed for tier %s: %v", tier, err)
			continue
		}
		id := puzzleid.Encode(puzzleid.ID{Difficulty: puzzle.Difficulty, Seed: puzzle.Seed})
		fmt.Printf("%-12s requested, got %-12s (SE %.1f, %d clues) id=%s\n",
			tier, puzzle.Difficulty, puzzle.SERating, puzzle.Grid.GivenCount(), id)

		genRes := s.SolveWithTechniques(puzzle.Grid.Clone(), 0, true)
		sampler.Observe(puzzle.Grid, puzzle.Solution, genRes)
	}

	freshCfg := generator.Preset(solver.Medium, rng.EntropySeed())
	if fresh, err := generator.Generate(freshCfg); err == nil {
		fmt.Printf("entropy-seeded puzzle: %s (SE %.1f, %d clues)\n",
			fresh.Difficulty, fresh.SERating, fresh.Grid.GivenCount())
	}

	fmt.Println("\n=== Diversity Sample Summary ===")
	fmt.Printf("Observed %d runs, duplicate rate %.2f%%\n", len(sampler.Runs()), sampler.DuplicateRate()*100)
	estimate := diversity.TheoreticalEstimate()
	fmt.Printf("Theoretical essentially-unique grid space: %.3e (min clues: %d)\n", estimate.EssentiallyUniqueGrids, estimate.MinClues)
	for _, tier := range []solver.Difficulty{solver.Beginner, solver.Hard, solver.Extreme} {
		fmt.Printf("Estimated %s puzzles: %.3e\n", tier, estimate.EstimateForDifficulty(tier))
	}

	fmt.Println("\n=== Example 4: Variant grids ===")
	xg := engine.NewGrid(engine.VariantXSudoku, nil)
	if err := xg.SetValue(position.New(0, 0), 5); err != nil {
		log.Fatalf("unexpected error: %v", err)
	}
	fmt.Printf("X-Sudoku grid with %d constraints attached\n", len(xg.Constraints()))

	fmt.Println("\n=== Demo Complete ===")
	fmt.Println("To see detailed solving steps, set logger.SetLevel(logger.DEBUG) at the top of main()")
}
