package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/v3lip/tspsolve/internal/instance"
	"github.com/v3lip/tspsolve/internal/render"
	"github.com/v3lip/tspsolve/internal/solve"
	"github.com/v3lip/tspsolve/internal/store"
)

var (
	pointsPath string
	randomN    int
	starts     int
	seed       int64
	workers    int
	outPath    string
	saveResult bool
	dataDir    string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run a single solve",
	Long: `Solves one instance and prints the tour and its length.
The instance comes from --points (JSON or CSV) or, with --random-n,
from a generated random point set.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&pointsPath, "points", "", "Instance file (.json or .csv)")
	solveCmd.Flags().IntVar(&randomN, "random-n", 0, "Generate a random instance with N cities instead of reading a file")
	solveCmd.Flags().IntVar(&starts, "starts", 5, "Max nearest-neighbor restarts")
	solveCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for start selection")
	solveCmd.Flags().IntVar(&workers, "workers", 1, "Concurrent restarts (1 = sequential)")
	solveCmd.Flags().StringVar(&outPath, "out", "", "Write the tour as SVG to this path")
	solveCmd.Flags().BoolVar(&saveResult, "save", false, "Persist the result into the data directory")
	solveCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Base directory for persisted results")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	inst, err := loadSolveInstance()
	if err != nil {
		return err
	}

	slog.Info("Starting solve",
		"instance", inst.Name,
		"cities", len(inst.Points),
		"starts", starts,
		"workers", workers,
	)

	solver := solve.New(
		solve.WithStarts(starts),
		solve.WithSeed(seed),
		solve.WithWorkers(workers),
		solve.WithProgress(func(p solve.Progress) {
			slog.Debug("Restart finished",
				"start_index", p.StartIndex,
				"start_city", p.Start,
				"length", p.Length,
				"best_length", p.BestLength,
			)
		}),
	)

	begin := time.Now()
	result := solver.Solve(inst.Points)
	elapsed := time.Since(begin)

	slog.Info("Solve complete",
		"elapsed", elapsed,
		"best_length", result.Length,
		"starts_tried", len(result.Candidates),
	)

	fmt.Printf("Cities:  %d\n", len(inst.Points))
	fmt.Printf("Length:  %.2f\n", result.Length)
	fmt.Printf("Tour:    %v\n", result.Tour)
	fmt.Printf("Elapsed: %s\n", elapsed.Round(time.Millisecond))

	if outPath != "" {
		svg := render.SVG(inst.Points, result.Tour, render.Options{})
		if err := os.WriteFile(outPath, svg, 0644); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
		fmt.Printf("Wrote %s\n", outPath)
	}

	if saveResult {
		if err := persistSolve(inst, result, elapsed); err != nil {
			return err
		}
	}

	return nil
}

func loadSolveInstance() (*instance.Instance, error) {
	switch {
	case pointsPath != "" && randomN > 0:
		return nil, fmt.Errorf("--points and --random-n are mutually exclusive")
	case pointsPath != "":
		return instance.Load(pointsPath)
	case randomN > 0:
		return instance.Random(randomN, 800, 600, seed), nil
	default:
		return nil, fmt.Errorf("either --points or --random-n is required")
	}
}

func persistSolve(inst *instance.Instance, result solve.Result, elapsed time.Duration) error {
	st, err := store.NewFSStore(dataDir)
	if err != nil {
		return fmt.Errorf("failed to create result store: %w", err)
	}

	id := uuid.New().String()
	record := store.NewRecord(id, inst.Name, inst.Points, result, elapsed, store.SolveConfig{
		Starts:  starts,
		Seed:    seed,
		Workers: workers,
	})
	if err := st.SaveRecord(record); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	svg := render.SVG(inst.Points, result.Tour, render.Options{})
	if err := st.SaveArtifact(id, "tour.svg", svg); err != nil {
		return fmt.Errorf("failed to save tour artifact: %w", err)
	}

	fmt.Printf("Saved record %s\n", id)
	return nil
}
