package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/v3lip/tspsolve/internal/instance"
)

var (
	genN      int
	genWidth  float64
	genHeight float64
	genSeed   int64
	genOut    string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a random instance file",
	Long:  `Generates n cities uniformly over a rectangular canvas and writes them as a JSON instance.`,
	RunE:  runGen,
}

func init() {
	genCmd.Flags().IntVar(&genN, "n", 25, "Number of cities")
	genCmd.Flags().Float64Var(&genWidth, "width", 800, "Canvas width")
	genCmd.Flags().Float64Var(&genHeight, "height", 600, "Canvas height")
	genCmd.Flags().Int64Var(&genSeed, "seed", 42, "Random seed")
	genCmd.Flags().StringVar(&genOut, "out", "instance.json", "Output path")

	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	if genN < 0 {
		return fmt.Errorf("--n cannot be negative")
	}

	inst := instance.Random(genN, genWidth, genHeight, genSeed)
	if err := instance.Save(genOut, inst); err != nil {
		return fmt.Errorf("failed to write instance: %w", err)
	}

	fmt.Printf("Wrote %s (%d cities)\n", genOut, genN)
	return nil
}
