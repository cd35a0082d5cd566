package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fermata/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs and overall stats.

Examples:
  fermata scores
  fermata scores --limit 25`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println("Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'fermata play' to set the first score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-10s  %s\n", "Rank", "Score", "Pitch", "Voice", "Ending", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-10s  %s\n", "----", "-----", "-----", "-----", "------", "----")

	for i, r := range runs {
		ending := r.EndOption
		if ending == "" {
			ending = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-9s  %-6s  %-10s  %s\n",
			i+1, r.Score, fmt.Sprintf("%.1f", r.CalibrationHz), r.Source, ending,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.1f\n", stats.Runs, stats.BestScore, stats.AvgScore)
	}
	return nil
}
