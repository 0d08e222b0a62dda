package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Garsondee/Pierre-Penguin/internal/storage"
)

var flagLimit int

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	bestStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the longest recorded flights",
	Long: `Display the longest flights recorded in the flight database.

Examples:
  pierre scores
  pierre scores --limit 20`,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of flights to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open flight database: %w", err)
	}
	defer store.Close()

	flights, err := store.TopFlights(flagLimit)
	if err != nil {
		return fmt.Errorf("read flights: %w", err)
	}

	fmt.Println(titleStyle.Render("Longest flights"))
	fmt.Println()
	if len(flights) == 0 {
		fmt.Println("No flights recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pierre play' to set the first record!")
		return nil
	}

	fmt.Println(headStyle.Render(fmt.Sprintf("  %-4s  %-9s  %-6s  %-8s  %s", "Rank", "Distance", "Coins", "Cause", "Date")))
	for i, f := range flights {
		line := fmt.Sprintf("  %-4d  %-9s  %-6d  %-8s  %s",
			i+1, fmt.Sprintf("%dm", f.Distance), f.Coins, f.Cause, f.CreatedAt.Format("2006-01-02 15:04"))
		if i == 0 {
			line = bestStyle.Render(line)
		}
		fmt.Println(line)
	}

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("%d flights, avg %.0fm, %d coins collected, best haul %d\n",
		stats.Flights, stats.AvgDistance, stats.TotalCoins, stats.BestCoins)
	return nil
}
