// Command game runs Pierre Penguin.
//
// Usage:
//
//	pierre play              - Fly
//	pierre scores            - Show the longest recorded flights
//
// Global flags:
//
//	--seed <value>  - RNG seed for reproducible encounters (0 = time based)
//	--db <path>     - Flight database (default: ~/.pierre/flights.db)
//	--verbose       - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pierre",
	Short: "Pierre Penguin - fly as far as you can",
	Long: `Pierre Penguin is a side-scrolling flight game. Hold to flap, dodge
bats, blades and mad flies, collect coins and grab the star.

Examples:
  pierre play
  pierre play --seed 42 --debug
  pierre scores --limit 5`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pierre/flights.db", "Path to flight database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pierre",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
