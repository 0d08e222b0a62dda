package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/Garsondee/Pierre-Penguin/internal/config"
	"github.com/Garsondee/Pierre-Penguin/internal/game"
	"github.com/Garsondee/Pierre-Penguin/internal/storage"
)

var (
	flagConfig     string
	flagEncounters string
	flagDebug      bool
	flagNoAudio    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Open the game window and start flying.

Controls:
  Click/Tap/Space  - Flap (hold)
  P                - Pause
  M                - Mute
  C                - Copy flight summary
  R                - Restart after game over
  F3               - Debug overlay (, and . change speed)
  Esc              - Quit

Examples:
  pierre play
  pierre play --config ./my-tuning.yaml`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Tuning YAML file")
	playCmd.Flags().StringVar(&flagEncounters, "encounters", "", "Encounter layout YAML file")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Start with the debug overlay open")
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable music and sound effects")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	tuning, err := config.Load(flagConfig, logger)
	if err != nil {
		return fmt.Errorf("load tuning: %w", err)
	}
	encounters, err := config.LoadEncounters(flagEncounters, logger)
	if err != nil {
		return fmt.Errorf("load encounters: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open flight database, flights will not be saved", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	g := game.New(game.Config{
		Tuning:     tuning,
		Encounters: encounters,
		Seed:       flagSeed,
		Store:      store,
		Logger:     logger,
		Audio:      !flagNoAudio,
		Debug:      flagDebug,
	})
	defer g.Close()

	ebiten.SetWindowTitle("Pierre Penguin")
	ebiten.SetWindowSize(tuning.Screen.Width, tuning.Screen.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tuning.Physics.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil && !game.IsTermination(err) {
		return err
	}
	return nil
}
