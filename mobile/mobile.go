//go:build mobile

// Package mobile is the ebitenmobile binding for Android (.aar) and iOS
// (.xcframework) builds.
//
//	ebitenmobile bind -target android -tags mobile -javapkg com.pierre.penguin -o build/pierre.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/Pierre.xcframework ./mobile
package mobile

import (
	"image/color"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/Garsondee/Pierre-Penguin/internal/config"
	"github.com/Garsondee/Pierre-Penguin/internal/game"
)

// lazyGame defers building the game until the first Update or Draw, after
// the platform has a GL surface and an audio device.
type lazyGame struct {
	once sync.Once
	game *game.Game
}

func (g *lazyGame) initialize() {
	g.once.Do(func() {
		logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pierre"})
		g.game = game.New(game.Config{
			Tuning:     config.Default(),
			Encounters: config.DefaultEncounters(),
			Logger:     logger,
			Audio:      true,
		})
		logger.Info("mobile game initialized")
	})
}

func (g *lazyGame) Update() error {
	g.initialize()
	return g.game.Update()
}

func (g *lazyGame) Draw(screen *ebiten.Image) {
	g.initialize()
	if g.game == nil {
		screen.Fill(color.Black)
		return
	}
	g.game.Draw(screen)
}

func (g *lazyGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.game != nil {
		return g.game.Layout(outsideWidth, outsideHeight)
	}
	t := config.Default()
	return t.Screen.Width, t.Screen.Height
}

func init() {
	mobile.SetGame(&lazyGame{})
}

// Dummy is an exported symbol so ebitenmobile binds the package.
func Dummy() {}
