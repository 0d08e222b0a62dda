package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var bodyColors = map[Category]color.RGBA{
	CategoryPenguin:        {R: 80, G: 255, B: 80, A: 220},
	CategoryDamagedPenguin: {R: 255, G: 160, B: 60, A: 220},
	CategoryGround:         {R: 255, G: 255, B: 255, A: 220},
	CategoryEnemy:          {R: 255, G: 60, B: 60, A: 220},
	CategoryCoin:           {R: 255, G: 220, B: 40, A: 220},
	CategoryPowerup:        {R: 255, G: 120, B: 255, A: 220},
}

// drawBodies outlines every enabled physics body.
func (g *Game) drawBodies(screen *ebiten.Image) {
	v := view{cam: g.scene.Camera, w: float64(g.width), h: float64(g.height)}
	k := float32(1 / v.cam.Scale)
	for _, b := range g.scene.World.Bodies() {
		if !b.Enabled {
			continue
		}
		minX, _, maxX, _ := b.bounds()
		if !v.visibleX(minX, maxX) {
			continue
		}
		clr := bodyColors[b.Category]
		sx, sy := v.toScreen(b.X, b.Y)
		switch b.Shape {
		case ShapeCircle:
			vector.StrokeCircle(screen, float32(sx), float32(sy), float32(b.Radius)*k, 1, clr, true)
		case ShapeBox:
			vector.StrokeRect(screen, float32(sx)-float32(b.HalfW)*k, float32(sy)-float32(b.HalfH)*k,
				2*float32(b.HalfW)*k, 2*float32(b.HalfH)*k, 1, clr, false)
		case ShapeEdge:
			x0, y0 := v.toScreen(b.X-b.HalfW, b.Y)
			x1, y1 := v.toScreen(b.X+b.HalfW, b.Y)
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, clr, false)
		}
	}

	// Next spawn position.
	nx, _ := v.toScreen(g.scene.NextEncounterX(), 0)
	vector.StrokeLine(screen, float32(nx), 0, float32(nx), float32(g.height), 1, color.RGBA{R: 90, G: 160, B: 230, A: 120}, false)
}

// drawDebugText prints flight state in the top-left corner.
func (g *Game) drawDebugText(screen *ebiten.Image) {
	s := g.scene
	p := s.Player
	lines := []string{
		fmt.Sprintf("TPS %.0f  FPS %.0f  speed %.2gx", ebiten.ActualTPS(), ebiten.ActualFPS(), g.simSpeed),
		fmt.Sprintf("seed %d  tick %d", s.Seed(), s.Ticks()),
		fmt.Sprintf("pos (%.0f, %.0f)  vel (%.0f, %.0f)", p.Body.X, p.Body.Y, p.Body.VX, p.Body.VY),
		fmt.Sprintf("cam y=%.0f scale=%.2f  progress %.0f", s.Camera.Y, s.Camera.Scale, s.Progress()),
		fmt.Sprintf("damaged=%t invuln=%t star=%t", p.Damaged, p.Invulnerable, p.StarPowered()),
		g.reporter.FormatLatest(),
		", / . slow-mo   P pause   F3 close",
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 8, 40+i*16)
	}
}
