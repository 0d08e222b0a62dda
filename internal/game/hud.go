package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hudScale is the integer upscale applied to the HUD buffer.
const hudScale = 2

var hudFace = text.NewGoXFace(basicfont.Face7x13)

var (
	colHeart      = color.RGBA{R: 230, G: 50, B: 70, A: 255}
	colHeartEmpty = color.RGBA{R: 60, G: 40, B: 50, A: 160}
	colHUDText    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colPanel      = color.RGBA{R: 10, G: 20, B: 40, A: 220}
	colPanelEdge  = color.RGBA{R: 120, G: 170, B: 240, A: 255}
	colButton     = color.RGBA{R: 60, G: 140, B: 80, A: 255}
)

// HUD draws health, coins and distance, and the game-over panel.
type HUD struct {
	buf     *ebiten.Image
	restart image.Rectangle // screen pixels
}

// NewHUD allocates a buffer at 1/hudScale of the screen.
func NewHUD(screenW, screenH int) *HUD {
	return &HUD{buf: ebiten.NewImage(screenW/hudScale, screenH/hudScale)}
}

// RestartHit reports whether a screen point lands on the restart button.
func (h *HUD) RestartHit(x, y int) bool {
	return image.Pt(x, y).In(h.restart)
}

// HUDState is what the HUD shows this frame.
type HUDState struct {
	Health, MaxHealth int
	Coins             int
	Distance          int
	Best              int
	GameOver          bool
	Cause             string
	Paused            bool
	Muted             bool
	Status            string
}

// Draw renders the HUD onto screen.
func (h *HUD) Draw(screen *ebiten.Image, st HUDState) {
	h.buf.Clear()
	bw := h.buf.Bounds().Dx()
	bh := h.buf.Bounds().Dy()

	for i := 0; i < st.MaxHealth; i++ {
		clr := colHeartEmpty
		if i < st.Health {
			clr = colHeart
		}
		drawHeart(h.buf, float32(10+i*18), 10, clr)
	}

	coinIcon := float32(bw) - 80
	vector.FillCircle(h.buf, coinIcon, 16, 6, colGold, true)
	drawText(h.buf, fmt.Sprintf("%06d", st.Coins), float64(coinIcon)+10, 9, colHUDText)
	drawText(h.buf, fmt.Sprintf("%dm", st.Distance), float64(bw)/2-14, 9, colHUDText)

	var flags []string
	if st.Paused {
		flags = append(flags, "PAUSED")
	}
	if st.Muted {
		flags = append(flags, "MUTED")
	}
	if st.Status != "" {
		flags = append(flags, st.Status)
	}
	for i, f := range flags {
		drawText(h.buf, f, 10, float64(bh-18-i*14), colHUDText)
	}

	h.restart = image.Rectangle{}
	if st.GameOver {
		h.drawGameOver(st, bw, bh)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(h.buf, op)
}

func (h *HUD) drawGameOver(st HUDState, bw, bh int) {
	const pw, ph = 200, 130
	px := float32(bw-pw) / 2
	py := float32(bh-ph) / 2
	vector.FillRect(h.buf, px, py, pw, ph, colPanel, false)
	vector.StrokeRect(h.buf, px, py, pw, ph, 1, colPanelEdge, false)

	x := float64(px) + 14
	y := float64(py) + 10
	drawText(h.buf, "GAME OVER", float64(px)+pw/2-31, y, colHUDText)
	y += 22
	drawText(h.buf, fmt.Sprintf("Distance  %dm", st.Distance), x, y, colHUDText)
	y += 14
	drawText(h.buf, fmt.Sprintf("Coins     %d", st.Coins), x, y, colHUDText)
	y += 14
	best := st.Best
	if st.Distance > best {
		best = st.Distance
	}
	drawText(h.buf, fmt.Sprintf("Best      %dm", best), x, y, colHUDText)
	if st.Cause != "" {
		y += 14
		drawText(h.buf, "Downed by "+st.Cause, x, y, colHUDText)
	}

	const btnW, btnH = 80, 18
	bx := px + (pw-btnW)/2
	by := py + ph - btnH - 8
	vector.FillRect(h.buf, bx, by, btnW, btnH, colButton, false)
	drawText(h.buf, "RESTART", float64(bx)+16, float64(by)+2, colHUDText)
	h.restart = image.Rect(int(bx)*hudScale, int(by)*hudScale, int(bx+btnW)*hudScale, int(by+btnH)*hudScale)
}

func drawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, hudFace, op)
}

// drawHeart draws a 14x12 heart with its top-left at (x, y).
func drawHeart(dst *ebiten.Image, x, y float32, clr color.Color) {
	vector.FillCircle(dst, x+4, y+4, 4, clr, true)
	vector.FillCircle(dst, x+10, y+4, 4, clr, true)
	fillPolygon(dst, clr, x, y+5, x+14, y+5, x+7, y+13)
}
