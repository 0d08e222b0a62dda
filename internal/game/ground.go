package game

import "math"

const groundTileWidth = 35

// Ground is a strip of tiles much wider than the screen. As Pierre flies it
// hops forward by a third of its width so it never runs out.
type Ground struct {
	Body *Body

	Left      float64
	Top       float64
	Width     float64
	TileCount int

	jumpWidth float64
	jumpCount float64
}

// NewGround builds a strip six screens wide starting two screens behind the
// origin with its top edge at y.
func NewGround(screenWidth, y float64) *Ground {
	width := screenWidth * 6
	count := int(math.Ceil(width / groundTileWidth))
	g := &Ground{
		Left:      -screenWidth * 2,
		Top:       y,
		Width:     width,
		TileCount: count,
		jumpWidth: groundTileWidth * math.Floor(float64(count)/3),
		jumpCount: 1,
	}
	g.Body = &Body{
		Y:        y,
		HalfW:    width / 2,
		Shape:    ShapeEdge,
		Category: CategoryGround,
	}
	g.Body.Owner = g
	g.syncBody()
	return g
}

func (g *Ground) TextureAtlas() string { return "Environment" }

func (g *Ground) InitialSize() (float64, float64) { return g.Width, 0 }

func (g *Ground) OnTap() {}

// CheckForReposition jumps the strip forward once progress passes the next
// threshold. It reports whether the strip moved.
func (g *Ground) CheckForReposition(playerProgress float64) bool {
	if playerProgress < g.jumpWidth*g.jumpCount {
		return false
	}
	g.Left += g.jumpWidth
	g.jumpCount++
	g.syncBody()
	return true
}

// TileXs returns the left edge of every tile.
func (g *Ground) TileXs() []float64 {
	xs := make([]float64, g.TileCount)
	for i := range xs {
		xs[i] = g.Left + float64(i)*groundTileWidth
	}
	return xs
}

// JumpWidth is how far one reposition moves the strip.
func (g *Ground) JumpWidth() float64 { return g.jumpWidth }

func (g *Ground) syncBody() {
	g.Body.X = g.Left + g.Width/2
}
