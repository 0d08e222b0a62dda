package game

import "github.com/Garsondee/Pierre-Penguin/internal/config"

// BackgroundLayer is one parallax sheet. Multiplier 0 keeps it pinned to
// the camera, 1 lets the world scroll it at full speed.
type BackgroundLayer struct {
	Name           string
	Z              int
	Multiplier     float64
	JumpAdjustment float64
	Width, Height  float64

	X float64 // left edge of the centre tile
	Y float64 // bottom edge, on the ground
}

// NewBackgroundLayer places a layer at the origin on top of the ground.
func NewBackgroundLayer(t config.LayerTuning, width, height, groundY float64) *BackgroundLayer {
	return &BackgroundLayer{
		Name:       t.Name,
		Z:          t.Z,
		Multiplier: t.Multiplier,
		Width:      width,
		Height:     height,
		Y:          groundY,
	}
}

// UpdatePosition drags the layer forward with progress, reduced by the
// multiplier, and hops it a tile ahead once it falls a full tile behind.
func (l *BackgroundLayer) UpdatePosition(playerProgress float64) {
	adjusted := l.JumpAdjustment + playerProgress*(1-l.Multiplier)
	if playerProgress-adjusted > l.Width {
		l.JumpAdjustment += l.Width
	}
	l.X = adjusted
}

// TileXs returns the left edges of the three tiles around the layer.
func (l *BackgroundLayer) TileXs() [3]float64 {
	return [3]float64{l.X - l.Width, l.X, l.X + l.Width}
}
