package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var skyColor = color.RGBA{R: 102, G: 153, B: 242, A: 255}

// view maps y-up world points to y-down screen pixels through the camera.
type view struct {
	cam  Camera
	w, h float64
}

func (v view) toScreen(wx, wy float64) (float64, float64) {
	return (wx-v.cam.X)/v.cam.Scale + v.w/2, v.h/2 - (wy-v.cam.Y)/v.cam.Scale
}

func (v view) toWorld(sx, sy float64) Point {
	return Point{
		X: (sx-v.w/2)*v.cam.Scale + v.cam.X,
		Y: (v.h/2-sy)*v.cam.Scale + v.cam.Y,
	}
}

// visibleX reports whether the span [x0, x1] overlaps the view horizontally.
func (v view) visibleX(x0, x1 float64) bool {
	half := v.w / 2 * v.cam.Scale
	return x1 >= v.cam.X-half && x0 <= v.cam.X+half
}

// drawCentered draws img centred on a world point. rotation is
// counter-clockwise in world space.
func (v view) drawCentered(dst, img *ebiten.Image, wx, wy, scale, rotation, alpha float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(scale/v.cam.Scale, scale/v.cam.Scale)
	op.GeoM.Rotate(-rotation)
	sx, sy := v.toScreen(wx, wy)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// drawTopLeft draws img with its top-left corner at a world point.
func (v view) drawTopLeft(dst, img *ebiten.Image, wx, wy float64) {
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/v.cam.Scale, 1/v.cam.Scale)
	sx, sy := v.toScreen(wx, wy)
	op.GeoM.Translate(math.Floor(sx), math.Floor(sy))
	dst.DrawImage(img, op)
}

// drawWorld renders the scene back to front.
func (g *Game) drawWorld(screen *ebiten.Image) {
	s := g.scene
	v := view{cam: s.Camera, w: float64(g.width), h: float64(g.height)}
	screen.Fill(skyColor)

	for _, l := range s.Layers {
		img := g.atlas.Image(layerImageName(l.Name))
		for _, x := range l.TileXs() {
			if v.visibleX(x, x+l.Width) {
				v.drawTopLeft(screen, img, x, l.Y+l.Height)
			}
		}
	}

	tile := g.atlas.Image("ground")
	for _, x := range s.Ground.TileXs() {
		if v.visibleX(x, x+groundTileWidth) {
			v.drawTopLeft(screen, tile, x, s.Ground.Top)
		}
	}

	for _, enc := range s.Encounters.Encounters {
		if !enc.Placed {
			continue
		}
		for _, mem := range enc.Members {
			b := mem.Body
			if mem.Coin != nil {
				if mem.Coin.Hidden {
					continue
				}
				v.drawCentered(screen, g.atlas.Image(mem.Coin.Texture()), b.X, b.Y+mem.Coin.DrawOffsetY(), 1, 0, mem.Coin.Alpha)
				continue
			}
			v.drawCentered(screen, g.atlas.Image(mem.Enemy.Texture()), b.X, b.Y, 1, 0, 1)
		}
	}

	if !s.Star.Parked() {
		v.drawCentered(screen, g.atlas.Image(s.Star.Texture()), s.Star.Body.X, s.Star.Body.Y, s.Star.Scale, 0, 1)
	}

	p := s.Player
	v.drawCentered(screen, g.atlas.Image(p.Texture()), p.Body.X, p.Body.Y, p.Scale, p.Rotation, p.Alpha)
}
