package game

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Pierre-Penguin/internal/config"
)

// Atlas holds every texture, drawn procedurally at start-up.
type Atlas struct {
	images map[string]*ebiten.Image
}

var (
	colInk      = color.RGBA{R: 28, G: 30, B: 40, A: 255}
	colBelly    = color.RGBA{R: 245, G: 245, B: 240, A: 255}
	colBeak     = color.RGBA{R: 250, G: 160, B: 30, A: 255}
	colBat      = color.RGBA{R: 70, G: 50, B: 90, A: 255}
	colBatWing  = color.RGBA{R: 110, G: 80, B: 140, A: 255}
	colBlade    = color.RGBA{R: 180, G: 190, B: 200, A: 255}
	colBladeHub = color.RGBA{R: 90, G: 95, B: 110, A: 255}
	colFly      = color.RGBA{R: 60, G: 140, B: 60, A: 255}
	colFlyWing  = color.RGBA{R: 180, G: 200, B: 220, A: 220}
	colFlyEye   = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	colBronze   = color.RGBA{R: 205, G: 127, B: 50, A: 255}
	colGold     = color.RGBA{R: 255, G: 205, B: 40, A: 255}
	colStar     = color.RGBA{R: 255, G: 230, B: 60, A: 255}
	colSnow     = color.RGBA{R: 240, G: 248, B: 255, A: 255}
	colIce      = color.RGBA{R: 150, G: 200, B: 235, A: 255}
)

// layerPalette colours the parallax sheets back to front.
var layerPalette = []color.RGBA{
	{R: 170, G: 195, B: 235, A: 255},
	{R: 130, G: 165, B: 215, A: 255},
	{R: 95, G: 135, B: 190, A: 255},
	{R: 225, G: 238, B: 250, A: 255},
}

const groundTileHeight = 80

// NewAtlas draws all sprites plus one sheet per background layer.
func NewAtlas(t config.Tuning) *Atlas {
	a := &Atlas{images: make(map[string]*ebiten.Image)}

	for i := 1; i <= 4; i++ {
		a.images[flyFrameName(i)] = drawPierre(i, false)
	}
	a.images["pierre-dead"] = drawPierre(3, true)

	a.images["bat"] = drawBat(false)
	a.images["bat-fly"] = drawBat(true)
	a.images["blade"] = drawBlade(0)
	a.images["blade-2"] = drawBlade(math.Pi / 8)
	a.images["madfly"] = drawMadFly(false)
	a.images["madfly-fly"] = drawMadFly(true)

	a.images["coin-bronze"] = drawCoin(colBronze)
	a.images["coin-gold"] = drawCoin(colGold)
	a.images["star"] = drawStar()
	a.images["ground"] = drawGroundTile()

	w, h := int(t.Background.TileWidth), int(t.Background.TileHeight)
	layers := t.Background.LayersByDepth()
	for i, l := range layers {
		a.images[layerImageName(l.Name)] = drawLayer(i, len(layers), w, h)
	}
	return a
}

// Image returns the named texture, or nil.
func (a *Atlas) Image(name string) *ebiten.Image {
	return a.images[name]
}

func flyFrameName(i int) string {
	return "pierre-flying-" + strconv.Itoa(i)
}

func layerImageName(name string) string {
	return "bg-" + name
}

// fillPolygon fills a closed polygon given as x,y pairs.
func fillPolygon(dst *ebiten.Image, clr color.Color, pts ...float32) {
	if len(pts) < 6 {
		return
	}
	var path vector.Path
	path.MoveTo(pts[0], pts[1])
	for i := 2; i+1 < len(pts); i += 2 {
		path.LineTo(pts[i], pts[i+1])
	}
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)
}

// fillEllipse approximates an ellipse with a polygon.
func fillEllipse(dst *ebiten.Image, cx, cy, rx, ry float32, clr color.Color) {
	const segs = 32
	pts := make([]float32, 0, segs*2)
	for i := 0; i < segs; i++ {
		a := 2 * math.Pi * float64(i) / segs
		pts = append(pts, cx+rx*float32(math.Cos(a)), cy+ry*float32(math.Sin(a)))
	}
	fillPolygon(dst, clr, pts...)
}

// drawPierre draws a 64x64 penguin facing right. frame 1..4 raises the
// wing from tucked to fully up.
func drawPierre(frame int, dead bool) *ebiten.Image {
	img := ebiten.NewImage(64, 64)
	fillEllipse(img, 30, 34, 20, 24, colInk)
	fillEllipse(img, 34, 38, 13, 18, colBelly)
	fillPolygon(img, colBeak, 46, 22, 60, 26, 46, 30)

	if dead {
		vector.StrokeLine(img, 36, 16, 42, 22, 2, colInk, true)
		vector.StrokeLine(img, 42, 16, 36, 22, 2, colInk, true)
	} else {
		vector.FillCircle(img, 39, 19, 4, colBelly, true)
		vector.FillCircle(img, 40, 19, 2, colInk, true)
	}

	lift := float32(frame-1) * 9
	fillPolygon(img, colInk, 22, 30, 4, 44-lift*1.6, 10, 48-lift, 26, 44)
	fillPolygon(img, colBeak, 22, 56, 32, 56, 27, 62)
	return img
}

func drawBat(wingsUp bool) *ebiten.Image {
	img := ebiten.NewImage(44, 24)
	tipY := float32(20)
	if wingsUp {
		tipY = 2
	}
	fillPolygon(img, colBatWing, 22, 12, 2, tipY, 8, 14, 14, 16)
	fillPolygon(img, colBatWing, 22, 12, 42, tipY, 36, 14, 30, 16)
	fillEllipse(img, 22, 13, 7, 8, colBat)
	fillPolygon(img, colBat, 17, 7, 19, 1, 21, 6)
	fillPolygon(img, colBat, 23, 6, 25, 1, 27, 7)
	vector.FillCircle(img, 20, 11, 1.5, colBeak, true)
	vector.FillCircle(img, 24, 11, 1.5, colBeak, true)
	return img
}

// drawBlade draws a toothed saw wheel half sunk into the ground. phase
// turns the teeth.
func drawBlade(phase float64) *ebiten.Image {
	img := ebiten.NewImage(185, 92)
	cx, cy := 92.5, 92.0
	const teeth = 14
	const segs = 96
	pts := make([]float32, 0, (segs+1)*2)
	for i := 0; i <= segs; i++ {
		a := math.Pi * float64(i) / segs
		r := 82 + 8*math.Sin(a*teeth*2+phase*teeth)
		pts = append(pts, float32(cx+r*math.Cos(a)), float32(cy-r*math.Sin(a)))
	}
	fillPolygon(img, colBlade, pts...)
	vector.FillCircle(img, float32(cx), float32(cy), 26, colBladeHub, true)
	return img
}

func drawMadFly(wingsUp bool) *ebiten.Image {
	img := ebiten.NewImage(61, 29)
	wingY := float32(4)
	if wingsUp {
		wingY = 0
	}
	fillEllipse(img, 26, wingY+6, 9, 6, colFlyWing)
	fillEllipse(img, 36, wingY+6, 9, 6, colFlyWing)
	fillEllipse(img, 28, 18, 20, 9, colFly)
	vector.FillCircle(img, 50, 17, 8, colFly, true)
	vector.FillCircle(img, 53, 14, 4, colFlyEye, true)
	return img
}

func drawCoin(clr color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(coinSize, coinSize)
	vector.FillCircle(img, coinSize/2, coinSize/2, coinSize/2, clr, true)
	shade := color.RGBA{R: clr.R / 2, G: clr.G / 2, B: clr.B / 2, A: 255}
	vector.StrokeCircle(img, coinSize/2, coinSize/2, coinSize/2-3, 2, shade, true)
	return img
}

func drawStar() *ebiten.Image {
	img := ebiten.NewImage(starSize, starSize)
	const c = starSize / 2
	pts := make([]float32, 0, 20)
	for i := 0; i < 10; i++ {
		a := -math.Pi/2 + math.Pi*float64(i)/5
		r := float64(c)
		if i%2 == 1 {
			r = c * 0.45
		}
		pts = append(pts, float32(c+r*math.Cos(a)), float32(c+r*math.Sin(a)))
	}
	fillPolygon(img, colStar, pts...)
	return img
}

func drawGroundTile() *ebiten.Image {
	img := ebiten.NewImage(groundTileWidth, groundTileHeight)
	img.Fill(colIce)
	vector.FillRect(img, 0, 0, groundTileWidth, 14, colSnow, false)
	fillEllipse(img, groundTileWidth/2, 14, groundTileWidth/2, 5, colSnow)
	return img
}

// drawLayer draws a horizontally tileable range of hills. Every harmonic
// has a whole number of periods across the width so the seam is invisible.
func drawLayer(index, count, w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	clr := layerPalette[index%len(layerPalette)]
	depth := float64(index+1) / float64(count)
	base := float64(h) * (0.25 + 0.35*(1-depth))
	amp := float64(h) * (0.12 - 0.06*depth)

	const step = 8
	pts := []float32{0, float32(h)}
	for x := 0; x <= w; x += step {
		fx := 2 * math.Pi * float64(x) / float64(w)
		y := base +
			amp*math.Sin(fx*float64(2+index)+float64(index)) +
			amp*0.5*math.Sin(fx*float64(5+2*index)+1.3) +
			amp*0.25*math.Sin(fx*11)
		pts = append(pts, float32(x), float32(float64(h)-y))
	}
	pts = append(pts, float32(w), float32(h))
	fillPolygon(img, clr, pts...)
	return img
}
