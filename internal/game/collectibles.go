package game

import "math"

// CoinKind is the metal of a coin.
type CoinKind int

const (
	CoinBronze CoinKind = iota
	CoinGold
)

// Value is what the coin adds to the count.
func (k CoinKind) Value() int {
	if k == CoinGold {
		return 5
	}
	return 1
}

func (k CoinKind) String() string {
	if k == CoinGold {
		return "gold"
	}
	return "bronze"
}

const (
	coinSize     = 26
	coinRise     = 25
	coinRiseTime = 0.25
)

// Coin is collected on contact, rises while fading, then hides until its
// encounter is placed again.
type Coin struct {
	Kind      CoinKind
	Body      *Body
	Alpha     float64
	Collected bool
	Hidden    bool

	lift     float64
	timeline Timeline
}

// NewCoin builds a coin at (x, y).
func NewCoin(kind CoinKind, x, y float64) *Coin {
	c := &Coin{
		Kind:  kind,
		Alpha: 1,
		Body: &Body{
			X:        x,
			Y:        y,
			Shape:    ShapeCircle,
			Radius:   coinSize / 2,
			Category: CategoryCoin,
		},
	}
	c.Body.Owner = c
	return c
}

func (c *Coin) TextureAtlas() string { return "Environment" }

func (c *Coin) InitialSize() (float64, float64) { return coinSize, coinSize }

func (c *Coin) OnTap() {}

// Texture names the coin image.
func (c *Coin) Texture() string {
	if c.Kind == CoinGold {
		return "coin-gold"
	}
	return "coin-bronze"
}

// DrawOffsetY is the upward drift of a collected coin.
func (c *Coin) DrawOffsetY() float64 { return c.lift }

// Collect returns the coin's value the first time, zero afterwards.
func (c *Coin) Collect() int {
	if c.Collected {
		return 0
	}
	c.Collected = true
	c.Body.Enabled = false
	c.timeline.Run("collect", NewSequence(
		Step{
			Duration: coinRiseTime,
			Update: func(t float64) {
				c.lift = coinRise * t
				c.Alpha = 1 - t
			},
		},
		Call(func() { c.Hidden = true }),
	))
	return c.Kind.Value()
}

// Reset shows the coin again.
func (c *Coin) Reset() {
	c.timeline.RemoveAll()
	c.Collected = false
	c.Hidden = false
	c.Body.Enabled = true
	c.Alpha = 1
	c.lift = 0
}

// Animate advances the collect animation.
func (c *Coin) Animate(dt float64) { c.timeline.Advance(dt) }

// Parking spot for the star while it is not in play.
const (
	starParkX = -2000
	starParkY = -2000
	starSize  = 40
)

// Star grants star power on contact.
type Star struct {
	Body  *Body
	Scale float64
	clock float64
}

// NewStar builds a parked star.
func NewStar() *Star {
	s := &Star{
		Scale: 1,
		Body: &Body{
			X:        starParkX,
			Y:        starParkY,
			Mass:     1,
			Shape:    ShapeCircle,
			Radius:   starSize / 2,
			Category: CategoryPowerup,
		},
	}
	s.Body.Owner = s
	return s
}

func (s *Star) TextureAtlas() string { return "Environment" }

func (s *Star) InitialSize() (float64, float64) { return starSize, starSize }

func (s *Star) OnTap() {}

// Texture names the star image.
func (s *Star) Texture() string { return "star" }

// MoveTo puts the star in play at (x, y) at rest.
func (s *Star) MoveTo(x, y float64) {
	s.Body.X, s.Body.Y = x, y
	s.Body.Stop()
}

// Park moves the star off-screen.
func (s *Star) Park() {
	s.MoveTo(starParkX, starParkY)
}

// Parked reports whether the star is waiting off-screen.
func (s *Star) Parked() bool {
	return s.Body.X == starParkX && s.Body.Y == starParkY
}

// Animate pulses the star.
func (s *Star) Animate(dt float64) {
	s.clock += dt
	s.Scale = 1 + 0.12*math.Sin(s.clock*2*math.Pi/1.2)
}
