package game

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Pierre-Penguin/internal/config"
	"github.com/Garsondee/Pierre-Penguin/internal/sound"
)

// Point is a position in world space (y up).
type Point struct {
	X, Y float64
}

// Input is what the player did during one tick.
type Input struct {
	Pressed  bool    // a touch, click or space press began
	Released bool    // a touch, click or space press ended
	Taps     []Point // world positions of the presses that began
}

// merge folds one input frame into in. A release that came before this
// frame's press is dropped so the press keeps Pierre flapping; a press and
// release in the same frame stay together as a tap.
func (in *Input) merge(pressed, released bool, taps []Point) {
	if pressed {
		if in.Released && !in.Pressed && !released {
			in.Released = false
		}
		in.Pressed = true
		in.Taps = append(in.Taps, taps...)
	}
	if released {
		in.Released = true
	}
}

// Camera frames the world. Scale above 1 zooms out.
type Camera struct {
	X, Y  float64
	Scale float64
}

// Scene is one flight: Pierre, the ground, the parallax layers, the
// encounters and the star, stepped one tick at a time. It has no engine
// dependency so tests and reports can fly it headless.
type Scene struct {
	Tuning     config.Tuning
	World      *World
	Player     *Player
	Ground     *Ground
	Layers     []*BackgroundLayer // far to near, the draw order
	Encounters *EncounterManager
	Star       *Star
	Camera     Camera
	Log        *FlightLog

	progress       float64
	nextEncounterX float64
	coins          int
	tick           int
	dt             float64

	gameOver      bool
	gameOverFired bool
	cause         string
	lastHit       string
	releaseNext   bool // a tap ended in the tick it began

	seed       int64
	rng        *rand.Rand
	logger     *log.Logger
	sfx        SoundPlayer
	onGameOver func(FlightOutcomeReason)
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithSceneSeed fixes the RNG that picks encounters and rolls stars.
func WithSceneSeed(seed int64) SceneOption {
	return func(s *Scene) {
		s.seed = seed
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay RNG
	}
}

// WithSceneLogger sends debug events to l.
func WithSceneLogger(l *log.Logger) SceneOption {
	return func(s *Scene) { s.logger = l }
}

// WithSceneSound plays effects through p.
func WithSceneSound(p SoundPlayer) SceneOption {
	return func(s *Scene) { s.sfx = p }
}

// WithGameOverHook is called once, at the end of the tick Pierre dies in.
func WithGameOverHook(fn func(FlightOutcomeReason)) SceneOption {
	return func(s *Scene) { s.onGameOver = fn }
}

// WithFlightLog replaces the scene's flight log.
func WithFlightLog(fl *FlightLog) SceneOption {
	return func(s *Scene) { s.Log = fl }
}

// NewScene lays out a fresh flight.
func NewScene(t config.Tuning, encounters []config.EncounterTemplate, opts ...SceneOption) *Scene {
	s := &Scene{
		Tuning:         t,
		nextEncounterX: t.Spawn.FirstEncounterX,
		dt:             1 / float64(t.Physics.TicksPerSecond),
		Log:            NewFlightLog(false),
		logger:         log.New(io.Discard),
		sfx:            silentSound{},
	}
	WithSceneSeed(1)(s)
	for _, o := range opts {
		o(s)
	}

	s.World = NewWorld(t.Physics.Gravity * t.Physics.PointsPerMeter)
	s.World.OnContact = s.didBegin

	s.Star = NewStar()
	s.World.Add(s.Star.Body)

	w := float64(t.Screen.Width)
	s.Ground = NewGround(w, t.Physics.GroundY)
	s.World.Add(s.Ground.Body)

	for _, lt := range t.Background.LayersByDepth() {
		s.Layers = append(s.Layers, NewBackgroundLayer(lt, t.Background.TileWidth, t.Background.TileHeight, t.Physics.GroundY))
	}

	s.Player = NewPlayer(t.Player, s.sfx)
	s.Player.OnDie = s.playerDied
	s.World.Add(s.Player.Body)

	s.Encounters = NewEncounterManager(encounters, s.rng)
	s.Encounters.AddEncountersToScene(s.World)

	s.Camera = Camera{X: s.Player.Body.X, Y: t.ScreenCenterY(), Scale: 1}
	s.logger.Debug("scene ready", "seed", s.seed, "encounters", len(s.Encounters.Encounters))
	return s
}

// Ticks is how many ticks have run.
func (s *Scene) Ticks() int { return s.tick }

func (s *Scene) Seed() int64 { return s.seed }

func (s *Scene) Coins() int { return s.coins }

func (s *Scene) GameOver() bool { return s.gameOver }

// Cause names what dealt the final hit, or "" while flying.
func (s *Scene) Cause() string { return s.cause }

// Progress is how far Pierre has flown from the start, in points.
func (s *Scene) Progress() float64 { return s.progress }

// DistanceMeters is progress in whole meters.
func (s *Scene) DistanceMeters() int {
	return int(math.Max(0, s.progress) / s.Tuning.Physics.PointsPerMeter)
}

// NextEncounterX is where the next encounter will be placed.
func (s *Scene) NextEncounterX() float64 { return s.nextEncounterX }

// Tick advances the scene by one fixed step.
func (s *Scene) Tick(in Input) {
	s.tick++

	if s.releaseNext {
		s.releaseNext = false
		s.stopFlapping()
	}
	if in.Pressed {
		for _, pt := range in.Taps {
			if sp := s.SpriteAt(pt); sp != nil {
				sp.OnTap()
			}
		}
		if !s.gameOver {
			if !s.Player.Flapping {
				s.Log.AddVerbose(s.tick, "flap", "start", "", s.Player.Body.Y)
			}
			s.Player.StartFlapping()
		}
	}
	if in.Released && s.Player.Flapping {
		if in.Pressed {
			s.releaseNext = true
		} else {
			s.stopFlapping()
		}
	}

	s.Player.Update()
	s.Player.Animate(s.dt)
	s.Encounters.Animate(s.dt)
	s.Star.Animate(s.dt)

	s.World.Step(s.dt)
	s.didSimulatePhysics()

	if s.gameOver && !s.gameOverFired {
		s.gameOverFired = true
		out := DetermineFlightOutcome(s)
		s.logger.Info("game over", "distance", out.Distance, "coins", out.Coins, "cause", out.Cause)
		if s.onGameOver != nil {
			s.onGameOver(out)
		}
	}
}

func (s *Scene) stopFlapping() {
	if !s.Player.Flapping {
		return
	}
	s.Log.AddVerbose(s.tick, "flap", "stop", "", s.Player.Body.Y)
	s.Player.StopFlapping()
}

// didSimulatePhysics follows Pierre with the camera and scrolls the world
// after bodies have moved.
func (s *Scene) didSimulatePhysics() {
	p := s.Player.Body
	center := s.Tuning.ScreenCenterY()
	s.Camera.Y = center
	s.Camera.Scale = 1
	if p.Y > center {
		s.Camera.Y = p.Y
		s.Camera.Scale = 1 + (p.Y-center)/(s.Tuning.Player.MaxHeight-center)
	}
	s.Camera.X = p.X

	s.progress = p.X - s.Tuning.Player.StartX
	s.Log.AddVerbose(s.tick, "camera", "position",
		fmt.Sprintf("x=%.0f y=%.0f scale=%.2f", s.Camera.X, s.Camera.Y, s.Camera.Scale), s.Camera.Scale)

	if s.Ground.CheckForReposition(s.progress) {
		s.Log.AddVerbose(s.tick, "ground", "jump", fmt.Sprintf("left=%.0f", s.Ground.Left), s.Ground.Left)
	}
	for _, l := range s.Layers {
		l.UpdatePosition(s.progress)
	}

	if p.X > s.nextEncounterX {
		enc := s.Encounters.PlaceNextEncounter(s.World, s.nextEncounterX)
		if enc != nil {
			s.Log.Add(s.tick, "encounter", "placed", fmt.Sprintf("%s at x=%.0f", enc.Name, enc.X), enc.X)
			s.logger.Debug("encounter placed", "name", enc.Name, "x", enc.X)
		}
		s.nextEncounterX += s.Tuning.Spawn.EncounterSpacing
		s.rollStar()
	}
}

// rollStar gives each encounter a chance to bring the star back into play
// at the next spawn position, unless it is still near Pierre.
func (s *Scene) rollStar() {
	if s.rng.Float64() >= s.Tuning.Spawn.StarChance { // #nosec G404 -- gameplay RNG
		return
	}
	if math.Abs(s.Player.Body.X-s.Star.Body.X) <= s.Tuning.Spawn.StarRespawnDistance {
		return
	}
	y := s.Tuning.Spawn.StarMinY + float64(s.rng.Intn(s.Tuning.Spawn.StarRangeY)) // #nosec G404 -- gameplay RNG
	s.Star.MoveTo(s.nextEncounterX, y)
	s.World.Forget(s.Star.Body)
	s.Log.Add(s.tick, "star", "spawned", fmt.Sprintf("x=%.0f y=%.0f", s.nextEncounterX, y), y)
	s.logger.Debug("star spawned", "x", s.nextEncounterX, "y", y)
}

// didBegin dispatches a contact between Pierre and something else.
func (s *Scene) didBegin(c Contact) {
	const penguinMask = CategoryPenguin | CategoryDamagedPenguin
	other := c.B
	if c.A.Category&penguinMask == 0 {
		other = c.A
	}

	switch other.Category {
	case CategoryGround:
		s.Log.Add(s.tick, "contact", "ground", "hit the ground", s.Player.Body.Y)
		s.damage("ground")
	case CategoryEnemy:
		name := "enemy"
		if e, ok := other.Owner.(*Enemy); ok {
			name = e.Kind.String()
		}
		s.Log.Add(s.tick, "contact", "enemy", name, s.Player.Body.Y)
		s.damage(name)
	case CategoryCoin:
		coin, ok := other.Owner.(*Coin)
		if !ok {
			return
		}
		if v := coin.Collect(); v > 0 {
			s.coins += v
			s.sfx.Play(sound.EffectCoin)
			s.Log.Add(s.tick, "coin", "collected", fmt.Sprintf("%s total=%d", coin.Kind, s.coins), float64(v))
		}
	case CategoryPowerup:
		if s.Player.Dead() {
			return
		}
		s.Player.StarPower()
		s.Star.Park()
		s.World.Forget(s.Star.Body)
		s.Log.Add(s.tick, "star", "collected", "star power", s.Player.ForwardVelocity)
		s.logger.Debug("star power")
	default:
		s.Log.Add(s.tick, "contact", "unhandled", other.Category.String(), 0)
		s.logger.Debug("contact with no game logic", "category", other.Category)
	}
}

func (s *Scene) damage(source string) {
	before := s.Player.Health
	s.lastHit = source
	s.Player.TakeDamage()
	if s.Player.Health < before {
		s.Log.Add(s.tick, "damage", "hit", fmt.Sprintf("%s health=%d", source, s.Player.Health), float64(s.Player.Health))
		s.logger.Debug("damage", "source", source, "health", s.Player.Health)
	}
}

func (s *Scene) playerDied() {
	s.gameOver = true
	s.cause = s.lastHit
	s.Log.Add(s.tick, "state", "game_over", fmt.Sprintf("cause=%s distance=%dm coins=%d", s.cause, s.DistanceMeters(), s.coins), float64(s.DistanceMeters()))
}

// SpriteAt returns the topmost sprite whose box contains pt, or nil.
func (s *Scene) SpriteAt(pt Point) GameSprite {
	if hitBox(s.Player, s.Player.Body, s.Player.Scale, pt) {
		return s.Player
	}
	if hitBox(s.Star, s.Star.Body, s.Star.Scale, pt) {
		return s.Star
	}
	for _, enc := range s.Encounters.Encounters {
		if !enc.Placed {
			continue
		}
		for _, mem := range enc.Members {
			if mem.Body.Enabled && hitBox(mem.Sprite, mem.Body, 1, pt) {
				return mem.Sprite
			}
		}
	}
	return nil
}

func hitBox(sp GameSprite, b *Body, scale float64, pt Point) bool {
	w, h := sp.InitialSize()
	return math.Abs(pt.X-b.X) <= w*scale/2 && math.Abs(pt.Y-b.Y) <= h*scale/2
}
