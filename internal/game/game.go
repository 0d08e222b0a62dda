package game

import (
	"errors"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Pierre-Penguin/internal/config"
	"github.com/Garsondee/Pierre-Penguin/internal/sound"
	"github.com/Garsondee/Pierre-Penguin/internal/storage"
)

// statusTicks is how long a status message stays on the HUD.
const statusTicks = 120

// sampleInterval is how often the debug reporter samples the flight.
const sampleInterval = 60

// Config wires a Game to its tuning and optional subsystems.
type Config struct {
	Tuning     config.Tuning
	Encounters []config.EncounterTemplate
	Seed       int64 // 0 picks a time-based seed per flight
	Store      *storage.Store
	Logger     *log.Logger
	Audio      bool
	Debug      bool
}

// Game implements ebiten.Game around a headless Scene.
type Game struct {
	cfg    Config
	logger *log.Logger

	scene    *Scene
	outcome  *FlightOutcomeReason
	atlas    *Atlas
	hud      *HUD
	panel    *EventPanel
	reporter *FlightReporter

	width  int
	height int

	// Simulation speed control.
	simSpeed  float64 // 0 = paused
	tickAccum float64
	pending   Input // presses that arrived while no tick ran

	showDebug bool
	muted     bool
	prevKeys  map[ebiten.Key]bool
	logCursor int

	best        int
	status      string
	statusTimer int

	music   *sound.BackgroundMusic
	effects *sound.Effects
}

// New builds a game and starts the first flight.
func New(cfg Config) *Game {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	g := &Game{
		cfg:       cfg,
		logger:    cfg.Logger,
		width:     cfg.Tuning.Screen.Width,
		height:    cfg.Tuning.Screen.Height,
		hud:       NewHUD(cfg.Tuning.Screen.Width, cfg.Tuning.Screen.Height),
		panel:     NewEventPanel(),
		simSpeed:  1,
		showDebug: cfg.Debug,
		muted:     cfg.Tuning.Audio.Muted,
		prevKeys:  make(map[ebiten.Key]bool),
	}
	if cfg.Store != nil {
		best, err := cfg.Store.BestDistance()
		if err != nil {
			g.logger.Warn("could not read best distance", "err", err)
		}
		g.best = best
	}
	if cfg.Audio {
		g.startAudio()
	}
	g.restart()
	return g
}

func (g *Game) startAudio() {
	a := g.cfg.Tuning.Audio
	g.effects = sound.NewEffects(sound.Context(), a.EffectsVolume, g.logger)
	g.effects.SetMuted(g.muted)
	g.music = sound.Instance()
	g.music.SetVolume(a.MusicVolume)
	g.music.SetMuted(g.muted)
	if err := g.music.Play(); err != nil {
		g.logger.Warn("background music unavailable", "err", err)
	}
}

// restart throws away the current flight and starts a new one.
func (g *Game) restart() {
	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := []SceneOption{
		WithSceneSeed(seed),
		WithSceneLogger(g.logger),
		WithGameOverHook(g.recordFlight),
		WithFlightLog(NewFlightLog(g.cfg.Debug)),
	}
	if g.effects != nil {
		opts = append(opts, WithSceneSound(g.effects))
	}
	g.scene = NewScene(g.cfg.Tuning, g.cfg.Encounters, opts...)
	g.outcome = nil
	g.reporter = NewFlightReporter(reportWindowTicks)
	g.panel.Reset()
	g.logCursor = 0
	g.pending = Input{}
	g.tickAccum = 0
	g.logger.Debug("flight started", "seed", seed)
}

func (g *Game) recordFlight(out FlightOutcomeReason) {
	g.outcome = &out
	g.logger.Debug("flight over\n" + g.scene.Log.Summary(g.scene))
	if out.Distance > g.best {
		g.best = out.Distance
	}
	if g.cfg.Store == nil {
		return
	}
	id, err := g.cfg.Store.SaveFlight(storage.Flight{
		Seed:     g.scene.Seed(),
		Distance: out.Distance,
		Coins:    out.Coins,
		Ticks:    out.Ticks,
		Cause:    out.Cause,
	})
	if err != nil {
		g.logger.Warn("could not save flight", "err", err)
		return
	}
	g.logger.Info("flight saved", "id", id, "distance", out.Distance)
}

// Update reads input every frame and runs zero or more scene ticks.
func (g *Game) Update() error {
	if err := g.handleKeys(); err != nil {
		return err
	}
	g.readPointer()

	if g.statusTimer > 0 {
		g.statusTimer--
		if g.statusTimer == 0 {
			g.status = ""
		}
	}

	if g.simSpeed <= 0 {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

func (g *Game) simTick() {
	in := g.pending
	g.pending = Input{}
	g.scene.Tick(in)

	if g.scene.Ticks()%sampleInterval == 0 {
		g.reporter.Collect(g.scene)
	}
	entries := g.scene.Log.Entries()
	for ; g.logCursor < len(entries); g.logCursor++ {
		g.panel.Add(entries[g.logCursor])
	}
}

// readPointer folds touches, the left mouse button and space into the
// pending tick input. Any of them ending counts as a release.
func (g *Game) readPointer() {
	v := view{cam: g.scene.Camera, w: float64(g.width), h: float64(g.height)}
	var presses [][2]int
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		presses = append(presses, [2]int{x, y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		presses = append(presses, [2]int{x, y})
	}
	space := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	if g.scene.GameOver() {
		for _, p := range presses {
			if g.hud.RestartHit(p[0], p[1]) {
				g.restart()
				return
			}
		}
	}

	taps := make([]Point, 0, len(presses))
	for _, p := range presses {
		taps = append(taps, v.toWorld(float64(p[0]), float64(p[1])))
	}
	released := len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 ||
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustReleased(ebiten.KeySpace)
	g.pending.merge(len(presses) > 0 || space, released, taps)
}

// handleKeys processes edge-triggered keyboard shortcuts.
func (g *Game) handleKeys() error {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}
	defer func() { g.prevKeys = currentKeys }()

	if pressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// P: pause/resume.
	if pressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}

	// Slow motion is a debugging aid only.
	speeds := []float64{0, 0.25, 0.5, 1, 2}
	if pressed(ebiten.KeyComma) && g.showDebug {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if pressed(ebiten.KeyPeriod) && g.showDebug {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 && speeds[i+1] > g.simSpeed {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}

	if pressed(ebiten.KeyM) {
		g.setMuted(!g.muted)
	}
	if pressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}
	if pressed(ebiten.KeyC) {
		g.copySummary()
	}
	if pressed(ebiten.KeyR) && g.scene.GameOver() {
		g.restart()
	}
	return nil
}

func (g *Game) setMuted(m bool) {
	g.muted = m
	if g.effects != nil {
		g.effects.SetMuted(m)
	}
	if g.music != nil {
		g.music.SetMuted(m)
	}
}

// copySummary puts the last flight's one-line summary on the clipboard.
func (g *Game) copySummary() {
	out := g.outcome
	if out == nil {
		cur := DetermineFlightOutcome(g.scene)
		out = &cur
	}
	if err := clipboard.WriteAll(out.Summary()); err != nil {
		g.logger.Warn("clipboard copy failed", "err", err)
		g.setStatus("COPY FAILED")
		return
	}
	g.setStatus("COPIED")
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTimer = statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.atlas == nil {
		g.atlas = NewAtlas(g.cfg.Tuning)
	}
	g.drawWorld(screen)
	if g.showDebug {
		g.drawBodies(screen)
	}

	p := g.scene.Player
	g.hud.Draw(screen, HUDState{
		Health:    p.Health,
		MaxHealth: p.MaxHealth,
		Coins:     g.scene.Coins(),
		Distance:  g.scene.DistanceMeters(),
		Best:      g.best,
		GameOver:  g.scene.GameOver(),
		Cause:     g.scene.Cause(),
		Paused:    g.simSpeed <= 0,
		Muted:     g.muted,
		Status:    g.status,
	})

	if g.showDebug {
		g.drawDebugText(screen)
		g.panel.Draw(screen, g.width-panelWidth, g.height)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Scene exposes the running flight.
func (g *Game) Scene() *Scene {
	return g.scene
}

// Close stops the background music. The game cannot be resumed afterwards.
func (g *Game) Close() {
	if g.music != nil {
		g.music.Stop()
	}
}

// IsTermination reports whether err is the quit signal returned by Update.
func IsTermination(err error) bool {
	return errors.Is(err, ebiten.Termination)
}
