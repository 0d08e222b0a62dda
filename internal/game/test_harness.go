package game

import (
	"github.com/Garsondee/Pierre-Penguin/internal/config"
)

// Flight is a headless harness around a Scene, used by tests and the
// headless report. It mirrors Game.Update without Ebitengine and supports
// deterministic seeding, scripted input and an autopilot.
type Flight struct {
	Scene    *Scene
	Log      *FlightLog
	Reporter *FlightReporter

	tuning     config.Tuning
	encounters []config.EncounterTemplate
	seed       int64
	verbose    bool
	pilot      *Autopilot
	holding    bool
	outcome    *FlightOutcomeReason
}

// FlightOption is a builder function applied to a Flight before its scene
// is built.
type FlightOption func(*Flight)

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) FlightOption {
	return func(f *Flight) { f.seed = seed }
}

// WithTuning replaces the default tuning.
func WithTuning(t config.Tuning) FlightOption {
	return func(f *Flight) { f.tuning = t }
}

// WithEncounters replaces the default encounter layouts.
func WithEncounters(e []config.EncounterTemplate) FlightOption {
	return func(f *Flight) { f.encounters = e }
}

// WithAutopilot lets an Autopilot supply input every tick.
func WithAutopilot() FlightOption {
	return func(f *Flight) { f.pilot = NewAutopilot() }
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) FlightOption {
	return func(f *Flight) { f.verbose = v }
}

// NewFlight builds a Flight from defaults plus options.
func NewFlight(opts ...FlightOption) *Flight {
	f := &Flight{
		tuning:     config.Default(),
		encounters: config.DefaultEncounters(),
		seed:       1,
	}
	for _, o := range opts {
		o(f)
	}
	f.Log = NewFlightLog(f.verbose)
	f.Reporter = NewFlightReporter(reportWindowTicks)
	f.Scene = NewScene(f.tuning, f.encounters,
		WithSceneSeed(f.seed),
		WithFlightLog(f.Log),
		WithGameOverHook(func(r FlightOutcomeReason) { f.outcome = &r }),
	)
	return f
}

// Hold presses (true) or releases (false) from the next tick on. Ignored
// while the autopilot flies.
func (f *Flight) Hold(down bool) {
	f.holding = down
}

// RunTicks advances the flight n ticks.
func (f *Flight) RunTicks(n int) {
	for i := 0; i < n; i++ {
		f.runOneTick()
	}
}

// RunUntil advances the flight up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (f *Flight) RunUntil(predicate func(*Flight) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		f.runOneTick()
		if predicate(f) {
			return f.Scene.Ticks()
		}
	}
	return -1
}

func (f *Flight) runOneTick() {
	var in Input
	if f.pilot != nil {
		in = f.pilot.Input(f.Scene)
	} else {
		switch {
		case f.holding && !f.Scene.Player.Flapping:
			in.Pressed = true
		case !f.holding && f.Scene.Player.Flapping:
			in.Released = true
		}
	}
	f.Scene.Tick(in)
	if f.Scene.Ticks()%sampleInterval == 0 {
		f.Reporter.Collect(f.Scene)
	}
}

// CurrentTick returns the current flight tick.
func (f *Flight) CurrentTick() int {
	return f.Scene.Ticks()
}

// Outcome reports how the flight ended, or its state so far.
func (f *Flight) Outcome() FlightOutcomeReason {
	if f.outcome != nil {
		return *f.outcome
	}
	return DetermineFlightOutcome(f.Scene)
}

// FlightSnapshot is a lightweight copy of the flight state at a tick.
type FlightSnapshot struct {
	Tick      int
	X, Y      float64
	VX, VY    float64
	Health    int
	Coins     int
	Progress  float64
	Damaged   bool
	Invuln    bool
	GameOver  bool
	CameraY   float64
	CameraScl float64
}

// Snapshot returns the current state of the flight.
func (f *Flight) Snapshot() FlightSnapshot {
	s, p := f.Scene, f.Scene.Player
	return FlightSnapshot{
		Tick:      s.Ticks(),
		X:         p.Body.X,
		Y:         p.Body.Y,
		VX:        p.Body.VX,
		VY:        p.Body.VY,
		Health:    p.Health,
		Coins:     s.Coins(),
		Progress:  s.Progress(),
		Damaged:   p.Damaged,
		Invuln:    p.Invulnerable,
		GameOver:  s.GameOver(),
		CameraY:   s.Camera.Y,
		CameraScl: s.Camera.Scale,
	}
}
