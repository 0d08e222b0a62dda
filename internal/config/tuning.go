// Package config loads the YAML game-feel tuning and encounter layouts for
// Pierre's flight.
package config

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidTuning is returned when a tuning value is out of range.
	ErrInvalidTuning = errors.New("config: invalid tuning")
	// ErrNoEncounters is returned when an encounter file defines nothing to place.
	ErrNoEncounters = errors.New("config: no encounters defined")
)

// Tuning holds every game-feel constant of a flight.
type Tuning struct {
	Screen     ScreenTuning     `yaml:"screen"`
	Physics    PhysicsTuning    `yaml:"physics"`
	Player     PlayerTuning     `yaml:"player"`
	Spawn      SpawnTuning      `yaml:"spawn"`
	Background BackgroundTuning `yaml:"background"`
	Audio      AudioTuning      `yaml:"audio"`
}

// ScreenTuning is the logical (landscape) resolution of the scene.
type ScreenTuning struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsTuning defines world-level physics.
type PhysicsTuning struct {
	Gravity        float64 `yaml:"gravity"`          // m/s², negative is down
	PointsPerMeter float64 `yaml:"points_per_meter"` // world points per physics meter
	GroundY        float64 `yaml:"ground_y"`         // top edge of the ground
	TicksPerSecond int     `yaml:"ticks_per_second"`
}

// PlayerTuning defines Pierre's body and flight feel.
type PlayerTuning struct {
	StartX             float64 `yaml:"start_x"`
	StartY             float64 `yaml:"start_y"`
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Radius             float64 `yaml:"radius"`
	Health             int     `yaml:"health"`
	Mass               float64 `yaml:"mass"`
	LinearDamping      float64 `yaml:"linear_damping"`
	MaxFlappingForce   float64 `yaml:"max_flapping_force"`
	ForceFalloffHeight float64 `yaml:"force_falloff_height"`
	MaxHeight          float64 `yaml:"max_height"`
	MaxRiseSpeed       float64 `yaml:"max_rise_speed"`
	ForwardVelocity    float64 `yaml:"forward_velocity"`
	StarVelocity       float64 `yaml:"star_velocity"`
	StarDuration       float64 `yaml:"star_duration"` // seconds at full size
	LaunchVelocity     float64 `yaml:"launch_velocity"`
	GravityDelay       float64 `yaml:"gravity_delay"` // seconds before gravity applies
}

// SpawnTuning controls encounter and power-up placement along the scroll axis.
type SpawnTuning struct {
	FirstEncounterX     float64 `yaml:"first_encounter_x"`
	EncounterSpacing    float64 `yaml:"encounter_spacing"`
	StarChance          float64 `yaml:"star_chance"`
	StarMinY            float64 `yaml:"star_min_y"`
	StarRangeY          int     `yaml:"star_range_y"`
	StarRespawnDistance float64 `yaml:"star_respawn_distance"`
}

// BackgroundTuning describes the parallax sheets.
type BackgroundTuning struct {
	TileWidth  float64       `yaml:"tile_width"`
	TileHeight float64       `yaml:"tile_height"`
	Layers     []LayerTuning `yaml:"layers"`
}

// LayerTuning is one parallax sheet.
type LayerTuning struct {
	Name       string  `yaml:"name"`
	Z          int     `yaml:"z"`
	Multiplier float64 `yaml:"multiplier"` // 0 stays fixed on screen, 1 scrolls with the world
}

// LayersByDepth returns the layers ordered far to near (ascending Z), the
// order they are drawn in. Layers sharing a Z keep their file order.
func (b BackgroundTuning) LayersByDepth() []LayerTuning {
	out := append([]LayerTuning(nil), b.Layers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// AudioTuning holds default volumes.
type AudioTuning struct {
	MusicVolume   float64 `yaml:"music_volume"`
	EffectsVolume float64 `yaml:"effects_volume"`
	Muted         bool    `yaml:"muted"`
}

// ScreenCenterY is the camera's resting height.
func (t Tuning) ScreenCenterY() float64 {
	return float64(t.Screen.Height) / 2
}

// Validate reports the first out-of-range value, wrapped in ErrInvalidTuning.
func (t Tuning) Validate() error {
	switch {
	case t.Screen.Width <= 0 || t.Screen.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidTuning, t.Screen.Width, t.Screen.Height)
	case t.Physics.PointsPerMeter <= 0:
		return fmt.Errorf("%w: points_per_meter %.2f", ErrInvalidTuning, t.Physics.PointsPerMeter)
	case t.Physics.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticks_per_second %d", ErrInvalidTuning, t.Physics.TicksPerSecond)
	case t.Player.Health <= 0:
		return fmt.Errorf("%w: health %d", ErrInvalidTuning, t.Player.Health)
	case t.Player.Mass <= 0:
		return fmt.Errorf("%w: mass %.2f", ErrInvalidTuning, t.Player.Mass)
	case t.Player.MaxHeight <= t.ScreenCenterY():
		return fmt.Errorf("%w: max_height %.0f must be above screen centre %.0f",
			ErrInvalidTuning, t.Player.MaxHeight, t.ScreenCenterY())
	case t.Spawn.EncounterSpacing <= 0:
		return fmt.Errorf("%w: encounter_spacing %.0f", ErrInvalidTuning, t.Spawn.EncounterSpacing)
	case t.Spawn.StarChance < 0 || t.Spawn.StarChance > 1:
		return fmt.Errorf("%w: star_chance %.2f", ErrInvalidTuning, t.Spawn.StarChance)
	case t.Spawn.StarRangeY <= 0:
		return fmt.Errorf("%w: star_range_y %d", ErrInvalidTuning, t.Spawn.StarRangeY)
	case t.Background.TileWidth <= 0:
		return fmt.Errorf("%w: tile_width %.0f", ErrInvalidTuning, t.Background.TileWidth)
	}
	for _, l := range t.Background.Layers {
		if l.Multiplier < 0 || l.Multiplier > 1 {
			return fmt.Errorf("%w: layer %q multiplier %.2f", ErrInvalidTuning, l.Name, l.Multiplier)
		}
	}
	return nil
}
