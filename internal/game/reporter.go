package game

import (
	"fmt"
	"math"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-flight reports (~10s at 60TPS).
const reportWindowTicks = 600

// FlightSample captures Pierre's state at one tick.
type FlightSample struct {
	Tick        int
	Altitude    float64
	VY          float64
	Speed       float64
	Health      int
	Coins       int
	Distance    int
	CameraScale float64
	Flapping    bool
	Damaged     bool
	StarPowered bool
}

// FlightReporter collects periodic samples from a flight and can produce
// summaries over sliding time windows.
type FlightReporter struct {
	history     []FlightSample
	windowTicks int
}

// NewFlightReporter creates a reporter with the given window size.
func NewFlightReporter(windowTicks int) *FlightReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &FlightReporter{windowTicks: windowTicks}
}

// Collect records a sample from the current scene state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *FlightReporter) Collect(s *Scene) {
	p := s.Player
	r.history = append(r.history, FlightSample{
		Tick:        s.Ticks(),
		Altitude:    p.Body.Y,
		VY:          p.Body.VY,
		Speed:       p.Body.VX,
		Health:      p.Health,
		Coins:       s.Coins(),
		Distance:    s.DistanceMeters(),
		CameraScale: s.Camera.Scale,
		Flapping:    p.Flapping,
		Damaged:     p.Damaged,
		StarPowered: p.StarPowered(),
	})
}

// Latest returns the most recent sample, or nil.
func (r *FlightReporter) Latest() *FlightSample {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected samples.
func (r *FlightReporter) History() []FlightSample {
	return r.history
}

// WindowReport aggregates the samples of one window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgAltitude, MinAltitude, MaxAltitude float64
	AvgSpeed                              float64
	MaxCameraScale                        float64

	FlappingPct float64
	DamagedPct  float64
	StarPct     float64

	HealthLost  int
	CoinsGained int
	MetersFlown int
}

// WindowSummary aggregates the samples within the recent window.
func (r *FlightReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	latest := r.history[len(r.history)-1]
	cutoff := latest.Tick - r.windowTicks
	start := len(r.history) - 1
	for start > 0 && r.history[start-1].Tick >= cutoff {
		start--
	}
	window := r.history[start:]
	first := window[0]

	wr := &WindowReport{
		FromTick:    first.Tick,
		ToTick:      latest.Tick,
		SampleCount: len(window),
		MinAltitude: math.Inf(1),
		MaxAltitude: math.Inf(-1),
		HealthLost:  first.Health - latest.Health,
		CoinsGained: latest.Coins - first.Coins,
		MetersFlown: latest.Distance - first.Distance,
	}
	var flap, dmg, star int
	for _, smp := range window {
		wr.AvgAltitude += smp.Altitude
		wr.AvgSpeed += smp.Speed
		wr.MinAltitude = math.Min(wr.MinAltitude, smp.Altitude)
		wr.MaxAltitude = math.Max(wr.MaxAltitude, smp.Altitude)
		wr.MaxCameraScale = math.Max(wr.MaxCameraScale, smp.CameraScale)
		if smp.Flapping {
			flap++
		}
		if smp.Damaged {
			dmg++
		}
		if smp.StarPowered {
			star++
		}
	}
	n := float64(len(window))
	wr.AvgAltitude /= n
	wr.AvgSpeed /= n
	wr.FlappingPct = 100 * float64(flap) / n
	wr.DamagedPct = 100 * float64(dmg) / n
	wr.StarPct = 100 * float64(star) / n
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Flight Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  altitude avg=%.0f min=%.0f max=%.0f (%s)\n",
		wr.AvgAltitude, wr.MinAltitude, wr.MaxAltitude, altitudeLabel(wr.AvgAltitude))
	fmt.Fprintf(&sb, "  speed avg=%.0f  zoom max=%.2f\n", wr.AvgSpeed, wr.MaxCameraScale)
	fmt.Fprintf(&sb, "  flapping=%.0f%%  damaged=%.0f%%  star=%.0f%%\n",
		wr.FlappingPct, wr.DamagedPct, wr.StarPct)
	fmt.Fprintf(&sb, "  +%dm  +%d coins  -%d health\n", wr.MetersFlown, wr.CoinsGained, wr.HealthLost)
	return sb.String()
}

func altitudeLabel(y float64) string {
	switch {
	case y > 700:
		return "stratosphere"
	case y > 450:
		return "high"
	case y > 200:
		return "cruising"
	default:
		return "skimming"
	}
}

// FormatLatest returns a concise snapshot of the most recent sample.
func (r *FlightReporter) FormatLatest() string {
	smp := r.Latest()
	if smp == nil {
		return "No data.\n"
	}
	return fmt.Sprintf("T=%d y=%.0f vy=%+.0f vx=%.0f hp=%d coins=%d %dm zoom=%.2f\n",
		smp.Tick, smp.Altitude, smp.VY, smp.Speed, smp.Health, smp.Coins, smp.Distance, smp.CameraScale)
}
