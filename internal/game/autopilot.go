package game

import "math"

// Autopilot flies Pierre for headless runs. It looks ahead for enemies,
// picks the nearest clear altitude lane and flaps to hold it.
type Autopilot struct {
	Lanes     []float64
	LookAhead float64
	Margin    float64

	target  float64
	holding bool
}

// NewAutopilot returns an autopilot with four lanes between the ground and
// the top of the screen.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		Lanes:     []float64{150, 300, 450, 600},
		LookAhead: 300,
		Margin:    20,
		target:    300,
	}
}

// Target is the altitude the autopilot is holding.
func (a *Autopilot) Target() float64 { return a.target }

// Input decides this tick's press or release.
func (a *Autopilot) Input(s *Scene) Input {
	p := s.Player.Body
	a.target = a.chooseLane(s)

	// Predict a quarter second ahead so the climb does not overshoot.
	predicted := p.Y + p.VY*0.25
	want := predicted < a.target
	var in Input
	switch {
	case want && !a.holding:
		in.Pressed = true
	case !want && a.holding:
		in.Released = true
	}
	a.holding = want
	return in
}

func (a *Autopilot) chooseLane(s *Scene) float64 {
	p := s.Player.Body
	best, bestDist := a.target, math.Inf(1)
	for _, lane := range a.Lanes {
		if !a.laneClear(s, lane) {
			continue
		}
		if d := math.Abs(lane - p.Y); d < bestDist {
			best, bestDist = lane, d
		}
	}
	return best
}

func (a *Autopilot) laneClear(s *Scene, lane float64) bool {
	p := s.Player.Body
	for _, e := range s.Encounters.Enemies() {
		b := e.Body
		if !b.Enabled || b.X < p.X-p.Radius || b.X > p.X+a.LookAhead {
			continue
		}
		_, minY, _, maxY := b.bounds()
		if lane+p.Radius+a.Margin > minY && lane-p.Radius-a.Margin < maxY {
			return false
		}
	}
	return true
}
