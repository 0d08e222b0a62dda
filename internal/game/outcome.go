package game

import "fmt"

type FlightOutcome int

const (
	OutcomeInFlight FlightOutcome = iota
	OutcomeGrounded
	OutcomeStruck
)

func (o FlightOutcome) String() string {
	switch o {
	case OutcomeInFlight:
		return "in_flight"
	case OutcomeGrounded:
		return "grounded"
	case OutcomeStruck:
		return "struck"
	default:
		return "unknown"
	}
}

type FlightOutcomeReason struct {
	Outcome     FlightOutcome
	Cause       string // what dealt the final hit: "ground", "bat", "blade", "madfly"
	Distance    int    // meters
	Coins       int
	Ticks       int
	Hits        int
	Stars       int
	Encounters  int
	Description string
}

// Summary is a one-line report of the flight, suitable for sharing.
func (r FlightOutcomeReason) Summary() string {
	if r.Outcome == OutcomeInFlight {
		return fmt.Sprintf("Pierre is still flying: %dm, %d coins", r.Distance, r.Coins)
	}
	return fmt.Sprintf("Pierre flew %dm and collected %d coins before the %s got him (%d hits, %d stars)",
		r.Distance, r.Coins, r.Cause, r.Hits, r.Stars)
}

func DetermineFlightOutcome(s *Scene) FlightOutcomeReason {
	r := FlightOutcomeReason{
		Outcome:    OutcomeInFlight,
		Cause:      s.cause,
		Distance:   s.DistanceMeters(),
		Coins:      s.Coins(),
		Ticks:      s.Ticks(),
		Hits:       s.Log.CountCategory("damage", "hit"),
		Stars:      s.Log.CountCategory("star", "collected"),
		Encounters: s.Log.CountCategory("encounter", "placed"),
	}
	if !s.GameOver() {
		r.Description = "flight_in_progress"
		return r
	}
	if s.cause == "ground" {
		r.Outcome = OutcomeGrounded
		r.Description = "crashed_into_ground"
	} else {
		r.Outcome = OutcomeStruck
		r.Description = "struck_by_" + s.cause
	}
	return r
}
