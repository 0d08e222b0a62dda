package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Pierre-Penguin/internal/config"
)

// dumpLog prints the full FlightLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, f *Flight) {
	t.Helper()
	entries := f.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

func TestFlight_DeterministicWithSeed(t *testing.T) {
	a := NewFlight(WithSeed(9), WithAutopilot())
	b := NewFlight(WithSeed(9), WithAutopilot())
	a.RunTicks(1200)
	b.RunTicks(1200)

	if a.Snapshot() != b.Snapshot() {
		t.Fatalf("same seed diverged:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
	if len(a.Log.Entries()) != len(b.Log.Entries()) {
		t.Fatalf("log lengths differ: %d vs %d", len(a.Log.Entries()), len(b.Log.Entries()))
	}
	if a.Outcome() != b.Outcome() {
		t.Fatal("outcomes differ")
	}
}

func TestFlight_HoldClimbsAndReleaseFalls(t *testing.T) {
	f := NewFlight(WithEncounters(coinCourse()))
	f.Hold(true)
	f.RunTicks(60)
	top := f.Snapshot().Y
	if top <= config.Default().Player.StartY {
		t.Fatalf("holding should climb, y=%.1f", top)
	}
	f.Hold(false)
	got := f.RunUntil(func(f *Flight) bool { return f.Snapshot().Y < top-50 }, 300)
	if got < 0 {
		t.Fatal("releasing should let Pierre fall")
	}
}

func TestFlight_RunUntilReturnsTick(t *testing.T) {
	f := NewFlight()
	tick := f.RunUntil(func(f *Flight) bool { return f.CurrentTick() == 25 }, 100)
	if tick != 25 {
		t.Fatalf("expected 25, got %d", tick)
	}
	if f.RunUntil(func(*Flight) bool { return false }, 10) != -1 {
		t.Fatal("expected -1 when the predicate never holds")
	}
}

func TestFlight_AutopilotStaysOffTheGround(t *testing.T) {
	idle := NewFlight(WithSeed(4))
	idle.RunTicks(600)
	if !idle.Log.HasEntry("damage", "hit", "ground") {
		t.Fatal("a penguin that never flaps should hit the ground")
	}

	pilot := NewFlight(WithSeed(4), WithAutopilot())
	pilot.RunTicks(600)
	if testing.Verbose() {
		dumpLog(t, pilot)
		t.Log(pilot.Log.Summary(pilot.Scene))
		t.Log(pilot.Reporter.WindowSummary().Format())
	}
	if pilot.Log.HasEntry("damage", "hit", "ground") {
		t.Fatalf("autopilot flew into the ground:\n%s", pilot.Log.Tail(120))
	}
	if pilot.Log.CountCategory("encounter", "placed") < 2 {
		t.Fatal("autopilot should reach several encounters")
	}
	if len(pilot.Reporter.History()) != 10 {
		t.Fatalf("expected a sample every second, got %d", len(pilot.Reporter.History()))
	}
}

func TestFlight_VerboseLogsFlaps(t *testing.T) {
	f := NewFlight(WithVerbose(true), WithEncounters(coinCourse()))
	f.Hold(true)
	f.RunTicks(5)
	f.Hold(false)
	f.RunTicks(5)
	if f.Log.CountCategory("flap", "start") != 1 || f.Log.CountCategory("flap", "stop") != 1 {
		t.Fatal("expected one flap start and stop")
	}
	if f.Log.CountCategory("camera", "position") != 10 {
		t.Fatal("verbose log should record the camera every tick")
	}

	quiet := NewFlight(WithEncounters(coinCourse()))
	quiet.Hold(true)
	quiet.RunTicks(5)
	if quiet.Log.CountCategory("flap", "start") != 0 {
		t.Fatal("flaps are verbose-only")
	}
}

func TestEventPanel_Ring(t *testing.T) {
	ep := NewEventPanel()
	for i := 0; i < panelMaxEntries+5; i++ {
		ep.Add(FlightLogEntry{Tick: i})
	}
	got := ep.Recent()
	if len(got) != panelMaxEntries {
		t.Fatalf("expected %d entries, got %d", panelMaxEntries, len(got))
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != panelMaxEntries+4 {
		t.Fatalf("ring order wrong: first=%d last=%d", got[0].Tick, got[len(got)-1].Tick)
	}
	ep.Reset()
	if len(ep.Recent()) != 0 {
		t.Fatal("reset should empty the panel")
	}
}

func TestOutcome_InFlightAndStruck(t *testing.T) {
	s := NewScene(noStarTuning(), coinCourse())
	holdAltitude(s, 400, 100)
	out := DetermineFlightOutcome(s)
	if out.Outcome != OutcomeInFlight || out.Description != "flight_in_progress" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if !strings.Contains(out.Summary(), "still flying") {
		t.Fatalf("unexpected summary %q", out.Summary())
	}

	s.Player.Health = 1
	s.damage("blade")
	out = DetermineFlightOutcome(s)
	if out.Outcome != OutcomeStruck || out.Cause != "blade" || out.Description != "struck_by_blade" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if !strings.Contains(out.Summary(), "before the blade got him") {
		t.Fatalf("unexpected summary %q", out.Summary())
	}
	if out.Outcome.String() != "struck" {
		t.Fatalf("outcome string %q", out.Outcome.String())
	}
}

func TestFlightReporter_Window(t *testing.T) {
	r := NewFlightReporter(100)
	if r.WindowSummary() != nil || r.Latest() != nil {
		t.Fatal("empty reporter should have no data")
	}
	r.history = []FlightSample{
		{Tick: 0, Altitude: 100, Health: 3, Distance: 0},
		{Tick: 60, Altitude: 200, Health: 3, Distance: 1, Coins: 1},
		{Tick: 120, Altitude: 300, Health: 3, Distance: 2, Coins: 1, Flapping: true},
		{Tick: 180, Altitude: 500, Health: 2, Distance: 3, Coins: 6, Damaged: true},
	}
	wr := r.WindowSummary()
	if wr.SampleCount != 2 || wr.FromTick != 120 || wr.ToTick != 180 {
		t.Fatalf("unexpected window %+v", wr)
	}
	if wr.AvgAltitude != 400 || wr.MinAltitude != 300 || wr.MaxAltitude != 500 {
		t.Fatalf("unexpected altitudes %+v", wr)
	}
	if wr.FlappingPct != 50 || wr.DamagedPct != 50 || wr.StarPct != 0 {
		t.Fatalf("unexpected percentages %+v", wr)
	}
	if wr.HealthLost != 1 || wr.CoinsGained != 5 || wr.MetersFlown != 1 {
		t.Fatalf("unexpected deltas %+v", wr)
	}
	if !strings.Contains(wr.Format(), "cruising") {
		t.Fatalf("unexpected format:\n%s", wr.Format())
	}
	if !strings.HasPrefix(r.FormatLatest(), "T=180 ") {
		t.Fatalf("unexpected latest %q", r.FormatLatest())
	}
}

func TestAutopilot_AvoidsBlockedLane(t *testing.T) {
	s := NewScene(noStarTuning(), []config.EncounterTemplate{
		{Name: "bat", Members: []config.MemberTemplate{{Kind: config.KindBat, X: 200, Y: 300}}},
	})
	s.Tick(Input{})

	a := NewAutopilot()
	if a.laneClear(s, 300) {
		t.Fatal("lane 300 is blocked by the bat")
	}
	if !a.laneClear(s, 450) || !a.laneClear(s, 150) {
		t.Fatal("other lanes should be clear")
	}
	if got := a.chooseLane(s); got != 150 {
		t.Fatalf("expected nearest clear lane 150, got %.0f", got)
	}

	// Pierre is above the low lane, so the autopilot lets him glide down.
	if in := a.Input(s); in.Pressed || in.Released || a.Target() != 150 {
		t.Fatalf("unexpected input %+v toward %.0f", in, a.Target())
	}
}
