package main

import (
	"testing"

	"github.com/Garsondee/Pierre-Penguin/internal/game"
)

func TestSummarizeCountsOutcomes(t *testing.T) {
	all := []runStats{
		{seed: 1, firstHitTick: 100, outcome: game.FlightOutcomeReason{Outcome: game.OutcomeGrounded, Cause: "ground", Distance: 40, Coins: 3, Hits: 3}},
		{seed: 2, firstHitTick: 300, outcome: game.FlightOutcomeReason{Outcome: game.OutcomeStruck, Cause: "bat", Distance: 90, Coins: 7, Hits: 3}},
		{seed: 3, firstHitTick: -1, outcome: game.FlightOutcomeReason{Outcome: game.OutcomeInFlight, Distance: 20}},
	}

	agg := summarize(all)
	if agg.runs != 3 {
		t.Fatalf("expected 3 runs, got %d", agg.runs)
	}
	if agg.grounded != 1 || agg.struck != 1 || agg.flying != 1 {
		t.Fatalf("expected 1/1/1 outcomes, got grounded=%d struck=%d flying=%d", agg.grounded, agg.struck, agg.flying)
	}
	if agg.bestDistance != 90 || agg.bestSeed != 2 {
		t.Fatalf("expected best 90m from seed 2, got %dm seed %d", agg.bestDistance, agg.bestSeed)
	}
	if agg.avgDistance != 50 {
		t.Fatalf("expected avg distance 50, got %.1f", agg.avgDistance)
	}
	if agg.firstHitAvg != "200.0" {
		t.Fatalf("expected first hit avg 200.0, got %s", agg.firstHitAvg)
	}
	if got := joinCounts(agg.causes); got != "bat=1,ground=1" {
		t.Fatalf("unexpected causes: %s", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	agg := summarize(nil)
	if agg.runs != 0 || agg.avgDistance != 0 || agg.firstHitAvg != "n/a" {
		t.Fatalf("unexpected empty aggregate: %+v", agg)
	}
	if joinCounts(agg.causes) != "none" {
		t.Fatalf("expected no causes")
	}
}

func TestFirstTick(t *testing.T) {
	entries := []game.FlightLogEntry{
		{Tick: 5, Category: "coin", Key: "collected", Value: "bronze"},
		{Tick: 9, Category: "damage", Key: "hit", Value: "ground"},
		{Tick: 12, Category: "damage", Key: "hit", Value: "bat"},
	}
	if got := firstTick(entries, "damage", "hit", ""); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := firstTick(entries, "damage", "hit", "bat"); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := firstTick(entries, "star", "collected", ""); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestRunAllIsDeterministic(t *testing.T) {
	a, failedA, err := runAll(3, 900, 7, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	b, failedB, err := runAll(3, 900, 7, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if failedA != 0 || failedB != 0 {
		t.Fatalf("unexpected panics: %d %d", failedA, failedB)
	}
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("expected 3 runs each, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].seed != b[i].seed || a[i].outcome != b[i].outcome || a[i].finalEvents != b[i].finalEvents {
			t.Fatalf("run %d differs: %+v vs %+v", i+1, a[i].outcome, b[i].outcome)
		}
	}
}

func TestRunFlightStillFlyingHasNoFinalEvents(t *testing.T) {
	rs := runFlight(1, 7, 30)
	if rs.outcome.Outcome != game.OutcomeInFlight {
		t.Fatalf("expected a flight in progress after 30 ticks, got %s", rs.outcome.Outcome)
	}
	if rs.finalEvents != "" {
		t.Fatalf("final events recorded before game over:\n%s", rs.finalEvents)
	}
	if rs.groundHits != 0 || rs.enemyHits != 0 {
		t.Fatalf("unexpected hits: ground=%d enemy=%d", rs.groundHits, rs.enemyHits)
	}
}
