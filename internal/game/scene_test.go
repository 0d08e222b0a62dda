package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Pierre-Penguin/internal/config"
)

// coinCourse is a pair of harmless encounters with one coin each at y=400.
func coinCourse() []config.EncounterTemplate {
	return []config.EncounterTemplate{
		{Name: "bronze", Members: []config.MemberTemplate{{Kind: config.KindBronzeCoin, X: 300, Y: 400}}},
		{Name: "gold", Members: []config.MemberTemplate{{Kind: config.KindGoldCoin, X: 300, Y: 400}}},
	}
}

func noStarTuning() config.Tuning {
	t := config.Default()
	t.Spawn.StarChance = 0
	return t
}

// holdAltitude pins Pierre at y before every tick.
func holdAltitude(s *Scene, y float64, ticks int) {
	for i := 0; i < ticks; i++ {
		s.Player.Body.Y = y
		s.Player.Body.VY = 0
		s.Tick(Input{})
	}
}

func TestScene_FallingPierreHitsTheGround(t *testing.T) {
	s := NewScene(noStarTuning(), coinCourse(), WithSceneSeed(3))
	for i := 0; i < 600 && s.Player.Health == 3; i++ {
		s.Tick(Input{})
	}
	if s.Player.Health != 2 {
		t.Fatalf("expected one ground hit, health=%d", s.Player.Health)
	}
	hits := s.Log.Filter("damage", "hit")
	if len(hits) != 1 || !strings.HasPrefix(hits[0].Value, "ground") {
		t.Fatalf("expected a ground hit, got %v", hits)
	}
	if !s.Log.HasEntry("contact", "ground", "") {
		t.Fatal("ground contact not logged")
	}

	// Sliding along the ground is one continuous contact.
	for i := 0; i < 300; i++ {
		s.Tick(Input{})
	}
	if s.Player.Health != 2 {
		t.Fatalf("resting on the ground should not keep hurting, health=%d", s.Player.Health)
	}
}

func TestScene_EncounterCadenceAndCoins(t *testing.T) {
	s := NewScene(noStarTuning(), coinCourse(), WithSceneSeed(11))
	holdAltitude(s, 400, 800)

	placed := s.Log.Filter("encounter", "placed")
	if len(placed) < 3 {
		t.Fatalf("expected at least 3 placements, got %d", len(placed))
	}
	for i, want := range []float64{150, 1350, 2550} {
		if placed[i].NumVal != want {
			t.Fatalf("placement %d at x=%.0f, want %.0f", i, placed[i].NumVal, want)
		}
	}
	if s.NextEncounterX() != 3750 {
		t.Fatalf("next encounter x=%.0f", s.NextEncounterX())
	}
	if s.Coins() != 6 {
		t.Fatalf("expected one bronze and one gold coin, got %d", s.Coins())
	}
	if s.Log.CountCategory("coin", "collected") != 2 {
		t.Fatal("expected two coin entries")
	}
	if s.Player.Health != 3 {
		t.Fatalf("coins should not hurt, health=%d", s.Player.Health)
	}
}

func TestScene_ProgressDrivesGroundAndDistance(t *testing.T) {
	s := NewScene(noStarTuning(), coinCourse())
	holdAltitude(s, 400, 700)
	if !approx(s.Progress(), s.Player.Body.X-150) {
		t.Fatalf("progress %.1f does not track x %.1f", s.Progress(), s.Player.Body.X)
	}
	if s.DistanceMeters() != int(s.Progress()/150) {
		t.Fatalf("distance %d for progress %.0f", s.DistanceMeters(), s.Progress())
	}
	if s.Ground.Left == -2048 {
		t.Fatal("ground should have jumped forward")
	}
	if s.Ticks() != 700 {
		t.Fatalf("expected 700 ticks, got %d", s.Ticks())
	}
}

func TestScene_Camera(t *testing.T) {
	s := NewScene(noStarTuning(), coinCourse())
	holdAltitude(s, 200, 1)
	if s.Camera.Y != s.Tuning.ScreenCenterY() || s.Camera.Scale != 1 {
		t.Fatalf("low flight camera: %+v", s.Camera)
	}

	holdAltitude(s, 692, 1)
	y := s.Player.Body.Y
	center := s.Tuning.ScreenCenterY()
	want := 1 + (y-center)/(s.Tuning.Player.MaxHeight-center)
	if s.Camera.Y != y || !approx(s.Camera.Scale, want) {
		t.Fatalf("high flight camera: %+v, want y=%.1f scale=%.3f", s.Camera, y, want)
	}
	if s.Camera.X != s.Player.Body.X {
		t.Fatal("camera should follow Pierre horizontally")
	}
}

func TestScene_StarSpawnsAndPowersUp(t *testing.T) {
	tn := config.Default()
	tn.Spawn.StarChance = 1
	s := NewScene(tn, []config.EncounterTemplate{
		{Name: "high", Members: []config.MemberTemplate{{Kind: config.KindBronzeCoin, X: 300, Y: 900}}},
	}, WithSceneSeed(5))

	holdAltitude(s, 400, 1)
	if s.Star.Parked() {
		t.Fatal("star should spawn on the first placement")
	}
	if s.Star.Body.X != 1350 {
		t.Fatalf("star should wait at the next encounter x, got %.0f", s.Star.Body.X)
	}
	starY := s.Star.Body.Y
	if starY < tn.Spawn.StarMinY || starY >= tn.Spawn.StarMinY+float64(tn.Spawn.StarRangeY) {
		t.Fatalf("star y=%.0f outside spawn range", starY)
	}

	for i := 0; i < 600 && !s.Player.StarPowered(); i++ {
		holdAltitude(s, starY, 1)
	}
	if !s.Player.StarPowered() {
		t.Fatal("flying through the star should grant star power")
	}
	if !s.Star.Parked() {
		t.Fatal("collected star should be parked")
	}
	if s.Log.CountCategory("star", "collected") != 1 {
		t.Fatal("expected one star collection")
	}
}

func TestScene_GameOverFiresOnce(t *testing.T) {
	var outcomes []FlightOutcomeReason
	s := NewScene(noStarTuning(), coinCourse(), WithGameOverHook(func(r FlightOutcomeReason) {
		outcomes = append(outcomes, r)
	}))
	s.Player.Health = 1
	for i := 0; i < 600 && !s.GameOver(); i++ {
		s.Tick(Input{})
	}
	if !s.GameOver() || s.Cause() != "ground" {
		t.Fatalf("expected a ground game over, over=%v cause=%q", s.GameOver(), s.Cause())
	}
	for i := 0; i < 120; i++ {
		s.Tick(Input{Pressed: true})
	}
	if len(outcomes) != 1 {
		t.Fatalf("game over hook fired %d times", len(outcomes))
	}
	if outcomes[0].Outcome != OutcomeGrounded || outcomes[0].Cause != "ground" {
		t.Fatalf("unexpected outcome %+v", outcomes[0])
	}
	if s.Player.Flapping {
		t.Fatal("flaps are ignored after game over")
	}
	if !s.Log.HasEntry("state", "game_over", "cause=ground") {
		t.Fatal("game over not logged")
	}
}

func TestScene_EnemyContactDamages(t *testing.T) {
	s := NewScene(noStarTuning(), []config.EncounterTemplate{
		{Name: "bat", Members: []config.MemberTemplate{{Kind: config.KindBat, X: 300, Y: 400}}},
	})
	holdAltitude(s, 400, 200)
	hits := s.Log.Filter("damage", "hit")
	if len(hits) != 1 || !strings.HasPrefix(hits[0].Value, "bat") {
		t.Fatalf("expected one bat hit, got %v", hits)
	}
	if !s.Player.Damaged {
		t.Fatal("Pierre should be blinking after the hit")
	}
}

func TestScene_InputStartsAndStopsFlapping(t *testing.T) {
	s := NewScene(noStarTuning(), coinCourse())
	s.Tick(Input{Pressed: true})
	if !s.Player.Flapping {
		t.Fatal("press should start flapping")
	}
	s.Tick(Input{})
	if !s.Player.Flapping {
		t.Fatal("flapping continues while held")
	}
	s.Tick(Input{Released: true})
	if s.Player.Flapping {
		t.Fatal("release should stop flapping")
	}
}

func TestScene_QuickTapStillLifts(t *testing.T) {
	tapped := NewScene(noStarTuning(), coinCourse())
	idle := NewScene(noStarTuning(), coinCourse())
	tapped.Tick(Input{Pressed: true, Released: true})
	idle.Tick(Input{})

	if !tapped.Player.Flapping {
		t.Fatal("a tap should flap for the tick it began in")
	}
	if tapped.Player.Body.VY <= idle.Player.Body.VY {
		t.Fatalf("tap gave no lift: vy=%.2f idle=%.2f", tapped.Player.Body.VY, idle.Player.Body.VY)
	}
	tapped.Tick(Input{})
	if tapped.Player.Flapping {
		t.Fatal("the tap's release should land on the next tick")
	}
}

func TestScene_PressAfterCarriedReleaseKeepsFlapping(t *testing.T) {
	s := NewScene(noStarTuning(), coinCourse())
	s.Tick(Input{Pressed: true, Released: true})
	s.Tick(Input{Pressed: true})
	if !s.Player.Flapping {
		t.Fatal("a new press should win over the previous tap's release")
	}
}

func TestInput_Merge(t *testing.T) {
	tap := []Point{{X: 1, Y: 2}}
	tests := []struct {
		name     string
		frames   [][2]bool // pressed, released per frame
		pressed  bool
		released bool
	}{
		{"press", [][2]bool{{true, false}}, true, false},
		{"release", [][2]bool{{false, true}}, false, true},
		{"tap in one frame", [][2]bool{{true, true}}, true, true},
		{"press then release", [][2]bool{{true, false}, {false, true}}, true, true},
		{"release then press", [][2]bool{{false, true}, {true, false}}, true, false},
		{"idle", [][2]bool{{false, false}}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Input
			for _, f := range tt.frames {
				in.merge(f[0], f[1], tap)
			}
			if in.Pressed != tt.pressed || in.Released != tt.released {
				t.Fatalf("got pressed=%v released=%v, want %v %v", in.Pressed, in.Released, tt.pressed, tt.released)
			}
			presses := 0
			for _, f := range tt.frames {
				if f[0] {
					presses++
				}
			}
			if len(in.Taps) != presses {
				t.Fatalf("expected %d taps, got %d", presses, len(in.Taps))
			}
		})
	}
}

func TestScene_SpriteAt(t *testing.T) {
	s := NewScene(noStarTuning(), coinCourse())
	p := s.Player.Body
	if s.SpriteAt(Point{X: p.X, Y: p.Y}) != GameSprite(s.Player) {
		t.Fatal("expected Pierre under the tap")
	}
	if s.SpriteAt(Point{X: p.X + 500, Y: 700}) != nil {
		t.Fatal("expected nothing under an empty tap")
	}
}

func TestScene_SameSeedSameCourse(t *testing.T) {
	run := func() []FlightLogEntry {
		s := NewScene(config.Default(), config.DefaultEncounters(), WithSceneSeed(99))
		holdAltitude(s, 700, 1500)
		return s.Log.Filter("encounter", "placed")
	}
	a, b := run(), run()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("placement counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestScene_LayersDrawFarToNear(t *testing.T) {
	tn := noStarTuning()
	layers := tn.Background.Layers
	reversed := make([]config.LayerTuning, len(layers))
	for i, l := range layers {
		reversed[len(layers)-1-i] = l
	}
	tn.Background.Layers = reversed

	s := NewScene(tn, coinCourse())
	want := []string{"far", "back", "middle", "front"}
	if len(s.Layers) != len(want) {
		t.Fatalf("expected %d layers, got %d", len(want), len(s.Layers))
	}
	for i, l := range s.Layers {
		if l.Name != want[i] {
			t.Fatalf("layer %d is %s, want %s", i, l.Name, want[i])
		}
		if i > 0 && s.Layers[i-1].Z > l.Z {
			t.Fatalf("layer %s (z=%d) drawn after nearer %s (z=%d)", l.Name, l.Z, s.Layers[i-1].Name, s.Layers[i-1].Z)
		}
	}
}
