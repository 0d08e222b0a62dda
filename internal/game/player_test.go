package game

import (
	"testing"

	"github.com/Garsondee/Pierre-Penguin/internal/config"
	"github.com/Garsondee/Pierre-Penguin/internal/sound"
)

type recordingSound struct {
	played []sound.Effect
}

func (r *recordingSound) Play(e sound.Effect) { r.played = append(r.played, e) }

func (r *recordingSound) count(e sound.Effect) int {
	n := 0
	for _, p := range r.played {
		if p == e {
			n++
		}
	}
	return n
}

// animateFor advances the player in 60Hz steps.
func animateFor(p *Player, seconds float64) {
	for i := 0; i < int(seconds*60+0.5); i++ {
		p.Animate(1.0 / 60)
	}
}

func newTestPlayer() (*Player, *recordingSound) {
	sfx := &recordingSound{}
	return NewPlayer(config.Default().Player, sfx), sfx
}

func TestPlayer_LaunchAndGravityDelay(t *testing.T) {
	p, _ := newTestPlayer()
	tn := config.Default().Player
	if p.Body.VY != tn.LaunchVelocity {
		t.Fatalf("expected launch vy=%.0f, got %.0f", tn.LaunchVelocity, p.Body.VY)
	}
	if p.Body.AffectedByGravity {
		t.Fatal("gravity should be held off at launch")
	}
	animateFor(p, tn.GravityDelay/2)
	if p.Body.AffectedByGravity {
		t.Fatal("gravity enabled too early")
	}
	animateFor(p, tn.GravityDelay)
	if !p.Body.AffectedByGravity {
		t.Fatal("gravity should be on after the delay")
	}
}

func TestPlayer_FlappingForceAndLimits(t *testing.T) {
	p, _ := newTestPlayer()
	tn := config.Default().Player

	p.StartFlapping()
	p.Update()
	if p.Body.fy != tn.MaxFlappingForce {
		t.Fatalf("expected full flapping force below falloff height, got %.0f", p.Body.fy)
	}
	if p.Body.VX != tn.ForwardVelocity {
		t.Fatalf("expected forward velocity %.0f, got %.0f", tn.ForwardVelocity, p.Body.VX)
	}

	p.Body.fy = 0
	p.Body.Y = 800
	p.Update()
	want := tn.MaxFlappingForce - (800/tn.MaxHeight)*tn.MaxFlappingForce
	if !approx(p.Body.fy, want) {
		t.Fatalf("expected falloff force %.0f, got %.0f", want, p.Body.fy)
	}

	p.Body.VY = 1000
	p.Update()
	if p.Body.VY != tn.MaxRiseSpeed {
		t.Fatalf("expected rise capped at %.0f, got %.0f", tn.MaxRiseSpeed, p.Body.VY)
	}

	p.StopFlapping()
	p.Body.fy = 0
	p.Update()
	if p.Body.fy != 0 || p.Flapping {
		t.Fatal("no lift after flapping stops")
	}
}

func TestPlayer_TextureFollowsFlapping(t *testing.T) {
	p, _ := newTestPlayer()
	if p.Texture() != "pierre-flying-1" {
		t.Fatalf("soaring texture = %s", p.Texture())
	}
	p.StartFlapping()
	p.Animate(0.035)
	if p.Texture() != "pierre-flying-2" {
		t.Fatalf("flapping should advance frames, got %s", p.Texture())
	}
}

func TestPlayer_TakeDamageBlinksThenRecovers(t *testing.T) {
	p, sfx := newTestPlayer()
	p.TakeDamage()
	if p.Health != 2 || !p.Damaged {
		t.Fatalf("expected health 2 and damaged, got %d %v", p.Health, p.Damaged)
	}
	if sfx.count(sound.EffectHurt) != 1 {
		t.Fatal("expected hurt sound")
	}

	p.TakeDamage()
	if p.Health != 2 {
		t.Fatal("damage while blinking should be ignored")
	}

	p.Animate(1.0 / 60)
	if p.Body.Category != CategoryDamagedPenguin {
		t.Fatalf("expected damaged category while blinking, got %s", p.Body.Category)
	}

	animateFor(p, 3.7)
	if p.Damaged || p.Body.Category != CategoryPenguin {
		t.Fatal("expected recovery after the blink sequence")
	}
	if !approx(p.Alpha, 1) {
		t.Fatalf("expected alpha restored, got %.3f", p.Alpha)
	}
}

func TestPlayer_DiesOnce(t *testing.T) {
	p, _ := newTestPlayer()
	deaths := 0
	p.OnDie = func() { deaths++ }
	p.Health = 1
	p.StartFlapping()

	p.TakeDamage()
	if !p.Dead() || p.Health != 0 {
		t.Fatalf("expected death at zero health, dead=%v health=%d", p.Dead(), p.Health)
	}
	if p.Flapping || p.ForwardVelocity != 0 {
		t.Fatal("dead penguin should stop flapping and stop moving forward")
	}
	p.Die()
	if deaths != 1 {
		t.Fatalf("OnDie should fire once, fired %d", deaths)
	}
	if p.Texture() != "pierre-dead" {
		t.Fatalf("expected dead texture, got %s", p.Texture())
	}

	p.StartFlapping()
	if p.Flapping {
		t.Fatal("dead penguin cannot flap")
	}
	animateFor(p, 5)
	if !p.Damaged {
		t.Fatal("dead penguin stays damaged")
	}
}

func TestPlayer_StarPower(t *testing.T) {
	p, sfx := newTestPlayer()
	tn := config.Default().Player
	p.StarPower()
	if !p.Invulnerable || !p.StarPowered() || p.ForwardVelocity != tn.StarVelocity {
		t.Fatal("star power should make Pierre fast and invulnerable")
	}
	if sfx.count(sound.EffectPowerup) != 1 {
		t.Fatal("expected powerup sound")
	}

	p.TakeDamage()
	if p.Health != tn.Health {
		t.Fatal("invulnerable Pierre took damage")
	}

	animateFor(p, 0.5)
	if !approx(p.Scale, 1.5) || !approx(p.Body.Radius, tn.Radius*1.5) {
		t.Fatalf("expected grown body, scale=%.2f radius=%.2f", p.Scale, p.Body.Radius)
	}

	animateFor(p, tn.StarDuration+1)
	if p.Invulnerable || p.StarPowered() || p.ForwardVelocity != tn.ForwardVelocity {
		t.Fatal("star power should wear off")
	}
	if !approx(p.Scale, 1) {
		t.Fatalf("expected normal size, got %.2f", p.Scale)
	}
}

func TestPlayer_StarPowerIgnoredWhenDead(t *testing.T) {
	p, _ := newTestPlayer()
	p.Die()
	p.StarPower()
	if p.StarPowered() || p.Invulnerable {
		t.Fatal("dead penguin cannot be star powered")
	}
}
