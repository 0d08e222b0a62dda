package game

import (
	"github.com/Garsondee/Pierre-Penguin/internal/config"
	"github.com/Garsondee/Pierre-Penguin/internal/sound"
)

// SoundPlayer plays one-shot effects. The headless scene uses a silent one.
type SoundPlayer interface {
	Play(e sound.Effect)
}

type silentSound struct{}

func (silentSound) Play(sound.Effect) {}

// Timeline keys for the player's sequences.
const (
	seqFlap      = "flapAnimation"
	seqSoar      = "soarAnimation"
	seqDamage    = "damage"
	seqDie       = "die"
	seqStarPower = "starPower"
	seqGravity   = "startGravity"
)

// Player is Pierre.
type Player struct {
	Body *Body

	Health          int
	MaxHealth       int
	Invulnerable    bool
	Damaged         bool
	Flapping        bool
	ForwardVelocity float64

	Alpha    float64
	Scale    float64
	Rotation float64 // radians, counter-clockwise

	anim     *FrameAnimation
	dead     bool
	timeline Timeline
	tuning   config.PlayerTuning
	sfx      SoundPlayer

	// OnDie is called once when health reaches zero.
	OnDie func()
}

var (
	flyFrames  = []string{"pierre-flying-1", "pierre-flying-2", "pierre-flying-3", "pierre-flying-4", "pierre-flying-3", "pierre-flying-2"}
	soarFrames = []string{"pierre-flying-1"}
)

// NewPlayer creates Pierre at the start position, launching slightly upward
// with gravity held off for a moment.
func NewPlayer(t config.PlayerTuning, sfx SoundPlayer) *Player {
	if sfx == nil {
		sfx = silentSound{}
	}
	p := &Player{
		Body: &Body{
			X:             t.StartX,
			Y:             t.StartY,
			VY:            t.LaunchVelocity,
			Mass:          t.Mass,
			LinearDamping: t.LinearDamping,
			Dynamic:       true,
			Shape:         ShapeCircle,
			Radius:        t.Radius,
			Category:      CategoryPenguin,
			CollisionMask: CategoryGround,
			ContactMask:   CategoryEnemy | CategoryGround | CategoryPowerup | CategoryCoin,
		},
		Health:          t.Health,
		MaxHealth:       t.Health,
		ForwardVelocity: t.ForwardVelocity,
		Alpha:           1,
		Scale:           1,
		tuning:          t,
		sfx:             sfx,
	}
	p.Body.Owner = p
	p.soar()
	p.timeline.Run(seqGravity, NewSequence(
		Wait(t.GravityDelay),
		Call(func() { p.Body.AffectedByGravity = true }),
	))
	return p
}

func (p *Player) TextureAtlas() string { return "Pierre" }

func (p *Player) InitialSize() (float64, float64) { return p.tuning.Width, p.tuning.Height }

func (p *Player) OnTap() {}

// Texture is the frame to draw this tick.
func (p *Player) Texture() string {
	if p.dead {
		return "pierre-dead"
	}
	return p.anim.Frame()
}

// Dead reports whether the death sequence has started.
func (p *Player) Dead() bool { return p.dead }

// Update applies flapping lift and the speed limits before the physics step.
func (p *Player) Update() {
	if p.Flapping {
		force := p.tuning.MaxFlappingForce
		if p.Body.Y > p.tuning.ForceFalloffHeight {
			force -= (p.Body.Y / p.tuning.MaxHeight) * p.tuning.MaxFlappingForce
		}
		p.Body.ApplyForce(0, force)
	}
	if p.Body.VY > p.tuning.MaxRiseSpeed {
		p.Body.VY = p.tuning.MaxRiseSpeed
	}
	p.Body.VX = p.ForwardVelocity
}

// Animate advances sequences and frames by dt seconds.
func (p *Player) Animate(dt float64) {
	p.timeline.Advance(dt)
	if p.anim != nil {
		p.anim.Advance(dt)
	}
	p.Body.Radius = p.tuning.Radius * p.Scale
}

// StartFlapping switches to the flying animation and lift.
func (p *Player) StartFlapping() {
	if p.Health <= 0 {
		return
	}
	p.timeline.Remove(seqSoar)
	p.anim = &FrameAnimation{Frames: flyFrames, TimePerFrame: 0.03}
	p.timeline.Run(seqFlap, NewSequence(TweenTo(&p.Rotation, 0, 0.475, EaseOut)))
	p.Flapping = true
}

// StopFlapping switches to soaring.
func (p *Player) StopFlapping() {
	if p.Health <= 0 {
		return
	}
	p.timeline.Remove(seqFlap)
	p.soar()
	p.Flapping = false
}

func (p *Player) soar() {
	p.anim = &FrameAnimation{Frames: soarFrames, TimePerFrame: 1}
	p.timeline.Run(seqSoar, NewSequence(TweenTo(&p.Rotation, -1, 0.8, EaseIn)))
}

// TakeDamage costs one heart unless Pierre is protected.
func (p *Player) TakeDamage() {
	if p.Invulnerable || p.Damaged {
		return
	}
	p.Damaged = true
	p.Health--
	if p.Health <= 0 {
		p.Health = 0
		p.Die()
	} else {
		p.timeline.Run(seqDamage, p.damageSequence())
	}
	p.sfx.Play(sound.EffectHurt)
}

// damageSequence lets Pierre pass through enemies while he blinks.
func (p *Player) damageSequence() *Sequence {
	pulse := func(d float64) []Step {
		return []Step{TweenTo(&p.Alpha, 0.3, d, EaseLinear), TweenTo(&p.Alpha, 0.7, d, EaseLinear)}
	}
	steps := []Step{Call(func() { p.Body.Category = CategoryDamagedPenguin })}
	steps = append(steps, Repeat(2, pulse(0.35)...)...)
	steps = append(steps, Repeat(5, pulse(0.2)...)...)
	steps = append(steps,
		TweenTo(&p.Alpha, 1, 0.15, EaseLinear),
		Call(func() {
			p.Body.Category = CategoryPenguin
			p.Damaged = false
		}),
	)
	return NewSequence(steps...)
}

// Die plays the death sequence and notifies OnDie. Pierre stays damaged so
// nothing can hurt him again.
func (p *Player) Die() {
	if p.dead {
		return
	}
	p.dead = true
	p.Alpha = 1
	p.timeline.RemoveAll()
	p.timeline.Run(seqDie, NewSequence(
		Call(func() {
			p.Body.AffectedByGravity = false
			p.Body.Stop()
		}),
		TweenTo(&p.Scale, 1.3, 0.5, EaseLinear),
		Wait(0.5),
		TweenTo(&p.Rotation, 3, 1.5, EaseLinear),
		Wait(0.5),
		Call(func() { p.Body.AffectedByGravity = true }),
	))
	p.Flapping = false
	p.ForwardVelocity = 0
	if p.OnDie != nil {
		p.OnDie()
	}
}

// StarPower makes Pierre big, fast and invulnerable for a while. A second
// star restarts the timer.
func (p *Player) StarPower() {
	if p.dead {
		return
	}
	p.timeline.Remove(seqStarPower)
	p.ForwardVelocity = p.tuning.StarVelocity
	p.Invulnerable = true
	p.timeline.Run(seqStarPower, NewSequence(
		TweenTo(&p.Scale, 1.5, 0.3, EaseLinear),
		Wait(p.tuning.StarDuration),
		TweenTo(&p.Scale, 1, 1, EaseLinear),
		Call(func() {
			p.ForwardVelocity = p.tuning.ForwardVelocity
			p.Invulnerable = false
		}),
	))
	p.sfx.Play(sound.EffectPowerup)
}

// StarPowered reports whether a star sequence is running.
func (p *Player) StarPowered() bool {
	return p.timeline.Running(seqStarPower)
}
