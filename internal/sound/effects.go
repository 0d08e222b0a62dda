package sound

import (
	"time"

	"github.com/gopxl/beep"
)

// Effect identifies a one-shot sound.
type Effect int

const (
	EffectHurt Effect = iota
	EffectPowerup
	EffectCoin
	effectCount
)

func (e Effect) String() string {
	switch e {
	case EffectHurt:
		return "hurt"
	case EffectPowerup:
		return "powerup"
	case EffectCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// createHurt is a short falling buzz with a noise burst on top.
func createHurt() beep.Streamer {
	const d = 280 * time.Millisecond
	buzz := NewEnvelope(NewSlide(320, 90, d, WaveSquare), d, 5*time.Millisecond, 160*time.Millisecond)
	const nd = 90 * time.Millisecond
	noise := NewEnvelope(NewOscillator(0, nd, WaveNoise), nd, time.Millisecond, 60*time.Millisecond)
	return beep.Mix(newVolume(buzz, 0.5), newVolume(noise, 0.35))
}

// createPowerup is a rising major arpeggio.
func createPowerup() beep.Streamer {
	const step = 70 * time.Millisecond
	var notes []beep.Streamer
	for _, semi := range []int{3, 7, 10, 15, 19, 22, 27} {
		notes = append(notes, tone(noteFreq(semi), step, WaveTriangle))
	}
	return newVolume(beep.Seq(notes...), 0.6)
}

// createCoin is the classic two-note chime.
func createCoin() beep.Streamer {
	n1 := NewEnvelope(NewOscillator(987.77, 60*time.Millisecond, WaveSquare),
		60*time.Millisecond, 2*time.Millisecond, 20*time.Millisecond)
	n2 := NewEnvelope(NewOscillator(1318.51, 220*time.Millisecond, WaveSquare),
		220*time.Millisecond, 2*time.Millisecond, 180*time.Millisecond)
	return newVolume(beep.Seq(n1, n2), 0.35)
}

// effectStreamer returns a fresh streamer for the effect, or nil if unknown.
func effectStreamer(e Effect) beep.Streamer {
	switch e {
	case EffectHurt:
		return createHurt()
	case EffectPowerup:
		return createPowerup()
	case EffectCoin:
		return createCoin()
	default:
		return nil
	}
}

// RenderEffect synthesizes an effect to PCM.
func RenderEffect(e Effect) []byte {
	s := effectStreamer(e)
	if s == nil {
		return nil
	}
	return Render(s, SampleRate.N(2*time.Second))
}
