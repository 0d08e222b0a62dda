// Package sound synthesizes Pierre's music and effects with beep streamers
// and plays them through Ebitengine's audio context.
package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is shared by synthesis and the Ebitengine audio context.
const SampleRate = beep.SampleRate(48000)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// oscillator generates a fixed-length wave, optionally sliding in pitch.
type oscillator struct {
	freq     float64
	slide    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a constant-pitch oscillator.
func NewOscillator(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	return NewSlide(freq, freq, d, wave)
}

// NewSlide creates an oscillator gliding linearly from one pitch to another.
func NewSlide(from, to float64, d time.Duration, wave WaveType) beep.Streamer {
	samples := SampleRate.N(d)
	slide := 0.0
	if d > 0 {
		slide = (to - from) / d.Seconds()
	}
	return &oscillator{
		freq:     from,
		slide:    slide,
		duration: samples,
		wave:     wave,
		rate:     SampleRate,
		rng:      rand.New(rand.NewSource(int64(from*1000) + int64(samples))), // #nosec G404 -- noise colour only
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.slide*float64(o.position)/float64(o.rate)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  SampleRate.N(attack),
		releaseSamples: SampleRate.N(release),
		totalSamples:   SampleRate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. math.Log2(0) is -Inf, so 0 is mapped to silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a shaped note.
func tone(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	attack := d / 20
	release := d / 3
	return NewEnvelope(NewOscillator(freq, d, wave), d, attack, release)
}

// rest is silence of the given length.
func rest(d time.Duration) beep.Streamer {
	return beep.Silence(SampleRate.N(d))
}

// noteFreq converts semitones relative to A4 into Hz.
func noteFreq(semitones int) float64 {
	return 440 * math.Pow(2, float64(semitones)/12)
}
