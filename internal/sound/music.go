package sound

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	beat = 180 * time.Millisecond
	hold = -100 // extends the previous note by one beat
	none = -200 // one beat of rest
)

// Melody and bass are semitones relative to A4, one entry per beat.
var (
	melody = []int{
		3, 7, 10, 7, 12, hold, 10, 7,
		5, 8, 12, 8, 15, hold, 12, none,
		3, 7, 10, 7, 12, hold, 15, 17,
		15, 12, 10, 7, 10, hold, none, none,
	}
	bass = []int{
		-21, none, -14, none, -21, none, -14, none,
		-16, none, -9, none, -16, none, -9, none,
		-21, none, -14, none, -21, none, -14, none,
		-19, none, -12, none, -14, none, -21, none,
	}
)

// voice turns a beat pattern into a streamer.
func voice(pattern []int, wave WaveType) beep.Streamer {
	var parts []beep.Streamer
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == none || pattern[i] == hold {
			parts = append(parts, rest(beat))
			continue
		}
		beats := 1
		for i+beats < len(pattern) && pattern[i+beats] == hold {
			beats++
		}
		parts = append(parts, tone(noteFreq(pattern[i]), time.Duration(beats)*beat, wave))
		i += beats - 1
	}
	return beep.Seq(parts...)
}

// RenderMusic synthesizes one loop of the background tune.
func RenderMusic() []byte {
	loop := beep.Mix(
		newVolume(voice(melody, WaveSquare), 0.22),
		newVolume(voice(bass, WaveTriangle), 0.5),
	)
	return Render(loop, SampleRate.N(time.Duration(len(melody))*beat))
}

var (
	ctxOnce   sync.Once
	sharedCtx *audio.Context
)

// Context returns the process-wide Ebitengine audio context. Ebitengine
// allows exactly one per process.
func Context() *audio.Context {
	ctxOnce.Do(func() {
		if c := audio.CurrentContext(); c != nil {
			sharedCtx = c
			return
		}
		sharedCtx = audio.NewContext(int(SampleRate))
	})
	return sharedCtx
}

// BackgroundMusic loops the theme tune. There is one per process; use Instance.
type BackgroundMusic struct {
	mu     sync.Mutex
	player *audio.Player
	volume float64
	muted  bool
}

var (
	musicOnce sync.Once
	music     *BackgroundMusic
)

// Instance returns the shared background music player.
func Instance() *BackgroundMusic {
	musicOnce.Do(func() {
		music = &BackgroundMusic{volume: 0.5}
	})
	return music
}

// Play starts the loop, synthesizing it on first use. Calling Play while
// already playing is a no-op.
func (b *BackgroundMusic) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		pcm := RenderMusic()
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		p, err := Context().NewPlayer(loop)
		if err != nil {
			return fmt.Errorf("sound: background music: %w", err)
		}
		b.player = p
	}
	b.apply()
	if !b.player.IsPlaying() {
		b.player.Play()
	}
	return nil
}

// Stop pauses the loop and rewinds it.
func (b *BackgroundMusic) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player == nil {
		return
	}
	b.player.Pause()
	_ = b.player.Rewind()
}

// SetVolume sets the loop volume in [0,1].
func (b *BackgroundMusic) SetVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = clamp01(v)
	b.apply()
}

// SetMuted silences the loop without stopping it.
func (b *BackgroundMusic) SetMuted(m bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = m
	b.apply()
}

func (b *BackgroundMusic) apply() {
	if b.player == nil {
		return
	}
	if b.muted {
		b.player.SetVolume(0)
		return
	}
	b.player.SetVolume(b.volume)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
