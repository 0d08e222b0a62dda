package sound

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Effects plays one-shot sounds. PCM is synthesized once per effect and
// every Play gets its own player so overlapping sounds mix.
type Effects struct {
	mu     sync.Mutex
	ctx    *audio.Context
	pcm    [effectCount][]byte
	volume float64
	muted  bool
	logger *log.Logger
}

// NewEffects synthesizes every effect up front.
func NewEffects(ctx *audio.Context, volume float64, logger *log.Logger) *Effects {
	fx := &Effects{ctx: ctx, volume: clamp01(volume), logger: logger}
	for e := Effect(0); e < effectCount; e++ {
		fx.pcm[e] = RenderEffect(e)
	}
	return fx
}

// Play starts the effect. Unknown effects and muted output are ignored.
func (fx *Effects) Play(e Effect) {
	fx.mu.Lock()
	defer fx.mu.Unlock()
	if fx.muted || e < 0 || e >= effectCount || len(fx.pcm[e]) == 0 {
		return
	}
	p := fx.ctx.NewPlayerFromBytes(fx.pcm[e])
	p.SetVolume(fx.volume)
	p.Play()
	if fx.logger != nil {
		fx.logger.Debug("sound", "effect", e)
	}
}

// SetMuted toggles effect output.
func (fx *Effects) SetMuted(m bool) {
	fx.mu.Lock()
	fx.muted = m
	fx.mu.Unlock()
}
