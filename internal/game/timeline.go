package game

import "math"

// Ease shapes the progress of a timed step.
type Ease int

const (
	EaseLinear Ease = iota
	EaseIn
	EaseOut
)

// apply maps linear progress t in [0,1] onto the curve.
func (e Ease) apply(t float64) float64 {
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	default:
		return t
	}
}

// Step is one timed stage of a sequence. Start runs when the step begins,
// Update receives eased progress every advance, Done runs once at the end.
type Step struct {
	Duration float64
	Ease     Ease
	Start    func()
	Update   func(t float64)
	Done     func()
}

// Sequence runs steps one after another.
type Sequence struct {
	steps   []Step
	index   int
	elapsed float64
	started bool
}

// NewSequence builds a sequence from steps.
func NewSequence(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

// Finished reports whether every step has completed.
func (s *Sequence) Finished() bool {
	return s.index >= len(s.steps)
}

// Advance moves the sequence forward by dt seconds. Leftover time flows into
// the next step, and zero-length steps complete in the same call.
func (s *Sequence) Advance(dt float64) {
	for !s.Finished() {
		st := &s.steps[s.index]
		if !s.started {
			s.started = true
			s.elapsed = 0
			if st.Start != nil {
				st.Start()
			}
		}
		s.elapsed += dt
		if st.Duration > 0 && s.elapsed < st.Duration {
			if st.Update != nil {
				st.Update(st.Ease.apply(s.elapsed / st.Duration))
			}
			return
		}
		if st.Update != nil {
			st.Update(1)
		}
		if st.Done != nil {
			st.Done()
		}
		dt = s.elapsed - st.Duration
		if dt < 0 {
			dt = 0
		}
		s.index++
		s.started = false
	}
}

// Wait pauses a sequence.
func Wait(d float64) Step {
	return Step{Duration: d}
}

// Call runs fn immediately when reached.
func Call(fn func()) Step {
	return Step{Done: fn}
}

// TweenTo moves *v from whatever it holds when the step starts to `to`.
func TweenTo(v *float64, to, d float64, ease Ease) Step {
	var from float64
	return Step{
		Duration: d,
		Ease:     ease,
		Start:    func() { from = *v },
		Update:   func(t float64) { *v = from + (to-from)*t },
	}
}

// Repeat concatenates count copies of steps.
func Repeat(count int, steps ...Step) []Step {
	out := make([]Step, 0, count*len(steps))
	for i := 0; i < count; i++ {
		out = append(out, steps...)
	}
	return out
}

type timelineEntry struct {
	key string
	seq *Sequence
}

// Timeline holds named sequences; running a key again replaces the old one.
type Timeline struct {
	entries []timelineEntry
}

// Run starts seq under key, cancelling whatever ran under it.
func (tl *Timeline) Run(key string, seq *Sequence) {
	tl.Remove(key)
	tl.entries = append(tl.entries, timelineEntry{key: key, seq: seq})
}

// Remove cancels the sequence under key without running its remaining steps.
func (tl *Timeline) Remove(key string) {
	for i, e := range tl.entries {
		if e.key == key {
			tl.entries = append(tl.entries[:i], tl.entries[i+1:]...)
			return
		}
	}
}

// RemoveAll cancels every sequence.
func (tl *Timeline) RemoveAll() {
	tl.entries = nil
}

// Running reports whether a sequence is active under key.
func (tl *Timeline) Running(key string) bool {
	for _, e := range tl.entries {
		if e.key == key {
			return true
		}
	}
	return false
}

// Advance steps every sequence in start order. A step callback may run or
// remove sequences; those changes take effect from the next Advance.
func (tl *Timeline) Advance(dt float64) {
	snapshot := append([]timelineEntry(nil), tl.entries...)
	for _, e := range snapshot {
		if !tl.holds(e.seq) {
			continue
		}
		e.seq.Advance(dt)
		if e.seq.Finished() && tl.holds(e.seq) {
			tl.drop(e.seq)
		}
	}
}

func (tl *Timeline) holds(seq *Sequence) bool {
	for _, e := range tl.entries {
		if e.seq == seq {
			return true
		}
	}
	return false
}

func (tl *Timeline) drop(seq *Sequence) {
	for i, e := range tl.entries {
		if e.seq == seq {
			tl.entries = append(tl.entries[:i], tl.entries[i+1:]...)
			return
		}
	}
}

// FrameAnimation loops textures at a fixed rate.
type FrameAnimation struct {
	Frames       []string
	TimePerFrame float64
	elapsed      float64
}

// Advance moves the animation clock forward.
func (a *FrameAnimation) Advance(dt float64) {
	a.elapsed += dt
}

// Frame returns the current texture name.
func (a *FrameAnimation) Frame() string {
	if len(a.Frames) == 0 {
		return ""
	}
	if a.TimePerFrame <= 0 {
		return a.Frames[0]
	}
	i := int(math.Floor(a.elapsed/a.TimePerFrame)) % len(a.Frames)
	return a.Frames[i]
}

// Reset rewinds to the first frame.
func (a *FrameAnimation) Reset() {
	a.elapsed = 0
}
