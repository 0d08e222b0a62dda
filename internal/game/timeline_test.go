package game

import "testing"

func TestSequence_TweenReachesTarget(t *testing.T) {
	v := 0.0
	seq := NewSequence(TweenTo(&v, 10, 1, EaseLinear))
	seq.Advance(0.5)
	if !approx(v, 5) {
		t.Fatalf("expected halfway value 5, got %.3f", v)
	}
	if seq.Finished() {
		t.Fatal("sequence finished early")
	}
	seq.Advance(0.5)
	if v != 10 || !seq.Finished() {
		t.Fatalf("expected v=10 and finished, got v=%.3f finished=%v", v, seq.Finished())
	}
}

func TestSequence_LeftoverTimeFlowsIntoNextStep(t *testing.T) {
	v := 0.0
	called := false
	seq := NewSequence(
		Wait(0.1),
		Call(func() { called = true }),
		TweenTo(&v, 10, 1, EaseLinear),
	)
	seq.Advance(0.6)
	if !called {
		t.Fatal("zero-length step should complete in the same advance")
	}
	if v < 4.99 || v > 5.01 {
		t.Fatalf("expected leftover 0.5s in the tween, got v=%.3f", v)
	}
}

func TestSequence_TweenCapturesStartValue(t *testing.T) {
	v := 0.0
	seq := NewSequence(Wait(1), TweenTo(&v, 10, 1, EaseLinear))
	seq.Advance(0.5)
	v = 8
	seq.Advance(0.5)
	seq.Advance(0.5)
	if !approx(v, 9) {
		t.Fatalf("tween should start from the value held when it begins, got %.3f", v)
	}
}

func TestEase(t *testing.T) {
	if got := EaseIn.apply(0.5); !approx(got, 0.25) {
		t.Errorf("EaseIn(0.5) = %.3f", got)
	}
	if got := EaseOut.apply(0.5); !approx(got, 0.75) {
		t.Errorf("EaseOut(0.5) = %.3f", got)
	}
	if got := EaseLinear.apply(0.3); !approx(got, 0.3) {
		t.Errorf("EaseLinear(0.3) = %.3f", got)
	}
}

func TestRepeat(t *testing.T) {
	steps := Repeat(3, Wait(1), Wait(2))
	if len(steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(steps))
	}
	if steps[4].Duration != 1 || steps[5].Duration != 2 {
		t.Fatalf("repeated steps out of order: %+v", steps)
	}
}

func TestTimeline_RunReplacesKey(t *testing.T) {
	var tl Timeline
	v := 0.0
	tl.Run("move", NewSequence(TweenTo(&v, 10, 1, EaseLinear)))
	tl.Run("move", NewSequence(TweenTo(&v, -10, 1, EaseLinear)))
	tl.Advance(1)
	if v != -10 {
		t.Fatalf("expected replacement tween to win, got %.3f", v)
	}
	if tl.Running("move") {
		t.Fatal("finished sequence should be dropped")
	}
}

func TestTimeline_RemoveSkipsRemainingSteps(t *testing.T) {
	var tl Timeline
	done := false
	tl.Run("x", NewSequence(Wait(1), Call(func() { done = true })))
	tl.Advance(0.5)
	tl.Remove("x")
	tl.Advance(1)
	if done {
		t.Fatal("removed sequence kept running")
	}
}

func TestTimeline_CallbackMayRemoveItself(t *testing.T) {
	var tl Timeline
	other := false
	tl.Run("self", NewSequence(Call(func() { tl.Remove("self") })))
	tl.Run("other", NewSequence(Call(func() { other = true })))
	tl.Advance(0.1)
	if tl.Running("self") {
		t.Fatal("sequence should have removed itself")
	}
	if !other {
		t.Fatal("other sequence should still advance")
	}
}

func TestFrameAnimation(t *testing.T) {
	a := &FrameAnimation{Frames: []string{"a", "b", "c"}, TimePerFrame: 0.1}
	if a.Frame() != "a" {
		t.Fatalf("expected first frame, got %s", a.Frame())
	}
	a.Advance(0.25)
	if a.Frame() != "c" {
		t.Fatalf("expected frame c, got %s", a.Frame())
	}
	a.Advance(0.1)
	if a.Frame() != "a" {
		t.Fatalf("expected wrap to a, got %s", a.Frame())
	}
	a.Reset()
	if a.Frame() != "a" {
		t.Fatalf("expected reset to a, got %s", a.Frame())
	}
	if (&FrameAnimation{}).Frame() != "" {
		t.Fatal("empty animation should have no frame")
	}
}
