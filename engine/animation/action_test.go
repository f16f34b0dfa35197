package animation

import "testing"

func TestMixerClipActionReusesAction(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "idle", Duration: 2})
	b := m.ClipAction(Clip{Name: "idle", Duration: 2})
	if a != b {
		t.Fatal("ClipAction should return the existing action for a clip name")
	}
	m.ClipAction(Clip{Name: "walk", Duration: 1})

	actions := m.Actions()
	if len(actions) != 2 || actions[0].Clip().Name != "idle" || actions[1].Clip().Name != "walk" {
		t.Fatalf("Actions() order = %v", actions)
	}
	if _, ok := m.ExistingAction("run"); ok {
		t.Fatal("ExistingAction(run) should be absent")
	}
}

func TestActionAdvancesOnlyWhenPlaying(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "idle", Duration: 2})

	m.Update(0.5)
	if a.Time() != 0 {
		t.Fatalf("unscheduled action advanced to %v", a.Time())
	}

	a.Play()
	m.Update(0.5)
	if a.Time() != 0.5 {
		t.Fatalf("Time() = %v, want 0.5", a.Time())
	}
	if m.Time() != 1 {
		t.Fatalf("mixer Time() = %v, want 1", m.Time())
	}

	a.SetEnabled(false)
	m.Update(0.5)
	if a.Time() != 0.5 {
		t.Fatalf("disabled action advanced to %v", a.Time())
	}
}

func TestActionLoopAndClamp(t *testing.T) {
	tests := []struct {
		name       string
		loop       bool
		steps      []float32
		wantTime   float32
		wantPaused bool
	}{
		{"loop wraps", true, []float32{0.75, 0.75}, 0.5, false},
		{"one-shot clamps at end", false, []float32{0.75, 0.75}, 1, true},
		{"one-shot before end", false, []float32{0.25, 0.5}, 0.75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMixer()
			a := m.ClipAction(Clip{Name: "clip", Duration: 1})
			a.SetLoop(tt.loop)
			a.Play()
			for _, dt := range tt.steps {
				m.Update(dt)
			}
			if a.Time() != tt.wantTime {
				t.Fatalf("Time() = %v, want %v", a.Time(), tt.wantTime)
			}
			if a.Paused() != tt.wantPaused {
				t.Fatalf("Paused() = %v, want %v", a.Paused(), tt.wantPaused)
			}
		})
	}
}

func TestActionCrossFadeWithWarp(t *testing.T) {
	m := NewMixer()
	idle := m.ClipAction(Clip{Name: "idle", Duration: 2})
	walk := m.ClipAction(Clip{Name: "walk", Duration: 1})

	idle.Play()
	m.Update(0.5)

	walk.SetTime(0)
	walk.SetEnabled(true)
	walk.SetEffectiveTimeScale(1)
	walk.SetEffectiveWeight(1)
	walk.CrossFadeFrom(idle, 0.5, true)
	walk.Play()

	if !idle.IsFading() || !walk.IsFading() || !idle.IsWarping() || !walk.IsWarping() {
		t.Fatal("cross-fade with warp should schedule fades and warps on both actions")
	}
	if walk.BlendWeight() != 0 || idle.BlendWeight() != 1 {
		t.Fatalf("start weights idle=%v walk=%v", idle.BlendWeight(), walk.BlendWeight())
	}
	if walk.CurrentTimeScale() != 0.5 || idle.CurrentTimeScale() != 1 {
		t.Fatalf("start time-scales idle=%v walk=%v", idle.CurrentTimeScale(), walk.CurrentTimeScale())
	}

	m.Update(0.25)
	if idle.BlendWeight() != 0.5 || walk.BlendWeight() != 0.5 {
		t.Fatalf("mid weights idle=%v walk=%v", idle.BlendWeight(), walk.BlendWeight())
	}
	if idle.Time() != 0.875 || walk.Time() != 0.1875 {
		t.Fatalf("mid times idle=%v walk=%v", idle.Time(), walk.Time())
	}

	m.Update(0.25)
	if idle.Enabled() || idle.BlendWeight() != 0 || idle.IsFading() {
		t.Fatal("outgoing action should be disabled once its fade-out completes")
	}
	if idle.EffectiveTimeScale() != 2 || idle.IsWarping() {
		t.Fatalf("outgoing time-scale = %v, want 2 after warp", idle.EffectiveTimeScale())
	}
	if walk.BlendWeight() != 1 || walk.EffectiveTimeScale() != 1 || walk.IsWarping() {
		t.Fatalf("incoming weight=%v scale=%v", walk.BlendWeight(), walk.EffectiveTimeScale())
	}
	if walk.Time() != 0.4375 {
		t.Fatalf("incoming Time() = %v, want 0.4375", walk.Time())
	}

	m.Update(1)
	if idle.Time() != 1.375 {
		t.Fatalf("disabled action moved to %v", idle.Time())
	}
	if walk.Time() != 0.4375 {
		t.Fatalf("looped Time() = %v, want 0.4375", walk.Time())
	}
}

func TestActionCrossFadeWithoutWarp(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "a", Duration: 2})
	b := m.ClipAction(Clip{Name: "b", Duration: 1})
	b.CrossFadeFrom(a, 0.5, false)
	if a.IsWarping() || b.IsWarping() {
		t.Fatal("cross-fade without warp must not ramp time-scales")
	}
	if !a.IsFading() || !b.IsFading() {
		t.Fatal("cross-fade should fade both actions")
	}

	c := m.ClipAction(Clip{Name: "c", Duration: 1})
	c.CrossFadeFrom(nil, 0.5, true)
	if !c.IsFading() || c.IsWarping() {
		t.Fatal("cross-fade from nil should only fade in")
	}
}

func TestActionSettersCancelRamps(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "a", Duration: 1})
	a.FadeOut(1)
	a.Warp(1, 2, 1)
	a.SetEffectiveWeight(1)
	a.SetEffectiveTimeScale(1)
	if a.IsFading() || a.IsWarping() {
		t.Fatal("setting base weight and time-scale should cancel fade and warp")
	}
	if a.BlendWeight() != 1 || a.CurrentTimeScale() != 1 {
		t.Fatalf("weight=%v scale=%v", a.BlendWeight(), a.CurrentTimeScale())
	}
}

func TestActionZeroLengthRamps(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "a", Duration: 1})
	a.FadeOut(0)
	if a.Enabled() {
		t.Fatal("zero-length fade-out should disable immediately")
	}
	a.Reset()
	a.Warp(1, 0, 0)
	if !a.Paused() {
		t.Fatal("zero-length warp to 0 should pause")
	}
}

func TestActionStopResets(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "a", Duration: 4})
	a.Play()
	a.FadeOut(1)
	m.Update(1)
	a.Stop()
	if a.IsScheduled() || a.IsRunning() {
		t.Fatal("stopped action should not be scheduled")
	}
	if a.Time() != 0 || !a.Enabled() || a.Paused() || a.IsFading() {
		t.Fatal("Stop should reset the action")
	}

	a.Play()
	if !a.IsRunning() {
		t.Fatal("replayed action should be running")
	}
	m.StopAllAction()
	if a.IsScheduled() {
		t.Fatal("StopAllAction should unschedule every action")
	}
}

func TestMixerTimeScale(t *testing.T) {
	m := NewMixer(WithTimeScale(0.5))
	a := m.ClipAction(Clip{Name: "a", Duration: 4})
	a.Play()
	m.Update(1)
	if m.Time() != 0.5 || a.Time() != 0.5 {
		t.Fatalf("mixer=%v action=%v, want 0.5", m.Time(), a.Time())
	}
}
