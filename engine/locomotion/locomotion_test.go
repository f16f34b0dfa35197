package locomotion

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
)

type crossFade struct {
	from     animation.Action
	duration float32
	warp     bool
}

// spyAction records the playback commands states issue and forwards them to a real action.
type spyAction struct {
	animation.Action
	plays      int
	crossFades []crossFade
}

func (s *spyAction) Play() {
	s.plays++
	s.Action.Play()
}

func (s *spyAction) CrossFadeFrom(from animation.Action, duration float32, warp bool) {
	s.crossFades = append(s.crossFades, crossFade{from: from, duration: duration, warp: warp})
	s.Action.CrossFadeFrom(from, duration, warp)
}

type spyLookup map[string]*animation.Handle

func (l spyLookup) Get(name string) (*animation.Handle, error) {
	h, ok := l[name]
	if !ok {
		return nil, common.NewLookupError("animation", name)
	}
	return h, nil
}

func newSpyLookup() (spyLookup, animation.Mixer, *spyAction, *spyAction) {
	mixer := animation.NewMixer()
	idleClip := animation.Clip{Name: "Idle", Duration: 2}
	walkClip := animation.Clip{Name: "Walk", Duration: 1}
	idle := &spyAction{Action: mixer.ClipAction(idleClip)}
	walk := &spyAction{Action: mixer.ClipAction(walkClip)}
	return spyLookup{
		"idle":    {Name: "idle", Clip: idleClip, Action: idle},
		"walking": {Name: "walking", Clip: walkClip, Action: walk},
	}, mixer, idle, walk
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		current StateID
		signals input.ControlSignals
		want    StateID
	}{
		{"idle stays without input", Idle, input.ControlSignals{}, Idle},
		{"idle ignores turning", Idle, input.ControlSignals{Left: true, Right: true}, Idle},
		{"idle ignores sprint and jump", Idle, input.ControlSignals{Sprint: true, Jump: true}, Idle},
		{"idle to walking on forward", Idle, input.ControlSignals{Forward: true}, Walking},
		{"idle to walking on backward", Idle, input.ControlSignals{Backward: true}, Walking},
		{"idle to walking on both", Idle, input.ControlSignals{Forward: true, Backward: true}, Walking},
		{"walking stays on forward", Walking, input.ControlSignals{Forward: true}, Walking},
		{"walking stays on backward", Walking, input.ControlSignals{Backward: true, Left: true}, Walking},
		{"walking to idle on release", Walking, input.ControlSignals{}, Idle},
		{"walking to idle while turning", Walking, input.ControlSignals{Right: true, Sprint: true}, Idle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transition(tt.current, tt.signals); got != tt.want {
				t.Fatalf("Transition(%v, %+v) = %v, want %v", tt.current, tt.signals, got, tt.want)
			}
		})
	}
}

func TestParseStateID(t *testing.T) {
	for _, id := range []StateID{Idle, Walking} {
		got, ok := ParseStateID(id.String())
		if !ok || got != id {
			t.Fatalf("ParseStateID(%q) = %v, %v", id.String(), got, ok)
		}
	}
	if _, ok := ParseStateID("running"); ok {
		t.Fatal("ParseStateID(running) should fail")
	}
}

func TestFirstActivationPlaysWithoutBlend(t *testing.T) {
	lookup, _, idle, walk := newSpyLookup()
	m := NewMachine(lookup)
	if err := m.SetState(Idle.String()); err != nil {
		t.Fatal(err)
	}
	if idle.plays != 1 || len(idle.crossFades) != 0 {
		t.Fatalf("idle plays=%d crossFades=%d, want 1 and 0", idle.plays, len(idle.crossFades))
	}
	if walk.plays != 0 {
		t.Fatal("walking should not play before it is entered")
	}
	if idle.IsFading() {
		t.Fatal("first activation must not fade")
	}
}

func TestEveryTransitionCrossFades(t *testing.T) {
	lookup, mixer, idle, walk := newSpyLookup()
	m := NewMachine(lookup)
	if err := m.SetState(Idle.String()); err != nil {
		t.Fatal(err)
	}
	mixer.Update(0.75)

	if err := m.Update(0.1, input.ControlSignals{Forward: true}); err != nil {
		t.Fatal(err)
	}
	if m.CurrentName() != "walking" {
		t.Fatalf("CurrentName() = %q, want walking", m.CurrentName())
	}
	if len(walk.crossFades) != 1 {
		t.Fatalf("walking crossFades = %d, want 1", len(walk.crossFades))
	}
	cf := walk.crossFades[0]
	if cf.from != idle || cf.duration != 0.5 || !cf.warp {
		t.Fatalf("walking cross-fade = %+v, want from idle over 0.5 with warp", cf)
	}
	if walk.plays != 1 || walk.Time() != 0 || walk.EffectiveWeight() != 1 {
		t.Fatalf("walking plays=%d time=%v weight=%v", walk.plays, walk.Time(), walk.EffectiveWeight())
	}

	if err := m.Update(0.1, input.ControlSignals{Forward: true}); err != nil {
		t.Fatal(err)
	}
	if len(walk.crossFades) != 1 {
		t.Fatal("holding forward in walking must not re-trigger a cross-fade")
	}

	mixer.Update(0.5)
	if idle.Enabled() {
		t.Fatal("idle should be faded out after the blend window")
	}

	if err := m.Update(0.1, input.ControlSignals{}); err != nil {
		t.Fatal(err)
	}
	if m.CurrentName() != "idle" {
		t.Fatalf("CurrentName() = %q, want idle", m.CurrentName())
	}
	if len(idle.crossFades) != 1 {
		t.Fatalf("idle crossFades = %d, want 1", len(idle.crossFades))
	}
	cf = idle.crossFades[0]
	if cf.from != walk || cf.duration != 0.5 || !cf.warp {
		t.Fatalf("idle cross-fade = %+v, want from walking over 0.5 with warp", cf)
	}
	if !idle.Enabled() || idle.Time() != 0 {
		t.Fatal("re-entered idle should be enabled and rewound")
	}
}

func TestBlendDurationOption(t *testing.T) {
	lookup, _, _, walk := newSpyLookup()
	m := NewMachine(lookup, WithBlendDuration(0.25))
	if err := m.SetState(Idle.String()); err != nil {
		t.Fatal(err)
	}
	if err := m.SetState(Walking.String()); err != nil {
		t.Fatal(err)
	}
	if len(walk.crossFades) != 1 || walk.crossFades[0].duration != 0.25 {
		t.Fatalf("crossFades = %+v, want one over 0.25", walk.crossFades)
	}
}

func TestUnregisteredStateIsRejected(t *testing.T) {
	lookup, _, _, _ := newSpyLookup()
	m := NewMachine(lookup)
	if err := m.SetState(Idle.String()); err != nil {
		t.Fatal(err)
	}
	err := m.SetState("running")
	var le *common.LookupError
	if !errors.As(err, &le) || le.Kind != "state" || le.Name != "running" {
		t.Fatalf("SetState(running) err = %v", err)
	}
	if m.CurrentName() != "idle" {
		t.Fatalf("CurrentName() = %q, want idle", m.CurrentName())
	}
}

func TestEnterFailsWithoutAnimation(t *testing.T) {
	lookup, _, _, _ := newSpyLookup()
	delete(lookup, "walking")
	m := NewMachine(lookup)
	if err := m.SetState(Idle.String()); err != nil {
		t.Fatal(err)
	}
	err := m.SetState(Walking.String())
	if !errors.Is(err, common.ErrLookup) {
		t.Fatalf("err = %v, want ErrLookup", err)
	}
}

func TestTransitionHookOption(t *testing.T) {
	lookup, _, _, _ := newSpyLookup()
	var transitions []string
	m := NewMachine(lookup, WithTransitionHook(func(from, to string) {
		transitions = append(transitions, from+">"+to)
	}))
	_ = m.SetState(Idle.String())
	_ = m.Update(0.1, input.ControlSignals{Backward: true})
	_ = m.Update(0.1, input.ControlSignals{})
	want := []string{">idle", "idle>walking", "walking>idle"}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", transitions, want)
		}
	}
}
