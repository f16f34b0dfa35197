package fsm

import (
	"errors"
	"sort"
	"testing"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
)

// recorder counts lifecycle calls across every state instance a test machine builds.
type recorder struct {
	built     map[string]int
	entered   []string
	previous  []string
	exited    []string
	nextState map[string]string
}

type testState struct {
	name string
	rec  *recorder
}

func (s *testState) Name() string { return s.name }

func (s *testState) Enter(previous State) error {
	s.rec.entered = append(s.rec.entered, s.name)
	prev := ""
	if previous != nil {
		prev = previous.Name()
	}
	s.rec.previous = append(s.rec.previous, prev)
	return nil
}

func (s *testState) Exit() { s.rec.exited = append(s.rec.exited, s.name) }

func (s *testState) Update(_ float32, _ input.ControlSignals) string {
	return s.rec.nextState[s.name]
}

func newTestMachine(t *testing.T, names ...string) (Machine, *recorder) {
	t.Helper()
	rec := &recorder{built: map[string]int{}, nextState: map[string]string{}}
	m := NewMachine(animation.NewRegistry(nil))
	for _, name := range names {
		m.AddState(name, func(_ animation.Lookup, name string) (State, error) {
			rec.built[name]++
			return &testState{name: name, rec: rec}, nil
		})
	}
	return m, rec
}

func TestSetStateFirstActivation(t *testing.T) {
	m, rec := newTestMachine(t, "idle", "walking")
	if m.Current() != nil || m.CurrentName() != "" {
		t.Fatal("new machine should have no state")
	}
	if err := m.SetState("idle"); err != nil {
		t.Fatalf("SetState(idle): %v", err)
	}
	if m.CurrentName() != "idle" {
		t.Fatalf("CurrentName() = %q", m.CurrentName())
	}
	if len(rec.entered) != 1 || rec.previous[0] != "" {
		t.Fatalf("entered=%v previous=%v, want one enter with no previous", rec.entered, rec.previous)
	}
	if len(rec.exited) != 0 {
		t.Fatalf("exited=%v, want none", rec.exited)
	}
}

func TestSetStateIdempotent(t *testing.T) {
	m, rec := newTestMachine(t, "idle")
	for i := 0; i < 2; i++ {
		if err := m.SetState("idle"); err != nil {
			t.Fatal(err)
		}
	}
	if len(rec.entered) != 1 || rec.built["idle"] != 1 {
		t.Fatalf("entered=%v built=%v, want exactly one", rec.entered, rec.built)
	}
}

func TestSetStateTransitionOrder(t *testing.T) {
	m, rec := newTestMachine(t, "idle", "walking")
	if err := m.SetState("idle"); err != nil {
		t.Fatal(err)
	}
	idle := m.Current()
	if err := m.SetState("walking"); err != nil {
		t.Fatal(err)
	}
	if rec.exited[0] != "idle" || rec.entered[1] != "walking" || rec.previous[1] != "idle" {
		t.Fatalf("exited=%v entered=%v previous=%v", rec.exited, rec.entered, rec.previous)
	}
	if err := m.SetState("idle"); err != nil {
		t.Fatal(err)
	}
	if m.Current() == idle {
		t.Fatal("re-entering a state should build a fresh instance")
	}
}

func TestSetStateUnregistered(t *testing.T) {
	m, rec := newTestMachine(t, "idle", "walking")
	if err := m.SetState("idle"); err != nil {
		t.Fatal(err)
	}

	err := m.SetState("running")
	if !errors.Is(err, common.ErrLookup) {
		t.Fatalf("SetState(running) err = %v, want ErrLookup", err)
	}
	var le *common.LookupError
	if !errors.As(err, &le) || le.Kind != "state" || le.Name != "running" {
		t.Fatalf("SetState(running) err = %#v", err)
	}
	if m.CurrentName() != "idle" || len(rec.exited) != 0 {
		t.Fatal("a failed SetState must leave the current state untouched")
	}
}

func TestSetStateFactoryError(t *testing.T) {
	m, rec := newTestMachine(t, "idle")
	boom := errors.New("boom")
	m.AddState("broken", func(animation.Lookup, string) (State, error) { return nil, boom })
	if err := m.SetState("idle"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetState("broken"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if m.CurrentName() != "idle" || len(rec.exited) != 0 {
		t.Fatal("construction failure must not exit the current state")
	}
}

func TestUpdateAppliesTransition(t *testing.T) {
	m, rec := newTestMachine(t, "idle", "walking")
	if err := m.Update(0.1, input.ControlSignals{}); err != nil {
		t.Fatal("Update with no state should be a no-op")
	}
	if err := m.SetState("idle"); err != nil {
		t.Fatal(err)
	}

	rec.nextState["idle"] = "walking"
	if err := m.Update(0.1, input.ControlSignals{Forward: true}); err != nil {
		t.Fatal(err)
	}
	if m.CurrentName() != "walking" {
		t.Fatalf("CurrentName() = %q, want walking", m.CurrentName())
	}

	rec.nextState["walking"] = "running"
	if err := m.Update(0.1, input.ControlSignals{}); !errors.Is(err, common.ErrLookup) {
		t.Fatalf("err = %v, want ErrLookup", err)
	}
	if m.CurrentName() != "walking" {
		t.Fatal("state should be unchanged after a failed transition")
	}
}

func TestTransitionHook(t *testing.T) {
	var got [][2]string
	m := NewMachine(nil, WithTransitionHook(func(from, to string) {
		got = append(got, [2]string{from, to})
	}))
	rec := &recorder{built: map[string]int{}, nextState: map[string]string{}}
	for _, name := range []string{"idle", "walking"} {
		m.AddState(name, func(_ animation.Lookup, name string) (State, error) {
			return &testState{name: name, rec: rec}, nil
		})
	}
	_ = m.SetState("idle")
	_ = m.SetState("idle")
	_ = m.SetState("walking")

	want := [][2]string{{"", "idle"}, {"idle", "walking"}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("hook calls = %v, want %v", got, want)
	}

	states := m.States()
	sort.Strings(states)
	if len(states) != 2 || states[0] != "idle" || states[1] != "walking" {
		t.Fatalf("States() = %v", states)
	}
}
