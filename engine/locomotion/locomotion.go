package locomotion

import (
	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/Carmen-Shannon/oxy-avatar/engine/fsm"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
)

// BlendDuration is the default cross-fade window, in seconds, used on every transition.
const BlendDuration float32 = 0.5

// StateID is the closed set of locomotion states.
type StateID int

const (
	Idle StateID = iota
	Walking
)

// String returns the state name. It doubles as the animation name the state plays.
func (id StateID) String() string {
	switch id {
	case Idle:
		return "idle"
	case Walking:
		return "walking"
	default:
		return "unknown"
	}
}

// ParseStateID resolves a state name.
//
// Parameters:
//   - name: "idle" or "walking"
//
// Returns:
//   - StateID: the state
//   - bool: false if the name is not a locomotion state
func ParseStateID(name string) (StateID, bool) {
	switch name {
	case "idle":
		return Idle, true
	case "walking":
		return Walking, true
	default:
		return Idle, false
	}
}

// Transition returns the state that follows current for one frame of input.
// Idle moves to Walking while forward or backward is held; Walking returns to Idle once both are released.
//
// Parameters:
//   - current: the active state
//   - signals: the control snapshot
//
// Returns:
//   - StateID: the next state, equal to current when nothing changes
func Transition(current StateID, signals input.ControlSignals) StateID {
	switch current {
	case Idle:
		if signals.Moving() {
			return Walking
		}
	case Walking:
		if !signals.Moving() {
			return Idle
		}
	}
	return current
}

// state carries what Idle and Walking share: the animation lookup, the blend window and the
// enter behaviour that cross-fades from whichever state was active before.
type state struct {
	id     StateID
	lookup animation.Lookup
	blend  float32
}

func (s *state) Name() string {
	return s.id.String()
}

// Enter plays this state's animation. With a previous state the animation restarts at full
// weight and speed and cross-fades (with warp) from the previous state's animation; on the
// first activation it just plays.
func (s *state) Enter(previous fsm.State) error {
	h, err := s.lookup.Get(s.id.String())
	if err != nil {
		return err
	}
	if previous == nil {
		h.Action.Play()
		return nil
	}

	prev, err := s.lookup.Get(previous.Name())
	if err != nil {
		return err
	}
	a := h.Action
	a.SetTime(0)
	a.SetEnabled(true)
	a.SetEffectiveTimeScale(1)
	a.SetEffectiveWeight(1)
	a.CrossFadeFrom(prev.Action, s.blend, true)
	a.Play()
	return nil
}

// Exit does nothing: the entering state owns the cross-fade.
func (s *state) Exit() {}

func (s *state) update(signals input.ControlSignals) string {
	if next := Transition(s.id, signals); next != s.id {
		return next.String()
	}
	return ""
}

// NewMachine creates a locomotion state machine with Idle and Walking registered.
// The caller sets the initial state once both animations are in the lookup.
//
// Parameters:
//   - lookup: the animation lookup holding "idle" and "walking"
//   - options: functional options to configure the machine
//
// Returns:
//   - fsm.Machine: the machine, with no active state
func NewMachine(lookup animation.Lookup, options ...MachineBuilderOption) fsm.Machine {
	cfg := &machineConfig{blend: BlendDuration}
	for _, opt := range options {
		opt(cfg)
	}

	m := fsm.NewMachine(lookup, cfg.fsmOptions...)
	m.AddState(Idle.String(), newIdleFactory(cfg.blend))
	m.AddState(Walking.String(), newWalkingFactory(cfg.blend))
	return m
}
