package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/sirupsen/logrus"
)

// Control identifies one of the fixed vocabulary of locomotion controls.
type Control int

const (
	// ControlNone is returned for unbound keys and is ignored by the sampler.
	ControlNone Control = iota
	ControlForward
	ControlBackward
	ControlLeft
	ControlRight
	ControlJump
	ControlSprint
)

// String returns the lower-case control name used in configuration files and logs.
func (c Control) String() string {
	switch c {
	case ControlForward:
		return "forward"
	case ControlBackward:
		return "backward"
	case ControlLeft:
		return "left"
	case ControlRight:
		return "right"
	case ControlJump:
		return "jump"
	case ControlSprint:
		return "sprint"
	default:
		return "none"
	}
}

// ParseControl resolves a control name produced by Control.String.
//
// Parameters:
//   - name: the control name
//
// Returns:
//   - Control: the control, or ControlNone
//   - bool: false if the name is unknown
func ParseControl(name string) (Control, bool) {
	for c := ControlForward; c <= ControlSprint; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return ControlNone, false
}

// ControlSignals is a point-in-time snapshot of which controls are held.
// Values are copied out of the Sampler and are safe to pass around freely.
type ControlSignals struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
	Sprint   bool
}

// Moving reports whether either longitudinal control is held.
//
// Returns:
//   - bool: Forward || Backward
func (s ControlSignals) Moving() bool {
	return s.Forward || s.Backward
}

// With returns a copy of s with control c set to held.
//
// Parameters:
//   - c: the control to set
//   - held: the new held state
//
// Returns:
//   - ControlSignals: the modified copy
func (s ControlSignals) With(c Control, held bool) ControlSignals {
	switch c {
	case ControlForward:
		s.Forward = held
	case ControlBackward:
		s.Backward = held
	case ControlLeft:
		s.Left = held
	case ControlRight:
		s.Right = held
	case ControlJump:
		s.Jump = held
	case ControlSprint:
		s.Sprint = held
	}
	return s
}

// Sampler tracks the held state of the locomotion controls.
//
// Press and Release are called from the input event source (usually the window's key
// callbacks) and may run on a different goroutine than the frame loop. There is no event
// queue: the last write before a Snapshot wins, and a press followed by a release within
// one frame is never observed.
type Sampler interface {
	// Press marks a control as held. ControlNone is ignored.
	//
	// Parameters:
	//   - c: the control that went down
	Press(c Control)

	// Release marks a control as released. ControlNone is ignored.
	//
	// Parameters:
	//   - c: the control that went up
	Release(c Control)

	// PressKey translates a key code through the bindings and presses the bound control.
	// Unbound keys are ignored.
	//
	// Parameters:
	//   - keyCode: the virtual key code (see common.Key*)
	PressKey(keyCode uint32)

	// ReleaseKey translates a key code through the bindings and releases the bound control,
	// unless another key bound to the same control is still held. Unbound keys are ignored.
	//
	// Parameters:
	//   - keyCode: the virtual key code (see common.Key*)
	ReleaseKey(keyCode uint32)

	// Snapshot returns the current held state of every control.
	//
	// Returns:
	//   - ControlSignals: a copy of the current signals
	Snapshot() ControlSignals

	// Binding returns the control bound to a key code.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - Control: the bound control, or ControlNone
	Binding(keyCode uint32) Control

	// Reset releases every control.
	Reset()
}

// samplerImpl is the implementation of the Sampler interface.
type samplerImpl struct {
	mu *sync.Mutex

	signals  ControlSignals
	bindings map[uint32]Control
	held     map[uint32]bool

	log *logrus.Logger
}

var _ Sampler = &samplerImpl{}

// DefaultBindings returns the WASD layout: W/S move, A/D turn, Space jumps and either Shift sprints.
//
// Returns:
//   - map[uint32]Control: a fresh key code to control map
func DefaultBindings() map[uint32]Control {
	return map[uint32]Control{
		common.KeyW:          ControlForward,
		common.KeyS:          ControlBackward,
		common.KeyA:          ControlLeft,
		common.KeyD:          ControlRight,
		common.KeySpace:      ControlJump,
		common.KeyLeftShift:  ControlSprint,
		common.KeyRightShift: ControlSprint,
	}
}

// NewSampler creates a Sampler with every control released and the default key bindings.
//
// Parameters:
//   - options: functional options to configure the sampler
//
// Returns:
//   - Sampler: the newly created sampler
func NewSampler(options ...SamplerBuilderOption) Sampler {
	s := &samplerImpl{
		mu:       &sync.Mutex{},
		bindings: DefaultBindings(),
		held:     map[uint32]bool{},
		log:      logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *samplerImpl) Press(c Control) {
	s.set(c, true)
}

func (s *samplerImpl) Release(c Control) {
	s.set(c, false)
}

func (s *samplerImpl) PressKey(keyCode uint32) {
	s.mu.Lock()
	c := s.bindings[keyCode]
	if c != ControlNone {
		s.held[keyCode] = true
	}
	s.mu.Unlock()
	s.set(c, true)
}

func (s *samplerImpl) ReleaseKey(keyCode uint32) {
	s.mu.Lock()
	c := s.bindings[keyCode]
	delete(s.held, keyCode)
	for key := range s.held {
		if s.bindings[key] == c {
			// an aliased key still holds the control
			s.mu.Unlock()
			return
		}
	}
	s.mu.Unlock()
	s.set(c, false)
}

func (s *samplerImpl) Snapshot() ControlSignals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signals
}

func (s *samplerImpl) Binding(keyCode uint32) Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bindings[keyCode]
}

func (s *samplerImpl) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = ControlSignals{}
	clear(s.held)
}

// set writes a single flag. ControlNone (unbound or unknown) is dropped.
func (s *samplerImpl) set(c Control, held bool) {
	if c <= ControlNone || c > ControlSprint {
		return
	}
	s.mu.Lock()
	s.signals = s.signals.With(c, held)
	s.mu.Unlock()
	s.log.WithFields(logrus.Fields{"control": c.String(), "held": held}).Trace("input")
}
