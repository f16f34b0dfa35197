package fsm

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
	"github.com/sirupsen/logrus"
)

// State is one node of a Machine. A state instance lives from its Enter until the next transition;
// the machine then discards it and builds a fresh instance on the next entry.
type State interface {
	// Name returns the name the state was registered under.
	Name() string

	// Enter activates the state.
	//
	// Parameters:
	//   - previous: the state being replaced, or nil on the first activation
	//
	// Returns:
	//   - error: an error if the state cannot start
	Enter(previous State) error

	// Exit is called on the outgoing state before the incoming state is entered.
	Exit()

	// Update runs the state for one frame.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//   - signals: the control snapshot for this frame
	//
	// Returns:
	//   - string: the name of the state to transition to, or "" to stay
	Update(dt float32, signals input.ControlSignals) string
}

// Factory builds a new instance of a registered state.
//
// Parameters:
//   - ctx: the animation lookup shared by every state of the machine
//   - name: the name the factory was registered under
//
// Returns:
//   - State: the new state
//   - error: an error if the state cannot be built
type Factory func(ctx animation.Lookup, name string) (State, error)

// TransitionHook is notified after a transition completes. from is "" on the first activation.
type TransitionHook func(from, to string)

// Machine holds a table of state factories and exactly one active state.
type Machine interface {
	// AddState registers a factory under name, replacing any previous factory for that name.
	//
	// Parameters:
	//   - name: the state name
	//   - factory: the constructor for the state
	AddState(name string, factory Factory)

	// SetState transitions to the named state.
	// It is a no-op if name is already the current state. For an unregistered name it returns
	// a *common.LookupError and leaves the current state untouched. Otherwise the new state is
	// built, the current one exited, and the new one entered with the old one as previous.
	//
	// Parameters:
	//   - name: the target state name
	//
	// Returns:
	//   - error: a lookup, construction or enter error
	SetState(name string) error

	// Update delegates to the current state and applies the transition it asks for.
	// It is a no-op when no state is active.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//   - signals: the control snapshot for this frame
	//
	// Returns:
	//   - error: any error from the resulting SetState
	Update(dt float32, signals input.ControlSignals) error

	// Current returns the active state, or nil.
	Current() State

	// CurrentName returns the active state's name, or "".
	CurrentName() string

	// States returns the registered state names in no particular order.
	States() []string
}

// machineImpl is the implementation of the Machine interface.
type machineImpl struct {
	mu *sync.Mutex

	ctx       animation.Lookup
	factories map[string]Factory
	current   State

	hooks []TransitionHook
	log   *logrus.Logger
}

var _ Machine = &machineImpl{}

// NewMachine creates a Machine with no states. ctx is passed to every factory.
//
// Parameters:
//   - ctx: the animation lookup shared with all states
//   - options: functional options to configure the machine
//
// Returns:
//   - Machine: the newly created machine
func NewMachine(ctx animation.Lookup, options ...MachineBuilderOption) Machine {
	m := &machineImpl{
		mu:        &sync.Mutex{},
		ctx:       ctx,
		factories: make(map[string]Factory),
		log:       logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *machineImpl) AddState(name string, factory Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factories[name] = factory
}

func (m *machineImpl) SetState(name string) error {
	m.mu.Lock()
	from, changed, err := m.setState(name)
	m.mu.Unlock()

	if changed {
		m.notify(from, name)
	}
	return err
}

// setState performs the transition. The caller holds mu.
func (m *machineImpl) setState(name string) (string, bool, error) {
	previous := m.current
	from := ""
	if previous != nil {
		from = previous.Name()
		if from == name {
			return from, false, nil
		}
	}

	factory, ok := m.factories[name]
	if !ok {
		return from, false, common.NewLookupError("state", name)
	}
	next, err := factory(m.ctx, name)
	if err != nil {
		return from, false, fmt.Errorf("failed to construct state %q: %w", name, err)
	}

	if previous != nil {
		previous.Exit()
	}
	m.current = next
	if err := next.Enter(previous); err != nil {
		return from, true, fmt.Errorf("failed to enter state %q: %w", name, err)
	}
	return from, true, nil
}

func (m *machineImpl) notify(from, to string) {
	m.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("state transition")
	for _, hook := range m.hooks {
		hook(from, to)
	}
}

func (m *machineImpl) Update(dt float32, signals input.ControlSignals) error {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil
	}
	next := m.current.Update(dt, signals)
	if next == "" {
		m.mu.Unlock()
		return nil
	}
	from, changed, err := m.setState(next)
	m.mu.Unlock()

	if changed {
		m.notify(from, next)
	}
	return err
}

func (m *machineImpl) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *machineImpl) CurrentName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

func (m *machineImpl) States() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}
	return names
}
