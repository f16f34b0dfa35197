package animation

import (
	"sync"

	"github.com/elliotchance/orderedmap/v2"
)

// Mixer owns the actions for a set of clips and advances them on a shared clock.
// Fades and warps are scheduled against the mixer clock, so they only progress through Update.
type Mixer interface {
	// ClipAction returns the action for clip, creating it on first use.
	// Actions are keyed by clip name; later calls with the same name return the existing action.
	//
	// Parameters:
	//   - clip: the clip to play
	//
	// Returns:
	//   - Action: the action bound to the clip
	ClipAction(clip Clip) Action

	// ExistingAction returns the action previously created for a clip name.
	//
	// Parameters:
	//   - clipName: the clip name
	//
	// Returns:
	//   - Action: the action, or nil
	//   - bool: false if no action exists for the name
	ExistingAction(clipName string) (Action, bool)

	// Actions returns every action in creation order.
	//
	// Returns:
	//   - []Action: the actions
	Actions() []Action

	// Update advances the mixer clock by dt seconds (scaled by the mixer time-scale) and
	// advances every scheduled action.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Time returns the mixer clock in seconds.
	//
	// Returns:
	//   - float32: the accumulated mixer time
	Time() float32

	// StopAllAction stops and resets every action.
	StopAllAction()
}

// mixerImpl is the implementation of the Mixer interface.
type mixerImpl struct {
	mu *sync.Mutex

	time      float32
	timeScale float32
	actions   *orderedmap.OrderedMap[string, *actionImpl]
}

var _ Mixer = &mixerImpl{}

// NewMixer creates a Mixer with its clock at zero.
//
// Parameters:
//   - options: functional options to configure the mixer
//
// Returns:
//   - Mixer: the newly created mixer
func NewMixer(options ...MixerBuilderOption) Mixer {
	m := &mixerImpl{
		mu:        &sync.Mutex{},
		timeScale: 1,
		actions:   orderedmap.NewOrderedMap[string, *actionImpl](),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *mixerImpl) ClipAction(clip Clip) Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.actions.Get(clip.Name); ok {
		return a
	}
	a := newAction(m, clip)
	m.actions.Set(clip.Name, a)
	return a
}

func (m *mixerImpl) ExistingAction(clipName string) (Action, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actions.Get(clipName)
	if !ok {
		return nil, false
	}
	return a, true
}

func (m *mixerImpl) Actions() []Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Action, 0, m.actions.Len())
	for el := m.actions.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

func (m *mixerImpl) Update(dt float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dt *= m.timeScale
	m.time += dt
	for el := m.actions.Front(); el != nil; el = el.Next() {
		el.Value.update(m.time, dt)
	}
}

func (m *mixerImpl) Time() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.time
}

func (m *mixerImpl) StopAllAction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for el := m.actions.Front(); el != nil; el = el.Next() {
		el.Value.scheduled = false
		el.Value.reset()
	}
}
