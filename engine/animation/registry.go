package animation

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
)

var errEmptyName = errors.New("animation name must not be empty")

// Handle binds a registry name to a clip and the action that plays it.
// Only the action's runtime fields change after registration.
type Handle struct {
	Name   string
	Clip   Clip
	Action Action
}

// Lookup is the read-only view of a Registry handed to state machine states.
type Lookup interface {
	// Get returns the handle registered under name.
	//
	// Parameters:
	//   - name: the registered animation name
	//
	// Returns:
	//   - *Handle: the handle
	//   - error: a *common.LookupError if the name is not registered
	Get(name string) (*Handle, error)
}

// Registry maps animation names to playable handles.
// It never advances time; the Mixer that owns the actions does that once per frame.
type Registry interface {
	Lookup

	// Register binds name to clip, creating the clip's action through the mixer.
	// Registering an existing name replaces its binding.
	//
	// Parameters:
	//   - name: the animation name states look up
	//   - clip: the clip to bind
	//
	// Returns:
	//   - *Handle: the new handle
	//   - error: an error if name is empty
	Register(name string, clip Clip) (*Handle, error)

	// Has reports whether name is registered.
	Has(name string) bool

	// Names returns the registered names in registration order.
	//
	// Returns:
	//   - []string: the names
	Names() []string

	// Mixer returns the mixer the registry creates actions through.
	//
	// Returns:
	//   - Mixer: the mixer
	Mixer() Mixer
}

// registryImpl is the implementation of the Registry interface.
type registryImpl struct {
	mu *sync.Mutex

	mixer   Mixer
	handles *orderedmap.OrderedMap[string, *Handle]

	log *logrus.Logger
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty Registry backed by mixer. A nil mixer gets a fresh one.
//
// Parameters:
//   - mixer: the mixer that creates and advances actions
//   - options: functional options to configure the registry
//
// Returns:
//   - Registry: the newly created registry
func NewRegistry(mixer Mixer, options ...RegistryBuilderOption) Registry {
	if mixer == nil {
		mixer = NewMixer()
	}
	r := &registryImpl{
		mu:      &sync.Mutex{},
		mixer:   mixer,
		handles: orderedmap.NewOrderedMap[string, *Handle](),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *registryImpl) Register(name string, clip Clip) (*Handle, error) {
	if name == "" {
		return nil, errEmptyName
	}
	h := &Handle{
		Name:   name,
		Clip:   clip,
		Action: r.mixer.ClipAction(clip),
	}

	r.mu.Lock()
	_, replaced := r.handles.Get(name)
	r.handles.Set(name, h)
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{
		"animation": name,
		"clip":      clip.Name,
		"duration":  clip.Duration,
		"replaced":  replaced,
	}).Debug("registered animation")
	return h, nil
}

func (r *registryImpl) Get(name string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles.Get(name)
	if !ok {
		return nil, common.NewLookupError("animation", name)
	}
	return h, nil
}

func (r *registryImpl) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.handles.Get(name)
	return ok
}

func (r *registryImpl) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handles.Keys()
}

func (r *registryImpl) Mixer() Mixer {
	return r.mixer
}
