package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/Carmen-Shannon/oxy-avatar/engine/fsm"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
	"github.com/Carmen-Shannon/oxy-avatar/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-avatar/engine/motion"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

var (
	errAlreadyLoaded = errors.New("controller already loaded")
	errNoClipSource  = errors.New("no clip source")
)

// TransformSink receives the character transform once per frame, e.g. a game object or a follow camera.
type TransformSink interface {
	SetTransform(position mgl32.Vec3, orientation mgl32.Quat)
}

// ClipSource supplies the named animation clips of a character model.
type ClipSource interface {
	Clips(ctx context.Context) ([]animation.Clip, error)
}

// StaticClipSource is a ClipSource over clips already in memory.
type StaticClipSource []animation.Clip

// Clips returns the clips unless ctx is already done.
func (s StaticClipSource) Clips(ctx context.Context) ([]animation.Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Controller drives one character: it samples input, runs the locomotion state machine,
// integrates motion, pushes the transform to its sinks and advances the animation mixer.
//
// A Controller starts "not loaded", where Update is a no-op, and becomes ready once Load succeeds.
// Load is meant to run on its own goroutine while the frame loop is already calling Update.
type Controller interface {
	// Load fetches the clips from source, registers the idle and walking animations and enters Idle.
	//
	// Parameters:
	//   - ctx: cancels the clip fetch
	//   - source: where the clips come from
	//
	// Returns:
	//   - error: a source error, a *common.LookupError for a missing clip, or an error if already loaded
	Load(ctx context.Context, source ClipSource) error

	// Update runs one frame. It is a no-op until Load has succeeded.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - error: a state machine error; nil in normal operation
	Update(dt float32) error

	// Ready reports whether Load has completed.
	Ready() bool

	// State returns the current locomotion state name, or "" before Load.
	State() string

	// Motion returns the current kinematic state.
	Motion() motion.MotionState

	// Input returns the sampler key events should be fed into.
	Input() input.Sampler

	// Registry returns the animation registry.
	Registry() animation.Registry

	// Mixer returns the mixer advanced at the end of every Update.
	Mixer() animation.Mixer

	// AddSink registers a transform sink. The sink first receives the transform on the next Update.
	AddSink(sink TransformSink)

	// Name returns the controller's name, used in logs.
	Name() string
}

// controllerImpl is the implementation of the Controller interface.
type controllerImpl struct {
	name string

	sampler    input.Sampler
	mixer      animation.Mixer
	registry   animation.Registry
	machine    fsm.Machine
	integrator motion.Integrator

	sinksMu *sync.Mutex
	sinks   []TransformSink

	loadMu      *sync.Mutex
	ready       atomic.Bool
	idleClip    string
	walkingClip string

	blend      float32
	tunables   motion.Tunables
	hooks      []fsm.TransitionHook
	motionOpts []motion.IntegratorBuilderOption

	log *logrus.Logger
}

var _ Controller = &controllerImpl{}

// NewController creates a Controller with default tunables, bindings and clip names "idle"/"walking".
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		name:        "avatar",
		sinksMu:     &sync.Mutex{},
		loadMu:      &sync.Mutex{},
		idleClip:    locomotion.Idle.String(),
		walkingClip: locomotion.Walking.String(),
		blend:       locomotion.BlendDuration,
		tunables:    motion.DefaultTunables(),
		log:         logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(c)
	}

	if c.sampler == nil {
		c.sampler = input.NewSampler(input.WithLogger(c.log))
	}
	if c.mixer == nil {
		c.mixer = animation.NewMixer()
	}
	c.registry = animation.NewRegistry(c.mixer, animation.WithLogger(c.log))

	machineOpts := []locomotion.MachineBuilderOption{
		locomotion.WithBlendDuration(c.blend),
		locomotion.WithLogger(c.log),
	}
	for _, hook := range c.hooks {
		machineOpts = append(machineOpts, locomotion.WithTransitionHook(hook))
	}
	c.machine = locomotion.NewMachine(c.registry, machineOpts...)

	c.integrator = motion.NewIntegrator(append([]motion.IntegratorBuilderOption{motion.WithTunables(c.tunables)}, c.motionOpts...)...)
	return c
}

func (c *controllerImpl) Load(ctx context.Context, source ClipSource) error {
	if source == nil {
		return errNoClipSource
	}
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if c.ready.Load() {
		return errAlreadyLoaded
	}

	clips, err := source.Clips(ctx)
	if err != nil {
		return fmt.Errorf("failed to load clips: %w", err)
	}

	byName := make(map[string]animation.Clip, len(clips))
	for _, clip := range clips {
		byName[clip.Name] = clip
	}
	bindings := []struct {
		state locomotion.StateID
		clip  string
	}{
		{locomotion.Idle, c.idleClip},
		{locomotion.Walking, c.walkingClip},
	}
	for _, b := range bindings {
		if _, ok := byName[b.clip]; !ok {
			return common.NewLookupError("clip", b.clip)
		}
	}
	for _, b := range bindings {
		if _, err := c.registry.Register(b.state.String(), byName[b.clip]); err != nil {
			return fmt.Errorf("failed to register %s: %w", b.state, err)
		}
	}

	if err := c.machine.SetState(locomotion.Idle.String()); err != nil {
		return fmt.Errorf("failed to enter initial state: %w", err)
	}
	c.ready.Store(true)

	c.log.WithFields(logrus.Fields{
		"avatar":  c.name,
		"idle":    c.idleClip,
		"walking": c.walkingClip,
		"clips":   len(clips),
	}).Info("avatar loaded")
	return nil
}

func (c *controllerImpl) Update(dt float32) error {
	if !c.ready.Load() {
		return nil
	}

	signals := c.sampler.Snapshot()
	if err := c.machine.Update(dt, signals); err != nil {
		return fmt.Errorf("avatar %q: %w", c.name, err)
	}

	s := c.integrator.Update(dt, signals)

	c.sinksMu.Lock()
	sinks := c.sinks
	c.sinksMu.Unlock()
	for _, sink := range sinks {
		sink.SetTransform(s.Position, s.Orientation)
	}

	c.mixer.Update(dt)
	return nil
}

func (c *controllerImpl) Ready() bool {
	return c.ready.Load()
}

func (c *controllerImpl) State() string {
	return c.machine.CurrentName()
}

func (c *controllerImpl) Motion() motion.MotionState {
	return c.integrator.State()
}

func (c *controllerImpl) Input() input.Sampler {
	return c.sampler
}

func (c *controllerImpl) Registry() animation.Registry {
	return c.registry
}

func (c *controllerImpl) Mixer() animation.Mixer {
	return c.mixer
}

func (c *controllerImpl) AddSink(sink TransformSink) {
	if sink == nil {
		return
	}
	c.sinksMu.Lock()
	defer c.sinksMu.Unlock()
	// Copy on write so Update can iterate without holding the lock.
	sinks := make([]TransformSink, len(c.sinks), len(c.sinks)+1)
	copy(sinks, c.sinks)
	c.sinks = append(sinks, sink)
}

func (c *controllerImpl) Name() string {
	return c.name
}
