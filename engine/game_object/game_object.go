package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	model   string
	enabled atomic.Bool

	position    mgl32.Vec3
	orientation mgl32.Quat
	scale       mgl32.Vec3

	// bumped on every transform change
	version uint64
}

// GameObject is the renderable stand-in for an avatar: a named transform plus the model it draws.
// It satisfies controller.TransformSink, so a controller keeps it in sync with the character each frame,
// and a renderer reads ModelMatrix from it.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	Name() string

	// Model returns the path of the model this object draws, or "" if none.
	Model() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Position returns the world-space position.
	Position() mgl32.Vec3

	// Orientation returns the world-space rotation.
	Orientation() mgl32.Quat

	// Scale returns the per-axis scale.
	Scale() mgl32.Vec3

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - scale: new scale factors
	SetScale(scale mgl32.Vec3)

	// SetTransform replaces position and orientation.
	//
	// Parameters:
	//   - position: the world-space position
	//   - orientation: the world-space rotation
	SetTransform(position mgl32.Vec3, orientation mgl32.Quat)

	// Transform returns position and orientation together.
	//
	// Returns:
	//   - common.Transform: a consistent snapshot
	Transform() common.Transform

	// ModelMatrix composes translation × rotation × scale.
	//
	// Returns:
	//   - mgl32.Mat4: the object-to-world matrix
	ModelMatrix() mgl32.Mat4

	// Version increments whenever the transform or scale changes, so readers can skip unchanged objects.
	Version() uint64
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// It starts enabled, at the origin, with identity orientation and unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:          &sync.Mutex{},
		orientation: mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Model() string {
	return g.model
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Orientation() mgl32.Quat {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orientation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetScale(scale mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = scale
	g.version++
}

func (g *gameObject) SetTransform(position mgl32.Vec3, orientation mgl32.Quat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if position == g.position && orientation == g.orientation {
		return
	}
	g.position = position
	g.orientation = orientation
	g.version++
}

func (g *gameObject) Transform() common.Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.Transform{Position: g.position, Orientation: g.orientation}
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return mgl32.Translate3D(g.position.X(), g.position.Y(), g.position.Z()).
		Mul4(g.orientation.Mat4()).
		Mul4(mgl32.Scale3D(g.scale.X(), g.scale.Y(), g.scale.Z()))
}

func (g *gameObject) Version() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.version
}
