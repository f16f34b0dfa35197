package controller

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

type recordingSink struct {
	mu          sync.Mutex
	calls       int
	position    mgl32.Vec3
	orientation mgl32.Quat
}

func (s *recordingSink) SetTransform(position mgl32.Vec3, orientation mgl32.Quat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.position = position
	s.orientation = orientation
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var avatarClips = StaticClipSource{
	{Name: "idle", Duration: 2},
	{Name: "walking", Duration: 1},
	{Name: "dance", Duration: 4},
}

func TestUpdateBeforeLoadIsNoop(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(WithLogger(quietLogger()), WithSink(sink))
	c.Input().Press(input.ControlForward)

	if err := c.Update(1); err != nil {
		t.Fatal(err)
	}
	if c.Ready() || c.State() != "" {
		t.Fatal("controller should not be ready before Load")
	}
	if c.Motion().Position != (mgl32.Vec3{}) || sink.calls != 0 || c.Mixer().Time() != 0 {
		t.Fatal("Update before Load must not touch motion, sinks or the mixer")
	}
}

func TestLoadEntersIdle(t *testing.T) {
	c := NewController(WithLogger(quietLogger()))
	if err := c.Load(context.Background(), avatarClips); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Ready() || c.State() != "idle" {
		t.Fatalf("Ready=%v State=%q", c.Ready(), c.State())
	}
	names := c.Registry().Names()
	if len(names) != 2 || names[0] != "idle" || names[1] != "walking" {
		t.Fatalf("registered = %v", names)
	}
	idle, _ := c.Registry().Get("idle")
	if !idle.Action.IsRunning() || idle.Action.IsFading() {
		t.Fatal("idle should play without a blend on first activation")
	}

	if err := c.Load(context.Background(), avatarClips); !errors.Is(err, errAlreadyLoaded) {
		t.Fatalf("second Load err = %v", err)
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name   string
		ctx    func() context.Context
		source ClipSource
		check  func(error) bool
	}{
		{
			name:   "missing walking clip",
			ctx:    context.Background,
			source: StaticClipSource{{Name: "idle", Duration: 1}},
			check: func(err error) bool {
				var le *common.LookupError
				return errors.As(err, &le) && le.Kind == "clip" && le.Name == "walking"
			},
		},
		{
			name: "canceled context",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			source: avatarClips,
			check:  func(err error) bool { return errors.Is(err, context.Canceled) },
		},
		{
			name:   "nil source",
			ctx:    context.Background,
			source: nil,
			check:  func(err error) bool { return errors.Is(err, errNoClipSource) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(WithLogger(quietLogger()))
			err := c.Load(tt.ctx(), tt.source)
			if !tt.check(err) {
				t.Fatalf("Load err = %v", err)
			}
			if c.Ready() || c.State() != "" {
				t.Fatal("a failed Load must leave the controller not ready")
			}
		})
	}
}

func TestFrameFlow(t *testing.T) {
	sink := &recordingSink{}
	var transitions []string
	c := NewController(
		WithLogger(quietLogger()),
		WithSink(sink),
		WithTransitionHook(func(from, to string) { transitions = append(transitions, from+">"+to) }),
	)
	if err := c.Load(context.Background(), avatarClips); err != nil {
		t.Fatal(err)
	}

	c.Input().PressKey(common.KeyW)
	if err := c.Update(1); err != nil {
		t.Fatal(err)
	}
	if c.State() != "walking" {
		t.Fatalf("State() = %q, want walking", c.State())
	}
	if got := c.Motion().Position[2]; got != 50 {
		t.Fatalf("z = %v, want 50", got)
	}
	if sink.calls != 1 || sink.position != c.Motion().Position {
		t.Fatalf("sink calls=%d position=%v", sink.calls, sink.position)
	}
	if c.Mixer().Time() != 1 {
		t.Fatalf("mixer time = %v, want 1", c.Mixer().Time())
	}
	walking, _ := c.Registry().Get("walking")
	if walking.Action.IsFading() {
		t.Fatal("the 0.5s blend should have completed within the 1s frame")
	}

	c.Input().ReleaseKey(common.KeyW)
	if err := c.Update(0.1); err != nil {
		t.Fatal(err)
	}
	if c.State() != "idle" {
		t.Fatalf("State() = %q, want idle", c.State())
	}

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

func TestCustomClipNames(t *testing.T) {
	c := NewController(WithLogger(quietLogger()), WithClipNames("Idle", "Walk"))
	src := StaticClipSource{{Name: "Idle", Duration: 2}, {Name: "Walk", Duration: 1}}
	if err := c.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	h, err := c.Registry().Get("walking")
	if err != nil || h.Clip.Name != "Walk" {
		t.Fatalf("walking handle = %+v, err = %v", h, err)
	}
}

func TestStartTransformAndSharedSampler(t *testing.T) {
	sampler := input.NewSampler()
	start := mgl32.Vec3{3, 0, -2}
	c := NewController(
		WithLogger(quietLogger()),
		WithSampler(sampler),
		WithStartTransform(start, mgl32.QuatIdent()),
		WithName("npc"),
	)
	if c.Input() != sampler || c.Name() != "npc" {
		t.Fatal("options were not applied")
	}
	if c.Motion().Position != start {
		t.Fatalf("start position = %v", c.Motion().Position)
	}
}

func TestLoadWhileUpdating(t *testing.T) {
	c := NewController(WithLogger(quietLogger()))
	c.Input().Press(input.ControlForward)

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background(), avatarClips) }()

	for i := 0; i < 100; i++ {
		if err := c.Update(0.01); err != nil {
			t.Fatal(err)
		}
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if err := c.Update(0.01); err != nil {
		t.Fatal(err)
	}
	if c.State() != "walking" {
		t.Fatalf("State() = %q, want walking once loaded", c.State())
	}
}

func TestAddSink(t *testing.T) {
	c := NewController(WithLogger(quietLogger()))
	if err := c.Load(context.Background(), avatarClips); err != nil {
		t.Fatal(err)
	}
	sink := &recordingSink{}
	c.AddSink(sink)
	c.AddSink(nil)
	c.Input().Press(input.ControlLeft)
	if err := c.Update(0.25); err != nil {
		t.Fatal(err)
	}
	if sink.calls != 1 || sink.orientation == mgl32.QuatIdent() {
		t.Fatalf("sink calls=%d orientation=%v", sink.calls, sink.orientation)
	}
}
