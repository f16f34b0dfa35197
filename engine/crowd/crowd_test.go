package crowd

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/controller"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
	"github.com/sirupsen/logrus"
)

var clips = controller.StaticClipSource{
	{Name: "idle", Duration: 2},
	{Name: "walking", Duration: 1},
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func loadedController(t *testing.T, name string) controller.Controller {
	t.Helper()
	c := controller.NewController(controller.WithName(name), controller.WithLogger(quietLogger()))
	if err := c.Load(context.Background(), clips); err != nil {
		t.Fatalf("Load(%s): %v", name, err)
	}
	return c
}

// panicky overrides Update on a real controller.
type panicky struct {
	controller.Controller
}

func (p panicky) Update(float32) error { panic("boom") }

func newTestCrowd(t *testing.T) Crowd {
	t.Helper()
	c := NewCrowd(WithWorkers(3), WithPanicReporting(false), WithLogger(quietLogger()))
	t.Cleanup(c.Close)
	return c
}

func TestAddAndLookup(t *testing.T) {
	c := newTestCrowd(t)
	for _, name := range []string{"alice", "bob", "carol"} {
		if err := c.Add(loadedController(t, name)); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Add(loadedController(t, "bob")); !errors.Is(err, errDuplicateName) {
		t.Fatalf("duplicate Add err = %v", err)
	}

	names := c.Names()
	if len(names) != 3 || names[0] != "alice" || names[2] != "carol" {
		t.Fatalf("Names() = %v", names)
	}
	if _, err := c.Get("dave"); !errors.Is(err, common.ErrLookup) {
		t.Fatalf("Get(dave) err = %v", err)
	}
	if !c.Remove("bob") || c.Remove("bob") || c.Len() != 2 {
		t.Fatal("Remove should drop bob exactly once")
	}
}

func TestUpdateStepsEveryController(t *testing.T) {
	c := newTestCrowd(t)
	walkers := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, name := range walkers {
		ctrl := loadedController(t, name)
		if i%2 == 0 {
			ctrl.Input().Press(input.ControlForward)
		}
		if err := c.Add(ctrl); err != nil {
			t.Fatal(err)
		}
	}

	for frame := 0; frame < 10; frame++ {
		if err := c.Update(0.1); err != nil {
			t.Fatal(err)
		}
	}

	for i, name := range walkers {
		ctrl, err := c.Get(name)
		if err != nil {
			t.Fatal(err)
		}
		moving := ctrl.Motion().Position.Z() > 0
		wantState := "idle"
		if i%2 == 0 {
			wantState = "walking"
		}
		if moving != (i%2 == 0) || ctrl.State() != wantState {
			t.Fatalf("%s: position=%v state=%s", name, ctrl.Motion().Position, ctrl.State())
		}
		if got := ctrl.Mixer().Time(); got < 0.99 || got > 1.01 {
			t.Fatalf("%s: mixer time = %v, want 1", name, got)
		}
	}
}

func TestUpdateRecoversPanics(t *testing.T) {
	c := newTestCrowd(t)
	good := loadedController(t, "good")
	good.Input().Press(input.ControlForward)
	if err := c.Add(good); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(panicky{loadedController(t, "bad")}); err != nil {
		t.Fatal(err)
	}

	err := c.Update(0.1)
	if err == nil {
		t.Fatal("expected an error from the panicking controller")
	}
	if good.Motion().Position.Z() <= 0 {
		t.Fatal("a panic in one controller must not stop the others")
	}
	if err := c.Update(0.1); err == nil {
		t.Fatal("the crowd should keep running after a panic")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewCrowd(WithLogger(quietLogger()))
	if err := c.Add(loadedController(t, "solo")); err != nil {
		t.Fatal(err)
	}
	c.Close()
	c.Close()
	if err := c.Update(0.1); err != nil {
		t.Fatalf("Update after Close = %v, want nil", err)
	}
}
