package crowd

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/controller"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

var errDuplicateName = errors.New("controller name already in crowd")

// Crowd steps many character controllers each frame on a shared worker pool.
// Controllers are independent, so each one is updated on its own task and the frame
// returns once every task has finished.
type Crowd interface {
	// Add puts a controller into the crowd under its Name.
	//
	// Parameters:
	//   - c: the controller to add
	//
	// Returns:
	//   - error: an error if a controller with the same name is already present
	Add(c controller.Controller) error

	// Remove drops the named controller. It reports whether anything was removed.
	Remove(name string) bool

	// Get returns the named controller.
	//
	// Returns:
	//   - controller.Controller: the controller
	//   - error: a *common.LookupError when the name is unknown
	Get(name string) (controller.Controller, error)

	// Names returns controller names in insertion order.
	Names() []string

	// Len returns the number of controllers.
	Len() int

	// Update runs one frame on every controller and waits for all of them.
	// A controller that panics is reported and its panic becomes an error; the rest still run.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - error: every controller error of this frame joined together, or nil
	Update(dt float32) error

	// Close stops the worker pool. Update must not be called afterwards.
	Close()
}

type crowdImpl struct {
	mu *sync.Mutex

	members *orderedmap.OrderedMap[string, controller.Controller]
	pool    worker.DynamicWorkerPool
	workers int
	queue   int
	closed  bool
	report  bool

	log *logrus.Logger
}

var _ Crowd = &crowdImpl{}

// NewCrowd creates an empty crowd and starts its worker pool.
//
// Parameters:
//   - options: functional options to configure the crowd
//
// Returns:
//   - Crowd: the new crowd
func NewCrowd(options ...CrowdBuilderOption) Crowd {
	c := &crowdImpl{
		mu:      &sync.Mutex{},
		members: orderedmap.NewOrderedMap[string, controller.Controller](),
		workers: 4,
		queue:   256,
		report:  true,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.pool = worker.NewDynamicWorkerPool(c.workers, c.queue, 1*time.Second)
	return c
}

func (c *crowdImpl) Add(ctrl controller.Controller) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := ctrl.Name()
	if _, ok := c.members.Get(name); ok {
		return fmt.Errorf("%w: %s", errDuplicateName, name)
	}
	c.members.Set(name, ctrl)
	c.log.WithField("avatar", name).Debug("joined crowd")
	return nil
}

func (c *crowdImpl) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.members.Delete(name)
}

func (c *crowdImpl) Get(name string) (controller.Controller, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctrl, ok := c.members.Get(name)
	if !ok {
		return nil, common.NewLookupError("avatar", name)
	}
	return ctrl, nil
}

func (c *crowdImpl) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.members.Keys()
}

func (c *crowdImpl) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.members.Len()
}

func (c *crowdImpl) Update(dt float32) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	members := make([]controller.Controller, 0, c.members.Len())
	for el := c.members.Front(); el != nil; el = el.Next() {
		members = append(members, el.Value)
	}
	c.mu.Unlock()

	// one slot per member, so tasks never share an index
	errs := make([]error, len(members))

	// pool.Wait blocks until workers idle-exit, so a WaitGroup is the frame barrier
	var wg sync.WaitGroup
	for i, ctrl := range members {
		wg.Add(1)
		idx, member := i, ctrl
		c.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				errs[idx] = c.step(member, dt)
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	return errors.Join(errs...)
}

// step updates one controller, turning a panic into an error.
func (c *crowdImpl) step(ctrl controller.Controller, dt float32) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("avatar %s panicked: %v", ctrl.Name(), r)
			c.log.WithField("avatar", ctrl.Name()).Errorf("Update() panic: %v", r)
			if c.report {
				hub := sentry.CurrentHub().Clone()
				hub.ConfigureScope(func(scope *sentry.Scope) {
					scope.SetTag("avatar", ctrl.Name())
					scope.SetTag("state", ctrl.State())
				})
				hub.Recover(err)
				hub.Flush(time.Second * 5)
			}
		}
	}()

	if err := ctrl.Update(dt); err != nil {
		return fmt.Errorf("avatar %s: %w", ctrl.Name(), err)
	}
	return nil
}

func (c *crowdImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.pool.Stop()
}
