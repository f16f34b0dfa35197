package locomotion

import (
	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/Carmen-Shannon/oxy-avatar/engine/fsm"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
)

// idleState stands still and waits for forward or backward.
type idleState struct {
	state
}

var _ fsm.State = &idleState{}

func newIdleFactory(blend float32) fsm.Factory {
	return func(ctx animation.Lookup, _ string) (fsm.State, error) {
		return &idleState{state{id: Idle, lookup: ctx, blend: blend}}, nil
	}
}

func (s *idleState) Update(_ float32, signals input.ControlSignals) string {
	return s.update(signals)
}
