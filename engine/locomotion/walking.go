package locomotion

import (
	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/Carmen-Shannon/oxy-avatar/engine/fsm"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
)

// walkingState plays the walk cycle until both longitudinal controls are released.
type walkingState struct {
	state
}

var _ fsm.State = &walkingState{}

func newWalkingFactory(blend float32) fsm.Factory {
	return func(ctx animation.Lookup, _ string) (fsm.State, error) {
		return &walkingState{state{id: Walking, lookup: ctx, blend: blend}}, nil
	}
}

func (s *walkingState) Update(_ float32, signals input.ControlSignals) string {
	return s.update(signals)
}
