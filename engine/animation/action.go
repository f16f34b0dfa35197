package animation

import (
	"sync"

	"github.com/chewxy/math32"
)

// Action is the playback state of one Clip inside a Mixer.
//
// Weight and time-scale each have a base value (set with SetEffectiveWeight and
// SetEffectiveTimeScale) and an optional ramp scheduled against mixer time: fades multiply the
// base weight, warps replace the time-scale until they finish. Setting a base value cancels the
// matching ramp. An action only advances while it is playing, enabled and not paused.
type Action interface {
	// Clip returns the clip this action plays.
	//
	// Returns:
	//   - Clip: the bound clip
	Clip() Clip

	// Play schedules the action so the mixer advances it. Playback time is not reset.
	Play()

	// Stop unschedules the action and resets it.
	Stop()

	// Reset clears pause, re-enables the action, rewinds to 0 and cancels any fade or warp.
	Reset()

	// IsRunning reports whether the action is scheduled, enabled, unpaused and has a non-zero time-scale.
	//
	// Returns:
	//   - bool: true if the next mixer update will move the playback time
	IsRunning() bool

	// IsScheduled reports whether Play has been called without a subsequent Stop.
	//
	// Returns:
	//   - bool: true if the action is scheduled
	IsScheduled() bool

	SetEnabled(enabled bool)
	Enabled() bool
	SetPaused(paused bool)
	Paused() bool
	SetLoop(loop bool)
	Loop() bool

	// SetTime sets the local playback time in seconds.
	//
	// Parameters:
	//   - t: the playback time
	SetTime(t float32)

	// Time returns the local playback time in seconds.
	//
	// Returns:
	//   - float32: the playback time
	Time() float32

	// SetEffectiveWeight sets the base weight and cancels any fade in progress.
	//
	// Parameters:
	//   - weight: the new base weight
	SetEffectiveWeight(weight float32)

	// EffectiveWeight returns the base weight, without any fade applied.
	//
	// Returns:
	//   - float32: the base weight
	EffectiveWeight() float32

	// BlendWeight returns the weight this action currently contributes to the pose:
	// zero if disabled, otherwise the base weight multiplied by any fade in progress.
	//
	// Returns:
	//   - float32: the current blend weight
	BlendWeight() float32

	// SetEffectiveTimeScale sets the base time-scale and cancels any warp in progress.
	//
	// Parameters:
	//   - timeScale: the new playback speed multiplier
	SetEffectiveTimeScale(timeScale float32)

	// EffectiveTimeScale returns the base time-scale, without any warp applied.
	//
	// Returns:
	//   - float32: the base time-scale
	EffectiveTimeScale() float32

	// CurrentTimeScale returns the playback speed the next update will use:
	// zero if paused, otherwise the warp value if warping, otherwise the base time-scale.
	//
	// Returns:
	//   - float32: the current time-scale
	CurrentTimeScale() float32

	// FadeIn ramps the weight multiplier from 0 to 1 over duration seconds of mixer time.
	//
	// Parameters:
	//   - duration: fade length in seconds
	FadeIn(duration float32)

	// FadeOut ramps the weight multiplier from 1 to 0 over duration seconds of mixer time.
	// The action is disabled when the fade completes.
	//
	// Parameters:
	//   - duration: fade length in seconds
	FadeOut(duration float32)

	// Warp ramps the time-scale from start to end over duration seconds of mixer time.
	// When the warp completes the base time-scale becomes end, or the action pauses if end is 0.
	//
	// Parameters:
	//   - start: time-scale at the start of the warp
	//   - end: time-scale at the end of the warp
	//   - duration: warp length in seconds
	Warp(start, end, duration float32)

	// CrossFadeFrom fades this action in and from out over the same window. With warp set, both
	// actions also ramp their time-scales so their cycles line up during the blend: from goes
	// 1 → from.Duration/this.Duration and this goes this.Duration/from.Duration → 1.
	// A nil from degrades to FadeIn.
	//
	// Parameters:
	//   - from: the outgoing action
	//   - duration: blend length in seconds
	//   - warp: whether to ramp time-scales as well as weights
	CrossFadeFrom(from Action, duration float32, warp bool)

	StopFading()
	StopWarping()

	// IsFading reports whether a fade is in progress.
	IsFading() bool

	// IsWarping reports whether a warp is in progress.
	IsWarping() bool
}

// actionImpl is the implementation of the Action interface.
// It shares the mutex of the mixer that created it.
type actionImpl struct {
	mu    *sync.Mutex
	mixer *mixerImpl
	clip  Clip

	scheduled bool
	enabled   bool
	paused    bool
	loop      bool
	time      float32
	weight    float32
	timeScale float32

	fade *interpolant
	warp *interpolant
}

var _ Action = &actionImpl{}

func newAction(m *mixerImpl, clip Clip) *actionImpl {
	return &actionImpl{
		mu:        m.mu,
		mixer:     m,
		clip:      clip,
		enabled:   true,
		loop:      true,
		weight:    1,
		timeScale: 1,
	}
}

func (a *actionImpl) Clip() Clip {
	return a.clip
}

func (a *actionImpl) Play() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scheduled = true
}

func (a *actionImpl) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scheduled = false
	a.reset()
}

func (a *actionImpl) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
}

func (a *actionImpl) reset() {
	a.paused = false
	a.enabled = true
	a.time = 0
	a.fade = nil
	a.warp = nil
}

func (a *actionImpl) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scheduled && a.enabled && !a.paused && a.timeScale != 0
}

func (a *actionImpl) IsScheduled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scheduled
}

func (a *actionImpl) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

func (a *actionImpl) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

func (a *actionImpl) SetPaused(paused bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = paused
}

func (a *actionImpl) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

func (a *actionImpl) SetLoop(loop bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loop = loop
}

func (a *actionImpl) Loop() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loop
}

func (a *actionImpl) SetTime(t float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.time = t
}

func (a *actionImpl) Time() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.time
}

func (a *actionImpl) SetEffectiveWeight(weight float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.weight = weight
	a.fade = nil
}

func (a *actionImpl) EffectiveWeight() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.weight
}

func (a *actionImpl) BlendWeight() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled {
		return 0
	}
	w := a.weight
	if a.fade != nil {
		v, _ := a.fade.evaluate(a.mixer.time)
		w *= v
	}
	return w
}

func (a *actionImpl) SetEffectiveTimeScale(timeScale float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeScale = timeScale
	a.warp = nil
}

func (a *actionImpl) EffectiveTimeScale() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timeScale
}

func (a *actionImpl) CurrentTimeScale() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.paused {
		return 0
	}
	if a.warp != nil {
		v, _ := a.warp.evaluate(a.mixer.time)
		return v
	}
	return a.timeScale
}

func (a *actionImpl) FadeIn(duration float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scheduleFade(duration, 0, 1)
}

func (a *actionImpl) FadeOut(duration float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scheduleFade(duration, 1, 0)
}

func (a *actionImpl) scheduleFade(duration, from, to float32) {
	if duration <= 0 {
		a.fade = nil
		if to == 0 {
			a.enabled = false
		}
		return
	}
	now := a.mixer.time
	a.fade = &interpolant{startTime: now, endTime: now + duration, from: from, to: to}
}

func (a *actionImpl) Warp(start, end, duration float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if duration <= 0 {
		a.warp = nil
		a.settleTimeScale(end)
		return
	}
	now := a.mixer.time
	a.warp = &interpolant{startTime: now, endTime: now + duration, from: start, to: end}
}

func (a *actionImpl) settleTimeScale(ts float32) {
	if ts == 0 {
		a.paused = true
		return
	}
	a.timeScale = ts
}

func (a *actionImpl) CrossFadeFrom(from Action, duration float32, warp bool) {
	if from == nil {
		a.FadeIn(duration)
		return
	}
	from.FadeOut(duration)
	a.FadeIn(duration)
	if !warp {
		return
	}
	fromDuration, toDuration := from.Clip().Duration, a.clip.Duration
	if fromDuration <= 0 || toDuration <= 0 {
		return
	}
	from.Warp(1, fromDuration/toDuration, duration)
	a.Warp(toDuration/fromDuration, 1, duration)
}

func (a *actionImpl) StopFading() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fade = nil
}

func (a *actionImpl) StopWarping() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.warp = nil
}

func (a *actionImpl) IsFading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fade != nil
}

func (a *actionImpl) IsWarping() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.warp != nil
}

// update advances the action to mixer time now. The caller holds mu.
func (a *actionImpl) update(now, dt float32) {
	if !a.scheduled {
		return
	}
	if a.enabled {
		a.advance(dt * a.updateTimeScale(now))
	}
	a.updateWeight(now)
}

func (a *actionImpl) updateTimeScale(now float32) float32 {
	if a.paused {
		return 0
	}
	if a.warp == nil {
		return a.timeScale
	}
	ts, done := a.warp.evaluate(now)
	if done {
		a.warp = nil
		a.settleTimeScale(ts)
	}
	return ts
}

func (a *actionImpl) updateWeight(now float32) {
	if a.fade == nil {
		return
	}
	v, done := a.fade.evaluate(now)
	if !done {
		return
	}
	a.fade = nil
	if v == 0 {
		a.enabled = false
	}
}

// advance moves the playback time, wrapping looped clips and clamping one-shots at either end.
func (a *actionImpl) advance(delta float32) {
	if delta == 0 {
		return
	}
	d := a.clip.Duration
	if d <= 0 {
		a.time = 0
		return
	}
	a.time += delta
	if a.loop {
		a.time = math32.Mod(a.time, d)
		if a.time < 0 {
			a.time += d
		}
		return
	}
	if a.time >= d || a.time < 0 {
		a.time = math32.Max(0, math32.Min(a.time, d))
		a.paused = true
	}
}
