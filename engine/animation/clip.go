package animation

// Clip is a named, fixed-length animation. The keyframe data itself lives with whatever renders
// the avatar; the controller only needs the name to bind it and the duration to drive playback.
type Clip struct {
	Name     string
	Duration float32
}

// interpolant is a linear ramp between two values over a window of mixer time.
type interpolant struct {
	startTime, endTime float32
	from, to           float32
}

// evaluate returns the ramp value at mixer time t and whether the window has elapsed.
func (i *interpolant) evaluate(t float32) (float32, bool) {
	if t >= i.endTime {
		return i.to, true
	}
	if t <= i.startTime {
		return i.from, false
	}
	p := (t - i.startTime) / (i.endTime - i.startTime)
	return i.from + (i.to-i.from)*p, false
}
