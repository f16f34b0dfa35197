package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/chewxy/math32"
)

// extractClips returns one clip per glTF animation, in document order.
// Unnamed animations are called "animation_<index>". A clip lasts until the latest keyframe time
// of any of its samplers.
func extractClips(p *gltfParser) ([]animation.Clip, error) {
	doc := p.Document()
	if doc == nil {
		return nil, errNoDocument
	}

	clips := make([]animation.Clip, 0, len(doc.Animations))
	for i := range doc.Animations {
		anim := &doc.Animations[i]
		name := anim.Name
		if name == "" {
			name = fmt.Sprintf("animation_%d", i)
		}

		var duration float32
		for s := range anim.Samplers {
			end, err := samplerEnd(p, anim.Samplers[s].Input)
			if err != nil {
				return nil, fmt.Errorf("animation %q sampler %d: %w", name, s, err)
			}
			duration = math32.Max(duration, end)
		}
		clips = append(clips, animation.Clip{Name: name, Duration: duration})
	}
	return clips, nil
}

// samplerEnd returns the last keyframe time of a sampler input accessor.
// Exporters are required to write the accessor max; the data is only read when it is missing.
func samplerEnd(p *gltfParser, input int) (float32, error) {
	doc := p.Document()
	if input < 0 || input >= len(doc.Accessors) {
		return 0, fmt.Errorf("input accessor %d out of range", input)
	}
	if acc := &doc.Accessors[input]; len(acc.Max) > 0 {
		return acc.Max[0], nil
	}

	times, err := p.ReadScalarAccessor(input)
	if err != nil {
		return 0, fmt.Errorf("failed to read keyframe times: %w", err)
	}
	var end float32
	for _, t := range times {
		end = math32.Max(end, t)
	}
	return end, nil
}
