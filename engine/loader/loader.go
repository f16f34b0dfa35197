package loader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-avatar/engine/animation"
	"github.com/sirupsen/logrus"
)

// Loader reads animation clips from glTF/GLB model files and caches them by path or name.
type Loader interface {
	// LoadClips reads every animation in a .gltf or .glb file.
	// Results are cached by path; later calls return the cached clips.
	//
	// Parameters:
	//   - path: the model file
	//
	// Returns:
	//   - []animation.Clip: the clips in document order
	//   - error: an I/O, format or unsupported-extension error
	LoadClips(path string) ([]animation.Clip, error)

	// LoadClipsReader reads every animation from a stream and caches the result under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - r: the glTF JSON or GLB data
	//   - isGLB: true for binary GLB data
	//
	// Returns:
	//   - []animation.Clip: the clips in document order
	//   - error: an I/O or format error
	LoadClipsReader(name string, r io.Reader, isGLB bool) ([]animation.Clip, error)

	// Get returns cached clips.
	//
	// Parameters:
	//   - name: the path or name the clips were cached under
	//
	// Returns:
	//   - []animation.Clip: the clips
	//   - bool: false if nothing is cached under name
	Get(name string) ([]animation.Clip, bool)
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	cache map[string][]animation.Clip
	log   *logrus.Logger
}

var _ Loader = &loader{}

// NewLoader creates a Loader with an empty cache.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the newly created loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		cache: make(map[string][]animation.Clip),
		log:   logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *loader) LoadClips(path string) ([]animation.Clip, error) {
	if clips, ok := l.Get(path); ok {
		return clips, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("unsupported model format: %s", ext)
	}

	clips, err := LoadClips(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	l.store(path, clips)
	return clips, nil
}

func (l *loader) LoadClipsReader(name string, r io.Reader, isGLB bool) ([]animation.Clip, error) {
	if clips, ok := l.Get(name); ok {
		return clips, nil
	}
	clips, err := LoadClipsReader(r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	l.store(name, clips)
	return clips, nil
}

func (l *loader) Get(name string) ([]animation.Clip, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	clips, ok := l.cache[name]
	return clips, ok
}

func (l *loader) store(name string, clips []animation.Clip) {
	l.mu.Lock()
	l.cache[name] = clips
	l.mu.Unlock()

	names := make([]string, len(clips))
	for i, c := range clips {
		names[i] = c.Name
	}
	l.log.WithFields(logrus.Fields{"source": name, "clips": names}).Info("loaded animation clips")
}

// LoadClips parses a .gltf or .glb file and returns its animation clips without caching.
//
// Parameters:
//   - path: the model file
//
// Returns:
//   - []animation.Clip: the clips in document order
//   - error: an I/O or format error
func LoadClips(path string) ([]animation.Clip, error) {
	p := newGLTFParser()
	if err := p.Parse(path); err != nil {
		return nil, err
	}
	return extractClips(p)
}

// LoadClipsReader parses glTF JSON or GLB data from r and returns its animation clips.
//
// Parameters:
//   - r: the document data
//   - isGLB: true for binary GLB data
//
// Returns:
//   - []animation.Clip: the clips in document order
//   - error: an I/O or format error
func LoadClipsReader(r io.Reader, isGLB bool) ([]animation.Clip, error) {
	p := newGLTFParser()
	if err := p.ParseReader(r, isGLB); err != nil {
		return nil, err
	}
	return extractClips(p)
}

// ClipSource serves the clips of one model file through a Loader.
type ClipSource struct {
	loader Loader
	path   string
}

// NewClipSource creates a ClipSource for the model at path with its own Loader.
//
// Parameters:
//   - path: the model file
//   - options: functional options for the underlying loader
//
// Returns:
//   - *ClipSource: the source
func NewClipSource(path string, options ...LoaderBuilderOption) *ClipSource {
	return &ClipSource{loader: NewLoader(options...), path: path}
}

// NewClipSourceFrom creates a ClipSource that shares an existing Loader and its cache.
func NewClipSourceFrom(l Loader, path string) *ClipSource {
	return &ClipSource{loader: l, path: path}
}

// Clips loads the model's clips. The read itself is not interruptible; ctx is checked before it starts.
//
// Parameters:
//   - ctx: cancels the load before the file is read
//
// Returns:
//   - []animation.Clip: the clips
//   - error: ctx.Err() or a load error
func (s *ClipSource) Clips(ctx context.Context) ([]animation.Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.loader.LoadClips(s.path)
}
