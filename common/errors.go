package common

import (
	"errors"
	"fmt"
)

// ErrLookup is matched by every *LookupError through errors.Is.
var ErrLookup = errors.New("lookup failed")

// LookupError reports a request for a name that was never registered, such as an
// unknown state or animation. It is a programming-time inconsistency and is never retried.
type LookupError struct {
	// Kind describes what was looked up ("state", "animation", "clip").
	Kind string

	// Name is the requested name.
	Name string
}

// NewLookupError creates a LookupError for the given kind and name.
//
// Parameters:
//   - kind: what was looked up
//   - name: the missing name
//
// Returns:
//   - *LookupError: the error value
func NewLookupError(kind, name string) *LookupError {
	return &LookupError{Kind: kind, Name: name}
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q is not registered", e.Kind, e.Name)
}

// Is reports whether target is ErrLookup.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
