package smells

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDetector   = errors.New("smells: detector is nil or has an empty id")
	ErrDuplicateDetector = errors.New("smells: duplicate detector")
	ErrUnknownDetector   = errors.New("smells: unknown detector")
)

// Registry is an immutable, ordered set of detectors.
// Smells from one file are concatenated in registry order.
type Registry struct {
	byName    map[string]Detector
	detectors []Detector
}

// NewRegistry builds a registry that keeps the given order.
func NewRegistry(detectors ...Detector) (*Registry, error) {
	r := &Registry{
		byName:    make(map[string]Detector, len(detectors)),
		detectors: make([]Detector, 0, len(detectors)),
	}

	for i, d := range detectors {
		if d == nil || d.ID() == "" {
			return nil, fmt.Errorf("%w: position %d", ErrInvalidDetector, i)
		}
		name := DisplayName(d.ID())
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDetector, name)
		}
		r.byName[name] = d
		r.detectors = append(r.detectors, d)
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(detectors ...Detector) *Registry {
	r, err := NewRegistry(detectors...)
	if err != nil {
		panic(err)
	}
	return r
}

// Detectors returns the detectors in registry order.
func (r *Registry) Detectors() []Detector {
	return append([]Detector(nil), r.detectors...)
}

// Names returns the display names of the detectors in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.detectors))
	for i, d := range r.detectors {
		names[i] = DisplayName(d.ID())
	}
	return names
}

// Len returns the number of registered detectors.
func (r *Registry) Len() int {
	return len(r.detectors)
}

// Select returns a registry holding only the named detectors, in this
// registry's order. Names may be display names or internal identifiers.
func (r *Registry) Select(names ...string) (*Registry, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		name := DisplayName(n)
		if _, ok := r.byName[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDetector, n)
		}
		want[name] = true
	}

	var selected []Detector
	for _, d := range r.detectors {
		if want[DisplayName(d.ID())] {
			selected = append(selected, d)
		}
	}
	return NewRegistry(selected...)
}

var defaultRegistry = MustNewRegistry(Catalog()...)

// Default returns the process-wide registry holding the full catalog.
// It is built once at package initialisation and never mutated.
func Default() *Registry {
	return defaultRegistry
}
