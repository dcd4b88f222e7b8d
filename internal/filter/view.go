package filter

import "sync"

// View keeps a filtered projection of a source collection. The projection
// is recomputed whenever the source or either predicate changes.
type View[T any] struct {
	mu       sync.RWMutex
	spec     Spec[T]
	source   []T
	criteria Criteria
	items    []T
}

func NewView[T any](spec Spec[T]) *View[T] {
	return &View[T]{spec: spec}
}

// SetSource replaces the source collection, e.g. after a refetch
func (v *View[T]) SetSource(items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.source = items
	v.recompute()
}

func (v *View[T]) SetStatus(status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria.Status = status
	v.recompute()
}

func (v *View[T]) SetSearch(search string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria.Search = search
	v.recompute()
}

// Items returns the current projection
func (v *View[T]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.items
}

// Source returns the unfiltered collection
func (v *View[T]) Source() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.source
}

func (v *View[T]) Criteria() Criteria {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.criteria
}

func (v *View[T]) recompute() {
	v.items = Apply(v.source, v.spec, v.criteria)
}
