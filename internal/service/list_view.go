package service

import (
	"context"
	"sync"

	"github.com/straye-as/sales-intelligence/internal/filter"
	"go.uber.org/zap"
)

// FetchFunc loads the full collection behind a list view
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// ListView is a fetched collection with client-side status and search
// filtering. A failed fetch is logged and leaves the view not loading and
// empty. When refreshes overlap, only the latest one is applied.
type ListView[T any] struct {
	mu      sync.Mutex
	seq     uint64
	loading bool

	name   string
	fetch  FetchFunc[T]
	view   *filter.View[T]
	logger *zap.Logger
}

func NewListView[T any](name string, spec filter.Spec[T], fetch FetchFunc[T], logger *zap.Logger) *ListView[T] {
	return &ListView[T]{
		name:   name,
		fetch:  fetch,
		view:   filter.NewView(spec),
		logger: logger.With(zap.String("view", name)),
	}
}

// Refresh refetches the collection. Auth failures are returned as ErrNotAuthenticated.
func (l *ListView[T]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.loading = true
	l.mu.Unlock()

	items, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		return nil
	}
	l.loading = false

	if err != nil {
		l.logger.Error("failed to fetch "+l.name, zap.Error(err))
		l.view.SetSource(nil)
		return classify(err)
	}
	l.view.SetSource(items)
	l.logger.Debug("fetched "+l.name, zap.Int("count", len(items)))
	return nil
}

func (l *ListView[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Items returns the filtered projection
func (l *ListView[T]) Items() []T {
	return l.view.Items()
}

// All returns the unfiltered collection; rollups are computed over it
func (l *ListView[T]) All() []T {
	return l.view.Source()
}

func (l *ListView[T]) SetStatus(status string) {
	l.view.SetStatus(status)
}

func (l *ListView[T]) SetSearch(search string) {
	l.view.SetSearch(search)
}
