// Package workflow drives the AI features through explicit
// idle -> loading -> success | error states.
//
// A trigger never waits for or cancels the request before it. Each trigger
// takes the next sequence number, and a response is applied only when its
// sequence number is still the latest one issued for that instance, so a
// slow stale response can never overwrite a newer result.
package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrValidation is returned when a trigger is refused before any request is made
	ErrValidation = errors.New("invalid workflow input")
	// ErrSuperseded is returned to the caller of a request whose response was
	// discarded because a newer trigger was issued meanwhile
	ErrSuperseded = errors.New("superseded by a newer request")
)

// State is the lifecycle position of a workflow
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Snapshot is a consistent view of a machine
type Snapshot[R any] struct {
	State  State
	Result R
	Err    error
	// Seq is the sequence number of the request this snapshot belongs to
	Seq uint64
}

// Observer is notified after every applied transition. It may be called
// from several goroutines and must not block.
type Observer[R any] func(Snapshot[R])

// Machine is the sequence-numbered state slot shared by the feature workflows
type Machine[R any] struct {
	mu       sync.Mutex
	seq      uint64
	state    State
	result   R
	err      error
	timeout  time.Duration
	observer Observer[R]
}

// NewMachine creates an idle machine. A positive timeout bounds every request.
func NewMachine[R any](timeout time.Duration, observer Observer[R]) *Machine[R] {
	return &Machine[R]{timeout: timeout, observer: observer}
}

// Run starts a new request, discarding any previous result. fn's outcome is
// applied only if no newer Run started in the meantime; otherwise Run
// returns ErrSuperseded and the machine is left untouched.
func (m *Machine[R]) Run(ctx context.Context, fn func(ctx context.Context) (R, error)) (R, error) {
	seq := m.begin()

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	result, err := fn(ctx)
	if !m.finish(seq, result, err) {
		var zero R
		return zero, ErrSuperseded
	}
	return result, err
}

func (m *Machine[R]) begin() uint64 {
	m.mu.Lock()
	m.seq++
	var zero R
	m.state, m.result, m.err = StateLoading, zero, nil
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return snap.Seq
}

func (m *Machine[R]) finish(seq uint64, result R, err error) bool {
	m.mu.Lock()
	if seq != m.seq {
		m.mu.Unlock()
		return false
	}
	if err != nil {
		var zero R
		m.state, m.result, m.err = StateError, zero, err
	} else {
		m.state, m.result, m.err = StateSuccess, result, nil
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return true
}

// Reset returns the machine to idle. In-flight responses are discarded.
func (m *Machine[R]) Reset() {
	m.mu.Lock()
	m.seq++
	var zero R
	m.state, m.result, m.err = StateIdle, zero, nil
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
}

// Snapshot returns the current state
func (m *Machine[R]) Snapshot() Snapshot[R] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine[R]) snapshotLocked() Snapshot[R] {
	return Snapshot[R]{State: m.state, Result: m.result, Err: m.err, Seq: m.seq}
}

func (m *Machine[R]) notify(s Snapshot[R]) {
	if m.observer != nil {
		m.observer(s)
	}
}

// logRunError logs a failed run at Warn, or at Debug when only a stale
// response was dropped.
func logRunError(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, ErrSuperseded) {
		logger.Debug("discarding stale response", fields...)
		return
	}
	logger.Warn(msg, fields...)
}
