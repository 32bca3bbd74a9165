package web

import (
	"context"
	"sync"

	"taller/pkg/loop"
)

// Loader acquires a deferred resource.
type Loader[T any] func(ctx context.Context) (T, error)

// Status of a Lazy resource as seen by a caller.
type Status int

const (
	StatusPending Status = iota
	StatusLoaded
	StatusFailed
)

type lazyState int

const (
	stateIdle lazyState = iota
	stateLoading
	stateLoaded
	stateFailed
)

// Lazy defers a load until the first Get. The load runs once on a task
// loop, outside the request that triggered it. It has no timeout and is
// never cancelled; a failure is kept and returned to every later caller.
type Lazy[T any] struct {
	mu    sync.Mutex
	state lazyState
	value T
	err   error

	load Loader[T]
	loop *loop.TaskLoop
	done chan struct{}
}

func NewLazy[T any](l *loop.TaskLoop, load Loader[T]) *Lazy[T] {
	return &Lazy[T]{
		load: load,
		loop: l,
		done: make(chan struct{}),
	}
}

// Get returns the value once loaded. The first call starts the load and
// reports StatusPending.
func (l *Lazy[T]) Get() (T, Status, error) {
	var zero T

	l.mu.Lock()
	if l.state == stateIdle {
		l.state = stateLoading
		l.mu.Unlock()
		l.start()
		return zero, StatusPending, nil
	}
	defer l.mu.Unlock()

	switch l.state {
	case stateLoaded:
		return l.value, StatusLoaded, nil
	case stateFailed:
		return zero, StatusFailed, l.err
	default:
		return zero, StatusPending, nil
	}
}

// Started reports whether a load has ever been triggered.
func (l *Lazy[T]) Started() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state != stateIdle
}

// Done is closed when the load has finished, successfully or not.
func (l *Lazy[T]) Done() <-chan struct{} {
	return l.done
}

func (l *Lazy[T]) start() {
	task := func(ctx context.Context) error {
		v, err := l.load(ctx)

		l.mu.Lock()
		if err != nil {
			l.state = stateFailed
			l.err = err
		} else {
			l.state = stateLoaded
			l.value = v
		}
		l.mu.Unlock()

		close(l.done)
		return err
	}

	if l.loop == nil {
		go task(context.Background())
		return
	}
	if err := l.loop.TryAddTask(task); err != nil {
		// loop stopped or busy, the request must not wait for it
		go task(context.Background())
	}
}
