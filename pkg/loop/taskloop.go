// Copyright 2026 The Taller Authors, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrQueueFull = errors.New("task queue is full")

type Task func(ctx context.Context) error

// TaskLoop runs queued tasks one at a time on a single goroutine.
type TaskLoop struct {
	tasks chan Task
	mu    sync.Mutex

	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// OnError, when set, receives the error of every failed task.
	OnError func(err error)
}

// NewTaskLoop creates a started TaskLoop with the given queue size.
func NewTaskLoop(queueSize int) *TaskLoop {
	if queueSize <= 0 {
		queueSize = 16
	}
	l := &TaskLoop{
		tasks:  make(chan Task, queueSize),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	l.Start(context.Background())
	return l
}

// AddTask blocks until the task is queued, ctx is done or the loop stops.
func (l *TaskLoop) AddTask(ctx context.Context, task Task) error {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return context.Canceled
	}
	stopCh := l.stopCh
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-stopCh:
		return context.Canceled
	case l.tasks <- task:
		return nil
	}
}

// TryAddTask queues the task or returns ErrQueueFull without blocking.
func (l *TaskLoop) TryAddTask(task Task) error {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return context.Canceled
	}
	stopCh := l.stopCh
	l.mu.Unlock()

	select {
	case <-stopCh:
		return context.Canceled
	case l.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

func (l *TaskLoop) Start(ctx context.Context) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})
	stopCh, doneCh := l.stopCh, l.doneCh
	l.mu.Unlock()

	go func() {
		defer close(doneCh)
		for {
			select {
			case <-stopCh:
				l.drain(ctx)
				return
			case <-ctx.Done():
				l.drain(ctx)
				return
			case task := <-l.tasks:
				l.run(ctx, task)
			}
		}
	}()
}

func (l *TaskLoop) run(ctx context.Context, task Task) {
	if err := task(ctx); err != nil && l.OnError != nil {
		l.OnError(err)
	}
}

// drain gives queued tasks one more second to run after a stop.
func (l *TaskLoop) drain(ctx context.Context) {
	drainCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for {
		select {
		case <-drainCtx.Done():
			return
		case task := <-l.tasks:
			l.run(ctx, task)
		default:
			return
		}
	}
}

// Stop stops the loop and waits for the running task to finish.
func (l *TaskLoop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	doneCh := l.doneCh
	l.mu.Unlock()

	<-doneCh
}

func (l *TaskLoop) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *TaskLoop) QueuedTasksCount() int {
	return len(l.tasks)
}
