/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package headset

import (
	"context"
	"sync"

	"github.com/carverauto/headsetbridge/pkg/logger"
)

// Job is a unit of work run on the Worker goroutine.
type Job func(ctx context.Context)

// Worker runs jobs one at a time, in submission order, on a single goroutine.
type Worker struct {
	queue  chan Job
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
	start  sync.Once
	logger logger.Logger
}

// NewWorker returns a worker with room for size pending jobs.
func NewWorker(size int, log logger.Logger) *Worker {
	if size <= 0 {
		size = defaultQueueSize
	}

	return &Worker{
		queue:  make(chan Job, size),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: log,
	}
}

// Start launches the worker goroutine. Later calls do nothing. Jobs receive
// ctx, which is also watched for shutdown.
func (w *Worker) Start(ctx context.Context) {
	w.start.Do(func() {
		go w.run(ctx)
	})
}

// Submit enqueues job. It returns false without blocking when the queue is full
// or the worker has stopped.
func (w *Worker) Submit(job Job) bool {
	select {
	case <-w.stop:
		return false
	default:
	}

	select {
	case w.queue <- job:
		return true
	default:
		return false
	}
}

// Stop signals the worker to exit and waits for the running job, if any.
// Jobs still queued are dropped.
func (w *Worker) Stop() {
	w.once.Do(func() {
		close(w.stop)
	})

	started := true
	w.start.Do(func() {
		started = false
		close(w.done)
	})

	if started {
		<-w.done
	}
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	w.logger.Debug().Msg("command worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Msg("command worker stopping due to context cancellation")
			return
		case <-w.stop:
			w.logger.Debug().Int("dropped", len(w.queue)).Msg("command worker stopped")
			return
		case job := <-w.queue:
			select {
			case <-w.stop:
				return
			default:
			}

			w.runJob(ctx, job)
		}
	}
}

func (w *Worker) runJob(ctx context.Context, job Job) {
	defer func() {
		if p := recover(); p != nil {
			w.logger.Error().Interface("panic", p).Msg("command job panicked")
		}
	}()

	job(ctx)
}
