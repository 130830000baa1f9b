// Package jobs runs the engine's post-commit work: fee application, daily
// rollups, status events and webhook delivery. Tasks are at-least-once
// within the process; every effect they produce is idempotent at the
// storage layer, so a retried or duplicated task is harmless.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// drainGrace bounds the context handed to tasks that are drained after the
// pool has been cancelled, so queued work still gets a chance to finish.
const drainGrace = 30 * time.Second

type task struct {
	name      string
	fn        func(ctx context.Context) error
	onFailure func(err error)
}

// Pool is a fixed-size worker pool for background tasks. It satisfies the
// engine's TaskRunner dependency. A failing task is retried with backoff up
// to maxAttempts; a task that exhausts its attempts is recorded as
// permanently failed and its failure handler, if any, is invoked.
type Pool struct {
	tasks       chan task
	logger      *slog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	maxAttempts int
	backoff     []time.Duration
}

// NewPool creates a pool with the given number of workers, queue depth and
// retry policy. A nil backoff schedule defaults to 1s, 5s, 30s; attempts
// past the schedule reuse its last interval.
func NewPool(workers, queueSize, maxAttempts int, backoff []time.Duration, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if len(backoff) == 0 {
		backoff = []time.Duration{1 * time.Second, 5 * time.Second, 30 * time.Second}
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:       make(chan task, queueSize),
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			if p.ctx.Err() != nil {
				// Cancelled while this task was queued; run it under a
				// fresh bounded context like any other drained task.
				drainCtx, cancel := context.WithTimeout(context.Background(), drainGrace)
				p.execute(drainCtx, t)
				cancel()
				continue
			}
			p.execute(p.ctx, t)
		case <-p.ctx.Done():
			// Drain whatever is already queued before exiting. The pool
			// context is gone, so drained tasks run under a fresh bounded
			// one.
			drainCtx, cancel := context.WithTimeout(context.Background(), drainGrace)
			for {
				select {
				case t, ok := <-p.tasks:
					if !ok {
						cancel()
						return
					}
					p.execute(drainCtx, t)
				default:
					cancel()
					return
				}
			}
		}
	}
}

// execute runs a task to completion: retries with backoff on failure and
// records (and reports) the terminal failure once attempts are exhausted.
func (p *Pool) execute(ctx context.Context, t task) {
	start := time.Now()
	for attempt := 1; ; attempt++ {
		err := p.runAttempt(ctx, t)
		if err == nil {
			p.logger.Debug("background task finished",
				slog.String("task", t.name),
				slog.Int("attempt", attempt),
				slog.Duration("duration", time.Since(start)))
			return
		}
		if attempt >= p.maxAttempts {
			p.logger.Error("background task permanently failed",
				slog.String("task", t.name),
				slog.Int("attempts", attempt),
				slog.String("error", err.Error()))
			if t.onFailure != nil {
				t.onFailure(err)
			}
			return
		}

		wait := p.backoff[len(p.backoff)-1]
		if attempt-1 < len(p.backoff) {
			wait = p.backoff[attempt-1]
		}
		p.logger.Warn("background task failed, will retry",
			slog.String("task", t.name),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			p.logger.Error("background task abandoned at shutdown",
				slog.String("task", t.name),
				slog.Int("attempts", attempt),
				slog.String("error", err.Error()))
			if t.onFailure != nil {
				t.onFailure(err)
			}
			return
		case <-time.After(wait):
		}
	}
}

// runAttempt runs one attempt, converting a panic into an error so the
// retry loop treats it like any other failure.
func (p *Pool) runAttempt(ctx context.Context, t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return t.fn(ctx)
}

// Submit queues a task. If the queue is full the task runs inline rather
// than being dropped.
func (p *Pool) Submit(name string, fn func(ctx context.Context) error) {
	p.SubmitWithFailureHandler(name, fn, nil)
}

// SubmitWithFailureHandler queues a task whose permanent failure the caller
// must observe. onFailure runs at most once, after the last attempt.
func (p *Pool) SubmitWithFailureHandler(name string, fn func(ctx context.Context) error, onFailure func(err error)) {
	t := task{name: name, fn: fn, onFailure: onFailure}
	select {
	case p.tasks <- t:
	default:
		p.logger.Warn("task queue full, running inline", slog.String("task", name))
		p.execute(p.ctx, t)
	}
}

// Shutdown stops accepting work and waits for in-flight tasks, up to the
// given grace period.
func (p *Pool) Shutdown(grace time.Duration) {
	p.cancel()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(grace):
		p.logger.Warn("background tasks did not finish before shutdown deadline")
	}
}
