// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Noteguard Authors

// Package tasks runs critical operations detached from the invoking
// caller's lifecycle.
//
// Saves and panic wipes must run to completion even if the caller is torn
// down or cancelled, so they are spawned on a long-lived background context
// rather than inheriting the caller's. A caller that needs to block on
// completion (e.g. navigation gated on a successful save) awaits the
// returned Handle; cancelling that wait never cancels the task itself.
package tasks

import (
	"context"
	"sync"

	"github.com/noteguard/noteguard/internal/logger"
)

// Handle lets a caller optionally await a detached task.
type Handle struct {
	done chan struct{}
	err  error
}

// Done returns a channel closed when the task finishes.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the task finishes or ctx is cancelled. Cancellation
// abandons only the wait: the task keeps running. On completion Wait
// returns the task's error.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the task error after Done is closed. Before completion it
// returns nil.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Runner executes detached critical tasks on an independent long-lived
// context.
type Runner struct {
	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *logger.Logger
}

// NewRunner constructs a Runner rooted in its own background context.
func NewRunner(log *logger.Logger) *Runner {
	base, cancel := context.WithCancel(context.Background())
	return &Runner{base: base, cancel: cancel, logger: log}
}

// Submit starts fn on the runner's background context and returns a Handle
// for optional awaiting. fn receives the runner's context, not the
// caller's, so caller cancellation cannot propagate into it.
func (r *Runner) Submit(name string, fn func(ctx context.Context) error) *Handle {
	h := &Handle{done: make(chan struct{})}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(h.done)

		h.err = fn(r.base)
		if h.err != nil {
			r.logger.Error().Err(h.err).Str("task", name).Msg("detached task failed")
			return
		}
		r.logger.Debug().Str("task", name).Msg("detached task finished")
	}()

	return h
}

// Shutdown waits for all in-flight tasks to finish or ctx to expire. Only
// process termination should call it; tasks are not cancelled, merely
// awaited.
func (r *Runner) Shutdown(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		r.cancel()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
