package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/noteguard/noteguard/internal/logger"
)

func TestSubmit_TaskRunsToCompletion(t *testing.T) {
	runner := NewRunner(logger.Nop())

	done := make(chan struct{})
	handle := runner.Submit("test", func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("task never ran")
	}
	if err := handle.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
}

func TestWait_CallerCancellationDoesNotCancelTask(t *testing.T) {
	runner := NewRunner(logger.Nop())

	release := make(chan struct{})
	finished := make(chan struct{})
	handle := runner.Submit("slow", func(ctx context.Context) error {
		<-release
		close(finished)
		return nil
	})

	callerCtx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := handle.Wait(callerCtx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait = %v, want context.Canceled", err)
	}

	select {
	case <-finished:
		t.Fatalf("task finished before release: cancellation must not propagate")
	default:
	}

	close(release)
	if err := handle.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	select {
	case <-finished:
	default:
		t.Fatalf("task did not complete")
	}
}

func TestWait_ReturnsTaskError(t *testing.T) {
	runner := NewRunner(logger.Nop())

	taskErr := errors.New("boom")
	handle := runner.Submit("failing", func(ctx context.Context) error {
		return taskErr
	})

	if err := handle.Wait(context.Background()); !errors.Is(err, taskErr) {
		t.Fatalf("Wait = %v, want task error", err)
	}
	if err := handle.Err(); !errors.Is(err, taskErr) {
		t.Fatalf("Err = %v, want task error", err)
	}
}

func TestShutdown_WaitsForInFlightTasks(t *testing.T) {
	runner := NewRunner(logger.Nop())

	finished := false
	runner.Submit("slow", func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		finished = true
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := runner.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown error: %v", err)
	}
	if !finished {
		t.Fatalf("Shutdown returned before the task finished")
	}
}

func TestShutdown_TimesOut(t *testing.T) {
	runner := NewRunner(logger.Nop())

	release := make(chan struct{})
	defer close(release)
	runner.Submit("stuck", func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := runner.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Shutdown = %v, want deadline exceeded", err)
	}
}
