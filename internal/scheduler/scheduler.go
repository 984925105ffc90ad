// Package scheduler runs a job on a fixed interval, one run at a time.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAlreadyRunning is returned by RunOnce while another run is in flight.
var ErrAlreadyRunning = errors.New("job already running")

// Job is the unit of work the scheduler invokes.
type Job func(ctx context.Context) error

// Scheduler invokes a Job every interval. Runs never overlap, and Stop waits
// for an in-flight run to finish instead of cancelling it.
type Scheduler struct {
	interval time.Duration
	job      Job

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a scheduler that runs job every interval once started.
func New(interval time.Duration, job Job) *Scheduler {
	return &Scheduler{
		interval: interval,
		job:      job,
	}
}

// Start launches the background loop. It stops when ctx is cancelled or Stop
// is called. Calling Start on a started scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(loopCtx, s.done)

	slog.Info("scheduler started", "interval", s.interval)
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// The run outlives loop cancellation so Stop never interrupts it.
			if err := s.RunOnce(context.WithoutCancel(ctx)); err != nil {
				if errors.Is(err, ErrAlreadyRunning) {
					slog.Warn("skipping tick, previous run still in progress")
					continue
				}
				slog.Error("scheduled job failed", "error", err)
			}
		}
	}
}

// RunOnce runs the job immediately unless a run is already in progress.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	start := time.Now()
	err := s.job(ctx)
	slog.Debug("scheduled job finished", "duration", time.Since(start))
	return err
}

// Running reports whether a run is in progress.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Stop ends the loop and blocks until it and any in-flight run have exited.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	cancel()
	<-done

	slog.Info("scheduler stopped")
}
