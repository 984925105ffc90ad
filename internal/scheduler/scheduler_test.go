package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/kamishibai/internal/scheduler"
)

func TestScheduler_RunsOnInterval(t *testing.T) {
	var runs atomic.Int32
	s := scheduler.New(5*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop")
}

func TestScheduler_StopWaitsForInFlightRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	var sawCancel atomic.Bool

	s := scheduler.New(5*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-started:
		default:
			close(started)
		}
		<-release
		if ctx.Err() != nil {
			sawCancel.Store(true)
		}
		finished.Store(true)
		return nil
	})

	s.Start(context.Background())
	<-started

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a run was in flight")
	case <-time.After(30 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the run finished")
	}

	assert.True(t, finished.Load())
	assert.False(t, sawCancel.Load(), "in-flight run must not be cancelled")
}

func TestScheduler_RunOnceRejectsOverlap(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	s := scheduler.New(time.Hour, func(context.Context) error {
		close(entered)
		<-release
		return nil
	})

	errCh := make(chan error, 1)
	go func() { errCh <- s.RunOnce(context.Background()) }()
	<-entered

	assert.True(t, s.Running())
	assert.ErrorIs(t, s.RunOnce(context.Background()), scheduler.ErrAlreadyRunning)

	close(release)
	require.NoError(t, <-errCh)
	assert.False(t, s.Running())
}

func TestScheduler_RunOnceReturnsJobError(t *testing.T) {
	boom := errors.New("boom")
	s := scheduler.New(time.Hour, func(context.Context) error { return boom })

	assert.ErrorIs(t, s.RunOnce(context.Background()), boom)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := scheduler.New(time.Hour, func(context.Context) error { return nil })
	s.Stop()
}
