package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJobImmediatelyOnStart(t *testing.T) {
	s := NewScheduler()

	ran := make(chan struct{})
	s.AddJob("startup", time.Hour, func(ctx context.Context) error {
		close(ran)
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}

func TestScheduler_RepeatsOnInterval(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("ticker", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	require.Eventually(t, func() bool {
		return runs.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_StopWaitsForJobsAndHaltsThem(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("halting", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, 2*time.Second, time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_FailingJobKeepsTicking(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("flaky", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	})

	s.Start()
	require.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, 2*time.Second, time.Millisecond)
	s.Stop()
}
