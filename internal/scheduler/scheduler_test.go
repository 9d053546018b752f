package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"oompa/backend/internal/scheduler"
)

type countingActivator struct {
	calls atomic.Int32
	block bool
}

func (a *countingActivator) Activate(ctx context.Context) (bool, error) {
	a.calls.Add(1)
	if a.block {
		<-ctx.Done()
		return true, ctx.Err()
	}
	return true, nil
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	a := &countingActivator{}
	s := scheduler.New(a, 10*time.Millisecond)
	s.Start()

	require.Eventually(t, func() bool { return a.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	calls := a.calls.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, calls, a.calls.Load(), "no activation after Stop")
}

func TestScheduler_StopCancelsInFlightRefresh(t *testing.T) {
	a := &countingActivator{block: true}
	s := scheduler.New(a, time.Hour)
	s.Start()

	require.Eventually(t, func() bool { return a.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not cancel the running refresh")
	}
}
