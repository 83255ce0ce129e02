package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSchedulerRunsOnInterval(t *testing.T) {
	var runs atomic.Int64
	s := New()
	s.Register(Job{
		Name:     "tick",
		Interval: 10 * time.Millisecond,
		Fn: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	waitFor(t, time.Second, func() bool { return runs.Load() >= 2 })
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	var runs atomic.Int64
	s := New()
	s.Register(Job{
		Name:     "tick",
		Interval: 5 * time.Millisecond,
		Fn: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	go s.Start(ctx)
	waitFor(t, time.Second, func() bool { return runs.Load() >= 1 })
	cancel()

	time.Sleep(20 * time.Millisecond)
	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	if runs.Load() > after+1 {
		t.Fatalf("job kept running after cancel: %d -> %d", after, runs.Load())
	}
}

func TestSchedulerManualRun(t *testing.T) {
	var runs atomic.Int64
	s := New()
	s.Register(Job{
		Name:     "manual",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	if err := s.Run(context.Background(), "manual"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, time.Second, func() bool { return runs.Load() == 1 })

	if err := s.Run(context.Background(), "no-such-job"); err == nil {
		t.Fatal("expected error for unknown job")
	}
}

func TestSchedulerListReportsFailure(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:        "flaky",
		Description: "always fails",
		Interval:    time.Hour,
		Fn: func(context.Context) error {
			return errors.New("boom")
		},
	})

	if err := s.Run(context.Background(), "flaky"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, time.Second, func() bool {
		items := s.List()
		return len(items) == 1 && items[0].Status == StatusReject
	})

	item := s.List()[0]
	if item.Message != "boom" {
		t.Fatalf("message = %q, want boom", item.Message)
	}
	if item.LastRunAt == nil {
		t.Fatal("last run timestamp not recorded")
	}
}
