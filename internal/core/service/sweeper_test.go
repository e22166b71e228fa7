package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

func TestSweeper_SweepOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := f.clock.Now()

	require.NoError(t, f.store.Sessions.Insert(ctx, domain.NewSession("o1", "u1", "short", "c1", time.Minute, now)))
	require.NoError(t, f.store.Sessions.Insert(ctx, domain.NewSession("o1", "u1", "long", "c2", time.Hour, now)))

	var gotRemoved, gotRemaining int
	purged := 0
	sw := NewSweeper(f.store.Sessions, &SweeperConfig{
		Clock: f.clock.Now,
		OnSweep: func(removed, remaining int) {
			gotRemoved, gotRemaining = removed, remaining
		},
		Also: []func(){func() { purged++ }},
	})

	n, err := sw.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock.Advance(2 * time.Minute)
	n, err = sw.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, gotRemoved)
	assert.Equal(t, 1, gotRemaining)
	assert.Equal(t, 2, purged)

	_, err = f.store.Sessions.FindByAccessToken(ctx, "long")
	assert.NoError(t, err)
}

func TestSweeper_StartStop(t *testing.T) {
	f := newFixture(t)
	var sweeps atomic.Int32

	sw := NewSweeper(f.store.Sessions, &SweeperConfig{
		Interval: 5 * time.Millisecond,
		Clock:    f.clock.Now,
		OnSweep:  func(int, int) { sweeps.Add(1) },
	})

	sw.Start(context.Background())
	sw.Start(context.Background()) // second start is a no-op

	assert.Eventually(t, func() bool { return sweeps.Load() >= 2 }, time.Second, 5*time.Millisecond)
	sw.Stop()
	sw.Stop()

	after := sweeps.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, sweeps.Load())
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	sw := NewSweeper(f.store.Sessions, &SweeperConfig{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sw.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
