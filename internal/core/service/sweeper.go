package service

import (
	"context"
	"sync"
	"time"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/telemetry/logger"
)

// DefaultSweepInterval is the default period between expiry sweeps.
const DefaultSweepInterval = time.Hour

// SweeperConfig holds configuration for Sweeper.
type SweeperConfig struct {
	// Interval between sweeps (default: 1h).
	Interval time.Duration

	Clock Clock

	// OnSweep is called after every sweep with the number of sessions
	// removed and the number left.
	OnSweep func(removed, remaining int)

	// Also runs after every sweep, e.g. to purge other short-lived state.
	Also []func()
}

// Sweeper periodically removes expired sessions. Reads already treat
// expired sessions as absent; sweeping only bounds memory.
type Sweeper struct {
	sessions SessionRepository
	interval time.Duration
	now      Clock
	onSweep  func(removed, remaining int)
	also     []func()

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewSweeper creates a sweeper over sessions.
func NewSweeper(sessions SessionRepository, config *SweeperConfig) *Sweeper {
	if config == nil {
		config = &SweeperConfig{}
	}
	interval := config.Interval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Sweeper{
		sessions: sessions,
		interval: interval,
		now:      clock,
		onSweep:  config.OnSweep,
		also:     config.Also,
	}
}

// Run sweeps every interval until ctx is cancelled or Stop is called.
// It returns nil in both cases. Only one Run may be active at a time.
func (s *Sweeper) Run(ctx context.Context) error {
	stopCh, doneCh, ok := s.begin()
	if !ok {
		return nil
	}
	s.loop(ctx, stopCh, doneCh)
	return nil
}

// Start runs the sweeper in a new goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	stopCh, doneCh, ok := s.begin()
	if !ok {
		return
	}
	go s.loop(ctx, stopCh, doneCh)
}

func (s *Sweeper) begin() (chan struct{}, chan struct{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil, nil, false
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	return s.stopCh, s.doneCh, true
}

func (s *Sweeper) loop(ctx context.Context, stopCh <-chan struct{}, doneCh chan struct{}) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(doneCh)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.L(ctx).Debug("session sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				logger.L(ctx).Warn("session sweep failed", "error", err)
			}
		}
	}
}

// Stop halts a running sweeper and waits for it to exit. It is safe to
// call when the sweeper is not running.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	stopCh, doneCh := s.stopCh, s.doneCh
	s.stopCh = nil
	s.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	<-doneCh
}

// SweepOnce removes every session expired at the current time.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	removed, err := s.sessions.SweepExpired(ctx, s.now())
	if err != nil {
		return 0, domain.ErrStorage.WithCause(err)
	}
	remaining, err := s.sessions.Count(ctx)
	if err != nil {
		return removed, domain.ErrStorage.WithCause(err)
	}

	if removed > 0 {
		logger.L(ctx).Info("expired sessions swept", "removed", removed, "remaining", remaining)
	} else {
		logger.L(ctx).Debug("session sweep found nothing", "remaining", remaining)
	}
	if s.onSweep != nil {
		s.onSweep(removed, remaining)
	}
	for _, fn := range s.also {
		fn()
	}
	return removed, nil
}
