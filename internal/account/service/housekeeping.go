package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/heymumma/heymumma/internal/account/metrics"
	"github.com/heymumma/heymumma/internal/account/store"
)

// HousekeepingService periodically lets SQLite re-plan its queries and
// refreshes the account gauges.
type HousekeepingService struct {
	Store    store.Store
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults the interval to one hour.
func NewHousekeepingService(
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
	interval time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Metrics:  m,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs one pass immediately, then one per Interval until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress pass has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.RunOnce(context.Background())
	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs a single pass. Each step is independent.
func (s *HousekeepingService) RunOnce(ctx context.Context) {
	if err := s.Store.Optimize(ctx); err != nil {
		s.Logger.Error("optimize account store failed", "error", err)
	}

	st, err := s.Store.Accounts().Stats(ctx)
	if err != nil {
		s.Logger.Error("count accounts failed", "error", err)
		return
	}
	if s.Metrics != nil {
		s.Metrics.Accounts.Set(float64(st.Total))
		s.Metrics.AccountsComplete.Set(float64(st.Complete))
		s.Metrics.SetSchemaMode(string(s.Store.Mode()))
	}
	s.Logger.Debug("housekeeping completed", "accounts", st.Total, "complete", st.Complete)
}
