package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/analytics"
	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
	"github.com/shopsy-platform/service-analytics/internal/events"
)

// OrderFetcher is the upstream dependency of the report service.
type OrderFetcher interface {
	GetSalesOrders(ctx context.Context) ([]orders.Record, error)
}

// ReportPublisher announces refreshed reports. Nil-able: events are
// best-effort.
type ReportPublisher interface {
	PublishReportRefreshed(event *events.ReportRefreshedEvent) error
}

// ReportService owns the order snapshot and the derived sales reports.
//
// The snapshot is replaced wholesale on every successful fetch; a failed
// fetch leaves the previous snapshot untouched. Fetches are numbered, and
// a completing fetch only installs its result while its sequence number is
// the highest resolved so far, so an overlapping stale fetch can never
// overwrite fresher data.
type ReportService struct {
	fetcher   OrderFetcher
	cache     *ReportCache
	publisher ReportPublisher
	logger    *zap.Logger

	nextSeq atomic.Uint64

	mu          sync.RWMutex
	snapshot    []orders.Order
	snapshotSeq uint64
	fetchedAt   time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(fetcher OrderFetcher, cache *ReportCache, publisher ReportPublisher, logger *zap.Logger) *ReportService {
	return &ReportService{
		fetcher:   fetcher,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Refresh fetches the raw order list and replaces the snapshot. On fetch
// failure the previous snapshot is kept and the error returned, so callers
// can render an explicit error state instead of silently losing data.
func (s *ReportService) Refresh(ctx context.Context) error {
	seq := s.nextSeq.Add(1)

	recs, err := s.fetcher.GetSalesOrders(ctx)
	if err != nil {
		s.logger.Error("order fetch failed, keeping previous snapshot",
			zap.Uint64("seq", seq), zap.Error(err))
		return err
	}

	normalized := orders.NormalizeAll(recs)
	if dropped := len(recs) - len(normalized); dropped > 0 {
		s.logger.Warn("dropped records without a usable timestamp", zap.Int("dropped", dropped))
	}

	if !s.install(seq, normalized) {
		s.logger.Debug("discarding stale fetch result", zap.Uint64("seq", seq))
		return nil
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	s.announce(normalized)
	return nil
}

// install swaps in the snapshot if seq is still the newest resolved fetch.
func (s *ReportService) install(seq uint64, snapshot []orders.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.snapshotSeq {
		return false
	}
	s.snapshot = snapshot
	s.snapshotSeq = seq
	s.fetchedAt = time.Now().UTC()
	return true
}

func (s *ReportService) announce(snapshot []orders.Order) {
	if s.publisher == nil {
		return
	}
	report := analytics.BuildReport(snapshot)
	err := s.publisher.PublishReportRefreshed(&events.ReportRefreshedEvent{
		ReportID:    uuid.New(),
		OrderCount:  len(report.Orders),
		WeekCount:   len(report.Weeks),
		GeneratedAt: report.GeneratedAt,
	})
	if err != nil {
		s.logger.Warn("failed to publish report refreshed event", zap.Error(err))
	}
}

// Snapshot returns the current normalized order list and when it was
// fetched. The slice must not be mutated by callers.
func (s *ReportService) Snapshot() ([]orders.Order, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.fetchedAt
}

// GetReport returns the report for [start, end], serving from cache unless
// forceRefresh is set. Zero times leave the range open. The boolean
// reports whether the result came from cache.
func (s *ReportService) GetReport(ctx context.Context, start, end time.Time, forceRefresh bool) (*analytics.Report, bool, error) {
	startKey, endKey := rangeKeys(start, end)

	if !forceRefresh && s.cache != nil {
		if cached, _ := s.cache.Get(ctx, startKey, endKey); cached != nil {
			return cached, true, nil
		}
	}

	s.mu.RLock()
	empty := s.snapshotSeq == 0
	s.mu.RUnlock()

	if empty || forceRefresh {
		if err := s.Refresh(ctx); err != nil {
			s.mu.RLock()
			stale := s.snapshotSeq != 0
			s.mu.RUnlock()
			if !stale {
				return nil, false, err
			}
			// Serve the previous snapshot; the handler surfaces staleness.
			s.logger.Warn("serving stale snapshot after failed refresh", zap.Error(err))
		}
	}

	snapshot, _ := s.Snapshot()
	report := analytics.BuildReportInRange(snapshot, start, end)

	if s.cache != nil {
		_ = s.cache.Set(ctx, startKey, endKey, report)
	}
	return report, false, nil
}

// HandleOrderChanged implements events.OrderEventHandler: any order change
// upstream invalidates every cached aggregate and refreshes the snapshot.
func (s *ReportService) HandleOrderChanged(event *events.OrderChangedEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	return s.Refresh(ctx)
}

const rangeOpen = "open"

func rangeKeys(start, end time.Time) (string, string) {
	startKey, endKey := rangeOpen, rangeOpen
	if !start.IsZero() {
		startKey = start.UTC().Format("2006-01-02")
	}
	if !end.IsZero() {
		endKey = end.UTC().Format("2006-01-02")
	}
	return startKey, endKey
}
