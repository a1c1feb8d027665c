package report

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/waterborne-risk-service/internal/domain"
	"github.com/couchcryptid/waterborne-risk-service/internal/observability"
)

var (
	// ErrQueueFull is returned by Enqueue when the dispatch queue has no room.
	ErrQueueFull = errors.New("report queue is full")
	// ErrDispatcherStopped is returned by Enqueue after Run has made its
	// final flush.
	ErrDispatcherStopped = errors.New("report dispatcher has stopped")
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second

	shutdownFlushTimeout = 5 * time.Second
)

// BatchLoader writes accepted reports to their destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, reports []domain.CaseReport) error
}

// DispatcherConfig sizes the queue and batching of a Dispatcher.
type DispatcherConfig struct {
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	Region        string
}

// Dispatcher drains accepted reports in batches, enriches them with village
// coordinates, and hands them to a BatchLoader.
type Dispatcher struct {
	queue    chan domain.CaseReport
	loader   BatchLoader
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
	cfg      DispatcherConfig

	mu      sync.Mutex
	stopped bool
}

// NewDispatcher creates a Dispatcher. Pass a nil geocoder to skip enrichment.
func NewDispatcher(l BatchLoader, g domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics, cfg DispatcherConfig) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	return &Dispatcher{
		queue:    make(chan domain.CaseReport, cfg.QueueSize),
		loader:   l,
		geocoder: g,
		logger:   logger,
		metrics:  metrics,
		cfg:      cfg,
	}
}

// Enqueue queues a report for dispatch without blocking. Reports may be
// queued before Run starts; once Run has returned they are refused.
func (d *Dispatcher) Enqueue(r domain.CaseReport) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrDispatcherStopped
	}
	select {
	case d.queue <- r:
		d.metrics.QueueDepth.Set(float64(len(d.queue)))
		return nil
	default:
		return ErrQueueFull
	}
}

// CheckReadiness returns nil while the dispatch loop is running.
func (d *Dispatcher) CheckReadiness(_ context.Context) error {
	if !d.ready.Load() {
		return errors.New("report dispatcher is not running")
	}
	return nil
}

// Run dispatches queued reports until the context is cancelled. Reports still
// queued at shutdown get one final load attempt.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("dispatcher started",
		"batch_size", d.cfg.BatchSize,
		"flush_interval", d.cfg.FlushInterval,
		"queue_size", d.cfg.QueueSize,
	)
	d.metrics.DispatcherRunning.Set(1)
	d.ready.Store(true)
	defer func() {
		d.ready.Store(false)
		d.metrics.DispatcherRunning.Set(0)
	}()

	backoff := initialBackoff
	for {
		batch, ok := d.collectBatch(ctx)
		if !ok {
			d.flushOnShutdown(ctx, batch)
			return nil
		}
		if !d.deliver(ctx, d.enrich(ctx, batch), &backoff) {
			d.flushOnShutdown(ctx, batch)
			return nil
		}
	}
}

// collectBatch blocks for the first report, then gathers more until the batch
// is full or the flush interval elapses. Returns false once ctx is done.
func (d *Dispatcher) collectBatch(ctx context.Context) ([]domain.CaseReport, bool) {
	var batch []domain.CaseReport
	select {
	case <-ctx.Done():
		return nil, false
	case r := <-d.queue:
		batch = append(batch, r)
	}

	timer := time.NewTimer(d.cfg.FlushInterval)
	defer timer.Stop()

	for len(batch) < d.cfg.BatchSize {
		select {
		case r := <-d.queue:
			batch = append(batch, r)
		case <-timer.C:
			d.metrics.QueueDepth.Set(float64(len(d.queue)))
			return batch, true
		case <-ctx.Done():
			return batch, false
		}
	}
	d.metrics.QueueDepth.Set(float64(len(d.queue)))
	return batch, true
}

func (d *Dispatcher) enrich(ctx context.Context, batch []domain.CaseReport) []domain.CaseReport {
	for i := range batch {
		batch[i] = domain.EnrichWithGeocoding(ctx, batch[i], d.geocoder, d.cfg.Region, d.logger)
	}
	return batch
}

// deliver loads the batch, retrying with exponential backoff until it
// succeeds. Returns false if ctx ended before the batch was loaded.
func (d *Dispatcher) deliver(ctx context.Context, batch []domain.CaseReport, backoff *time.Duration) bool {
	start := time.Now()
	d.metrics.BatchSize.Observe(float64(len(batch)))

	for {
		err := d.loader.LoadBatch(ctx, batch)
		if err == nil {
			d.metrics.ReportsForwarded.Add(float64(len(batch)))
			d.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
			*backoff = initialBackoff
			d.logger.Debug("report batch dispatched", "batch_size", len(batch))
			return true
		}

		d.metrics.ForwardErrors.Inc()
		if ctx.Err() != nil {
			return false
		}
		d.logger.Error("load batch failed", "error", err, "batch_size", len(batch), "retry_in", *backoff)
		if !sleepWithContext(ctx, *backoff) {
			return false
		}
		*backoff = nextBackoff(*backoff, maxBackoff)
	}
}

// flushOnShutdown makes a single bounded attempt to load pending reports and
// whatever is left in the queue. Enrichment is idempotent, so pending reports
// that were already geocoded are looked up again.
func (d *Dispatcher) flushOnShutdown(ctx context.Context, pending []domain.CaseReport) {
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownFlushTimeout)
	defer cancel()

	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	var drained []domain.CaseReport
drain:
	for {
		select {
		case r := <-d.queue:
			drained = append(drained, r)
		default:
			break drain
		}
	}
	d.metrics.QueueDepth.Set(0)

	batch := make([]domain.CaseReport, 0, len(pending)+len(drained))
	batch = append(batch, pending...)
	batch = d.enrich(flushCtx, append(batch, drained...))
	if len(batch) == 0 {
		d.logger.Info("dispatcher stopping", "reason", ctx.Err())
		return
	}

	if err := d.loader.LoadBatch(flushCtx, batch); err != nil {
		d.metrics.ForwardErrors.Inc()
		d.logger.Error("final flush failed, reports dropped", "error", err, "batch_size", len(batch))
		return
	}
	d.metrics.ReportsForwarded.Add(float64(len(batch)))
	d.logger.Info("dispatcher stopping", "reason", ctx.Err(), "flushed", len(batch))
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
