// Package report accepts community case reports and forwards them to the
// configured sink.
//
// A Submitter validates each report, holds the reporter for the
// acknowledgement delay, and queues the report. A Dispatcher drains the queue
// in batches, geocodes villages, and loads each batch to a BatchLoader.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/waterborne-risk-service/internal/domain"
	"github.com/couchcryptid/waterborne-risk-service/internal/observability"
)

// Queue accepts validated reports for asynchronous delivery.
type Queue interface {
	Enqueue(r domain.CaseReport) error
}

// Submitter turns form input into accepted, queued case reports.
type Submitter struct {
	queue    Queue
	ackDelay time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewSubmitter creates a Submitter. A nil clock uses real time.
func NewSubmitter(q Queue, ackDelay time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Submitter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Submitter{
		queue:    q,
		ackDelay: ackDelay,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Submit validates the report, waits out the acknowledgement delay, and
// queues it. Invalid reports return a *domain.ValidationError. If ctx ends
// during the delay, Submit returns ctx.Err() and nothing is queued.
func (s *Submitter) Submit(ctx context.Context, r domain.CaseReport) (domain.Acknowledgement, error) {
	r = r.Normalize()
	if err := r.Validate(); err != nil {
		s.metrics.Reports.WithLabelValues("rejected").Inc()
		return domain.Acknowledgement{}, err
	}

	r.ID = uuid.NewString()
	r.SubmittedAt = s.clock.Now().UTC()

	if err := s.wait(ctx); err != nil {
		s.metrics.Reports.WithLabelValues("cancelled").Inc()
		s.logger.Info("report submission cancelled", "report_id", r.ID, "error", err)
		return domain.Acknowledgement{}, err
	}

	if err := s.queue.Enqueue(r); err != nil {
		s.metrics.Reports.WithLabelValues("dropped").Inc()
		s.logger.Error("queue report failed", "report", r.String(), "error", err)
		return domain.Acknowledgement{}, fmt.Errorf("queue report: %w", err)
	}

	s.metrics.Reports.WithLabelValues("accepted").Inc()
	s.logger.Info("report accepted", "report", r.String())
	return domain.NewAcknowledgement(r), nil
}

func (s *Submitter) wait(ctx context.Context) error {
	if s.ackDelay <= 0 {
		return ctx.Err()
	}

	timer := s.clock.NewTimer(s.ackDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
