package report

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/waterborne-risk-service/internal/domain"
)

// LogLoader is the BatchLoader used when no message broker is configured.
// It records each report in the service log.
type LogLoader struct {
	logger *slog.Logger
}

// NewLogLoader creates a LogLoader writing to logger.
func NewLogLoader(logger *slog.Logger) *LogLoader {
	return &LogLoader{logger: logger}
}

// LoadBatch logs each report as forwarded.
func (l *LogLoader) LoadBatch(ctx context.Context, reports []domain.CaseReport) error {
	for _, r := range reports {
		l.logger.InfoContext(ctx, "report forwarded",
			"report_id", r.ID,
			"village", r.Village,
			"submitted_at", r.SubmittedAt,
			"geo_source", r.GeoSource,
			"lat", r.Geo.Lat,
			"lon", r.Geo.Lon,
		)
	}
	return nil
}

// Close is a no-op so LogLoader can stand in for the Kafka writer.
func (l *LogLoader) Close() error {
	return nil
}
