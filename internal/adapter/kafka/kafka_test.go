package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/waterborne-risk-service/internal/config"
	"github.com/couchcryptid/waterborne-risk-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 7, 3, 9, 30, 0, 0, time.UTC)
	r := domain.CaseReport{
		ID:          "6f1c",
		Name:        "Rina Das",
		Village:     "Jorhat",
		Symptoms:    "watery diarrhea",
		SubmittedAt: now,
		Geo:         domain.Geo{Lat: 26.75, Lon: 94.22},
		GeoSource:   "forward",
	}

	msg, err := serializeToMessage(r)
	require.NoError(t, err)

	assert.Equal(t, []byte("6f1c"), msg.Key)
	assert.Contains(t, string(msg.Value), `"village":"Jorhat"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "village", msg.Headers[0].Key)
	assert.Equal(t, []byte("Jorhat"), msg.Headers[0].Value)
	assert.Equal(t, "submitted_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var roundtrip domain.CaseReport
	require.NoError(t, json.Unmarshal(msg.Value, &roundtrip))
	if diff := cmp.Diff(r, roundtrip); diff != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_LoadBatch_Empty(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:     []string{"localhost:9092"},
		KafkaReportTopic: "community-case-reports",
	}
	w := NewWriter(cfg, slog.Default())
	t.Cleanup(func() { _ = w.Close() })

	assert.NoError(t, w.LoadBatch(context.Background(), nil))
}
