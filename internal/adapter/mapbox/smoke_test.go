//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/waterborne-risk-service/internal/observability"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return NewClient(token, 10*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
}

func TestSmoke_ForwardGeocode(t *testing.T) {
	c := smokeClient(t)

	result, err := c.ForwardGeocode(context.Background(), "Dibrugarh", testRegion)
	require.NoError(t, err)

	assert.InDelta(t, 27.47, result.Lat, 0.3, "lat should be near Dibrugarh")
	assert.InDelta(t, 94.91, result.Lon, 0.3, "lon should be near Dibrugarh")
	assert.Contains(t, result.FormattedAddress, "Dibrugarh")
	assert.Greater(t, result.Confidence, 0.5)
}

func TestSmoke_ForwardGeocode_Nonsense(t *testing.T) {
	c := smokeClient(t)

	// Fuzzy matching may still return something; only the absence of an error matters.
	_, err := c.ForwardGeocode(context.Background(), "XYZNONEXISTENT99", testRegion)
	require.NoError(t, err)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached, err := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())
	require.NoError(t, err)

	r1, err := cached.ForwardGeocode(context.Background(), "Tezpur", testRegion)
	require.NoError(t, err)
	assert.Contains(t, r1.FormattedAddress, "Tezpur")

	r2, err := cached.ForwardGeocode(context.Background(), "Tezpur", testRegion)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
