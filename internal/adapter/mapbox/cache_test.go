package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/waterborne-risk-service/internal/domain"
)

type countingGeocoder struct {
	forwardCalls int
	result       domain.GeocodingResult
	err          error
}

func (m *countingGeocoder) ForwardGeocode(_ context.Context, _, _ string) (domain.GeocodingResult, error) {
	m.forwardCalls++
	return m.result, m.err
}

func newCached(t *testing.T, inner domain.Geocoder, size int) *CachedGeocoder {
	t.Helper()
	cached, err := NewCachedGeocoder(inner, size, testMetrics())
	require.NoError(t, err)
	return cached
}

func TestCachedGeocoder_ForwardCacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{Lat: 26.75, Lon: 94.2, PlaceName: "Jorhat", FormattedAddress: "Jorhat, Assam"},
	}
	m := testMetrics()
	cached, err := NewCachedGeocoder(inner, 10, m)
	require.NoError(t, err)

	r1, err := cached.ForwardGeocode(context.Background(), "Jorhat", testRegion)
	require.NoError(t, err)
	assert.Equal(t, "Jorhat", r1.PlaceName)

	r2, err := cached.ForwardGeocode(context.Background(), "JORHAT", testRegion)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.forwardCalls, "should only call inner once")
	assert.InDelta(t, 1, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("forward", "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("forward", "miss")), 0)
}

func TestCachedGeocoder_DifferentKeysMiss(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "Place", FormattedAddress: "Place, Assam"},
	}
	cached := newCached(t, inner, 10)

	_, _ = cached.ForwardGeocode(context.Background(), "Jorhat", testRegion)
	_, _ = cached.ForwardGeocode(context.Background(), "Tezpur", testRegion)

	assert.Equal(t, 2, inner.forwardCalls)
	assert.Equal(t, 2, cached.Len())
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := newCached(t, inner, 10)

	_, _ = cached.ForwardGeocode(context.Background(), "Nowhere", testRegion)
	_, _ = cached.ForwardGeocode(context.Background(), "Nowhere", testRegion)

	assert.Equal(t, 2, inner.forwardCalls)
	assert.Zero(t, cached.Len())
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("timeout")}
	cached := newCached(t, inner, 10)

	_, err := cached.ForwardGeocode(context.Background(), "Jorhat", testRegion)
	require.Error(t, err)
	assert.Zero(t, cached.Len())
}

func TestCachedGeocoder_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{FormattedAddress: "somewhere"}}
	cached := newCached(t, inner, 2)

	ctx := context.Background()
	_, _ = cached.ForwardGeocode(ctx, "a", testRegion)
	_, _ = cached.ForwardGeocode(ctx, "b", testRegion)
	_, _ = cached.ForwardGeocode(ctx, "a", testRegion) // promote a
	_, _ = cached.ForwardGeocode(ctx, "c", testRegion) // evicts b
	assert.Equal(t, 3, inner.forwardCalls)

	_, _ = cached.ForwardGeocode(ctx, "a", testRegion)
	assert.Equal(t, 3, inner.forwardCalls, "a should still be cached")

	_, _ = cached.ForwardGeocode(ctx, "b", testRegion)
	assert.Equal(t, 4, inner.forwardCalls, "b should have been evicted")
}

func TestNewCachedGeocoder_InvalidSize(t *testing.T) {
	_, err := NewCachedGeocoder(&countingGeocoder{}, 0, testMetrics())
	assert.Error(t, err)
}
