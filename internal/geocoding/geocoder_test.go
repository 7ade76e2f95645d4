package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *Geocoder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	g := NewGeocoder(server.URL, "test-agent", nil)
	g.interval = 0
	return g
}

func TestGeocodeAddress(t *testing.T) {
	var calls int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "1 Main St, Springfield", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"52.3676","lon":"4.9041"}]`))
	})

	lat, lon, err := g.GeocodeAddress(context.Background(), "1 Main St, Springfield")
	require.NoError(t, err)
	assert.Equal(t, 52.3676, lat)
	assert.Equal(t, 4.9041, lon)

	// same address, different spacing and case, is served from cache
	lat, _, err = g.GeocodeAddress(context.Background(), "1  main st,  Springfield")
	require.NoError(t, err)
	assert.Equal(t, 52.3676, lat)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGeocodeAddressNoResults(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, _, err := g.GeocodeAddress(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestGeocodeAddressServerError(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, _, err := g.GeocodeAddress(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGeocodeAddressEmpty(t *testing.T) {
	g := NewGeocoder("http://127.0.0.1:0", "test-agent", nil)
	_, _, err := g.GeocodeAddress(context.Background(), "   ")
	assert.Error(t, err)
}
