package geo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paris     = Point{Lat: 48.8566, Lng: 2.3522}
	lyon      = Point{Lat: 45.7640, Lng: 4.8357}
	marseille = Point{Lat: 43.2965, Lng: 5.3698}
)

func TestHaversine_KnownDistances(t *testing.T) {
	// Paris-Lyon is roughly 392 km as the crow flies
	assert.InDelta(t, 392, Haversine(paris, lyon), 10)
	// Paris-Marseille roughly 660 km
	assert.InDelta(t, 660, Haversine(paris, marseille), 15)
}

func TestHaversine_SamePointIsZero(t *testing.T) {
	assert.InDelta(t, 0, Haversine(paris, paris), 1e-9)
}

func TestHaversine_Symmetric(t *testing.T) {
	assert.InDelta(t, Haversine(paris, lyon), Haversine(lyon, paris), 1e-9)
}

func TestClient_Distance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "driving", r.URL.Query().Get("mode"))
		assert.NotEmpty(t, r.URL.Query().Get("origin"))
		_ = json.NewEncoder(w).Encode(map[string]float64{
			"distance_km":         392.4,
			"travel_time_minutes": 234,
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	result, err := client.Distance(context.Background(), paris, lyon, ModeDriving)

	require.NoError(t, err)
	assert.InDelta(t, 392.4, result.DistanceKm, 1e-9)
	assert.InDelta(t, 234, result.TravelTimeMinutes, 1e-9)
}

func TestClient_DistanceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	_, err := client.Distance(context.Background(), paris, lyon, ModeTransit)

	require.Error(t, err)
	var geoErr *Error
	assert.ErrorAs(t, err, &geoErr)
}

func TestClient_DistanceTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]float64{"distance_km": 1})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	_, err := client.Distance(context.Background(), paris, lyon, ModeDriving)

	assert.Error(t, err)
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient(ClientConfig{})
	_, err := client.Distance(context.Background(), paris, lyon, ModeDriving)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

// stubDistancer counts calls and returns a fixed result or error.
type stubDistancer struct {
	calls  atomic.Int64
	result Result
	err    error
}

func (s *stubDistancer) Distance(_ context.Context, _, _ Point, _ Mode) (Result, error) {
	s.calls.Add(1)
	if s.err != nil {
		return Result{}, s.err
	}
	return s.result, nil
}

func TestCachedDistancer_HitAvoidsSecondCall(t *testing.T) {
	stub := &stubDistancer{result: Result{DistanceKm: 10, TravelTimeMinutes: 15}}
	cached := NewCachedDistancer(stub, CacheConfig{})

	for i := 0; i < 3; i++ {
		result, err := cached.Distance(context.Background(), paris, lyon, ModeDriving)
		require.NoError(t, err)
		assert.InDelta(t, 10, result.DistanceKm, 1e-9)
	}

	assert.Equal(t, int64(1), stub.calls.Load())
}

func TestCachedDistancer_ModeIsPartOfKey(t *testing.T) {
	stub := &stubDistancer{result: Result{DistanceKm: 10}}
	cached := NewCachedDistancer(stub, CacheConfig{})

	_, _ = cached.Distance(context.Background(), paris, lyon, ModeDriving)
	_, _ = cached.Distance(context.Background(), paris, lyon, ModeTransit)

	assert.Equal(t, int64(2), stub.calls.Load())
}

func TestCachedDistancer_ErrorsNotCached(t *testing.T) {
	stub := &stubDistancer{err: errors.New("service down")}
	cached := NewCachedDistancer(stub, CacheConfig{})

	_, err := cached.Distance(context.Background(), paris, lyon, ModeDriving)
	require.Error(t, err)
	_, err = cached.Distance(context.Background(), paris, lyon, ModeDriving)
	require.Error(t, err)

	assert.Equal(t, int64(2), stub.calls.Load())
	assert.Equal(t, 0, cached.Len())
}

func TestCachedDistancer_CapacityEvictsOldest(t *testing.T) {
	stub := &stubDistancer{result: Result{DistanceKm: 1}}
	cached := NewCachedDistancer(stub, CacheConfig{Capacity: 2})

	_, _ = cached.Distance(context.Background(), paris, lyon, ModeDriving)
	_, _ = cached.Distance(context.Background(), paris, marseille, ModeDriving)
	_, _ = cached.Distance(context.Background(), lyon, marseille, ModeDriving)

	assert.Equal(t, 2, cached.Len())
}

func TestCachedDistancer_TTLExpiry(t *testing.T) {
	stub := &stubDistancer{result: Result{DistanceKm: 1}}
	cached := NewCachedDistancer(stub, CacheConfig{TTL: 10 * time.Millisecond})

	_, _ = cached.Distance(context.Background(), paris, lyon, ModeDriving)
	time.Sleep(20 * time.Millisecond)
	_, _ = cached.Distance(context.Background(), paris, lyon, ModeDriving)

	assert.Equal(t, int64(2), stub.calls.Load())
}
