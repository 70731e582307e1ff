package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/atmos-assistant/internal/domain/assistant"
)

func TestCurrentMapsAndConvertsUnits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/weather", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("appid"))
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		require.Equal(t, "35.6895", r.URL.Query().Get("lat"))
		w.Write([]byte(`{
			"name": "Tokyo",
			"sys": {"country": "JP", "sunrise": 1000000, "sunset": 2000000},
			"main": {"temp": 22, "feels_like": 21.5, "temp_min": 18, "temp_max": 25, "humidity": 60},
			"wind": {"speed": 5, "deg": 220},
			"weather": [{"main": "Clouds", "description": "scattered clouds"}],
			"visibility": 10000,
			"clouds": {"all": 40},
			"dt": 1500000,
			"timezone": 0
		}`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, server.URL)
	report, err := client.Current(context.Background(), 35.6895, 139.6917, "en")
	require.NoError(t, err)
	require.Equal(t, "Tokyo", report.City)
	require.Equal(t, "JP", report.Country)
	require.Equal(t, "Unknown", report.Region)
	require.Equal(t, 22.0, report.TempC)
	require.Equal(t, 18.0, report.TempMinC)
	require.Equal(t, 25.0, report.TempMaxC)
	require.Equal(t, 18.0, report.WindKph) // 5 m/s
	require.Equal(t, 220, report.WindDeg)
	require.Equal(t, "scattered clouds", report.Condition)
	require.Equal(t, 10.0, report.VisibilityKm) // 10000 m
	require.Equal(t, 40, report.CloudCover)
	require.Equal(t, "13:46", report.Sunrise)
	require.Equal(t, "03:33", report.Sunset)
	require.True(t, report.IsDay) // dt between sunrise and sunset
}

func TestCurrentDefaultsMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main": {"temp": 5}}`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, server.URL)
	report, err := client.Current(context.Background(), 1, 2, "")
	require.NoError(t, err)
	require.Equal(t, "Unknown", report.City)
	require.Equal(t, "Unknown", report.Country)
	require.Equal(t, "Unknown", report.Condition)
	require.Equal(t, 5.0, report.TempC)
	require.Zero(t, report.VisibilityKm)
	require.Equal(t, "Unknown", report.Sunrise)
	require.Equal(t, "Unknown", report.Sunset)
	require.False(t, report.IsDay)
}

func TestCurrentUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, server.URL)
	_, err := client.Current(context.Background(), 1, 2, "en")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=401")
}

func TestResolveTakesFirstCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/direct", r.URL.Path)
		require.Equal(t, "Tokyo", r.URL.Query().Get("q"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"name": "Tokyo", "country": "JP", "lat": 35.6895, "lon": 139.6917}]`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, server.URL)
	loc, err := client.Resolve(context.Background(), "Tokyo")
	require.NoError(t, err)
	require.Equal(t, "Tokyo", loc.DisplayName)
	require.Equal(t, 35.6895, loc.Lat)
	require.Equal(t, 139.6917, loc.Lon)
}

func TestResolveNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, server.URL)
	_, err := client.Resolve(context.Background(), "Atlantis")
	require.ErrorIs(t, err, assistant.ErrLocationNotFound)
}

func TestResolveMissingKey(t *testing.T) {
	client := NewClient("", "http://127.0.0.1:0", "http://127.0.0.1:0")
	_, err := client.Resolve(context.Background(), "Tokyo")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not configured")
}
