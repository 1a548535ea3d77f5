package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/domain/geo"
	"github.com/tripwise/service-travel/internal/domain/routing"
)

const routeResponse = `{
	"code": "Ok",
	"routes": [
		{
			"distance": 12000,
			"duration": 900,
			"geometry": {"type": "LineString", "coordinates": [[13.388, 52.517], [13.397, 52.529]]},
			"legs": [
				{
					"distance": 12000,
					"duration": 900,
					"steps": [
						{
							"distance": 200,
							"duration": 30,
							"name": "Invalidenstrasse",
							"maneuver": {"type": "depart", "location": [13.388, 52.517]}
						},
						{
							"distance": 11800,
							"duration": 870,
							"name": "",
							"maneuver": {"type": "arrive", "location": [13.397, 52.529]}
						}
					]
				}
			]
		},
		{
			"distance": 14000,
			"duration": 840,
			"geometry": {"type": "LineString", "coordinates": []},
			"legs": [{"distance": 14000, "duration": 840, "steps": []}]
		}
	],
	"waypoints": [
		{"name": "Invalidenstrasse", "location": [13.388, 52.517]},
		{"name": "", "location": [13.397, 52.529]}
	]
}`

func TestFetchCandidates_ParsesAlternatives(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/route/v1/cycling/")
		assert.Equal(t, "true", r.URL.Query().Get("alternatives"))
		assert.Equal(t, "true", r.URL.Query().Get("steps"))
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(routeResponse))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	candidates, err := client.FetchCandidates(context.Background(),
		geo.Point{Latitude: 52.517, Longitude: 13.388},
		geo.Point{Latitude: 52.529, Longitude: 13.397},
		routing.ProfileCycling,
	)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, 12000.0, first.Distance)
	assert.Equal(t, 900.0, first.Duration)
	require.Len(t, first.Steps, 2)
	assert.Equal(t, "depart", first.Steps[0].Maneuver.Type)
	assert.Equal(t, "Invalidenstrasse", first.Steps[0].Name)
	assert.Equal(t, "arrive", first.Steps[1].Maneuver.Type)

	assert.Empty(t, candidates[1].Steps)
}

func TestFetchCandidates_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "NoRoute", "message": "Impossible route between points"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	_, err := client.FetchCandidates(context.Background(),
		geo.Point{Latitude: 0, Longitude: 0},
		geo.Point{Latitude: 1, Longitude: 1},
		routing.ProfileDriving,
	)
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestFetchCandidates_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	_, err := client.FetchCandidates(context.Background(),
		geo.Point{Latitude: 0, Longitude: 0},
		geo.Point{Latitude: 1, Longitude: 1},
		routing.ProfileWalking,
	)
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestFetchCandidates_EmptyRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "Ok", "routes": [], "waypoints": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	_, err := client.FetchCandidates(context.Background(),
		geo.Point{Latitude: 0, Longitude: 0},
		geo.Point{Latitude: 1, Longitude: 1},
		routing.ProfileDriving,
	)
	require.ErrorIs(t, err, ErrNoRoute)
}
