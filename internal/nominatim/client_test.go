package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/domain/geo"
)

func TestSearch_ParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Eiffel Tower", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`[
			{"name": "Eiffel Tower", "display_name": "Eiffel Tower, Paris, France",
			 "lat": "48.8582", "lon": "2.2945", "type": "attraction", "osm_id": 5013364},
			{"name": "", "display_name": "Avenue Gustave Eiffel, Paris",
			 "lat": "48.8578", "lon": "2.2986", "type": "road", "osm_id": "w123"},
			{"name": "broken", "display_name": "bad entry", "lat": "not-a-number", "lon": "0", "type": "node"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	places, err := client.Search(context.Background(), "Eiffel Tower", 5)
	require.NoError(t, err)
	require.Len(t, places, 2, "entries with bad coordinates are skipped")

	assert.Equal(t, "Eiffel Tower", places[0].Name)
	assert.InDelta(t, 48.8582, places[0].Latitude, 1e-6)
	assert.InDelta(t, 2.2945, places[0].Longitude, 1e-6)
	assert.Equal(t, "attraction", places[0].PlaceType)
	assert.Equal(t, "5013364", places[0].OSMID)

	assert.Equal(t, "Avenue Gustave Eiffel, Paris", places[1].Name,
		"display name fills in a missing name")
	assert.Equal(t, "w123", places[1].OSMID)
}

func TestSearch_ClampsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	places, err := client.Search(context.Background(), "anything", 500)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))

		_, _ = w.Write([]byte(`{"name": "Brandenburg Gate",
			"display_name": "Brandenburg Gate, Berlin, Germany",
			"lat": "52.5163", "lon": "13.3777", "type": "attraction", "osm_id": 518071791}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	p, err := client.Reverse(context.Background(), geo.Point{Latitude: 52.5163, Longitude: 13.3777})
	require.NoError(t, err)
	assert.Equal(t, "Brandenburg Gate", p.Name)
	assert.InDelta(t, 52.5163, p.Latitude, 1e-6)
}

func TestSearch_ServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	_, err := client.Search(context.Background(), "anywhere", 5)
	require.ErrorIs(t, err, ErrUnavailable)
}
