// Package nominatim is a small client for the OpenStreetMap Nominatim
// geocoding API: free-text place search and reverse geocoding.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/domain/geo"
)

// ErrUnavailable is returned when the geocoding service cannot be reached or
// answers with an error status.
var ErrUnavailable = errors.New("nominatim: service unavailable")

const (
	requestTimeout = 10 * time.Second
	userAgent      = "tripwise-service-travel/1.0"

	maxSearchLimit = 20
)

// Place is a geocoding hit converted to our shape.
type Place struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PlaceType   string  `json:"place_type"`
	OSMID       string  `json:"osm_id,omitempty"`
}

// searchResult mirrors one entry of the Nominatim JSON payload. Coordinates
// come back as strings.
type searchResult struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	Type        string          `json:"type"`
	OSMID       json.RawMessage `json:"osm_id"`
}

// Client calls a Nominatim-compatible geocoding server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a geocoding client against the given base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// Search finds places matching a free-text query. Limit is clamped to
// [1, 20]; entries with unparseable coordinates are skipped.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")

	var results []searchResult
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		p, ok := toPlace(r)
		if !ok {
			c.logger.Warn("skipping geocoding hit with bad coordinates",
				zap.String("display_name", r.DisplayName))
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

// Reverse resolves coordinates to the nearest known place.
func (c *Client) Reverse(ctx context.Context, point geo.Point) (*Place, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(point.Longitude, 'f', -1, 64))
	params.Set("format", "json")

	var result searchResult
	if err := c.get(ctx, "/reverse", params, &result); err != nil {
		return nil, err
	}

	p, ok := toPlace(result)
	if !ok {
		return nil, ErrUnavailable
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("nominatim request failed", zap.Error(err))
		return ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("nominatim returned non-200", zap.Int("status", resp.StatusCode))
		return ErrUnavailable
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode nominatim response: %w", err)
	}
	return nil
}

func toPlace(r searchResult) (Place, bool) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Place{}, false
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Place{}, false
	}

	name := r.Name
	if name == "" {
		name = r.DisplayName
	}

	p := Place{
		Name:        name,
		DisplayName: r.DisplayName,
		Latitude:    lat,
		Longitude:   lon,
		PlaceType:   r.Type,
	}
	// osm_id can be a number or a string depending on the endpoint.
	if len(r.OSMID) > 0 {
		var asString string
		if err := json.Unmarshal(r.OSMID, &asString); err == nil {
			p.OSMID = asString
		} else {
			var asNumber int64
			if err := json.Unmarshal(r.OSMID, &asNumber); err == nil {
				p.OSMID = strconv.FormatInt(asNumber, 10)
			}
		}
	}
	return p, true
}
