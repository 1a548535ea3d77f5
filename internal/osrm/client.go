// Package osrm is a thin HTTP client for the OSRM route service. It fetches
// candidate routes with turn-by-turn steps and converts them into the
// routing domain types.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/domain/geo"
	"github.com/tripwise/service-travel/internal/domain/routing"
)

// ErrNoRoute is returned when OSRM cannot produce any route between the
// requested points, including transport-level failures. Callers treat it as
// the signal to fall back to a straight-line estimate.
var ErrNoRoute = errors.New("osrm: no route found")

const (
	requestTimeout = 10 * time.Second
	userAgent      = "tripwise-service-travel/1.0"
)

// Response mirrors the OSRM /route/v1 JSON payload.
type Response struct {
	Code      string     `json:"code"`
	Message   string     `json:"message,omitempty"`
	Routes    []Route    `json:"routes"`
	Waypoints []Waypoint `json:"waypoints"`
}

// Route is a single candidate returned by OSRM. Distance is meters,
// Duration is seconds.
type Route struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Geometry json.RawMessage `json:"geometry"`
	Legs     []Leg           `json:"legs"`
}

// Leg is a route section between two consecutive waypoints. With two input
// points there is exactly one leg.
type Leg struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Steps    []Step  `json:"steps"`
}

// Step is a single maneuver segment of a leg.
type Step struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Name     string          `json:"name"`
	Maneuver Maneuver        `json:"maneuver"`
	Geometry json.RawMessage `json:"geometry"`
}

// Maneuver describes what to do at the start of a step. Location is
// [longitude, latitude] as OSRM emits it.
type Maneuver struct {
	Type     string    `json:"type"`
	Modifier string    `json:"modifier,omitempty"`
	Location []float64 `json:"location"`
}

// Waypoint is a snapped input coordinate.
type Waypoint struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"`
}

// Client calls an OSRM-compatible route server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an OSRM client against the given base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// FetchCandidates requests alternative routes between two points for a
// transport profile and returns them as candidates for selection. It returns
// ErrNoRoute when the service cannot route the pair, so the caller can
// degrade to an estimate instead of failing the request.
func (c *Client) FetchCandidates(ctx context.Context, from, to geo.Point, profile routing.TransportProfile) ([]routing.CandidateRoute, error) {
	// OSRM wants lon,lat ordering.
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?alternatives=true&steps=true&geometries=geojson&overview=full",
		c.baseURL, profile,
		from.Longitude, from.Latitude,
		to.Longitude, to.Latitude,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create osrm request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("osrm request failed", zap.Error(err))
		return nil, ErrNoRoute
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("osrm returned non-200", zap.Int("status", resp.StatusCode))
		return nil, ErrNoRoute
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode osrm response: %w", err)
	}

	if body.Code != "Ok" {
		c.logger.Warn("osrm rejected request",
			zap.String("code", body.Code),
			zap.String("message", body.Message))
		return nil, ErrNoRoute
	}
	if len(body.Routes) == 0 {
		return nil, ErrNoRoute
	}

	candidates := make([]routing.CandidateRoute, 0, len(body.Routes))
	for _, r := range body.Routes {
		candidates = append(candidates, toCandidate(r))
	}

	c.logger.Debug("osrm candidates fetched",
		zap.String("profile", profile.String()),
		zap.Int("count", len(candidates)))
	return candidates, nil
}

func toCandidate(r Route) routing.CandidateRoute {
	c := routing.CandidateRoute{
		Distance: r.Distance,
		Duration: r.Duration,
		Geometry: r.Geometry,
	}
	// Turn-by-turn steps live on the first leg; with a single origin and
	// destination there is only one.
	if len(r.Legs) > 0 {
		for _, s := range r.Legs[0].Steps {
			step := routing.ManeuverStep{
				Distance: s.Distance,
				Duration: s.Duration,
				Name:     s.Name,
				Geometry: s.Geometry,
				Maneuver: routing.Maneuver{
					Type:     s.Maneuver.Type,
					Modifier: s.Maneuver.Modifier,
					Location: s.Maneuver.Location,
				},
			}
			c.Steps = append(c.Steps, step)
		}
	}
	return c
}
