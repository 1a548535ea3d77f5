package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/domain"
	"github.com/tripwise/service-travel/internal/domain/geo"
	routeDomain "github.com/tripwise/service-travel/internal/domain/route"
	"github.com/tripwise/service-travel/internal/domain/routing"
	"github.com/tripwise/service-travel/internal/events"
	"github.com/tripwise/service-travel/internal/kafka"
	"github.com/tripwise/service-travel/internal/osrm"
)

// RouteProvider fetches candidate routes from a routing engine. Satisfied by
// *osrm.Client; stubbed in unit tests.
type RouteProvider interface {
	FetchCandidates(ctx context.Context, from, to geo.Point, profile routing.TransportProfile) ([]routing.CandidateRoute, error)
}

// RouteTypeRouted tags results that came from the routing provider, as
// opposed to routeDomain.RouteTypeDirect straight-line estimates.
const RouteTypeRouted = "osrm"

// WaypointDTO mirrors routeDomain.Waypoint in requests and responses.
type WaypointDTO struct {
	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// CreateRouteRequest is the request DTO for saving a route.
type CreateRouteRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	StartPoint  WaypointDTO `json:"start_point" binding:"required"`
	EndPoint    WaypointDTO `json:"end_point" binding:"required"`
}

// UpdateRouteRequest patches a saved route; nil means keep as is.
type UpdateRouteRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	StartPoint  *WaypointDTO `json:"start_point"`
	EndPoint    *WaypointDTO `json:"end_point"`
}

// RouteDTO is the API representation of a saved route.
type RouteDTO struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	StartPoint  WaypointDTO `json:"start_point"`
	EndPoint    WaypointDTO `json:"end_point"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PlannedRouteDTO is a planned (routed or direct) route between two points.
type PlannedRouteDTO struct {
	DistanceKm      float64         `json:"distance_km"`
	DurationMinutes float64         `json:"duration_minutes"`
	Geometry        json.RawMessage `json:"geometry,omitempty"`
	RouteType       string          `json:"route_type"`
	Profile         string          `json:"profile"`
}

// NavigationDTO is a planned route with turn-by-turn instructions.
type NavigationDTO struct {
	Route      PlannedRouteDTO          `json:"route_info"`
	Steps      []routing.NavigationStep `json:"navigation_steps"`
	TotalSteps int                      `json:"total_steps"`
}

// RouteService implements saved-route CRUD and route planning.
type RouteService struct {
	repo     routeDomain.RouteRepository
	provider RouteProvider
	producer EventPublisher
	logger   *zap.Logger
}

// NewRouteService creates a new RouteService.
func NewRouteService(repo routeDomain.RouteRepository, provider RouteProvider, producer EventPublisher, logger *zap.Logger) *RouteService {
	return &RouteService{repo: repo, provider: provider, producer: producer, logger: logger}
}

// CreateRoute saves a new route for the user.
func (s *RouteService) CreateRoute(ctx context.Context, userID uuid.UUID, req CreateRouteRequest) (*RouteDTO, error) {
	rt, err := routeDomain.NewRoute(userID, req.Name, req.Description,
		toWaypoint(req.StartPoint), toWaypoint(req.EndPoint))
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, rt); err != nil {
		s.logger.Error("failed to create route", zap.Error(err))
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	s.publishEvent(ctx, events.TopicRouteEvents, events.RouteCreated, rt.ID().String(), events.RouteCreatedEvent{
		RouteID:    rt.ID(),
		UserID:     userID,
		Name:       rt.Name(),
		StartName:  rt.Start().Name,
		EndName:    rt.End().Name,
		OccurredAt: time.Now().UTC(),
	})

	s.logger.Info("route created",
		zap.String("route_id", rt.ID().String()),
		zap.String("user_id", userID.String()),
	)
	dto := toRouteDTO(rt)
	return &dto, nil
}

// GetRoute returns a single route, verifying ownership.
func (s *RouteService) GetRoute(ctx context.Context, userID, routeID uuid.UUID) (*RouteDTO, error) {
	rt, err := s.ownedRoute(ctx, userID, routeID)
	if err != nil {
		return nil, err
	}
	dto := toRouteDTO(rt)
	return &dto, nil
}

// ListRoutes returns the user's saved routes, newest first.
func (s *RouteService) ListRoutes(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[RouteDTO], error) {
	routes, total, err := s.repo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	dtos := make([]RouteDTO, len(routes))
	for i, rt := range routes {
		dtos[i] = toRouteDTO(rt)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// UpdateRoute patches a saved route, verifying ownership.
func (s *RouteService) UpdateRoute(ctx context.Context, userID, routeID uuid.UUID, req UpdateRouteRequest) (*RouteDTO, error) {
	rt, err := s.ownedRoute(ctx, userID, routeID)
	if err != nil {
		return nil, err
	}

	var start, end *routeDomain.Waypoint
	if req.StartPoint != nil {
		w := toWaypoint(*req.StartPoint)
		start = &w
	}
	if req.EndPoint != nil {
		w := toWaypoint(*req.EndPoint)
		end = &w
	}
	if err := rt.Update(req.Name, req.Description, start, end); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rt); err != nil {
		s.logger.Error("failed to update route", zap.Error(err))
		return nil, fmt.Errorf("failed to update route: %w", err)
	}

	s.logger.Info("route updated", zap.String("route_id", routeID.String()))
	dto := toRouteDTO(rt)
	return &dto, nil
}

// DeleteRoute removes a saved route, verifying ownership.
func (s *RouteService) DeleteRoute(ctx context.Context, userID, routeID uuid.UUID) error {
	rt, err := s.ownedRoute(ctx, userID, routeID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, rt.ID()); err != nil {
		s.logger.Error("failed to delete route", zap.Error(err))
		return fmt.Errorf("failed to delete route: %w", err)
	}

	s.publishEvent(ctx, events.TopicRouteEvents, events.RouteDeleted, routeID.String(), events.RouteDeletedEvent{
		RouteID:    routeID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})

	s.logger.Info("route deleted", zap.String("route_id", routeID.String()))
	return nil
}

// RouteDistance returns the direct-line estimate for a saved route.
func (s *RouteService) RouteDistance(ctx context.Context, userID, routeID uuid.UUID) (*routeDomain.DirectEstimate, error) {
	rt, err := s.ownedRoute(ctx, userID, routeID)
	if err != nil {
		return nil, err
	}
	est := rt.DirectDistance()
	return &est, nil
}

// QuickDistance returns the direct-line estimate between arbitrary points
// without persisting anything.
func (s *RouteService) QuickDistance(from, to geo.Point) (*routeDomain.DirectEstimate, error) {
	if err := geo.ValidatePoint(from); err != nil {
		return nil, err
	}
	if err := geo.ValidatePoint(to); err != nil {
		return nil, err
	}
	est := routeDomain.DirectEstimateBetween(from, to)
	return &est, nil
}

// PlanRoute asks the provider for candidates, picks the best one for the
// profile and summarizes it. When the provider cannot route the pair it
// degrades to the straight-line estimate instead of failing.
func (s *RouteService) PlanRoute(ctx context.Context, from, to geo.Point, profile routing.TransportProfile) (*PlannedRouteDTO, error) {
	if err := geo.ValidatePoint(from); err != nil {
		return nil, err
	}
	if err := geo.ValidatePoint(to); err != nil {
		return nil, err
	}

	candidates, err := s.provider.FetchCandidates(ctx, from, to, profile)
	if err != nil {
		if errors.Is(err, osrm.ErrNoRoute) {
			s.logger.Warn("provider could not route, falling back to direct estimate",
				zap.String("profile", profile.String()))
			return directPlan(from, to, profile), nil
		}
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	best, err := routing.SelectBest(candidates, profile)
	if err != nil {
		return directPlan(from, to, profile), nil
	}
	summary := routing.Summarize(best, profile)

	return &PlannedRouteDTO{
		DistanceKm:      summary.DistanceKm,
		DurationMinutes: summary.DurationMinutes,
		Geometry:        best.Geometry,
		RouteType:       RouteTypeRouted,
		Profile:         profile.String(),
	}, nil
}

// PlanNavigation plans a route and synthesizes turn-by-turn instructions.
// Unlike PlanRoute there is no degraded path: without provider steps there
// is nothing to navigate, so failures surface as not-found.
func (s *RouteService) PlanNavigation(ctx context.Context, from, to geo.Point, profile routing.TransportProfile) (*NavigationDTO, error) {
	if err := geo.ValidatePoint(from); err != nil {
		return nil, err
	}
	if err := geo.ValidatePoint(to); err != nil {
		return nil, err
	}

	candidates, err := s.provider.FetchCandidates(ctx, from, to, profile)
	if err != nil {
		if errors.Is(err, osrm.ErrNoRoute) {
			return nil, domain.NewNotFoundError("Route", "between the specified points")
		}
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	best, err := routing.SelectBest(candidates, profile)
	if err != nil {
		return nil, domain.NewNotFoundError("Route", "between the specified points")
	}
	summary := routing.Summarize(best, profile)
	steps := routing.Synthesize(best)

	return &NavigationDTO{
		Route: PlannedRouteDTO{
			DistanceKm:      summary.DistanceKm,
			DurationMinutes: summary.DurationMinutes,
			Geometry:        best.Geometry,
			RouteType:       RouteTypeRouted,
			Profile:         profile.String(),
		},
		Steps:      steps,
		TotalSteps: len(steps),
	}, nil
}

func (s *RouteService) ownedRoute(ctx context.Context, userID, routeID uuid.UUID) (*routeDomain.Route, error) {
	rt, err := s.repo.FindByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if rt.UserID() != userID {
		return nil, domain.NewForbiddenError("you do not own this route")
	}
	return rt, nil
}

func (s *RouteService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, topic, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func directPlan(from, to geo.Point, profile routing.TransportProfile) *PlannedRouteDTO {
	est := routeDomain.DirectEstimateBetween(from, to)
	return &PlannedRouteDTO{
		DistanceKm:      est.DistanceKm,
		DurationMinutes: float64(est.DurationMinutes),
		RouteType:       est.RouteType,
		Profile:         profile.String(),
	}
}

func toWaypoint(w WaypointDTO) routeDomain.Waypoint {
	return routeDomain.Waypoint{Name: w.Name, Latitude: w.Latitude, Longitude: w.Longitude}
}

func toWaypointDTO(w routeDomain.Waypoint) WaypointDTO {
	return WaypointDTO{Name: w.Name, Latitude: w.Latitude, Longitude: w.Longitude}
}

func toRouteDTO(rt *routeDomain.Route) RouteDTO {
	return RouteDTO{
		ID:          rt.ID(),
		UserID:      rt.UserID(),
		Name:        rt.Name(),
		Description: rt.Description(),
		StartPoint:  toWaypointDTO(rt.Start()),
		EndPoint:    toWaypointDTO(rt.End()),
		CreatedAt:   rt.CreatedAt(),
		UpdatedAt:   rt.UpdatedAt(),
	}
}
