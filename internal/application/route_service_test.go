package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/domain"
	"github.com/tripwise/service-travel/internal/domain/geo"
	routeDomain "github.com/tripwise/service-travel/internal/domain/route"
	"github.com/tripwise/service-travel/internal/domain/routing"
	"github.com/tripwise/service-travel/internal/events"
	"github.com/tripwise/service-travel/internal/kafka"
	"github.com/tripwise/service-travel/internal/osrm"
)

// --- Stubs ---

type stubProvider struct {
	candidates []routing.CandidateRoute
	err        error
}

func (p *stubProvider) FetchCandidates(_ context.Context, _, _ geo.Point, _ routing.TransportProfile) ([]routing.CandidateRoute, error) {
	return p.candidates, p.err
}

type capturedEvent struct {
	topic string
	event *kafka.CloudEvent
}

type stubPublisher struct {
	published []capturedEvent
}

func (p *stubPublisher) PublishEvent(_ context.Context, topic, _ string, event *kafka.CloudEvent) error {
	p.published = append(p.published, capturedEvent{topic: topic, event: event})
	return nil
}

type stubRouteRepo struct {
	routes map[uuid.UUID]*routeDomain.Route
}

func newStubRouteRepo() *stubRouteRepo {
	return &stubRouteRepo{routes: make(map[uuid.UUID]*routeDomain.Route)}
}

func (r *stubRouteRepo) FindByID(_ context.Context, id uuid.UUID) (*routeDomain.Route, error) {
	rt, ok := r.routes[id]
	if !ok {
		return nil, domain.NewNotFoundError("Route", id.String())
	}
	return rt, nil
}

func (r *stubRouteRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]*routeDomain.Route, int64, error) {
	var out []*routeDomain.Route
	for _, rt := range r.routes {
		if rt.UserID() == userID {
			out = append(out, rt)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubRouteRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, rt := range r.routes {
		if rt.UserID() == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubRouteRepo) Save(_ context.Context, rt *routeDomain.Route) error {
	r.routes[rt.ID()] = rt
	return nil
}

func (r *stubRouteRepo) Update(_ context.Context, rt *routeDomain.Route) error {
	r.routes[rt.ID()] = rt
	return nil
}

func (r *stubRouteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.routes, id)
	return nil
}

func newRouteService(provider RouteProvider, publisher EventPublisher) (*RouteService, *stubRouteRepo) {
	repo := newStubRouteRepo()
	return NewRouteService(repo, provider, publisher, zap.NewNop()), repo
}

var (
	berlin  = geo.Point{Latitude: 52.5200, Longitude: 13.4050}
	hamburg = geo.Point{Latitude: 53.5511, Longitude: 9.9937}
)

// --- Planning ---

func TestPlanRoute_UsesProviderAndConvertsUnits(t *testing.T) {
	provider := &stubProvider{candidates: []routing.CandidateRoute{
		{Distance: 12000, Duration: 900},
		{Distance: 11000, Duration: 1100},
	}}
	svc, _ := newRouteService(provider, &stubPublisher{})

	plan, err := svc.PlanRoute(context.Background(), berlin, hamburg, routing.ProfileDriving)
	require.NoError(t, err)

	// Driving picks the 900s candidate; 12000 m and 900 s convert to
	// presentation units.
	assert.Equal(t, 12.0, plan.DistanceKm)
	assert.Equal(t, 15.0, plan.DurationMinutes)
	assert.Equal(t, "osrm", plan.RouteType)
	assert.Equal(t, "driving", plan.Profile)
}

func TestPlanRoute_FallsBackToDirectEstimate(t *testing.T) {
	provider := &stubProvider{err: osrm.ErrNoRoute}
	svc, _ := newRouteService(provider, &stubPublisher{})

	plan, err := svc.PlanRoute(context.Background(),
		geo.Point{Latitude: 0, Longitude: 0},
		geo.Point{Latitude: 0, Longitude: 1},
		routing.ProfileWalking,
	)
	require.NoError(t, err)

	assert.Equal(t, "direct", plan.RouteType)
	assert.InDelta(t, 111.19, plan.DistanceKm, 0.1)
	// Direct estimates carry whole minutes.
	assert.Equal(t, 83.0, plan.DurationMinutes)
	assert.Equal(t, "walking", plan.Profile)
	assert.Nil(t, plan.Geometry)
}

func TestPlanRoute_RejectsBadCoordinates(t *testing.T) {
	svc, _ := newRouteService(&stubProvider{}, &stubPublisher{})

	_, err := svc.PlanRoute(context.Background(),
		geo.Point{Latitude: 91, Longitude: 0}, hamburg, routing.ProfileDriving)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestPlanNavigation_SynthesizesOneInstructionPerStep(t *testing.T) {
	provider := &stubProvider{candidates: []routing.CandidateRoute{
		{
			Distance: 5000,
			Duration: 600,
			Steps: []routing.ManeuverStep{
				{Maneuver: routing.Maneuver{Type: "depart"}, Name: "Main Street", Distance: 100, Duration: 20},
				{Maneuver: routing.Maneuver{Type: "turn", Modifier: "left"}, Name: "Oak Avenue", Distance: 4800, Duration: 560},
				{Maneuver: routing.Maneuver{Type: "arrive"}, Distance: 100, Duration: 20},
			},
		},
	}}
	svc, _ := newRouteService(provider, &stubPublisher{})

	nav, err := svc.PlanNavigation(context.Background(), berlin, hamburg, routing.ProfileDriving)
	require.NoError(t, err)

	require.Len(t, nav.Steps, 3)
	assert.Equal(t, 3, nav.TotalSteps)
	assert.Equal(t, "Start on Main Street", nav.Steps[0].Instruction)
	assert.Equal(t, "Turn left onto Oak Avenue", nav.Steps[1].Instruction)
	assert.Equal(t, "Arrive at destination", nav.Steps[2].Instruction)
	assert.Equal(t, "osrm", nav.Route.RouteType)
}

func TestPlanNavigation_NoRouteIsNotFound(t *testing.T) {
	svc, _ := newRouteService(&stubProvider{err: osrm.ErrNoRoute}, &stubPublisher{})

	_, err := svc.PlanNavigation(context.Background(), berlin, hamburg, routing.ProfileCycling)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

// --- CRUD ---

func createRouteRequest() CreateRouteRequest {
	return CreateRouteRequest{
		Name:       "Weekend trip",
		StartPoint: WaypointDTO{Name: "Berlin", Latitude: berlin.Latitude, Longitude: berlin.Longitude},
		EndPoint:   WaypointDTO{Name: "Hamburg", Latitude: hamburg.Latitude, Longitude: hamburg.Longitude},
	}
}

func TestCreateRoute_PersistsAndPublishes(t *testing.T) {
	publisher := &stubPublisher{}
	svc, repo := newRouteService(&stubProvider{}, publisher)
	userID := uuid.New()

	dto, err := svc.CreateRoute(context.Background(), userID, createRouteRequest())
	require.NoError(t, err)

	assert.Equal(t, userID, dto.UserID)
	assert.Contains(t, repo.routes, dto.ID)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.TopicRouteEvents, publisher.published[0].topic)
	assert.Equal(t, events.RouteCreated, publisher.published[0].event.Type)

	var payload events.RouteCreatedEvent
	require.NoError(t, publisher.published[0].event.ParseData(&payload))
	assert.Equal(t, dto.ID, payload.RouteID)
	assert.Equal(t, "Berlin", payload.StartName)
}

func TestGetRoute_EnforcesOwnership(t *testing.T) {
	svc, _ := newRouteService(&stubProvider{}, &stubPublisher{})
	owner := uuid.New()

	dto, err := svc.CreateRoute(context.Background(), owner, createRouteRequest())
	require.NoError(t, err)

	_, err = svc.GetRoute(context.Background(), uuid.New(), dto.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	got, err := svc.GetRoute(context.Background(), owner, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, got.ID)
}

func TestDeleteRoute_PublishesEvent(t *testing.T) {
	publisher := &stubPublisher{}
	svc, repo := newRouteService(&stubProvider{}, publisher)
	userID := uuid.New()

	dto, err := svc.CreateRoute(context.Background(), userID, createRouteRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRoute(context.Background(), userID, dto.ID))
	assert.NotContains(t, repo.routes, dto.ID)

	require.Len(t, publisher.published, 2)
	assert.Equal(t, events.RouteDeleted, publisher.published[1].event.Type)
}

func TestRouteDistance_DirectEstimate(t *testing.T) {
	svc, _ := newRouteService(&stubProvider{}, &stubPublisher{})
	userID := uuid.New()

	dto, err := svc.CreateRoute(context.Background(), userID, createRouteRequest())
	require.NoError(t, err)

	est, err := svc.RouteDistance(context.Background(), userID, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "direct", est.RouteType)
	assert.Greater(t, est.DistanceKm, 200.0, "Berlin to Hamburg is over 200 km as the crow flies")
	assert.Greater(t, est.DurationMinutes, 0)
}

func TestCreateRouteRequest_BindsZeroCoordinates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// A waypoint on the equator or prime meridian has a legitimate zero
	// coordinate and must survive request binding.
	body := `{
		"name": "Equator crossing",
		"start_point": {"name": "Mitad del Mundo", "latitude": 0, "longitude": -78.4558},
		"end_point": {"name": "Greenwich", "latitude": 51.4779, "longitude": 0}
	}`
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/routes", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req CreateRouteRequest
	require.NoError(t, c.ShouldBindJSON(&req))
	assert.Zero(t, req.StartPoint.Latitude)
	assert.Zero(t, req.EndPoint.Longitude)
}

func TestCreateRouteRequest_RejectsOutOfRangeCoordinates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := `{
		"name": "Broken",
		"start_point": {"name": "Nowhere", "latitude": 95, "longitude": 0},
		"end_point": {"name": "Greenwich", "latitude": 51.4779, "longitude": 0}
	}`
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/routes", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req CreateRouteRequest
	require.Error(t, c.ShouldBindJSON(&req))
}
