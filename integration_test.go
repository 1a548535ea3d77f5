//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/service-travel/internal/application"
	"github.com/tripwise/service-travel/internal/domain/geo"
	"github.com/tripwise/service-travel/internal/domain/routing"
	"github.com/tripwise/service-travel/internal/events"
	"github.com/tripwise/service-travel/internal/repository"
)

// TestRegisterAndSaveRoute_PublishesEvents verifies the full write path:
// a new traveler registers, saves a route, and both the database row and
// the CloudEvents on Kafka reflect the change.
func TestRegisterAndSaveRoute_PublishesEvents(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupTravelStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()

	// Register a traveler.
	authResp, err := stack.Auth.Register(ctx, application.RegisterRequest{
		Email:    "amelia@example.com",
		Name:     "Amelia",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, authResp.AccessToken)
	userID := authResp.User.ID

	// Save a route between two named points.
	routeDTO, err := stack.Routes.CreateRoute(ctx, userID, application.CreateRouteRequest{
		Name:        "Weekend trip",
		Description: "Berlin to Hamburg",
		StartPoint:  application.WaypointDTO{Name: "Berlin", Latitude: 52.5200, Longitude: 13.4050},
		EndPoint:    application.WaypointDTO{Name: "Hamburg", Latitude: 53.5511, Longitude: 9.9937},
	})
	require.NoError(t, err)

	// Assert: the route row is persisted with the traveler as owner.
	var model repository.RouteModel
	require.NoError(t, infra.DB.Where("id = ?", routeDTO.ID).First(&model).Error)
	assert.Equal(t, userID, model.UserID)
	assert.Equal(t, "Weekend trip", model.Name)
	assert.Equal(t, "Berlin", model.StartPointName)
	assert.Equal(t, "Hamburg", model.EndPointName)
	assert.InDelta(t, 52.5200, model.StartLat, 0.0001)
	assert.InDelta(t, 9.9937, model.EndLon, 0.0001)

	// Assert: UserRegisteredEvent on user.events.
	userCE := consumeOneEvent(t, infra.KafkaBrokers, events.TopicUserEvents,
		events.UserRegistered, 15*time.Second)
	var registered events.UserRegisteredEvent
	require.NoError(t, userCE.ParseData(&registered))
	assert.Equal(t, userID, registered.UserID)
	assert.Equal(t, "amelia@example.com", registered.Email)

	// Assert: RouteCreatedEvent on route.events.
	routeCE := consumeOneEvent(t, infra.KafkaBrokers, events.TopicRouteEvents,
		events.RouteCreated, 15*time.Second)
	assert.Equal(t, "service-travel", routeCE.Source)

	var created events.RouteCreatedEvent
	require.NoError(t, routeCE.ParseData(&created))
	assert.Equal(t, routeDTO.ID, created.RouteID)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Weekend trip", created.Name)
	assert.Equal(t, "Berlin", created.StartName)
	assert.Equal(t, "Hamburg", created.EndName)
}

// TestPlanRoute_FallsBackToDirectEstimate verifies that when the routing
// engine is unreachable the planner still answers with a straight-line
// estimate instead of failing.
func TestPlanRoute_FallsBackToDirectEstimate(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupTravelStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	plan, err := stack.Routes.PlanRoute(context.Background(),
		geo.Point{Latitude: 52.5200, Longitude: 13.4050},
		geo.Point{Latitude: 53.5511, Longitude: 9.9937},
		routing.ProfileDriving)
	require.NoError(t, err)

	assert.Equal(t, "direct", plan.RouteType)
	assert.Nil(t, plan.Geometry)
	// Berlin to Hamburg is roughly 255 km as the crow flies.
	assert.InDelta(t, 255, plan.DistanceKm, 10)
	assert.Greater(t, plan.DurationMinutes, 0.0)
}
