package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/auth"
	"github.com/tripwise/service-travel/internal/domain"
	userDomain "github.com/tripwise/service-travel/internal/domain/user"
	"github.com/tripwise/service-travel/internal/events"
	"github.com/tripwise/service-travel/internal/kafka"
)

// EventPublisher is the slice of the kafka producer the services need.
// Satisfied by *kafka.Producer; stubbed in unit tests.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event *kafka.CloudEvent) error
}

const eventSource = "service-travel"

// RegisterRequest is the request DTO for account registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request DTO for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the API response representation of a user account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse bundles the user with a fresh token pair.
type AuthResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
}

// AuthService implements registration and login use cases.
type AuthService struct {
	repo     userDomain.UserRepository
	jwt      *auth.JWTManager
	producer EventPublisher
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo userDomain.UserRepository, jwt *auth.JWTManager, producer EventPublisher, logger *zap.Logger) *AuthService {
	return &AuthService{repo: repo, jwt: jwt, producer: producer, logger: logger}
}

// Register creates a new traveler account and returns tokens for it.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, domain.NewConflictError("email is already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := userDomain.NewUser(req.Email, req.Name, hash, auth.RoleTraveler)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, u); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publishEvent(ctx, events.TopicUserEvents, events.UserRegistered, u.ID().String(), events.UserRegisteredEvent{
		UserID:     u.ID(),
		Email:      u.Email(),
		Name:       u.Name(),
		OccurredAt: time.Now().UTC(),
	})

	s.logger.Info("user registered", zap.String("user_id", u.ID().String()))
	return s.withTokens(u)
}

// Login verifies credentials and returns tokens.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}
	if !u.IsActive() {
		return nil, domain.NewUnauthorizedError("account is deactivated")
	}
	if !auth.VerifyPassword(req.Password, u.PasswordHash()) {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	s.logger.Info("user logged in", zap.String("user_id", u.ID().String()))
	return s.withTokens(u)
}

func (s *AuthService) withTokens(u *userDomain.User) (*AuthResponse, error) {
	pair, err := s.jwt.GenerateTokenPair(u.ID(), u.Role())
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	return &AuthResponse{
		User:         toUserDTO(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *AuthService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
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

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Role:      u.Role(),
		AvatarURL: u.AvatarURL(),
		Bio:       u.Bio(),
		CreatedAt: u.CreatedAt(),
	}
}
