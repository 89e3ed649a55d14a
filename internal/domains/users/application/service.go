package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/everestcart/storefront-api/internal/domains/users/domain"
	"github.com/everestcart/storefront-api/internal/domains/users/ports"
	"github.com/everestcart/storefront-api/internal/shared/actor"
)

// Service exposes account use cases. Sessions are opaque bearer tokens
// stored server-side, one row per login.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	newToken func() string
}

type Option func(*Service)

// WithTokenSource overrides session token generation, used by tests.
func WithTokenSource(gen func() string) Option {
	return func(s *Service) {
		s.newToken = gen
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{repo: repo, sessions: sessions, newToken: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates a client account. Staff accounts are provisioned out of
// band, never through sign-up.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(input.FirstName, input.LastName, input.Email, input.Password, actor.RoleClient)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Login verifies credentials and opens a session. The same error comes back
// for an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			err = ports.ErrInvalidCredentials
		}
		return "", nil, mapError(err)
	}
	if !user.CheckPassword(password) {
		return "", nil, mapError(ports.ErrInvalidCredentials)
	}
	token := s.newToken()
	if err := s.sessions.Save(ctx, token, user.ID); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout ends the session behind the token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a bearer token to the acting principal.
func (s *Service) Authenticate(ctx context.Context, token string) (actor.Actor, error) {
	if strings.TrimSpace(token) == "" {
		return actor.Actor{}, mapError(ports.ErrSessionNotFound)
	}
	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return actor.Actor{}, mapError(err)
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			err = ports.ErrSessionNotFound
		}
		return actor.Actor{}, mapError(err)
	}
	return user.Actor(), nil
}

// GetProfile loads an account. Buyers can only see their own; staff can see
// any. Foreign profiles come back as not found rather than forbidden.
func (s *Service) GetProfile(ctx context.Context, act actor.Actor, id int64) (*domain.User, error) {
	if !act.IsAdmin() && !act.Owns(id) {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile rewrites the editable account details. Only the owner or
// staff may update; role, email, and password are not touched here.
func (s *Service) UpdateProfile(ctx context.Context, act actor.Actor, id int64, update ports.ProfileUpdate) (*domain.User, error) {
	if !act.IsAdmin() && !act.Owns(id) {
		return nil, ports.ErrForbidden
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.SetName(update.FirstName, update.LastName); err != nil {
		return nil, mapError(err)
	}
	if err := user.UpdateProfile(update.MobileNumber, update.Address, update.Province, update.District, update.Municipal); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
