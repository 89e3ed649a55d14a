package ports

import (
	"context"
	"errors"

	"github.com/everestcart/storefront-api/internal/domains/users/domain"
	"github.com/everestcart/storefront-api/internal/shared/actor"
)

// ErrForbidden rejects profile access by someone who is neither staff nor
// the account owner.
var ErrForbidden = errors.New("forbidden")

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ProfileUpdate carries the editable delivery details of an account.
type ProfileUpdate struct {
	FirstName    string
	LastName     string
	MobileNumber string
	Address      string
	Province     string
	District     string
	Municipal    string
}

// Service exposes account use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to the acting principal.
	Authenticate(ctx context.Context, token string) (actor.Actor, error)
	GetProfile(ctx context.Context, act actor.Actor, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, act actor.Actor, id int64, update ProfileUpdate) (*domain.User, error)
}
