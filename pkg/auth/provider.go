package auth

import (
	"context"
	"errors"

	"draftforge/pkg/domain"
)

// ErrInvalidToken is returned when a bearer token cannot be resolved to a user.
var ErrInvalidToken = errors.New("invalid or expired token")

// UserResolver is the subset of the store identity providers need.
type UserResolver interface {
	GetUserByID(id string) (domain.User, bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	SaveUser(domain.User) error
}

// IdentityProvider resolves a bearer token to a user. The implementation
// is chosen once at startup: local session tokens or a hosted OIDC issuer.
type IdentityProvider interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}
