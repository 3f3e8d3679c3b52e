package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"

	"draftforge/pkg/domain"
)

// OIDCProvider authenticates ID tokens minted by a hosted identity
// provider. Users are provisioned on first sight, keyed by the verified
// email claim.
type OIDCProvider struct {
	verifier *oidc.IDTokenVerifier
	users    UserResolver
}

// NewOIDCProvider discovers the issuer and prepares a token verifier.
func NewOIDCProvider(ctx context.Context, issuer, clientID string, users UserResolver) (*OIDCProvider, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return &OIDCProvider{verifier: verifier, users: users}, nil
}

type oidcClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Authenticate verifies the ID token and resolves (or provisions) the user.
func (p *OIDCProvider) Authenticate(ctx context.Context, token string) (domain.User, error) {
	idToken, err := p.verifier.Verify(ctx, token)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}
	var claims oidcClaims
	if err := idToken.Claims(&claims); err != nil {
		return domain.User{}, ErrInvalidToken
	}
	email := strings.TrimSpace(strings.ToLower(claims.Email))
	if email == "" {
		return domain.User{}, ErrInvalidToken
	}

	user, found, err := p.users.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if found {
		return user, nil
	}

	now := time.Now().UTC()
	user = domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.TrimSpace(claims.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.Name == "" {
		user.Name = email
	}
	if err := p.users.SaveUser(user); err != nil {
		return domain.User{}, fmt.Errorf("provision user: %w", err)
	}
	return user, nil
}
