package auth

import (
	"context"

	"draftforge/pkg/domain"
	"draftforge/pkg/store"
)

// LocalProvider authenticates session tokens issued by this service.
type LocalProvider struct {
	sessions store.SessionStore
	users    UserResolver
}

// NewLocalProvider builds the local-token identity provider.
func NewLocalProvider(sessions store.SessionStore, users UserResolver) *LocalProvider {
	return &LocalProvider{sessions: sessions, users: users}
}

// Authenticate resolves a session token to its user.
func (p *LocalProvider) Authenticate(_ context.Context, token string) (domain.User, error) {
	uid, ok, err := p.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, ErrInvalidToken
	}
	user, found, err := p.users.GetUserByID(uid)
	if err != nil || !found {
		return domain.User{}, ErrInvalidToken
	}
	return user, nil
}
