// Package app holds the orchestration layer between HTTP handlers and
// storage, AI generation, and export.
package app

import (
	"fmt"

	"draftforge/pkg/ai"
	"draftforge/pkg/auth"
	"draftforge/pkg/storage"
	"draftforge/pkg/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL string
	Store       store.Store

	Sessions  store.SessionStore
	Identity  auth.IdentityProvider
	Generator ai.TextGenerator

	// Archive is optional; when nil exports are only streamed to the caller.
	Archive storage.ObjectStore
}

// App is the core application service wiring storage, identity, AI
// generation, and export together.
type App struct {
	store     store.Store
	sessions  store.SessionStore
	identity  auth.IdentityProvider
	generator ai.TextGenerator
	archive   storage.ObjectStore
}

// New constructs the application. A nil cfg.Store falls back to the
// Postgres store built from DatabaseURL.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("text generator required")
	}
	identity := cfg.Identity
	if identity == nil {
		identity = auth.NewLocalProvider(cfg.Sessions, dataStore)
	}
	return &App{
		store:     dataStore,
		sessions:  cfg.Sessions,
		identity:  identity,
		generator: cfg.Generator,
		archive:   cfg.Archive,
	}, nil
}
