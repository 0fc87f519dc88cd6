package handler

import (
	"eventify/internal/configs"
	"eventify/internal/pkg/auth/jwt"
)

// AppDeps holds what the stub handlers need.
type AppDeps struct {
	// Store is the in-memory state served by the stub.
	Store *Store

	// Tokens issues and verifies bearer tokens.
	Tokens *jwt.Issuer

	// Environment selects permissive CORS in development.
	Environment string

	// Config carries the JWT secret and allowed origins.
	Config configs.StubConfig
}

// NewAppDeps wires a stub around store. Tokens are signed with cfg.JWTSecret.
func NewAppDeps(store *Store, environment string, cfg configs.StubConfig) *AppDeps {
	return &AppDeps{
		Store:       store,
		Tokens:      jwt.NewIssuer(cfg.JWTSecret, jwt.DefaultTTL),
		Environment: environment,
		Config:      cfg,
	}
}

// IsDevelopment reports whether the stub runs in the development environment.
func (d *AppDeps) IsDevelopment() bool {
	return d.Environment == "development"
}
