// Package http holds the composition types shared by cmd/api and the router.
package http

import (
	"context"

	"leadscout_backend/internal/events"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/validator"
)

// RouterConfig is the slice of configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs /api/health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is assembled in cmd/api and consumed by router.New.
type App struct {
	Config    RouterConfig
	Logger    *logger.Logger
	Health    HealthChecker
	EventBus  events.Bus
	Validator *validator.Validator
	Modules   []Module
}
