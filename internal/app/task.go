package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/otp/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/router"
	"github.com/shandysiswandi/astra/migrations"
)

// ErrOTPModuleDisabled is returned by Cleanup when modules.otp.enabled is false.
var ErrOTPModuleDisabled = errors.New("otp module is disabled")

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func (healthResponse) Message() string { return "Service is healthy" }

func (a *App) health(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := a.dbConn.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "health check failed", "component", "database", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := a.cacheConn.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "health check failed", "component", "redis", "error", err)
		return nil, goerror.NewServer(err)
	}

	return healthResponse{Status: "ok", Database: "ok", Redis: "ok"}, nil
}

// Cleanup runs one OTP cleanup pass outside the HTTP server.
func (a *App) Cleanup(ctx context.Context, dryRun bool) (*entity.CleanupResult, error) {
	if a.otp == nil {
		return nil, ErrOTPModuleDisabled
	}

	return a.otp.Cleanup(ctx, usecase.CleanupInput{DryRun: dryRun})
}

// Migrate applies the embedded schema and returns the versions it ran.
func (a *App) Migrate(ctx context.Context) ([]string, error) {
	return migrations.Apply(ctx, a.dbConn)
}
