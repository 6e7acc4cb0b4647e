package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/astra/internal/identity/entity"
	"github.com/shandysiswandi/astra/internal/identity/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/router"
)

type uc interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Me(ctx context.Context) (*entity.User, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.Public(http.MethodPost, "/api/v1/identity/signup", end.Signup)
	r.Public(http.MethodPost, "/api/v1/identity/login", end.Login)

	// need authenticated
	r.GET("/api/v1/identity/me", end.Me)
}
