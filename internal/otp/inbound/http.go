package inbound

import (
	"net/http"

	"github.com/shandysiswandi/astra/internal/pkg/router"
)

// RegisterHTTPEndpoint mounts the OTP routes. They are callable without a
// bearer token, the same way the signup flow reaches them.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.Public(http.MethodPost, "/otp/create", end.Create)
	r.Public(http.MethodPost, "/otp/verify", end.Verify)
	r.Public(http.MethodPost, "/otp/cleanup", end.Cleanup)

	r.Public(http.MethodGet, "/otp", end.List)
	r.Public(http.MethodGet, "/otp/:token", end.Retrieve)
	r.Public(http.MethodGet, "/otp/:token/status", end.Status)
	r.Public(http.MethodDelete, "/otp/:token", end.Delete)
}
