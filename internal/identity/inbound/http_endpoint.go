package inbound

import (
	"github.com/shandysiswandi/astra/internal/identity/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for signup, login and the current profile.
type HTTPEndpoint struct {
	uc uc
}

// Signup creates a pending account and triggers the verification OTP.
// @Summary Sign up
// @Description Creates an account in pending state. An email OTP is sent asynchronously.
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 201 {object} router.successResponse{data=SignupResponse} "Account created"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/signup [post]
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Signup(r.Context(), usecase.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		return nil, err
	}

	return SignupResponse{User: toUserResponse(out.User)}, nil
}

// Login authenticates an active user and returns an access token.
// @Summary Authenticate user
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 403 {object} router.errorResponse "Account pending verification"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: out.AccessToken,
		TokenType:   "Bearer",
		User:        toUserResponse(out.User),
	}, nil
}

// Me returns the authenticated user's profile.
// @Summary Current user
// @Tags Identity
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=MeResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/v1/identity/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	user, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return MeResponse{User: toUserResponse(*user)}, nil
}
