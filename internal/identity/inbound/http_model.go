package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/astra/internal/identity/entity"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	FullName  string    `json:"full_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FullName:  u.FullName,
		Status:    u.Status.String(),
		CreatedAt: u.CreatedAt,
	}
}

type SignupResponse struct {
	User UserResponse `json:"user"`
}

func (SignupResponse) Message() string {
	return "Signup successful. Please check your email for the OTP code to verify your account."
}

func (SignupResponse) StatusCode() int { return http.StatusCreated }

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

type MeResponse struct {
	User UserResponse `json:"user"`
}
