package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
)

type CreateRequest struct {
	UserID    int64  `json:"user_id"`
	OTPType   string `json:"otp_type"`
	ExpiresIn *int   `json:"expires_in"`
}

type VerifyRequest struct {
	UserID  int64  `json:"user_id"`
	OTPCode string `json:"otp_code"`
	OTPType string `json:"otp_type"`
}

type CleanupRequest struct {
	DryRun bool `json:"dry_run"`
}

type OTPResponse struct {
	Token        string    `json:"token"`
	UserID       int64     `json:"user_id"`
	OTPType      string    `json:"otp_type"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
	IsUsed       bool      `json:"is_used"`
	AttemptCount int32     `json:"attempt_count"`
	MaxAttempts  int32     `json:"max_attempts"`
}

func toOTPResponse(rec entity.OTP) OTPResponse {
	return OTPResponse{
		Token:        rec.Token,
		UserID:       rec.UserID,
		OTPType:      rec.Channel.String(),
		CreatedAt:    rec.CreatedAt,
		ExpiresIn:    int64(rec.ExpiresIn / time.Second),
		ExpiresAt:    rec.ExpiresAt(),
		IsUsed:       rec.Consumed,
		AttemptCount: rec.AttemptCount,
		MaxAttempts:  rec.MaxAttempts,
	}
}

type CreatedOTPResponse struct {
	OTPResponse
	OTPCode string `json:"otp_code"`
}

type CreateResponse struct {
	OTP                 CreatedOTPResponse `json:"otp"`
	ExpiresAt           time.Time          `json:"expires_at"`
	ExpiredPreviousOTPs int64              `json:"expired_previous_otps"`
	NotificationSent    bool               `json:"notification_sent"`
}

func (CreateResponse) Message() string { return "OTP created successfully" }

func (CreateResponse) StatusCode() int { return http.StatusCreated }

type VerifyResponse struct {
	Verified      bool      `json:"verified"`
	UserActivated bool      `json:"user_activated"`
	OTPToken      string    `json:"otp_token"`
	VerifiedAt    time.Time `json:"verified_at"`
	AttemptsUsed  int32     `json:"attempts_used"`
	MaxAttempts   int32     `json:"max_attempts"`
}

func (r VerifyResponse) Message() string {
	if r.UserActivated {
		return "OTP verified successfully and user activated"
	}
	return "OTP verified successfully"
}

type StatusResponse struct {
	Token                string    `json:"token"`
	IsUsed               bool      `json:"is_used"`
	IsExpired            bool      `json:"is_expired"`
	State                string    `json:"state"`
	CreatedAt            time.Time `json:"created_at"`
	ExpiresAt            time.Time `json:"expires_at"`
	RemainingTimeSeconds int64     `json:"remaining_time_seconds"`
	OTPType              string    `json:"otp_type"`
	AttemptCount         int32     `json:"attempt_count"`
	MaxAttempts          int32     `json:"max_attempts"`
	RemainingAttempts    int32     `json:"remaining_attempts"`
	IsMaxAttemptsReached bool      `json:"is_max_attempts_reached"`
	UserID               int64     `json:"user_id"`
}

type CleanupResponse struct {
	DryRun               bool  `json:"dry_run"`
	ExpiredOTPsDeleted   int64 `json:"expired_otps_deleted"`
	InactiveUsersDeleted int64 `json:"inactive_users_deleted"`
	TotalCleanupCount    int64 `json:"total_cleanup_count"`
}

func (r CleanupResponse) Message() string {
	if r.DryRun {
		return "Cleanup dry run completed"
	}
	return "Cleanup completed successfully"
}

type StatsResponse struct {
	UserID     int64 `json:"user_id"`
	TotalOTPs  int64 `json:"total_otps"`
	UsedOTPs   int64 `json:"used_otps"`
	ActiveOTPs int64 `json:"active_otps"`
	OTPsLast24 int64 `json:"otps_last_24h"`
	OTPsLast7d int64 `json:"otps_last_7d"`
}

type OTPsResponse struct {
	OTPs []OTPResponse `json:"otps"`
	// meta
	total  int64
	limit  int32
	offset int32
}

func (r OTPsResponse) Meta() map[string]any {
	return map[string]any{
		"total":  r.total,
		"limit":  r.limit,
		"offset": r.offset,
	}
}

type OTPDetailResponse struct {
	OTP OTPResponse `json:"otp"`
}

type deletedResponse struct{}

func (deletedResponse) StatusCode() int { return http.StatusNoContent }
