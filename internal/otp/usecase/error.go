package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
)

const (
	msgUserNotFound     = "User with this ID does not exist."
	msgOTPNotFound      = "OTP not found"
	msgInvalidToken     = "Token must be a valid UUID format"
	msgVerifyNotFound   = "Invalid OTP code or OTP type."
	msgVerifyExpired    = "OTP has expired. Please request a new one."
	msgVerifyExhausted  = "Maximum verification attempts exceeded. OTP has been expired. Please request a new one."
	msgVerifyInvalidFmt = "Invalid OTP code. %d attempt(s) remaining."
)

func errInvalidChannel(name string) error {
	return goerror.NewInvalidInput(nil, "otp_type",
		fmt.Sprintf("%q is not a valid choice, expected one of %s", name, strings.Join(entity.ChannelNames(), ", ")))
}

func errInvalidToken() error {
	return goerror.NewInvalidInput(nil, "token", msgInvalidToken)
}

func errVerifyNotFound() error {
	return goerror.NewBusinessDetails(msgVerifyNotFound, goerror.CodeNotFound, map[string]any{
		"error_type": "not_found",
	})
}

func errVerifyExpired(rec entity.OTP) error {
	return goerror.NewBusinessDetails(msgVerifyExpired, goerror.CodeGone, map[string]any{
		"expired_at":     rec.ExpiresAt().UTC().Format(time.RFC3339),
		"remaining_time": 0,
		"error_type":     "expired",
	})
}

func errVerifyExhausted(rec entity.OTP) error {
	return goerror.NewBusinessDetails(msgVerifyExhausted, goerror.CodeTooManyRequest, map[string]any{
		"attempts_used":      rec.AttemptCount,
		"max_attempts":       rec.MaxAttempts,
		"remaining_attempts": rec.RemainingAttempts(),
		"error_type":         "max_attempts_exceeded",
	})
}

func errVerifyInvalidCode(rec entity.OTP) error {
	return goerror.NewBusinessDetails(fmt.Sprintf(msgVerifyInvalidFmt, rec.RemainingAttempts()), goerror.CodeInvalidFormat, map[string]any{
		"attempts_used":      rec.AttemptCount,
		"max_attempts":       rec.MaxAttempts,
		"remaining_attempts": rec.RemainingAttempts(),
		"error_type":         "invalid_code",
	})
}
