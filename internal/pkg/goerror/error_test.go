package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "server", err: NewServer(errors.New("db down")), want: http.StatusInternalServerError},
		{name: "invalid format", err: NewInvalidFormat("Invalid token"), want: http.StatusBadRequest},
		{name: "invalid input", err: NewInvalidInput(nil, "expires_in", "too small"), want: http.StatusBadRequest},
		{name: "not found", err: NewBusiness("missing", CodeNotFound), want: http.StatusNotFound},
		{name: "gone", err: NewBusiness("expired", CodeGone), want: http.StatusGone},
		{name: "too many", err: NewBusiness("exhausted", CodeTooManyRequest), want: http.StatusTooManyRequests},
		{name: "forbidden", err: NewBusiness("nope", CodeForbidden), want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			require.True(t, errors.As(tt.err, &gerr))
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}

func TestNewInvalidInput_FieldPairs(t *testing.T) {
	err := NewInvalidInput(nil, "otp_code", "is required", "otp_code", "must be numeric", "user_id", "is required")

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, []string{"is required", "must be numeric"}, gerr.Fields()["otp_code"])
	assert.Equal(t, []string{"is required"}, gerr.Fields()["user_id"])
}

func TestNewInvalidInput_OddPairsIsFormatError(t *testing.T) {
	var gerr *Error
	require.True(t, errors.As(NewInvalidInput(nil, "only-key"), &gerr))
	assert.Equal(t, CodeInvalidFormat, gerr.Code())
}

func TestNewServer_HidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := NewServer(cause)

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, "Internal server error", gerr.Msg())
	assert.ErrorIs(t, err, cause)
}

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	base := newError(nil, "Invalid OTP code", TypeBusiness, CodeInvalidFormat)
	withDetail := base.WithDetail("remaining_attempts", 2)

	assert.Nil(t, base.Details())
	assert.Equal(t, 2, withDetail.Details()["remaining_attempts"])
}

func TestNewBusinessDetails(t *testing.T) {
	details := map[string]any{"error_type": "expired", "remaining_time": 0}
	err := NewBusinessDetails("OTP has expired. Please request a new one.", CodeGone, details)
	details["error_type"] = "mutated"

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusGone, gerr.StatusCode())
	assert.Equal(t, "expired", gerr.Details()["error_type"])
}

func TestIsServer(t *testing.T) {
	assert.True(t, IsServer(NewServer(errors.New("boom"))))
	assert.False(t, IsServer(NewBusiness("missing", CodeNotFound)))
	assert.False(t, IsServer(errors.New("plain")))
}
