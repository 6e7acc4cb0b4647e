package inbound

import (
	"math"

	"github.com/shandysiswandi/astra/internal/otp/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/router"
)

const (
	// statsSegment shares the /otp/:token pattern; httprouter cannot mix a
	// static and a wildcard segment at the same position.
	statsSegment = "stats"

	// Out-of-range paging values are clamped just past the accepted range so
	// the usecase validator still rejects them.
	maxListLimit  = 100
	maxListOffset = math.MaxInt32
)

type HTTPEndpoint struct {
	uc uc
}

// Create issues a new OTP and supersedes the previous live one.
// @Summary Create OTP
// @Description Issues a one-time code for the user on the given channel.
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body CreateRequest true "OTP creation payload"
// @Success 201 {object} router.successResponse{data=CreateResponse} "OTP created"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /otp/create [post]
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Issue(r.Context(), usecase.IssueInput{
		UserID:    req.UserID,
		Channel:   req.OTPType,
		ExpiresIn: req.ExpiresIn,
	})
	if err != nil {
		return nil, err
	}

	return CreateResponse{
		OTP: CreatedOTPResponse{
			OTPResponse: toOTPResponse(out.Record),
			OTPCode:     out.Code,
		},
		ExpiresAt:           out.Record.ExpiresAt(),
		ExpiredPreviousOTPs: out.Superseded,
		NotificationSent:    out.NotificationSent,
	}, nil
}

// Verify checks a code against the user's live OTP.
// @Summary Verify OTP
// @Description Verifies a code and activates a pending account on success.
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "OTP verification payload"
// @Success 200 {object} router.successResponse{data=VerifyResponse} "OTP verified"
// @Failure 400 {object} router.errorResponse "Invalid code"
// @Failure 404 {object} router.errorResponse "No live OTP"
// @Failure 410 {object} router.errorResponse "OTP expired"
// @Failure 429 {object} router.errorResponse "Attempts exhausted"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /otp/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		UserID:  req.UserID,
		Code:    req.OTPCode,
		Channel: req.OTPType,
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		Verified:      true,
		UserActivated: out.UserActivated,
		OTPToken:      out.Record.Token,
		VerifiedAt:    out.VerifiedAt,
		AttemptsUsed:  out.AttemptsUsed,
		MaxAttempts:   out.Record.MaxAttempts,
	}, nil
}

// Status reports the live state of an OTP.
// @Summary OTP status
// @Tags OTP
// @Produce json
// @Param token path string true "OTP token"
// @Success 200 {object} router.successResponse{data=StatusResponse} "OTP status"
// @Failure 400 {object} router.errorResponse "Malformed token"
// @Failure 404 {object} router.errorResponse "OTP not found"
// @Router /otp/{token}/status [get]
func (h *HTTPEndpoint) Status(r *router.Request) (any, error) {
	out, err := h.uc.Status(r.Context(), r.GetParam("token"))
	if err != nil {
		return nil, err
	}

	return StatusResponse{
		Token:                out.Record.Token,
		IsUsed:               out.Record.Consumed,
		IsExpired:            out.Expired,
		State:                out.State.String(),
		CreatedAt:            out.Record.CreatedAt,
		ExpiresAt:            out.ExpiresAt,
		RemainingTimeSeconds: out.RemainingSeconds,
		OTPType:              out.Record.Channel.String(),
		AttemptCount:         out.Record.AttemptCount,
		MaxAttempts:          out.Record.MaxAttempts,
		RemainingAttempts:    out.RemainingAttempts,
		IsMaxAttemptsReached: out.MaxAttemptsReached,
		UserID:               out.Record.UserID,
	}, nil
}

// Cleanup runs one retention sweep.
// @Summary Cleanup OTPs
// @Description Deletes records past retention and abandoned pending accounts.
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body CleanupRequest false "Cleanup options"
// @Success 200 {object} router.successResponse{data=CleanupResponse} "Cleanup result"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /otp/cleanup [post]
func (h *HTTPEndpoint) Cleanup(r *router.Request) (any, error) {
	var req CleanupRequest
	if err := r.DecodeBody(&req, true); err != nil {
		return nil, err
	}

	out, err := h.uc.Cleanup(r.Context(), usecase.CleanupInput{DryRun: req.DryRun})
	if err != nil {
		return nil, err
	}

	return CleanupResponse{
		DryRun:               out.DryRun,
		ExpiredOTPsDeleted:   out.RecordsDeleted,
		InactiveUsersDeleted: out.AccountsDeleted,
		TotalCleanupCount:    out.Total(),
	}, nil
}

// Stats returns per-user OTP counters. Routed through Retrieve.
// @Summary OTP statistics
// @Tags OTP
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} router.successResponse{data=StatsResponse} "Counters"
// @Failure 400 {object} router.errorResponse "Missing or malformed user_id"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /otp/stats [get]
func (h *HTTPEndpoint) Stats(r *router.Request) (any, error) {
	userID, ok, err := r.GetQueryInt64("user_id")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "user_id", "user_id parameter is required")
	}

	out, err := h.uc.Stats(r.Context(), usecase.StatsInput{UserID: userID})
	if err != nil {
		return nil, err
	}

	return StatsResponse{
		UserID:     userID,
		TotalOTPs:  out.Total,
		UsedOTPs:   out.Used,
		ActiveOTPs: out.Active,
		OTPsLast24: out.Last24h,
		OTPsLast7d: out.Last7d,
	}, nil
}

// List returns OTP records, newest first.
// @Summary List OTPs
// @Tags OTP
// @Produce json
// @Param user_id query int false "User ID"
// @Param otp_type query string false "email, sms or authenticator"
// @Param is_used query bool false "Consumed flag"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} router.successResponse{data=OTPsResponse} "OTP list"
// @Failure 400 {object} router.errorResponse "Invalid filter"
// @Router /otp [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	in := usecase.ListInput{Channel: r.GetQuery("otp_type")}

	userID, ok, err := r.GetQueryInt64("user_id")
	if err != nil {
		return nil, err
	}
	if ok {
		in.UserID = &userID
	}

	used, ok, err := r.GetQueryBool("is_used")
	if err != nil {
		return nil, err
	}
	if ok {
		in.Consumed = &used
	}

	limit, _, err := r.GetQueryInt64("limit")
	if err != nil {
		return nil, err
	}
	offset, _, err := r.GetQueryInt64("offset")
	if err != nil {
		return nil, err
	}
	in.Limit = int32(min(max(limit, -1), maxListLimit+1))
	in.Offset = int32(min(max(offset, -1), maxListOffset))

	out, err := h.uc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}

	items := make([]OTPResponse, 0, len(out.Items))
	for _, rec := range out.Items {
		items = append(items, toOTPResponse(rec))
	}

	return OTPsResponse{OTPs: items, total: out.Total, limit: out.Limit, offset: in.Offset}, nil
}

// Retrieve returns one OTP without its code.
// @Summary Get OTP
// @Tags OTP
// @Produce json
// @Param token path string true "OTP token"
// @Success 200 {object} router.successResponse{data=OTPDetailResponse} "OTP detail"
// @Failure 400 {object} router.errorResponse "Malformed token"
// @Failure 404 {object} router.errorResponse "OTP not found"
// @Router /otp/{token} [get]
func (h *HTTPEndpoint) Retrieve(r *router.Request) (any, error) {
	token := r.GetParam("token")
	if token == statsSegment {
		return h.Stats(r)
	}

	rec, err := h.uc.Get(r.Context(), token)
	if err != nil {
		return nil, err
	}

	return OTPDetailResponse{OTP: toOTPResponse(*rec)}, nil
}

// Delete removes an OTP record.
// @Summary Delete OTP
// @Tags OTP
// @Param token path string true "OTP token"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Malformed token"
// @Failure 404 {object} router.errorResponse "OTP not found"
// @Router /otp/{token} [delete]
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	if err := h.uc.Delete(r.Context(), r.GetParam("token")); err != nil {
		return nil, err
	}

	return deletedResponse{}, nil
}
