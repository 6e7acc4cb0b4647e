package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
)

type VerifyInput struct {
	UserID  int64  `validate:"required,gt=0"`
	Code    string `validate:"required,len=6,digits"`
	Channel string
}

type VerifyOutput struct {
	Record        entity.OTP
	UserActivated bool
	AttemptsUsed  int32
	VerifiedAt    time.Time
}

func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ch, err := parseChannel(in.Channel)
	if err != nil {
		return nil, err
	}

	exists, err := s.directory.Exists(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check user existence", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		return nil, goerror.NewBusiness(msgUserNotFound, goerror.CodeNotFound)
	}

	now := s.clock.Now()
	judge := func(rec entity.OTP) entity.Verdict {
		return entity.Judge(rec, now, s.hmac.Verify(rec.CodeDigest, in.Code))
	}

	rec, verdict, err := s.repoDB.VerifyOTP(ctx, in.UserID, ch, judge)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errVerifyNotFound()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo verify otp", "user_id", in.UserID, "channel", ch.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	switch verdict {
	case entity.VerdictExpired:
		return nil, errVerifyExpired(*rec)

	case entity.VerdictExhausted:
		slog.WarnContext(ctx, "otp attempts exhausted", "user_id", in.UserID, "token", rec.Token)
		return nil, errVerifyExhausted(*rec)

	case entity.VerdictMismatch:
		if rec.IsExhausted() {
			slog.WarnContext(ctx, "otp attempts exhausted", "user_id", in.UserID, "token", rec.Token)
			return nil, errVerifyExhausted(*rec)
		}
		return nil, errVerifyInvalidCode(*rec)
	}

	activated, err := s.directory.Activate(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to activate user", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOutput{
		Record:        *rec,
		UserActivated: activated,
		AttemptsUsed:  rec.AttemptCount + 1,
		VerifiedAt:    now,
	}, nil
}
