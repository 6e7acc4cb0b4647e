package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/uid"
)

type StatusOutput struct {
	Record             entity.OTP
	State              entity.State
	Expired            bool
	ExpiresAt          time.Time
	RemainingSeconds   int64
	RemainingAttempts  int32
	MaxAttemptsReached bool
}

func (s *Usecase) Status(ctx context.Context, token string) (*StatusOutput, error) {
	ctx, span := s.startSpan(ctx, "Status")
	defer span.End()

	rec, err := s.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	return &StatusOutput{
		Record:             *rec,
		State:              rec.State(now),
		Expired:            rec.IsExpired(now),
		ExpiresAt:          rec.ExpiresAt(),
		RemainingSeconds:   rec.RemainingSeconds(now),
		RemainingAttempts:  rec.RemainingAttempts(),
		MaxAttemptsReached: rec.IsExhausted(),
	}, nil
}

// findByToken rejects malformed tokens before touching the store.
func (s *Usecase) findByToken(ctx context.Context, token string) (*entity.OTP, error) {
	if !uid.IsCanonicalUUID(token) {
		return nil, errInvalidToken()
	}

	rec, err := s.repoDB.GetOTP(ctx, token)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness(msgOTPNotFound, goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp", "token", token, "error", err)
		return nil, goerror.NewServer(err)
	}

	return rec, nil
}
