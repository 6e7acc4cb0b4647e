package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/uid"
)

func (s *Usecase) Delete(ctx context.Context, token string) error {
	ctx, span := s.startSpan(ctx, "Delete")
	defer span.End()

	if !uid.IsCanonicalUUID(token) {
		return errInvalidToken()
	}

	err := s.repoDB.DeleteOTP(ctx, token)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness(msgOTPNotFound, goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete otp", "token", token, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "otp deleted", "token", token)
	return nil
}
