package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
)

type ConsumeUserRegisteredInput struct {
	UserID int64  `validate:"required,gt=0"`
	Email  string `validate:"required,email"`
}

// ConsumeUserRegistered issues the first email code of a new account. Only
// store failures are returned so the message can be redelivered.
func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	pending, err := s.directory.IsPendingVerification(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check pending verification", "user_id", in.UserID, "error", err)
		return err
	}
	if !pending {
		slog.InfoContext(ctx, "user is not pending verification, skip otp issuance", "user_id", in.UserID)
		return nil
	}

	out, err := s.Issue(ctx, IssueInput{UserID: in.UserID, Channel: entity.ChannelEmail.String()})
	if err != nil {
		if goerror.IsServer(err) {
			return err
		}
		slog.WarnContext(ctx, "otp not issued for registered user", "user_id", in.UserID, "error", err)
		return nil
	}

	slog.InfoContext(ctx, "otp issued for registered user",
		"user_id", in.UserID,
		"token", out.Record.Token,
		"notification_sent", out.NotificationSent,
	)

	return nil
}
