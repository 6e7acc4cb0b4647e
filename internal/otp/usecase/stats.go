package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
)

type StatsInput struct {
	UserID int64 `validate:"required,gt=0"`
}

func (s *Usecase) Stats(ctx context.Context, in StatsInput) (*entity.Stats, error) {
	ctx, span := s.startSpan(ctx, "Stats")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	exists, err := s.directory.Exists(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check user existence", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}

	stats, err := s.repoDB.GetStats(ctx, in.UserID, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp stats", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return stats, nil
}
