package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
)

type CleanupInput struct {
	DryRun bool
}

// Cleanup removes records past the retention window, then deletes pending
// accounts that no longer have an unexpired, unconsumed record to verify with.
func (s *Usecase) Cleanup(ctx context.Context, in CleanupInput) (*entity.CleanupResult, error) {
	ctx, span := s.startSpan(ctx, "Cleanup")
	defer span.End()

	now := s.clock.Now()
	cutoff := now.Add(-entity.RetentionWindow)
	result := &entity.CleanupResult{DryRun: in.DryRun}

	var err error
	if in.DryRun {
		result.RecordsDeleted, err = s.repoDB.CountOTPsBefore(ctx, cutoff)
	} else {
		var archive func(context.Context, []entity.OTP) error
		if s.archiver != nil {
			archive = func(ctx context.Context, records []entity.OTP) error {
				return s.archiver.Archive(ctx, records, now)
			}
		}
		result.RecordsDeleted, err = s.repoDB.DeleteOTPsBefore(ctx, cutoff, archive)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to clean up otp records", "cutoff", cutoff, "dry_run", in.DryRun, "error", err)
		return nil, goerror.NewServer(err)
	}

	pending, err := s.directory.PendingVerificationUserIDs(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list pending users", "error", err)
		return nil, goerror.NewServer(err)
	}

	if len(pending) > 0 {
		live, err := s.repoDB.UserIDsWithUnexpiredOTP(ctx, pending, now)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo list users with live otp", "error", err)
			return nil, goerror.NewServer(err)
		}

		abandoned := lo.Without(pending, live...)
		switch {
		case len(abandoned) == 0:
		case in.DryRun:
			result.AccountsDeleted = int64(len(abandoned))
		default:
			result.AccountsDeleted, err = s.directory.DeleteUnverified(ctx, abandoned, now)
			if err != nil {
				slog.ErrorContext(ctx, "failed to delete unverified users", "count", len(abandoned), "error", err)
				return nil, goerror.NewServer(err)
			}
		}
	}

	slog.InfoContext(ctx, "otp cleanup finished",
		"dry_run", in.DryRun,
		"records_deleted", result.RecordsDeleted,
		"accounts_deleted", result.AccountsDeleted,
	)

	return result, nil
}
