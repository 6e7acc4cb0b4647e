package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
)

const issueConflictRetries = 3

type IssueInput struct {
	UserID  int64 `validate:"required,gt=0"`
	Channel string
	// ExpiresIn is in seconds; nil selects the configured default.
	ExpiresIn *int
}

type IssueOutput struct {
	Record           entity.OTP
	Code             string
	Superseded       int64
	NotificationSent bool
}

func (s *Usecase) Issue(ctx context.Context, in IssueInput) (*IssueOutput, error) {
	ctx, span := s.startSpan(ctx, "Issue")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ch, err := parseChannel(in.Channel)
	if err != nil {
		return nil, err
	}

	expiresIn := s.defaultExpiresIn()
	if in.ExpiresIn != nil {
		expiresIn = time.Duration(*in.ExpiresIn) * time.Second
		if expiresIn < entity.MinExpiresIn || expiresIn > entity.MaxExpiresIn {
			return nil, goerror.NewInvalidInput(nil, "expires_in", fmt.Sprintf(
				"expires_in must be between %d and %d seconds",
				int(entity.MinExpiresIn/time.Second), int(entity.MaxExpiresIn/time.Second),
			))
		}
	}

	exists, err := s.directory.Exists(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check user existence", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		return nil, goerror.NewBusiness(msgUserNotFound, goerror.CodeNotFound)
	}

	code, err := s.codeGen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	digest, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	var (
		rec        entity.OTP
		superseded int64
	)
	backoff := retry.WithMaxRetries(issueConflictRetries, retry.NewFibonacci(10*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		rec = entity.OTP{
			Token:       s.tokenID.Generate(),
			UserID:      in.UserID,
			CodeDigest:  string(digest),
			Channel:     ch,
			CreatedAt:   s.clock.Now(),
			ExpiresIn:   expiresIn,
			MaxAttempts: s.maxAttempts(),
		}

		n, err := s.repoDB.CreateOTP(ctx, rec)
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "concurrent otp issuance, retrying", "user_id", in.UserID, "channel", ch.String())
			return retry.RetryableError(err)
		}
		superseded = n
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create otp", "user_id", in.UserID, "channel", ch.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	return &IssueOutput{
		Record:           rec,
		Code:             code,
		Superseded:       superseded,
		NotificationSent: s.notify(ctx, rec, code),
	}, nil
}

// notify never fails issuance: every problem is logged and reported as false.
func (s *Usecase) notify(ctx context.Context, rec entity.OTP, code string) bool {
	contact, err := s.directory.GetContact(ctx, rec.UserID)
	if err != nil {
		slog.WarnContext(ctx, "failed to get user contact for otp delivery", "user_id", rec.UserID, "error", err)
		return false
	}

	sent := s.notifier.Send(ctx, *contact, code, rec.Channel, rec.ExpiresAt())
	if !sent {
		slog.WarnContext(ctx, "otp was not delivered", "user_id", rec.UserID, "channel", rec.Channel.String())
	}

	return sent
}
