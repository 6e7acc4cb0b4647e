package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/sqlc"
)

// CreateOTP supersedes the live record of (user, channel) and inserts in. The
// owner row is locked first, so concurrent issuances for one user queue up
// instead of racing on otps_user_channel_live_key.
func (s *DB) CreateOTP(ctx context.Context, in entity.OTP) (superseded int64, err error) {
	ctx, span := s.startSpan(ctx, "CreateOTP")
	defer func() { s.endSpan(span, err) }()

	token, err := parseToken(in.Token)
	if err != nil {
		return 0, err
	}

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	wtx := s.query.WithTx(tx)

	if _, err := wtx.LockOTPOwner(ctx, in.UserID); err != nil {
		return 0, s.mapError(err)
	}

	superseded, err = wtx.SupersedeLiveOTPs(ctx, sqlc.SupersedeLiveOTPsParams{
		UserID:  in.UserID,
		Channel: int16(in.Channel),
	})
	if err != nil {
		return 0, s.mapError(err)
	}

	if err := wtx.CreateOTP(ctx, sqlc.CreateOTPParams{
		Token:       token,
		UserID:      in.UserID,
		Code:        in.CodeDigest,
		Channel:     int16(in.Channel),
		CreatedAt:   toTimestamptz(in.CreatedAt),
		ExpiresIn:   int32(in.ExpiresIn / time.Second),
		MaxAttempts: in.MaxAttempts,
	}); err != nil {
		return 0, s.mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, s.mapError(err)
	}

	return superseded, nil
}
