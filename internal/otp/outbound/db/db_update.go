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

// VerifyOTP holds a row lock on the live record of (user, channel) while the
// verdict is decided and applied, so concurrent attempts are serialized.
func (s *DB) VerifyOTP(ctx context.Context, userID int64, ch entity.Channel, judge func(entity.OTP) entity.Verdict) (_ *entity.OTP, _ entity.Verdict, err error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	wtx := s.query.WithTx(tx)

	row, err := wtx.GetLiveOTPForUpdate(ctx, sqlc.GetLiveOTPForUpdateParams{
		UserID:  userID,
		Channel: int16(ch),
	})
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	rec := toEntity(row)
	verdict := judge(rec)

	switch verdict {
	case entity.VerdictMatch, entity.VerdictExhausted:
		if err := wtx.ConsumeOTP(ctx, row.Token); err != nil {
			return nil, 0, s.mapError(err)
		}
		rec.Consumed = true

	case entity.VerdictMismatch:
		inc, err := wtx.IncrementOTPAttempt(ctx, row.Token)
		if err != nil {
			return nil, 0, s.mapError(err)
		}
		rec.AttemptCount = inc.AttemptCount
		rec.Consumed = inc.Consumed

	case entity.VerdictExpired:
		return &rec, verdict, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, s.mapError(err)
	}

	return &rec, verdict, nil
}

func (s *DB) DeleteOTP(ctx context.Context, token string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteOTP")
	defer func() { s.endSpan(span, err) }()

	id, err := parseToken(token)
	if err != nil {
		return err
	}

	n, err := s.query.DeleteOTPByToken(ctx, id)
	if err != nil {
		return s.mapError(err)
	}
	if n == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

// DeleteOTPsBefore removes every record created before cutoff. The deleted
// rows are handed to archive inside the transaction.
func (s *DB) DeleteOTPsBefore(ctx context.Context, cutoff time.Time, archive func(context.Context, []entity.OTP) error) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteOTPsBefore")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	rows, err := s.query.WithTx(tx).DeleteOTPsCreatedBefore(ctx, toTimestamptz(cutoff))
	if err != nil {
		return 0, s.mapError(err)
	}

	if archive != nil && len(rows) > 0 {
		if err := archive(ctx, toEntities(rows)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, s.mapError(err)
	}

	return int64(len(rows)), nil
}
