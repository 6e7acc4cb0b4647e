package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/sqlc"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn  *pgxpool.Pool
	query *sqlc.Queries
	ins   instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{
		conn:  conn,
		query: sqlc.New(conn),
		ins:   ins,
	}
}

// - 23505 unique violation: a concurrent issuance won otps_user_channel_live_key
// - 23503 foreign key violation: the user row is gone
func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return goerror.ErrConflict
		case "23503":
			return goerror.ErrNotFound
		}
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otp.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func toTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// parseToken maps a malformed token to not found; callers validate the
// format before reaching the store.
func parseToken(token string) (uuid.UUID, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, goerror.ErrNotFound
	}
	return id, nil
}

func toEntity(row sqlc.Otp) entity.OTP {
	return entity.OTP{
		Token:        row.Token.String(),
		UserID:       row.UserID,
		CodeDigest:   row.Code,
		Channel:      entity.Channel(row.Channel),
		CreatedAt:    row.CreatedAt.Time,
		ExpiresIn:    time.Duration(row.ExpiresIn) * time.Second,
		Consumed:     row.Consumed,
		AttemptCount: row.AttemptCount,
		MaxAttempts:  row.MaxAttempts,
	}
}

func toEntities(rows []sqlc.Otp) []entity.OTP {
	items := make([]entity.OTP, 0, len(rows))
	for _, row := range rows {
		items = append(items, toEntity(row))
	}
	return items
}
