// Package directory answers the OTP module's questions about user accounts
// straight from the users table.
package directory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/sqlc"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// statusPending mirrors the identity module's pending-verification status.
const statusPending int16 = 1

type Directory struct {
	query *sqlc.Queries
	ins   instrument.Instrumentation
}

func New(conn *pgxpool.Pool, ins instrument.Instrumentation) *Directory {
	return &Directory{query: sqlc.New(conn), ins: ins}
}

func (d *Directory) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return d.ins.Tracer("otp.outbound.directory").Start(ctx, name)
}

func (d *Directory) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (d *Directory) Exists(ctx context.Context, userID int64) (_ bool, err error) {
	ctx, span := d.startSpan(ctx, "Exists")
	defer func() { d.endSpan(span, err) }()

	return d.query.UserExists(ctx, userID)
}

func (d *Directory) GetContact(ctx context.Context, userID int64) (_ *entity.Contact, err error) {
	ctx, span := d.startSpan(ctx, "GetContact")
	defer func() { d.endSpan(span, err) }()

	row, err := d.query.GetUserByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &entity.Contact{UserID: row.ID, Email: row.Email, Phone: row.Phone, Name: row.FullName}, nil
}

func (d *Directory) Activate(ctx context.Context, userID int64) (_ bool, err error) {
	ctx, span := d.startSpan(ctx, "Activate")
	defer func() { d.endSpan(span, err) }()

	n, err := d.query.ActivatePendingUser(ctx, userID)
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (d *Directory) IsPendingVerification(ctx context.Context, userID int64) (_ bool, err error) {
	ctx, span := d.startSpan(ctx, "IsPendingVerification")
	defer func() { d.endSpan(span, err) }()

	status, err := d.query.GetUserStatus(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return status == statusPending, nil
}

func (d *Directory) PendingVerificationUserIDs(ctx context.Context) (_ []int64, err error) {
	ctx, span := d.startSpan(ctx, "PendingVerificationUserIDs")
	defer func() { d.endSpan(span, err) }()

	return d.query.ListPendingUserIDs(ctx)
}

// DeleteUnverified deletes the given accounts that are still pending and have
// no code live at now. Accounts verified in the meantime are left alone.
func (d *Directory) DeleteUnverified(ctx context.Context, userIDs []int64, now time.Time) (_ int64, err error) {
	ctx, span := d.startSpan(ctx, "DeleteUnverified")
	defer func() { d.endSpan(span, err) }()

	if len(userIDs) == 0 {
		return 0, nil
	}

	return d.query.DeleteUnverifiedUsers(ctx, sqlc.DeleteUnverifiedUsersParams{
		Ids: userIDs,
		Now: pgtype.Timestamptz{Time: now, Valid: true},
	})
}
