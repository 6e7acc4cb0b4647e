package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/sqlc"
)

func (s *DB) GetOTP(ctx context.Context, token string) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "GetOTP")
	defer func() { s.endSpan(span, err) }()

	id, err := parseToken(token)
	if err != nil {
		return nil, err
	}

	row, err := s.query.GetOTPByToken(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	rec := toEntity(row)
	return &rec, nil
}

func (s *DB) ListOTP(ctx context.Context, filter entity.ListFilter) (_ []entity.OTP, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListOTP")
	defer func() { s.endSpan(span, err) }()

	var (
		userID   pgtype.Int8
		channel  pgtype.Int2
		consumed pgtype.Bool
	)
	if filter.UserID != nil {
		userID = pgtype.Int8{Int64: *filter.UserID, Valid: true}
	}
	if filter.Channel != nil {
		channel = pgtype.Int2{Int16: int16(*filter.Channel), Valid: true}
	}
	if filter.Consumed != nil {
		consumed = pgtype.Bool{Bool: *filter.Consumed, Valid: true}
	}

	total, err := s.query.CountOTPs(ctx, sqlc.CountOTPsParams{
		UserID:   userID,
		Channel:  channel,
		Consumed: consumed,
	})
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	if total == 0 {
		return []entity.OTP{}, 0, nil
	}

	rows, err := s.query.ListOTPs(ctx, sqlc.ListOTPsParams{
		UserID:   userID,
		Channel:  channel,
		Consumed: consumed,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return toEntities(rows), total, nil
}

func (s *DB) CountOTPsBefore(ctx context.Context, cutoff time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountOTPsBefore")
	defer func() { s.endSpan(span, err) }()

	n, err := s.query.CountOTPsCreatedBefore(ctx, toTimestamptz(cutoff))
	if err != nil {
		return 0, s.mapError(err)
	}

	return n, nil
}

func (s *DB) UserIDsWithUnexpiredOTP(ctx context.Context, userIDs []int64, now time.Time) (_ []int64, err error) {
	ctx, span := s.startSpan(ctx, "UserIDsWithUnexpiredOTP")
	defer func() { s.endSpan(span, err) }()

	if len(userIDs) == 0 {
		return nil, nil
	}

	ids, err := s.query.ListUserIDsWithUnexpiredOTP(ctx, sqlc.ListUserIDsWithUnexpiredOTPParams{
		UserIds: userIDs,
		Now:     toTimestamptz(now),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return ids, nil
}

func (s *DB) GetStats(ctx context.Context, userID int64, now time.Time) (_ *entity.Stats, err error) {
	ctx, span := s.startSpan(ctx, "GetStats")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetOTPStats(ctx, sqlc.GetOTPStatsParams{
		Now:    toTimestamptz(now),
		UserID: userID,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.Stats{
		Total:   row.Total,
		Used:    row.Used,
		Active:  row.Active,
		Last24h: row.Last24h,
		Last7d:  row.Last7d,
	}, nil
}
