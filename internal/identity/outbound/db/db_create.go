package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/astra/internal/identity/entity"
	"github.com/shandysiswandi/astra/internal/pkg/sqlc"
)

func (s *DB) CreateUser(ctx context.Context, in entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError(s.query.CreateUser(ctx, sqlc.CreateUserParams{
		ID:        in.ID,
		Email:     in.Email,
		Phone:     in.Phone,
		FullName:  in.FullName,
		Password:  in.Password,
		Status:    int16(in.Status),
		CreatedAt: pgtype.Timestamptz{Valid: true, Time: in.CreatedAt},
	}))
	return err
}
