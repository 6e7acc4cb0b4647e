package db

import (
	"context"

	"github.com/shandysiswandi/astra/internal/identity/entity"
)

func (s *DB) GetUserCredentialByEmail(ctx context.Context, email string) (_ *entity.UserCredential, err error) {
	ctx, span := s.startSpan(ctx, "GetUserCredentialByEmail")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.UserCredential{User: toUser(row), Password: row.Password}, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetUserByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	user := toUser(row)
	return &user, nil
}
