package usecase

import (
	"context"

	"github.com/shandysiswandi/astra/internal/otp/entity"
)

func (s *Usecase) Get(ctx context.Context, token string) (*entity.OTP, error) {
	ctx, span := s.startSpan(ctx, "Get")
	defer span.End()

	return s.findByToken(ctx, token)
}
