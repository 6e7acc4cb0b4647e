package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ListInput struct {
	UserID   *int64 `validate:"omitempty,gt=0"`
	Channel  string
	Consumed *bool
	Limit    int32 `validate:"gte=0,lte=100"`
	Offset   int32 `validate:"gte=0"`
}

type ListOutput struct {
	Items []entity.OTP
	Total int64
	Limit int32
}

func (s *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	filter := entity.ListFilter{
		UserID:   in.UserID,
		Consumed: in.Consumed,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = defaultListLimit
	}
	filter.Limit = min(filter.Limit, maxListLimit)

	if in.Channel != "" {
		ch, err := parseChannel(in.Channel)
		if err != nil {
			return nil, err
		}
		filter.Channel = &ch
	}

	items, total, err := s.repoDB.ListOTP(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list otp", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{Items: items, Total: total, Limit: filter.Limit}, nil
}
