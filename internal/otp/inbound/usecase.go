package inbound

import (
	"context"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/otp/usecase"
)

type ucConsumer interface {
	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
}

type ucJob interface {
	Cleanup(ctx context.Context, in usecase.CleanupInput) (*entity.CleanupResult, error)
}

type uc interface {
	ucConsumer
	ucJob

	Issue(ctx context.Context, in usecase.IssueInput) (*usecase.IssueOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error)
	Status(ctx context.Context, token string) (*usecase.StatusOutput, error)
	Stats(ctx context.Context, in usecase.StatsInput) (*entity.Stats, error)
	List(ctx context.Context, in usecase.ListInput) (*usecase.ListOutput, error)
	Get(ctx context.Context, token string) (*entity.OTP, error)
	Delete(ctx context.Context, token string) error
}
