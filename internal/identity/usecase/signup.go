package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/astra/internal/identity/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
)

type SignupInput struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,password"`
	FullName string `validate:"required,min=2,max=100,alphaspace"`
	Phone    string `validate:"omitempty,e164"`
}

type SignupOutput struct {
	User entity.User
}

// Signup creates a pending account. The OTP module picks up the published
// event and mails the first code.
func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	hashedPassword, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	newUser := entity.NewUser{
		ID:        s.uid.Generate(),
		Email:     in.Email,
		Phone:     in.Phone,
		FullName:  in.FullName,
		Password:  string(hashedPassword),
		Status:    entity.UserStatusPending,
		CreatedAt: s.clock.Now(),
	}

	err = s.repoDB.CreateUser(ctx, newUser)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewBusiness(msgEmailRegistered, goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", newUser.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID: newUser.ID,
		Email:  newUser.Email,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
	}

	return &SignupOutput{User: entity.User{
		ID:        newUser.ID,
		Email:     newUser.Email,
		Phone:     newUser.Phone,
		FullName:  newUser.FullName,
		Status:    newUser.Status,
		CreatedAt: newUser.CreatedAt,
		UpdatedAt: newUser.CreatedAt,
	}}, nil
}
