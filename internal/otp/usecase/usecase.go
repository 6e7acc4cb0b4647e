package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/shandysiswandi/astra/internal/pkg/config"
	"github.com/shandysiswandi/astra/internal/pkg/hash"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/otp"
	"github.com/shandysiswandi/astra/internal/pkg/uid"
	"github.com/shandysiswandi/astra/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	// CreateOTP supersedes the live records of (user, channel) and inserts in
	// one transaction. It returns how many records were superseded.
	CreateOTP(ctx context.Context, in entity.OTP) (int64, error)
	// VerifyOTP locks the live record of (user, channel), asks judge for a
	// verdict and applies it before committing. The returned record reflects
	// the applied verdict.
	VerifyOTP(ctx context.Context, userID int64, ch entity.Channel, judge func(entity.OTP) entity.Verdict) (*entity.OTP, entity.Verdict, error)
	GetOTP(ctx context.Context, token string) (*entity.OTP, error)
	ListOTP(ctx context.Context, filter entity.ListFilter) ([]entity.OTP, int64, error)
	DeleteOTP(ctx context.Context, token string) error
	CountOTPsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// DeleteOTPsBefore passes the deleted rows to archive before committing; an
	// archive error rolls the delete back. archive may be nil.
	DeleteOTPsBefore(ctx context.Context, cutoff time.Time, archive func(context.Context, []entity.OTP) error) (int64, error)
	UserIDsWithUnexpiredOTP(ctx context.Context, userIDs []int64, now time.Time) ([]int64, error)
	GetStats(ctx context.Context, userID int64, now time.Time) (*entity.Stats, error)
}

type directory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	GetContact(ctx context.Context, userID int64) (*entity.Contact, error)
	// Activate reports whether the account moved from pending to active.
	Activate(ctx context.Context, userID int64) (bool, error)
	IsPendingVerification(ctx context.Context, userID int64) (bool, error)
	PendingVerificationUserIDs(ctx context.Context) ([]int64, error)
	// DeleteUnverified rechecks liveness against now inside the delete.
	DeleteUnverified(ctx context.Context, userIDs []int64, now time.Time) (int64, error)
}

type notifier interface {
	Send(ctx context.Context, to entity.Contact, code string, ch entity.Channel, expiresAt time.Time) bool
}

type archiver interface {
	Archive(ctx context.Context, records []entity.OTP, at time.Time) error
}

type Usecase struct {
	repoDB    repoDB
	directory directory
	notifier  notifier
	archiver  archiver
	validator validator.Validator
	cfg       config.Config
	hmac      hash.Hash
	codeGen   otp.Generator
	tokenID   uid.StringID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB    repoDB
	Directory directory
	Notifier  notifier
	// Archiver is optional; without it retention deletes are not archived.
	Archiver   archiver
	Validator  validator.Validator
	Config     config.Config
	HMAC       hash.Hash
	CodeGen    otp.Generator
	// TokenID must produce unguessable values.
	TokenID    uid.StringID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		directory: dep.Directory,
		notifier:  dep.Notifier,
		archiver:  dep.Archiver,
		validator: dep.Validator,
		cfg:       dep.Config,
		hmac:      dep.HMAC,
		codeGen:   dep.CodeGen,
		tokenID:   dep.TokenID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otp.usecase").Start(ctx, name)
}

func (s *Usecase) maxAttempts() int32 {
	n := config.IntOr(s.cfg, "modules.otp.max_attempts", entity.DefaultMaxAttempts)
	if n < 1 {
		return entity.DefaultMaxAttempts
	}
	return int32(n)
}

func (s *Usecase) defaultExpiresIn() time.Duration {
	d := time.Duration(config.IntOr(s.cfg, "modules.otp.expires_in", int(entity.DefaultExpiresIn/time.Second))) * time.Second
	if d < entity.MinExpiresIn || d > entity.MaxExpiresIn {
		return entity.DefaultExpiresIn
	}
	return d
}

func parseChannel(name string) (entity.Channel, error) {
	ch, ok := entity.ParseChannel(name)
	if !ok {
		return entity.ChannelUnknown, errInvalidChannel(name)
	}
	return ch, nil
}
