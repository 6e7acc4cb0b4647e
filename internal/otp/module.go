package otp

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/astra/internal/otp/inbound"
	"github.com/shandysiswandi/astra/internal/otp/outbound/archive"
	"github.com/shandysiswandi/astra/internal/otp/outbound/db"
	"github.com/shandysiswandi/astra/internal/otp/outbound/directory"
	"github.com/shandysiswandi/astra/internal/otp/outbound/notifier"
	"github.com/shandysiswandi/astra/internal/otp/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/shandysiswandi/astra/internal/pkg/config"
	"github.com/shandysiswandi/astra/internal/pkg/goroutine"
	"github.com/shandysiswandi/astra/internal/pkg/hash"
	"github.com/shandysiswandi/astra/internal/pkg/idempotency"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/mail"
	"github.com/shandysiswandi/astra/internal/pkg/messaging"
	pkgotp "github.com/shandysiswandi/astra/internal/pkg/otp"
	"github.com/shandysiswandi/astra/internal/pkg/router"
	"github.com/shandysiswandi/astra/internal/pkg/storage"
	"github.com/shandysiswandi/astra/internal/pkg/uid"
	"github.com/shandysiswandi/astra/internal/pkg/validator"
)

// Dependency wires the OTP module. Router and Ctx are left empty by the
// one-shot CLI commands, which only need the usecase.
type Dependency struct {
	Ctx         context.Context
	Router      *router.Router
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	TokenID     uid.StringID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	CodeGen     pkgotp.Generator           `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	repoNotifier, err := notifier.New(notifier.Config{
		AppName: dep.Config.GetString("app.name"),
		From:    dep.Config.GetString("modules.otp.mail_from"),
	}, dep.Mail, dep.Messaging, dep.Clock, dep.Instrument)
	if err != nil {
		return nil, err
	}

	ucDep := usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		Directory:  directory.New(dep.DBConn, dep.Instrument),
		Notifier:   repoNotifier,
		Validator:  dep.Validator,
		Config:     dep.Config,
		HMAC:       dep.HMAC,
		CodeGen:    dep.CodeGen,
		TokenID:    dep.TokenID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	}
	if dep.Config.GetBool("modules.otp.archive.enabled") {
		ucDep.Archiver = archive.New(
			dep.Storage,
			dep.Config.GetString("modules.otp.archive.bucket"),
			dep.Config.GetString("modules.otp.archive.prefix"),
			dep.Instrument,
		)
	}

	uc := usecase.New(ucDep)

	if dep.Router != nil {
		inbound.RegisterHTTPEndpoint(dep.Router, uc)
	}

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, inbound.MQDependency{
			Config:      dep.Config,
			Goroutine:   dep.Goroutine,
			Messaging:   dep.Messaging,
			Idempotency: dep.Idempotency,
			UUID:        dep.UUID,
			Instrument:  dep.Instrument,
		}, uc)
		inbound.RegisterCleanupJob(dep.Ctx, inbound.JobDependency{
			Config:      dep.Config,
			Goroutine:   dep.Goroutine,
			Idempotency: dep.Idempotency,
			Clock:       dep.Clock,
		}, uc)
	}

	return uc, nil
}
