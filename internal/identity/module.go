package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/astra/internal/identity/inbound"
	"github.com/shandysiswandi/astra/internal/identity/outbound/db"
	"github.com/shandysiswandi/astra/internal/identity/outbound/mq"
	"github.com/shandysiswandi/astra/internal/identity/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/shandysiswandi/astra/internal/pkg/hash"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/jwt"
	"github.com/shandysiswandi/astra/internal/pkg/messaging"
	"github.com/shandysiswandi/astra/internal/pkg/router"
	"github.com/shandysiswandi/astra/internal/pkg/uid"
	"github.com/shandysiswandi/astra/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Password   hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Validator:     dep.Validator,
		Password:      dep.Password,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
