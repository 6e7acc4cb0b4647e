package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/astra/internal/identity"
	"github.com/shandysiswandi/astra/internal/otp"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") && a.router != nil {
		if err := identity.New(identity.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Instrument: a.ins,
			UID:        a.uid,
			Password:   a.password,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.otp.enabled") {
		uc, err := otp.New(a.otpDependency())
		if err != nil {
			slog.Error("failed to init module otp", "error", err)
			os.Exit(1)
		}
		a.otp = uc
	}
}

func (a *App) otpDependency() otp.Dependency {
	dep := otp.Dependency{
		DBConn:      a.dbConn,
		Goroutine:   a.goroutine,
		Idempotency: a.idemp,
		Messaging:   a.messaging,
		Mail:        a.mail,
		Storage:     a.storage,
		Config:      a.config,
		Instrument:  a.ins,
		TokenID:     a.tokenID,
		UUID:        a.uuid,
		HMAC:        a.hmac,
		CodeGen:     a.codeGen,
		Clock:       a.clock,
		Validator:   a.validator,
	}
	// Consumers and the cleanup ticker only run with the HTTP server.
	if a.router != nil {
		dep.Ctx = a.ctx
		dep.Router = a.router
	}

	return dep
}
