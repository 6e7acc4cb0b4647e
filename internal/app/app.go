package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	otpUsecase "github.com/shandysiswandi/astra/internal/otp/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/shandysiswandi/astra/internal/pkg/config"
	"github.com/shandysiswandi/astra/internal/pkg/goroutine"
	"github.com/shandysiswandi/astra/internal/pkg/hash"
	"github.com/shandysiswandi/astra/internal/pkg/idempotency"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/jwt"
	"github.com/shandysiswandi/astra/internal/pkg/mail"
	"github.com/shandysiswandi/astra/internal/pkg/messaging"
	"github.com/shandysiswandi/astra/internal/pkg/otp"
	"github.com/shandysiswandi/astra/internal/pkg/router"
	"github.com/shandysiswandi/astra/internal/pkg/storage"
	"github.com/shandysiswandi/astra/internal/pkg/uid"
	"github.com/shandysiswandi/astra/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	password  hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	tokenID   uid.StringID
	codeGen   otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	// modules
	otp *otpUsecase.Usecase

	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

// New initializes the application for `astra serve`: HTTP server, consumers
// and the periodic cleanup job.
func New() *App {
	app := newApp()

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()

	return app
}

// NewTask initializes the application for one-shot commands. No router is
// built and no background worker is started.
func NewTask() *App {
	app := newApp()

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initModules()

	return app
}

// NewMigrator initializes only what `astra migrate` needs.
func NewMigrator() *App {
	app := newApp()

	app.initConfig()
	app.initInstrument()
	app.initDatabase()

	return app
}

func newApp() *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		ctx:    ctx,
		cancel: cancel,
	}
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}
