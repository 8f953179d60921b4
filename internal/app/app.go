package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/otpentry/internal/otpentry"
	"github.com/shandysiswandi/otpentry/internal/pkg/clock"
	"github.com/shandysiswandi/otpentry/internal/pkg/config"
	"github.com/shandysiswandi/otpentry/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/messaging"
	"github.com/shandysiswandi/otpentry/internal/pkg/router"
	"github.com/shandysiswandi/otpentry/internal/pkg/uid"
	"github.com/shandysiswandi/otpentry/internal/pkg/validator"
)

// App owns every long-lived dependency of the service and its lifecycle.
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
	uid       uid.NumberID
	uuid      uid.StringID

	// resources, nil when disabled
	cacheConn *redis.Client
	messaging messaging.Messaging

	// modules
	otpEntry *otpentry.Module

	// server
	router     *router.Router
	httpServer *http.Server
	sseServer  *http.Server

	closers []closer
}

// New builds the whole service from config. Any failure exits the process.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initCache()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
