package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/shandysiswandi/otpentry/internal/pkg/clock"
	"github.com/shandysiswandi/otpentry/internal/pkg/config"
	"github.com/shandysiswandi/otpentry/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/router"
	"github.com/shandysiswandi/otpentry/internal/pkg/uid"
	"github.com/shandysiswandi/otpentry/internal/pkg/validator"
)

const (
	containerConfigPath = "/config/config.yaml"
	localConfigPath     = "./config/config.yaml"
	redisPingTimeout    = 5 * time.Second
)

// fatal logs and exits. Startup has no caller to return an error to.
func fatal(msg string, err error, args ...any) {
	slog.Error(msg, append([]any{"error", err}, args...)...)
	os.Exit(1)
}

// configPath is CONFIG_PATH when set, else the container mount when it
// exists, else the repo copy.
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if _, err := os.Stat(containerConfigPath); errors.Is(err, fs.ErrNotExist) {
		return localConfigPath
	}
	return containerConfigPath
}

func (a *App) initConfig() {
	cfg, err := config.NewViper(configPath())
	if err != nil {
		fatal("failed to init config", err)
	}

	if tz := cfg.GetString("app.tz"); tz != "" {
		//nolint:errcheck,gosec // only affects log timestamps
		os.Setenv("TZ", tz)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	c := a.config
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          c.GetBool("instrument.enabled"),
		ServiceName:      c.GetString("instrument.service_name"),
		ServiceVersion:   c.GetString("instrument.service_version"),
		Environment:      c.GetString("instrument.env"),
		OTLPEndpoint:     c.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       c.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: c.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  c.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       c.GetArray("instrument.log_mask_fields"),
		LogLevel:         c.GetString("instrument.log_level"),
	})
	if err != nil {
		fatal("failed to init instrumentation", err)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	v, err := validator.NewV10Validator()
	if err != nil {
		fatal("failed to init validator", err)
	}
	a.validator = v

	snow, err := uid.NewSnowflake()
	if err != nil {
		fatal("failed to init snowflake event ids", err)
	}
	a.uid = snow
}

// initCache connects redis, which backs resend deduplication. It stays nil
// when disabled.
func (a *App) initCache() {
	if !a.config.GetBool("redis.enabled") {
		slog.Info("redis disabled, otp resend requests are not deduplicated")
		return
	}

	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		fatal("failed to parse redis url", err)
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(a.ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fatal("failed to reach redis", err, "addr", opt.Addr)
	}

	a.cacheConn = rdb
}

// initHTTPServer builds one router served on two listeners: the API listener
// with full timeouts and the SSE listener without a write deadline.
func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   a.config.GetArray("app.server.cors"),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{router.HeaderCorrelationID},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           handler,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}

	a.sseServer = &http.Server{
		Addr:              a.config.GetString("app.server.sse.address"),
		Handler:           handler,
		ReadHeaderTimeout: a.config.GetSecond("app.server.sse.read_header_timeout_seconds"),
	}
}

type closer struct {
	name string
	fn   func(context.Context) error
}

func ignoreCtx(fn func() error) func(context.Context) error {
	return func(context.Context) error { return fn() }
}

// initClosers lists shutdown steps: sessions first, so their final events go
// out while messaging is still up, config last.
func (a *App) initClosers() {
	if a.otpEntry != nil {
		a.closers = append(a.closers, closer{"OTP Sessions", a.otpEntry.Close})
	}
	if a.messaging != nil {
		a.closers = append(a.closers, closer{"Messaging", ignoreCtx(a.messaging.Close)})
	}
	if a.cacheConn != nil {
		a.closers = append(a.closers, closer{"Redis", ignoreCtx(a.cacheConn.Close)})
	}
	a.closers = append(a.closers,
		closer{"Instrument", a.ins.Shutdown},
		closer{"Config", ignoreCtx(a.config.Close)},
	)
}
