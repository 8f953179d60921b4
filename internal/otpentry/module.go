package otpentry

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/otpentry/inbound"
	"github.com/shandysiswandi/otpentry/internal/otpentry/outbound/mq"
	"github.com/shandysiswandi/otpentry/internal/otpentry/outbound/verifier"
	"github.com/shandysiswandi/otpentry/internal/otpentry/usecase"
	"github.com/shandysiswandi/otpentry/internal/pkg/clock"
	"github.com/shandysiswandi/otpentry/internal/pkg/config"
	"github.com/shandysiswandi/otpentry/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpentry/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/messaging"
	"github.com/shandysiswandi/otpentry/internal/pkg/otp"
	"github.com/shandysiswandi/otpentry/internal/pkg/router"
	"github.com/shandysiswandi/otpentry/internal/pkg/uid"
	"github.com/shandysiswandi/otpentry/internal/pkg/validator"
)

// Dependency is everything the module needs from the app. Messaging and
// Redis are nil when disabled.
type Dependency struct {
	Ctx        context.Context
	Messaging  messaging.Messaging
	Redis      *redis.Client
	Config     config.Config
	Instrument instrument.Instrumentation
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Router     *router.Router
}

// Module is the running otpentry module.
type Module struct {
	uc *usecase.Usecase
}

func New(dep Dependency) (*Module, error) {
	ctx := dep.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	codeVerifier, err := newVerifier(ctx, dep)
	if err != nil {
		return nil, err
	}

	var sender usecase.ResendSender = mq.Simulated{}
	if dep.Messaging != nil {
		cfg := mq.Config{
			Client:     dep.Messaging,
			Clock:      dep.Clock,
			Instrument: dep.Instrument,
			DedupeTTL:  dep.Config.GetSecond("otp.resend.dedupe_ttl_seconds"),
			RetryBase:  dep.Config.GetMillisecond("otp.resend.retry_base_ms"),
		}
		if dep.Redis != nil {
			cfg.Idempotency = idempotency.New(dep.Redis, "otpentry:idempotency:")
		}
		sender = mq.NewMessaging(cfg)
	}

	uc := usecase.NewOTPEntry(usecase.Dependency{
		Ctx:        ctx,
		Config:     dep.Config,
		Instrument: dep.Instrument,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		UUID:       dep.UUID,
		UID:        dep.UID,
		Verifier:   codeVerifier,
		Sender:     sender,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	uc.RunReaper(ctx, dep.Goroutine)

	if dep.Messaging != nil {
		var codes inbound.CodeSource
		if totpVerifier, ok := codeVerifier.(*verifier.TOTP); ok {
			codes = totpVerifier
		}
		inbound.RegisterMQConsumer(ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, codes, dep.Instrument)
	}

	return &Module{uc: uc}, nil
}

func newVerifier(ctx context.Context, dep Dependency) (verifier.Verifier, error) {
	driver := dep.Config.GetString("otp.verifier.driver")
	totp := otp.NewTOTP(
		dep.Config.GetString("otp.totp.issuer"),
		dep.Config.GetUint("otp.totp.period"),
		dep.Config.GetUint("otp.totp.skew"),
		entity.CodeLength,
	)

	secret := dep.Config.GetString("otp.totp.secret")
	if driver == verifier.DriverTOTP && strings.TrimSpace(secret) == "" {
		var uri string
		var err error
		secret, uri, err = totp.Generate("otp-entry")
		if err != nil {
			return nil, err
		}
		slog.WarnContext(ctx, "otp.totp.secret is empty, using a generated secret for this process", "provisioning_uri", uri)
	}

	return verifier.New(driver, verifier.Options{
		StaticCode: dep.Config.GetString("otp.verifier.static_code"),
		TOTP:       totp,
		Secret:     secret,
		Clock:      dep.Clock,
	}, dep.Instrument)
}

// Close ends every open session.
func (m *Module) Close(ctx context.Context) error {
	m.uc.CloseAll(ctx)
	return nil
}
