package verifier

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/shandysiswandi/otpentry/internal/pkg/clock"
	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/otp"
)

const (
	DriverStatic = "static"
	DriverTOTP   = "totp"

	// DefaultStaticCode is the sentinel accepted by the static verifier.
	DefaultStaticCode = "123456"
)

var (
	ErrUnknownDriver = errors.New("verifier: unknown driver")
	ErrSecretMissing = errors.New("verifier: totp secret is required")
)

// Static accepts one configured code.
type Static struct {
	code []byte
	ins  instrument.Instrumentation
}

func NewStatic(code string, ins instrument.Instrumentation) *Static {
	if code == "" {
		code = DefaultStaticCode
	}
	return &Static{code: []byte(code), ins: ins}
}

func (s *Static) VerifyCode(ctx context.Context, code string) (bool, error) {
	_, span := s.ins.Tracer("otpentry.outbound.verifier").Start(ctx, "Static.VerifyCode")
	defer span.End()

	return subtle.ConstantTimeCompare(s.code, []byte(code)) == 1, nil
}

// TOTP accepts the current time-based code of a shared secret.
type TOTP struct {
	otp    otp.OTP
	secret string
	clock  clock.Clocker
	ins    instrument.Instrumentation
}

func NewTOTP(o otp.OTP, secret string, clk clock.Clocker, ins instrument.Instrumentation) (*TOTP, error) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	if secret == "" {
		return nil, ErrSecretMissing
	}
	if err := o.ValidateSecret(secret); err != nil {
		return nil, err
	}
	return &TOTP{otp: o, secret: secret, clock: clk, ins: ins}, nil
}

func (t *TOTP) VerifyCode(ctx context.Context, code string) (bool, error) {
	_, span := t.ins.Tracer("otpentry.outbound.verifier").Start(ctx, "TOTP.VerifyCode")
	defer span.End()

	return t.otp.Validate(code, t.secret, t.clock.Now()), nil
}

// CurrentCode returns the code that TOTP accepts right now.
func (t *TOTP) CurrentCode() (string, error) {
	return t.otp.GenerateCode(t.secret, t.clock.Now())
}

// Options configures New.
type Options struct {
	StaticCode string
	TOTP       otp.OTP
	Secret     string
	Clock      clock.Clocker
}

// Verifier is what New returns.
type Verifier interface {
	VerifyCode(ctx context.Context, code string) (bool, error)
}

// New builds the verifier selected by driver.
func New(driver string, opts Options, ins instrument.Instrumentation) (Verifier, error) {
	switch strings.TrimSpace(driver) {
	case "", DriverStatic:
		return NewStatic(opts.StaticCode, ins), nil
	case DriverTOTP:
		v, err := NewTOTP(opts.TOTP, opts.Secret, opts.Clock, ins)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
