package otp

import (
	"encoding/base32"
	"errors"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// ErrInvalidSecret is returned for a secret that is not base32.
var ErrInvalidSecret = errors.New("otp: secret must be base32 encoded")

// OTP defines the contract for TOTP operations.
type OTP interface {
	// Generate creates a secret and provisioning URI for an account name.
	Generate(accountName string) (secret string, uri string, err error)
	// Validate checks whether a code is valid at the given time.
	Validate(code, secret string, at time.Time) bool
	// GenerateCode creates a TOTP code for the given secret and time.
	GenerateCode(secret string, at time.Time) (string, error)
	// ValidateSecret reports whether secret can be used with Validate.
	ValidateSecret(secret string) error
	// Digits is the length of the codes.
	Digits() int
}

// TOTP implements OTP using SHA1 time-based codes, which is what
// authenticator apps expect.
type TOTP struct {
	issuer string
	opts   totp.ValidateOpts
}

// NewTOTP builds a TOTP. Digits other than 6 or 8 fall back to 6, a zero
// period to 30 seconds and a zero skew to one period either side.
func NewTOTP(issuer string, period, skew uint, digits otp.Digits) *TOTP {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}
	if period == 0 {
		period = 30
	}
	if skew == 0 {
		skew = 1
	}

	return &TOTP{
		issuer: issuer,
		opts: totp.ValidateOpts{
			Period:    period,
			Skew:      skew,
			Digits:    digits,
			Algorithm: otp.AlgorithmSHA1,
		},
	}
}

func (o *TOTP) Digits() int {
	return o.opts.Digits.Length()
}

func (o *TOTP) Generate(accountName string) (secret string, uri string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      o.issuer,
		AccountName: accountName,
		Period:      o.opts.Period,
		SecretSize:  20,
		Digits:      o.opts.Digits,
		Algorithm:   o.opts.Algorithm,
	})
	if err != nil {
		return "", "", err
	}

	return key.Secret(), key.URL(), nil
}

func (o *TOTP) ValidateSecret(secret string) error {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	if secret == "" {
		return ErrInvalidSecret
	}
	if n := len(secret) % 8; n != 0 {
		secret += strings.Repeat("=", 8-n)
	}
	if _, err := base32.StdEncoding.DecodeString(secret); err != nil {
		return ErrInvalidSecret
	}
	return nil
}

func (o *TOTP) Validate(code, secret string, at time.Time) bool {
	if len(code) != o.Digits() {
		return false
	}

	ok, err := totp.ValidateCustom(code, secret, at, o.opts)
	return ok && err == nil
}

func (o *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, o.opts)
}
