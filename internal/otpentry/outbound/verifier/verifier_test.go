package verifier

import (
	"context"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
	"github.com/shandysiswandi/otpentry/internal/pkg/clock"
	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "KFP6EBHKHTWE2PHK5GOK7K2ARBZWQDBV"

func TestStaticVerifyCode(t *testing.T) {
	v := NewStatic("", instrument.NewNoop())
	ctx := context.Background()

	ok, err := v.VerifyCode(ctx, "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.VerifyCode(ctx, "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.VerifyCode(ctx, "12345")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTOTPVerifyCode(t *testing.T) {
	fc := clock.NewFake(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	totp := otp.NewTOTP("otpentry", 30, 1, libotp.DigitsSix)

	v, err := NewTOTP(totp, " "+testSecret+" ", fc, instrument.NewNoop())
	require.NoError(t, err)

	code, err := v.CurrentCode()
	require.NoError(t, err)
	require.Len(t, code, 6)

	ok, err := v.VerifyCode(context.Background(), code)
	require.NoError(t, err)
	assert.True(t, ok)

	fc.Advance(5 * time.Minute)

	ok, err = v.VerifyCode(context.Background(), code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewTOTPRequiresSecret(t *testing.T) {
	_, err := NewTOTP(otp.NewTOTP("otpentry", 0, 0, libotp.DigitsSix), "  ", clock.New(), instrument.NewNoop())
	require.ErrorIs(t, err, ErrSecretMissing)

	_, err = NewTOTP(otp.NewTOTP("otpentry", 0, 0, libotp.DigitsSix), "not base32!", clock.New(), instrument.NewNoop())
	require.ErrorIs(t, err, otp.ErrInvalidSecret)
}

func TestNew(t *testing.T) {
	ins := instrument.NewNoop()

	v, err := New("", Options{StaticCode: "000000"}, ins)
	require.NoError(t, err)
	assert.IsType(t, &Static{}, v)

	v, err = New(DriverTOTP, Options{
		TOTP:   otp.NewTOTP("otpentry", 0, 0, libotp.DigitsSix),
		Secret: testSecret,
		Clock:  clock.New(),
	}, ins)
	require.NoError(t, err)
	assert.IsType(t, &TOTP{}, v)

	_, err = New("sms", Options{}, ins)
	require.ErrorIs(t, err, ErrUnknownDriver)
}
