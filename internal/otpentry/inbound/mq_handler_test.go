package inbound

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/messaging"
	"github.com/stretchr/testify/assert"
)

type fakeMessage struct {
	body    []byte
	headers []messaging.Header
}

func (m fakeMessage) Body() []byte                  { return m.body }
func (m fakeMessage) Key() []byte                   { return nil }
func (m fakeMessage) Headers() []messaging.Header   { return m.headers }
func (m fakeMessage) Attributes() map[string]string { return nil }
func (m fakeMessage) ID() string                    { return "m1" }
func (m fakeMessage) Topic() string                 { return "" }
func (m fakeMessage) Subject() string               { return "" }
func (m fakeMessage) Timestamp() time.Time          { return time.Time{} }
func (m fakeMessage) Ack(context.Context) error     { return nil }

type codeFunc func() (string, error)

func (f codeFunc) CurrentCode() (string, error) { return f() }

type staticID string

func (s staticID) Generate() string { return string(s) }

func TestOTPResendDelivery(t *testing.T) {
	body := []byte(`{"session_id":"s1","round":1,"destination":"+1 ••• 123","requested_at":1792400400}`)

	tests := []struct {
		name    string
		codes   CodeSource
		body    []byte
		wantErr bool
	}{
		{name: "static driver has no code", body: body},
		{name: "totp code is delivered", codes: codeFunc(func() (string, error) { return "654321", nil }), body: body},
		{name: "code failure is retried", codes: codeFunc(func() (string, error) { return "", errors.New("clock") }), body: body, wantErr: true},
		{name: "malformed body is dropped", body: []byte("{"), codes: codeFunc(func() (string, error) { return "", errors.New("unreachable") })},
		{name: "missing session is dropped", body: []byte(`{"round":1}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &MQHandler{codes: tt.codes, uuid: staticID("gen"), ins: instrument.NewNoop()}

			err := h.OTPResendDelivery(context.Background(), fakeMessage{body: tt.body})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEnsureCorrelationID(t *testing.T) {
	h := &MQHandler{uuid: staticID("gen"), ins: instrument.NewNoop()}

	ctx := h.ensureCorrelationID(context.Background(), []messaging.Header{{Key: "cID", Value: []byte("from-publisher")}})
	assert.Equal(t, "from-publisher", instrument.GetCorrelationID(ctx))

	ctx = h.ensureCorrelationID(context.Background(), nil)
	assert.Equal(t, "gen", instrument.GetCorrelationID(ctx))
}
