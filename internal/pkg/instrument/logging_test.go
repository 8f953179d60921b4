package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&contextHandler{
		Handler: &maskHandler{
			handler:  slog.NewJSONHandler(&buf, nil),
			maskKeys: buildMaskKeys([]string{" Code ", "destination", ""}),
		},
		serviceName: "otpentry",
	})

	ctx := SetCorrelationID(context.Background(), "cid-9")
	logger.InfoContext(ctx, "otp code delivered",
		"code", "123456",
		"session_id", "s1",
		"msg_body", `{"destination":"+1 555 0123","round":1}`,
		slog.Group("req", slog.String("destination", "+1 555 0123")),
	)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "***", got["code"])
	assert.Equal(t, "s1", got["session_id"])
	assert.JSONEq(t, `{"destination":"***","round":1}`, got["msg_body"].(string))
	assert.Equal(t, map[string]any{"destination": "***"}, got["req"])
	assert.Equal(t, "cid-9", got["_cID"])
	assert.Equal(t, "otpentry", got["service"])
}

func TestMaskAny(t *testing.T) {
	keys := buildMaskKeys([]string{"text"})

	masked, ok := maskAny(map[string]string{"text": "123456", "index": "0"}, keys)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"text": "***", "index": "0"}, masked)

	_, ok = maskAny(42, keys)
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLogHandler(loggingOptions{
		serviceName: "otpentry",
		level:       slog.LevelWarn,
		maskFields:  []string{"code"},
		out:         &buf,
	})).With("code", "654321")

	logger.Info("dropped below level")
	assert.Zero(t, buf.Len())

	logger.Warn("resend failed", "session_id", "s1")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "WARN", got["severity"])
	assert.Equal(t, "***", got["code"])
	assert.Equal(t, "otpentry", got["service"])
	assert.Contains(t, got, "ts")
	assert.Contains(t, got["file"], "internal/pkg/instrument/logging_test.go:")
}
