package inbound

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/otpentry/usecase"
	"github.com/shandysiswandi/otpentry/internal/pkg/config"
	"github.com/shandysiswandi/otpentry/internal/pkg/goerror"
	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/router"
	"github.com/shandysiswandi/otpentry/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notFound = goerror.WrapBusiness(entity.ErrSessionNotFound, "Session not found", goerror.CodeNotFound)

type fakeUsecase struct {
	snap    entity.Snapshot
	events  chan entity.Event
	lastIn  usecase.InputInput
	lastBk  usecase.BackspaceInput
	lastPst usecase.PasteInput
	created usecase.CreateSessionInput
	closed  string

	resendAccepted bool
	verifyErr      error
	pasteErr       error

	mu    sync.Mutex
	calls []string
}

func (f *fakeUsecase) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeUsecase) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeUsecase) get(id string) (*entity.Snapshot, error) {
	if id != "s1" {
		return nil, notFound
	}
	snap := f.snap
	return &snap, nil
}

func (f *fakeUsecase) CreateSession(_ context.Context, in usecase.CreateSessionInput) (*usecase.CreateSessionOutput, error) {
	f.created = in
	return &usecase.CreateSessionOutput{SessionID: "s1", Snapshot: f.snap}, nil
}

func (f *fakeUsecase) Snapshot(_ context.Context, id string) (*entity.Snapshot, error) {
	f.record("snapshot " + id)
	return f.get(id)
}

func (f *fakeUsecase) CloseSession(_ context.Context, id string) error {
	if _, err := f.get(id); err != nil {
		return err
	}
	f.closed = id
	return nil
}

func (f *fakeUsecase) Input(_ context.Context, in usecase.InputInput) (*entity.Snapshot, error) {
	f.lastIn = in
	return f.get(in.SessionID)
}

func (f *fakeUsecase) Backspace(_ context.Context, in usecase.BackspaceInput) (*entity.Snapshot, error) {
	f.lastBk = in
	return f.get(in.SessionID)
}

func (f *fakeUsecase) Paste(_ context.Context, in usecase.PasteInput) (*entity.Snapshot, error) {
	f.lastPst = in
	if f.pasteErr != nil {
		return nil, f.pasteErr
	}
	return f.get(in.SessionID)
}

func (f *fakeUsecase) Resend(_ context.Context, in usecase.ResendInput) (*usecase.ResendOutput, error) {
	snap, err := f.get(in.SessionID)
	if err != nil {
		return nil, err
	}
	return &usecase.ResendOutput{Accepted: f.resendAccepted, Snapshot: *snap}, nil
}

func (f *fakeUsecase) Verify(_ context.Context, in usecase.VerifyInput) (*entity.Snapshot, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.get(in.SessionID)
}

func (f *fakeUsecase) Stream(_ context.Context, id string) (<-chan entity.Event, error) {
	f.record("stream " + id)
	if _, err := f.get(id); err != nil {
		return nil, err
	}
	return f.events, nil
}

func newTestServer(t *testing.T) (*fakeUsecase, *router.Router) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: instrument.NewNoop()})
	f := &fakeUsecase{
		snap: entity.Snapshot{
			Slots:    []string{"1", "2", "", "", "", ""},
			Focus:    2,
			Cooldown: 30,
		},
		events: make(chan entity.Event, 4),
	}
	RegisterHTTPEndpoint(r, f)

	return f, r
}

type envelope struct {
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func TestCreateSessionEndpoint(t *testing.T) {
	f, r := newTestServer(t)

	code, env := do(t, r, http.MethodPost, "/api/v1/otp/sessions", `{"destination_hint":"+1 ••• 123"}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Code entry session created.", env.Message)
	assert.Equal(t, "+1 ••• 123", f.created.DestinationHint)

	var got SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, 30, got.Cooldown)
	assert.False(t, got.CanResend)

	code, _ = do(t, r, http.MethodPost, "/api/v1/otp/sessions", "")
	assert.Equal(t, http.StatusCreated, code)
	assert.Empty(t, f.created.DestinationHint)
}

func TestSessionEndpoints(t *testing.T) {
	f, r := newTestServer(t)

	code, env := do(t, r, http.MethodGet, "/api/v1/otp/sessions/s1", "")
	assert.Equal(t, http.StatusOK, code)
	var got SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, []string{"1", "2", "", "", "", ""}, got.Slots)
	assert.Equal(t, 2, got.Focus)

	code, _ = do(t, r, http.MethodPost, "/api/v1/otp/sessions/s1/input", `{"index":2,"text":"3"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, usecase.InputInput{SessionID: "s1", Index: 2, Text: "3"}, f.lastIn)

	code, _ = do(t, r, http.MethodPost, "/api/v1/otp/sessions/s1/backspace", `{"index":1}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, usecase.BackspaceInput{SessionID: "s1", Index: 1}, f.lastBk)

	code, _ = do(t, r, http.MethodPost, "/api/v1/otp/sessions/s1/paste", `{"text":"Your code: 123456"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Your code: 123456", f.lastPst.Text)

	code, env = do(t, r, http.MethodPost, "/api/v1/otp/sessions/s1/verify", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OTP verified.", env.Message)

	code, _ = do(t, r, http.MethodDelete, "/api/v1/otp/sessions/s1", "")
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, "s1", f.closed)
}

func TestSessionEndpointErrors(t *testing.T) {
	f, r := newTestServer(t)
	f.pasteErr = goerror.WrapBusiness(entity.ErrInsufficientDigits, "No valid code found in clipboard", goerror.CodeInvalidInput)
	f.verifyErr = goerror.WrapBusiness(entity.ErrInvalidCode, "Invalid code", goerror.CodeInvalidInput)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		code    int
		message string
	}{
		{name: "unknown session", method: http.MethodGet, path: "/api/v1/otp/sessions/nope", code: http.StatusNotFound, message: "Session not found"},
		{name: "unknown session close", method: http.MethodDelete, path: "/api/v1/otp/sessions/nope", code: http.StatusNotFound, message: "Session not found"},
		{name: "malformed input", method: http.MethodPost, path: "/api/v1/otp/sessions/s1/input", body: `{"index":"x"}`, code: http.StatusBadRequest, message: "Invalid request body"},
		{name: "missing input body", method: http.MethodPost, path: "/api/v1/otp/sessions/s1/input", code: http.StatusBadRequest, message: "Invalid request body"},
		{name: "paste without digits", method: http.MethodPost, path: "/api/v1/otp/sessions/s1/paste", body: `{"text":"hello"}`, code: http.StatusUnprocessableEntity, message: "No valid code found in clipboard"},
		{name: "wrong code", method: http.MethodPost, path: "/api/v1/otp/sessions/s1/verify", code: http.StatusUnprocessableEntity, message: "Invalid code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestResendEndpoint(t *testing.T) {
	f, r := newTestServer(t)

	code, env := do(t, r, http.MethodPost, "/api/v1/otp/sessions/s1/resend", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "A new code cannot be requested yet.", env.Message)

	f.resendAccepted = true
	f.snap.Cooldown = 0
	f.snap.Resending = true
	code, env = do(t, r, http.MethodPost, "/api/v1/otp/sessions/s1/resend", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "A new code is on its way.", env.Message)

	var got ResendResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.Accepted)
	assert.True(t, got.Session.Resending)
	assert.False(t, got.Session.CanResend)
}

func TestStreamEndpoint(t *testing.T) {
	f, r := newTestServer(t)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	t.Run("unknown session", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/otp/sessions/nope/stream")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("snapshot then events until closed", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/otp/sessions/s1/stream", nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		focus := 3
		f.events <- entity.Event{ID: 7, SessionID: "s1", Kind: entity.EventFocus, Focus: &focus}
		f.events <- entity.Event{ID: 8, SessionID: "s1", Kind: entity.EventNavigate, Destination: "home"}
		close(f.events)

		var lines []string
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			line := sc.Text()
			if strings.HasPrefix(line, "id:") || strings.HasPrefix(line, "event:") {
				lines = append(lines, line)
			}
		}

		assert.Equal(t, []string{
			"event: snapshot",
			"id: 7",
			"event: focus",
			"id: 8",
			"event: navigate",
		}, lines)

		// subscribed before the snapshot was read
		assert.Equal(t, []string{"stream nope", "stream s1", "snapshot s1"}, f.callLog())
	})
}
