package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/otpentry/usecase"
	"github.com/shandysiswandi/otpentry/internal/pkg/router"
)

type uc interface {
	CreateSession(ctx context.Context, in usecase.CreateSessionInput) (*usecase.CreateSessionOutput, error)
	Snapshot(ctx context.Context, sessionID string) (*entity.Snapshot, error)
	CloseSession(ctx context.Context, sessionID string) error

	Input(ctx context.Context, in usecase.InputInput) (*entity.Snapshot, error)
	Backspace(ctx context.Context, in usecase.BackspaceInput) (*entity.Snapshot, error)
	Paste(ctx context.Context, in usecase.PasteInput) (*entity.Snapshot, error)
	Resend(ctx context.Context, in usecase.ResendInput) (*usecase.ResendOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) (*entity.Snapshot, error)

	Stream(ctx context.Context, sessionID string) (<-chan entity.Event, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/otp/sessions", end.CreateSession)
	r.GET("/api/v1/otp/sessions/:id", end.GetSession)
	r.DELETE("/api/v1/otp/sessions/:id", end.CloseSession)

	r.POST("/api/v1/otp/sessions/:id/input", end.Input)
	r.POST("/api/v1/otp/sessions/:id/backspace", end.Backspace)
	r.POST("/api/v1/otp/sessions/:id/paste", end.Paste)
	r.POST("/api/v1/otp/sessions/:id/resend", end.Resend)
	r.POST("/api/v1/otp/sessions/:id/verify", end.Verify)

	r.GETRaw("/api/v1/otp/sessions/:id/stream", http.HandlerFunc(end.Stream))
}
