package inbound

import (
	"net/http"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
)

type SessionResponse struct {
	SessionID string   `json:"session_id,omitempty"`
	Slots     []string `json:"slots"`
	Focus     int      `json:"focus"`
	Cooldown  int      `json:"cooldown"`
	CanResend bool     `json:"can_resend"`
	Resending bool     `json:"resending"`
	Info      string   `json:"info"`
	Complete  bool     `json:"complete"`
	Verified  bool     `json:"verified"`
}

func newSessionResponse(id string, snap entity.Snapshot) SessionResponse {
	return SessionResponse{
		SessionID: id,
		Slots:     snap.Slots,
		Focus:     snap.Focus,
		Cooldown:  snap.Cooldown,
		CanResend: snap.Cooldown == 0 && !snap.Resending && !snap.Closed,
		Resending: snap.Resending,
		Info:      snap.Info,
		Complete:  snap.Complete,
		Verified:  snap.Verified,
	}
}

type CreateSessionRequest struct {
	DestinationHint string `json:"destination_hint"`
}

type CreateSessionResponse struct {
	SessionResponse
}

func (CreateSessionResponse) StatusCode() int {
	return http.StatusCreated
}

func (CreateSessionResponse) Message() string {
	return "Code entry session created."
}

type InputRequest struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type BackspaceRequest struct {
	Index int `json:"index"`
}

type PasteRequest struct {
	Text string `json:"text"`
}

type ResendResponse struct {
	Accepted bool            `json:"accepted"`
	Session  SessionResponse `json:"session"`
}

func (r ResendResponse) Message() string {
	if r.Accepted {
		return "A new code is on its way."
	}
	return "A new code cannot be requested yet."
}

type VerifyResponse struct {
	SessionResponse
}

func (VerifyResponse) Message() string {
	return "OTP verified."
}
