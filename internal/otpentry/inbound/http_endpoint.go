package inbound

import (
	"github.com/shandysiswandi/otpentry/internal/otpentry/usecase"
	"github.com/shandysiswandi/otpentry/internal/pkg/router"
)

// HTTPEndpoint exposes the code entry operations over HTTP.
type HTTPEndpoint struct {
	uc uc
}

// CreateSession mounts a new code entry screen.
// @Summary Create entry session
// @Description Starts a code entry session with a running resend cooldown.
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest false "Session payload"
// @Success 201 {object} router.successResponse{data=CreateSessionResponse} "Session created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/otp/sessions [post]
func (h *HTTPEndpoint) CreateSession(r *router.Request) (any, error) {
	var req CreateSessionRequest
	if err := r.DecodeOptionalBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateSession(r.Context(), usecase.CreateSessionInput{
		DestinationHint: req.DestinationHint,
	})
	if err != nil {
		return nil, err
	}

	return CreateSessionResponse{SessionResponse: newSessionResponse(resp.SessionID, resp.Snapshot)}, nil
}

// GetSession returns the state of a session.
// @Summary Get entry session
// @Tags OTP
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} router.successResponse{data=SessionResponse} "Session state"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Router /api/v1/otp/sessions/{id} [get]
func (h *HTTPEndpoint) GetSession(r *router.Request) (any, error) {
	id := r.GetParam("id")

	snap, err := h.uc.Snapshot(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return newSessionResponse(id, *snap), nil
}

// CloseSession unmounts a session.
// @Summary Close entry session
// @Tags OTP
// @Param id path string true "Session ID"
// @Success 204 "Session closed"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Router /api/v1/otp/sessions/{id} [delete]
func (h *HTTPEndpoint) CloseSession(r *router.Request) (any, error) {
	if err := h.uc.CloseSession(r.Context(), r.GetParam("id")); err != nil {
		return nil, err
	}

	return nil, nil
}

// Input forwards the text a slot received.
// @Summary Slot input
// @Description Non-digits are dropped; more than one digit fills the code from the first slot.
// @Tags OTP
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body InputRequest true "Input payload"
// @Success 200 {object} router.successResponse{data=SessionResponse} "Session state"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 410 {object} router.errorResponse "Session closed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/otp/sessions/{id}/input [post]
func (h *HTTPEndpoint) Input(r *router.Request) (any, error) {
	var req InputRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	id := r.GetParam("id")
	snap, err := h.uc.Input(r.Context(), usecase.InputInput{
		SessionID: id,
		Index:     req.Index,
		Text:      req.Text,
	})
	if err != nil {
		return nil, err
	}

	return newSessionResponse(id, *snap), nil
}

// Backspace forwards a delete key pressed on a slot.
// @Summary Slot backspace
// @Description On an empty slot, focus moves back and the previous slot is cleared.
// @Tags OTP
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body BackspaceRequest true "Backspace payload"
// @Success 200 {object} router.successResponse{data=SessionResponse} "Session state"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/otp/sessions/{id}/backspace [post]
func (h *HTTPEndpoint) Backspace(r *router.Request) (any, error) {
	var req BackspaceRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	id := r.GetParam("id")
	snap, err := h.uc.Backspace(r.Context(), usecase.BackspaceInput{SessionID: id, Index: req.Index})
	if err != nil {
		return nil, err
	}

	return newSessionResponse(id, *snap), nil
}

// Paste fills the code from clipboard text.
// @Summary Paste code
// @Tags OTP
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body PasteRequest true "Clipboard text, empty when unavailable"
// @Success 200 {object} router.successResponse{data=SessionResponse} "Session state"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 422 {object} router.errorResponse "Clipboard empty or no valid code found"
// @Router /api/v1/otp/sessions/{id}/paste [post]
func (h *HTTPEndpoint) Paste(r *router.Request) (any, error) {
	var req PasteRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	id := r.GetParam("id")
	snap, err := h.uc.Paste(r.Context(), usecase.PasteInput{SessionID: id, Text: req.Text})
	if err != nil {
		return nil, err
	}

	return newSessionResponse(id, *snap), nil
}

// Resend requests a new code once the cooldown is over.
// @Summary Resend code
// @Tags OTP
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} router.successResponse{data=ResendResponse} "Whether the request was accepted"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Router /api/v1/otp/sessions/{id}/resend [post]
func (h *HTTPEndpoint) Resend(r *router.Request) (any, error) {
	id := r.GetParam("id")

	resp, err := h.uc.Resend(r.Context(), usecase.ResendInput{SessionID: id})
	if err != nil {
		return nil, err
	}

	return ResendResponse{Accepted: resp.Accepted, Session: newSessionResponse(id, resp.Snapshot)}, nil
}

// Verify checks the entered code.
// @Summary Verify code
// @Tags OTP
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} router.successResponse{data=VerifyResponse} "Code verified"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 422 {object} router.errorResponse "Incomplete or invalid code"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/otp/sessions/{id}/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	id := r.GetParam("id")

	snap, err := h.uc.Verify(r.Context(), usecase.VerifyInput{SessionID: id})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{SessionResponse: newSessionResponse(id, *snap)}, nil
}
