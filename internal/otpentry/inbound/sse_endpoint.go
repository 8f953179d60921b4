package inbound

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shandysiswandi/otpentry/internal/pkg/goerror"
	"github.com/shandysiswandi/otpentry/internal/pkg/router"
)

const pingInterval = 25 * time.Second

// Stream pushes focus, notice, announce and navigate events of a session using SSE.
// @Summary Stream session events
// @Description The first event is a snapshot of the session; the stream ends when the session closes.
// @Tags OTP
// @Produce text/event-stream
// @Param id path string true "Session ID"
// @Success 200 {string} string "SSE stream"
// @Failure 404 {string} string "Session not found"
// @Failure 500 {string} string "streaming unsupported"
// @Router /api/v1/otp/sessions/{id}/stream [get]
func (h *HTTPEndpoint) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := (&router.Request{Request: r}).GetParam("id")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// subscribe before reading the snapshot so no event falls between them
	stream, err := h.uc.Stream(ctx, id)
	if err != nil {
		writeStreamError(w, err)
		return
	}

	snap, err := h.uc.Snapshot(ctx, id)
	if err != nil {
		writeStreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		slog.ErrorContext(ctx, "failed to send response connected", "error", err)
		return
	}

	if err := writeEvent(w, "", "snapshot", newSessionResponse(id, *snap)); err != nil {
		slog.ErrorContext(ctx, "failed to send session snapshot", "session_id", id, "error", err)
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		// keeps proxies from dropping idle connections
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case evt, ok := <-stream:
			if !ok {
				return
			}
			if err := writeEvent(w, fmt.Sprint(evt.ID), string(evt.Kind), evt); err != nil {
				slog.ErrorContext(ctx, "failed to send response data", "session_id", id, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, id, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if id != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", id); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload)
	return err
}

func writeStreamError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := "Internal server error"

	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		code = gerr.StatusCode()
		if gerr.Msg() != "" {
			msg = gerr.Msg()
		}
	}

	http.Error(w, msg, code)
}
