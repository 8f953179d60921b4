package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/pkg/clock"
	"github.com/shandysiswandi/otpentry/internal/pkg/uid"
	"go.uber.org/atomic"
)

const (
	streamBufferSize = 16

	// DestinationHome is where a verified session navigates to.
	DestinationHome = "home"
)

type session struct {
	id        string
	ctrl      *Controller
	hub       *hub
	createdAt time.Time
	lastSeen  *atomic.Time
}

func (ss *session) touch(now time.Time) {
	ss.lastSeen.Store(now)
}

func (ss *session) idleSince(now time.Time) time.Duration {
	return now.Sub(ss.lastSeen.Load())
}

func (ss *session) close() {
	ss.ctrl.Close()
	ss.hub.close()
}

type subscriber struct {
	ch chan entity.Event
}

// hub presents controller output as stream events and fans them out to the
// subscribers of one session.
type hub struct {
	sessionID string
	ids       uid.NumberID
	clock     clock.Clocker

	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	closed bool
}

func newHub(sessionID string, ids uid.NumberID, clk clock.Clocker) *hub {
	return &hub{
		sessionID: sessionID,
		ids:       ids,
		clock:     clk,
		subs:      make(map[*subscriber]struct{}),
	}
}

func (h *hub) RequestFocus(ctx context.Context, index int) {
	h.publish(ctx, entity.Event{Kind: entity.EventFocus, Focus: &index})
}

func (h *hub) ShowNotice(ctx context.Context, n entity.Notice) {
	h.publish(ctx, entity.Event{Kind: entity.EventNotice, Notice: &n})
}

func (h *hub) Announce(ctx context.Context, message string) {
	h.publish(ctx, entity.Event{Kind: entity.EventAnnounce, Message: message})
}

func (h *hub) ProceedAuthenticated(ctx context.Context) {
	h.publish(ctx, entity.Event{Kind: entity.EventNavigate, Destination: DestinationHome})
}

func (h *hub) publish(ctx context.Context, evt entity.Event) {
	evt.ID = h.ids.Generate()
	evt.SessionID = h.sessionID
	evt.CreatedAt = h.clock.Now()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.ch <- evt:
		default:
			slog.WarnContext(ctx, "otp stream subscriber is full, event dropped", "session_id", h.sessionID, "kind", evt.Kind)
		}
	}
}

// subscribe registers a stream that ends when ctx is done or the hub closes.
func (h *hub) subscribe(ctx context.Context) <-chan entity.Event {
	sub := &subscriber{ch: make(chan entity.Event, streamBufferSize)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.ch)
		return sub.ch
	}
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.unsubscribe(sub)
	}()

	return sub.ch
}

func (h *hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

func (h *hub) subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
