package entity

import "time"

type EventKind string

const (
	EventFocus    EventKind = "focus"
	EventNotice   EventKind = "notice"
	EventAnnounce EventKind = "announce"
	EventNavigate EventKind = "navigate"
)

// Event is pushed to the presentation client of a session.
type Event struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	Kind        EventKind `json:"kind"`
	Focus       *int      `json:"focus,omitempty"`
	Notice      *Notice   `json:"notice,omitempty"`
	Message     string    `json:"message,omitempty"`
	Destination string    `json:"destination,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot is a read-only view of a controller.
type Snapshot struct {
	Slots     []string
	Focus     int
	Cooldown  int
	Resending bool
	Info      string
	Complete  bool
	Verified  bool
	Closed    bool
}
