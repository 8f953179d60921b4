package entity

import "errors"

var (
	ErrEmptyClipboard     = errors.New("otpentry: clipboard is empty")
	ErrInsufficientDigits = errors.New("otpentry: not enough digits")
	ErrIncompleteCode     = errors.New("otpentry: code is incomplete")
	ErrInvalidCode        = errors.New("otpentry: code is invalid")
	ErrInvalidSlot        = errors.New("otpentry: slot index out of range")
	ErrResendFailed       = errors.New("otpentry: resend failed")
	ErrSessionNotFound    = errors.New("otpentry: session not found")
	ErrSessionClosed      = errors.New("otpentry: session is closed")
)

type NoticeKind int16

const (
	// NoticeUnknown is mean kind is not known / not set.
	NoticeUnknown NoticeKind = 0

	// NoticeEmptyClipboard mean paste found no text on the clipboard.
	NoticeEmptyClipboard NoticeKind = 1

	// NoticeInsufficientDigits mean the pasted text has fewer digits than a code.
	NoticeInsufficientDigits NoticeKind = 2

	// NoticeIncompleteCode mean verify was requested before every slot was filled.
	NoticeIncompleteCode NoticeKind = 3

	// NoticeInvalidCode mean the verifier rejected the code.
	NoticeInvalidCode NoticeKind = 4

	// NoticeVerified mean the verifier accepted the code.
	NoticeVerified NoticeKind = 5

	// NoticeResendFailed mean the new code could not be sent.
	NoticeResendFailed NoticeKind = 6

	// NoticeVerifyFailed mean the verifier itself failed.
	NoticeVerifyFailed NoticeKind = 7
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeEmptyClipboard:
		return "EmptyClipboard"
	case NoticeInsufficientDigits:
		return "InsufficientDigits"
	case NoticeIncompleteCode:
		return "IncompleteCode"
	case NoticeInvalidCode:
		return "InvalidCode"
	case NoticeVerified:
		return "Verified"
	case NoticeResendFailed:
		return "ResendFailed"
	case NoticeVerifyFailed:
		return "VerifyFailed"
	default:
		return "Unknown"
	}
}

// IsError reports whether the notice reports a failure.
func (k NoticeKind) IsError() bool {
	return k != NoticeVerified && k != NoticeUnknown
}

// MarshalText renders the kind by name on the wire.
func (k NoticeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Notice is a transient, user-facing message.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message,omitempty"`
}

var noticeByErr = map[error]Notice{
	ErrEmptyClipboard:     {Kind: NoticeEmptyClipboard, Title: "Clipboard empty"},
	ErrInsufficientDigits: {Kind: NoticeInsufficientDigits, Title: "No valid code found in clipboard"},
	ErrIncompleteCode:     {Kind: NoticeIncompleteCode, Title: "Enter the 6-digit code"},
	ErrInvalidCode:        {Kind: NoticeInvalidCode, Title: "Invalid code", Message: "The code you entered is incorrect."},
	ErrResendFailed:       {Kind: NoticeResendFailed, Title: "Resend failed", Message: "We could not resend the code. Try again."},
}

// NoticeFor returns the notice shown for an entry error.
func NoticeFor(err error) (Notice, bool) {
	n, ok := noticeByErr[err]
	return n, ok
}
