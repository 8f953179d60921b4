package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/pkg/clock"
	"github.com/shandysiswandi/otpentry/internal/pkg/goerror"
)

const (
	defaultResendLatency = 1200 * time.Millisecond
	sendCodeTimeout      = 10 * time.Second

	announceResendAvailable = "You can resend the code now"
	infoResending           = "Resending code…"
)

// ErrVerifierRequired is returned by NewController without a CodeVerifier.
var ErrVerifierRequired = errors.New("otpentry: code verifier is required")

//go:generate mockgen -source=controller.go -destination=mock_controller_test.go -package=usecase

// Presenter renders what the controller asks for.
type Presenter interface {
	RequestFocus(ctx context.Context, index int)
	ShowNotice(ctx context.Context, n entity.Notice)
	Announce(ctx context.Context, message string)
}

// Navigator receives the signal to leave the entry screen.
type Navigator interface {
	ProceedAuthenticated(ctx context.Context)
}

// Clipboard reads the text the user copied.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
}

// CodeVerifier decides whether a complete code is the expected one.
type CodeVerifier interface {
	VerifyCode(ctx context.Context, code string) (bool, error)
}

// ResendRequest describes one accepted resend.
type ResendRequest struct {
	SessionID   string
	Round       int
	Destination string
}

// ResendSender delivers a new code.
type ResendSender interface {
	SendCode(ctx context.Context, req ResendRequest) error
}

// ControllerConfig wires a Controller.
type ControllerConfig struct {
	// BaseContext is used by timer callbacks. Defaults to context.Background.
	BaseContext     context.Context
	SessionID       string
	DestinationHint string
	CooldownSeconds int
	ResendLatency   time.Duration

	Clock     clock.Clocker
	Presenter Presenter
	Navigator Navigator
	Clipboard Clipboard
	Verifier  CodeVerifier
	Sender    ResendSender
}

// Controller drives one code entry screen.
//
// All state is guarded by mu, so event handlers and timer callbacks observe
// a single ordered stream of mutations. Collaborators are never called while
// mu is held.
type Controller struct {
	ctx           context.Context
	sessionID     string
	hint          string
	cooldownSecs  int
	resendLatency time.Duration

	clock     clock.Clocker
	presenter Presenter
	navigator Navigator
	clipboard Clipboard
	verifier  CodeVerifier
	sender    ResendSender

	mu          sync.Mutex
	code        entity.CodeBuffer
	focus       int
	cooldown    entity.Cooldown
	resending   bool
	round       int
	info        string
	verified    bool
	started     bool
	closed      bool
	tick        clock.Timer
	resendTimer clock.Timer
}

// NewController builds a stopped controller. Call Start to mount it.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if cfg.Verifier == nil {
		return nil, ErrVerifierRequired
	}

	c := &Controller{
		ctx:           cfg.BaseContext,
		sessionID:     cfg.SessionID,
		hint:          cfg.DestinationHint,
		cooldownSecs:  cfg.CooldownSeconds,
		resendLatency: cfg.ResendLatency,
		clock:         cfg.Clock,
		presenter:     cfg.Presenter,
		navigator:     cfg.Navigator,
		clipboard:     cfg.Clipboard,
		verifier:      cfg.Verifier,
		sender:        cfg.Sender,
	}

	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.cooldownSecs <= 0 {
		c.cooldownSecs = entity.DefaultCooldownSeconds
	}
	if c.resendLatency <= 0 {
		c.resendLatency = defaultResendLatency
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	if c.presenter == nil {
		c.presenter = noopPresenter{}
	}
	if c.navigator == nil {
		c.navigator = noopNavigator{}
	}
	if c.clipboard == nil {
		c.clipboard = emptyClipboard{}
	}
	if c.sender == nil {
		c.sender = noopSender{}
	}

	c.info = "We sent a 6-digit code to " + c.hint

	return c, nil
}

// Start mounts the controller: the cooldown restarts and begins ticking.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started || c.closed {
		return
	}
	c.started = true
	c.cooldown.Reset(c.cooldownSecs)
	c.armTickLocked()
}

// Close unmounts the controller. Pending timers are cancelled and every
// later call is a no-op. Close is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
	if c.resendTimer != nil {
		c.resendTimer.Stop()
		c.resendTimer = nil
	}
}

// IsComplete reports whether every slot holds a digit.
func (c *Controller) IsComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code.IsComplete()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() entity.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return entity.Snapshot{
		Slots:     c.code.Slots(),
		Focus:     c.focus,
		Cooldown:  c.cooldown.Remaining(),
		Resending: c.resending,
		Info:      c.info,
		Complete:  c.code.IsComplete(),
		Verified:  c.verified,
		Closed:    c.closed,
	}
}

// effects are collaborator calls collected under mu and run after it is released.
type effects []func()

func (fx effects) run() {
	for _, f := range fx {
		f()
	}
}

func (c *Controller) focusLocked(ctx context.Context, index int) effects {
	c.focus = index
	return effects{func() { c.presenter.RequestFocus(ctx, index) }}
}

// fail surfaces an entry error as a notice and returns it to the caller.
func (c *Controller) fail(ctx context.Context, err error) error {
	n, ok := entity.NoticeFor(err)
	if !ok {
		return goerror.NewServer(err)
	}

	c.presenter.ShowNotice(ctx, n)
	return goerror.WrapBusiness(err, n.Title, goerror.CodeInvalidInput)
}

func errClosed() error {
	return goerror.WrapBusiness(entity.ErrSessionClosed, "Session is closed", goerror.CodeGone)
}

type noopPresenter struct{}

func (noopPresenter) RequestFocus(context.Context, int)         {}
func (noopPresenter) ShowNotice(context.Context, entity.Notice) {}
func (noopPresenter) Announce(context.Context, string)          {}

type noopNavigator struct{}

func (noopNavigator) ProceedAuthenticated(context.Context) {}

type emptyClipboard struct{}

func (emptyClipboard) ReadText(context.Context) (string, error) { return "", nil }

type noopSender struct{}

func (noopSender) SendCode(context.Context, ResendRequest) error { return nil }
