package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noticeKindMatcher entity.NoticeKind

func noticeOfKind(kind entity.NoticeKind) gomock.Matcher { return noticeKindMatcher(kind) }

func (m noticeKindMatcher) Matches(x interface{}) bool {
	n, ok := x.(entity.Notice)
	return ok && n.Kind == entity.NoticeKind(m)
}

func (m noticeKindMatcher) String() string {
	return fmt.Sprintf("is a %s notice", entity.NoticeKind(m))
}

func TestResendRoundsReachSender(t *testing.T) {
	mc := gomock.NewController(t)
	presenter := NewMockPresenter(mc)
	sender := NewMockResendSender(mc)

	f := newControllerFixture(t, func(cfg *ControllerConfig) {
		cfg.Presenter = presenter
		cfg.Sender = sender
	})
	ctx := context.Background()

	gomock.InOrder(
		presenter.EXPECT().Announce(gomock.Any(), announceResendAvailable),
		sender.EXPECT().
			SendCode(gomock.Any(), ResendRequest{SessionID: "session-1", Round: 1, Destination: "+1 ••• ••• •123"}).
			Return(errors.New("broker unavailable")),
		presenter.EXPECT().ShowNotice(gomock.Any(), noticeOfKind(entity.NoticeResendFailed)),
		sender.EXPECT().
			SendCode(gomock.Any(), ResendRequest{SessionID: "session-1", Round: 2, Destination: "+1 ••• ••• •123"}).
			Return(nil),
	)

	f.clock.Advance(30 * time.Second)

	require.True(t, f.ctrl.Resend(ctx))
	f.clock.Advance(1200 * time.Millisecond)
	assert.Equal(t, 0, f.ctrl.Snapshot().Cooldown)

	require.True(t, f.ctrl.Resend(ctx))
	f.clock.Advance(1200 * time.Millisecond)
	assert.Equal(t, 30, f.ctrl.Snapshot().Cooldown)
}

func TestPasteFromClipboardThenVerify(t *testing.T) {
	mc := gomock.NewController(t)
	presenter := NewMockPresenter(mc)
	navigator := NewMockNavigator(mc)
	clipboard := NewMockClipboard(mc)
	verifier := NewMockCodeVerifier(mc)

	f := newControllerFixture(t, func(cfg *ControllerConfig) {
		cfg.Presenter = presenter
		cfg.Navigator = navigator
		cfg.Clipboard = clipboard
		cfg.Verifier = verifier
	})
	ctx := context.Background()

	gomock.InOrder(
		clipboard.EXPECT().ReadText(gomock.Any()).Return("Your code: 987-654", nil),
		presenter.EXPECT().RequestFocus(gomock.Any(), entity.CodeLength-1),
		verifier.EXPECT().VerifyCode(gomock.Any(), "987654").Return(true, nil),
		presenter.EXPECT().ShowNotice(gomock.Any(), noticeOfKind(entity.NoticeVerified)),
		navigator.EXPECT().ProceedAuthenticated(gomock.Any()),
	)

	require.NoError(t, f.ctrl.Paste(ctx))
	require.NoError(t, f.ctrl.Verify(ctx))

	assert.True(t, f.ctrl.Snapshot().Verified)
}
