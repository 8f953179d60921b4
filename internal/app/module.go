package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/otpentry/internal/otpentry"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.otpentry.enabled") {
		mod, err := otpentry.New(otpentry.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Redis:      a.cacheConn,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Router:     a.router,
		})
		if err != nil {
			slog.Error("failed to init module otpentry", "error", err)
			os.Exit(1)
		}
		a.otpEntry = mod
	}
}
