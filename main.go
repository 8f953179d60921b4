package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/otpentry/internal/app"
)

const shutdownTimeout = 10 * time.Second

// @title           OTP Entry API
// @version         1.0
// @description     OTP Entry drives one-time code entry screens: slot input, paste, resend cooldown and verification, with events pushed over SSE.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
func main() {
	application := app.New()
	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	application.Stop(ctx)
}
