package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

type namedServer struct {
	name   string
	server *http.Server
}

// servers lists the listeners in start order. The SSE listener has no write
// timeout so streams can stay open.
func (a *App) servers() []namedServer {
	return []namedServer{
		{name: "http", server: a.httpServer},
		{name: "sse", server: a.sseServer},
	}
}

// Start launches both listeners and returns a channel closed once SIGINT or
// SIGTERM arrives. Config edits are picked up by the file watcher, so SIGHUP
// is not a shutdown signal here.
func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	for _, s := range a.servers() {
		go func() {
			slog.Info("server listening", "name", s.name, "address", s.server.Addr)

			if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				slog.Error("failed to listen and serve", "name", s.name, "error", err)
				os.Exit(1)
			}
		}()
	}

	go func() {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		<-ctx.Done()
		a.cancel()
		close(terminateChan)

		slog.Info("termination signal received, shutting down")
	}()

	return terminateChan
}

// Stop drains the listeners, waits for background goroutines (the session
// reaper closes the remaining sessions on its way out), then releases
// resources in reverse dependency order.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	for _, s := range a.servers() {
		if err := s.server.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", s.name+" server", "error", err)
		}
	}

	slog.InfoContext(ctx, "waiting for all goroutine to finish")
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}
