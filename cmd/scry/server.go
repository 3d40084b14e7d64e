package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/scry-cards/internal/api"
)

const shutdownTimeout = 10 * time.Second

// runServe serves the reporting API until the context is cancelled.
func runServe(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet("serve", env)
	port := fs.Int("port", 0, "Port to listen on (default: server.port from the configuration)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *port < 0 || *port > 65535 {
		fmt.Fprintf(env.stderr, "error: invalid port %d\n", *port)
		return errUsage
	}

	app, err := newApplication(ctx, env)
	if err != nil {
		return err
	}
	defer app.cleanup()

	if *port != 0 {
		app.config.Server.Port = *port
	}

	handler := api.NewHandler(app.cardService, pathsOrCwd(fs), app.logger)
	router := api.NewRouter(handler, app.config.Server.AllowedOrigins, app.logger)

	return app.startHTTPServer(ctx, router)
}

// startHTTPServer serves router until ctx is cancelled, then shuts the server
// down gracefully.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(app.config.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}
