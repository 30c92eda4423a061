package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// Run serves until ctx is cancelled, then drains in-flight requests and runs
// hooks in order. Hooks run after the listener is closed so they can release
// resources requests were still using.
func Run(ctx context.Context, srv *http.Server, log *logger.Logger, serviceName string, shutdownTimeout time.Duration, hooks ...ShutdownHook) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return Serve(ctx, srv, ln, log, serviceName, shutdownTimeout, hooks...)
}

func Serve(ctx context.Context, srv *http.Server, ln net.Listener, log *logger.Logger, serviceName string, shutdownTimeout time.Duration, hooks ...ShutdownHook) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("%s service listening on %s", serviceName, ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("%s service stopped: %w", serviceName, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("shutting down %s service...", serviceName)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	srv.SetKeepAlivesEnabled(false)

	var shutdownErr error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s service forced to shutdown: %v", serviceName, err)
		shutdownErr = err
	}

	for i, hook := range hooks {
		if err := hook(shutdownCtx); err != nil {
			log.Errorf("%s service: shutdown hook %d failed: %v", serviceName, i, err)
		}
	}

	if shutdownErr == nil {
		log.Infof("%s service stopped gracefully", serviceName)
	}
	return shutdownErr
}
