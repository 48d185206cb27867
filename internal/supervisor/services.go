package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/okian/stagebook/pkg/logger"
)

// HTTPServer adapts an http.Server to suture.Service.
type HTTPServer struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	log             logger.Logger

	// ready receives the bound address once listening; used by tests.
	ready chan string
}

// NewHTTPServer wraps srv. Shutdown waits at most shutdownTimeout.
func NewHTTPServer(srv *http.Server, shutdownTimeout time.Duration, log logger.Logger) *HTTPServer {
	return &HTTPServer{srv: srv, shutdownTimeout: shutdownTimeout, log: log, ready: make(chan string, 1)}
}

// Ready yields the listen address once the server accepts connections.
func (h *HTTPServer) Ready() <-chan string { return h.ready }

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (h *HTTPServer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", h.srv.Addr, err)
	}
	addr := ln.Addr().String()
	select {
	case h.ready <- addr:
	default:
	}
	h.log.Info(ctx, "starting HTTP server", logger.String("addr", addr))

	errCh := make(chan error, 1)
	go func() { errCh <- h.srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	h.log.Info(ctx, "shutting down HTTP server")
	if err := h.srv.Shutdown(shutdownCtx); err != nil {
		h.log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	<-errCh
	return nil
}

func (h *HTTPServer) String() string { return "http-server" }

// Ticker runs fn every interval until ctx is cancelled.
type Ticker struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context)
}

// NewTicker creates a periodic service.
func NewTicker(name string, interval time.Duration, fn func(ctx context.Context)) *Ticker {
	return &Ticker{name: name, interval: interval, fn: fn}
}

// Serve implements suture.Service.
func (t *Ticker) Serve(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.fn(ctx)
		}
	}
}

func (t *Ticker) String() string { return t.name }
