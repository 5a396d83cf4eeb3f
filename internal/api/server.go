package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/wonny/brier-terminal/backend/pkg/config"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// DefaultDrainTimeout bounds how long Serve waits for in-flight requests
const DefaultDrainTimeout = 30 * time.Second

// Server is the Brier dashboard listener.
// REST 엔드포인트와 /ws/whales 스트림이 하나의 리스너를 공유한다.
type Server struct {
	httpServer   *http.Server
	logger       *logger.Logger
	env          string
	drainTimeout time.Duration
}

// New builds the server for cfg.Port. Nothing is bound until Listen.
func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			// /ws/whales pumps manage their own deadlines after the upgrade
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:       log.WithComponent("server"),
		env:          cfg.Env,
		drainTimeout: DefaultDrainTimeout,
	}
}

// OnDrain registers fn to run when Serve starts draining.
// Hijacked websocket conns are not tracked by net/http, so the whale hub hooks in here.
func (s *Server) OnDrain(fn func()) {
	s.httpServer.RegisterOnShutdown(fn)
}

// Listen binds the configured address so a busy port fails before Serve
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return ln, nil
}

// Serve handles requests on ln until ctx is cancelled, then drains.
// A clean drain returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.WithFields(map[string]interface{}{
		"addr": ln.Addr().String(),
		"env":  s.env,
	}).Info("Brier API listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", ln.Addr(), err)
	case <-ctx.Done():
	}

	s.logger.WithField("timeout", s.drainTimeout.String()).Info("Draining API connections")

	drainCtx, cancel := context.WithTimeout(context.Background(), s.drainTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("drain api server: %w", err)
	}
	return nil
}
