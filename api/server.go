package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/apexitsupply/apex-backend/pkg/config"
	"github.com/apexitsupply/apex-backend/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// Server wraps http.Server with the house defaults and graceful shutdown.
type Server struct {
	inner *http.Server
	logg  *logger.Logger
}

// NewServer builds a server bound to the configured port.
func NewServer(cfg *config.Config, handler http.Handler, logg *logger.Logger) *Server {
	return &Server{
		inner: &http.Server{
			Addr:              ":" + cfg.App.Port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logg: logg,
	}
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.inner.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if s.logg != nil {
		s.logg.Info(context.Background(), "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.inner.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
