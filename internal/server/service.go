package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lealre/reelstate/internal/logx"
)

// HTTPService runs an *http.Server under a suture supervisor.
type HTTPService struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewHTTPService(server *http.Server, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve blocks until ctx is cancelled, then shuts the server down
// gracefully. A listen failure is returned so the supervisor restarts it.
func (s *HTTPService) Serve(ctx context.Context) error {
	logger := logx.Logger()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.server.Addr).Msg("Server is running")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		logger.Info().Msg("Server stopped")
		return ctx.Err()
	}
}

func (s *HTTPService) String() string {
	return "http-server"
}
