package emitter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/lealre/reelstate/internal/logx"
	"github.com/lealre/reelstate/internal/services/progress"
	"github.com/sony/gobreaker/v2"
)

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("save progress: status %d: %s", e.StatusCode, e.Message)
}

type BreakerConfig struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 3, OpenTimeout: time.Minute}
}

// HTTPSaver posts positions to POST /continue. Transport errors and 5xx
// answers count toward opening the breaker; while it is open saves fail
// fast with gobreaker.ErrOpenState.
type HTTPSaver struct {
	baseURL string
	token   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewHTTPSaver(baseURL, token string, client *http.Client, cfg BreakerConfig) *HTTPSaver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	settings := gobreaker.Settings{
		Name:        "progress-saver",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			se, ok := err.(*StatusError)
			return ok && se.StatusCode < http.StatusInternalServerError
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger := logx.Logger()
			logger.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}

	return &HTTPSaver{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (s *HTTPSaver) Save(ctx context.Context, req progress.SaveProgressRequest) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.post(ctx, req)
	})
	return err
}

func (s *HTTPSaver) post(ctx context.Context, req progress.SaveProgressRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/continue", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
