// Package supervisor builds the suture supervisor that runs the long-lived
// services of a process.
package supervisor

import (
	"time"

	"github.com/lealre/reelstate/internal/logx"
	"github.com/thejerf/suture/v4"
)

type Config struct {
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration
	ShutdownTimeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// New returns a supervisor whose restart and failure events go to the
// process logger.
func New(name string, cfg Config) *suture.Supervisor {
	return suture.New(name, suture.Spec{
		EventHook:        logEvent,
		FailureThreshold: cfg.FailureThreshold,
		FailureDecay:     cfg.FailureDecay,
		FailureBackoff:   cfg.FailureBackoff,
		Timeout:          cfg.ShutdownTimeout,
	})
}

func logEvent(e suture.Event) {
	logger := logx.Logger()
	event := logger.Warn()
	if e.Type() == suture.EventTypeBackoff || e.Type() == suture.EventTypeResume {
		event = logger.Info()
	}
	event.Fields(e.Map()).Msg(e.String())
}
