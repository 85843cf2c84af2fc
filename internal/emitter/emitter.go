// Package emitter is the client side of continue-watching: it reports the
// player position to the server on a fixed interval and once more when
// playback stops.
package emitter

import (
	"context"
	"errors"
	"time"

	"github.com/lealre/reelstate/internal/logx"
	"github.com/lealre/reelstate/internal/metrics"
	"github.com/lealre/reelstate/internal/services/progress"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultInterval = 30 * time.Second
	flushTimeout    = 5 * time.Second
)

// Source reports what is playing. ok is false when nothing is.
type Source interface {
	Snapshot() (req progress.SaveProgressRequest, ok bool)
}

type Saver interface {
	Save(ctx context.Context, req progress.SaveProgressRequest) error
}

// Emitter implements suture.Service. Failed saves are logged and dropped;
// the next tick carries a newer position anyway.
type Emitter struct {
	source   Source
	saver    Saver
	interval time.Duration
}

func New(source Source, saver Saver, interval time.Duration) *Emitter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Emitter{source: source, saver: saver, interval: interval}
}

// Serve emits on every tick until ctx is cancelled, then makes one final
// best-effort save with a fresh deadline.
func (e *Emitter) Serve(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.Emit(ctx)
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			e.Emit(flushCtx)
			cancel()
			return ctx.Err()
		}
	}
}

// Emit saves the current position once. It is also the hook for a
// navigation-away signal.
func (e *Emitter) Emit(ctx context.Context) {
	req, ok := e.source.Snapshot()
	if !ok {
		return
	}

	logger := logx.FromContext(ctx)
	err := e.saver.Save(ctx, req)
	switch {
	case err == nil:
		metrics.EmitterSaves.WithLabelValues("saved").Inc()
		logger.Debug().Int64("media_id", req.MediaId).Msg("progress emitted")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.EmitterSaves.WithLabelValues("dropped").Inc()
		logger.Debug().Int64("media_id", req.MediaId).Msg("progress dropped, server unavailable")
	default:
		metrics.EmitterSaves.WithLabelValues("failed").Inc()
		logger.Warn().Err(err).Int64("media_id", req.MediaId).Msg("progress emit failed")
	}
}

func (e *Emitter) String() string {
	return "progress-emitter"
}
