package emitter

import (
	"sync"
	"time"

	"github.com/lealre/reelstate/internal/services/progress"
)

// PlaybackClock is a Source for a title playing from a start offset at
// normal speed. Progress is in seconds.
type PlaybackClock struct {
	mu      sync.Mutex
	base    progress.SaveProgressRequest
	offset  float64
	started time.Time
	paused  bool
	now     func() time.Time
}

func NewPlaybackClock(base progress.SaveProgressRequest, offset float64) *PlaybackClock {
	return &PlaybackClock{base: base, offset: offset, started: time.Now(), now: time.Now}
}

func (c *PlaybackClock) Snapshot() (progress.SaveProgressRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := c.base
	position := c.position()
	req.Progress = &position
	return req, true
}

// Pause freezes the reported position until Resume.
func (c *PlaybackClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.offset = c.position()
	c.paused = true
}

func (c *PlaybackClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.started = c.now()
	c.paused = false
}

func (c *PlaybackClock) position() float64 {
	if c.paused {
		return c.offset
	}
	return c.offset + c.now().Sub(c.started).Seconds()
}
