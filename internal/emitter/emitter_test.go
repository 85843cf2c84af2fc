package emitter

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lealre/reelstate/internal/services/progress"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSaver struct {
	mock.Mock
	calls atomic.Int32
}

func (m *mockSaver) Save(ctx context.Context, req progress.SaveProgressRequest) error {
	m.calls.Add(1)
	args := m.Called(ctx, req)
	return args.Error(0)
}

type staticSource struct {
	req progress.SaveProgressRequest
	ok  bool
}

func (s staticSource) Snapshot() (progress.SaveProgressRequest, bool) {
	return s.req, s.ok
}

func sampleRequest() progress.SaveProgressRequest {
	p := 42.0
	return progress.SaveProgressRequest{MediaId: 42, Title: "Heat", MediaType: "movie", Progress: &p}
}

func TestEmitterSavesOnEveryTick(t *testing.T) {
	saver := &mockSaver{}
	saver.On("Save", mock.Anything, sampleRequest()).Return(nil)

	e := New(staticSource{req: sampleRequest(), ok: true}, saver, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Serve(ctx) }()

	require.Eventually(t, func() bool { return saver.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	err := <-done
	require.ErrorIs(t, err, context.Canceled)
	saver.AssertExpectations(t)
}

func TestEmitterFlushesOnCancel(t *testing.T) {
	saver := &mockSaver{}
	saver.On("Save", mock.Anything, sampleRequest()).Return(nil).Once()

	e := New(staticSource{req: sampleRequest(), ok: true}, saver, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, e.Serve(ctx), context.Canceled)

	saver.AssertNumberOfCalls(t, "Save", 1)
	// The flush must not inherit the cancelled context.
	flushCtx := saver.Calls[0].Arguments.Get(0).(context.Context)
	require.NoError(t, flushCtx.Err())
}

func TestEmitterKeepsGoingAfterFailures(t *testing.T) {
	saver := &mockSaver{}
	saver.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	e := New(staticSource{req: sampleRequest(), ok: true}, saver, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Serve(ctx) }()

	require.Eventually(t, func() bool { return saver.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestEmitterSkipsWhenNothingPlays(t *testing.T) {
	saver := &mockSaver{}

	e := New(staticSource{ok: false}, saver, time.Hour)
	e.Emit(context.Background())

	saver.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPlaybackClock(t *testing.T) {
	now := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)
	clock := NewPlaybackClock(sampleRequest(), 100)
	clock.started = now
	clock.now = func() time.Time { return now }

	now = now.Add(30 * time.Second)
	req, ok := clock.Snapshot()
	require.True(t, ok)
	require.Equal(t, 130.0, *req.Progress)
	require.Equal(t, "Heat", req.Title)

	clock.Pause()
	now = now.Add(time.Minute)
	req, _ = clock.Snapshot()
	require.Equal(t, 130.0, *req.Progress)

	clock.Resume()
	now = now.Add(10 * time.Second)
	req, _ = clock.Snapshot()
	require.Equal(t, 140.0, *req.Progress)
}
