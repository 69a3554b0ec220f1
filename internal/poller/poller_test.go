package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type syncerMock struct {
	calls atomic.Int32
	err   error
}

func (s *syncerMock) Sync(context.Context) (int, error) {
	s.calls.Add(1)
	return 3, s.err
}

func TestPoller_SyncsOnEveryTick(t *testing.T) {
	s := &syncerMock{}
	p := NewPoller(s, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}

func TestPoller_Disabled(t *testing.T) {
	s := &syncerMock{}
	p := NewPoller(s, 0, zap.NewNop())

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled poller should return immediately")
	}
	assert.Zero(t, s.calls.Load())
}

func TestPoller_LogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := &syncerMock{err: errors.New("feed down")}
	p := NewPoller(s, time.Hour, zap.New(core))

	p.syncOnce(context.Background())

	entries := logs.FilterMessage("catalog sync failed").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "feed down", entries[0].ContextMap()["error"])
}
