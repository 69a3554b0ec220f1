package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSender struct {
	mu    sync.Mutex
	sent  []domain.Outbound
	fail  map[int64]bool
	delay time.Duration
}

func (r *recordingSender) Send(ctx context.Context, m domain.Outbound) error {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[m.ChatID] {
		return errors.New("blocked")
	}
	r.sent = append(r.sent, m)
	return nil
}

func (r *recordingSender) chats() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, len(r.sent))
	for i, m := range r.sent {
		ids[i] = m.ChatID
	}
	return ids
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	s := &recordingSender{}
	d, err := NewDispatcher(s, DispatcherConfig{}, zap.NewNop())
	require.NoError(t, err)

	d.Dispatch([]domain.Outbound{{ChatID: 1, Text: "a"}, {ChatID: 2, Text: "b"}, {ChatID: 1, Text: "c"}})
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []int64{1, 2, 1}, s.chats())
}

func TestDispatcher_FailuresAreLoggedNotRetried(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := &recordingSender{fail: map[int64]bool{2: true}}
	d, err := NewDispatcher(s, DispatcherConfig{}, zap.New(core))
	require.NoError(t, err)

	d.Dispatch([]domain.Outbound{{ChatID: 1}, {ChatID: 2}, {ChatID: 3}})
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []int64{1, 3}, s.chats())
	entries := logs.FilterMessage("outbound send failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["chat_id"])
}

func TestDispatcher_BroadcastIsThrottled(t *testing.T) {
	s := &recordingSender{}
	d, err := NewDispatcher(s, DispatcherConfig{BroadcastRate: 20}, zap.NewNop())
	require.NoError(t, err)

	var msgs []domain.Outbound
	for i := int64(1); i <= 5; i++ {
		msgs = append(msgs, domain.Outbound{ChatID: i, Broadcast: true})
	}

	start := time.Now()
	d.Dispatch(msgs)
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, s.chats(), 5)
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestDispatcher_TimeoutBoundsEachSend(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := &recordingSender{delay: time.Second}
	d, err := NewDispatcher(s, DispatcherConfig{Timeout: 20 * time.Millisecond}, zap.New(core))
	require.NoError(t, err)

	d.Dispatch([]domain.Outbound{{ChatID: 1}})
	require.NoError(t, d.Close(context.Background()))

	assert.Empty(t, s.chats())
	assert.Equal(t, 1, logs.FilterMessage("outbound send failed").Len())
}

func TestDispatcher_CloseAbortsBroadcast(t *testing.T) {
	s := &recordingSender{}
	d, err := NewDispatcher(s, DispatcherConfig{BroadcastRate: 1}, zap.NewNop())
	require.NoError(t, err)

	var msgs []domain.Outbound
	for i := int64(1); i <= 10; i++ {
		msgs = append(msgs, domain.Outbound{ChatID: i, Broadcast: true})
	}
	d.Dispatch(msgs)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
	assert.Less(t, len(s.chats()), 10)
}

func TestLogSender(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewLogSender(zap.New(core))

	require.NoError(t, s.Send(context.Background(), domain.Outbound{ChatID: 3, Text: "hi"}))
	assert.Equal(t, 1, logs.FilterMessage("bot token not set, message not sent").Len())
}
