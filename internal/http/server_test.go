package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
)

type engineMock struct {
	updates []domain.Update
	reply   []domain.Outbound
	err     error
	panic   bool
}

func (e *engineMock) Handle(_ context.Context, upd domain.Update) ([]domain.Outbound, error) {
	e.updates = append(e.updates, upd)
	if e.panic {
		panic("boom")
	}
	return e.reply, e.err
}

func (e *engineMock) ErrorReply(_ context.Context, chatID int64) domain.Outbound {
	return domain.Outbound{ChatID: chatID, Text: "temporary error"}
}

type dispatcherMock struct {
	mu   sync.Mutex
	msgs []domain.Outbound
}

func (d *dispatcherMock) Dispatch(msgs []domain.Outbound) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.msgs = append(d.msgs, msgs...)
}

func newTestRouter(eng *engineMock, secret string) (http.Handler, *dispatcherMock) {
	out := &dispatcherMock{}
	cfg := RouterConfig{Plan: "gold", WebhookSecret: secret, MaxRequestBodySize: 1 << 10}
	return NewRouter(cfg, eng, out, zap.NewNop()), out
}

func post(t *testing.T, h http.Handler, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

const textUpdate = `{"update_id":1,"message":{"message_id":5,"date":0,
	"from":{"id":77,"is_bot":false,"first_name":"Sara","username":"sara"},
	"chat":{"id":77,"type":"private"},"text":"hi"}}`

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(&engineMock{}, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "gold", body["plan"])
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))
}

func TestWebhook_GetReturnsOK(t *testing.T) {
	h, _ := newTestRouter(&engineMock{}, "")

	for _, path := range []string{"/telegram", "/webhook/telegram"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "OK", rr.Body.String(), path)
	}
}

func TestWebhook_DispatchesReplies(t *testing.T) {
	eng := &engineMock{reply: []domain.Outbound{{ChatID: 77, Text: "welcome"}}}
	h, out := newTestRouter(eng, "")

	rr := post(t, h, "/telegram", textUpdate, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	require.Len(t, eng.updates, 1)
	assert.Equal(t, domain.Update{ChatID: 77, FirstName: "Sara", Username: "sara", Text: "hi"}, eng.updates[0])
	assert.Equal(t, eng.reply, out.msgs)
}

func TestWebhook_SecretMismatch(t *testing.T) {
	eng := &engineMock{}
	h, out := newTestRouter(eng, "s3cret")

	rr := post(t, h, "/webhook/telegram", textUpdate, map[string]string{SecretHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = post(t, h, "/webhook/telegram", textUpdate, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	assert.Empty(t, eng.updates)
	assert.Empty(t, out.msgs)

	rr = post(t, h, "/webhook/telegram", textUpdate, map[string]string{SecretHeader: "s3cret"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, eng.updates, 1)
}

func TestWebhook_EngineErrorSendsNotice(t *testing.T) {
	eng := &engineMock{err: errors.New("db down")}
	h, out := newTestRouter(eng, "")

	rr := post(t, h, "/telegram", textUpdate, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, out.msgs, 1)
	assert.Equal(t, domain.Outbound{ChatID: 77, Text: "temporary error"}, out.msgs[0])
}

func TestWebhook_PanicSendsNotice(t *testing.T) {
	eng := &engineMock{panic: true}
	h, out := newTestRouter(eng, "")

	rr := post(t, h, "/telegram", textUpdate, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	require.Len(t, out.msgs, 1)
	assert.Equal(t, int64(77), out.msgs[0].ChatID)
}

func TestWebhook_IgnoresNonMessageUpdates(t *testing.T) {
	eng := &engineMock{}
	h, _ := newTestRouter(eng, "")

	rr := post(t, h, "/telegram", `{"update_id":2,"callback_query":{"id":"1"}}`, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = post(t, h, "/telegram", `not json`, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Empty(t, eng.updates)
}

func TestWebhook_ContactAndEditedMessage(t *testing.T) {
	eng := &engineMock{}
	h, _ := newTestRouter(eng, "")

	post(t, h, "/telegram", `{"update_id":3,"message":{"message_id":1,"date":0,
		"chat":{"id":9,"type":"private"},
		"contact":{"phone_number":"+989121234567","first_name":"Ali"}}}`, nil)
	post(t, h, "/telegram", `{"update_id":4,"edited_message":{"message_id":2,"date":0,
		"chat":{"id":9,"type":"private"},
		"location":{"latitude":35.7,"longitude":51.4}}}`, nil)

	require.Len(t, eng.updates, 2)
	require.NotNil(t, eng.updates[0].Contact)
	assert.Equal(t, "+989121234567", eng.updates[0].Contact.PhoneNumber)
	require.NotNil(t, eng.updates[1].Location)
	assert.InDelta(t, 35.7, eng.updates[1].Location.Latitude, 1e-9)
	assert.InDelta(t, 51.4, eng.updates[1].Location.Longitude, 1e-9)
}

func TestWebhook_BodyTooLarge(t *testing.T) {
	eng := &engineMock{}
	h, _ := newTestRouter(eng, "")

	big := `{"update_id":1,"message":{"chat":{"id":1},"text":"` + strings.Repeat("x", 4096) + `"}}`
	rr := post(t, h, "/telegram", big, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, eng.updates)
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rr.Header().Get(requestIDHeader))
}
