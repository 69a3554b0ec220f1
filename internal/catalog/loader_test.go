package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	items    []domain.CatalogItem
	replaced int
	listErr  error
}

func (f *fakeStore) ReplaceProducts(_ context.Context, items []domain.CatalogItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]domain.CatalogItem(nil), items...)
	f.replaced++
	return nil
}

func (f *fakeStore) ListProducts(context.Context) ([]domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items, f.listErr
}

const feedBody = "sku,category,name,price,is_available\n" +
	"a,Coffee,Latte,3,1\n" +
	"b,Coffee,Mocha,4,0\n"

func feedServer(t *testing.T, hits *int32, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.WriteHeader(status)
		w.Write([]byte(feedBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestResolve_InlineWhenNotRemote(t *testing.T) {
	l := NewLoader(&fakeStore{}, Options{
		Getenv: env(map[string]string{"PRODUCTS": "Latte|3", "PRODUCTS_EN": "Tea|2\nCake|5"}),
	})

	en := l.Resolve(context.Background(), domain.LanguageEN)
	require.Len(t, en, 2)
	assert.Equal(t, "Tea", en[0].DisplayName)

	fa := l.Resolve(context.Background(), domain.LanguageFA)
	require.Len(t, fa, 1)
	assert.Equal(t, "Latte", fa[0].DisplayName)
}

func TestResolve_RemoteRequiresURL(t *testing.T) {
	l := NewLoader(&fakeStore{}, Options{Remote: true})
	assert.False(t, l.Remote())
}

func TestResolve_FetchesOnceThenUsesSnapshot(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusOK)
	store := &fakeStore{}
	l := NewLoader(store, Options{Remote: true, FeedURL: srv.URL, Getenv: env(nil)})

	items := l.Resolve(context.Background(), domain.LanguageFA)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].SKU)
	assert.Len(t, store.items, 2, "unavailable rows are stored")

	again := l.Resolve(context.Background(), domain.LanguageFA)
	assert.Equal(t, items, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestResolve_EmptySyncedFeedIsNotRefetched(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("sku,category,name,price,is_available\nb,Coffee,Mocha,4,no\n"))
	}))
	t.Cleanup(srv.Close)

	l := NewLoader(&fakeStore{}, Options{
		Remote: true, FeedURL: srv.URL,
		Getenv: env(map[string]string{"PRODUCTS": "Tea|2"}),
	})

	for i := 0; i < 5; i++ {
		items := l.Resolve(context.Background(), domain.LanguageEN)
		require.Len(t, items, 1)
		assert.Equal(t, "Tea", items[0].DisplayName)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	_, err := l.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestResolve_StoredRowsWithoutAvailableItemsSkipFetch(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusOK)
	store := &fakeStore{items: []domain.CatalogItem{
		{SKU: "s", DisplayName: "Gone", Category: "X", IsAvailable: false, StockLevel: -1},
	}}
	l := NewLoader(store, Options{
		Remote: true, FeedURL: srv.URL,
		Getenv: env(map[string]string{"PRODUCTS": "Tea|2"}),
	})

	items := l.Resolve(context.Background(), domain.LanguageEN)
	require.Len(t, items, 1)
	assert.Equal(t, "Tea", items[0].DisplayName)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestResolve_UsesStoredSnapshotBeforeFetching(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusOK)
	store := &fakeStore{items: []domain.CatalogItem{
		{SKU: "s", DisplayName: "Stored", Category: "X", IsAvailable: true, StockLevel: -1},
	}}
	l := NewLoader(store, Options{Remote: true, FeedURL: srv.URL, Getenv: env(nil)})

	items := l.Resolve(context.Background(), domain.LanguageFA)
	require.Len(t, items, 1)
	assert.Equal(t, "Stored", items[0].DisplayName)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestResolve_FallsBackToInlineOnFeedError(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusInternalServerError)
	l := NewLoader(&fakeStore{}, Options{
		Remote: true, FeedURL: srv.URL,
		Getenv: env(map[string]string{"PRODUCTS": "Fallback|1"}),
	})

	items := l.Resolve(context.Background(), domain.LanguageFA)
	require.Len(t, items, 1)
	assert.Equal(t, "Fallback", items[0].DisplayName)
}

func TestResolve_FallsBackOnStoreError(t *testing.T) {
	l := NewLoader(&fakeStore{listErr: errors.New("db locked")}, Options{
		Remote: true, FeedURL: "http://127.0.0.1:0/feed",
		Getenv: env(map[string]string{"PRODUCTS": "Fallback|1"}),
	})

	items := l.Resolve(context.Background(), domain.LanguageFA)
	require.Len(t, items, 1)
}

func TestSync_ReplacesSnapshot(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusOK)
	store := &fakeStore{items: []domain.CatalogItem{{SKU: "old", DisplayName: "Old", IsAvailable: true}}}
	l := NewLoader(store, Options{Remote: true, FeedURL: srv.URL, Getenv: env(nil)})

	assert.Equal(t, "old", l.Resolve(context.Background(), domain.LanguageFA)[0].SKU)

	n, err := l.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, store.replaced)

	items := l.Resolve(context.Background(), domain.LanguageFA)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].SKU)
}

func TestSync_NotConfigured(t *testing.T) {
	l := NewLoader(&fakeStore{}, Options{})
	_, err := l.Sync(context.Background())
	assert.ErrorIs(t, err, ErrFeedNotConfigured)
}

func TestSync_HTTPError(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusNotFound)
	store := &fakeStore{}
	l := NewLoader(store, Options{Remote: true, FeedURL: srv.URL})

	_, err := l.Sync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Zero(t, store.replaced)
}

func TestSync_BreakerOpensAfterFailures(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusBadGateway)
	l := NewLoader(&fakeStore{}, Options{Remote: true, FeedURL: srv.URL})

	for i := 0; i < 5; i++ {
		_, err := l.Sync(context.Background())
		assert.Error(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}
