package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrFeedNotConfigured = errors.New("catalog feed not configured")

// maxFeedSize bounds how much of a feed response is read.
const maxFeedSize = 8 << 20

// ProductStore is the durable catalog snapshot.
type ProductStore interface {
	ReplaceProducts(ctx context.Context, items []domain.CatalogItem) error
	ListProducts(ctx context.Context) ([]domain.CatalogItem, error)
}

type Options struct {
	// Remote enables feed sourcing. It also requires a non-empty FeedURL.
	Remote  bool
	FeedURL string
	Timeout time.Duration
	Client  *http.Client
	// Getenv resolves inline PRODUCTS variables. Defaults to os.Getenv.
	Getenv func(string) string
	Logger *zap.Logger
}

type Loader struct {
	remote  bool
	feedURL string
	client  *http.Client
	getenv  func(string) string
	store   ProductStore
	log     *zap.Logger
	breaker *gobreaker.CircuitBreaker[[]domain.CatalogItem]
	sfg     singleflight.Group

	mu       sync.RWMutex
	snapshot []domain.CatalogItem
	loaded   bool
}

func NewLoader(store ProductStore, opts Options) *Loader {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	l := &Loader{
		remote:  opts.Remote && opts.FeedURL != "",
		feedURL: opts.FeedURL,
		client:  opts.Client,
		getenv:  opts.Getenv,
		store:   store,
		log:     opts.Logger.Named("catalog"),
	}
	l.breaker = gobreaker.NewCircuitBreaker[[]domain.CatalogItem](gobreaker.Settings{
		Name:        "catalog-feed",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return l
}

// Remote reports whether the loader sources from the feed.
func (l *Loader) Remote() bool {
	return l.remote
}

// Resolve returns the catalog for lang. Remote failures fall back to the
// inline catalog and are only logged.
func (l *Loader) Resolve(ctx context.Context, lang domain.Language) []domain.CatalogItem {
	if l.remote {
		items, err := l.resolveRemote(ctx)
		if err == nil && len(items) > 0 {
			return items
		}
		if err != nil {
			l.log.Warn("remote catalog unavailable, using inline products", zap.Error(err))
		}
	}
	return l.Inline(lang)
}

// resolveRemote fetches the feed only when no snapshot has been loaded yet.
// A snapshot with no available rows is still a snapshot.
func (l *Loader) resolveRemote(ctx context.Context) ([]domain.CatalogItem, error) {
	if items, ok := l.cached(); ok {
		return items, nil
	}

	v, err, _ := l.sfg.Do("resolve", func() (interface{}, error) {
		if items, ok := l.cached(); ok {
			return items, nil
		}

		stored, err := l.store.ListProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("load stored catalog: %w", err)
		}
		if len(stored) > 0 {
			items := availableOnly(stored)
			l.setSnapshot(items)
			return items, nil
		}

		if _, err := l.sync(ctx); err != nil {
			return nil, err
		}
		items, _ := l.cached()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.CatalogItem), nil
}

// Sync fetches the feed, replaces the stored catalog and the in-memory
// snapshot, and returns the number of rows read.
func (l *Loader) Sync(ctx context.Context) (int, error) {
	v, err, _ := l.sfg.Do("sync", func() (interface{}, error) {
		return l.sync(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (l *Loader) sync(ctx context.Context) (int, error) {
	if l.feedURL == "" {
		return 0, ErrFeedNotConfigured
	}

	items, err := l.breaker.Execute(func() ([]domain.CatalogItem, error) {
		return l.fetch(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("fetch feed: %w", err)
	}

	if err := l.store.ReplaceProducts(ctx, items); err != nil {
		return 0, fmt.Errorf("store catalog: %w", err)
	}
	l.setSnapshot(availableOnly(items))

	l.log.Info("catalog synced", zap.Int("rows", len(items)))
	return len(items), nil
}

func (l *Loader) fetch(ctx context.Context) ([]domain.CatalogItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return ParseFeed(io.LimitReader(resp.Body, maxFeedSize))
}

// Inline reads PRODUCTS_<LANG>, falling back to PRODUCTS.
func (l *Loader) Inline(lang domain.Language) []domain.CatalogItem {
	raw := l.getenv("PRODUCTS_" + string(lang))
	if raw == "" {
		raw = l.getenv("PRODUCTS")
	}
	return ParseInline(raw)
}

// cached reports the snapshot and whether one has been loaded.
func (l *Loader) cached() ([]domain.CatalogItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot, l.loaded
}

// setSnapshot swaps the whole snapshot; readers never see a partial list.
func (l *Loader) setSnapshot(items []domain.CatalogItem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshot = items
	l.loaded = true
}
