// Package catalog implements the cache-aside repository over the book
// store. Reads go through the cache, writes invalidate it after the
// store write commits. The cache is never authoritative: every cache
// failure is fail-open and falls back to the store.
package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/launchpad/bookstore/internal/cache"
	"github.com/launchpad/bookstore/internal/domain"
	"github.com/launchpad/bookstore/internal/observability"
)

//go:generate mockgen -source repository.go -destination=repository_mock_test.go -package=catalog

const (
	keyAll = "item:all"

	// DefaultTTL bounds how long a stale entry can outlive a lost
	// invalidation (see the repopulation race note on Update).
	DefaultTTL = 5 * time.Minute
)

func itemKey(id int64) string { return fmt.Sprintf("item:%d", id) }

// Store is the durable CRUD contract the repository fronts.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Book, bool, error)
	GetAll(ctx context.Context) ([]domain.Book, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, b *domain.Book) error
	Update(ctx context.Context, b domain.Book) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	QueryPage(ctx context.Context, offset, limit int) ([]domain.Book, error)
}

type Repository struct {
	store   Store
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
	metrics observability.Metrics
}

// New wires an explicitly injected cache handle; tests substitute an
// in-memory fake with their own TTL control.
func New(store Store, c cache.Cache, ttl time.Duration, logger *zap.Logger, metrics observability.Metrics) *Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &Repository{
		store:   store,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

// GetAll serves the whole catalog through the item:all entry. An empty
// store result is returned but never cached, so a catalog that gains
// its first book does not need an invalidation to become visible.
func (r *Repository) GetAll(ctx context.Context) ([]domain.Book, error) {
	tCache := time.Now()
	if raw, found := r.cacheGet(ctx, keyAll); found {
		books, err := decodeBookList(raw)
		if err == nil {
			r.metrics.IncCacheHit()
			r.metrics.ObserveLookup(observability.SourceCache, msSince(tCache), 0)
			return books, nil
		}
		r.dropBadSnapshot(ctx, keyAll, err)
	}
	r.metrics.IncCacheMiss()

	tDB := time.Now()
	books, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all books: %w", err)
	}
	if len(books) > 0 {
		r.cachePut(ctx, keyAll, func() (string, error) { return encodeBookList(books) })
	}
	r.metrics.ObserveLookup(observability.SourceStore, msSince(tCache), msSince(tDB))
	return books, nil
}

// GetByID is the single-item read-through. Absence is a found flag,
// not an error.
func (r *Repository) GetByID(ctx context.Context, id int64) (domain.Book, bool, error) {
	key := itemKey(id)

	tCache := time.Now()
	if raw, found := r.cacheGet(ctx, key); found {
		book, err := decodeBook(raw)
		if err == nil {
			r.metrics.IncCacheHit()
			r.metrics.ObserveLookup(observability.SourceCache, msSince(tCache), 0)
			return book, true, nil
		}
		r.dropBadSnapshot(ctx, key, err)
	}
	r.metrics.IncCacheMiss()

	tDB := time.Now()
	book, found, err := r.store.GetByID(ctx, id)
	if err != nil {
		return domain.Book{}, false, fmt.Errorf("get book %d: %w", id, err)
	}
	if !found {
		return domain.Book{}, false, nil
	}
	r.cachePut(ctx, key, func() (string, error) { return encodeBook(book) })
	r.metrics.ObserveLookup(observability.SourceStore, msSince(tCache), msSince(tDB))
	return book, true, nil
}

// Exists always asks the store. An existence check feeding a write
// decision must not be TTL-stale.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.store.Exists(ctx, id)
}

// GetPaginated always asks the store: caching every (page, size)
// combination would explode the key space for no hit rate. The count
// is taken in the same logical window as the page.
func (r *Repository) GetPaginated(ctx context.Context, pageNumber, pageSize int) ([]domain.Book, int64, error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, 0, fmt.Errorf("%w: pageNumber and pageSize must be positive", domain.ErrValidation)
	}

	total, err := r.store.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}
	books, err := r.store.QueryPage(ctx, (pageNumber-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("query books page: %w", err)
	}
	return books, total, nil
}

// Add inserts and then drops the collection entry. The new id has no
// single-item entry to drop, and it is not pre-populated either.
func (r *Repository) Add(ctx context.Context, b *domain.Book) error {
	if err := r.store.Insert(ctx, b); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	r.invalidate(ctx, keyAll)
	return nil
}

// Update replaces the stored row, then invalidates both entries. The
// store write happens-before the invalidation, but a concurrent reader
// can still repopulate the cache with the pre-write value in between;
// that stale entry lives until its TTL. Documented tradeoff, not a bug
// to lock away.
func (r *Repository) Update(ctx context.Context, b domain.Book) (bool, error) {
	found, err := r.store.Update(ctx, b)
	if err != nil {
		return false, fmt.Errorf("update book %d: %w", b.ID, err)
	}
	if !found {
		return false, nil
	}
	r.invalidate(ctx, itemKey(b.ID), keyAll)
	return true, nil
}

// Delete removes by id without loading the row first, then drops both
// entries.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	found, err := r.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete book %d: %w", id, err)
	}
	if !found {
		return false, nil
	}
	r.invalidate(ctx, itemKey(id), keyAll)
	return true, nil
}

// cacheGet swallows cache failures: unavailable cache means miss.
func (r *Repository) cacheGet(ctx context.Context, key string) (string, bool) {
	raw, found, err := r.cache.GetString(ctx, key)
	if err != nil {
		r.metrics.IncCacheError()
		r.logger.Warn("cache get failed, falling back to store",
			zap.String("key", key),
			zap.Error(err),
		)
		return "", false
	}
	return raw, found
}

func (r *Repository) cachePut(ctx context.Context, key string, encode func() (string, error)) {
	raw, err := encode()
	if err != nil {
		r.logger.Error("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.cache.SetString(ctx, key, raw, r.ttl); err != nil {
		r.metrics.IncCacheError()
		r.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate is best-effort: the store write already succeeded, so a
// failed removal only extends staleness until the entry's TTL.
func (r *Repository) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := r.cache.Remove(ctx, key); err != nil {
			r.metrics.IncCacheError()
			r.logger.Warn("cache invalidation failed, entry will expire by TTL",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

func (r *Repository) dropBadSnapshot(ctx context.Context, key string, err error) {
	r.logger.Warn("cache snapshot rejected", zap.String("key", key), zap.Error(err))
	if err := r.cache.Remove(ctx, key); err != nil {
		r.logger.Warn("cache remove failed", zap.String("key", key), zap.Error(err))
	}
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
