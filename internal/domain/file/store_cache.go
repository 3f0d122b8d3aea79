package file

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Record lookups served from the LRU cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Record lookups that fell through to the store.",
	})
)

// cachedStore caches Get results in an expirable LRU. Records never change
// after Put, so deletion is the only invalidation.
type cachedStore struct {
	next  Store
	mu    sync.RWMutex // Get holds R across miss+fill, Delete holds W
	cache *expirable.LRU[string, FileRecord]
}

// NewCachedStore wraps next with an LRU of maxSize entries living ttl each.
// A non-positive maxSize disables caching and returns next unchanged.
func NewCachedStore(next Store, maxSize int, ttl time.Duration) Store {
	if maxSize <= 0 {
		return next
	}
	return &cachedStore{
		next:  next,
		cache: expirable.NewLRU[string, FileRecord](maxSize, nil, ttl),
	}
}

func (s *cachedStore) Put(ctx context.Context, rec *FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.next.Put(ctx, rec); err != nil {
		return err
	}
	s.cache.Add(rec.ID, *rec)
	return nil
}

func (s *cachedStore) Get(ctx context.Context, id string) (*FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.cache.Get(id); ok {
		cacheHitsTotal.Inc()
		return &rec, nil
	}
	cacheMissesTotal.Inc()

	rec, err := s.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, *rec)
	return rec, nil
}

func (s *cachedStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(id)
	return s.next.Delete(ctx, id)
}

func (s *cachedStore) All(ctx context.Context) iter.Seq2[FileRecord, error] {
	return s.next.All(ctx)
}
