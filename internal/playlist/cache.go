package playlist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/justestif/go-mood-journal/internal/spotify"
)

// DefaultCacheTTL is how long a search result is reused.
const DefaultCacheTTL = 10 * time.Minute

type cacheEntry struct {
	playlists []spotify.Playlist
	fetchedAt time.Time
}

// CachedSearcher wraps a Searcher with an in-memory result cache.
// Only successful searches are cached.
type CachedSearcher struct {
	next Searcher
	ttl  time.Duration
	now  func() time.Time

	// key = "{limit}:{query}"
	cache   map[string]cacheEntry
	cacheMu sync.RWMutex
}

// NewCachedSearcher caches results from next for ttl.
// A non-positive ttl uses DefaultCacheTTL.
func NewCachedSearcher(next Searcher, ttl time.Duration) *CachedSearcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSearcher{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]cacheEntry),
	}
}

// SearchPlaylists implements Searcher.
func (c *CachedSearcher) SearchPlaylists(ctx context.Context, query string, limit int) ([]spotify.Playlist, error) {
	key := fmt.Sprintf("%d:%s", limit, query)

	c.cacheMu.RLock()
	cached, ok := c.cache[key]
	c.cacheMu.RUnlock()
	if ok && c.now().Sub(cached.fetchedAt) < c.ttl {
		return cached.playlists, nil
	}

	playlists, err := c.next.SearchPlaylists(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	c.cacheMu.Lock()
	c.cache[key] = cacheEntry{playlists: playlists, fetchedAt: c.now()}
	c.cacheMu.Unlock()

	return playlists, nil
}
