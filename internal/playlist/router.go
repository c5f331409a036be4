// Package playlist picks a Spotify playlist to go with a journal entry.
package playlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/justestif/go-mood-journal/internal/spotify"
)

const (
	// NotFoundName and NotFoundURL make up the "nothing found" recommendation.
	NotFoundName = "No playlist found"
	NotFoundURL  = "#"

	// DefaultAttemptTimeout bounds a single catalog search.
	DefaultAttemptTimeout = 3 * time.Second

	// DefaultRetryDelay is the pause before the single retry.
	DefaultRetryDelay = 500 * time.Millisecond
)

// ErrSearchFailed wraps the last error after all search attempts failed.
var ErrSearchFailed = errors.New("playlist search failed")

// Searcher abstracts the catalog client for testing.
type Searcher interface {
	SearchPlaylists(ctx context.Context, query string, limit int) ([]spotify.Playlist, error)
}

// Recommendation is a playlist suggested for an entry.
type Recommendation struct {
	Name          string
	URL           string
	CoverImageURL string // empty when the playlist has no cover
	Query         string // search query the recommendation came from
}

// NotFound returns the placeholder recommendation for query.
func NotFound(query string) Recommendation {
	return Recommendation{Name: NotFoundName, URL: NotFoundURL, Query: query}
}

// Found reports whether r refers to a real playlist.
func (r Recommendation) Found() bool {
	return r.URL != "" && r.URL != NotFoundURL
}

// Router maps entry text to a playlist via ordered keyword rules.
type Router struct {
	searcher       Searcher
	rules          []Rule
	fallback       string
	attemptTimeout time.Duration
	retryDelay     time.Duration
	retries        int
	logger         *log.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithRules replaces the default rule table. Declaration order is kept.
func WithRules(rules []Rule) Option {
	return func(r *Router) {
		r.rules = normalizeRules(rules)
	}
}

// WithFallbackQuery sets the query used when no rule matches.
func WithFallbackQuery(q string) Option {
	return func(r *Router) {
		if q = strings.TrimSpace(q); q != "" {
			r.fallback = q
		}
	}
}

// WithAttemptTimeout bounds each search attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.attemptTimeout = d
		}
	}
}

// WithRetryDelay sets the pause before retrying a failed search.
func WithRetryDelay(d time.Duration) Option {
	return func(r *Router) {
		if d >= 0 {
			r.retryDelay = d
		}
	}
}

// WithLogger sets the logger used to report absorbed search failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Router that searches with s.
func New(s Searcher, opts ...Option) *Router {
	r := &Router{
		searcher:       s,
		rules:          DefaultRules(),
		fallback:       DefaultFallbackQuery,
		attemptTimeout: DefaultAttemptTimeout,
		retryDelay:     DefaultRetryDelay,
		retries:        1,
		logger:         log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Query returns the search query for text without touching the network.
func (r *Router) Query(text string) string {
	return selectQuery(r.rules, r.fallback, text)
}

// Route picks a playlist for text. It never fails: search errors and empty
// results both yield the NotFound recommendation, as does a playlist
// without a link.
func (r *Router) Route(ctx context.Context, text string) Recommendation {
	query := r.Query(text)

	playlists, err := r.search(ctx, query)
	if err != nil {
		r.logger.Warn("playlist lookup unavailable", "query", query, "err", err)
		return NotFound(query)
	}
	if len(playlists) == 0 {
		r.logger.Debug("no playlist matched", "query", query)
		return NotFound(query)
	}

	p := playlists[0]
	if p.URL == "" {
		r.logger.Debug("playlist has no link", "query", query, "name", p.Name)
		return NotFound(query)
	}
	return Recommendation{
		Name:          p.Name,
		URL:           p.URL,
		CoverImageURL: p.CoverImage(),
		Query:         query,
	}
}

// search runs the catalog search with a per-attempt timeout and one retry.
func (r *Router) search(ctx context.Context, query string) ([]spotify.Playlist, error) {
	if r.searcher == nil {
		return nil, fmt.Errorf("%w: no catalog client configured", ErrSearchFailed)
	}

	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrSearchFailed, ctx.Err())
			case <-time.After(r.retryDelay):
			}
		}

		playlists, err := r.searchOnce(ctx, query)
		if err == nil {
			return playlists, nil
		}
		lastErr = err
		r.logger.Debug("playlist search attempt failed", "query", query, "attempt", attempt+1, "err", err)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrSearchFailed, lastErr)
}

func (r *Router) searchOnce(ctx context.Context, query string) ([]spotify.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
	defer cancel()
	return r.searcher.SearchPlaylists(ctx, query, 1)
}
