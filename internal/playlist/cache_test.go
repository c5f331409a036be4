package playlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/justestif/go-mood-journal/internal/spotify"
)

func TestCachedSearcher(t *testing.T) {
	s := &fakeSearcher{fn: returning(spotify.Playlist{Name: "Chill"})}
	c := NewCachedSearcher(s, time.Minute)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for range 3 {
		got, err := c.SearchPlaylists(context.Background(), "chill", 1)
		if err != nil {
			t.Fatalf("SearchPlaylists() error = %v", err)
		}
		if len(got) != 1 || got[0].Name != "Chill" {
			t.Fatalf("SearchPlaylists() = %v", got)
		}
	}
	if s.calls() != 1 {
		t.Errorf("calls = %d, want 1 (cached)", s.calls())
	}

	// Different query misses the cache.
	if _, err := c.SearchPlaylists(context.Background(), "happy upbeat", 1); err != nil {
		t.Fatalf("SearchPlaylists() error = %v", err)
	}
	if s.calls() != 2 {
		t.Errorf("calls = %d, want 2", s.calls())
	}

	// Expired entry is refetched.
	now = now.Add(2 * time.Minute)
	if _, err := c.SearchPlaylists(context.Background(), "chill", 1); err != nil {
		t.Fatalf("SearchPlaylists() error = %v", err)
	}
	if s.calls() != 3 {
		t.Errorf("calls = %d, want 3 after expiry", s.calls())
	}
}

func TestCachedSearcher_ErrorsNotCached(t *testing.T) {
	wantErr := errors.New("unavailable")
	s := &fakeSearcher{fn: failing(wantErr)}
	c := NewCachedSearcher(s, 0)

	for range 2 {
		if _, err := c.SearchPlaylists(context.Background(), "chill", 1); !errors.Is(err, wantErr) {
			t.Fatalf("SearchPlaylists() error = %v, want %v", err, wantErr)
		}
	}
	if s.calls() != 2 {
		t.Errorf("calls = %d, want 2", s.calls())
	}
	if c.ttl != DefaultCacheTTL {
		t.Errorf("ttl = %v, want default", c.ttl)
	}
}
