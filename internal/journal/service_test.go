package journal

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/justestif/go-mood-journal/internal/mood"
	"github.com/justestif/go-mood-journal/internal/playlist"
)

type stubClassifier struct {
	label mood.Label
	calls int
}

func (c *stubClassifier) Classify(string) mood.Label {
	c.calls++
	return c.label
}

type stubRouter struct {
	rec   playlist.Recommendation
	calls int
}

func (r *stubRouter) Route(context.Context, string) playlist.Recommendation {
	r.calls++
	return r.rec
}

type failingStore struct{ err error }

func (s failingStore) Append(context.Context, Entry) error { return s.err }

func (s failingStore) List(context.Context, int) ([]Entry, error) { return nil, s.err }

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 18, 30, 45, 987654321, time.Local)
}

func newTestService(classifier Classifier, store Store, router Router) *Service {
	return NewService(classifier, store, router,
		WithLogger(log.New(io.Discard)),
		WithClock(fixedClock),
	)
}

func TestAnalyze(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "journal.csv"))
	classifier := &stubClassifier{label: mood.Positive}
	router := &stubRouter{rec: playlist.Recommendation{Name: "Happy Hits", URL: "https://open.spotify.com/playlist/x", Query: "happy upbeat"}}
	svc := newTestService(classifier, store, router)

	result, err := svc.Analyze(context.Background(), "  so happy today ")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.Entry.Mood != mood.Positive {
		t.Errorf("Mood = %s, want Positive", result.Entry.Mood)
	}
	if result.Entry.Text != "  so happy today " {
		t.Errorf("Text = %q, want text as submitted", result.Entry.Text)
	}
	if want := time.Date(2024, 6, 1, 18, 30, 45, 0, time.Local); !result.Entry.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", result.Entry.Timestamp, want)
	}
	if result.Playlist.Name != "Happy Hits" {
		t.Errorf("Playlist = %+v", result.Playlist)
	}

	entries, err := svc.History(context.Background(), 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("History() got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.Text != result.Entry.Text || got.Mood != result.Entry.Mood || !got.Timestamp.Equal(result.Entry.Timestamp) {
		t.Errorf("History()[0] = %+v, want %+v", got, result.Entry)
	}
}

func TestAnalyze_EmptyEntry(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		classifier := &stubClassifier{label: mood.Neutral}
		router := &stubRouter{}
		store := NewCSVStore(filepath.Join(t.TempDir(), "journal.csv"))
		svc := newTestService(classifier, store, router)

		result, err := svc.Analyze(context.Background(), text)
		if !errors.Is(err, ErrEmptyEntry) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyEntry", text, err)
		}
		if result != nil {
			t.Errorf("Analyze(%q) result = %+v, want nil", text, result)
		}
		if classifier.calls != 0 || router.calls != 0 {
			t.Errorf("Analyze(%q) ran classifier %d times, router %d times", text, classifier.calls, router.calls)
		}
		if entries, _ := store.List(context.Background(), 0); len(entries) != 0 {
			t.Errorf("Analyze(%q) saved %d entries", text, len(entries))
		}
	}
}

func TestAnalyze_StorageFailure(t *testing.T) {
	storeErr := errors.Join(ErrStorage, errors.New("disk full"))
	classifier := &stubClassifier{label: mood.Negative}
	router := &stubRouter{}
	svc := newTestService(classifier, failingStore{err: storeErr}, router)

	result, err := svc.Analyze(context.Background(), "bad day")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("Analyze() error = %v, want ErrStorage", err)
	}
	if result == nil || result.Entry.Mood != mood.Negative {
		t.Errorf("Analyze() result = %+v, want classified entry", result)
	}
	if router.calls != 0 {
		t.Errorf("router called %d times after storage failure", router.calls)
	}
}

func TestAnalyze_EndToEnd(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "journal.csv"))
	classifier := mood.New(mood.WithScorer(mood.ScorerFunc(func(string) float64 { return 0 })))
	// A router with no catalog client always degrades to NotFound.
	router := playlist.New(nil, playlist.WithLogger(log.New(io.Discard)), playlist.WithRetryDelay(0))
	svc := newTestService(classifier, store, router)

	result, err := svc.Analyze(context.Background(), "I need to focus on my project, so excited")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Entry.Mood != mood.Positive {
		t.Errorf("Mood = %s, want Positive", result.Entry.Mood)
	}
	if result.Playlist.Found() || result.Playlist.Query != "happy upbeat" {
		t.Errorf("Playlist = %+v, want NotFound for happy upbeat", result.Playlist)
	}
}

func TestHistory_Error(t *testing.T) {
	svc := newTestService(&stubClassifier{}, failingStore{err: ErrStorage}, &stubRouter{})
	if _, err := svc.History(context.Background(), 5); !errors.Is(err, ErrStorage) {
		t.Errorf("History() error = %v, want ErrStorage", err)
	}
}
