package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/justestif/go-mood-journal/internal/mood"
	"github.com/justestif/go-mood-journal/internal/playlist"
)

// Classifier assigns a mood label to entry text.
type Classifier interface {
	Classify(text string) mood.Label
}

// Router suggests a playlist for entry text. It must not fail.
type Router interface {
	Route(ctx context.Context, text string) playlist.Recommendation
}

// Service runs the write-an-entry flow: classify, persist, then suggest a playlist.
type Service struct {
	classifier Classifier
	store      Store
	router     Router
	logger     *log.Logger
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a journal service.
func NewService(classifier Classifier, store Store, router Router, opts ...Option) *Service {
	s := &Service{
		classifier: classifier,
		store:      store,
		router:     router,
		logger:     log.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of Analyze.
type Result struct {
	Entry    Entry
	Playlist playlist.Recommendation
}

// Analyze classifies text, saves it, and suggests a playlist.
//
// Blank text returns ErrEmptyEntry and nothing else happens. If saving
// fails the error wraps ErrStorage and the returned Result still carries
// the classified entry so callers can show the mood; no playlist is looked
// up in that case. Playlist lookup failures are absorbed by the router.
func (s *Service) Analyze(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyEntry
	}

	entry := Entry{
		Timestamp: s.now().Truncate(time.Second),
		Text:      text,
		Mood:      s.classifier.Classify(text),
	}
	result := &Result{Entry: entry}

	if err := s.store.Append(ctx, entry); err != nil {
		s.logger.Error("entry not saved", "mood", entry.Mood, "err", err)
		return result, fmt.Errorf("saving entry: %w", err)
	}
	s.logger.Info("entry saved", "mood", entry.Mood, "chars", len(text))

	result.Playlist = s.router.Route(ctx, text)
	return result, nil
}

// History returns up to limit saved entries, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]Entry, error) {
	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}
