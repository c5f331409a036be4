// Package journal records mood-journal entries and orchestrates the
// classify, persist, and playlist steps of writing one.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/justestif/go-mood-journal/internal/mood"
)

// TimestampLayout is the on-disk format of Entry.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Common errors.
var (
	// ErrEmptyEntry is returned when the submitted text is blank.
	ErrEmptyEntry = errors.New("entry is empty")

	// ErrStorage wraps any failure to read or write the journal.
	ErrStorage = errors.New("journal storage failed")
)

// Entry is one saved journal entry. Entries are never modified once written.
type Entry struct {
	Timestamp time.Time // second precision
	Text      string
	Mood      mood.Label
}

// Store persists entries.
type Store interface {
	// Append saves e after all previously appended entries.
	Append(ctx context.Context, e Entry) error
	// List returns up to limit entries, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Entry, error)
}
