package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/justestif/go-mood-journal/internal/mood"
)

// DefaultPath is the journal file used when none is configured.
const DefaultPath = "journal.csv"

var csvHeader = []string{"Date", "Entry", "Mood"}

// CSVStore appends entries to a comma-separated file with a
// "Date,Entry,Mood" header. It assumes it is the only writer of the file;
// the mutex only serialises writers within this process.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates a store backed by the file at path.
// The file is created on the first Append.
func NewCSVStore(path string) *CSVStore {
	if path == "" {
		path = DefaultPath
	}
	return &CSVStore{path: path}
}

// Path returns the journal file location.
func (s *CSVStore) Path() string {
	return s.path
}

// Append writes e as one row, writing the header first if the file is new or empty.
func (s *CSVStore) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating journal directory: %w", ErrStorage, err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening journal: %w", ErrStorage, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: inspecting journal: %w", ErrStorage, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return fmt.Errorf("%w: writing header: %w", ErrStorage, err)
		}
	}

	row := []string{e.Timestamp.Format(TimestampLayout), e.Text, string(e.Mood)}
	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing entry: %w", ErrStorage, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%w: flushing journal: %w", ErrStorage, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing journal: %w", ErrStorage, err)
	}
	return nil
}

// List reads the journal and returns up to limit entries, newest first.
// A missing file yields no entries.
func (s *CSVStore) List(_ context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: opening journal: %w", ErrStorage, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	var entries []Entry
	for line := 1; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading journal: %w", ErrStorage, err)
		}
		if line == 1 && slices.Equal(record, csvHeader) {
			continue
		}

		entry, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrStorage, line, err)
		}
		entries = append(entries, entry)
	}

	slices.Reverse(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// parseRecord converts a CSV row back into an Entry. Labels written with
// their emoji prefix are accepted too.
func parseRecord(record []string) (Entry, error) {
	ts, err := time.ParseInLocation(TimestampLayout, record[0], time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing date: %w", err)
	}

	label, err := mood.ParseLabel(record[2])
	if err != nil {
		return Entry{}, err
	}

	return Entry{Timestamp: ts, Text: record[1], Mood: label}, nil
}
