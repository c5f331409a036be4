package journal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/justestif/go-mood-journal/internal/mood"
)

func TestCSVStore_AppendCreatesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

	first := Entry{
		Timestamp: time.Date(2024, 3, 1, 9, 15, 0, 0, time.Local),
		Text:      "Passed my exam, so happy!",
		Mood:      mood.Positive,
	}
	second := Entry{
		Timestamp: time.Date(2024, 3, 1, 22, 5, 7, 0, time.Local),
		Text:      "Long day, \"tired\",\nbut fine",
		Mood:      mood.Negative,
	}

	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("Append(first) error = %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("Append(second) error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading journal: %v", err)
	}
	content := string(data)

	if n := strings.Count(content, "Date,Entry,Mood"); n != 1 {
		t.Errorf("header appears %d times, want 1", n)
	}
	if !strings.HasPrefix(content, "Date,Entry,Mood\n2024-03-01 09:15:00,") {
		t.Errorf("unexpected file start:\n%s", content)
	}
	if strings.Index(content, "Passed my exam") > strings.Index(content, "Long day") {
		t.Error("entries not in submission order")
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Text != second.Text || entries[1].Text != first.Text {
		t.Errorf("List() order = %q, %q", entries[0].Text, entries[1].Text)
	}
	if !entries[0].Timestamp.Equal(second.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", entries[0].Timestamp, second.Timestamp)
	}
	if entries[0].Mood != mood.Negative {
		t.Errorf("Mood = %s, want Negative", entries[0].Mood)
	}
}

func TestCSVStore_AppendToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	existing := "Date,Entry,Mood\n2023-12-31 23:59:59,Old entry,😐 Neutral\n"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewCSVStore(path)
	entry := Entry{Timestamp: time.Date(2024, 1, 1, 0, 0, 1, 0, time.Local), Text: "New year", Mood: mood.Positive}
	if err := store.Append(context.Background(), entry); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := existing + "2024-01-01 00:00:01,New year,Positive\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[1].Mood != mood.Neutral {
		t.Errorf("List() = %+v", entries)
	}
}

func TestCSVStore_EmptyFileGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewCSVStore(path)
	entry := Entry{Timestamp: time.Date(2024, 5, 5, 5, 5, 5, 0, time.Local), Text: "hi", Mood: mood.Neutral}
	if err := store.Append(context.Background(), entry); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if want := "Date,Entry,Mood\n2024-05-05 05:05:05,hi,Neutral\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestCSVStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "journal.csv")
	store := NewCSVStore(path)

	if err := store.Append(context.Background(), Entry{Timestamp: time.Now(), Text: "x", Mood: mood.Neutral}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("journal not created: %v", err)
	}
}

func TestCSVStore_AppendFailure(t *testing.T) {
	// A directory at the journal path cannot be opened for writing.
	path := t.TempDir()
	store := NewCSVStore(path)

	err := store.Append(context.Background(), Entry{Timestamp: time.Now(), Text: "x", Mood: mood.Neutral})
	if !errors.Is(err, ErrStorage) {
		t.Errorf("Append() error = %v, want ErrStorage", err)
	}
}

func TestCSVStore_List(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := NewCSVStore(filepath.Join(t.TempDir(), "none.csv"))
		entries, err := store.List(context.Background(), 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("List() got %d entries, want 0", len(entries))
		}
	})

	t.Run("limit", func(t *testing.T) {
		store := NewCSVStore(filepath.Join(t.TempDir(), "journal.csv"))
		base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.Local)
		for i := range 5 {
			e := Entry{Timestamp: base.Add(time.Duration(i) * time.Hour), Text: string(rune('a' + i)), Mood: mood.Neutral}
			if err := store.Append(context.Background(), e); err != nil {
				t.Fatal(err)
			}
		}

		entries, err := store.List(context.Background(), 2)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(entries) != 2 || entries[0].Text != "e" || entries[1].Text != "d" {
			t.Errorf("List(2) = %+v", entries)
		}
	})

	t.Run("malformed row", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "journal.csv")
		os.WriteFile(path, []byte("Date,Entry,Mood\nyesterday,oops,Positive\n"), 0o644)

		_, err := NewCSVStore(path).List(context.Background(), 0)
		if !errors.Is(err, ErrStorage) {
			t.Errorf("List() error = %v, want ErrStorage", err)
		}
	})
}

func TestNewCSVStore_DefaultPath(t *testing.T) {
	if got := NewCSVStore("").Path(); got != DefaultPath {
		t.Errorf("Path() = %q, want %q", got, DefaultPath)
	}
}
