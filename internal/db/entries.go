package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/mood"
)

// EntryRepository stores journal entries. It implements journal.Store.
type EntryRepository struct {
	pool *pgxpool.Pool
}

var _ journal.Store = (*EntryRepository)(nil)

const entriesTable = "journal_entries"

var (
	psql         = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	entryColumns = []string{"id", "created_at", "text", "mood"}
)

// Append inserts a new entry.
func (r *EntryRepository) Append(ctx context.Context, e journal.Entry) error {
	query, args, err := insertQuery(toRow(e))
	if err != nil {
		return fmt.Errorf("%w: building insert: %w", journal.ErrStorage, err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: inserting entry: %w", journal.ErrStorage, err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (r *EntryRepository) List(ctx context.Context, limit int) ([]journal.Entry, error) {
	query, args, err := listQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: building query: %w", journal.ErrStorage, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying entries: %w", journal.ErrStorage, err)
	}

	entryRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (EntryRow, error) {
		var e EntryRow
		err := row.Scan(&e.ID, &e.CreatedAt, &e.Text, &e.Mood)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning entries: %w", journal.ErrStorage, err)
	}

	entries := make([]journal.Entry, 0, len(entryRows))
	for _, row := range entryRows {
		e, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s: %w", journal.ErrStorage, row.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func insertQuery(row EntryRow) (string, []any, error) {
	return psql.Insert(entriesTable).
		Columns(entryColumns...).
		Values(row.ID, row.CreatedAt, row.Text, row.Mood).
		ToSql()
}

func listQuery(limit int) (string, []any, error) {
	q := psql.Select(entryColumns...).
		From(entriesTable).
		OrderBy("created_at DESC", "id")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return q.ToSql()
}

// toRow converts an entry to its stored form with a fresh ID.
func toRow(e journal.Entry) EntryRow {
	return EntryRow{
		ID:        uuid.New(),
		CreatedAt: e.Timestamp,
		Text:      e.Text,
		Mood:      string(e.Mood),
	}
}

// fromRow converts a stored row back into an entry in local time.
func fromRow(row EntryRow) (journal.Entry, error) {
	label, err := mood.ParseLabel(row.Mood)
	if err != nil {
		return journal.Entry{}, err
	}
	return journal.Entry{
		Timestamp: row.CreatedAt.Local(),
		Text:      row.Text,
		Mood:      label,
	}, nil
}
