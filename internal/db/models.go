package db

import (
	"time"

	"github.com/google/uuid"
)

// EntryRow is a journal entry as stored in PostgreSQL.
type EntryRow struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Text      string
	Mood      string
}
