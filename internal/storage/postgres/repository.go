package postgres

import (
	"context"
	"time"

	"saferoute/internal/domain"
)

// JournalEntry is one recorded hazard event.
type JournalEntry struct {
	Seq        int64
	Type       domain.EventType
	HazardID   int64
	Payload    []byte
	RecordedAt time.Time
}

type EventJournal interface {
	Append(ctx context.Context, ev domain.Event, payload []byte) error
	History(ctx context.Context, hazardID int64) ([]JournalEntry, error)
}

var _ EventJournal = (*Journal)(nil)
