package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"saferoute/internal/domain"
	"saferoute/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Journal is an append-only audit trail of hazard events. It is never read
// back into the live registry.
type Journal struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewJournal(pool *pgxpool.Pool, logger *slog.Logger) *Journal {
	return &Journal{pool: pool, logger: logger}
}

func (j *Journal) Append(ctx context.Context, ev domain.Event, payload []byte) error {
	const op = "postgres.Journal.Append"

	if ev.Type == "" || len(payload) == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
INSERT INTO hazard_events (event_type, hazard_id, payload, recorded_at)
VALUES ($1, $2, $3, $4)
`
	_, err := j.pool.Exec(ctx, query, string(ev.Type), ev.HazardID(), payload, time.Now().UTC())
	if err != nil {
		j.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Int64("hazard_id", ev.HazardID()),
			slog.Any("error", err),
		)
		return e.WrapError(ctx, op, err)
	}
	return nil
}

// History returns a hazard's recorded events, oldest first.
func (j *Journal) History(ctx context.Context, hazardID int64) ([]JournalEntry, error) {
	const op = "postgres.Journal.History"

	const query = `
SELECT seq, event_type, hazard_id, payload, recorded_at
FROM hazard_events
WHERE hazard_id = $1
ORDER BY seq
`
	rows, err := j.pool.Query(ctx, query, hazardID)
	if err != nil {
		j.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	entries := make([]JournalEntry, 0, 4)
	for rows.Next() {
		var (
			entry     JournalEntry
			eventType string
		)
		if err := rows.Scan(&entry.Seq, &eventType, &entry.HazardID, &entry.Payload, &entry.RecordedAt); err != nil {
			j.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		entry.Type = domain.EventType(eventType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return entries, nil
}
