package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"ir_gateway/internal/models"

	"github.com/google/uuid"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

const (
	insertEventSQL = `
		INSERT INTO ir_events (id, occurred_at, direction, protocol, code, repeat, line)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectEventsSQL = `SELECT id, occurred_at, direction, protocol, code, repeat, line FROM ir_events`

	sqliteTimestampLayout = "2006-01-02 15:04:05"
)

// Append inserts an event. Missing EventID and OccurredAt are filled in.
func (r *EventSQLite) Append(ctx context.Context, e models.IREvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.Format(sqliteTimestampLayout),
		strings.ToUpper(strings.TrimSpace(e.Direction)),
		e.Protocol,
		e.Code,
		e.Repeat,
		e.Line,
	)
	return err
}

// List returns events within [from, to] (zero bounds are open) and the
// given direction, oldest first. limit <= 0 means no limit. Bounds are
// compared at second precision, the resolution rows are stored with.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, direction string, limit int) ([]models.IREvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimestampLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimestampLayout))
	}
	if direction = strings.ToUpper(strings.TrimSpace(direction)); direction != "" {
		conds = append(conds, "direction = ?")
		args = append(args, direction)
	}

	q := selectEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.IREvent, 0, 64)
	for rows.Next() {
		var ev models.IREvent
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Direction, &ev.Protocol, &ev.Code, &ev.Repeat, &ev.Line); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
