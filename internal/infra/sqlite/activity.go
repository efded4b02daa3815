package sqlite

import (
	"context"
	"database/sql"

	"github.com/runoshun/git-board/internal/domain"
)

// AppendActivity records one event in the activity log.
func (s *Store) AppendActivity(ctx context.Context, event domain.EventType, metadata string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO activity_log (event, metadata, created_at) VALUES (?, ?, ?)",
		string(event), nullIfEmpty(metadata), formatTime(s.clock.Now()),
	); err != nil {
		return persistErr("append activity", err)
	}
	return nil
}

// ListActivity returns the latest limit entries, newest first.
// A non-positive limit returns every entry.
func (s *Store) ListActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx,
		"SELECT id, event, metadata, created_at FROM activity_log ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, persistErr("list activity", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.Activity
	for rows.Next() {
		var (
			a        domain.Activity
			event    string
			metadata sql.NullString
			created  string
		)
		if err := rows.Scan(&a.ID, &event, &metadata, &created); err != nil {
			return nil, persistErr("scan activity", err)
		}
		a.Event = domain.EventType(event)
		a.Metadata = metadata.String
		if a.Created, err = parseTime(created); err != nil {
			return nil, persistErr("parse activity time", err)
		}
		entries = append(entries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list activity", err)
	}
	return entries, nil
}
