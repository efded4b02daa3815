package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/runoshun/git-board/internal/domain"
)

// CreateIdea inserts an idea.
func (s *Store) CreateIdea(ctx context.Context, content string) (*domain.Idea, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	res, err := db.ExecContext(ctx,
		"INSERT INTO ideas (content, created_at) VALUES (?, ?)", content, formatTime(now),
	)
	if err != nil {
		return nil, persistErr("insert idea", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, persistErr("insert idea", err)
	}
	return &domain.Idea{ID: id, Content: content, Created: now.UTC()}, nil
}

// GetIdea retrieves an idea by ID, or nil if it does not exist.
func (s *Store) GetIdea(ctx context.Context, id int64) (*domain.Idea, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	idea, err := scanIdea(db.QueryRowContext(ctx, "SELECT id, content, created_at FROM ideas WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistErr("get idea", err)
	}
	return idea, nil
}

// ListIdeas returns all ideas, newest first.
func (s *Store) ListIdeas(ctx context.Context) ([]domain.Idea, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, "SELECT id, content, created_at FROM ideas ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, persistErr("list ideas", err)
	}
	defer func() { _ = rows.Close() }()

	var ideas []domain.Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, persistErr("scan idea", err)
		}
		ideas = append(ideas, *idea)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list ideas", err)
	}
	return ideas, nil
}

// DeleteIdea removes an idea.
func (s *Store) DeleteIdea(ctx context.Context, id int64) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, "DELETE FROM ideas WHERE id = ?", id)
	if err != nil {
		return persistErr("delete idea", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistErr("delete idea", err)
	}
	if n == 0 {
		return domain.ErrIdeaNotFound
	}
	return nil
}

// PromoteIdea turns an idea into a task in one transaction: the idea row is
// deleted and a task titled with its content is inserted into columnID.
// Either both happen or neither does.
func (s *Store) PromoteIdea(ctx context.Context, ideaID, columnID int64) (*domain.Task, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistErr("begin promote", err)
	}
	defer func() { _ = tx.Rollback() }()

	var content string
	err = tx.QueryRowContext(ctx, "SELECT content FROM ideas WHERE id = ?", ideaID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrIdeaNotFound
	}
	if err != nil {
		return nil, persistErr("get idea", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM ideas WHERE id = ?", ideaID); err != nil {
		return nil, persistErr("delete idea", err)
	}

	task := &domain.Task{Title: content, ColumnID: columnID}
	if err := insertTask(ctx, tx, task, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, persistErr("commit promote", err)
	}
	return task, nil
}

func scanIdea(row rowScanner) (*domain.Idea, error) {
	var (
		idea    domain.Idea
		created string
	)
	if err := row.Scan(&idea.ID, &idea.Content, &created); err != nil {
		return nil, err
	}
	var err error
	if idea.Created, err = parseTime(created); err != nil {
		return nil, err
	}
	return &idea, nil
}
