package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/git-board/internal/domain"
)

// CreateProject inserts the project row.
func (s *Store) CreateProject(ctx context.Context, name, repoPath string) (*domain.Project, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	res, err := db.ExecContext(ctx,
		"INSERT INTO projects (name, repo_path, created_at) VALUES (?, ?, ?)",
		name, repoPath, formatTime(s.clock.Now()),
	)
	if err != nil {
		return nil, persistErr("insert project", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, persistErr("insert project", err)
	}
	return &domain.Project{ID: id, Name: name, RepoPath: repoPath}, nil
}

// GetProject returns the project row.
func (s *Store) GetProject(ctx context.Context) (*domain.Project, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var p domain.Project
	err = db.QueryRowContext(ctx, "SELECT id, name, repo_path FROM projects ORDER BY id LIMIT 1").
		Scan(&p.ID, &p.Name, &p.RepoPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, persistErr("get project", err)
	}
	return &p, nil
}

// CreateDefaultColumns inserts the fixed columns in one transaction.
// Columns that already exist are left untouched.
func (s *Store) CreateDefaultColumns(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin create columns", err)
	}
	for _, c := range domain.DefaultColumns() {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO columns (name, position) VALUES (?, ?)", c.Name, c.Order,
		); err != nil {
			_ = tx.Rollback()
			return persistErr("insert column "+c.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return persistErr("commit create columns", err)
	}
	return nil
}

// ListColumns returns all columns ordered by position.
func (s *Store) ListColumns(ctx context.Context) ([]domain.Column, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, "SELECT id, name, position FROM columns ORDER BY position, id")
	if err != nil {
		return nil, persistErr("list columns", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []domain.Column
	for rows.Next() {
		var c domain.Column
		if err := rows.Scan(&c.ID, &c.Name, &c.Order); err != nil {
			return nil, persistErr("scan column", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list columns", err)
	}
	return cols, nil
}

// GetColumn returns a column by ID, or nil.
func (s *Store) GetColumn(ctx context.Context, id int64) (*domain.Column, error) {
	return s.getColumn(ctx, "SELECT id, name, position FROM columns WHERE id = ?", id)
}

// GetColumnByName returns a column by name ignoring case, or nil.
func (s *Store) GetColumnByName(ctx context.Context, name string) (*domain.Column, error) {
	return s.getColumn(ctx,
		"SELECT id, name, position FROM columns WHERE name = ? COLLATE NOCASE",
		strings.TrimSpace(name),
	)
}

func (s *Store) getColumn(ctx context.Context, query string, arg any) (*domain.Column, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var c domain.Column
	err = db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistErr("get column", err)
	}
	return &c, nil
}
