package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/runoshun/git-board/internal/domain"
)

const taskColumns = "t.id, t.title, t.description, t.assignee, t.column_id, t.created_at, t.updated_at, t.branch_name, t.pr_url, t.pr_fallback"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateTask inserts a task and fills in its ID and timestamps.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return insertTask(ctx, db, task, s.clock.Now())
}

func insertTask(ctx context.Context, ex execer, task *domain.Task, now time.Time) error {
	res, err := ex.ExecContext(ctx, `
INSERT INTO tasks (title, description, assignee, column_id, created_at, updated_at, branch_name, pr_url, pr_fallback)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.Title,
		nullIfEmpty(task.Description),
		nullIfEmpty(task.Assignee),
		task.ColumnID,
		formatTime(now),
		formatTime(now),
		nullIfEmpty(task.BranchName),
		nullIfEmpty(task.PRURL),
		boolToInt(task.PRFallback),
	)
	if err != nil {
		return persistErr("insert task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return persistErr("insert task", err)
	}
	task.ID = id
	task.Created = now.UTC()
	task.Updated = now.UTC()
	return nil
}

// GetTask retrieves a task by ID, or nil if it does not exist.
func (s *Store) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	row := db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks t WHERE t.id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistErr("get task", err)
	}
	return task, nil
}

// ListTasks returns tasks ordered by column position, then most recent first.
func (s *Store) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + taskColumns + " FROM tasks t JOIN columns c ON c.id = t.column_id"
	var args []any
	if filter.ColumnID != nil {
		query += " WHERE t.column_id = ?"
		args = append(args, *filter.ColumnID)
	}
	query += " ORDER BY c.position, t.created_at DESC, t.id DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list tasks", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, persistErr("scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list tasks", err)
	}
	return tasks, nil
}

// SaveTask writes every mutable field of an existing task in a single
// statement and refreshes Updated.
func (s *Store) SaveTask(ctx context.Context, task *domain.Task) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	res, err := db.ExecContext(ctx, `
UPDATE tasks
SET title = ?, description = ?, assignee = ?, column_id = ?, branch_name = ?, pr_url = ?, pr_fallback = ?, updated_at = ?
WHERE id = ?`,
		task.Title,
		nullIfEmpty(task.Description),
		nullIfEmpty(task.Assignee),
		task.ColumnID,
		nullIfEmpty(task.BranchName),
		nullIfEmpty(task.PRURL),
		boolToInt(task.PRFallback),
		formatTime(now),
		task.ID,
	)
	if err != nil {
		return persistErr("update task", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistErr("update task", err)
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	task.Updated = now.UTC()
	return nil
}

// AddComment appends a comment and fills in its ID and creation time.
func (s *Store) AddComment(ctx context.Context, comment *domain.Comment) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	res, err := db.ExecContext(ctx,
		"INSERT INTO comments (task_id, author, text, created_at) VALUES (?, ?, ?, ?)",
		comment.TaskID, comment.Author, comment.Text, formatTime(now),
	)
	if err != nil {
		return persistErr("insert comment", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return persistErr("insert comment", err)
	}
	comment.ID = id
	comment.Created = now.UTC()
	return nil
}

// ListComments returns the comments of a task in creation order.
func (s *Store) ListComments(ctx context.Context, taskID int64) ([]domain.Comment, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		"SELECT id, task_id, author, text, created_at FROM comments WHERE task_id = ? ORDER BY created_at, id",
		taskID,
	)
	if err != nil {
		return nil, persistErr("list comments", err)
	}
	defer func() { _ = rows.Close() }()

	var comments []domain.Comment
	for rows.Next() {
		var (
			c       domain.Comment
			created string
		)
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Author, &c.Text, &created); err != nil {
			return nil, persistErr("scan comment", err)
		}
		if c.Created, err = parseTime(created); err != nil {
			return nil, persistErr("parse comment time", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list comments", err)
	}
	return comments, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task                  domain.Task
		description, assignee sql.NullString
		branch, prURL         sql.NullString
		created, updated      string
		prFallback            int
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&assignee,
		&task.ColumnID,
		&created,
		&updated,
		&branch,
		&prURL,
		&prFallback,
	); err != nil {
		return nil, err
	}

	var err error
	if task.Created, err = parseTime(created); err != nil {
		return nil, err
	}
	if task.Updated, err = parseTime(updated); err != nil {
		return nil, err
	}
	task.Description = description.String
	task.Assignee = assignee.String
	task.BranchName = branch.String
	task.PRURL = prURL.String
	task.PRFallback = prFallback != 0
	return &task, nil
}
