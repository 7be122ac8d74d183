package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"

	"threadline/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

// now returns the current time truncated to the second, matching the
// unix-second resolution of the stored timestamps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func (r *sqliteRepository) CreateThread(ctx context.Context, partial model.NewThread) (*model.Thread, error) {
	thread := &model.Thread{
		ID:     uuid.NewString(),
		Title:  partial.Title,
		Status: partial.Status,
	}
	if thread.Title == "" {
		thread.Title = model.DefaultTitle
	}
	if thread.Status == "" {
		thread.Status = model.StatusRegular
	}
	ts := now()
	thread.CreatedAt = ts
	thread.UpdatedAt = ts

	query := "INSERT INTO threads (id, title, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, thread.ID, thread.Title, thread.Status, ts.Unix(), ts.Unix())
	if err != nil {
		return nil, fmt.Errorf("could not insert thread: %w", err)
	}
	return thread, nil
}

func (r *sqliteRepository) GetThread(ctx context.Context, id string) (*model.Thread, error) {
	query := "SELECT id, title, status, created_at, updated_at FROM threads WHERE id = ?"
	return scanThread(r.db.QueryRowContext(ctx, query, id))
}

func (r *sqliteRepository) ListThreads(ctx context.Context, status model.ThreadStatus) ([]*model.Thread, error) {
	if status == "" {
		status = model.StatusRegular
	}
	query := "SELECT id, title, status, created_at, updated_at FROM threads WHERE status = ? ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []*model.Thread
	for rows.Next() {
		var t model.Thread
		var created, updated int64
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &created, &updated); err != nil {
			return nil, err
		}
		t.CreatedAt = time.Unix(created, 0).UTC()
		t.UpdatedAt = time.Unix(updated, 0).UTC()
		threads = append(threads, &t)
	}
	return threads, rows.Err()
}

func (r *sqliteRepository) UpdateThread(ctx context.Context, id string, patch model.ThreadPatch) (*model.Thread, error) {
	sets := []string{"updated_at = ?"}
	args := []any{now().Unix()}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	args = append(args, id)

	query := "UPDATE threads SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not update thread: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetThread(ctx, id)
}

func (r *sqliteRepository) ArchiveThread(ctx context.Context, id string) (*model.Thread, error) {
	status := model.StatusArchived
	return r.UpdateThread(ctx, id, model.ThreadPatch{Status: &status})
}

func (r *sqliteRepository) UnarchiveThread(ctx context.Context, id string) (*model.Thread, error) {
	status := model.StatusRegular
	return r.UpdateThread(ctx, id, model.ThreadPatch{Status: &status})
}

// DeleteThread removes a thread; the store cascades to its messages.
// Deleting an unknown id is not an error.
func (r *sqliteRepository) DeleteThread(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM threads WHERE id = ?", id)
	return err
}

// CreateMessage inserts a message and touches the parent thread's updated_at
// in the same transaction. Every append counts as thread activity.
func (r *sqliteRepository) CreateMessage(ctx context.Context, msg model.NewMessage) (*model.Message, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	message := &model.Message{
		ID:        uuid.NewString(),
		ThreadID:  msg.ThreadID,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: now(),
	}

	insertQuery := "INSERT INTO messages (id, thread_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)"
	_, err = tx.ExecContext(ctx, insertQuery,
		message.ID, message.ThreadID, message.Role, message.Content, message.CreatedAt.Unix())
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("could not insert message: %w", err)
	}

	touchQuery := "UPDATE threads SET updated_at = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, touchQuery, message.CreatedAt.Unix(), msg.ThreadID); err != nil {
		return nil, fmt.Errorf("could not update thread timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return message, nil
}

func (r *sqliteRepository) GetThreadMessages(ctx context.Context, threadID string) ([]model.Message, error) {
	// rowid breaks created_at ties in insertion order.
	query := `
		SELECT id, thread_id, role, content, created_at
		FROM messages
		WHERE thread_id = ?
		ORDER BY created_at ASC, rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		var created int64
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.Role, &m.Content, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(created, 0).UTC()
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) CountThreadMessages(ctx context.Context, threadID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM messages WHERE thread_id = ?"
	if err := r.db.QueryRowContext(ctx, query, threadID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sqliteRepository) DeleteMessage(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	return err
}

func (r *sqliteRepository) DeleteThreadMessages(ctx context.Context, threadID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE thread_id = ?", threadID)
	return err
}

func scanThread(row *sql.Row) (*model.Thread, error) {
	var t model.Thread
	var created, updated int64
	err := row.Scan(&t.ID, &t.Title, &t.Status, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t.CreatedAt = time.Unix(created, 0).UTC()
	t.UpdatedAt = time.Unix(updated, 0).UTC()
	return &t, nil
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
