// Package repository stores tasks through a database.Adapter, so the same
// statements serve the embedded and the server backend.
package repository

import (
	"context"
	"strconv"
	"strings"

	"task-manager/internal/database"
)

const taskEntity = "Task"

// TaskRepository defines the task storage operations.
type TaskRepository interface {
	Create(ctx context.Context, task NewTask) (*Task, error)
	GetByID(ctx context.Context, id int64) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	Update(ctx context.Context, id int64, patch TaskPatch) (*Task, error)
	Delete(ctx context.Context, id int64) error
}

// Repository implements TaskRepository.
type Repository struct {
	db database.Adapter
}

// New returns a repository over db.
func New(db database.Adapter) *Repository {
	return &Repository{db: db}
}

// Create inserts a task and returns it as stored.
func (r *Repository) Create(ctx context.Context, task NewTask) (*Task, error) {
	columns := []string{"title", "description", "dueDateTime"}
	args := []any{task.Title, nullable(task.Description), task.DueDateTime}
	if task.Status != "" {
		columns = append(columns, "status")
		args = append(args, task.Status)
	}

	query := `INSERT INTO tasks (` + strings.Join(columns, ", ") + `, createdAt, updatedAt)
	VALUES (` + placeholders(len(columns)) + `, datetime('now'), datetime('now'))`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, args...)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a not-found error when no task has the id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Task, error) {
	query := `SELECT id, title, description, status, dueDateTime, createdAt, updatedAt
	FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, taskEntity, idString(id), id)
}

// List returns every task, soonest due first.
func (r *Repository) List(ctx context.Context) ([]*Task, error) {
	query := `SELECT id, title, description, status, dueDateTime, createdAt, updatedAt
	FROM tasks ORDER BY dueDateTime ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, taskEntity)
}

// Update changes only the columns set in patch and refreshes updatedAt. An
// empty patch returns the task unchanged.
func (r *Repository) Update(ctx context.Context, id int64, patch TaskPatch) (*Task, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var sets []string
	var args []any
	add := func(column string, value *string) {
		if value != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *value)
		}
	}
	add("title", patch.Title)
	add("description", patch.Description)
	add("status", patch.Status)
	add("dueDateTime", patch.DueDateTime)
	sets = append(sets, "updatedAt = datetime('now')")
	args = append(args, id)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if err := ExecuteWithRowsAffected(ctx, r.db, query, taskEntity, idString(id), args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes one task.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return ExecuteWithRowsAffected(ctx, r.db, `DELETE FROM tasks WHERE id = ?`, taskEntity, idString(id), id)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
