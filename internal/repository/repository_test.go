package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/database"
	"task-manager/internal/errors"
)

func parseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(database.TimestampLayout, s, time.UTC)
}

func setupTestRepo(t *testing.T) (*Repository, *database.SQLiteAdapter) {
	t.Helper()
	db, err := database.NewSQLite(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func strPtr(s string) *string { return &s }

func TestCreateRoundTrip(t *testing.T) {
	repo, _ := setupTestRepo(t)

	task, err := repo.Create(context.Background(), NewTask{Title: "T", DueDateTime: "2025-12-31T23:59:59Z"})
	require.NoError(t, err)

	assert.Greater(t, task.ID, int64(0))
	assert.Equal(t, "T", task.Title)
	assert.Equal(t, "TODO", task.Status)
	assert.Nil(t, task.Description)
	assert.Equal(t, "2025-12-31T23:59:59Z", task.DueDateTime)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	_, err = parseTimestamp(task.CreatedAt)
	assert.NoError(t, err)

	fetched, err := repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, fetched)
}

func TestCreateWithStatusAndDescription(t *testing.T) {
	repo, _ := setupTestRepo(t)

	task, err := repo.Create(context.Background(), NewTask{
		Title:       "Ship",
		Description: strPtr("release notes"),
		Status:      "IN_PROGRESS",
		DueDateTime: "2025-06-01T09:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", task.Status)
	require.NotNil(t, task.Description)
	assert.Equal(t, "release notes", *task.Description)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := setupTestRepo(t)

	_, err := repo.GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestListOrdersByDueDate(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	for _, due := range []string{"2025-03-01T00:00:00Z", "2025-01-01T00:00:00Z", "2025-02-01T00:00:00Z"} {
		_, err := repo.Create(ctx, NewTask{Title: due, DueDateTime: due})
		require.NoError(t, err)
	}

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "2025-01-01T00:00:00Z", tasks[0].DueDateTime)
	assert.Equal(t, "2025-02-01T00:00:00Z", tasks[1].DueDateTime)
	assert.Equal(t, "2025-03-01T00:00:00Z", tasks[2].DueDateTime)
}

func TestListEmpty(t *testing.T) {
	repo, _ := setupTestRepo(t)

	tasks, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestUpdateIsPartial(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, NewTask{
		Title:       "Draft",
		Description: strPtr("first pass"),
		DueDateTime: "2025-12-31T23:59:59Z",
	})
	require.NoError(t, err)

	// Timestamps have one-second resolution; move the original back so the
	// refresh is observable.
	past := time.Now().Add(-time.Hour).UTC().Format(database.TimestampLayout)
	_, err = db.Execute(ctx, "UPDATE tasks SET createdAt = ?, updatedAt = ? WHERE id = ?", past, past, created.ID)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, TaskPatch{Status: strPtr("COMPLETED")})
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", updated.Status)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.DueDateTime, updated.DueDateTime)
	assert.Equal(t, past, updated.CreatedAt)

	before, err := parseTimestamp(past)
	require.NoError(t, err)
	after, err := parseTimestamp(updated.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, after.After(before), "updatedAt should advance")
}

func TestUpdateEmptyPatch(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, NewTask{Title: "Same", DueDateTime: "2025-01-01T00:00:00Z"})
	require.NoError(t, err)

	got, err := repo.Update(ctx, created.ID, TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUpdateNotFound(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, 7, TaskPatch{Title: strPtr("x")})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	_, err = repo.Update(ctx, 7, TaskPatch{})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestUpdateRejectedByConstraint(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, NewTask{Title: "x", DueDateTime: "2025-01-01T00:00:00Z"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, created.ID, TaskPatch{Status: strPtr("DONE")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeExecution))
}

func TestDelete(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, NewTask{Title: "Gone", DueDateTime: "2025-01-01T00:00:00Z"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = repo.Delete(ctx, created.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestRepositoryBeforeInitialization(t *testing.T) {
	repo := New(database.NewBarrier(database.SQLiteDialect{}))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotInitialized))
}
