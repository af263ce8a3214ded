package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/database"
	"task-manager/internal/services"
)

type readyFlag bool

func (f readyFlag) Ready() bool { return bool(f) }

func setupServer(t *testing.T, env config.Environment) *Server {
	t.Helper()
	db, err := database.NewSQLite(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.NewConfig()
	cfg.Environment = env
	return NewServer(services.NewServiceContainer(db, cfg), readyFlag(true), cfg, nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func createTask(t *testing.T, h http.Handler, body string) map[string]any {
	t.Helper()
	rec, resp := do(t, h, http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return resp["data"].(map[string]any)
}

func TestHealth(t *testing.T) {
	srv := setupServer(t, config.Development)

	rec, body := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestReadyz(t *testing.T) {
	srv := setupServer(t, config.Development)
	rec, _ := do(t, srv, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	barrier := database.NewBarrier(database.SQLiteDialect{})
	pending := NewServer(services.NewServiceContainer(barrier, nil), barrier, nil, nil)
	rec, _ = do(t, pending, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, pending, http.MethodGet, "/api/tasks", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := setupServer(t, config.Development)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	srv := setupServer(t, config.Development)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestRouteNotFound(t *testing.T) {
	srv := setupServer(t, config.Development)

	for _, path := range []string{"/nope", "/api", "/api/tasks/1/extra"} {
		rec, body := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "Route not found", body["error"], path)
	}
}

func TestTaskLifecycle(t *testing.T) {
	srv := setupServer(t, config.Development)

	task := createTask(t, srv, `{"title":"T","dueDateTime":"2025-12-31T23:59:59Z"}`)
	assert.Equal(t, "TODO", task["status"])
	assert.Nil(t, task["description"])
	id := int64(task["id"].(float64))
	path := "/api/tasks/" + jsonNumber(id)

	rec, body := do(t, srv, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "T", body["data"].(map[string]any)["title"])

	rec, body = do(t, srv, http.MethodPatch, path, `{"status":"COMPLETED"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task updated successfully", body["message"])
	updated := body["data"].(map[string]any)
	assert.Equal(t, "COMPLETED", updated["status"])
	assert.Equal(t, "T", updated["title"])

	rec, body = do(t, srv, http.MethodGet, "/api/tasks", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])

	rec, body = do(t, srv, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task deleted successfully", body["message"])

	rec, body = do(t, srv, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", body["error"])
}

func jsonNumber(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestTaskValidationErrors(t *testing.T) {
	srv := setupServer(t, config.Development)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		field  string
	}{
		{"missing title", http.MethodPost, "/api/tasks", `{"dueDateTime":"2025-01-01"}`, "title"},
		{"bad status", http.MethodPost, "/api/tasks", `{"title":"T","status":"DONE","dueDateTime":"2025-01-01"}`, "status"},
		{"bad due date", http.MethodPost, "/api/tasks", `{"title":"T","dueDateTime":"tomorrow"}`, "dueDateTime"},
		{"non numeric id", http.MethodGet, "/api/tasks/abc", "", "id"},
		{"zero id", http.MethodDelete, "/api/tasks/0", "", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, srv, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			errs, ok := body["errors"].([]any)
			require.True(t, ok, rec.Body.String())
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.field, errs[0].(map[string]any)["field"])
		})
	}

	rec, body := do(t, srv, http.MethodPost, "/api/tasks", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "invalid JSON")
}

func TestDatabaseTableRoute(t *testing.T) {
	srv := setupServer(t, config.Development)

	rec, body := do(t, srv, http.MethodGet, "/api/database/tables/tasks", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tasks", body["table"])
	assert.Equal(t, float64(0), body["rowCount"])
	assert.Equal(t, []any{}, body["data"])

	for _, name := range []string{"widgets", "TASKS", "Tasks"} {
		rec, body = do(t, srv, http.MethodGet, "/api/database/tables/"+name, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, name)
		assert.Equal(t, "Table not found", body["error"], name)
	}
}

func TestDatabaseSchemaAndStats(t *testing.T) {
	srv := setupServer(t, config.Development)
	createTask(t, srv, `{"title":"T","dueDateTime":"2025-01-01"}`)

	rec, body := do(t, srv, http.MethodGet, "/api/database/schema", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"tasks"}, body["tables"])

	rec, body = do(t, srv, http.MethodGet, "/api/database/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["tableCount"])
	tables := body["tables"].(map[string]any)
	assert.Equal(t, float64(1), tables["tasks"].(map[string]any)["rowCount"])
}

func TestDatabaseQueryRoute(t *testing.T) {
	srv := setupServer(t, config.Development)
	createTask(t, srv, `{"title":"T","dueDateTime":"2025-01-01"}`)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"select", `{"query":"SELECT id, title FROM tasks"}`, http.StatusOK, ""},
		{"pragma", `{"query":"PRAGMA table_info(tasks)"}`, http.StatusOK, ""},
		{"missing", `{}`, http.StatusBadRequest, "Query is required"},
		{"mutation", `{"query":"DELETE FROM tasks"}`, http.StatusForbidden, "Only SELECT and PRAGMA queries are allowed for safety"},
		{"failure", `{"query":"SELECT * FROM widgets"}`, http.StatusBadRequest, "Query execution failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, srv, http.MethodPost, "/api/database/query", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
				return
			}
			assert.Contains(t, body, "rowCount")
			assert.Contains(t, body, "data")
		})
	}

	_, body := do(t, srv, http.MethodPost, "/api/database/query", `{"query":"SELECT * FROM widgets"}`)
	assert.Contains(t, body["message"], "no such table")
}

func TestDatabaseClearRoute(t *testing.T) {
	srv := setupServer(t, config.Development)
	createTask(t, srv, `{"title":"T","dueDateTime":"2025-01-01"}`)

	for i := 0; i < 2; i++ {
		rec, body := do(t, srv, http.MethodDelete, "/api/database/clear", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Database cleared successfully", body["message"])
		assert.Equal(t, []any{"tasks"}, body["clearedTables"])
	}

	prod := setupServer(t, config.Production)
	rec, body := do(t, prod, http.MethodDelete, "/api/database/clear", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Database clearing is not allowed in production", body["error"])
}
