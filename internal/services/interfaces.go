package services

import (
	"context"

	"task-manager/internal/database"
	"task-manager/internal/domain"
)

// TableSchema describes one table's columns and indexes as the catalog
// reports them.
type TableSchema struct {
	Columns []database.Row `json:"columns"`
	Indexes []database.Row `json:"indexes"`
}

// SchemaInfo lists every user table with its structure
type SchemaInfo struct {
	Tables []string               `json:"tables"`
	Schema map[string]TableSchema `json:"schema"`
}

// TableStats holds per-table figures
type TableStats struct {
	RowCount int64 `json:"rowCount"`
}

// Stats summarises the database contents
type Stats struct {
	TableCount int                   `json:"tableCount"`
	Tables     map[string]TableStats `json:"tables"`
}

// TableData is the full content of one table
type TableData struct {
	Table    string         `json:"table"`
	RowCount int64          `json:"rowCount"`
	Data     []database.Row `json:"data"`
}

// QueryResult is the outcome of a console query
type QueryResult struct {
	RowCount int64          `json:"rowCount"`
	Data     []database.Row `json:"data"`
}

// ClearResult reports which tables were emptied
type ClearResult struct {
	Message       string   `json:"message"`
	ClearedTables []string `json:"clearedTables"`
}

// TaskService handles task lifecycle operations
type TaskService interface {
	CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id int64, in domain.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// DatabaseService backs the administrative database browser
type DatabaseService interface {
	Schema(ctx context.Context) (*SchemaInfo, error)
	Stats(ctx context.Context) (*Stats, error)
	TableData(ctx context.Context, table string) (*TableData, error)
	ExecuteQuery(ctx context.Context, query string) (*QueryResult, error)
	Clear(ctx context.Context) (*ClearResult, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService     TaskService
	DatabaseService DatabaseService
}
