package services

import (
	"context"
	"strings"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/database"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/querygate"
)

const (
	msgQueryRequired       = "Query is required"
	msgClearForbidden      = "Database clearing is not allowed in production"
	msgClearedSuccessfully = "Database cleared successfully"
)

// databaseServiceImpl implements the DatabaseService interface
type databaseServiceImpl struct {
	db           database.Adapter
	environment  config.Environment
	queryTimeout time.Duration
}

// NewDatabaseService creates a new DatabaseService instance
func NewDatabaseService(db database.Adapter, cfg *config.Config) DatabaseService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &databaseServiceImpl{
		db:           db,
		environment:  cfg.Environment,
		queryTimeout: cfg.Database.QueryTimeout,
	}
}

// Schema returns columns and indexes for every user table
func (s *databaseServiceImpl) Schema(ctx context.Context) (*SchemaInfo, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	tables, err := s.listTables(ctx)
	if err != nil {
		return nil, timeoutError(err, "read schema", s.queryTimeout)
	}

	dialect := s.db.Dialect()
	info := &SchemaInfo{Tables: tables, Schema: make(map[string]TableSchema, len(tables))}
	for _, table := range tables {
		stmt, args := dialect.ColumnsQuery(table)
		columns, err := s.db.Execute(ctx, stmt, args...)
		if err != nil {
			return nil, timeoutError(err, "read schema", s.queryTimeout)
		}

		stmt, args = dialect.IndexesQuery(table)
		indexes, err := s.db.Execute(ctx, stmt, args...)
		if err != nil {
			return nil, timeoutError(err, "read schema", s.queryTimeout)
		}

		info.Schema[table] = TableSchema{Columns: columns.Rows, Indexes: indexes.Rows}
	}
	return info, nil
}

// Stats counts the rows of every user table
func (s *databaseServiceImpl) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	tables, err := s.listTables(ctx)
	if err != nil {
		return nil, timeoutError(err, "read stats", s.queryTimeout)
	}

	stats := &Stats{TableCount: len(tables), Tables: make(map[string]TableStats, len(tables))}
	for _, table := range tables {
		n, err := s.countRows(ctx, table)
		if err != nil {
			return nil, timeoutError(err, "read stats", s.queryTimeout)
		}
		stats.Tables[table] = TableStats{RowCount: n}
	}
	return stats, nil
}

// TableData returns every row of a table named exactly as in the catalog.
// Unknown names, including case variants of real ones, are not found.
func (s *databaseServiceImpl) TableData(ctx context.Context, table string) (*TableData, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	found, err := s.db.Execute(ctx, s.db.Dialect().TableExistsQuery(), table)
	if err != nil {
		return nil, timeoutError(err, "read table", s.queryTimeout)
	}
	if len(found.Rows) == 0 {
		return nil, errors.NewNotFoundError("Table", table)
	}

	data, err := s.db.Execute(ctx, "SELECT * FROM "+database.QuoteIdentifier(table))
	if err != nil {
		return nil, timeoutError(err, "read table", s.queryTimeout)
	}
	n, err := s.countRows(ctx, table)
	if err != nil {
		return nil, timeoutError(err, "read table", s.queryTimeout)
	}

	return &TableData{Table: table, RowCount: n, Data: data.Rows}, nil
}

// ExecuteQuery runs a console statement that the query gate allows
func (s *databaseServiceImpl) ExecuteQuery(ctx context.Context, query string) (*QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewValidationError(msgQueryRequired, nil)
	}
	if err := querygate.Authorize(query).Err(); err != nil {
		logging.Debugf("database service: rejected %q\n", query)
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.db.Execute(ctx, query)
	if err != nil {
		return nil, timeoutError(err, "execute query", s.queryTimeout)
	}
	return &QueryResult{RowCount: result.RowCount, Data: result.Rows}, nil
}

// Clear deletes every row of every user table. It is refused in production.
func (s *databaseServiceImpl) Clear(ctx context.Context) (*ClearResult, error) {
	if s.environment.IsProduction() {
		return nil, errors.NewPermissionError("clear", "database").WithMessage(msgClearForbidden)
	}

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	tables, err := s.listTables(ctx)
	if err != nil {
		return nil, timeoutError(err, "clear database", s.queryTimeout)
	}
	for _, table := range tables {
		if _, err := s.db.Execute(ctx, "DELETE FROM "+database.QuoteIdentifier(table)); err != nil {
			return nil, timeoutError(err, "clear database", s.queryTimeout)
		}
	}

	logging.Debugf("database service: cleared %v\n", tables)
	return &ClearResult{Message: msgClearedSuccessfully, ClearedTables: tables}, nil
}

func (s *databaseServiceImpl) listTables(ctx context.Context) ([]string, error) {
	result, err := s.db.Execute(ctx, s.db.Dialect().ListTablesQuery())
	if err != nil {
		return nil, err
	}
	tables := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		if name, ok := row["name"].(string); ok {
			tables = append(tables, name)
		}
	}
	return tables, nil
}

// countRows must only be given names read from the catalog.
func (s *databaseServiceImpl) countRows(ctx context.Context, table string) (int64, error) {
	result, err := s.db.Execute(ctx, "SELECT COUNT(*) AS count FROM "+database.QuoteIdentifier(table))
	if err != nil {
		return 0, err
	}
	if len(result.Rows) == 0 {
		return 0, nil
	}
	switch n := result.Rows[0]["count"].(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	default:
		return 0, nil
	}
}
