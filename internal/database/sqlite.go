package database

import (
	"context"
	"database/sql"
	"time"

	"task-manager/internal/errors"
	"task-manager/internal/logging"

	_ "modernc.org/sqlite"
)

// SQLiteAdapter runs statements against a private in-memory engine. The
// instance lives as long as the adapter and is never written to disk.
type SQLiteAdapter struct {
	db *sql.DB
}

// NewSQLite opens a fresh in-memory database and creates the schema.
func NewSQLite(ctx context.Context) (*SQLiteAdapter, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Every pooled connection to ":memory:" would get its own empty database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("open database", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("create schema", err)
		}
	}

	logging.Debugln("sqlite: in-memory database ready")
	return &SQLiteAdapter{db: db}, nil
}

// Execute implements Adapter.
func (a *SQLiteAdapter) Execute(ctx context.Context, statement string, params ...any) (*Result, error) {
	kind := Classify(statement)
	logging.Debugf("sqlite: %s %q %v\n", kind, statement, params)

	if kind.IsWrite() {
		return a.exec(ctx, kind, statement, params)
	}
	return a.query(ctx, statement, params)
}

func (a *SQLiteAdapter) exec(ctx context.Context, kind StatementKind, statement string, params []any) (*Result, error) {
	res, err := a.db.ExecContext(ctx, statement, params...)
	if err != nil {
		return nil, errors.NewExecutionError(statement, err)
	}

	if kind == KindInsert {
		id, err := res.LastInsertId()
		if err != nil {
			return nil, errors.NewExecutionError(statement, err)
		}
		out := emptyResult(1)
		out.LastInsertID = &id
		return out, nil
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.NewExecutionError(statement, err)
	}
	return emptyResult(affected), nil
}

func (a *SQLiteAdapter) query(ctx context.Context, statement string, params []any) (*Result, error) {
	rows, err := a.db.QueryContext(ctx, statement, params...)
	if err != nil {
		return nil, errors.NewExecutionError(statement, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.NewExecutionError(statement, err)
	}

	out := &Result{Columns: columns, Rows: []Row{}}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.NewExecutionError(statement, err)
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = sqliteValue(values[i])
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewExecutionError(statement, err)
	}

	out.RowCount = int64(len(out.Rows))
	return out, nil
}

func sqliteValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.UTC().Format("2006-01-02 15:04:05")
	default:
		return val
	}
}

// Dialect implements Adapter.
func (a *SQLiteAdapter) Dialect() Dialect { return SQLiteDialect{} }

// Close releases the engine; the in-memory data is gone afterwards.
func (a *SQLiteAdapter) Close() error {
	return a.db.Close()
}
