package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// PostgresAdapter runs statements on a pooled PostgreSQL server. Statements
// are written in the embedded dialect and translated before they are sent.
//
// Row-producing statements go through the extended protocol, which refuses
// text holding more than one statement. Parameterless UPDATE and DELETE use
// the simple protocol and will run every statement in the text.
type PostgresAdapter struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to url, verifies the server answers and creates the
// schema. An empty url is a configuration error.
func NewPostgres(ctx context.Context, url string, maxConns int32) (*PostgresAdapter, error) {
	if url == "" {
		return nil, errors.NewConfigurationError("database.url",
			fmt.Errorf("DATABASE_URL is required in production"))
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.NewConfigurationError("database.url", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.NewDatabaseError("connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewDatabaseError("connect", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, TranslateForPostgres(stmt)); err != nil {
			pool.Close()
			return nil, errors.NewDatabaseError("create schema", err)
		}
	}

	logging.Debugf("postgres: pool ready (max %d conns)\n", cfg.MaxConns)
	return &PostgresAdapter{pool: pool}, nil
}

// Execute implements Adapter.
func (a *PostgresAdapter) Execute(ctx context.Context, statement string, params ...any) (*Result, error) {
	kind := Classify(statement)
	translated := TranslateForPostgres(statement)
	logging.Debugf("postgres: %s %q %v\n", kind, translated, params)

	switch kind {
	case KindInsert:
		return a.insert(ctx, statement, translated, params)
	case KindUpdate, KindDelete:
		tag, err := a.pool.Exec(ctx, translated, params...)
		if err != nil {
			return nil, errors.NewExecutionError(statement, err)
		}
		return emptyResult(tag.RowsAffected()), nil
	default:
		return a.query(ctx, statement, translated, params)
	}
}

func (a *PostgresAdapter) insert(ctx context.Context, statement, translated string, params []any) (*Result, error) {
	if hasReturning(translated) {
		out, err := a.query(ctx, statement, translated, params)
		if err != nil {
			return nil, err
		}
		if len(out.Rows) > 0 {
			if id, ok := out.Rows[0]["id"].(int64); ok {
				out.LastInsertID = &id
			}
		}
		return out, nil
	}

	rows, err := a.pool.Query(ctx, withReturning(translated, "id"), params...)
	if err != nil {
		return nil, errors.NewExecutionError(statement, err)
	}
	defer rows.Close()

	var lastID *int64
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.NewExecutionError(statement, err)
		}
		if len(values) > 0 {
			if id, ok := postgresValue(values[0]).(int64); ok {
				lastID = &id
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewExecutionError(statement, err)
	}

	out := emptyResult(rows.CommandTag().RowsAffected())
	out.LastInsertID = lastID
	return out, nil
}

func (a *PostgresAdapter) query(ctx context.Context, statement, translated string, params []any) (*Result, error) {
	rows, err := a.pool.Query(ctx, translated, params...)
	if err != nil {
		return nil, errors.NewExecutionError(statement, err)
	}
	defer rows.Close()

	out, err := collect(rows)
	if err != nil {
		return nil, errors.NewExecutionError(statement, err)
	}
	return out, nil
}

// collect materializes every row, restoring the schema's column casing.
func collect(rows pgx.Rows) (*Result, error) {
	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = CanonicalColumn(f.Name)
	}

	out := &Result{Columns: columns, Rows: []Row{}}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = postgresValue(values[i])
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out.RowCount = int64(len(out.Rows))
	return out, nil
}

// postgresValue converts driver types to the ones the embedded engine yields.
func postgresValue(v any) any {
	switch val := v.(type) {
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int:
		return int64(val)
	case float32:
		return float64(val)
	case []byte:
		return string(val)
	case time.Time:
		return val.UTC().Format(TimestampLayout)
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	default:
		return val
	}
}

// Dialect implements Adapter.
func (a *PostgresAdapter) Dialect() Dialect { return PostgresDialect{} }

// Close waits for acquired connections to be released and closes the pool.
func (a *PostgresAdapter) Close() error {
	a.pool.Close()
	return nil
}
