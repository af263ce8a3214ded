// Package database is the data access layer: one Execute contract served by
// an embedded in-memory SQLite engine (development, test) or a pooled
// PostgreSQL server (production).
package database

import (
	"context"
	"strings"
)

// Row maps column name to value for one result row.
type Row map[string]any

// Result is the uniform shape returned by every backend.
type Result struct {
	// Columns lists column names in the order the backend returned them.
	Columns []string
	// Rows preserves backend row order.
	Rows     []Row
	RowCount int64
	// LastInsertID is set only after an INSERT.
	LastInsertID *int64
}

// Adapter executes SQL against one backend.
type Adapter interface {
	Execute(ctx context.Context, statement string, params ...any) (*Result, error)
	Dialect() Dialect
	Close() error
}

// StatementKind is how an adapter treats a statement.
type StatementKind int

const (
	KindQuery StatementKind = iota
	KindInsert
	KindUpdate
	KindDelete
)

// String returns the leading keyword for write kinds and "QUERY" otherwise.
func (k StatementKind) String() string {
	switch k {
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	default:
		return "QUERY"
	}
}

// IsWrite reports whether the statement is executed for effect only.
func (k StatementKind) IsWrite() bool {
	return k != KindQuery
}

// Classify inspects the trimmed, upper-cased statement prefix. Anything that
// is not INSERT, UPDATE or DELETE is treated as row-producing.
func Classify(statement string) StatementKind {
	upper := strings.ToUpper(strings.TrimSpace(statement))
	switch {
	case strings.HasPrefix(upper, "INSERT"):
		return KindInsert
	case strings.HasPrefix(upper, "UPDATE"):
		return KindUpdate
	case strings.HasPrefix(upper, "DELETE"):
		return KindDelete
	default:
		return KindQuery
	}
}

func emptyResult(rowCount int64) *Result {
	return &Result{Rows: []Row{}, RowCount: rowCount}
}
