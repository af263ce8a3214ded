package database

import "strings"

// TasksTable is the only application table.
const TasksTable = "tasks"

// TimestampLayout is the text form of createdAt and updatedAt on both
// backends.
const TimestampLayout = "2006-01-02 15:04:05"

// schemaStatements are written in the embedded dialect. The server backend
// runs them through TranslateForPostgres.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'TODO' CHECK(status IN ('TODO', 'IN_PROGRESS', 'COMPLETED')),
		dueDateTime TEXT NOT NULL,
		createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_dueDateTime ON tasks(dueDateTime)`,
}

// taskColumns holds the canonical spelling of every tasks column.
var taskColumns = []string{"id", "title", "description", "status", "dueDateTime", "createdAt", "updatedAt"}

var canonicalByLower = func() map[string]string {
	m := make(map[string]string, len(taskColumns))
	for _, c := range taskColumns {
		m[strings.ToLower(c)] = c
	}
	return m
}()

// CanonicalColumn maps a case-folded column name back to its schema spelling.
// Unknown names are returned unchanged.
func CanonicalColumn(name string) string {
	if c, ok := canonicalByLower[strings.ToLower(name)]; ok {
		return c
	}
	return name
}

// QuoteIdentifier double-quotes an identifier for use in generated SQL.
// Callers must only pass names already confirmed by a catalog lookup.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
