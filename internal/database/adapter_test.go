package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		statement string
		kind      StatementKind
	}{
		{"INSERT INTO tasks (title) VALUES (?)", KindInsert},
		{"  insert into tasks default values", KindInsert},
		{"\n\tUPDATE tasks SET title = ?", KindUpdate},
		{"delete from tasks", KindDelete},
		{"SELECT * FROM tasks", KindQuery},
		{"PRAGMA table_info(tasks)", KindQuery},
		{"WITH x AS (SELECT 1) SELECT * FROM x", KindQuery},
		{"", KindQuery},
	}

	for _, tt := range tests {
		t.Run(tt.statement, func(t *testing.T) {
			got := Classify(tt.statement)
			assert.Equal(t, tt.kind, got)
			assert.Equal(t, tt.kind != KindQuery, got.IsWrite())
		})
	}
}

func TestCanonicalColumn(t *testing.T) {
	assert.Equal(t, "dueDateTime", CanonicalColumn("duedatetime"))
	assert.Equal(t, "createdAt", CanonicalColumn("CREATEDAT"))
	assert.Equal(t, "count", CanonicalColumn("count"))
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"tasks"`, QuoteIdentifier("tasks"))
	assert.Equal(t, `"we""ird"`, QuoteIdentifier(`we"ird`))
}

func TestSettingsDialect(t *testing.T) {
	assert.Equal(t, "sqlite", Settings{}.Dialect().Name())
	assert.Equal(t, "postgres", Settings{Production: true}.Dialect().Name())
}
