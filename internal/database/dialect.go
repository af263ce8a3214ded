package database

// Dialect supplies the catalog queries the database browser needs. Every
// query returns rows shaped alike on both backends.
type Dialect interface {
	Name() string
	// ListTablesQuery returns user tables as a single "name" column, sorted.
	ListTablesQuery() string
	// TableExistsQuery takes one parameter, the exact table name.
	TableExistsQuery() string
	// ColumnsQuery returns cid, name, type, notnull, dflt_value, pk.
	ColumnsQuery(table string) (string, []any)
	// IndexesQuery returns seq, name, unique, origin, partial.
	IndexesQuery(table string) (string, []any)
}

// SQLiteDialect is the embedded engine's catalog.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) ListTablesQuery() string {
	return `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`
}

func (SQLiteDialect) TableExistsQuery() string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`
}

func (SQLiteDialect) ColumnsQuery(table string) (string, []any) {
	return `SELECT cid, name, type, "notnull", dflt_value, pk FROM pragma_table_info(?)`, []any{table}
}

func (SQLiteDialect) IndexesQuery(table string) (string, []any) {
	return `SELECT seq, name, "unique", origin, partial FROM pragma_index_list(?)`, []any{table}
}

// PostgresDialect reads the public schema through the system catalogs.
type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) ListTablesQuery() string {
	return `SELECT table_name::text AS name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name`
}

func (PostgresDialect) TableExistsQuery() string {
	return `SELECT table_name::text AS name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE' AND table_name = ?`
}

func (PostgresDialect) ColumnsQuery(table string) (string, []any) {
	return `SELECT (c.ordinal_position - 1)::int AS cid,
			c.column_name::text AS name,
			upper(c.data_type::text) AS type,
			CASE WHEN c.is_nullable = 'NO' THEN 1 ELSE 0 END AS "notnull",
			c.column_default::text AS dflt_value,
			CASE WHEN EXISTS (
				SELECT 1 FROM pg_index i
				JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
				WHERE i.indrelid = format('public.%I', c.table_name)::regclass
					AND i.indisprimary AND a.attname = c.column_name
			) THEN 1 ELSE 0 END AS pk
		FROM information_schema.columns c
		WHERE c.table_schema = 'public' AND c.table_name = ?
		ORDER BY c.ordinal_position`, []any{table}
}

func (PostgresDialect) IndexesQuery(table string) (string, []any) {
	return `SELECT (row_number() OVER (ORDER BY i.relname) - 1)::int AS seq,
			i.relname::text AS name,
			CASE WHEN ix.indisunique THEN 1 ELSE 0 END AS "unique",
			CASE WHEN ix.indisprimary THEN 'pk' ELSE 'c' END AS origin,
			CASE WHEN ix.indpred IS NULL THEN 0 ELSE 1 END AS partial
		FROM pg_class t
		JOIN pg_index ix ON ix.indrelid = t.oid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE n.nspname = 'public' AND t.relname = ?
		ORDER BY i.relname`, []any{table}
}
