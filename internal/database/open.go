package database

import "context"

// Settings selects and configures the backend.
type Settings struct {
	// Production selects the server backend.
	Production bool
	URL        string
	MaxConns   int32
}

// Dialect returns the catalog dialect of the backend Open would choose.
func (s Settings) Dialect() Dialect {
	if s.Production {
		return PostgresDialect{}
	}
	return SQLiteDialect{}
}

// Open is the only place a backend is chosen.
func Open(ctx context.Context, s Settings) (Adapter, error) {
	if s.Production {
		pg, err := NewPostgres(ctx, s.URL, s.MaxConns)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	lite, err := NewSQLite(ctx)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

// Opener binds Open to s for use with Barrier.Start.
func (s Settings) Opener() OpenFunc {
	return func(ctx context.Context) (Adapter, error) {
		return Open(ctx, s)
	}
}
