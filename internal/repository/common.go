package repository

import (
	"context"

	"task-manager/internal/database"
	"task-manager/internal/errors"
)

// HandleDatabaseError converts scan and decode failures to structured app
// errors. Statement failures are already execution errors and pass through.
func HandleDatabaseError(operation string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	return errors.NewDatabaseError(operation, err)
}

// ValidateRowsAffected turns an update or delete that touched nothing into a
// not-found error.
func ValidateRowsAffected(result *database.Result, entityType string, id string) error {
	if result.RowCount == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// ExecuteWithLastInsertID executes an insert and returns the generated id.
func ExecuteWithLastInsertID(ctx context.Context, db database.Adapter, query string, args ...any) (int64, error) {
	result, err := db.Execute(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError("execute insert", err)
	}
	if result.LastInsertID == nil {
		return 0, errors.NewDatabaseError("get last insert ID", nil)
	}
	return *result.LastInsertID, nil
}

// ExecuteWithRowsAffected executes a write and requires it to touch a row.
func ExecuteWithRowsAffected(ctx context.Context, db database.Adapter, query string, entityType string, id string, args ...any) error {
	result, err := db.Execute(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("execute query", err)
	}
	return ValidateRowsAffected(result, entityType, id)
}

// QuerySingle executes a query expected to return one row and scans it.
func QuerySingle[T any](ctx context.Context, db database.Adapter, query string, scanFunc func(database.Row) (*T, error), entityType string, id string, args ...any) (*T, error) {
	result, err := db.Execute(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	if len(result.Rows) == 0 {
		return nil, errors.NewNotFoundError(entityType, id)
	}
	item, err := scanFunc(result.Rows[0])
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return item, nil
}

// QueryMultiple executes a query and scans every returned row.
func QueryMultiple[T any](ctx context.Context, db database.Adapter, query string, scanFunc func(*database.Result) ([]*T, error), entityType string, args ...any) ([]*T, error) {
	result, err := db.Execute(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	items, err := scanFunc(result)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return items, nil
}
