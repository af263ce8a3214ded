package services

import (
	"context"
	stderrors "errors"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/database"
	"task-manager/internal/errors"
	"task-manager/internal/repository"
)

// NewServiceContainer wires every service over db.
func NewServiceContainer(db database.Adapter, cfg *config.Config) *ServiceContainer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &ServiceContainer{
		TaskService:     NewTaskService(repository.New(db), cfg),
		DatabaseService: NewDatabaseService(db, cfg),
	}
}

// withTimeout bounds a database round trip by the configured query timeout.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// timeoutError reports a deadline hit during operation as a timeout error.
// Other errors pass through unchanged.
func timeoutError(err error, operation string, timeout time.Duration) error {
	if err != nil && stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, timeout.String())
	}
	return err
}
