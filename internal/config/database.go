package config

import (
	"context"

	"task-manager/internal/database"
)

// StartDatabase begins opening the backend chosen by config and returns the
// barrier guarding it. Callers wait on the barrier before serving traffic.
// Opening gives up after Database.InitTimeout.
func StartDatabase(ctx context.Context, config *Config) *database.Barrier {
	settings := config.DatabaseSettings()
	open := settings.Opener()
	timeout := config.Database.InitTimeout

	barrier := database.NewBarrier(settings.Dialect())
	barrier.Start(ctx, func(ctx context.Context) (database.Adapter, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return open(ctx)
	})
	return barrier
}
