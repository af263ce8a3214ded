package services

import (
	"context"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.TaskRepository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	queryTimeout  time.Duration
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.TaskRepository, cfg *config.Config) TaskService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidatorWithConfig(cfg),
		queryTimeout:  cfg.Database.QueryTimeout,
	}
}

// CreateTask validates input and stores a new task
func (t *taskServiceImpl) CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error) {
	cleaned, err := t.taskValidator.ValidateCreate(in)
	if err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	ctx, cancel := withTimeout(ctx, t.queryTimeout)
	defer cancel()

	row, err := t.repo.Create(ctx, t.mapper.Task.ToNewTask(cleaned))
	if err != nil {
		return nil, timeoutError(err, "create task", t.queryTimeout)
	}

	task := t.mapper.Task.FromRepository(*row)
	logging.Debugf("task service: created task %d\n", task.ID)
	return &task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	ctx, cancel := withTimeout(ctx, t.queryTimeout)
	defer cancel()

	row, err := t.repo.GetByID(ctx, id)
	if err != nil {
		return nil, timeoutError(err, "get task", t.queryTimeout)
	}

	task := t.mapper.Task.FromRepository(*row)
	return &task, nil
}

// ListTasks returns every task, soonest due first
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	ctx, cancel := withTimeout(ctx, t.queryTimeout)
	defer cancel()

	rows, err := t.repo.List(ctx)
	if err != nil {
		return nil, timeoutError(err, "list tasks", t.queryTimeout)
	}
	return t.mapper.Task.FromRepositorySlice(rows), nil
}

// UpdateTask applies the supplied fields only
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id int64, in domain.UpdateTaskInput) (*domain.Task, error) {
	cleaned, err := t.taskValidator.ValidateUpdate(id, in)
	if err != nil {
		return nil, errors.NewValidationError("invalid task update", err)
	}

	ctx, cancel := withTimeout(ctx, t.queryTimeout)
	defer cancel()

	row, err := t.repo.Update(ctx, id, t.mapper.Task.ToPatch(cleaned))
	if err != nil {
		return nil, timeoutError(err, "update task", t.queryTimeout)
	}

	task := t.mapper.Task.FromRepository(*row)
	return &task, nil
}

// DeleteTask removes one task
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}

	ctx, cancel := withTimeout(ctx, t.queryTimeout)
	defer cancel()

	return timeoutError(t.repo.Delete(ctx, id), "delete task", t.queryTimeout)
}
