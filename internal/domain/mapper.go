package domain

import (
	"task-manager/internal/repository"
)

// TaskMapper handles conversion between domain and repository task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// FromRepository converts a stored row to a domain Task.
func (m *TaskMapper) FromRepository(row repository.Task) Task {
	return Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      TaskStatus(row.Status),
		DueDateTime: row.DueDateTime,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// FromRepositorySlice converts stored rows, keeping their order.
func (m *TaskMapper) FromRepositorySlice(rows []*repository.Task) []Task {
	tasks := make([]Task, len(rows))
	for i, row := range rows {
		tasks[i] = m.FromRepository(*row)
	}
	return tasks
}

// ToNewTask converts create input to insert columns. A nil status is left
// to the column default.
func (m *TaskMapper) ToNewTask(in CreateTaskInput) repository.NewTask {
	row := repository.NewTask{
		Title:       in.Title,
		Description: in.Description,
		DueDateTime: in.DueDateTime,
	}
	if in.Status != nil {
		row.Status = string(*in.Status)
	}
	return row
}

// ToPatch converts update input to the columns to change.
func (m *TaskMapper) ToPatch(in UpdateTaskInput) repository.TaskPatch {
	patch := repository.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
		DueDateTime: in.DueDateTime,
	}
	if in.Status != nil {
		status := string(*in.Status)
		patch.Status = &status
	}
	return patch
}

// Mapper groups the mappers used by the service layer.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}
