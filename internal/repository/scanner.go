package repository

import (
	"fmt"

	"task-manager/internal/database"
)

// ScanTask reads a tasks row produced by either backend.
func ScanTask(row database.Row) (*Task, error) {
	task := &Task{}
	var err error

	if task.ID, err = int64Column(row, "id"); err != nil {
		return nil, err
	}
	if task.Title, err = stringColumn(row, "title"); err != nil {
		return nil, err
	}
	if task.Description, err = nullStringColumn(row, "description"); err != nil {
		return nil, err
	}
	if task.Status, err = stringColumn(row, "status"); err != nil {
		return nil, err
	}
	if task.DueDateTime, err = stringColumn(row, "dueDateTime"); err != nil {
		return nil, err
	}
	if task.CreatedAt, err = stringColumn(row, "createdAt"); err != nil {
		return nil, err
	}
	if task.UpdatedAt, err = stringColumn(row, "updatedAt"); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks reads every row of a result in order.
func ScanTasks(result *database.Result) ([]*Task, error) {
	tasks := make([]*Task, 0, len(result.Rows))
	for _, row := range result.Rows {
		task, err := ScanTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func int64Column(row database.Row, name string) (int64, error) {
	switch v := row[name].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("column %s: unexpected %T", name, row[name])
	}
}

func stringColumn(row database.Row, name string) (string, error) {
	switch v := row[name].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("column %s: unexpected %T", name, row[name])
	}
}

func nullStringColumn(row database.Row, name string) (*string, error) {
	if row[name] == nil {
		return nil, nil
	}
	s, err := stringColumn(row, name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
