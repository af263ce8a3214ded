package repository

// Task is a row of the tasks table. Timestamps are kept in the text layout
// the database produces.
type Task struct {
	ID          int64
	Title       string
	Description *string // nil for NULL
	Status      string
	DueDateTime string
	CreatedAt   string
	UpdatedAt   string
}

// NewTask holds the columns supplied on insert. An empty Status takes the
// column default.
type NewTask struct {
	Title       string
	Description *string
	Status      string
	DueDateTime string
}

// TaskPatch lists the columns an update may change. Nil fields are left as
// they are.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	DueDateTime *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.DueDateTime == nil
}
