package model

// Status is the progress state of a task.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusDone
)

// Statuses returns the selectable task statuses in display order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusDone}
}

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Next returns the status after s, wrapping around.
func (s Status) Next() Status {
	return (s + 1) % Status(len(Statuses()))
}

// Prev returns the status before s, wrapping around.
func (s Status) Prev() Status {
	n := Status(len(Statuses()))
	return (s + n - 1) % n
}

// Task represents a todo item in the system.
type Task struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Deadline string `json:"deadline"`
	Status   Status `json:"status"`
	IsDone   bool   `json:"is_done"`
}

// Draft is the scratch copy of a task bound to a form before it is committed.
type Draft struct {
	ID       int
	Title    string
	Detail   string
	Deadline string
	Status   Status
	IsDone   bool
}

// Reset restores the draft to its empty defaults.
func (d *Draft) Reset() {
	*d = Draft{Status: StatusNotStarted}
}

// Validate checks if the draft can become a task.
func (d *Draft) Validate() error {
	if d.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// Task copies the draft into a task carrying the given id.
func (d *Draft) Task(id int) Task {
	return Task{
		ID:       id,
		Title:    d.Title,
		Detail:   d.Detail,
		Deadline: d.Deadline,
		Status:   d.Status,
		IsDone:   d.IsDone,
	}
}

// TaskError represents a domain error for tasks.
type TaskError struct {
	Message string
}

func (e TaskError) Error() string {
	return e.Message
}

var (
	ErrTitleRequired = TaskError{Message: "please enter a task title"}
)
