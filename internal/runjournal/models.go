package runjournal

import "time"

// Status represents the lifecycle of a recorded run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

// Run is one journal row.
type Run struct {
	ID           int64
	RunID        string
	PostID       string
	Mode         string
	Source       string
	Status       Status
	Strategy     string
	Assets       []string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
