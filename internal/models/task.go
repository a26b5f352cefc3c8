package models

import "time"

type TaskStatus string
type TaskPriority string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"

	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskCompleted:
		return true
	}
	return false
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task carries no copy of the project name; it is resolved from the
// Project collection whenever a task is rendered or exported, so a
// project rename can never leave tasks pointing at a stale name.
type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string `json:"title" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text"`
	ProjectID   uint   `json:"projectId" gorm:"not null"`

	Status   TaskStatus   `json:"status" gorm:"type:varchar(20);not null"`
	Priority TaskPriority `json:"priority" gorm:"type:varchar(10);not null"`
	Assignee string       `json:"assignee" gorm:"size:255"`

	DueDate     string `json:"dueDate" gorm:"size:10"`
	CreatedDate string `json:"createdDate" gorm:"size:10"`

	IsWorkInProgress bool       `json:"isWorkInProgress"`
	WorkStartedAt    *time.Time `json:"workStartedAt,omitempty"`

	WorkLogs []WorkLog `json:"workLogs"`
}
