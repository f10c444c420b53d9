package models

import "time"

// TaskStatus tracks the lifecycle of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Task is a follow-up item, optionally linked to a job or a contact.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Category       string     `json:"category,omitempty"`
	RelatedJob     string     `json:"relatedJob,omitempty"`
	RelatedContact string     `json:"relatedContact,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
