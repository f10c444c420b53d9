package models

import "time"

// JobStatus tracks where an application sits in the pipeline.
type JobStatus string

const (
	JobStatusSaved     JobStatus = "saved"
	JobStatusApplied   JobStatus = "applied"
	JobStatusScreening JobStatus = "screening"
	JobStatusInterview JobStatus = "interview"
	JobStatusOffer     JobStatus = "offer"
	JobStatusRejected  JobStatus = "rejected"
	JobStatusWithdrawn JobStatus = "withdrawn"
)

// Priority is shared by jobs and tasks.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Salary is the offered or expected compensation range for a job.
type Salary struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Interview is a sub-entity of Job, appended and edited only through
// job-scoped operations.
type Interview struct {
	ID            string     `json:"id"`
	Date          time.Time  `json:"date"`
	InterviewType string     `json:"interviewType"`
	WithPerson    string     `json:"withPerson,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	FollowUpDate  *time.Time `json:"followUpDate,omitempty"`
}

// Job is a single job-application record. The list held by the data store is
// the server's authoritative copy; every mutation synchronizes both sides so
// list and detail views reflect the write without a full reload.
type Job struct {
	ID               string      `json:"id"`
	Company          string      `json:"company"`
	Position         string      `json:"position"`
	Status           JobStatus   `json:"status"`
	JobType          string      `json:"jobType,omitempty"`
	JobLocation      string      `json:"jobLocation,omitempty"`
	Salary           Salary      `json:"salary,omitempty"`
	ApplicationDate  *time.Time  `json:"applicationDate,omitempty"`
	ContactPerson    string      `json:"contactPerson,omitempty"`
	InterviewHistory []Interview `json:"interviewHistory,omitempty"`
	Favorite         bool        `json:"favorite"`
	Priority         Priority    `json:"priority,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	JobPostingURL    string      `json:"jobPostingUrl,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}
