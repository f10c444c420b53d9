package models

import "time"

// Auth request payloads.

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateProfileRequest updates the profile fields of the current user.
// Pointers distinguish "clear this field" from "leave it alone".
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Location  *string `json:"location,omitempty"`
	JobTitle  *string `json:"jobTitle,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Job request payloads.

// CreateJobRequest is the payload for creating a job application record.
type CreateJobRequest struct {
	Company         string     `json:"company" validate:"required"`
	Position        string     `json:"position" validate:"required"`
	Status          JobStatus  `json:"status" validate:"required,oneof=saved applied screening interview offer rejected withdrawn"`
	JobType         string     `json:"jobType,omitempty"`
	JobLocation     string     `json:"jobLocation,omitempty"`
	Salary          *Salary    `json:"salary,omitempty"`
	ApplicationDate *time.Time `json:"applicationDate,omitempty"`
	ContactPerson   string     `json:"contactPerson,omitempty"`
	Priority        Priority   `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Favorite        bool       `json:"favorite,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	JobPostingURL   string     `json:"jobPostingUrl,omitempty" validate:"omitempty,url"`
}

// UpdateJobRequest patches an existing job application record.
type UpdateJobRequest struct {
	Company         *string    `json:"company,omitempty"`
	Position        *string    `json:"position,omitempty"`
	Status          *JobStatus `json:"status,omitempty" validate:"omitempty,oneof=saved applied screening interview offer rejected withdrawn"`
	JobType         *string    `json:"jobType,omitempty"`
	JobLocation     *string    `json:"jobLocation,omitempty"`
	Salary          *Salary    `json:"salary,omitempty"`
	ApplicationDate *time.Time `json:"applicationDate,omitempty"`
	ContactPerson   *string    `json:"contactPerson,omitempty"`
	Priority        *Priority  `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Favorite        *bool      `json:"favorite,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	JobPostingURL   *string    `json:"jobPostingUrl,omitempty" validate:"omitempty,url"`
}

// InterviewRequest appends an interview to a job's history.
type InterviewRequest struct {
	Date          time.Time  `json:"date" validate:"required"`
	InterviewType string     `json:"interviewType" validate:"required"`
	WithPerson    string     `json:"withPerson,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	FollowUpDate  *time.Time `json:"followUpDate,omitempty"`
}

// Task request payloads.

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description,omitempty"`
	Status         TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority       Priority   `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Category       string     `json:"category,omitempty"`
	RelatedJob     string     `json:"relatedJob,omitempty"`
	RelatedContact string     `json:"relatedContact,omitempty"`
}

// UpdateTaskRequest patches an existing task.
type UpdateTaskRequest struct {
	Title          *string     `json:"title,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Status         *TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority       *Priority   `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	DueDate        *time.Time  `json:"dueDate,omitempty"`
	Category       *string     `json:"category,omitempty"`
	RelatedJob     *string     `json:"relatedJob,omitempty"`
	RelatedContact *string     `json:"relatedContact,omitempty"`
}

// Contact request payloads.

// CreateContactRequest is the payload for creating a contact.
type CreateContactRequest struct {
	Name         string     `json:"name" validate:"required"`
	Relationship string     `json:"relationship,omitempty"`
	Email        string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string     `json:"phone,omitempty"`
	Company      string     `json:"company,omitempty"`
	Position     string     `json:"position,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Favorite     bool       `json:"favorite,omitempty"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// UpdateContactRequest patches an existing contact.
type UpdateContactRequest struct {
	Name         *string    `json:"name,omitempty"`
	Relationship *string    `json:"relationship,omitempty"`
	Email        *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string    `json:"phone,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Position     *string    `json:"position,omitempty"`
	Tags         *[]string  `json:"tags,omitempty"`
	Favorite     *bool      `json:"favorite,omitempty"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// InteractionRequest logs a touch point on a contact's history.
type InteractionRequest struct {
	Date            time.Time `json:"date" validate:"required"`
	InteractionType string    `json:"interactionType" validate:"required"`
	Notes           string    `json:"notes,omitempty"`
}

// Billing request payloads.

// VerifyPaymentRequest posts the gateway-returned proof of payment to the
// server for verification.
type VerifyPaymentRequest struct {
	OrderID       string `json:"orderId" validate:"required"`
	PaymentID     string `json:"paymentId" validate:"required"`
	Signature     string `json:"signature" validate:"required"`
	TransactionID string `json:"transactionId,omitempty"`
}
