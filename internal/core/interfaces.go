package core

import (
	"context"

	"jobtrack-client-go/internal/models"
)

// Authenticator is the narrow view of the auth store the data store needs to
// gate network calls.
type Authenticator interface {
	IsAuthenticated() bool
}

// AuthService is the auth surface consumed by the view layer.
type AuthService interface {
	Bootstrap(ctx context.Context) error
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	CheckResetToken(ctx context.Context, token string) (bool, error)
	ResetPassword(ctx context.Context, token, password string) error
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) error
	UpdatePassword(ctx context.Context, current, next string) error

	CurrentUser() *models.User
	IsAuthenticated() bool
	IsLoading() bool
	Err() string
}

// DataService is the domain-data surface consumed by the view layer.
//
// Reads never fail loudly: list loads leave prior state intact on error,
// single fetches return nil, deletes return false, and the payment history
// returns an empty slice. Writes return the error so callers can branch.
type DataService interface {
	// Jobs.
	LoadJobs(ctx context.Context, filters map[string]string, page, limit int) error
	GetJobByID(ctx context.Context, id string) *models.Job
	CreateJob(ctx context.Context, req models.CreateJobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, id string, req models.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, id string) bool
	AddInterview(ctx context.Context, jobID string, req models.InterviewRequest) (*models.Job, error)

	// Tasks.
	LoadTasks(ctx context.Context, filters map[string]string, page, limit int) error
	GetTaskByID(ctx context.Context, id string) *models.Task
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error)
	CompleteTask(ctx context.Context, id string) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) bool

	// Contacts.
	LoadContacts(ctx context.Context, filters map[string]string, page, limit int) error
	GetContactByID(ctx context.Context, id string) *models.Contact
	CreateContact(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error)
	UpdateContact(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error)
	ToggleContactFavorite(ctx context.Context, id string) (*models.Contact, error)
	AddInteraction(ctx context.Context, contactID string, req models.InteractionRequest) (*models.Contact, error)
	DeleteContact(ctx context.Context, id string) bool

	// Plans and payments.
	LoadPlans(ctx context.Context) error
	LoadCurrentPlan(ctx context.Context) error
	InitiatePlanUpgrade(ctx context.Context, planID string, billingType models.BillingType) (*models.PlanUpgrade, error)
	CreatePaymentOrder(ctx context.Context, planID string, billingType models.BillingType) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) error
	CancelSubscription(ctx context.Context) error
	GetPaymentHistory(ctx context.Context) []models.Transaction

	// Dashboard.
	LoadDashboardStats(ctx context.Context) error

	// State accessors.
	Jobs() []models.Job
	JobsPagination() models.Pagination
	Tasks() []models.Task
	TasksPagination() models.Pagination
	Contacts() []models.Contact
	ContactsPagination() models.Pagination
	Plans() []models.Plan
	CurrentPlan() *models.CurrentPlanState
	DashboardStats() *models.DashboardStats
	Loading(resource string) bool
	ErrFor(resource string) string
}
