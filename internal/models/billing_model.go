package models

import "time"

// PlanName identifies one of the product tiers.
type PlanName string

const (
	PlanFree       PlanName = "free"
	PlanBasic      PlanName = "basic"
	PlanPremium    PlanName = "premium"
	PlanEnterprise PlanName = "enterprise"
)

// BillingType distinguishes monthly from yearly billing on paid plans.
type BillingType string

const (
	BillingMonthly BillingType = "monthly"
	BillingYearly  BillingType = "yearly"
)

// PlanPrice holds the price points of a plan in the catalog currency.
type PlanPrice struct {
	Monthly int `json:"monthly"`
	Yearly  int `json:"yearly"`
}

// PlanFeature is one marketing bullet of a plan.
type PlanFeature struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

// PlanLimits are the server-enforced quotas attached to a plan. They are
// informational on the client; the server is the authority.
type PlanLimits struct {
	JobApplications int `json:"jobApplications"`
	Contacts        int `json:"contacts"`
	DocumentStorage int `json:"documentStorage"`
}

// Plan is read-only reference data describing one product tier.
type Plan struct {
	ID       string        `json:"id"`
	Name     PlanName      `json:"name"`
	Price    PlanPrice     `json:"price"`
	Features []PlanFeature `json:"features,omitempty"`
	Limits   PlanLimits    `json:"limits"`
}

// Subscription describes the user's active paid subscription, if any.
type Subscription struct {
	Status      string      `json:"status"`
	BillingType BillingType `json:"billingType"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
}

// CurrentPlanState pairs the user's plan with the subscription backing it.
// Refreshed after any plan-changing operation.
type CurrentPlanState struct {
	Plan         Plan          `json:"plan"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// TransactionStatus is the settlement state of a payment history record.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction is a read-only payment history record.
type Transaction struct {
	ID          string            `json:"id"`
	Plan        PlanName          `json:"plan"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Status      TransactionStatus `json:"status"`
	BillingType BillingType       `json:"billingType"`
	StartDate   *time.Time        `json:"startDate,omitempty"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// PlanUpgrade is the server's answer to an upgrade request. NextStep tells
// the client whether a payment is required ("payment") or the change was
// applied directly (free-tier moves).
type PlanUpgrade struct {
	NextStep      string `json:"nextStep"`
	PlanID        string `json:"planId"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message,omitempty"`
}

// PaymentOrder carries the gateway order identifiers the checkout
// integration needs to collect a payment.
type PaymentOrder struct {
	OrderID       string `json:"orderId"`
	KeyID         string `json:"keyId"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	TransactionID string `json:"transactionId"`
	Receipt       string `json:"receipt,omitempty"`
}
