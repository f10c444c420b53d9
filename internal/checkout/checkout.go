// Package checkout wraps the third-party payment gateway's hosted checkout
// page. The protocol is idle -> awaiting-session -> awaiting-user-action ->
// resolved | rejected: a checkout session is built from a server-created
// payment order, the hosted page collects the payment outside this
// application's control, and the outcome comes back over a loopback callback
// as exactly one of success, gateway failure or user dismissal.
//
// The package performs no retries. A gateway order cannot be reopened after
// failure, so retrying is a caller decision that re-runs order creation from
// scratch.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"jobtrack-client-go/internal/models"
)

const (
	// defaultCurrency is the fallback when the payment order does not name
	// one.
	defaultCurrency = "INR"
	// productName and productDescription label the checkout session.
	productName        = "JobTrack"
	productDescription = "JobTrack subscription"
	// themeColor skins the hosted page.
	themeColor = "#2563eb"
)

// ErrCanceled rejects a checkout the user dismissed. Callers branch on it
// (errors.Is) to distinguish cancellation from a hard gateway failure.
var ErrCanceled = errors.New("checkout canceled by user")

// GatewayError is the normalized hard failure reported by the gateway.
type GatewayError struct {
	Code        string
	Description string
	Reason      string
}

func (e *GatewayError) Error() string {
	if e.Description != "" {
		return "payment failed: " + e.Description
	}
	return "payment failed"
}

// Identity prefills the payer's details on the hosted page.
type Identity struct {
	Name    string
	Email   string
	Contact string
}

// Options is the checkout session configuration handed to the gateway.
type Options struct {
	KeyID       string
	OrderID     string
	Amount      int64
	Currency    string
	Name        string
	Description string
	Prefill     Identity
	ThemeColor  string
}

// Result is the gateway's proof of a completed payment, posted back to the
// server for verification.
type Result struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// Gateway opens a checkout session and blocks until it resolves or rejects.
type Gateway interface {
	Open(ctx context.Context, opts Options) (*Result, error)
}

// Processor is the only entry point the page layer calls directly. It
// validates the order, fills in the fixed session defaults, and delegates to
// the gateway.
type Processor struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewProcessor creates a Processor over the given gateway.
func NewProcessor(gateway Gateway, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{gateway: gateway, logger: logger}
}

// ProcessPayment builds a checkout session from a server-created payment
// order and collects the outcome. Orders missing their gateway identifiers
// fail fast locally without contacting the gateway.
func (p *Processor) ProcessPayment(ctx context.Context, order models.PaymentOrder, identity Identity) (*Result, error) {
	if order.OrderID == "" || order.KeyID == "" {
		return nil, fmt.Errorf("checkout: payment order is missing gateway identifiers")
	}

	currency := order.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	opts := Options{
		KeyID:       order.KeyID,
		OrderID:     order.OrderID,
		Amount:      order.Amount,
		Currency:    currency,
		Name:        productName,
		Description: productDescription,
		Prefill:     identity,
		ThemeColor:  themeColor,
	}

	p.logger.Info("Opening checkout session",
		zap.String("order_id", order.OrderID),
		zap.Int64("amount", order.Amount),
		zap.String("currency", currency),
	)
	return p.gateway.Open(ctx, opts)
}
