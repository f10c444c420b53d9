package core

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobtrack-client-go/internal/models"
)

// LoadPlans fetches the static plan catalog. The catalog endpoint is public
// (it backs the anonymous pricing page), so this is the one data-store
// operation that skips the authentication gate.
func (s *DataStore) LoadPlans(ctx context.Context) error {
	s.begin(ResourceBilling)

	env, err := s.api.Get(ctx, "/plans")
	if err != nil {
		s.finish(ResourceBilling, err)
		return err
	}

	var plans []models.Plan
	if err := env.Decode("plans", &plans); err != nil {
		s.finish(ResourceBilling, err)
		return err
	}

	s.mu.Lock()
	s.plans = plans
	s.mu.Unlock()

	s.finish(ResourceBilling, nil)
	return nil
}

// LoadCurrentPlan fetches the authenticated user's plan and subscription.
func (s *DataStore) LoadCurrentPlan(ctx context.Context) error {
	if s.gated() {
		return nil
	}
	s.begin(ResourceBilling)

	env, err := s.api.Get(ctx, "/plans/current")
	if err != nil {
		s.finish(ResourceBilling, err)
		return err
	}

	var state models.CurrentPlanState
	if err := env.Decode("plan", &state.Plan); err != nil {
		s.finish(ResourceBilling, err)
		return err
	}
	if env.Has("subscription") {
		var sub models.Subscription
		if err := env.Decode("subscription", &sub); err != nil {
			s.finish(ResourceBilling, err)
			return err
		}
		state.Subscription = &sub
	}

	s.mu.Lock()
	s.currentPlan = &state
	s.mu.Unlock()

	s.finish(ResourceBilling, nil)
	return nil
}

// InitiatePlanUpgrade asks the server to move the user to another plan. For
// free-tier changes the server applies the move directly and the current
// plan is refreshed here; when the answer names payment as the next step,
// the caller proceeds to the checkout integration with the returned handle
// and no refresh happens yet.
func (s *DataStore) InitiatePlanUpgrade(ctx context.Context, planID string, billingType models.BillingType) (*models.PlanUpgrade, error) {
	if s.gated() {
		return nil, nil
	}
	s.begin(ResourceBilling)

	env, err := s.api.Post(ctx, "/plans/upgrade", map[string]string{
		"planId":      planID,
		"billingType": string(billingType),
	})
	if err != nil {
		s.finish(ResourceBilling, err)
		return nil, err
	}

	var upgrade models.PlanUpgrade
	if err := decodePayload(env, &upgrade); err != nil {
		s.finish(ResourceBilling, err)
		return nil, err
	}
	s.finish(ResourceBilling, nil)

	if upgrade.NextStep != "payment" {
		if err := s.LoadCurrentPlan(ctx); err != nil {
			s.logger.Warn("Plan changed but refresh failed", zap.Error(err))
		}
	}
	return &upgrade, nil
}

// CreatePaymentOrder creates a gateway order for the plan purchase and
// returns the identifiers the checkout integration consumes. A
// client-generated receipt id makes the order attributable end to end.
func (s *DataStore) CreatePaymentOrder(ctx context.Context, planID string, billingType models.BillingType) (*models.PaymentOrder, error) {
	if s.gated() {
		return nil, nil
	}
	s.begin(ResourceBilling)

	receipt := uuid.NewString()
	env, err := s.api.Post(ctx, "/payments/create-order", map[string]string{
		"planId":      planID,
		"billingType": string(billingType),
		"receipt":     receipt,
	})
	if err != nil {
		s.finish(ResourceBilling, err)
		return nil, err
	}

	var order models.PaymentOrder
	if err := decodePayload(env, &order); err != nil {
		s.finish(ResourceBilling, err)
		return nil, err
	}
	if order.Receipt == "" {
		order.Receipt = receipt
	}

	s.finish(ResourceBilling, nil)
	return &order, nil
}

// VerifyPayment posts the gateway-returned proof to the server. A gateway
// order cannot be reopened after failure, so callers retrying start over
// from CreatePaymentOrder. On success the current plan is unconditionally
// refreshed.
func (s *DataStore) VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) error {
	if s.gated() {
		return nil
	}
	if err := s.validate.Struct(req); err != nil {
		s.finish(ResourceBilling, err)
		return err
	}
	s.begin(ResourceBilling)

	if _, err := s.api.Post(ctx, "/payments/verify", req); err != nil {
		s.finish(ResourceBilling, err)
		return err
	}
	s.finish(ResourceBilling, nil)

	if err := s.LoadCurrentPlan(ctx); err != nil {
		s.logger.Warn("Payment verified but plan refresh failed", zap.Error(err))
	}
	return nil
}

// CancelSubscription cancels the active subscription and refreshes the
// current plan.
func (s *DataStore) CancelSubscription(ctx context.Context) error {
	if s.gated() {
		return nil
	}
	s.begin(ResourceBilling)

	if _, err := s.api.Post(ctx, "/subscription/cancel", nil); err != nil {
		s.finish(ResourceBilling, err)
		return err
	}
	s.finish(ResourceBilling, nil)

	if err := s.LoadCurrentPlan(ctx); err != nil {
		s.logger.Warn("Subscription canceled but plan refresh failed", zap.Error(err))
	}
	return nil
}

// GetPaymentHistory returns the transaction list, fetched fresh on every
// call and never cached. Returns an empty slice on any failure.
func (s *DataStore) GetPaymentHistory(ctx context.Context) []models.Transaction {
	if s.gated() {
		return []models.Transaction{}
	}
	s.begin(ResourceBilling)

	env, err := s.api.Get(ctx, "/payments/history")
	if err != nil {
		s.finish(ResourceBilling, err)
		return []models.Transaction{}
	}

	var transactions []models.Transaction
	if err := env.Decode("transactions", &transactions); err != nil {
		s.finish(ResourceBilling, err)
		return []models.Transaction{}
	}

	s.finish(ResourceBilling, nil)
	return transactions
}

// Plans returns a copy of the loaded plan catalog.
func (s *DataStore) Plans() []models.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

// CurrentPlan returns the last loaded plan+subscription state, or nil.
func (s *DataStore) CurrentPlan() *models.CurrentPlanState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentPlan == nil {
		return nil
	}
	state := *s.currentPlan
	return &state
}
