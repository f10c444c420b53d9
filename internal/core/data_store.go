package core

import (
	"errors"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"jobtrack-client-go/internal/api"
	"jobtrack-client-go/internal/models"
)

// Resource names keying the per-resource loading/error state. One flag pair
// per resource keeps concurrent operations on different entity types from
// stomping each other's state.
const (
	ResourceJobs      = "jobs"
	ResourceTasks     = "tasks"
	ResourceContacts  = "contacts"
	ResourceBilling   = "billing"
	ResourceDashboard = "dashboard"
)

// opState is the loading/error pair for one resource.
type opState struct {
	loading bool
	err     string
}

// DataStore owns every domain collection (jobs, tasks, contacts, plans,
// current subscription, dashboard analytics) and all CRUD/query operations
// against them. Collections live in memory only; every process start
// re-fetches.
//
// Error contract, preserved deliberately: reads degrade gracefully (nil /
// empty / false, message recorded per resource), writes return the error so
// the caller knows the write did not happen.
//
// Concurrent calls into the same resource race and the last settled response
// wins. That is an accepted simplification, not a guarantee of ordering.
type DataStore struct {
	api      *api.Client
	auth     Authenticator
	logger   *zap.Logger
	validate *validator.Validate

	mu  sync.RWMutex
	ops map[string]*opState

	jobs         []models.Job
	jobsPage     models.Pagination
	tasks        []models.Task
	tasksPage    models.Pagination
	contacts     []models.Contact
	contactsPage models.Pagination
	plans        []models.Plan
	currentPlan  *models.CurrentPlanState
	stats        *models.DashboardStats
}

// NewDataStore creates a DataStore. auth gates every network call so a
// logout race cannot produce spurious 401s.
func NewDataStore(client *api.Client, auth Authenticator, logger *zap.Logger) *DataStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataStore{
		api:      client,
		auth:     auth,
		logger:   logger,
		validate: validator.New(),
		ops:      make(map[string]*opState),
	}
}

// gated reports whether network calls must be refused because no
// authenticated session is active.
func (s *DataStore) gated() bool {
	return s.auth == nil || !s.auth.IsAuthenticated()
}

// begin marks a resource as loading and clears its previous error.
func (s *DataStore) begin(resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[resource] = &opState{loading: true}
}

// finish clears the loading flag and records the outcome.
func (s *DataStore) finish(resource string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.ops[resource]
	if !ok {
		state = &opState{}
		s.ops[resource] = state
	}
	state.loading = false
	if err != nil {
		state.err = errMessage(err)
		s.logger.Warn("Operation failed", zap.String("resource", resource), zap.Error(err))
	} else {
		state.err = ""
	}
}

// Loading reports whether an operation on the resource is in flight.
func (s *DataStore) Loading(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.ops[resource]; ok {
		return state.loading
	}
	return false
}

// ErrFor returns the last recorded error message for the resource, or ""
// when the last operation succeeded.
func (s *DataStore) ErrFor(resource string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.ops[resource]; ok {
		return state.err
	}
	return ""
}

// listQuery serializes filters plus pagination into a query string.
func listQuery(filters map[string]string, page, limit int) string {
	values := url.Values{}
	for k, v := range filters {
		if v != "" {
			values.Set(k, v)
		}
	}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if encoded := values.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

// decodePayload decodes the primary payload, looking under the `data` key
// first and falling back to the response root for endpoints that do not
// wrap.
func decodePayload(env api.Envelope, target any) error {
	if env.Has("data") {
		return env.Decode("data", target)
	}
	return env.Decode("", target)
}

// errMessage extracts the normalized human-readable message from an error.
func errMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
