package session

import (
	"errors"

	"jobtrack-client-go/internal/models"
)

// ErrNotFound is returned by Load when no session has been persisted.
var ErrNotFound = errors.New("no persisted session")

// Store defines the interface for durable client-side session storage.
// The auth store is its only consumer: sessions are saved on login and
// registration, and cleared on logout or detected invalidity.
type Store interface {
	Load() (*models.Session, error)
	Save(s *models.Session) error
	Clear() error
}
