package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements SessionStore using environment variables.
// It is read-only and mirrors how the original deployment configured the
// credential.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(session *Session) error {
	return ErrStoreUnavailable
}

// Retrieve gets the session from the INSTAGRAM_SESSIONID variable
func (e *EnvironmentStore) Retrieve() (*Session, error) {
	sessionID := os.Getenv("INSTAGRAM_SESSIONID")
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	return &Session{
		SessionID:    sessionID,
		LastModified: time.Now(),
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}
