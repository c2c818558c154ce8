// Package auth stores the Instagram session credential the fetch layer
// attaches to outbound requests. Credentials resolve through a chain of
// backends: system keychain, encrypted file, environment variable.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

var (
	// ErrSessionNotFound means no backend holds a session credential
	ErrSessionNotFound = errors.New("session credential not found")

	// ErrInvalidSession means the session credential is empty or malformed
	ErrInvalidSession = errors.New("invalid session credential")

	// ErrStoreUnavailable means the backend cannot perform the operation
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// Session holds the upstream session credential
type Session struct {
	SessionID    string    `json:"session_id"`
	LastModified time.Time `json:"last_modified"`
}

// SessionStore is the interface for storing and retrieving the session
type SessionStore interface {
	// Store saves the session credential
	Store(session *Session) error

	// Retrieve gets the stored session credential
	Retrieve() (*Session, error)

	// Delete removes the stored session credential
	Delete() error
}

// Manager resolves the session credential with fallback between backends
type Manager struct {
	stores []SessionStore
}

// NewManager creates a credential manager with the available backends
func NewManager() (*Manager, error) {
	var stores []SessionStore

	// Try keyring first (system keychain)
	keyringStore, err := NewKeyringStore()
	if err == nil {
		stores = append(stores, keyringStore)
	}

	// Encrypted file store as fallback
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "session.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	// Environment as last resort
	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a manager over an explicit backend chain
func NewManagerWithStores(stores ...SessionStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves the session using the first backend that accepts it
func (m *Manager) Store(session *Session) error {
	if session == nil || session.SessionID == "" {
		return ErrInvalidSession
	}

	session.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(session); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store session: %w", lastErr)
	}
	return errors.New("no available credential stores")
}

// Retrieve returns the session from the first backend that has one
func (m *Manager) Retrieve() (*Session, error) {
	for _, store := range m.stores {
		session, err := store.Retrieve()
		if err == nil && session != nil {
			return session, nil
		}
	}
	return nil, ErrSessionNotFound
}

// Delete removes the session from every backend that holds it
func (m *Manager) Delete() error {
	deleted := false
	for _, store := range m.stores {
		if err := store.Delete(); err == nil {
			deleted = true
		}
	}
	if !deleted {
		return ErrSessionNotFound
	}
	return nil
}

// getConfigDir returns the directory used for credential files
func getConfigDir() (string, error) {
	var base string

	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".config")
		}
	}

	dir := filepath.Join(base, "primaspot")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	return dir, nil
}
