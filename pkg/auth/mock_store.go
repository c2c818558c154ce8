package auth

import "sync"

// MockStore is an in-memory SessionStore for testing
type MockStore struct {
	mu      sync.Mutex
	session *Session

	// Failures to inject
	StoreErr    error
	RetrieveErr error
	DeleteErr   error
}

// NewMockStore creates a new mock credential store
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Store saves the session in memory
func (m *MockStore) Store(session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StoreErr != nil {
		return m.StoreErr
	}
	if session == nil || session.SessionID == "" {
		return ErrInvalidSession
	}

	copied := *session
	m.session = &copied
	return nil
}

// Retrieve returns the in-memory session
func (m *MockStore) Retrieve() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RetrieveErr != nil {
		return nil, m.RetrieveErr
	}
	if m.session == nil {
		return nil, ErrSessionNotFound
	}

	copied := *m.session
	return &copied, nil
}

// Delete removes the in-memory session
func (m *MockStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if m.session == nil {
		return ErrSessionNotFound
	}

	m.session = nil
	return nil
}
