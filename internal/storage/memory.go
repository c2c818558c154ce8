package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sableashish494/ashish-primaspot-main/pkg/models"
)

// MemoryStore implements Store with in-process maps. It backs the "memory"
// database backend and the test suite.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]ProfileRecord
	content  map[models.ContentKind]map[string]ContentRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]ProfileRecord),
		content: map[models.ContentKind]map[string]ContentRecord{
			models.KindPosts: {},
			models.KindReels: {},
		},
	}
}

// SaveProfile upserts the profile record for profile.Username.
func (s *MemoryStore) SaveProfile(ctx context.Context, profile models.Profile) (*ProfileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := ProfileRecord{
		Username:    profile.Username,
		Data:        profile,
		LastUpdated: time.Now().UTC(),
	}
	s.profiles[profile.Username] = record

	return &record, nil
}

// SaveContent replaces the stored collection for username+kind. Empty input
// leaves the previous collection alone.
func (s *MemoryStore) SaveContent(ctx context.Context, kind models.ContentKind, username string, items []models.ContentItem) error {
	if len(items) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]models.ContentItem, len(items))
	copy(copied, items)

	s.content[kind][username] = ContentRecord{
		Username:    username,
		Data:        copied,
		LastUpdated: time.Now().UTC(),
	}
	return nil
}

// GetProfile returns the stored profile payload for a username.
func (s *MemoryStore) GetProfile(ctx context.Context, username string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.profiles[username]
	if !ok {
		return models.Profile{}, ErrNotFound
	}
	return record.Data, nil
}

// GetContent returns at most limit stored items for username+kind.
func (s *MemoryStore) GetContent(ctx context.Context, kind models.ContentKind, username string, limit int) ([]models.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.content[kind][username]
	if !ok {
		return []models.ContentItem{}, nil
	}

	items := record.Data
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	out := make([]models.ContentItem, len(items))
	copy(out, items)
	return out, nil
}

// UserExists reports whether a profile record exists for the username.
func (s *MemoryStore) UserExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.profiles[username]
	return ok, nil
}

// ListUsers returns all stored profile summaries, newest first.
func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.UserSummary, 0, len(s.profiles))
	for _, record := range s.profiles {
		users = append(users, models.UserSummary{
			Username:    record.Username,
			FullName:    record.Data.FullName,
			LastUpdated: record.LastUpdated,
		})
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].LastUpdated.After(users[j].LastUpdated)
	})

	return users, nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
