// Package storage persists scraped profile data keyed by username.
//
// Three logical record types exist: one profile document per username and
// one content document per username per kind (posts, reels). Writes are
// replace-style: a profile save overwrites the whole payload, a content save
// deletes the previous document and inserts a fresh one.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sableashish494/ashish-primaspot-main/pkg/models"
)

// ErrNotFound is returned by lookups for usernames with no stored record.
var ErrNotFound = errors.New("record not found")

// ProfileRecord is the persisted envelope for a profile.
type ProfileRecord struct {
	Username    string         `bson:"username" json:"username"`
	Data        models.Profile `bson:"data" json:"data"`
	LastUpdated time.Time      `bson:"last_updated" json:"last_updated"`
}

// ContentRecord is the persisted envelope for one content collection.
type ContentRecord struct {
	Username    string               `bson:"username" json:"username"`
	Data        []models.ContentItem `bson:"data" json:"data"`
	LastUpdated time.Time            `bson:"last_updated" json:"last_updated"`
}

// Store is the persistence contract shared by all backends.
type Store interface {
	// SaveProfile upserts the profile record for profile.Username and
	// returns the persisted record. Last write wins.
	SaveProfile(ctx context.Context, profile models.Profile) (*ProfileRecord, error)

	// SaveContent replaces the items stored for username+kind. An empty
	// items slice is a no-op: the previous collection stays untouched.
	SaveContent(ctx context.Context, kind models.ContentKind, username string, items []models.ContentItem) error

	// GetProfile returns the stored profile, or ErrNotFound.
	GetProfile(ctx context.Context, username string) (models.Profile, error)

	// GetContent returns at most limit stored items for username+kind.
	// A username with no stored collection yields an empty slice, not an
	// error.
	GetContent(ctx context.Context, kind models.ContentKind, username string, limit int) ([]models.ContentItem, error)

	// UserExists reports whether a profile record exists. The profile is
	// the existence anchor; content collections are not consulted.
	UserExists(ctx context.Context, username string) (bool, error)

	// ListUsers returns summaries of all stored profiles, most recently
	// updated first.
	ListUsers(ctx context.Context) ([]models.UserSummary, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
