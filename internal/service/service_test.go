package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sableashish494/ashish-primaspot-main/internal/storage"
	"github.com/sableashish494/ashish-primaspot-main/pkg/config"
	"github.com/sableashish494/ashish-primaspot-main/pkg/instagram"
	"github.com/sableashish494/ashish-primaspot-main/pkg/logger"
	"github.com/sableashish494/ashish-primaspot-main/pkg/models"
)

// fakeFetcher returns a canned user or error and records calls.
type fakeFetcher struct {
	user  *instagram.User
	err   error
	calls []string
}

func (f *fakeFetcher) FetchUserProfile(username string) (*instagram.User, error) {
	f.calls = append(f.calls, username)
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

// failingStore wraps a real store and fails all writes.
type failingStore struct {
	storage.Store
}

func (f *failingStore) SaveProfile(ctx context.Context, profile models.Profile) (*storage.ProfileRecord, error) {
	return nil, errors.New("disk full")
}

func (f *failingStore) SaveContent(ctx context.Context, kind models.ContentKind, username string, items []models.ContentItem) error {
	return errors.New("disk full")
}

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{PostsLimit: 15, ReelsLimit: 7}
}

func timelineUser(username string) *instagram.User {
	return &instagram.User{
		Username:       username,
		FullName:       "Test User",
		EdgeFollowedBy: instagram.EdgeCount{Count: 1000},
		EdgeOwnerToTimelineMedia: instagram.EdgeOwnerToTimelineMedia{
			Count: 2,
			Edges: []instagram.Edge{
				{Node: instagram.Node{
					ID: "1", Shortcode: "p1", ProductType: "feed",
					EdgeLikedBy:        instagram.EdgeCount{Count: 80},
					EdgeMediaToComment: instagram.EdgeCount{Count: 20},
				}},
				{Node: instagram.Node{
					ID: "2", Shortcode: "r1", ProductType: "clips", IsVideo: true,
					EdgeLikedBy:        instagram.EdgeCount{Count: 150},
					EdgeMediaToComment: instagram.EdgeCount{Count: 50},
				}},
			},
		},
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "testuser", "testuser", false},
		{"strips at sign", "@testuser", "testuser", false},
		{"strips trailing slash", "testuser/", "testuser", false},
		{"empty", "", "", true},
		{"only at sign", "@", "", true},
		{"too long", "a123456789012345678901234567890", "", true},
		{"invalid characters", "bad user!", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUsername(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidUsername)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchAndSave(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{user: timelineUser("testuser")}
	store := storage.NewMemoryStore()
	svc := New(fetcher, store, testLimits(), logger.NewNopLogger())

	data, err := svc.FetchAndSave(ctx, "@testuser")
	require.NoError(t, err)

	assert.Equal(t, []string{"testuser"}, fetcher.calls)
	assert.Equal(t, "testuser", data.Profile.Username)
	require.Len(t, data.Posts, 1)
	require.Len(t, data.Reels, 1)
	assert.Equal(t, "p1", data.Posts[0].Shortcode)
	assert.Equal(t, "r1", data.Reels[0].Shortcode)

	// The same data must be readable back from the store
	stored, err := svc.GetUserData(ctx, "testuser")
	require.NoError(t, err)
	assert.Equal(t, data.Profile, stored.Profile)
	assert.Equal(t, data.Posts, stored.Posts)
	assert.Equal(t, data.Reels, stored.Reels)
}

func TestFetchAndSaveInvalidUsernameSkipsFetch(t *testing.T) {
	fetcher := &fakeFetcher{user: timelineUser("x")}
	svc := New(fetcher, storage.NewMemoryStore(), testLimits(), logger.NewNopLogger())

	_, err := svc.FetchAndSave(context.Background(), "bad user!")

	assert.ErrorIs(t, err, ErrInvalidUsername)
	assert.Empty(t, fetcher.calls)
}

func TestFetchAndSaveUpstreamError(t *testing.T) {
	fetcher := &fakeFetcher{err: &instagram.Error{
		Type:    instagram.ErrorTypeRateLimit,
		Message: "rate limit exceeded",
		Code:    http.StatusTooManyRequests,
	}}
	store := storage.NewMemoryStore()
	svc := New(fetcher, store, testLimits(), logger.NewNopLogger())

	_, err := svc.FetchAndSave(context.Background(), "testuser")
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "testuser", fetchErr.Username)
	assert.Equal(t, http.StatusTooManyRequests, fetchErr.StatusCode)

	// Nothing may be persisted after a failed fetch
	exists, err := store.UserExists(context.Background(), "testuser")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFetchAndSaveSurvivesStoreFailure(t *testing.T) {
	fetcher := &fakeFetcher{user: timelineUser("testuser")}
	store := &failingStore{Store: storage.NewMemoryStore()}
	svc := New(fetcher, store, testLimits(), logger.NewNopLogger())

	data, err := svc.FetchAndSave(context.Background(), "testuser")

	// The fetch succeeded, so the caller still gets the fresh data
	require.NoError(t, err)
	assert.Equal(t, "testuser", data.Profile.Username)
	assert.Len(t, data.Posts, 1)
}

func TestGetUserDataNotFound(t *testing.T) {
	svc := New(&fakeFetcher{}, storage.NewMemoryStore(), testLimits(), logger.NewNopLogger())

	_, err := svc.GetUserData(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserDataMissingContentIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_, err := store.SaveProfile(ctx, models.Profile{Username: "alice"})
	require.NoError(t, err)

	svc := New(&fakeFetcher{}, store, testLimits(), logger.NewNopLogger())

	data, err := svc.GetUserData(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, data.Posts)
	assert.Empty(t, data.Posts)
	assert.NotNil(t, data.Reels)
	assert.Empty(t, data.Reels)
}

func TestUserExists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := New(&fakeFetcher{}, store, testLimits(), logger.NewNopLogger())

	exists, err := svc.UserExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.SaveProfile(ctx, models.Profile{Username: "alice"})
	require.NoError(t, err)

	exists, err = svc.UserExists(ctx, "@alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetAnalytics(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{user: timelineUser("testuser")}
	svc := New(fetcher, storage.NewMemoryStore(), testLimits(), logger.NewNopLogger())

	_, err := svc.FetchAndSave(ctx, "testuser")
	require.NoError(t, err)

	data, report, err := svc.GetAnalytics(ctx, "testuser")
	require.NoError(t, err)
	assert.Equal(t, "testuser", data.Profile.Username)

	assert.Equal(t, 230, report.Overall.TotalLikes)
	assert.Equal(t, 70, report.Overall.TotalComments)
	assert.Equal(t, 2, report.Overall.TotalContent)
	assert.Equal(t, 115, report.Overall.AvgLikes)
	assert.Equal(t, 35, report.Overall.AvgComments)
	assert.Equal(t, 15.0, report.Overall.EngagementRate)
}

func TestGetAnalyticsUnknownUser(t *testing.T) {
	svc := New(&fakeFetcher{}, storage.NewMemoryStore(), testLimits(), logger.NewNopLogger())

	_, _, err := svc.GetAnalytics(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
