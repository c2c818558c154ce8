package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sableashish494/ashish-primaspot-main/internal/service"
	"github.com/sableashish494/ashish-primaspot-main/internal/storage"
	"github.com/sableashish494/ashish-primaspot-main/pkg/config"
	"github.com/sableashish494/ashish-primaspot-main/pkg/instagram"
	"github.com/sableashish494/ashish-primaspot-main/pkg/logger"
	"github.com/sableashish494/ashish-primaspot-main/pkg/models"
)

type fakeFetcher struct {
	user *instagram.User
	err  error
}

func (f *fakeFetcher) FetchUserProfile(username string) (*instagram.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func sampleUser() *instagram.User {
	return &instagram.User{
		Username:       "testuser",
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

// newTestRouter mounts the profile handler the way the real router does.
func newTestRouter(fetcher service.Fetcher, store storage.Store) *chi.Mux {
	svc := service.New(fetcher, store, config.LimitsConfig{PostsLimit: 15, ReelsLimit: 7}, logger.NewNopLogger())
	h := NewProfileHandler(svc, logger.NewNopLogger())

	r := chi.NewRouter()
	r.Post("/api/fetch-profile", h.FetchProfile)
	r.Route("/api/db", func(r chi.Router) {
		r.Get("/users", h.ListUsers)
		r.Get("/user/{username}", h.GetUser)
		r.Get("/user/{username}/exists", h.UserExists)
		r.Get("/analytics/{username}", h.GetAnalytics)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestFetchProfileEndpoint(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(&fakeFetcher{user: sampleUser()}, store)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/fetch-profile", `{"username": "@testuser"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	profile := payload["profile"].(map[string]interface{})
	assert.Equal(t, "testuser", profile["username"])
	assert.Len(t, payload["posts"], 1)
	assert.Len(t, payload["reels"], 1)

	// The pipeline run must have persisted the profile
	exists, err := store.UserExists(context.Background(), "testuser")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFetchProfileMissingUsername(t *testing.T) {
	router := newTestRouter(&fakeFetcher{user: sampleUser()}, storage.NewMemoryStore())

	rec, payload := doJSON(t, router, http.MethodPost, "/api/fetch-profile", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username is required", payload["error"])
	assert.Equal(t, "BAD_REQUEST", payload["code"])
}

func TestFetchProfileInvalidBody(t *testing.T) {
	router := newTestRouter(&fakeFetcher{user: sampleUser()}, storage.NewMemoryStore())

	rec, payload := doJSON(t, router, http.MethodPost, "/api/fetch-profile", `{"username": 42}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", payload["error"])
}

func TestFetchProfileInvalidUsername(t *testing.T) {
	router := newTestRouter(&fakeFetcher{user: sampleUser()}, storage.NewMemoryStore())

	rec, payload := doJSON(t, router, http.MethodPost, "/api/fetch-profile", `{"username": "bad user!"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", payload["code"])
}

func TestFetchProfileUpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: &instagram.Error{
		Type:    instagram.ErrorTypeServerError,
		Message: "server error",
		Code:    http.StatusInternalServerError,
	}}
	router := newTestRouter(fetcher, storage.NewMemoryStore())

	rec, payload := doJSON(t, router, http.MethodPost, "/api/fetch-profile", `{"username": "testuser"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Failed to fetch profile data", payload["error"])
	assert.Equal(t, "UPSTREAM_ERROR", payload["code"])
	assert.Contains(t, payload["details"], "testuser")
}

func TestGetUserEndpoint(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(&fakeFetcher{user: sampleUser()}, store)

	_, _ = doJSON(t, router, http.MethodPost, "/api/fetch-profile", `{"username": "testuser"}`)
	rec, payload := doJSON(t, router, http.MethodGet, "/api/db/user/testuser", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	profile := payload["profile"].(map[string]interface{})
	assert.Equal(t, "testuser", profile["username"])
	assert.Equal(t, float64(1000), profile["followers"])
}

func TestGetUserNotFound(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, storage.NewMemoryStore())

	rec, payload := doJSON(t, router, http.MethodGet, "/api/db/user/nobody", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found in database", payload["error"])
	assert.Equal(t, "NOT_FOUND", payload["code"])
	assert.Equal(t, "Try fetching fresh data first", payload["details"])
}

func TestUserExistsEndpoint(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(&fakeFetcher{user: sampleUser()}, store)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/db/user/testuser/exists", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["exists"])
	assert.Equal(t, "User not found in database", payload["message"])

	_, _ = doJSON(t, router, http.MethodPost, "/api/fetch-profile", `{"username": "testuser"}`)

	rec, payload = doJSON(t, router, http.MethodGet, "/api/db/user/testuser/exists", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["exists"])
	assert.Equal(t, "User data available in database", payload["message"])
}

func TestListUsersEndpoint(t *testing.T) {
	store := storage.NewMemoryStore()
	_, err := store.SaveProfile(context.Background(), models.Profile{Username: "alice", FullName: "Alice"})
	require.NoError(t, err)
	router := newTestRouter(&fakeFetcher{}, store)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/db/users", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), payload["count"])
	assert.Equal(t, "Found 1 users in database", payload["message"])

	users := payload["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].(map[string]interface{})["username"])
}

func TestGetAnalyticsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeFetcher{user: sampleUser()}, storage.NewMemoryStore())

	_, _ = doJSON(t, router, http.MethodPost, "/api/fetch-profile", `{"username": "testuser"}`)
	rec, payload := doJSON(t, router, http.MethodGet, "/api/db/analytics/testuser", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, payload, "analytics")

	report := payload["analytics"].(map[string]interface{})
	overall := report["overall"].(map[string]interface{})
	assert.Equal(t, float64(230), overall["totalLikes"])
	assert.Equal(t, float64(70), overall["totalComments"])
	assert.Equal(t, float64(15), overall["engagementRate"])

	posts := report["posts"].(map[string]interface{})
	best := posts["bestPerforming"].(map[string]interface{})
	assert.Equal(t, "p1", best["shortcode"])
}

func TestGetAnalyticsUnknownUser(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, storage.NewMemoryStore())

	rec, payload := doJSON(t, router, http.MethodGet, "/api/db/analytics/nobody", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", payload["code"])
}
