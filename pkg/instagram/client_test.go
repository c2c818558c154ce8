package instagram

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sableashish494/ashish-primaspot-main/pkg/config"
	"github.com/sableashish494/ashish-primaspot-main/pkg/logger"
)

// mockRoundTripper allows us to intercept HTTP requests
type mockRoundTripper struct {
	handler func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.handler(req)
}

func newMockHTTPClient(handler func(req *http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{
		Transport: &mockRoundTripper{handler: handler},
		Timeout:   30 * time.Second,
	}
}

func newResponse(req *http.Request, statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}
}

func testConfig() *config.InstagramConfig {
	return &config.InstagramConfig{
		SessionID:      "test-session",
		UserAgent:      "test-agent",
		AppID:          "123456",
		RequestTimeout: 30 * time.Second,
	}
}

func profileResponseBody(t *testing.T, username string) string {
	t.Helper()
	body, err := json.Marshal(ProfileResponse{
		Data:   Data{User: User{ID: "1", Username: username}},
		Status: "ok",
	})
	require.NoError(t, err)
	return string(body)
}

func TestNewClientHeaders(t *testing.T) {
	client := NewClient(testConfig(), logger.NewNopLogger())

	assert.Equal(t, "test-agent", client.headers["User-Agent"])
	assert.Equal(t, "123456", client.headers["X-IG-App-ID"])
	assert.Equal(t, "XMLHttpRequest", client.headers["X-Requested-With"])
	assert.Equal(t, "sessionid=test-session;", client.headers["Cookie"])
}

func TestNewClientWithoutSession(t *testing.T) {
	cfg := testConfig()
	cfg.SessionID = ""
	cfg.AppID = ""
	client := NewClient(cfg, logger.NewNopLogger())

	_, hasCookie := client.headers["Cookie"]
	assert.False(t, hasCookie)
	assert.Equal(t, DefaultAppID, client.headers["X-IG-App-ID"])
}

func TestFetchUserProfile(t *testing.T) {
	client := NewClient(testConfig(), logger.NewNopLogger())
	client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "testuser", req.URL.Query().Get("username"))
		assert.Equal(t, "test-agent", req.Header.Get("User-Agent"))
		assert.Equal(t, "sessionid=test-session;", req.Header.Get("Cookie"))
		// The referer points at the profile page, not the site root
		assert.Equal(t, "https://www.instagram.com/testuser/", req.Header.Get("Referer"))

		return newResponse(req, http.StatusOK, profileResponseBody(t, "testuser")), nil
	})

	user, err := client.FetchUserProfile("testuser")
	require.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
}

func TestFetchUserProfileRequiresLogin(t *testing.T) {
	client := NewClient(testConfig(), logger.NewNopLogger())
	client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, `{"requires_to_login": true}`), nil
	})

	_, err := client.FetchUserProfile("testuser")
	require.Error(t, err)

	var igErr *Error
	require.ErrorAs(t, err, &igErr)
	assert.Equal(t, ErrorTypeAuth, igErr.Type)
	assert.Equal(t, http.StatusUnauthorized, igErr.Code)
}

func TestFetchUserProfileUnknownUser(t *testing.T) {
	// Unknown usernames come back 200 with a null user
	client := NewClient(testConfig(), logger.NewNopLogger())
	client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, `{"data": {"user": null}, "status": "ok"}`), nil
	})

	_, err := client.FetchUserProfile("nosuchuser")
	require.Error(t, err)

	var igErr *Error
	require.ErrorAs(t, err, &igErr)
	assert.Equal(t, ErrorTypeNotFound, igErr.Type)
}

func TestFetchUserProfileStatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		wantType ErrorType
	}{
		{http.StatusUnauthorized, ErrorTypeAuth},
		{http.StatusForbidden, ErrorTypeAuth},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusInternalServerError, ErrorTypeServerError},
		{http.StatusBadGateway, ErrorTypeServerError},
		{http.StatusTeapot, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		client := NewClient(testConfig(), logger.NewNopLogger())
		client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
			return newResponse(req, tt.status, ""), nil
		})

		_, err := client.FetchUserProfile("testuser")
		require.Error(t, err)

		var igErr *Error
		require.ErrorAs(t, err, &igErr)
		assert.Equal(t, tt.wantType, igErr.Type, "status %d", tt.status)
		assert.Equal(t, tt.status, igErr.Code)
	}
}

func TestFetchUserProfileNetworkError(t *testing.T) {
	client := NewClient(testConfig(), logger.NewNopLogger())
	client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := client.FetchUserProfile("testuser")
	require.Error(t, err)

	var igErr *Error
	require.ErrorAs(t, err, &igErr)
	assert.Equal(t, ErrorTypeNetwork, igErr.Type)
	assert.Equal(t, 0, igErr.Code)
}

func TestFetchUserProfileMalformedJSON(t *testing.T) {
	client := NewClient(testConfig(), logger.NewNopLogger())
	client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, "<!DOCTYPE html><html>login page</html>"), nil
	})

	_, err := client.FetchUserProfile("testuser")
	require.Error(t, err)

	var igErr *Error
	require.ErrorAs(t, err, &igErr)
	assert.Equal(t, ErrorTypeParsing, igErr.Type)
}

func TestFetchImage(t *testing.T) {
	client := NewClient(testConfig(), logger.NewNopLogger())
	client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "test-agent", req.Header.Get("User-Agent"))
		assert.Equal(t, BaseURL+"/", req.Header.Get("Referer"))
		assert.NotEmpty(t, req.Header.Get("Accept"))

		resp := newResponse(req, http.StatusOK, "fake-image-bytes")
		resp.Header.Set("Content-Type", "image/jpeg")
		return resp, nil
	})

	resp, err := client.FetchImage("https://scontent.cdninstagram.com/img.jpg")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "fake-image-bytes", string(body))
}

func TestFetchImageUpstreamError(t *testing.T) {
	client := NewClient(testConfig(), logger.NewNopLogger())
	client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusForbidden, ""), nil
	})

	_, err := client.FetchImage("https://scontent.cdninstagram.com/img.jpg")
	require.Error(t, err)

	var igErr *Error
	require.ErrorAs(t, err, &igErr)
	assert.Equal(t, ErrorTypeAuth, igErr.Type)
}
