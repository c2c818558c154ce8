// Package service orchestrates the fetch-and-persist pipeline and the read
// paths the API serves from.
package service

import (
	"context"
	"fmt"

	"github.com/sableashish494/ashish-primaspot-main/internal/storage"
	"github.com/sableashish494/ashish-primaspot-main/pkg/analytics"
	"github.com/sableashish494/ashish-primaspot-main/pkg/config"
	"github.com/sableashish494/ashish-primaspot-main/pkg/instagram"
	"github.com/sableashish494/ashish-primaspot-main/pkg/logger"
	"github.com/sableashish494/ashish-primaspot-main/pkg/models"
)

// Fetcher is the upstream profile source.
type Fetcher interface {
	FetchUserProfile(username string) (*instagram.User, error)
}

// Service wires the fetcher, the store, and the analytics aggregator.
type Service struct {
	fetcher Fetcher
	store   storage.Store
	limits  config.LimitsConfig
	logger  logger.Logger
}

// New creates a Service.
func New(fetcher Fetcher, store storage.Store, limits config.LimitsConfig, log logger.Logger) *Service {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Service{
		fetcher: fetcher,
		store:   store,
		limits:  limits,
		logger:  log,
	}
}

// ValidateUsername strips pasted decorations and checks the username against
// Instagram's rules. It returns the cleaned username.
func ValidateUsername(username string) (string, error) {
	cleaned := instagram.SanitizeUsername(username)
	if cleaned == "" {
		return "", fmt.Errorf("%w: username is required", ErrInvalidUsername)
	}
	if len(cleaned) > 30 {
		return "", fmt.Errorf("%w: username is too long", ErrInvalidUsername)
	}
	if !instagram.IsValidUsername(cleaned) {
		return "", fmt.Errorf("%w: username contains invalid characters", ErrInvalidUsername)
	}
	return cleaned, nil
}

// FetchAndSave runs one pipeline cycle for a username: validate, fetch the
// raw user object, normalize it, persist the three shapes. A store failure
// after a successful fetch is logged and does not fail the call; the caller
// still receives the freshly fetched data.
func (s *Service) FetchAndSave(ctx context.Context, username string) (*models.UserData, error) {
	username, err := ValidateUsername(username)
	if err != nil {
		return nil, err
	}

	s.logger.InfoWithFields("fetching profile data", map[string]interface{}{
		"username": username,
	})

	user, err := s.fetcher.FetchUserProfile(username)
	if err != nil {
		logger.LogFetch(username, false, err)
		status := 0
		if igErr, ok := err.(*instagram.Error); ok {
			status = igErr.Code
		}
		return nil, &FetchError{Username: username, StatusCode: status, Err: err}
	}
	logger.LogFetch(username, true, nil)

	data := &models.UserData{
		Profile: instagram.ExtractProfile(user),
		Posts:   instagram.ExtractContent(user, models.KindPosts, s.limits.PostsLimit),
		Reels:   instagram.ExtractContent(user, models.KindReels, s.limits.ReelsLimit),
	}

	s.save(ctx, username, data)

	return data, nil
}

// save persists a pipeline result. Failures are logged and swallowed: the
// fetch already succeeded and the response must still carry the fresh data.
func (s *Service) save(ctx context.Context, username string, data *models.UserData) {
	if _, err := s.store.SaveProfile(ctx, data.Profile); err != nil {
		s.logger.WithError(&StoreError{Op: "save profile", Err: err}).
			WithField("username", username).
			Error("database save failed, continuing with fetched data")
		return
	}

	if err := s.store.SaveContent(ctx, models.KindPosts, username, data.Posts); err != nil {
		s.logger.WithError(&StoreError{Op: "save posts", Err: err}).
			WithField("username", username).
			Error("database save failed, continuing with fetched data")
	}

	if err := s.store.SaveContent(ctx, models.KindReels, username, data.Reels); err != nil {
		s.logger.WithError(&StoreError{Op: "save reels", Err: err}).
			WithField("username", username).
			Error("database save failed, continuing with fetched data")
	}

	s.logger.InfoWithFields("data saved to database", map[string]interface{}{
		"username": username,
		"posts":    len(data.Posts),
		"reels":    len(data.Reels),
	})
}

// GetUserData returns stored data for a username. The profile record is the
// existence anchor: without one the result is ErrUserNotFound, and content
// collections that are missing come back as empty slices.
func (s *Service) GetUserData(ctx context.Context, username string) (*models.UserData, error) {
	username, err := ValidateUsername(username)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, username)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, &StoreError{Op: "get profile", Err: err}
	}

	posts, err := s.store.GetContent(ctx, models.KindPosts, username, s.limits.PostsLimit)
	if err != nil {
		return nil, &StoreError{Op: "get posts", Err: err}
	}

	reels, err := s.store.GetContent(ctx, models.KindReels, username, s.limits.ReelsLimit)
	if err != nil {
		return nil, &StoreError{Op: "get reels", Err: err}
	}

	return &models.UserData{
		Profile: profile,
		Posts:   posts,
		Reels:   reels,
	}, nil
}

// UserExists reports whether stored data exists for a username.
func (s *Service) UserExists(ctx context.Context, username string) (bool, error) {
	username, err := ValidateUsername(username)
	if err != nil {
		return false, err
	}

	exists, err := s.store.UserExists(ctx, username)
	if err != nil {
		return false, &StoreError{Op: "check user", Err: err}
	}
	return exists, nil
}

// ListUsers returns summaries of every stored profile, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list users", Err: err}
	}
	return users, nil
}

// GetAnalytics returns stored data for a username together with the derived
// engagement report.
func (s *Service) GetAnalytics(ctx context.Context, username string) (*models.UserData, *analytics.Report, error) {
	data, err := s.GetUserData(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	report := analytics.Aggregate(data.Posts, data.Reels, data.Profile)
	return data, &report, nil
}
