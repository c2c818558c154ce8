// Package handler implements the REST surface over the profile pipeline.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sableashish494/ashish-primaspot-main/internal/service"
	"github.com/sableashish494/ashish-primaspot-main/pkg/apierror"
	"github.com/sableashish494/ashish-primaspot-main/pkg/logger"
	"github.com/sableashish494/ashish-primaspot-main/pkg/response"
)

// ProfileHandler serves the fetch-and-save and database read endpoints.
type ProfileHandler struct {
	service *service.Service
	logger  logger.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc *service.Service, log logger.Logger) *ProfileHandler {
	if log == nil {
		log = logger.GetLogger()
	}
	return &ProfileHandler{service: svc, logger: log}
}

type fetchProfileRequest struct {
	Username string `json:"username"`
}

// FetchProfile handles POST /api/fetch-profile: one full pipeline run.
func (h *ProfileHandler) FetchProfile(w http.ResponseWriter, r *http.Request) {
	var req fetchProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	if req.Username == "" {
		response.Error(w, apierror.BadRequest("Username is required"))
		return
	}

	data, err := h.service.FetchAndSave(r.Context(), req.Username)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}

	response.OK(w, data)
}

// GetUser handles GET /api/db/user/{username}.
func (h *ProfileHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	data, err := h.service.GetUserData(r.Context(), username)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}

	response.OK(w, data)
}

// UserExists handles GET /api/db/user/{username}/exists.
func (h *ProfileHandler) UserExists(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	exists, err := h.service.UserExists(r.Context(), username)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}

	message := "User not found in database"
	if exists {
		message = "User data available in database"
	}

	response.OK(w, map[string]interface{}{
		"username": username,
		"exists":   exists,
		"message":  message,
	})
}

// ListUsers handles GET /api/db/users.
func (h *ProfileHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}

	response.OK(w, map[string]interface{}{
		"users":   users,
		"count":   len(users),
		"message": fmt.Sprintf("Found %d users in database", len(users)),
	})
}

// GetAnalytics handles GET /api/db/analytics/{username}.
func (h *ProfileHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	data, report, err := h.service.GetAnalytics(r.Context(), username)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}

	response.OK(w, map[string]interface{}{
		"profile":   data.Profile,
		"posts":     data.Posts,
		"reels":     data.Reels,
		"analytics": report,
	})
}

// toAPIError maps pipeline failures onto structured HTTP error payloads.
func toAPIError(err error) *apierror.Error {
	switch {
	case errors.Is(err, service.ErrInvalidUsername):
		return apierror.ValidationError(err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return apierror.NotFound("User not found in database").
			WithDetails("Try fetching fresh data first")
	}

	var fetchErr *service.FetchError
	if errors.As(err, &fetchErr) {
		return apierror.BadGateway("Failed to fetch profile data").
			WithDetails(fetchErr.Error())
	}

	var storeErr *service.StoreError
	if errors.As(err, &storeErr) {
		return apierror.InternalError("Failed to read data from database").
			WithDetails(storeErr.Error())
	}

	return apierror.InternalError(err.Error())
}
