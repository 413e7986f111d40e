package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/auth"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/services"
	pkghttp "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/http"
)

const dateLayout = "2006-01-02"

// TraineeServiceInterface defines the interface for trainee business logic
type TraineeServiceInterface interface {
	Register(ctx context.Context, firstName, lastName string, dateOfBirth *time.Time, address *string) (*services.RegistrationResult, error)
	GetProfile(ctx context.Context, username string) (*models.Trainee, error)
	UpdateProfile(ctx context.Context, username string, dateOfBirth *time.Time, address *string) error
	SetActive(ctx context.Context, username string, active bool) error
	Delete(ctx context.Context, username string) error
}

// TraineeHandler handles trainee profile HTTP requests
type TraineeHandler struct {
	service TraineeServiceInterface
}

// NewTraineeHandler creates a new TraineeHandler
func NewTraineeHandler(service TraineeServiceInterface) *TraineeHandler {
	return &TraineeHandler{service: service}
}

// RegisterTraineeRequest represents the request body for trainee registration
type RegisterTraineeRequest struct {
	FirstName   string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName    string  `json:"last_name" validate:"required,min=1,max=100"`
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// RegisterResponse carries the one-time credentials issued at registration
type RegisterResponse struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateTraineeRequest represents the request body for a profile update
type UpdateTraineeRequest struct {
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// SetActiveRequest represents the request body for activation toggling
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// TraineeResponse represents a trainee profile
type TraineeResponse struct {
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Active      bool    `json:"active"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// Register handles trainee registration
func (h *TraineeHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterTraineeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	dateOfBirth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid date_of_birth")
		return
	}

	result, err := h.service.Register(r.Context(), req.FirstName, req.LastName, dateOfBirth, req.Address)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegisterResponse{
		Username: result.Username,
		Password: result.Password,
	})
}

// GetProfile handles fetching a trainee profile
func (h *TraineeHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	trainee, err := h.service.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Trainee not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(traineeResponse(trainee))
}

// UpdateProfile handles updating the caller's own trainee profile
func (h *TraineeHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !isSelf(r, username) {
		pkghttp.WriteForbidden(w, "Cannot modify another user's profile")
		return
	}

	var req UpdateTraineeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	dateOfBirth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid date_of_birth")
		return
	}

	if err := h.service.UpdateProfile(r.Context(), username, dateOfBirth, req.Address); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Trainee not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetActive handles activating or deactivating the caller's own account
func (h *TraineeHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !isSelf(r, username) {
		pkghttp.WriteForbidden(w, "Cannot modify another user's account")
		return
	}

	var req SetActiveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.SetActive(r.Context(), username, *req.Active); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Trainee not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles removing the caller's own trainee account
func (h *TraineeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !isSelf(r, username) {
		pkghttp.WriteForbidden(w, "Cannot delete another user's account")
		return
	}

	if err := h.service.Delete(r.Context(), username); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Trainee not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func traineeResponse(t *models.Trainee) TraineeResponse {
	resp := TraineeResponse{
		Address: t.Address,
	}
	if t.User != nil {
		resp.Username = t.User.Username
		resp.FirstName = t.User.FirstName
		resp.LastName = t.User.LastName
		resp.Active = t.User.Active
	}
	if t.DateOfBirth != nil {
		dob := t.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &dob
	}
	return resp
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// isSelf reports whether the authenticated caller is the user named in the
// request path.
func isSelf(r *http.Request, username string) bool {
	user := auth.GetUserFromContext(r)
	return user != nil && user.Username == username
}
