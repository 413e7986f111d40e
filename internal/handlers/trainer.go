package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/services"
	pkghttp "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/http"
)

// TrainerServiceInterface defines the interface for trainer business logic
type TrainerServiceInterface interface {
	Register(ctx context.Context, firstName, lastName, specialization string) (*services.RegistrationResult, error)
	GetProfile(ctx context.Context, username string) (*models.Trainer, error)
	UpdateSpecialization(ctx context.Context, username, specialization string) error
	SetActive(ctx context.Context, username string, active bool) error
}

// TrainerHandler handles trainer profile HTTP requests
type TrainerHandler struct {
	service TrainerServiceInterface
}

// NewTrainerHandler creates a new TrainerHandler
func NewTrainerHandler(service TrainerServiceInterface) *TrainerHandler {
	return &TrainerHandler{service: service}
}

// RegisterTrainerRequest represents the request body for trainer registration
type RegisterTrainerRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string `json:"last_name" validate:"required,min=1,max=100"`
	Specialization string `json:"specialization" validate:"required"`
}

// UpdateTrainerRequest represents the request body for a specialization change
type UpdateTrainerRequest struct {
	Specialization string `json:"specialization" validate:"required"`
}

// TrainerResponse represents a trainer profile
type TrainerResponse struct {
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Active         bool   `json:"active"`
	Specialization string `json:"specialization,omitempty"`
}

// Register handles trainer registration
func (h *TrainerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterTrainerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Register(r.Context(), req.FirstName, req.LastName, req.Specialization)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Unknown specialization")
			return
		}
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

// GetProfile handles fetching a trainer profile
func (h *TrainerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	trainer, err := h.service.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Trainer not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(trainerResponse(trainer))
}

// UpdateSpecialization handles changing the caller's own specialization
func (h *TrainerHandler) UpdateSpecialization(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !isSelf(r, username) {
		pkghttp.WriteForbidden(w, "Cannot modify another user's profile")
		return
	}

	var req UpdateTrainerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.UpdateSpecialization(r.Context(), username, req.Specialization); err != nil {
		switch {
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Unknown specialization")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Trainer not found")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetActive handles activating or deactivating the caller's own account
func (h *TrainerHandler) SetActive(w http.ResponseWriter, r *http.Request) {
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
			pkghttp.WriteNotFound(w, "Trainer not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func trainerResponse(t *models.Trainer) TrainerResponse {
	resp := TrainerResponse{}
	if t.User != nil {
		resp.Username = t.User.Username
		resp.FirstName = t.User.FirstName
		resp.LastName = t.User.LastName
		resp.Active = t.User.Active
	}
	if t.Specialization != nil {
		resp.Specialization = t.Specialization.Name
	}
	return resp
}
