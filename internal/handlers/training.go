package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	pkghttp "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/http"
)

// TrainingServiceInterface defines the interface for training business logic
type TrainingServiceInterface interface {
	Create(ctx context.Context, traineeUsername, trainerUsername, name, typeName string, date time.Time, duration time.Duration) (*models.Training, error)
	ListForTrainee(ctx context.Context, username string, from, to *time.Time) ([]*models.Training, error)
	ListForTrainer(ctx context.Context, username string, from, to *time.Time) ([]*models.Training, error)
	ListTypes(ctx context.Context) ([]*models.TrainingType, error)
}

// TrainingHandler handles training scheduling HTTP requests
type TrainingHandler struct {
	service TrainingServiceInterface
}

// NewTrainingHandler creates a new TrainingHandler
func NewTrainingHandler(service TrainingServiceInterface) *TrainingHandler {
	return &TrainingHandler{service: service}
}

// CreateTrainingRequest represents the request body for scheduling a training
type CreateTrainingRequest struct {
	TraineeUsername string `json:"trainee_username" validate:"required"`
	TrainerUsername string `json:"trainer_username" validate:"required"`
	Name            string `json:"name" validate:"required,min=1,max=255"`
	Type            string `json:"type" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
}

// TrainingResponse represents a scheduled training
type TrainingResponse struct {
	ID              string `json:"id"`
	TraineeUsername string `json:"trainee_username"`
	TrainerUsername string `json:"trainer_username"`
	Name            string `json:"name"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"duration_minutes"`
}

// TrainingTypeResponse represents a training type catalog entry
type TrainingTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Create handles scheduling a training
func (h *TrainingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTrainingRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid date")
		return
	}

	training, err := h.service.Create(r.Context(), req.TraineeUsername, req.TrainerUsername,
		req.Name, req.Type, date, time.Duration(req.DurationMinutes)*time.Minute)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Unknown trainee, trainer or training type")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(trainingResponse(training))
}

// ListForTrainee handles listing a trainee's trainings
func (h *TrainingHandler) ListForTrainee(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListForTrainee)
}

// ListForTrainer handles listing a trainer's trainings
func (h *TrainingHandler) ListForTrainer(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListForTrainer)
}

func (h *TrainingHandler) list(w http.ResponseWriter, r *http.Request,
	fetch func(ctx context.Context, username string, from, to *time.Time) ([]*models.Training, error)) {

	username := chi.URLParam(r, "username")

	from, err := parseDateQueryParam(r, "from")
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid from date")
		return
	}
	to, err := parseDateQueryParam(r, "to")
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid to date")
		return
	}

	trainings, err := fetch(r.Context(), username, from, to)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	resp := make([]TrainingResponse, 0, len(trainings))
	for _, t := range trainings {
		resp = append(resp, trainingResponse(t))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// ListTypes handles listing the training type catalog
func (h *TrainingHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	resp := make([]TrainingTypeResponse, 0, len(types))
	for _, tt := range types {
		resp = append(resp, TrainingTypeResponse{ID: tt.ID, Name: tt.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func trainingResponse(t *models.Training) TrainingResponse {
	return TrainingResponse{
		ID:              t.ID,
		TraineeUsername: t.TraineeUsername,
		TrainerUsername: t.TrainerUsername,
		Name:            t.Name,
		Date:            t.Date.Format(dateLayout),
		DurationMinutes: int(t.Duration / time.Minute),
	}
}

func parseDateQueryParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
