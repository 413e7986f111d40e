package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/services"
)

type mockTraineeService struct {
	registerResult *services.RegistrationResult
	registerErr    error
	profile        *models.Trainee
	profileErr     error
	updateErr      error
	lastDOB        *time.Time
	lastAddress    *string
	lastActive     *bool
	deleted        []string
}

func (m *mockTraineeService) Register(_ context.Context, firstName, lastName string, dateOfBirth *time.Time, address *string) (*services.RegistrationResult, error) {
	m.lastDOB = dateOfBirth
	m.lastAddress = address
	return m.registerResult, m.registerErr
}

func (m *mockTraineeService) GetProfile(_ context.Context, username string) (*models.Trainee, error) {
	return m.profile, m.profileErr
}

func (m *mockTraineeService) UpdateProfile(_ context.Context, username string, dateOfBirth *time.Time, address *string) error {
	m.lastDOB = dateOfBirth
	m.lastAddress = address
	return m.updateErr
}

func (m *mockTraineeService) SetActive(_ context.Context, username string, active bool) error {
	m.lastActive = &active
	return nil
}

func (m *mockTraineeService) Delete(_ context.Context, username string) error {
	m.deleted = append(m.deleted, username)
	return nil
}

// routeRequest runs a request through a chi router so URL params resolve.
func routeRequest(method, pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, handler)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTraineeHandler_Register(t *testing.T) {
	svc := &mockTraineeService{
		registerResult: &services.RegistrationResult{Username: "john.doe", Password: "xK3mP9qR2t"},
	}
	h := NewTraineeHandler(svc)

	dob := "1990-05-20"
	addr := "1 Main St"
	rec := postJSON(t, h.Register, "/api/v1/trainees", RegisterTraineeRequest{
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: &dob,
		Address:     &addr,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "john.doe", resp.Username)
	assert.Equal(t, "xK3mP9qR2t", resp.Password)
	require.NotNil(t, svc.lastDOB)
	assert.Equal(t, 1990, svc.lastDOB.Year())
}

func TestTraineeHandler_RegisterMissingName(t *testing.T) {
	h := NewTraineeHandler(&mockTraineeService{})

	rec := postJSON(t, h.Register, "/api/v1/trainees", RegisterTraineeRequest{FirstName: "John"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTraineeHandler_RegisterBadDate(t *testing.T) {
	h := NewTraineeHandler(&mockTraineeService{})

	bad := "20-05-1990"
	rec := postJSON(t, h.Register, "/api/v1/trainees", RegisterTraineeRequest{
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: &bad,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTraineeHandler_GetProfile(t *testing.T) {
	dob := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	svc := &mockTraineeService{
		profile: &models.Trainee{
			UserID:      "id-1",
			DateOfBirth: &dob,
			User: &models.User{
				Username:  "john.doe",
				FirstName: "John",
				LastName:  "Doe",
				Active:    true,
			},
		},
	}
	h := NewTraineeHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trainees/john.doe", nil)
	rec := routeRequest(http.MethodGet, "/api/v1/trainees/{username}", h.GetProfile, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TraineeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "john.doe", resp.Username)
	assert.True(t, resp.Active)
	require.NotNil(t, resp.DateOfBirth)
	assert.Equal(t, "1990-05-20", *resp.DateOfBirth)
}

func TestTraineeHandler_GetProfileNotFound(t *testing.T) {
	svc := &mockTraineeService{profileErr: models.ErrNotFound}
	h := NewTraineeHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trainees/ghost", nil)
	rec := routeRequest(http.MethodGet, "/api/v1/trainees/{username}", h.GetProfile, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTraineeHandler_UpdateProfileForbiddenForOtherUser(t *testing.T) {
	h := NewTraineeHandler(&mockTraineeService{})

	req := authenticatedRequest(t, http.MethodPut, "/api/v1/trainees/jane.doe", UpdateTraineeRequest{}, "john.doe")
	rec := routeRequest(http.MethodPut, "/api/v1/trainees/{username}", h.UpdateProfile, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTraineeHandler_UpdateOwnProfile(t *testing.T) {
	svc := &mockTraineeService{}
	h := NewTraineeHandler(svc)

	addr := "2 New St"
	req := authenticatedRequest(t, http.MethodPut, "/api/v1/trainees/john.doe", UpdateTraineeRequest{Address: &addr}, "john.doe")
	rec := routeRequest(http.MethodPut, "/api/v1/trainees/{username}", h.UpdateProfile, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, svc.lastAddress)
	assert.Equal(t, "2 New St", *svc.lastAddress)
}

func TestTraineeHandler_DeleteOwnAccount(t *testing.T) {
	svc := &mockTraineeService{}
	h := NewTraineeHandler(svc)

	req := authenticatedRequest(t, http.MethodDelete, "/api/v1/trainees/john.doe", nil, "john.doe")
	rec := routeRequest(http.MethodDelete, "/api/v1/trainees/{username}", h.Delete, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"john.doe"}, svc.deleted)
}

func TestTraineeHandler_SetActive(t *testing.T) {
	svc := &mockTraineeService{}
	h := NewTraineeHandler(svc)

	active := false
	req := authenticatedRequest(t, http.MethodPatch, "/api/v1/trainees/john.doe/status", SetActiveRequest{Active: &active}, "john.doe")
	rec := routeRequest(http.MethodPatch, "/api/v1/trainees/{username}/status", h.SetActive, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, svc.lastActive)
	assert.False(t, *svc.lastActive)
}
