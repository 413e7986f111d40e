package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/auth"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
)

type mockAuthService struct {
	loginToken   string
	loginErr     error
	changeErr    error
	lastUsername string
	lastOldPass  string
	lastNewPass  string
}

func (m *mockAuthService) Login(_ context.Context, username, password, _ string) (string, error) {
	m.lastUsername = username
	return m.loginToken, m.loginErr
}

func (m *mockAuthService) ChangePassword(_ context.Context, username, oldPassword, newPassword, _ string) error {
	m.lastUsername = username
	m.lastOldPass = oldPassword
	m.lastNewPass = newPassword
	return m.changeErr
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockAuthService{loginToken: "signed-token"}
	h := NewAuthHandler(svc, nil)

	rec := postJSON(t, h.Login, "/api/v1/auth/login", LoginRequest{
		Username: "john.doe",
		Password: "secret-password",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "john.doe", svc.lastUsername)
}

func TestAuthHandler_LoginTrimsUsername(t *testing.T) {
	svc := &mockAuthService{loginToken: "signed-token"}
	h := NewAuthHandler(svc, nil)

	postJSON(t, h.Login, "/api/v1/auth/login", LoginRequest{
		Username: "  john.doe  ",
		Password: "secret-password",
	})

	assert.Equal(t, "john.doe", svc.lastUsername)
}

func TestAuthHandler_LoginInvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	rec := postJSON(t, h.Login, "/api/v1/auth/login", LoginRequest{Username: "john.doe"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_LoginUnauthorized(t *testing.T) {
	svc := &mockAuthService{loginErr: models.ErrUnauthorized}
	h := NewAuthHandler(svc, nil)

	rec := postJSON(t, h.Login, "/api/v1/auth/login", LoginRequest{
		Username: "john.doe",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeErrorCode(t, rec))
}

func TestAuthHandler_LoginLockedAccount(t *testing.T) {
	svc := &mockAuthService{loginErr: models.ErrAccountLocked}
	h := NewAuthHandler(svc, nil)

	rec := postJSON(t, h.Login, "/api/v1/auth/login", LoginRequest{
		Username: "john.doe",
		Password: "whatever",
	})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "account_locked", decodeErrorCode(t, rec))
}

func TestAuthHandler_LoginInternalError(t *testing.T) {
	svc := &mockAuthService{loginErr: models.ErrInternalServer}
	h := NewAuthHandler(svc, nil)

	rec := postJSON(t, h.Login, "/api/v1/auth/login", LoginRequest{
		Username: "john.doe",
		Password: "whatever",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func authenticatedRequest(t *testing.T, method, path string, body interface{}, username string) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	ctx := context.WithValue(req.Context(), auth.UserContextKey, &models.User{Username: username, Active: true})
	return req.WithContext(ctx)
}

func TestAuthHandler_ChangePasswordSuccess(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc, nil)

	req := authenticatedRequest(t, http.MethodPut, "/api/v1/auth/password", ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password",
	}, "john.doe")
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "john.doe", svc.lastUsername)
	assert.Equal(t, "old-password", svc.lastOldPass)
	assert.Equal(t, "new-password", svc.lastNewPass)
}

func TestAuthHandler_ChangePasswordUnauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	rec := postJSON(t, h.ChangePassword, "/api/v1/auth/password", ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_ChangePasswordSameAsOld(t *testing.T) {
	svc := &mockAuthService{changeErr: models.ErrSamePassword}
	h := NewAuthHandler(svc, nil)

	req := authenticatedRequest(t, http.MethodPut, "/api/v1/auth/password", ChangePasswordRequest{
		OldPassword: "same-password",
		NewPassword: "same-password",
	}, "john.doe")
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_ChangePasswordTooShort(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	req := authenticatedRequest(t, http.MethodPut, "/api/v1/auth/password", ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "short",
	}, "john.doe")
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_ChangePasswordWrongOld(t *testing.T) {
	svc := &mockAuthService{changeErr: models.ErrUnauthorized}
	h := NewAuthHandler(svc, nil)

	req := authenticatedRequest(t, http.MethodPut, "/api/v1/auth/password", ChangePasswordRequest{
		OldPassword: "wrong-old",
		NewPassword: "new-password",
	}, "john.doe")
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
