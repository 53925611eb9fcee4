package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"profile_form_go/auth"
	"profile_form_go/data"
	"profile_form_go/form"
	"profile_form_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	token   string
	store   *data.ProfileStore
	form    *form.Controller
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := data.NewProfileStore(data.NewMemoryKV())
	ctrl := form.NewController(store, nil, nil, nil, form.Options{})
	require.NoError(t, ctrl.Mount(context.Background()))
	t.Cleanup(func() { ctrl.Unmount(); ctrl.Wait() })

	tokens := auth.NewService("test-secret", time.Hour)
	token, _, err := tokens.GenerateToken("test")
	require.NoError(t, err)

	return &testServer{
		handler: NewRouter(NewFormHandler(ctrl, form.SavedMessage), tokens),
		token:   token,
		store:   store,
		form:    ctrl,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheckIsPublic(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/Service/status", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
}

func TestProfileRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestGetEmptyForm(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.FormStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.Profile{}, resp.Profile)
	assert.Empty(t, resp.Errors)
}

func TestSetFieldRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPatch, "/api/profile/fields", `{"field":"displayName","value":"Ada L."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.FormStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ada L.", resp.Profile.DisplayName)

	rec = s.do(t, http.MethodPatch, "/api/profile/fields", `{"field":"password","value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/profile/fields", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/profile/save", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var failed models.SaveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failed))
	assert.False(t, failed.Saved)
	assert.Equal(t, "Name cannot be empty", failed.Errors["name"])
	assert.Equal(t, "Invalid email format", failed.Errors["email"])

	for _, body := range []string{
		`{"field":"name","value":"Ada"}`,
		`{"field":"age","value":"36"}`,
		`{"field":"gender","value":"female"}`,
		`{"field":"email","value":"ada@example.com"}`,
	} {
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPatch, "/api/profile/fields", body).Code)
	}

	rec = s.do(t, http.MethodPost, "/api/profile/save", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ok models.SaveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ok))
	assert.True(t, ok.Saved)
	assert.Equal(t, form.SavedMessage, ok.Message)

	saved, err := s.store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Ada", saved.Name)

	// Ошибки прошлой попытки больше не видны.
	rec = s.do(t, http.MethodGet, "/api/profile", "")
	var state models.FormStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Empty(t, state.Errors)
}

func TestRefreshRoute(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusAccepted, s.do(t, http.MethodPost, "/api/profile/refresh", "").Code)

	s.form.Unmount()
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/profile/refresh", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/profile/save", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
