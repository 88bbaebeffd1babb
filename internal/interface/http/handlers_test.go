package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/workspace-hub/internal/application"
	"github.com/oksasatya/workspace-hub/internal/domain/repository/repotest"
	"github.com/oksasatya/workspace-hub/internal/interface/middleware"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Status    int             `json:"status"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Meta      json.RawMessage `json:"meta"`
	Error     struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

type harness struct {
	engine *gin.Engine
	repo   *repotest.Users
	jwt    *helpers.JWTManager
	svc    *application.UserService
}

func newHarness(t *testing.T) harness {
	t.Helper()
	logger, _ := test.NewNullLogger()
	repo := repotest.NewUsers()
	svc := application.NewUserService(repo, logger, nil, application.WelcomeMail{})
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	users := NewUserHandler(svc, logger)
	auth := NewAuthHandler(svc, jwt, logger, "", false)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.POST("/users", users.Register)
	r.GET("/users", users.List)
	r.GET("/users/search", users.Search)
	r.GET("/users/stats", users.Stats)
	r.GET("/users/lookup", users.Lookup)
	r.GET("/users/:id", users.Get)
	r.PATCH("/users/:id", users.Update)
	r.PATCH("/users/:id/profile", users.UpdateProfile)
	r.DELETE("/users/:id", users.Delete)
	r.POST("/users/:id/deactivate", users.Deactivate)
	r.POST("/users/:id/reactivate", users.Reactivate)
	r.POST("/auth/sign-in", auth.SignIn)
	r.POST("/auth/sign-out", auth.SignOut)
	r.GET("/me", middleware.Auth(jwt), auth.Me)
	return harness{engine: r, repo: repo, jwt: jwt, svc: svc}
}

func (h harness) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func registrationBody(email string) map[string]any {
	return map[string]any{
		"name":            "Carla Dias",
		"email":           email,
		"password":        "MinhaSenh@123",
		"confirmPassword": "MinhaSenh@123",
		"termsAccepted":   true,
	}
}

func (h harness) register(t *testing.T, email string) application.UserDTO {
	t.Helper()
	w, env := h.do(t, http.MethodPost, "/users", registrationBody(email))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var u application.UserDTO
	require.NoError(t, json.Unmarshal(env.Data, &u))
	return u
}

func TestRegisterCreatesUser(t *testing.T) {
	h := newHarness(t)
	w, env := h.do(t, http.MethodPost, "/users", registrationBody("Carla@Example.com"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.Contains(t, string(env.Data), `"email":"carla@example.com"`)
	assert.Contains(t, string(env.Data), `"isActive":true`)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestRegisterValidationErrors(t *testing.T) {
	h := newHarness(t)
	body := registrationBody("carla@example.com")
	body["confirmPassword"] = "Different@123"
	body["termsAccepted"] = false

	w, env := h.do(t, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Error.Code)
	assert.Equal(t, "passwords do not match", env.Error.Fields["confirmPassword"])
	assert.Equal(t, "you must accept the terms of use", env.Error.Fields["termsAccepted"])
}

func TestRegisterRejectsMalformedJSON(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newHarness(t)
	h.register(t, "carla@example.com")

	w, env := h.do(t, http.MethodPost, "/users", registrationBody("CARLA@example.com"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_IN_USE", env.Error.Code)
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	h := newHarness(t)
	h.repo.Err = errors.New("pq: relation \"users\" does not exist")

	w, env := h.do(t, http.MethodGet, "/users/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL", env.Error.Code)
	assert.Equal(t, "internal server error", env.Message)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestGetUpdateDelete(t *testing.T) {
	h := newHarness(t)
	u := h.register(t, "carla@example.com")

	w, _ := h.do(t, http.MethodGet, "/users/"+u.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := h.do(t, http.MethodGet, "/users/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Fields, "id")

	w, env = h.do(t, http.MethodPatch, "/users/"+u.ID, map[string]any{"name": "Carla Lima", "isActive": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"name":"Carla Lima"`)

	w, env = h.do(t, http.MethodPatch, "/users/"+u.ID, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no fields provided for update", env.Message)

	w, env = h.do(t, http.MethodPatch, "/users/"+u.ID+"/profile", map[string]any{"phone": "1133334444"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"phone":"1133334444"`)

	w, _ = h.do(t, http.MethodDelete, "/users/"+u.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, env = h.do(t, http.MethodGet, "/users/"+u.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestDeactivateTwiceConflicts(t *testing.T) {
	h := newHarness(t)
	u := h.register(t, "carla@example.com")

	w, _ := h.do(t, http.MethodPost, "/users/"+u.ID+"/deactivate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, env := h.do(t, http.MethodPost, "/users/"+u.ID+"/deactivate", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_INACTIVE", env.Error.Code)

	w, env = h.do(t, http.MethodPost, "/users/"+u.ID+"/reactivate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"isActive":true`)
}

func TestListSearchLookup(t *testing.T) {
	h := newHarness(t)
	for _, e := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		h.register(t, e)
	}

	w, env := h.do(t, http.MethodGet, "/users?page=1&limit=2&sortBy=email&sortOrder=asc", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var users []application.UserDTO
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.JSONEq(t, `{"currentPage":1,"totalPages":2,"totalUsers":3,"limit":2,"hasNextPage":true,"hasPreviousPage":false}`, string(env.Meta))

	w, env = h.do(t, http.MethodGet, "/users?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Fields, "limit")

	w, _ = h.do(t, http.MethodGet, "/users/search?q=carla", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = h.do(t, http.MethodGet, "/users/search?q=c", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = h.do(t, http.MethodGet, "/users/lookup?email=B@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"email":"b@example.com"`)

	w, env = h.do(t, http.MethodGet, "/users/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"totalUsers":3`)
	assert.Contains(t, string(env.Data), `"activePercentage":100`)
}

func TestSignInMeSignOut(t *testing.T) {
	h := newHarness(t)
	u := h.register(t, "carla@example.com")

	w, env := h.do(t, http.MethodPost, "/auth/sign-in", map[string]any{"email": "carla@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	w, _ = h.do(t, http.MethodPost, "/auth/sign-in", map[string]any{"email": "carla@example.com", "password": "MinhaSenh@123"})
	require.Equal(t, http.StatusOK, w.Code)
	var token *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.TokenCookie {
			token = c
		}
	}
	require.NotNil(t, token)
	assert.True(t, token.HttpOnly)

	claims, err := h.jwt.ParseToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	w, env = h.do(t, http.MethodGet, "/me", nil, &http.Cookie{Name: helpers.TokenCookie, Value: token.Value})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"lastLoginAt":"`)

	w, _ = h.do(t, http.MethodPost, "/auth/sign-out", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Equal(t, helpers.TokenCookie, cleared[0].Name)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestHealth(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := gin.New()
	ok := NewHealthHandler(logger, map[string]Pinger{"postgres": func(context.Context) error { return nil }})
	down := NewHealthHandler(logger, map[string]Pinger{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("refused") },
	})
	r.GET("/ok", ok.Health)
	r.GET("/down", down.Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"postgres":"up"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
}
