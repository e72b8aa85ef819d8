package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"careconnect/internal/app/service"
	"careconnect/internal/common/security"
	"careconnect/internal/domain/model"
	"careconnect/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	users   *repository.MemoryUserRepository
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := repository.NewMemoryUserRepository()
	patients := repository.NewMemoryPatientRepository()
	volunteers := repository.NewMemoryVolunteerRepository()
	tokens := security.NewTokenManager([]byte("router-test-secret"), time.Hour)

	if opts.AuthRateLimit == 0 {
		opts.AuthRateLimit = 1000
		opts.AuthRateBurst = 1000
	}

	svc := Services{
		Auth:       service.NewAuthService(users, tokens, bcrypt.MinCost, log),
		Patients:   service.NewPatientService(patients, service.NewNoopAlertPublisher(), log),
		Volunteers: service.NewVolunteerService(volunteers),
		Dashboard:  service.NewDashboardService(patients, volunteers),
	}
	return &testServer{t: t, handler: NewRouter(svc, opts, log), users: users}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp service.AuthResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (s *testServer) userToken() string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{"name": "Jane", "email": "jane@example.com", "password": "secret"})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return s.login("jane@example.com", "secret")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var patientBody = map[string]string{
	"full_name":    "Ravi Kumar",
	"phone":        "9876543210",
	"location":     "Pune",
	"problem_type": "Blood",
	"description":  "Severe bleeding after an accident",
	"priority":     "LOW",
	"summary":      "client summary",
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t, Options{})
	signup := map[string]string{"name": "Jane", "email": "jane@example.com", "password": "secret"}

	rec := s.do(http.MethodPost, "/api/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User created successfully", decode[map[string]string](t, rec)["message"])

	rec = s.do(http.MethodPost, "/api/auth/signup", "", signup)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", decode[map[string]string](t, rec)["error"])
	assert.Equal(t, 1, s.users.Len())

	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "jane@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[service.AuthResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user", resp.User.Role)

	var raw struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw.User, "password")
	assert.NotContains(t, raw.User, "hashed_password")

	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "jane@example.com", "password": "wrong"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid credentials", decode[map[string]string](t, rec)["error"])
}

func TestSignup_BadPayloads(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := s.do(http.MethodPost, "/api/auth/signup", "", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{"name": "Jane", "email": "jane@example.com", "password": "x", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, s.users.Len())

	rec = s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{"name": "Jane"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{"name": "Jane", "email": "jane@example.com", "password": strings.Repeat("a", 73)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "password")
	assert.Equal(t, 0, s.users.Len())
}

func TestAdminLogin(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@gmail.com", "password": "1234"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[service.AuthResponse](t, rec)
	assert.Equal(t, model.AdminView(), resp.User)
	assert.Equal(t, 0, s.users.Len())
}

func TestAccessTiers(t *testing.T) {
	s := newTestServer(t, Options{})
	user := s.userToken()
	admin := s.login(model.AdminEmail, model.AdminPassword)

	tests := []struct {
		method, path, token string
		body                any
		want                int
	}{
		{http.MethodPost, "/api/patients", "", patientBody, http.StatusUnauthorized},
		{http.MethodPost, "/api/patients", "garbage", patientBody, http.StatusUnauthorized},
		{http.MethodGet, "/api/patients", "", nil, http.StatusUnauthorized},
		{http.MethodGet, "/api/patients", user, nil, http.StatusForbidden},
		{http.MethodGet, "/api/patients", admin, nil, http.StatusOK},
		{http.MethodDelete, "/api/patients/abc", "", nil, http.StatusUnauthorized},
		{http.MethodDelete, "/api/patients/abc", user, nil, http.StatusForbidden},
		{http.MethodGet, "/api/volunteers", user, nil, http.StatusForbidden},
		{http.MethodDelete, "/api/volunteers/abc", user, nil, http.StatusForbidden},
		{http.MethodGet, "/api/stats", "", nil, http.StatusUnauthorized},
		{http.MethodGet, "/api/stats", user, nil, http.StatusForbidden},
		{http.MethodGet, "/api/stats", admin, nil, http.StatusOK},
	}
	for _, tt := range tests {
		rec := s.do(tt.method, tt.path, tt.token, tt.body)
		assert.Equal(t, tt.want, rec.Code, "%s %s token=%q: %s", tt.method, tt.path, tt.token, rec.Body.String())
	}
}

func TestPatientLifecycle(t *testing.T) {
	s := newTestServer(t, Options{})
	user := s.userToken()
	admin := s.login(model.AdminEmail, model.AdminPassword)

	rec := s.do(http.MethodPost, "/api/patients", user, patientBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.PatientRequest](t, rec)
	assert.Equal(t, model.PriorityHigh, created.Priority)
	require.NotNil(t, created.Summary)
	assert.Equal(t, `Patient "Ravi Kumar" from Pune requires Blood support. Priority: HIGH.`, *created.Summary)

	rec = s.do(http.MethodGet, "/api/patients", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]model.PatientRequest](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rec = s.do(http.MethodDelete, "/api/patients/"+created.ID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Patient deleted", decode[map[string]string](t, rec)["message"])

	rec = s.do(http.MethodDelete, "/api/patients/"+created.ID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/patients", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPatientCreate_MissingField(t *testing.T) {
	s := newTestServer(t, Options{})
	user := s.userToken()

	rec := s.do(http.MethodPost, "/api/patients", user, map[string]string{"full_name": "Ravi"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "phone")
}

func TestVolunteerLifecycle(t *testing.T) {
	s := newTestServer(t, Options{})
	user := s.userToken()
	admin := s.login(model.AdminEmail, model.AdminPassword)

	body := map[string]string{
		"full_name":    "Asha",
		"phone":        "9000000000",
		"email":        "asha@example.com",
		"skills":       "First Aid",
		"availability": "Weekends",
		"location":     "Delhi",
	}
	rec := s.do(http.MethodPost, "/api/volunteers", user, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	v := decode[model.VolunteerRegistration](t, rec)

	rec = s.do(http.MethodGet, "/api/volunteers", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]model.VolunteerRegistration](t, rec), 1)

	rec = s.do(http.MethodDelete, "/api/volunteers/"+v.ID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Volunteer deleted", decode[map[string]string](t, rec)["message"])
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := s.do(http.MethodPost, "/api/chat", "", map[string]string{"message": "is it free?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["reply"], "completely free")

	rec = s.do(http.MethodPost, "/api/chat", "", map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownAPIRoute(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := s.do(http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "API route not found", decode[map[string]string](t, rec)["error"])
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	s := newTestServer(t, Options{StaticDir: dir})

	rec := s.do(http.MethodGet, "/app.js", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = s.do(http.MethodGet, "/admin", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")

	rec = s.do(http.MethodGet, "/api/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRateLimit(t *testing.T) {
	s := newTestServer(t, Options{AuthRateLimit: 0.001, AuthRateBurst: 2})
	creds := map[string]string{"email": "ghost@example.com", "password": "x"}

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/auth/login", "", creds).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/auth/login", "", creds).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodPost, "/api/auth/login", "", creds).Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/chat", "", map[string]string{"message": "hi"}).Code)
}
