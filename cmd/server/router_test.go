package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/api/middleware"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApplication builds an application around a mock task service.
func newTestApplication(t *testing.T, svc *mocks.MockTaskService, basePath string) *application {
	t.Helper()

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{
				Port:                   config.DefaultPort,
				LogLevel:               "error",
				BasePath:               basePath,
				AllowedOrigins:         []string{"http://localhost:3000"},
				ShutdownTimeoutSeconds: 1,
			},
		},
		logger:      testLogger(),
		taskService: svc,
		metrics:     middleware.NewMetrics(prometheus.NewRegistry()),
	}
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_TaskRoutes(t *testing.T) {
	task := &domain.Task{ID: 1, Title: "Routed", Priority: domain.PriorityMedium}
	svc := &mocks.MockTaskService{Task: task, Tasks: []*domain.Task{task}}
	router := newTestApplication(t, svc, "/v1").setupRouter()

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/v1/tasks", "", http.StatusOK},
		{http.MethodGet, "/v1/tasks/", "", http.StatusOK},
		{http.MethodPost, "/v1/tasks/", `{"title": "Routed"}`, http.StatusCreated},
		{http.MethodGet, "/v1/tasks/1", "", http.StatusOK},
		{http.MethodGet, "/v1/tasks/1/", "", http.StatusOK},
		{http.MethodPut, "/v1/tasks/1/", `{"title": "Routed"}`, http.StatusOK},
		{http.MethodPatch, "/v1/tasks/1", `{"completed": true}`, http.StatusOK},
		{http.MethodDelete, "/v1/tasks/1/", "", http.StatusNoContent},
		{http.MethodGet, "/v1/tasks/abc/", "", http.StatusNotFound},
		{http.MethodGet, "/v1/unknown", "", http.StatusNotFound},
		{http.MethodPost, "/v1/tasks/1", `{}`, http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := serve(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rr.Code, "body: %s", rr.Body.String())
		})
	}
}

func TestRouter_APIRoot(t *testing.T) {
	router := newTestApplication(t, &mocks.MockTaskService{}, "/v1/").setupRouter()

	for _, path := range []string{"/v1", "/v1/"} {
		t.Run(path, func(t *testing.T) {
			rr := serve(t, router, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, rr.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "http://example.com/v1/tasks/", body["tasks"])
		})
	}
}

func TestRouter_Health(t *testing.T) {
	svc := &mocks.MockTaskService{}
	router := newTestApplication(t, svc, "/v1").setupRouter()

	rr := serve(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	svc.PingFn = func(ctx context.Context) error { return errors.New("down") }
	rr = serve(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRouter_Metrics(t *testing.T) {
	svc := &mocks.MockTaskService{}
	router := newTestApplication(t, svc, "/v1").setupRouter()

	serve(t, router, http.MethodGet, "/v1/tasks/", "")

	rr := serve(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `route="/v1/tasks"`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestApplication(t, &mocks.MockTaskService{}, "/v1").setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/v1/tasks/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Less(t, rr.Code, 300)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_TraceIDOnErrors(t *testing.T) {
	router := newTestApplication(t, &mocks.MockTaskService{Err: errors.New("boom")}, "/v1").setupRouter()

	rr := serve(t, router, http.MethodGet, "/v1/tasks/", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotEmpty(t, body["trace_id"])
}

func TestRouter_UnknownRoutesReturnJSON(t *testing.T) {
	router := newTestApplication(t, &mocks.MockTaskService{}, "/v1").setupRouter()

	for _, path := range []string{"/nope", "/v1/unknown", "/v1/tasks/1/extra"} {
		t.Run(path, func(t *testing.T) {
			rr := serve(t, router, http.MethodGet, path, "")
			require.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "Not found", body["error"])
			assert.NotEmpty(t, body["trace_id"])
		})
	}
}
