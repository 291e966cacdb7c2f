package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap/zaptest"

	"github.com/todoapp/core/internal/adapters/gateway"
	"github.com/todoapp/core/internal/adapters/repository"
	"github.com/todoapp/core/internal/application/services"
	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/config"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/infrastructure/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWith(t, nil)
}

func newTestServerWith(t *testing.T, configure func(*config.Config)) *Server {
	t.Helper()
	log := logger.FromZap(zaptest.NewLogger(t))

	store, err := repository.NewJSONStore(filepath.Join(t.TempDir(), ".todo-app"))
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}
	validator, err := repository.NewSchemaValidator()
	if err != nil {
		t.Fatalf("NewSchemaValidator failed: %v", err)
	}
	guard := services.NewGuard()
	m := metrics.New("todoapp")
	gw := gateway.New(
		services.NewTaskService(store, guard, log),
		services.NewSettingsService(store, guard, log),
		services.NewDataService(store, validator, guard, log),
		gateway.WithLogger(log),
		gateway.WithObserver(m),
	)

	cfg := &config.Config{
		App:      config.AppConfig{Name: "todoapp", Version: "test"},
		Server:   config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second},
		Security: config.SecurityConfig{CORSAllowedOrigins: "http://localhost:1420", RateLimitRequests: 1000, RateLimitWindow: time.Minute},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
	if configure != nil {
		configure(cfg)
	}
	srv, err := New(cfg, gw, m, log)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

func do(t *testing.T, srv *Server, method, target, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: body is not an envelope: %s", method, target, rec.Body.String())
	}
	return rec.Code, env
}

func TestTaskRoutes(t *testing.T) {
	srv := newTestServer(t)

	code, env := do(t, srv, http.MethodPost, "/api/v1/tasks", `{"title":"Buy milk","priority":"High","due_date":"2000-01-01"}`)
	if code != http.StatusOK || !env.Success {
		t.Fatalf("create: %d %+v", code, env)
	}
	var task entities.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	_, env = do(t, srv, http.MethodPatch, "/api/v1/tasks/"+task.ID, `{"title":"Buy oat milk"}`)
	if !env.Success || !strings.Contains(string(env.Data), "Buy oat milk") {
		t.Fatalf("update: %+v", env)
	}

	_, env = do(t, srv, http.MethodGet, "/api/v1/tasks", "")
	var tasks []entities.Task
	if err := json.Unmarshal(env.Data, &tasks); err != nil || len(tasks) != 1 {
		t.Fatalf("list: %s", env.Data)
	}

	_, env = do(t, srv, http.MethodGet, "/api/v1/tasks?filter=overdue&q=oat", "")
	if err := json.Unmarshal(env.Data, &tasks); err != nil || len(tasks) != 1 {
		t.Fatalf("query overdue: %s", env.Data)
	}
	_, env = do(t, srv, http.MethodGet, "/api/v1/tasks?filter=completed", "")
	if err := json.Unmarshal(env.Data, &tasks); err != nil || len(tasks) != 0 {
		t.Fatalf("query completed: %s", env.Data)
	}

	_, env = do(t, srv, http.MethodGet, "/api/v1/tasks/stats", "")
	var stats entities.TaskStats
	if err := json.Unmarshal(env.Data, &stats); err != nil || stats.Total != 1 || stats.Overdue != 1 || stats.HighPriority != 1 {
		t.Fatalf("stats: %s", env.Data)
	}

	code, env = do(t, srv, http.MethodDelete, "/api/v1/tasks/"+task.ID, "")
	if code != http.StatusOK || !env.Success {
		t.Fatalf("delete: %d %+v", code, env)
	}
	code, env = do(t, srv, http.MethodDelete, "/api/v1/tasks/"+task.ID, "")
	if code != http.StatusOK || env.Success || env.Error == nil || *env.Error != "Task does not exist" {
		t.Fatalf("second delete: %d %+v", code, env)
	}
}

func TestMalformedBodyIsAnEnvelope(t *testing.T) {
	srv := newTestServer(t)

	code, env := do(t, srv, http.MethodPost, "/api/v1/tasks", `{"title":`)
	if code != http.StatusOK || env.Success || env.Error == nil {
		t.Fatalf("got %d %+v", code, env)
	}
	if !strings.HasPrefix(*env.Error, "Failed to create task: validation failed") {
		t.Errorf("message = %q", *env.Error)
	}
}

func TestSettingsAndDataRoutes(t *testing.T) {
	srv := newTestServer(t)

	_, env := do(t, srv, http.MethodGet, "/api/v1/settings", "")
	if !env.Success || !strings.Contains(string(env.Data), `"theme":"light"`) {
		t.Fatalf("get settings: %s", env.Data)
	}

	_, env = do(t, srv, http.MethodPut, "/api/v1/settings", `{"theme":"pink","isPinned":true}`)
	var settings entities.Settings
	if err := json.Unmarshal(env.Data, &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.Theme != entities.ThemePink || !settings.IsPinned || !settings.Notifications {
		t.Errorf("put settings: %+v", settings)
	}

	do(t, srv, http.MethodPost, "/api/v1/tasks", `{"title":"export me"}`)
	_, env = do(t, srv, http.MethodGet, "/api/v1/data/export", "")
	var exported string
	if err := json.Unmarshal(env.Data, &exported); err != nil || !strings.Contains(exported, "export me") {
		t.Fatalf("export: %s", env.Data)
	}

	_, env = do(t, srv, http.MethodDelete, "/api/v1/data", "")
	if !env.Success {
		t.Fatalf("clear: %+v", env)
	}

	body, _ := json.Marshal(map[string]string{"data": exported})
	_, env = do(t, srv, http.MethodPost, "/api/v1/data/import", string(body))
	if !env.Success {
		t.Fatalf("import: %+v", env)
	}

	_, env = do(t, srv, http.MethodGet, "/api/v1/data/dir", "")
	if !env.Success || !strings.Contains(string(env.Data), ".todo-app") {
		t.Fatalf("dir: %s", env.Data)
	}
}

func TestUnknownRouteIsAnEnvelope(t *testing.T) {
	srv := newTestServer(t)

	code, env := do(t, srv, http.MethodGet, "/api/v1/nothing", "")
	if code != http.StatusNotFound || env.Success || env.Error == nil {
		t.Fatalf("got %d %+v", code, env)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/api/v1/tasks", "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("health: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `todoapp_operations_total{operation="get_tasks",outcome="success"} 1`) {
		t.Errorf("metrics missing operation counter:\n%s", rec.Body.String())
	}
}

func TestSwaggerDocs(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		srv := newTestServerWith(t, func(cfg *config.Config) { cfg.Docs.Enabled = true })

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("doc.json: %d %s", rec.Code, rec.Body.String())
		}
		var doc struct {
			Paths map[string]json.RawMessage `json:"paths"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
			t.Fatalf("doc.json is not JSON: %v", err)
		}
		for _, path := range []string{"/api/v1/tasks", "/api/v1/tasks/{id}", "/api/v1/settings", "/api/v1/data/import", "/api/v1/files/open"} {
			if _, ok := doc.Paths[path]; !ok {
				t.Errorf("doc.json has no %s", path)
			}
		}
	})

	t.Run("disabled", func(t *testing.T) {
		srv := newTestServer(t)

		code, env := do(t, srv, http.MethodGet, "/swagger/doc.json", "")
		if code != http.StatusNotFound || env.Success {
			t.Fatalf("got %d %+v", code, env)
		}
	})
}

func TestInternalErrorDetail(t *testing.T) {
	tests := []struct {
		environment string
		wantDebug   bool
		wantMessage string
	}{
		{environment: "production", wantMessage: "Internal Server Error"},
		{environment: "development", wantDebug: true, wantMessage: "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			srv := newTestServerWith(t, func(cfg *config.Config) { cfg.App.Environment = tt.environment })
			if srv.echo.Debug != tt.wantDebug {
				t.Errorf("Debug = %v, want %v", srv.echo.Debug, tt.wantDebug)
			}
			srv.echo.GET("/boom", func(c echo.Context) error { return errors.New("disk on fire") })

			code, env := do(t, srv, http.MethodGet, "/boom", "")
			if code != http.StatusInternalServerError || env.Success || env.Error == nil {
				t.Fatalf("got %d %+v", code, env)
			}
			if *env.Error != tt.wantMessage {
				t.Errorf("message = %q, want %q", *env.Error, tt.wantMessage)
			}
		})
	}
}

func TestRateLimiterConfig(t *testing.T) {
	cfg := rateLimiterConfig(config.SecurityConfig{RateLimitRequests: 60, RateLimitWindow: time.Minute})
	store, ok := cfg.Store.(*middleware.RateLimiterMemoryStore)
	if !ok {
		t.Fatalf("unexpected store %T", cfg.Store)
	}
	allowed := 0
	for i := 0; i < 100; i++ {
		if ok, _ := store.Allow("127.0.0.1"); ok {
			allowed++
		}
	}
	if allowed < 60 || allowed > 61 {
		t.Errorf("allowed %d requests in a burst, want 60", allowed)
	}
}
