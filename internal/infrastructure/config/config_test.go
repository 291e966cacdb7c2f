package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.DirName != ".todo-app" {
		t.Errorf("DirName = %q, want .todo-app", cfg.Storage.DirName)
	}
	if cfg.Storage.StrictRead {
		t.Error("StrictRead should default to false")
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want loopback", cfg.Server.Host)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.App.Locale != "en" {
		t.Errorf("Locale = %q, want en", cfg.App.Locale)
	}
	if cfg.Docs.Enabled {
		t.Error("Swagger UI should be off by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_DATA_DIR", dir)
	t.Setenv("TODO_STRICT_READ", "true")
	t.Setenv("APP_LOCALE", "zh")
	t.Setenv("SERVER_PORT", "18000")
	t.Setenv("ENABLE_SWAGGER", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.Storage.DataDir, dir)
	}
	if !cfg.Storage.StrictRead {
		t.Error("StrictRead should be true")
	}
	if cfg.App.Locale != "zh" {
		t.Errorf("Locale = %q", cfg.App.Locale)
	}
	if got := cfg.Server.GetAddr(); got != "127.0.0.1:18000" {
		t.Errorf("GetAddr = %q", got)
	}
	if !cfg.Docs.Enabled {
		t.Error("Docs.Enabled should follow ENABLE_SWAGGER")
	}
}

func TestLoadRejectsRelativeDataDir(t *testing.T) {
	t.Setenv("TODO_DATA_DIR", "relative/dir")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for relative data dir")
	}
}

func TestLoadValidatesAppName(t *testing.T) {
	tests := []struct {
		name    string
		metrics string
		wantErr bool
	}{
		{name: "todoapp", metrics: "true"},
		{name: "todo_app", metrics: "true"},
		{name: "todo-app", metrics: "true", wantErr: true},
		{name: "1todo", metrics: "true", wantErr: true},
		{name: "todo-app", metrics: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/metrics="+tt.metrics, func(t *testing.T) {
			t.Setenv("APP_NAME", tt.name)
			t.Setenv("ENABLE_METRICS", tt.metrics)

			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	for env, want := range map[string]bool{"development": true, "production": false, "": false} {
		cfg := AppConfig{Environment: env}
		if got := cfg.IsDevelopment(); got != want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", env, got, want)
		}
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := SecurityConfig{CORSAllowedOrigins: " tauri://localhost , ,http://localhost:1420"}
	got := cfg.AllowedOrigins()
	if len(got) != 2 || got[0] != "tauri://localhost" || got[1] != "http://localhost:1420" {
		t.Errorf("AllowedOrigins = %v", got)
	}
}
