package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(""),
		WithEnvMap(map[string]string{
			"API_FIRESTORE_PROJECT_ID": "demo-project",
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("expected default read timeout, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Dictionary.Path != "dictionaries.json" {
		t.Errorf("expected default dictionary path, got %s", cfg.Dictionary.Path)
	}
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Errorf("expected no default CORS origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(""),
		WithEnvMap(map[string]string{
			"API_SERVER_PORT":             "9090",
			"API_SERVER_READ_TIMEOUT":     "5s",
			"API_FIRESTORE_PROJECT_ID":    "demo-project",
			"API_FIRESTORE_EMULATOR_HOST": "localhost:8089",
			"API_DICTIONARY_PATH":         "/etc/lingobridge/dict.json",
			"API_CORS_ALLOWED_ORIGINS":    "http://localhost:5500, http://localhost:5501",
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected read timeout 5s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Firestore.EmulatorHost != "localhost:8089" {
		t.Errorf("expected emulator host, got %s", cfg.Firestore.EmulatorHost)
	}
	if cfg.Dictionary.Path != "/etc/lingobridge/dict.json" {
		t.Errorf("expected dictionary path override, got %s", cfg.Dictionary.Path)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "http://localhost:5501" {
		t.Errorf("expected two trimmed origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadMissingProjectID(t *testing.T) {
	_, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{}))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := validation.Fields()
	if len(fields) != 1 || fields[0] != "Firestore.ProjectID" {
		t.Fatalf("expected Firestore.ProjectID missing, got %v", fields)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	contents := "# local overrides\nexport API_SERVER_PORT=7000\nAPI_FIRESTORE_PROJECT_ID=\"file-project\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed writing env file: %v", err)
	}

	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("expected port from file, got %s", cfg.Server.Port)
	}
	if cfg.Firestore.ProjectID != "file-project" {
		t.Errorf("expected project id from file, got %s", cfg.Firestore.ProjectID)
	}
}

func TestEnvMapTakesPrecedenceOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("API_SERVER_PORT=7000\n"), 0o600); err != nil {
		t.Fatalf("failed writing env file: %v", err)
	}

	cfg, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(path),
		WithEnvMap(map[string]string{
			"API_SERVER_PORT":          "7001",
			"API_FIRESTORE_PROJECT_ID": "demo-project",
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "7001" {
		t.Errorf("expected env map to win, got %s", cfg.Server.Port)
	}
}
