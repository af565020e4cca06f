package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.API.BaseURL == "" {
		t.Fatal("default base URL empty")
	}
	if cfg.Policy.MaxBooks != 3 {
		t.Fatalf("default max_books = %d, want 3", cfg.Policy.MaxBooks)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.APITimeout() != 30*time.Second {
		t.Fatalf("APITimeout = %v, want 30s", cfg.APITimeout())
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != DefaultConfig().API.BaseURL {
		t.Fatalf("expected defaults, got %q", cfg.API.BaseURL)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
api:
  base_url: https://library.example.edu/api
  timeout: 10s
policy:
  max_books: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://library.example.edu/api" {
		t.Fatalf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.Policy.MaxBooks != 5 {
		t.Fatalf("max_books = %d, want 5", cfg.Policy.MaxBooks)
	}

	// Env wins over the file.
	t.Setenv("LIBSHELF_API_URL", "https://staging.example.edu/api")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load with env: %v", err)
	}
	if cfg.API.BaseURL != "https://staging.example.edu/api" {
		t.Fatalf("env override ignored: %q", cfg.API.BaseURL)
	}
}

func TestLoad_MissingFileStillValidatesEnv(t *testing.T) {
	t.Setenv("LIBSHELF_API_TIMEOUT", "not-a-duration")
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for malformed timeout override")
	}
}

func TestLoad_TokenOverride(t *testing.T) {
	t.Setenv("LIBSHELF_TOKEN", "jwt-from-env")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Token != "jwt-from-env" {
		t.Fatalf("API.Token = %q, want env override", cfg.API.Token)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Timeout = "not-a-duration"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad timeout")
	}
	cfg = DefaultConfig()
	cfg.Policy.MaxBooks = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero max_books")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Policy.MaxBooks = 7
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Policy.MaxBooks != 7 {
		t.Fatalf("round trip lost max_books: %d", loaded.Policy.MaxBooks)
	}
}
