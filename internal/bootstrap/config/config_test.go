package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadReadsYAMLAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "database:\n  dsn: " + filepath.Join(dir, "db.sqlite") + "\nreview:\n  page_size: 25\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Review.PageSize != 25 {
		t.Fatalf("page_size = %d, want 25", cfg.Review.PageSize)
	}
	if cfg.Review.NameCacheTTL != 10*time.Minute {
		t.Fatalf("name_cache_ttl = %s, want default 10m", cfg.Review.NameCacheTTL)
	}
	if cfg.App.Name != "recruitflow" {
		t.Fatalf("app.name = %q", cfg.App.Name)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("database:\n  dsn: a.sqlite\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RF_REVIEW_PAGE_SIZE", "5")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Review.PageSize != 5 {
		t.Fatalf("page_size = %d, want env override 5", cfg.Review.PageSize)
	}
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("app:\n  timezone: Mars/Olympus\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(context.Background(), path); err == nil {
		t.Fatalf("Load() expected error for unknown timezone")
	}
}

func TestLoadRequiresContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	if _, err := Load(nil, ""); err == nil {
		t.Fatalf("Load(nil) expected error")
	}
}
