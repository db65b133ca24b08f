package database

import (
	"context"
	"path/filepath"
	"testing"

	"recruitflow/internal/bootstrap/config"
)

func TestWithSQLitePragmas(t *testing.T) {
	cases := map[string]string{
		"a.sqlite":                           "a.sqlite?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		"file:a.sqlite?cache=shared":         "file:a.sqlite?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		"a.sqlite?_pragma=journal_mode(WAL)": "a.sqlite?_pragma=journal_mode(WAL)",
	}
	for in, want := range cases {
		if got := withSQLitePragmas(in); got != want {
			t.Fatalf("withSQLitePragmas(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "dir", "rf.sqlite")
	db, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("CREATE TABLE probe (id integer)").Error; err != nil {
		t.Fatalf("create probe table: %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle", DSN: "x"}); err == nil {
		t.Fatalf("Open() expected error for unsupported driver")
	}
}
