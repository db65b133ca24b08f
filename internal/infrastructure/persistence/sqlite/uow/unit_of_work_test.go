package uow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"recruitflow/internal/ports"
)

type probe struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "uow.sqlite")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&probe{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func insertProbe(ctx context.Context, t *testing.T, name string) {
	t.Helper()
	tx, ok := ports.TxFromContext(ctx).(*gorm.DB)
	if !ok {
		t.Fatalf("tx missing from context")
	}
	if err := tx.Create(&probe{Name: name}).Error; err != nil {
		t.Fatalf("insert probe: %v", err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := setupDB(t)
	u := NewUnitOfWork(db)
	boom := errors.New("boom")

	err := u.WithTx(context.Background(), func(ctx context.Context) error {
		insertProbe(ctx, t, "a")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}

	var count int64
	if err := db.Model(&probe{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rows = %d, want 0 after rollback", count)
	}
}

func TestWithTxJoinsOuterTransaction(t *testing.T) {
	db := setupDB(t)
	u := NewUnitOfWork(db)

	err := u.WithTx(context.Background(), func(outer context.Context) error {
		outerTx := ports.TxFromContext(outer)
		return u.WithTx(outer, func(inner context.Context) error {
			if ports.TxFromContext(inner) != outerTx {
				t.Fatalf("nested WithTx opened a new transaction")
			}
			insertProbe(inner, t, "b")
			return nil
		})
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	var count int64
	if err := db.Model(&probe{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}
}
