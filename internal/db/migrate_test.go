package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"mini-tracker-go/pkg/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gormDB
}

func TestMigrateAppliesSQLFilesOnce(t *testing.T) {
	gormDB := openMemory(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "0001_idx.sql"), []byte("CREATE INDEX IF NOT EXISTS idx_test_lists ON lists (name);"), 0o600); err != nil {
		t.Fatalf("write migration: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := AutoMigrate(gormDB); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := applySQLMigrations(gormDB, dir, logger.Discard()); err != nil {
			t.Fatalf("apply run %d: %v", i, err)
		}
	}

	var count int64
	if err := gormDB.Raw("SELECT COUNT(1) FROM schema_migrations").Scan(&count).Error; err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", count)
	}
}

func TestAutoMigrateCreatesTables(t *testing.T) {
	gormDB := openMemory(t)
	if err := AutoMigrate(gormDB); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	for _, table := range []string{"users", "sessions", "factions", "unit_types", "miniatures", "lists", "list_items", "list_item_metadata"} {
		if !gormDB.Migrator().HasTable(table) {
			t.Fatalf("expected table %s", table)
		}
	}
}
