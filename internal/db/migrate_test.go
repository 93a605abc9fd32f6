package db_test

import (
	"context"
	"testing"

	dbfs "github.com/garnizeh/jobboard/db"
	"github.com/garnizeh/jobboard/internal/db"
)

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	// Run again to ensure idempotency
	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count < 1 {
		t.Fatalf("expected at least 1 migration recorded, got %d", count)
	}

	for _, table := range []string{"users", "jobs", "applications", "news"} {
		var name string
		if err := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name); err != nil {
			t.Fatalf("expected %s table exists: %v", table, err)
		}
	}
}

func TestMigrate_SeedsNewsOnce(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	for range 2 {
		if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
			t.Fatalf("migrate failed: %v", err)
		}
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM news`).Scan(&count); err != nil {
		t.Fatalf("count news: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 seeded news items, got %d", count)
	}
}

func TestMigrate_WithoutSeed(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations, nil); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM news`).Scan(&count); err != nil {
		t.Fatalf("count news: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no news without seed, got %d", count)
	}
}
