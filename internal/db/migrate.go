package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// Migrate applies migrations and optional seed files for the dialect of d.
// It creates a `schema_migrations` table to track applied migrations and applies
// any SQL files in `migrations/<dialect>/` that have not yet been recorded, each
// in its own transaction. Seed files are applied idempotently.
func Migrate(ctx context.Context, d *DB, migrationFS fs.FS, seedFS fs.FS) error {
	// ensure migrations table exists
	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied BIGINT NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	migDir := path.Join("migrations", d.Dialect())

	entries, err := fs.ReadDir(migrationFS, migDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	// collect .sql files and sort
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(strings.ToLower(name), ".sql") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	for _, fname := range files {
		// use filename (without extension) as migration version key
		version := strings.TrimSuffix(fname, path.Ext(fname))

		var count int
		if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version).Scan(&count); err != nil {
			return fmt.Errorf("scan migration applied count: %w", err)
		}
		if count > 0 {
			continue
		}

		b, err := fs.ReadFile(migrationFS, path.Join(migDir, fname))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}

		err = d.WithTx(ctx, func(tx *Tx) error {
			if _, err := tx.Exec(ctx, string(b)); err != nil {
				return fmt.Errorf("exec migration %s: %w", fname, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, applied) VALUES (?, ?)`, version, time.Now().UTC().Unix()); err != nil {
				return fmt.Errorf("record migration %s: %w", fname, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	if seedFS != nil {
		if err := seedNews(ctx, d, seedFS); err != nil {
			return err
		}
	}

	return nil
}

type newsSeed struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Summary   string `json:"summary"`
	Published string `json:"published"`
}

// seedNews fills the news table from seed/news.json when the table is empty.
func seedNews(ctx context.Context, d *DB, seedFS fs.FS) error {
	b, err := fs.ReadFile(seedFS, path.Join("seed", "news.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read news seed: %w", err)
	}

	var items []newsSeed
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("parse news seed: %w", err)
	}

	return d.WithTx(ctx, func(tx *Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(1) FROM news`).Scan(&count); err != nil {
			return fmt.Errorf("count news: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, it := range items {
			if _, err := tx.Exec(ctx, `INSERT INTO news (title, source, url, summary, published) VALUES (?, ?, ?, ?, ?)`, it.Title, it.Source, it.URL, it.Summary, it.Published); err != nil {
				return fmt.Errorf("seed news exec: %w", err)
			}
		}
		return nil
	})
}
