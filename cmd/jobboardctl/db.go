package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	dbfs "github.com/garnizeh/jobboard/db"
	"github.com/garnizeh/jobboard/internal/db"
	"github.com/spf13/cobra"
)

var errNotSQLite = errors.New("file backups are only supported for the sqlite driver")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and seed data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		conn, err := db.New(cmd.Context(), cfg.Database.Driver, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.Migrate(cmd.Context(), conn, dbfs.Migrations, dbfs.SeedFiles); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database migrated.")
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup [destination]",
	Short: "Write a consistent snapshot of the sqlite database",
	Long:  "Write a consistent snapshot of the sqlite database with VACUUM INTO. It is safe while the server is running. The destination defaults to the database path with a .bak suffix.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := sqlitePath()
		if err != nil {
			return err
		}
		dst := src + ".bak"
		if len(args) == 1 {
			dst = args[0]
		}

		if err := backupSQLite(cmd.Context(), src, dst); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database backed up to %s.\n", dst)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [source]",
	Short: "Replace the sqlite database file with a backup",
	Long:  "Replace the sqlite database file with a backup. The server must be stopped. The source defaults to the database path with a .bak suffix.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, err := sqlitePath()
		if err != nil {
			return err
		}
		src := dst + ".bak"
		if len(args) == 1 {
			src = args[0]
		}

		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database restored from %s.\n", src)
		return nil
	},
}

// backupSQLite snapshots src into a temporary file next to dst and renames it
// into place. VACUUM INTO refuses to overwrite an existing file.
func backupSQLite(ctx context.Context, src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return err
	}
	conn, err := db.New(ctx, db.DialectSQLite, src)
	if err != nil {
		return err
	}
	defer conn.Close()

	tmp := dst + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if _, err := conn.Exec(ctx, `VACUUM INTO ?`, tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

func sqlitePath() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Database.Driver != "sqlite" {
		return "", errNotSQLite
	}
	return cfg.Database.Path, nil
}

// copyFile writes src to a temporary file next to dst and renames it into
// place, so a failed copy never leaves a truncated dst behind.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

