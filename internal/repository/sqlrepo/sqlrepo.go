package sqlrepo

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/garnizeh/jobboard/internal/db"
	"github.com/garnizeh/jobboard/pkg/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLRepo implements repository interfaces on top of the internal DB wrapper.
// The same queries serve SQLite and PostgreSQL.
type SQLRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLRepo)(nil)
var _ repository.JobRepo = (*SQLRepo)(nil)
var _ repository.ApplicationRepo = (*SQLRepo)(nil)
var _ repository.NewsRepo = (*SQLRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLRepo{conn: conn, logger: logger}
}

// today returns the calendar date stored on jobs and applications.
func today() string {
	return time.Now().Format(time.DateOnly)
}

// isUniqueViolation reports whether err is a unique constraint failure from
// either supported driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return false
}
