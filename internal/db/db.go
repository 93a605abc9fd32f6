package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
)

// Supported dialects. The value doubles as the migrations subdirectory name.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// sqliteLower is registered on every SQLite connection. The built-in LOWER
// only folds ASCII.
const sqliteLower = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(sqliteLower, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
}

// DB wraps the sql.DB for connection management. Queries are written with `?`
// placeholders and rebound for the active dialect.
type DB struct {
	conn    *sql.DB
	dialect string
}

// New creates a new DB connection. dialect is "sqlite" (dsn is a file path or
// sqlite URI) or "postgres" (dsn is a libpq URL or keyword string).
func New(ctx context.Context, dialect, dsn string) (*DB, error) {
	var driver string
	switch dialect {
	case DialectSQLite, "":
		dialect, driver = DialectSQLite, "sqlite"
	case DialectPostgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// a single connection serialises SQLite transactions
	if dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &DB{conn: conn, dialect: dialect}, nil
}

// NewForDialect wraps an already opened pool.
func NewForDialect(conn *sql.DB, dialect string) *DB {
	return &DB{conn: conn, dialect: dialect}
}

// Close closes the DB connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Dialect reports the SQL dialect in use.
func (db *DB) Dialect() string {
	return db.dialect
}

// Lower returns the SQL function that lowercases Unicode text in the active
// dialect, matching strings.ToLower.
func (db *DB) Lower() string {
	if db.dialect == DialectSQLite {
		return sqliteLower
	}
	return "LOWER"
}

// Exec executes a query
func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, db.Rebind(query), args...)
}

// QueryRow executes a query that is expected to return at most one row
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.Rebind(query), args...)
}

// QueryRows executes a query that returns rows
func (db *DB) QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, db.Rebind(query), args...)
}

// GetConn returns the underlying sql.DB
func (db *DB) GetConn() *sql.DB {
	return db.conn
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise.
func (db *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&Tx{tx: sqlTx, db: db}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Rebind converts `?` placeholders to `$n` for PostgreSQL. Queries must not
// contain literal question marks.
func (db *DB) Rebind(query string) string {
	if db.dialect != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Tx is a transaction bound to the dialect of the DB that opened it.
type Tx struct {
	tx *sql.Tx
	db *DB
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.db.Rebind(query), args...)
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.db.Rebind(query), args...)
}
