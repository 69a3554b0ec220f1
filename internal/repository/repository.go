package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrNotFound = errors.New("record not found")

// timeLayout is fixed-width so stored timestamps compare as strings.
const timeLayout = "2006-01-02T15:04:05.000000Z"

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository opens the SQLite file at dbPath.
func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// single writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)
	return NewRepositoryFromDB(db), nil
}

func NewRepositoryFromDB(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// RunMigrations applies the embedded schema, then adds columns that older
// databases may lack.
func (r *Repository) RunMigrations(ctx context.Context) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{
		MigrationsTable: "storebot_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return r.ensureColumns(ctx)
}

func (r *Repository) ensureColumns(ctx context.Context) error {
	cols, err := r.columns(ctx, "users")
	if err != nil {
		return err
	}
	for _, c := range []string{"source", "phone"} {
		if _, ok := cols[c]; ok {
			continue
		}
		if _, err := r.db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE users ADD COLUMN %s TEXT", c)); err != nil {
			return fmt.Errorf("add users.%s: %w", c, err)
		}
	}
	if _, err := r.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_users_phone ON users(phone)"); err != nil {
		return fmt.Errorf("create phone index: %w", err)
	}
	return nil
}

func (r *Repository) columns(ctx context.Context, table string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]struct{})
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		cols[name] = struct{}{}
	}
	return cols, rows.Err()
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) timestamp() string {
	return formatTime(r.now())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
