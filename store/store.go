package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/domain"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

var ErrNotFound = errors.New("not found")

// Store is the posting repository. Queries use $N placeholders so the
// same SQL runs on sqlite and postgres.
type Store struct {
	DB     *sql.DB
	Driver string
}

func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case "sqlite":
		if !strings.Contains(dsn, "_pragma") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
		}
	case "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// sqlite typically wants 1 writer
		db.SetMaxOpenConns(1)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{DB: db, Driver: driver}, nil
}

// Migrate brings the schema to the latest version. It returns
// migrate.ErrNoChange when there was nothing to do.
func (s *Store) Migrate() error {
	src, err := iofs.New(migrations, "migrations/"+s.Driver)
	if err != nil {
		return err
	}
	var driver database.Driver
	switch s.Driver {
	case "sqlite":
		driver, err = sqlite.WithInstance(s.DB, &sqlite.Config{})
	case "postgres":
		// The migrator pins one pooled connection; hand it back when done.
		// Closing a WithInstance driver would close s.DB as well.
		ctx := context.Background()
		var conn *sql.Conn
		if conn, err = s.DB.Conn(ctx); err != nil {
			return err
		}
		defer conn.Close()
		driver, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
	default:
		err = fmt.Errorf("unsupported database driver %q", s.Driver)
	}
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, s.Driver, driver)
	if err != nil {
		return err
	}
	return m.Up()
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// whenLayout is fixed width so when_posted text sorts chronologically.
const whenLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatWhen(t time.Time) string {
	return t.UTC().Format(whenLayout)
}

func parseWhen(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse when_posted %q: %w", s, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse expiration_date %q: %w", s, err)
	}
	return t, nil
}

// setApproved flips the approval flag on one row of table.
func (s *Store) setApproved(ctx context.Context, table, id string, approved bool) error {
	res, err := s.DB.ExecContext(ctx, "UPDATE "+table+" SET approved = $1 WHERE id = $2", approved, id)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
