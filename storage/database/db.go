package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/jamespares/chinaprof/core"
)

const (
	EngineSQLite   = "sqlite3"
	EnginePostgres = "postgres"
)

//go:embed migrations
var migrations embed.FS

// MigrationsDir is the directory, inside the embedded migrations, of the given engine.
func MigrationsDir(engine string) string {
	return "migrations/" + engine
}

func dataSourceName(conf core.DatabaseConfig) (string, error) {
	switch conf.Engine {
	case EngineSQLite:
		q := make(url.Values)
		q.Set("_foreign_keys", "on")
		q.Set("_busy_timeout", "5000")
		return "file:" + conf.Path + "?" + q.Encode(), nil

	case EnginePostgres:
		sslMode := "require"
		if conf.DisableTLS {
			sslMode = "disable"
		}
		q := make(url.Values)
		q.Set("sslmode", sslMode)
		q.Set("timezone", "utc")

		u := url.URL{
			Scheme:   EnginePostgres,
			User:     url.UserPassword(conf.User, conf.Password),
			Host:     conf.Address(),
			Path:     conf.Name,
			RawQuery: q.Encode(),
		}
		return u.String(), nil

	default:
		return "", errors.Errorf("unsupported database engine %q", conf.Engine)
	}
}

// Open connects to the configured database and waits for it to answer.
func Open(conf core.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := dataSourceName(conf)
	if err != nil {
		return nil, err
	}

	if conf.Engine == EngineSQLite && conf.Path != ":memory:" {
		if err = os.MkdirAll(filepath.Dir(conf.Path), 0o755); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}

	db, err := sqlx.Open(conf.Engine, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.Engine == EngineSQLite {
		// a single writer; also keeps ":memory:" databases on one connection
		db.SetMaxOpenConns(1)
	}

	if err = ping(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// SetUpMigrations points goose at the embedded migrations of engine.
func SetUpMigrations(engine string) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(engine); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	return nil
}

// Migrate applies every pending migration.
func Migrate(db *sqlx.DB) error {
	if err := SetUpMigrations(db.DriverName()); err != nil {
		return err
	}
	if err := goose.Up(db.DB, MigrationsDir(db.DriverName())); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

func exists(db *sql.DB, query, name string) (bool, error) {
	var found bool
	err := db.QueryRow(query, name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return found, err
}

// CreateIfNotExist creates the Postgres database named in conf when it is missing.
// SQLite databases are created on open.
func CreateIfNotExist(conf core.DatabaseConfig) error {
	if conf.Engine != EnginePostgres {
		return nil
	}

	adminConf := conf
	adminConf.Name = "postgres"
	db, err := Open(adminConf)
	if err != nil {
		return errors.Wrap(err, "opening admin database")
	}
	defer func() { _ = db.Close() }()

	found, err := exists(db.DB, "SELECT true FROM pg_database WHERE datname = $1", conf.Name)
	if err != nil {
		return errors.Wrap(err, "checking DB")
	}
	if !found {
		// identifiers cannot be bound as parameters
		if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", conf.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}
