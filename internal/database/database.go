package database

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"devchatClient/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

type MethodsDB interface {
	CloseDB() error
	RunMigrations() error
	HealthCheck() error
	GetDB() *DB
}

type DB struct {
	*sqlx.DB
}

// ConnectDB opens the SQL backend selected by cfg.Storage.Driver
// (postgres or sqlite) and applies the embedded migrations.
func ConnectDB(cfg *config.Config) (*DB, error) {
	driverName, dsn, err := dataSource(cfg.Storage)
	if err != nil {
		return nil, err
	}

	log.Printf("Connecting to %s storage", cfg.Storage.Driver)

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	switch driverName {
	case "sqlite3":
		// a single writer keeps sqlite from returning SQLITE_BUSY
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	dbStruct := &DB{db}

	if err := dbStruct.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	return dbStruct, nil
}

func dataSource(st config.Storage) (string, string, error) {
	switch st.Driver {
	case config.DriverPostgres:
		return "postgres", fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			st.DB.DbHOST,
			st.DB.DbPORT,
			st.DB.DbUSER,
			st.DB.DbPASSWORD,
			st.DB.DbNAME,
			st.DB.DbSSLMODE,
		), nil
	case config.DriverSQLite:
		return "sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", st.SQLitePath), nil
	default:
		return "", "", fmt.Errorf("driver %q is not an SQL backend", st.Driver)
	}
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations executes every embedded migration in file name order. The
// statements are idempotent.
func (db *DB) RunMigrations() error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		migrationSQL, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		if _, err := db.Exec(string(migrationSQL)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}

	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}

func (db *DB) GetDB() *DB {
	return db
}
