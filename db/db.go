package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/saeidalz13/battleship-cpu/db/local"
	"github.com/saeidalz13/battleship-cpu/db/sqlc"
)

const (
	maxOpenConns = 300
	maxIdleConns = 100
	connMaxLife  = time.Minute * 15
)

func Migrate(db *sql.DB, migrationDir string, log zerolog.Logger) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{
		DatabaseName: "battleship",
	})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationDir, "battleship", driver)
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at migration version %d", version)
	}
	log.Info().Uint("version", version).Msg("current migration version")

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	log.Info().Msg("migration successful...")
	return nil
}

func ConnectToDb(psqlUrl string) (*sql.DB, error) {
	// Open may just validate its arguments without creating a connection to the database
	db, err := sql.Open("postgres", psqlUrl)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	// set db pool custom configs
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLife)
	return db, nil
}

type Options struct {
	DatabaseUrl  string
	MigrationDir string
	LocalDbPath  string
}

// NewQuerier returns the postgres queries when DatabaseUrl is set and
// reachable, and the local SQLite store otherwise. The closer releases
// whichever database was opened.
func NewQuerier(opts Options, log zerolog.Logger) (sqlc.Querier, io.Closer, error) {
	if opts.DatabaseUrl != "" {
		psql, err := ConnectToDb(opts.DatabaseUrl)
		if err == nil {
			if err = Migrate(psql, opts.MigrationDir, log); err == nil {
				log.Info().Msg("Connected to postgres database")
				return sqlc.New(psql), psql, nil
			}
			_ = psql.Close()
		}
		log.Error().Err(err).Msg("Failed to use postgres database, trying SQLite")
	}

	store, err := local.Open(opts.LocalDbPath, log)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}
