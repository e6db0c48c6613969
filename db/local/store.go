// Package local keeps the analytics counters in a SQLite file when
// no postgres database is configured or reachable.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/saeidalz13/battleship-cpu/db/sqlc"
	"github.com/sqlc-dev/pqtype"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	columnGamesCreated = "games_created"
	columnPlayerWins   = "player_wins"
	columnCpuWins      = "cpu_wins"
)

// GameServerAnalytics mirrors the postgres table. The server
// address is kept in its CIDR text form.
type GameServerAnalytics struct {
	ServerIp     string `gorm:"primaryKey"`
	GamesCreated int64  `gorm:"not null;default:0"`
	PlayerWins   int64  `gorm:"not null;default:0"`
	CpuWins      int64  `gorm:"not null;default:0"`
}

func (GameServerAnalytics) TableName() string {
	return "game_server_analytics"
}

type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

var _ sqlc.Querier = (*Store)(nil)

// Open opens (or creates) the SQLite file at path.
// An empty path keeps everything in memory.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local SQLite DB: %w", err)
	}

	return NewStore(db, log.With().Str("path", dsn).Logger())
}

// NewStore migrates the analytics table on db
func NewStore(db *gorm.DB, log zerolog.Logger) (*Store, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// one connection so an in-memory database is shared by every query
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&GameServerAnalytics{}); err != nil {
		return nil, fmt.Errorf("failed to migrate game_server_analytics: %w", err)
	}

	log.Info().Msg("Using local SQLite DB for analytics")
	return &Store{db: db, logger: log}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) AnalyticsIncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	return s.increment(ctx, serverIp, columnGamesCreated)
}

func (s *Store) AnalyticsIncrementPlayerWinsCount(ctx context.Context, serverIp pqtype.Inet) error {
	return s.increment(ctx, serverIp, columnPlayerWins)
}

func (s *Store) AnalyticsIncrementCpuWinsCount(ctx context.Context, serverIp pqtype.Inet) error {
	return s.increment(ctx, serverIp, columnCpuWins)
}

func (s *Store) AnalyticsGetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row, err := s.find(ctx, serverIp)
	return row.GamesCreated, err
}

func (s *Store) AnalyticsGetPlayerWinsCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row, err := s.find(ctx, serverIp)
	return row.PlayerWins, err
}

func (s *Store) AnalyticsGetCpuWinsCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row, err := s.find(ctx, serverIp)
	return row.CpuWins, err
}

func (s *Store) increment(ctx context.Context, serverIp pqtype.Inet, column string) error {
	key := serverKey(serverIp)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := GameServerAnalytics{ServerIp: key}
		if err := tx.FirstOrCreate(&row, GameServerAnalytics{ServerIp: key}).Error; err != nil {
			return err
		}

		return tx.Model(&GameServerAnalytics{}).
			Where("server_ip = ?", key).
			UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
	})
}

// Same contract as the postgres queries: a missing row is sql.ErrNoRows
func (s *Store) find(ctx context.Context, serverIp pqtype.Inet) (GameServerAnalytics, error) {
	var row GameServerAnalytics

	err := s.db.WithContext(ctx).Where("server_ip = ?", serverKey(serverIp)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return GameServerAnalytics{}, sql.ErrNoRows
	}
	return row, err
}

func serverKey(serverIp pqtype.Inet) string {
	if !serverIp.Valid {
		return ""
	}
	return serverIp.IPNet.String()
}
