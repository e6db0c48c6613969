package sqlc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sqlc-dev/pqtype"
)

// Counters of one game server
type AnalyticsSnapshot struct {
	GamesCreated int64 `json:"games_created"`
	PlayerWins   int64 `json:"player_wins"`
	CpuWins      int64 `json:"cpu_wins"`
}

// AnalyticsManager binds the analytics queries to the
// address of this server and bounds every call by
// QuerierCtxTimeout.
type AnalyticsManager struct {
	queries  Querier
	serverIp pqtype.Inet
}

func NewAnalyticsManager(queries Querier, serverIp pqtype.Inet) *AnalyticsManager {
	return &AnalyticsManager{queries: queries, serverIp: serverIp}
}

func (a *AnalyticsManager) ServerIp() pqtype.Inet {
	return a.serverIp
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.AnalyticsIncrementGamesCreatedCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) IncrementPlayerWinsCount(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.AnalyticsIncrementPlayerWinsCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) IncrementCpuWinsCount(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.AnalyticsIncrementCpuWinsCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.AnalyticsGetGamesCreatedCount(ctx, a.serverIp)
}

// A server without a row yet reads as all zeros
func (a *AnalyticsManager) Snapshot(ctx context.Context) (AnalyticsSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	var snapshot AnalyticsSnapshot
	var err error

	if snapshot.GamesCreated, err = a.queries.AnalyticsGetGamesCreatedCount(ctx, a.serverIp); err != nil {
		return zeroOnNoRows(err)
	}
	if snapshot.PlayerWins, err = a.queries.AnalyticsGetPlayerWinsCount(ctx, a.serverIp); err != nil {
		return zeroOnNoRows(err)
	}
	if snapshot.CpuWins, err = a.queries.AnalyticsGetCpuWinsCount(ctx, a.serverIp); err != nil {
		return zeroOnNoRows(err)
	}
	return snapshot, nil
}

func zeroOnNoRows(err error) (AnalyticsSnapshot, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return AnalyticsSnapshot{}, nil
	}
	return AnalyticsSnapshot{}, err
}
