package sqlc

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalytics(t *testing.T) (*AnalyticsManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	serverIp := pqtype.Inet{
		IPNet: net.IPNet{IP: net.IPv4(10, 0, 0, 7), Mask: net.CIDRMask(24, 32)},
		Valid: true,
	}
	return NewDbManager(New(db), serverIp).Analytics, mock
}

func TestAnalyticsIncrements(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		increment func(*AnalyticsManager, context.Context) error
	}{
		{
			name:      "games created",
			query:     `INSERT INTO game_server_analytics \(server_ip, games_created\)`,
			increment: (*AnalyticsManager).IncrementGamesCreatedCount,
		},
		{
			name:      "player wins",
			query:     `INSERT INTO game_server_analytics \(server_ip, player_wins\)`,
			increment: (*AnalyticsManager).IncrementPlayerWinsCount,
		},
		{
			name:      "cpu wins",
			query:     `INSERT INTO game_server_analytics \(server_ip, cpu_wins\)`,
			increment: (*AnalyticsManager).IncrementCpuWinsCount,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			analytics, mock := newTestAnalytics(t)

			mock.ExpectExec(test.query).
				WithArgs(analytics.ServerIp()).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, test.increment(analytics, context.Background()))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAnalyticsIncrementError(t *testing.T) {
	analytics, mock := newTestAnalytics(t)
	dbErr := errors.New("connection reset")

	mock.ExpectExec(`INSERT INTO game_server_analytics`).WillReturnError(dbErr)

	err := analytics.IncrementGamesCreatedCount(context.Background())
	require.ErrorIs(t, err, dbErr)
}

func TestAnalyticsGetGamesCreatedCount(t *testing.T) {
	analytics, mock := newTestAnalytics(t)

	mock.ExpectQuery(`SELECT games_created FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(analytics.ServerIp()).
		WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(3))

	gamesCreated, err := analytics.GetGamesCreatedCount(context.Background())
	require.NoError(t, err)
	if gamesCreated != 3 {
		t.Fatalf("expected games created: %d\tgot: %d", 3, gamesCreated)
	}
}

func TestAnalyticsSnapshot(t *testing.T) {
	t.Run("existing row", func(t *testing.T) {
		analytics, mock := newTestAnalytics(t)

		mock.ExpectQuery(`SELECT games_created`).WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(5))
		mock.ExpectQuery(`SELECT player_wins`).WillReturnRows(sqlmock.NewRows([]string{"player_wins"}).AddRow(2))
		mock.ExpectQuery(`SELECT cpu_wins`).WillReturnRows(sqlmock.NewRows([]string{"cpu_wins"}).AddRow(1))

		snapshot, err := analytics.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, AnalyticsSnapshot{GamesCreated: 5, PlayerWins: 2, CpuWins: 1}, snapshot)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row yet", func(t *testing.T) {
		analytics, mock := newTestAnalytics(t)

		mock.ExpectQuery(`SELECT games_created`).WillReturnError(sql.ErrNoRows)

		snapshot, err := analytics.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Zero(t, snapshot)
	})
}
