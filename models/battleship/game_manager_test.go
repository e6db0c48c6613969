package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSeed(seed int64) func() int64 {
	return func() int64 { return seed }
}

func TestCreateGame(t *testing.T) {
	tests := []struct {
		name             string
		difficulty       uint8
		expectedGridSize int
	}{
		{name: "easy", difficulty: GameDifficultyEasy, expectedGridSize: GridSizeEasy},
		{name: "normal", difficulty: GameDifficultyNormal, expectedGridSize: GridSizeNormal},
		{name: "hard", difficulty: GameDifficultyHard, expectedGridSize: GridSizeHard},
	}

	bgm := NewBattleshipGameManager(WithSeedSource(fixedSeed(1)))

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game, err := bgm.CreateGame(test.difficulty)
			require.NoError(t, err)

			if game.State.GridSize() != test.expectedGridSize {
				t.Fatalf("expected grid size: %d\tgot: %d", test.expectedGridSize, game.State.GridSize())
			}
			assert.Len(t, game.Uuid(), 6)
			assert.Equal(t, test.difficulty, game.Difficulty())
			assert.True(t, game.State.IsInitialized())
			assert.False(t, game.CreatedAt().IsZero())
		})
	}

	assert.Equal(t, len(tests), bgm.CountGames())
}

func TestCreateGameInvalidDifficulty(t *testing.T) {
	bgm := NewBattleshipGameManager()

	_, err := bgm.CreateGame(GameDifficultyHard + 1)
	require.Error(t, err)
	assert.Zero(t, bgm.CountGames())
}

func TestCreateGamePlacementExhausted(t *testing.T) {
	bgm := NewBattleshipGameManager(WithMaxPlacementAttempts(0))

	_, err := bgm.CreateGame(GameDifficultyNormal)
	require.ErrorIs(t, err, cerr.ErrPlacementExhausted)
	assert.Zero(t, bgm.CountGames())
}

func TestCreateGameSeparateShips(t *testing.T) {
	bgm := NewBattleshipGameManager(WithSeparateShips(true), WithMaxPlacementAttempts(10000), WithSeedSource(fixedSeed(3)))

	game, err := bgm.CreateGame(GameDifficultyHard)
	require.NoError(t, err)
	assert.True(t, game.State.Rules().SeparateShips)
}

func TestGetAndTerminateGame(t *testing.T) {
	bgm := NewBattleshipGameManager()

	game, err := bgm.CreateGame(GameDifficultyEasy)
	require.NoError(t, err)

	fetched, err := bgm.GetGame(game.Uuid())
	require.NoError(t, err)
	assert.Same(t, game, fetched)

	bgm.TerminateGame(game.Uuid())

	_, err = bgm.GetGame(game.Uuid())
	if !errors.Is(err, cerr.ErrNotFound) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrNotFound, err)
	}
	assert.Zero(t, bgm.CountGames())
}

func TestPlayFullGame(t *testing.T) {
	bgm := NewBattleshipGameManager(WithSeedSource(fixedSeed(2024)))

	game, err := bgm.CreateGame(GameDifficultyNormal)
	require.NoError(t, err)

	gridSize := game.State.GridSize()
	turns := 0
	for row := 0; row < gridSize && !game.State.IsGameOver(); row++ {
		for col := 0; col < gridSize && !game.State.IsGameOver(); col++ {
			_, err := game.PlayerAttack(NewCoordinates(row, col))
			require.NoError(t, err)
			turns++

			if game.State.IsGameOver() {
				break
			}

			result, err := game.CpuAttack()
			require.NoError(t, err)
			require.True(t, result.Coordinates.InBounds(gridSize))
		}
	}

	require.True(t, game.State.IsGameOver())
	assert.NotEqual(t, SideNone, game.State.Winner())
	assert.LessOrEqual(t, turns, gridSize*gridSize)

	_, err = game.PlayerAttack(NewCoordinates(0, 0))
	require.ErrorIs(t, err, cerr.ErrGameOver)
	_, err = game.CpuAttack()
	require.ErrorIs(t, err, cerr.ErrGameOver)
}

// Replays ids in order and repeats the last one
func sequenceUuidSource(ids ...string) func() string {
	next := 0
	return func() string {
		id := ids[next]
		if next < len(ids)-1 {
			next++
		}
		return id
	}
}

func TestCreateGameUuidCollision(t *testing.T) {
	t.Run("colliding uuid is drawn again", func(t *testing.T) {
		bgm := NewBattleshipGameManager(WithGameUuidSource(sequenceUuidSource("aaaaaa", "aaaaaa", "bbbbbb")))

		first, err := bgm.CreateGame(GameDifficultyEasy)
		require.NoError(t, err)
		second, err := bgm.CreateGame(GameDifficultyEasy)
		require.NoError(t, err)

		assert.Equal(t, "aaaaaa", first.Uuid())
		assert.Equal(t, "bbbbbb", second.Uuid())
		assert.Equal(t, 2, bgm.CountGames())

		// terminating one game leaves the other registered
		bgm.TerminateGame(second.Uuid())
		got, err := bgm.GetGame(first.Uuid())
		require.NoError(t, err)
		assert.Same(t, first, got)
	})

	t.Run("no unused uuid left", func(t *testing.T) {
		bgm := NewBattleshipGameManager(WithGameUuidSource(func() string { return "aaaaaa" }))

		first, err := bgm.CreateGame(GameDifficultyNormal)
		require.NoError(t, err)

		_, err = bgm.CreateGame(GameDifficultyNormal)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no unused game uuid")

		got, err := bgm.GetGame("aaaaaa")
		require.NoError(t, err)
		assert.Same(t, first, got)
		assert.Equal(t, 1, bgm.CountGames())
	})
}
