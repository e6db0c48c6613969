package battleship

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

type GameManager interface {
	CreateGame(difficulty uint8) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	CountGames() int

	isDifficultyValid(uint8) bool
}

const maxGameUuidDraws = 10

type BattleshipGameManager struct {
	games map[string]*Game
	mu    sync.RWMutex

	maxPlacementAttempts int
	separateShips        bool
	seedSource           func() int64
	uuidSource           func() string
	logger               zerolog.Logger
}

var _ GameManager = (*BattleshipGameManager)(nil)

type GameManagerOption func(*BattleshipGameManager)

func WithMaxPlacementAttempts(attempts int) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.maxPlacementAttempts = attempts
	}
}

func WithSeparateShips(separate bool) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.separateShips = separate
	}
}

// Seeds the random source of every new game. Tests use a fixed seed.
func WithSeedSource(seedSource func() int64) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.seedSource = seedSource
	}
}

// Draws the ids of new games. An id already in use is drawn again.
func WithGameUuidSource(uuidSource func() string) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.uuidSource = uuidSource
	}
}

func WithGameLogger(logger zerolog.Logger) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.logger = logger
	}
}

func NewBattleshipGameManager(opts ...GameManagerOption) *BattleshipGameManager {
	bgm := &BattleshipGameManager{
		games:                make(map[string]*Game, 10),
		maxPlacementAttempts: DefaultMaxPlacementAttempts,
		seedSource:           func() int64 { return time.Now().UnixNano() },
		uuidSource:           newGameUuid,
		logger:               zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(bgm)
	}
	return bgm
}

// Creates and initializes a new game. Nothing is registered
// when the fleets cannot be placed.
func (bgm *BattleshipGameManager) CreateGame(difficulty uint8) (*Game, error) {
	if !bgm.isDifficultyValid(difficulty) {
		return nil, cerr.ErrInvalidGameDifficulty(difficulty)
	}

	rules, err := RulesForDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	rules.MaxPlacementAttempts = bgm.maxPlacementAttempts
	rules.SeparateShips = bgm.separateShips

	// The id stays reserved by the lock until the game is registered
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	gameUuid, err := bgm.drawGameUuid()
	if err != nil {
		return nil, err
	}

	game := newGame(gameUuid, difficulty, rules, bgm.seedSource(), bgm.logger)
	if err := game.State.Initialize(); err != nil {
		return nil, err
	}

	bgm.games[gameUuid] = game
	return game, nil
}

// Caller must hold bgm.mu
func (bgm *BattleshipGameManager) drawGameUuid() (string, error) {
	for draw := 0; draw < maxGameUuidDraws; draw++ {
		gameUuid := bgm.uuidSource()
		if _, prs := bgm.games[gameUuid]; !prs {
			return gameUuid, nil
		}
		bgm.logger.Warn().Str("game", gameUuid).Msg("game uuid already in use; drawing again")
	}
	return "", cerr.ErrGameUuidExhausted(maxGameUuidDraws)
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) CountGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}

func (bgm *BattleshipGameManager) isDifficultyValid(difficulty uint8) bool {
	return !(difficulty != GameDifficultyEasy && difficulty != GameDifficultyNormal && difficulty != GameDifficultyHard)
}
