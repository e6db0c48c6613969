package battleship

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Game pairs a game state with the CPU player attacking it.
type Game struct {
	uuid       string
	difficulty uint8
	createdAt  time.Time

	State *GameState
	Cpu   *GameAI
}

func newGameUuid() string {
	return uuid.NewString()[:6]
}

func newGame(gameUuid string, difficulty uint8, rules Rules, seed int64, logger zerolog.Logger) *Game {
	rng := rand.New(rand.NewSource(seed))
	state := NewGameState(rules, rng, WithLogger(logger.With().Str("game", gameUuid).Logger()))

	return &Game{
		uuid:       gameUuid,
		difficulty: difficulty,
		createdAt:  time.Now(),
		State:      state,
		Cpu:        NewGameAI(state, rules, rng),
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Difficulty() uint8 {
	return g.difficulty
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

// Plays one player guess against the opponent fleet.
func (g *Game) PlayerAttack(c Coordinates) (GuessResult, error) {
	return g.State.ProcessGuess(SidePlayer, c)
}

// Lets the CPU play one guess and feeds the result back to it.
func (g *Game) CpuAttack() (GuessResult, error) {
	result, err := g.State.ProcessCpuGuess(g.Cpu)
	if err != nil {
		return GuessResult{}, err
	}
	g.Cpu.Observe(result)
	return result, nil
}
