package battleship

import (
	"math/rand"

	"github.com/rs/zerolog"
	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

type GuessType string

const (
	GuessTypeHit  GuessType = "hit"
	GuessTypeMiss GuessType = "miss"
)

type GuessResult struct {
	Type        GuessType   `json:"type"`
	Coordinates Coordinates `json:"coordinates"`

	// Set when this guess sank a ship
	Sunk             bool          `json:"sunk"`
	SunkShipSize     int           `json:"sunk_ship_size,omitempty"`
	SunkShipLocation []Coordinates `json:"sunk_ship_location,omitempty"`
}

// Guesser produces CPU guesses. GameAI satisfies it.
type Guesser interface {
	MakeGuess() (Coordinates, error)
}

// GameState owns both fleets and the guess history of both sides.
// It is not safe for concurrent use; one controller owns it.
type GameState struct {
	rules       Rules
	rng         *rand.Rand
	logger      zerolog.Logger
	initialized bool

	playerShips   []*Ship
	opponentShips []*Ship

	guesses map[Side]map[Coordinates]struct{}
}

type GameStateOption func(*GameState)

func WithLogger(logger zerolog.Logger) GameStateOption {
	return func(gs *GameState) {
		gs.logger = logger
	}
}

func NewGameState(rules Rules, rng *rand.Rand, opts ...GameStateOption) *GameState {
	gs := &GameState{
		rules:  rules,
		rng:    rng,
		logger: zerolog.Nop(),
		guesses: map[Side]map[Coordinates]struct{}{
			SidePlayer:   make(map[Coordinates]struct{}),
			SideOpponent: make(map[Coordinates]struct{}),
		},
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs
}

// Places both fleets. The two passes are independent of each other.
// A PlacementExhausted error leaves the game uninitialized.
func (gs *GameState) Initialize() error {
	if gs.initialized {
		return cerr.ErrGameAlreadyInitialized()
	}

	playerShips, err := placeFleet(gs.rules, gs.rng)
	if err != nil {
		return err
	}
	opponentShips, err := placeFleet(gs.rules, gs.rng)
	if err != nil {
		return err
	}

	gs.playerShips = playerShips
	gs.opponentShips = opponentShips
	gs.initialized = true

	gs.logger.Debug().
		Int("grid_size", gs.rules.GridSize).
		Int("fleet_size", len(playerShips)).
		Msg("fleets placed")
	return nil
}

func (gs *GameState) IsInitialized() bool {
	return gs.initialized
}

func (gs *GameState) Rules() Rules {
	return gs.rules
}

func (gs *GameState) GridSize() int {
	return gs.rules.GridSize
}

func (gs *GameState) PlayerShips() []*Ship {
	return cloneFleet(gs.playerShips)
}

func (gs *GameState) OpponentShips() []*Ship {
	return cloneFleet(gs.opponentShips)
}

// Reports whether side has already attacked c.
func (gs *GameState) IsCellGuessed(side Side, c Coordinates) bool {
	guesses, prs := gs.guesses[side]
	if !prs {
		return false
	}
	_, guessed := guesses[c]
	return guessed
}

func (gs *GameState) ProcessGuess(side Side, c Coordinates) (GuessResult, error) {
	if !gs.initialized {
		return GuessResult{}, cerr.ErrGameNotInitialized()
	}
	if gs.IsGameOver() {
		return GuessResult{}, cerr.ErrGameIsOver()
	}
	if !side.IsValid() || !c.InBounds(gs.rules.GridSize) {
		return GuessResult{}, cerr.ErrCoordinateOutOfGridBound(c.Row, c.Col)
	}
	if gs.IsCellGuessed(side, c) {
		return GuessResult{}, cerr.ErrCoordinateAlreadyGuessed(c.Row, c.Col)
	}

	gs.guesses[side][c] = struct{}{}

	ship := findShipAt(gs.fleetAttackedBy(side), c)
	if ship == nil {
		return GuessResult{Type: GuessTypeMiss, Coordinates: c}, nil
	}

	if err := ship.Hit(c); err != nil {
		return GuessResult{}, err
	}

	result := GuessResult{Type: GuessTypeHit, Coordinates: c}
	if ship.IsSunk() {
		result.Sunk = true
		result.SunkShipSize = ship.Size()
		result.SunkShipLocation = ship.Locations()
	}

	if gs.IsGameOver() {
		gs.logger.Debug().Str("winner", side.String()).Msg("game over")
	}
	return result, nil
}

// Plays one CPU turn. A guess that collides with the CPU guess
// history is drawn again; the number of draws is bounded by the
// number of cells on the grid.
func (gs *GameState) ProcessCpuGuess(guesser Guesser) (GuessResult, error) {
	if !gs.initialized {
		return GuessResult{}, cerr.ErrGameNotInitialized()
	}
	if gs.IsGameOver() {
		return GuessResult{}, cerr.ErrGameIsOver()
	}

	maxDraws := gs.rules.GridSize * gs.rules.GridSize
	for draw := 0; draw < maxDraws; draw++ {
		c, err := guesser.MakeGuess()
		if err != nil {
			return GuessResult{}, err
		}

		if gs.IsCellGuessed(SideOpponent, c) {
			gs.logger.Warn().Stringer("coordinates", c).Msg("cpu guess collided with its own history; drawing again")
			continue
		}
		return gs.ProcessGuess(SideOpponent, c)
	}

	return GuessResult{}, cerr.ErrNoUnguessedCell()
}

func (gs *GameState) IsGameOver() bool {
	if !gs.initialized {
		return false
	}
	return isFleetSunk(gs.playerShips) || isFleetSunk(gs.opponentShips)
}

// Winner returns SideNone while the game is running.
func (gs *GameState) Winner() Side {
	if !gs.initialized {
		return SideNone
	}
	if isFleetSunk(gs.opponentShips) {
		return SidePlayer
	}
	if isFleetSunk(gs.playerShips) {
		return SideOpponent
	}
	return SideNone
}

// Number of ships of the fleet attacked by side that are not sunk yet.
func (gs *GameState) RemainingShips(side Side) int {
	remaining := 0
	for _, ship := range gs.fleetAttackedBy(side) {
		if !ship.IsSunk() {
			remaining++
		}
	}
	return remaining
}

// Builds the defence grid of the fleet owned by side, with the
// hits and misses of the other side on it.
func (gs *GameState) DefenceGrid(side Side) Grid {
	grid := NewGrid(gs.rules.GridSize)

	for c := range gs.guesses[side.Other()] {
		grid[c.Row][c.Col] = PositionStateDefenceGridMiss
	}
	for _, ship := range gs.fleetOwnedBy(side) {
		for _, c := range ship.locations {
			if ship.IsHit(c) {
				grid[c.Row][c.Col] = PositionStateDefenceGridHit
				continue
			}
			grid[c.Row][c.Col] = PositionStateDefenceGridShip
		}
	}
	return grid
}

// Text rendering of DefenceGrid, used in debug logs
func (gs *GameState) RenderFleet(side Side) string {
	return gs.DefenceGrid(side).String()
}

func (gs *GameState) fleetOwnedBy(side Side) []*Ship {
	switch side {
	case SidePlayer:
		return gs.playerShips
	case SideOpponent:
		return gs.opponentShips
	}
	return nil
}

func (gs *GameState) fleetAttackedBy(side Side) []*Ship {
	return gs.fleetOwnedBy(side.Other())
}

func findShipAt(fleet []*Ship, c Coordinates) *Ship {
	for _, ship := range fleet {
		if ship.IsAtLocation(c) {
			return ship
		}
	}
	return nil
}

func isFleetSunk(fleet []*Ship) bool {
	if len(fleet) == 0 {
		return false
	}
	for _, ship := range fleet {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}

func cloneFleet(fleet []*Ship) []*Ship {
	cp := make([]*Ship, len(fleet))
	for i, ship := range fleet {
		cp[i] = ship.clone()
	}
	return cp
}
