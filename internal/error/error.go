package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed = "attack operation failed"
	ConstErrCreateGame   = "failed to create game"
)

// Sentinels are wrapped by the constructors below so
// callers can match them with errors.Is
var (
	ErrInvalidSize        = errors.New("invalid ship size")
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrNotPartOfShip      = errors.New("coordinate is not part of the ship")
	ErrAlreadySunk        = errors.New("ship is already sunk")
	ErrNotInitialized     = errors.New("game is not initialized")
	ErrAlreadyInitialized = errors.New("game is already initialized")
	ErrGameOver           = errors.New("game is over")
	ErrAlreadyGuessed     = errors.New("coordinate already guessed")
	ErrPlacementExhausted = errors.New("ship placement attempts exhausted")
	ErrNoCellsLeft        = errors.New("no unguessed cell left on the board")

	ErrNotFound = errors.New("not found")
)

func ErrShipSizeOutOfRange(size, min, max int) error {
	return fmt.Errorf("%w\tsize: %d\tvalid range: [%d, %d]", ErrInvalidSize, size, min, max)
}

func ErrCoordinateOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w: out of game grid bound\trow: %d\tcol: %d", ErrInvalidCoordinate, row, col)
}

func ErrCoordinateMissing() error {
	return fmt.Errorf("%w: row and col must both be provided", ErrInvalidCoordinate)
}

func ErrCoordinateNotPartOfShip(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrNotPartOfShip, row, col)
}

func ErrShipAlreadySunk(size int) error {
	return fmt.Errorf("%w\tsize: %d", ErrAlreadySunk, size)
}

func ErrGameNotInitialized() error {
	return ErrNotInitialized
}

func ErrGameAlreadyInitialized() error {
	return ErrAlreadyInitialized
}

func ErrGameIsOver() error {
	return ErrGameOver
}

func ErrCoordinateAlreadyGuessed(row, col int) error {
	return fmt.Errorf("%w by this side in previous rounds\trow: %d\tcol: %d", ErrAlreadyGuessed, row, col)
}

func ErrShipPlacementExhausted(size, attempts int) error {
	return fmt.Errorf("%w\tsize: %d\tattempts: %d", ErrPlacementExhausted, size, attempts)
}

func ErrNoUnguessedCell() error {
	return ErrNoCellsLeft
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s: %w", gameUuid, ErrNotFound)
}

func ErrGameUuidExhausted(draws int) error {
	return fmt.Errorf("no unused game uuid after %d draws", draws)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s: %w", sessionId, ErrNotFound)
}

func ErrSessionNotAwaitingReconnection(sessionId string) error {
	return fmt.Errorf("session is not waiting for a reconnection, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrInvalidGameDifficulty(difficulty uint8) error {
	return fmt.Errorf("invalid game difficulty: %d", difficulty)
}

func ErrNoActiveGame() error {
	return fmt.Errorf("session has no active game; create one first")
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("stage must be either dev or prod, got: %s", stage)
}
