package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

type ShotOutcome string

const (
	ShotOutcomeHit  ShotOutcome = "hit"
	ShotOutcomeMiss ShotOutcome = "miss"
	ShotOutcomeSunk ShotOutcome = "sunk"
)

// GuessView is the read-only part of GameState the AI relies on.
type GuessView interface {
	IsCellGuessed(side Side, c Coordinates) bool
	GridSize() int
}

// GameAI is the CPU player. It hunts with uniformly random guesses
// until it lands a hit, then targets the cells around that hit one
// direction at a time until the ship is reported sunk.
type GameAI struct {
	view GuessView
	side Side
	rng  *rand.Rand

	targeting bool
	// firstHit starts the streak; lastHit is where the current
	// direction continues from
	firstHit            Coordinates
	lastHit             Coordinates
	currentDirection    Direction
	remainingDirections map[Direction]bool
	// hits landed since firstHit, firstHit included
	streakHits int

	remainingShips map[int]int
}

func NewGameAI(view GuessView, rules Rules, rng *rand.Rand) *GameAI {
	remainingShips := make(map[int]int, len(rules.Manifest))
	for _, spec := range rules.Manifest {
		remainingShips[spec.Size] += spec.Count
	}

	return &GameAI{
		view:           view,
		side:           SideOpponent,
		rng:            rng,
		remainingShips: remainingShips,
	}
}

func (ai *GameAI) IsTargeting() bool {
	return ai.targeting
}

func (ai *GameAI) CurrentDirection() Direction {
	return ai.currentDirection
}

// Sizes of the opponent ships that have not been confirmed sunk.
func (ai *GameAI) PossibleShipSizes() map[int]bool {
	sizes := make(map[int]bool, len(ai.remainingShips))
	for size, count := range ai.remainingShips {
		if count > 0 {
			sizes[size] = true
		}
	}
	return sizes
}

// MakeGuess never returns a guessed or out of grid cell. It returns
// NoCellsLeft only when every cell has been guessed.
func (ai *GameAI) MakeGuess() (Coordinates, error) {
	if ai.targeting {
		if c, ok := ai.nextTargetGuess(); ok {
			return c, nil
		}
		ai.resetHunt()
	}
	return ai.randomGuess()
}

func (ai *GameAI) UpdateState(c Coordinates, outcome ShotOutcome) {
	switch outcome {
	case ShotOutcomeHit:
		if !ai.targeting {
			ai.targeting = true
			ai.firstHit = c
			ai.lastHit = c
			ai.streakHits = 1
			ai.currentDirection = DirectionNone
			ai.remainingDirections = map[Direction]bool{
				DirectionUp:    true,
				DirectionRight: true,
				DirectionDown:  true,
				DirectionLeft:  true,
			}
			return
		}
		ai.lastHit = c
		ai.streakHits++

	case ShotOutcomeMiss:
		if ai.targeting && ai.currentDirection != DirectionNone {
			ai.abandonDirection()
		}

	// The sinking shot is the last cell of the ship, so the
	// confirmed size is the streak plus that shot.
	case ShotOutcomeSunk:
		size := 1
		if ai.targeting {
			size = ai.streakHits + 1
		}
		ai.markSunk(size)
	}
}

// Observe feeds a processed CPU guess back into the state machine.
func (ai *GameAI) Observe(result GuessResult) {
	switch {
	case result.Sunk:
		ai.markSunk(result.SunkShipSize)
	case result.Type == GuessTypeHit:
		ai.UpdateState(result.Coordinates, ShotOutcomeHit)
	default:
		ai.UpdateState(result.Coordinates, ShotOutcomeMiss)
	}
}

func (ai *GameAI) nextTargetGuess() (Coordinates, bool) {
	if ai.currentDirection != DirectionNone {
		next := ai.lastHit.Step(ai.currentDirection, 1)
		if ai.isCandidate(next) {
			return next, true
		}
		ai.abandonDirection()
	}

	for _, d := range Directions {
		if !ai.remainingDirections[d] {
			continue
		}

		next := ai.lastHit.Step(d, 1)
		if ai.isCandidate(next) {
			ai.currentDirection = d
			return next, true
		}
		delete(ai.remainingDirections, d)
	}

	return Coordinates{}, false
}

// Drops the current direction and goes back to the first hit of the
// streak so the remaining directions are probed from there.
func (ai *GameAI) abandonDirection() {
	delete(ai.remainingDirections, ai.currentDirection)
	ai.currentDirection = DirectionNone
	ai.lastHit = ai.firstHit
}

// Goes back to hunting and drops one ship of size from the
// possible sizes. A size with no ship left is ignored.
func (ai *GameAI) markSunk(size int) {
	ai.resetHunt()
	if ai.remainingShips[size] > 0 {
		ai.remainingShips[size]--
	}
}

func (ai *GameAI) resetHunt() {
	ai.targeting = false
	ai.firstHit = Coordinates{}
	ai.lastHit = Coordinates{}
	ai.currentDirection = DirectionNone
	ai.remainingDirections = nil
	ai.streakHits = 0
}

func (ai *GameAI) randomGuess() (Coordinates, error) {
	gridSize := ai.view.GridSize()
	candidates := make([]Coordinates, 0, gridSize*gridSize)

	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			c := NewCoordinates(row, col)
			if !ai.view.IsCellGuessed(ai.side, c) {
				candidates = append(candidates, c)
			}
		}
	}

	if len(candidates) == 0 {
		return Coordinates{}, cerr.ErrNoUnguessedCell()
	}
	return candidates[ai.rng.Intn(len(candidates))], nil
}

func (ai *GameAI) isCandidate(c Coordinates) bool {
	return c.InBounds(ai.view.GridSize()) && !ai.view.IsCellGuessed(ai.side, c)
}
