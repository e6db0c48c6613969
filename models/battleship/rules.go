package battleship

import (
	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

const (
	GameDifficultyEasy uint8 = iota
	GameDifficultyNormal
	GameDifficultyHard
)

const (
	GridSizeEasy   int = 6
	GridSizeNormal int = 10
	GridSizeHard   int = 12
)

const (
	DefaultMinShipSize          = 1
	DefaultMaxShipSize          = 4
	DefaultMaxPlacementAttempts = 100
)

// ShipSpec is one entry of a fleet manifest.
type ShipSpec struct {
	Size  int `json:"size"`
	Count int `json:"count"`
}

type Rules struct {
	GridSize             int        `json:"grid_size"`
	Manifest             []ShipSpec `json:"manifest"`
	MinShipSize          int        `json:"min_ship_size"`
	MaxShipSize          int        `json:"max_ship_size"`
	MaxPlacementAttempts int        `json:"-"`

	// When set, no ship cell may be in the 8-neighbourhood
	// of a cell of another ship in the same fleet.
	SeparateShips bool `json:"separate_ships"`
}

// Classic 10x10 fleet: one 4, two 3s, three 2s, four 1s
func DefaultRules() Rules {
	return Rules{
		GridSize: GridSizeNormal,
		Manifest: []ShipSpec{
			{Size: 4, Count: 1},
			{Size: 3, Count: 2},
			{Size: 2, Count: 3},
			{Size: 1, Count: 4},
		},
		MinShipSize:          DefaultMinShipSize,
		MaxShipSize:          DefaultMaxShipSize,
		MaxPlacementAttempts: DefaultMaxPlacementAttempts,
	}
}

func RulesForDifficulty(difficulty uint8) (Rules, error) {
	rules := DefaultRules()

	switch difficulty {
	case GameDifficultyEasy:
		rules.GridSize = GridSizeEasy
		rules.Manifest = []ShipSpec{
			{Size: 3, Count: 1},
			{Size: 2, Count: 2},
			{Size: 1, Count: 2},
		}
	case GameDifficultyNormal:
	case GameDifficultyHard:
		rules.GridSize = GridSizeHard
	default:
		return Rules{}, cerr.ErrInvalidGameDifficulty(difficulty)
	}

	return rules, nil
}

// FleetSize is the total number of ships the manifest describes.
func (r Rules) FleetSize() int {
	total := 0
	for _, spec := range r.Manifest {
		total += spec.Count
	}
	return total
}

func (r Rules) IsShipSizeValid(size int) bool {
	return size >= r.MinShipSize && size <= r.MaxShipSize
}
