package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

// Places a whole fleet following the manifest. Every ship gets up to
// MaxPlacementAttempts random anchor/direction draws; the first draw
// that stays on the grid and does not collide with the already placed
// ships wins.
func placeFleet(rules Rules, rng *rand.Rand) ([]*Ship, error) {
	fleet := make([]*Ship, 0, rules.FleetSize())
	occupied := make(map[Coordinates]struct{}, rules.GridSize*rules.GridSize)

	for _, spec := range rules.Manifest {
		for i := 0; i < spec.Count; i++ {
			ship, err := placeShip(spec.Size, rules, rng, occupied)
			if err != nil {
				return nil, err
			}
			fleet = append(fleet, ship)
		}
	}

	return fleet, nil
}

func placeShip(size int, rules Rules, rng *rand.Rand, occupied map[Coordinates]struct{}) (*Ship, error) {
	ship, err := NewShip(size, rules)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < rules.MaxPlacementAttempts; attempt++ {
		anchor := NewCoordinates(rng.Intn(rules.GridSize), rng.Intn(rules.GridSize))
		direction := Directions[rng.Intn(len(Directions))]

		cells, ok := candidateCells(anchor, direction, size, rules, occupied)
		if !ok {
			continue
		}

		for _, c := range cells {
			if err := ship.AddLocation(c); err != nil {
				return nil, err
			}
			occupied[c] = struct{}{}
		}
		return ship, nil
	}

	return nil, cerr.ErrShipPlacementExhausted(size, rules.MaxPlacementAttempts)
}

func candidateCells(anchor Coordinates, direction Direction, size int, rules Rules, occupied map[Coordinates]struct{}) ([]Coordinates, bool) {
	cells := make([]Coordinates, size)

	for i := 0; i < size; i++ {
		c := anchor.Step(direction, i)
		if !c.InBounds(rules.GridSize) {
			return nil, false
		}
		if _, taken := occupied[c]; taken {
			return nil, false
		}
		if rules.SeparateShips && touchesOccupied(c, occupied) {
			return nil, false
		}
		cells[i] = c
	}

	return cells, true
}

func touchesOccupied(c Coordinates, occupied map[Coordinates]struct{}) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if _, taken := occupied[NewCoordinates(c.Row+dr, c.Col+dc)]; taken {
				return true
			}
		}
	}
	return false
}
