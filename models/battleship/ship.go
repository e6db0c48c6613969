package battleship

import (
	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

type Ship struct {
	size     int
	gridSize int

	// locations keeps the placement order, locationSet answers membership
	locations   []Coordinates
	locationSet map[Coordinates]struct{}
	hits        map[Coordinates]struct{}
}

func NewShip(size int, rules Rules) (*Ship, error) {
	if !rules.IsShipSizeValid(size) {
		return nil, cerr.ErrShipSizeOutOfRange(size, rules.MinShipSize, rules.MaxShipSize)
	}

	return &Ship{
		size:        size,
		gridSize:    rules.GridSize,
		locations:   make([]Coordinates, 0, size),
		locationSet: make(map[Coordinates]struct{}, size),
		hits:        make(map[Coordinates]struct{}, size),
	}, nil
}

func (sh *Ship) Size() int {
	return sh.size
}

// Adding the same coordinates twice is a no-op.
func (sh *Ship) AddLocation(c Coordinates) error {
	if !c.InBounds(sh.gridSize) {
		return cerr.ErrCoordinateOutOfGridBound(c.Row, c.Col)
	}

	if _, prs := sh.locationSet[c]; prs {
		return nil
	}
	sh.locationSet[c] = struct{}{}
	sh.locations = append(sh.locations, c)
	return nil
}

func (sh *Ship) Hit(c Coordinates) error {
	if !c.InBounds(sh.gridSize) {
		return cerr.ErrCoordinateOutOfGridBound(c.Row, c.Col)
	}
	if !sh.IsAtLocation(c) {
		return cerr.ErrCoordinateNotPartOfShip(c.Row, c.Col)
	}
	if sh.IsSunk() {
		return cerr.ErrShipAlreadySunk(sh.size)
	}

	sh.hits[c] = struct{}{}
	return nil
}

func (sh *Ship) IsSunk() bool {
	return len(sh.locations) == sh.size && len(sh.hits) == len(sh.locations)
}

func (sh *Ship) IsAtLocation(c Coordinates) bool {
	_, prs := sh.locationSet[c]
	return prs
}

func (sh *Ship) IsHit(c Coordinates) bool {
	_, prs := sh.hits[c]
	return prs
}

func (sh *Ship) Locations() []Coordinates {
	locations := make([]Coordinates, len(sh.locations))
	copy(locations, sh.locations)
	return locations
}

// Hits are returned in placement order.
func (sh *Ship) Hits() []Coordinates {
	hits := make([]Coordinates, 0, len(sh.hits))
	for _, c := range sh.locations {
		if sh.IsHit(c) {
			hits = append(hits, c)
		}
	}
	return hits
}

func (sh *Ship) clone() *Ship {
	cp := &Ship{
		size:        sh.size,
		gridSize:    sh.gridSize,
		locations:   sh.Locations(),
		locationSet: make(map[Coordinates]struct{}, len(sh.locationSet)),
		hits:        make(map[Coordinates]struct{}, len(sh.hits)),
	}
	for c := range sh.locationSet {
		cp.locationSet[c] = struct{}{}
	}
	for c := range sh.hits {
		cp.hits[c] = struct{}{}
	}
	return cp
}
