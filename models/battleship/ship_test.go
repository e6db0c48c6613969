package battleship

import (
	"testing"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlacedShip(t *testing.T, cells ...Coordinates) *Ship {
	t.Helper()

	ship, err := NewShip(len(cells), DefaultRules())
	require.NoError(t, err)
	for _, c := range cells {
		require.NoError(t, ship.AddLocation(c))
	}
	return ship
}

func TestNewShip(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "size zero", size: 0, wantErr: true},
		{name: "negative size", size: -1, wantErr: true},
		{name: "above max", size: DefaultMaxShipSize + 1, wantErr: true},
		{name: "min size", size: DefaultMinShipSize},
		{name: "size two", size: 2},
		{name: "size three", size: 3},
		{name: "max size", size: DefaultMaxShipSize},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ship, err := NewShip(test.size, DefaultRules())
			if test.wantErr {
				require.ErrorIs(t, err, cerr.ErrInvalidSize)
				assert.Nil(t, ship)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.size, ship.Size())
			assert.False(t, ship.IsSunk())
			assert.Empty(t, ship.Hits())
			assert.Empty(t, ship.Locations())
		})
	}
}

func TestShipAddLocation(t *testing.T) {
	ship, err := NewShip(2, DefaultRules())
	require.NoError(t, err)

	outOfGrid := []Coordinates{{-1, 0}, {0, -1}, {GridSizeNormal, 0}, {0, GridSizeNormal}}
	for _, c := range outOfGrid {
		require.ErrorIs(t, ship.AddLocation(c), cerr.ErrInvalidCoordinate, "coordinates %s", c)
	}

	require.NoError(t, ship.AddLocation(NewCoordinates(4, 4)))
	require.NoError(t, ship.AddLocation(NewCoordinates(4, 4)))
	require.NoError(t, ship.AddLocation(NewCoordinates(4, 5)))

	assert.Equal(t, []Coordinates{{4, 4}, {4, 5}}, ship.Locations())
	assert.True(t, ship.IsAtLocation(Coordinates{Row: 4, Col: 5}))
	assert.False(t, ship.IsAtLocation(Coordinates{Row: 5, Col: 4}))
}

func TestShipHit(t *testing.T) {
	t.Run("all locations sink the ship", func(t *testing.T) {
		ship := newPlacedShip(t, NewCoordinates(1, 1), NewCoordinates(1, 2), NewCoordinates(1, 3))

		require.NoError(t, ship.Hit(NewCoordinates(1, 1)))
		require.NoError(t, ship.Hit(NewCoordinates(1, 2)))
		assert.False(t, ship.IsSunk())

		require.NoError(t, ship.Hit(NewCoordinates(1, 3)))
		assert.True(t, ship.IsSunk())
		assert.Len(t, ship.Hits(), 3)
	})

	t.Run("duplicate hit is counted once", func(t *testing.T) {
		ship := newPlacedShip(t, NewCoordinates(0, 0), NewCoordinates(1, 0))

		require.NoError(t, ship.Hit(NewCoordinates(0, 0)))
		require.NoError(t, ship.Hit(NewCoordinates(0, 0)))
		assert.False(t, ship.IsSunk())
		assert.Equal(t, []Coordinates{{0, 0}}, ship.Hits())
	})

	t.Run("coordinates outside the ship", func(t *testing.T) {
		ship := newPlacedShip(t, NewCoordinates(0, 0))

		require.ErrorIs(t, ship.Hit(NewCoordinates(0, 1)), cerr.ErrNotPartOfShip)
		require.ErrorIs(t, ship.Hit(NewCoordinates(-1, 0)), cerr.ErrInvalidCoordinate)
		assert.Empty(t, ship.Hits())
	})

	t.Run("hit after sunk", func(t *testing.T) {
		ship := newPlacedShip(t, NewCoordinates(7, 7), NewCoordinates(8, 7))
		require.NoError(t, ship.Hit(NewCoordinates(7, 7)))
		require.NoError(t, ship.Hit(NewCoordinates(8, 7)))
		require.True(t, ship.IsSunk())

		require.ErrorIs(t, ship.Hit(NewCoordinates(7, 7)), cerr.ErrAlreadySunk)
	})

	t.Run("membership uses coordinate values", func(t *testing.T) {
		ship := newPlacedShip(t, Coordinates{Row: 3, Col: 3})
		require.NoError(t, ship.Hit(NewCoordinates(3, 3)))

		assert.True(t, ship.IsHit(Coordinates{Row: 3, Col: 3}))
		assert.True(t, ship.IsSunk())
	})
}

func TestShipClone(t *testing.T) {
	ship := newPlacedShip(t, NewCoordinates(2, 2), NewCoordinates(2, 3))
	cp := ship.clone()

	require.NoError(t, cp.Hit(NewCoordinates(2, 2)))
	assert.True(t, cp.IsHit(NewCoordinates(2, 2)))
	assert.False(t, ship.IsHit(NewCoordinates(2, 2)))
}
