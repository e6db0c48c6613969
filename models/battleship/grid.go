package battleship

import (
	"bytes"
	"fmt"
	"strconv"
	"text/tabwriter"
)

const (
	PositionStateDefenceGridEmpty int = iota
	PositionStateDefenceGridShip
	PositionStateDefenceGridHit
	PositionStateDefenceGridMiss
)

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

// Step returns the neighbouring coordinates n cells away in direction d.
// The result may be outside of the grid.
func (c Coordinates) Step(d Direction, n int) Coordinates {
	switch d {
	case DirectionUp:
		return Coordinates{Row: c.Row - n, Col: c.Col}
	case DirectionRight:
		return Coordinates{Row: c.Row, Col: c.Col + n}
	case DirectionDown:
		return Coordinates{Row: c.Row + n, Col: c.Col}
	case DirectionLeft:
		return Coordinates{Row: c.Row, Col: c.Col - n}
	}
	return c
}

func (c Coordinates) InBounds(gridSize int) bool {
	return c.Row >= 0 && c.Row < gridSize && c.Col >= 0 && c.Col < gridSize
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionRight
	DirectionDown
	DirectionLeft
)

// Fixed probing order used by both placement and the targeting AI
var Directions = [4]Direction{DirectionUp, DirectionRight, DirectionDown, DirectionLeft}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	}
	return "none"
}

type Grid [][]int

// Creates a new default grid
// All indexes are zero/PositionStateDefenceGridEmpty
func NewGrid(gridSize int) Grid {
	grid := make(Grid, gridSize)

	for i := 0; i < gridSize; i++ {
		grid[i] = make([]int, gridSize)
	}
	return grid
}

// Renders the grid as a text table.
// S: ship, X: hit, O: miss, ~: water
func (g Grid) String() string {
	if len(g) == 0 {
		return ""
	}

	var buffer bytes.Buffer
	tw := tabwriter.NewWriter(&buffer, 3, 0, 1, ' ', 0)

	fmt.Fprint(tw, "\t")
	for col := range g[0] {
		fmt.Fprint(tw, strconv.Itoa(col)+"\t")
	}
	fmt.Fprint(tw, "\n")

	for row := range g {
		fmt.Fprint(tw, strconv.Itoa(row)+"\t")
		for _, cell := range g[row] {
			switch cell {
			case PositionStateDefenceGridShip:
				fmt.Fprint(tw, "S\t")
			case PositionStateDefenceGridHit:
				fmt.Fprint(tw, "X\t")
			case PositionStateDefenceGridMiss:
				fmt.Fprint(tw, "O\t")
			default:
				fmt.Fprint(tw, "~\t")
			}
		}
		fmt.Fprint(tw, "\n")
	}
	_ = tw.Flush()
	return buffer.String()
}
