package connection

import (
	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
)

type ReqCreateGame struct {
	GameDifficulty uint8 `json:"game_difficulty"`
}

// Row and Col are pointers so a missing field
// is told apart from a zero index
type ReqAttack struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

func (r ReqAttack) Coordinates() (mb.Coordinates, error) {
	if r.Row == nil || r.Col == nil {
		return mb.Coordinates{}, cerr.ErrCoordinateMissing()
	}
	return mb.NewCoordinates(*r.Row, *r.Col), nil
}
