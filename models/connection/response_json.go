package connection

import (
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid       string        `json:"game_uuid"`
	GameDifficulty uint8         `json:"game_difficulty"`
	GridSize       int           `json:"grid_size"`
	Manifest       []mb.ShipSpec `json:"manifest"`

	// Player's own fleet as laid out by the server
	DefenceGrid mb.Grid `json:"defence_grid"`
}

// Used for both the player attack and the CPU attack.
// RemainingShips counts the afloat ships of the attacked fleet.
type RespAttack struct {
	Result         mb.GuessResult `json:"result"`
	RemainingShips int            `json:"remaining_ships"`
	IsTurn         bool           `json:"is_turn"`
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
