package battleship

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

// Side identifies the attacking side of a guess. The player
// attacks the opponent fleet and the opponent (CPU) attacks
// the player fleet.
type Side uint8

const (
	SideNone Side = iota
	SidePlayer
	SideOpponent
)

func (s Side) Other() Side {
	switch s {
	case SidePlayer:
		return SideOpponent
	case SideOpponent:
		return SidePlayer
	}
	return SideNone
}

func (s Side) IsValid() bool {
	return s == SidePlayer || s == SideOpponent
}

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	}
	return "none"
}

// MatchStatus converts the winner of a game into the match
// status of the human player.
func MatchStatus(winner Side) int {
	switch winner {
	case SidePlayer:
		return PlayerMatchStatusWon
	case SideOpponent:
		return PlayerMatchStatusLost
	}
	return PlayerMatchStatusUndefined
}
