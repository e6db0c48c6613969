package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame
	CodeAttack

	// Sent right after the player attack result
	// unless the player attack ended the game
	CodeCpuAttack
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	// Starts a new game with the difficulty of the previous one
	CodeRematch

	// Sent on the new connection once a session is resumed
	CodeSessionReconnected
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
