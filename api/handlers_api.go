package api

import (
	"encoding/json"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
	mc "github.com/saeidalz13/battleship-cpu/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gm mb.GameManager) (*mb.Game, mc.Message[mc.RespCreateGame])
	HandleRematch(gm mb.GameManager, prevGame *mb.Game) (*mb.Game, mc.Message[mc.RespCreateGame])
	HandleAttack(game *mb.Game) mc.Message[mc.RespAttack]
	HandleCpuAttack(game *mb.Game) mc.Message[mc.RespAttack]
	HandleEndGame(game *mb.Game) mc.Message[mc.RespEndGame]
}

// Every incoming valid request will have this structure.
// The payload is the raw frame read from the connection.
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) Request {
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

// Creates and initializes a new game against the CPU. The game
// is nil whenever the returned message carries an error.
func (r Request) HandleCreateGame(gm mb.GameManager) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	var req mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
		resp.AddError(err.Error(), cerr.ConstErrCreateGame)
		return nil, resp
	}

	return createGame(gm, req.Payload.GameDifficulty, mc.CodeCreateGame)
}

// Starts a fresh game with the difficulty of prevGame
func (r Request) HandleRematch(gm mb.GameManager, prevGame *mb.Game) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	if prevGame == nil {
		resp := mc.NewMessage[mc.RespCreateGame](mc.CodeRematch)
		resp.AddError(cerr.ErrNoActiveGame().Error(), cerr.ConstErrCreateGame)
		return nil, resp
	}

	return createGame(gm, prevGame.Difficulty(), mc.CodeRematch)
}

func createGame(gm mb.GameManager, difficulty uint8, code uint8) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](code)

	game, err := gm.CreateGame(difficulty)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrCreateGame)
		return nil, resp
	}

	rules := game.State.Rules()
	resp.AddPayload(mc.RespCreateGame{
		GameUuid:       game.Uuid(),
		GameDifficulty: game.Difficulty(),
		GridSize:       rules.GridSize,
		Manifest:       rules.Manifest,
		DefenceGrid:    game.State.DefenceGrid(mb.SidePlayer),
	})
	return game, resp
}

// Plays the player guess of the payload against the CPU fleet
func (r Request) HandleAttack(game *mb.Game) mc.Message[mc.RespAttack] {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)

	if game == nil {
		resp.AddError(cerr.ErrNoActiveGame().Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	var req mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	c, err := req.Payload.Coordinates()
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	result, err := game.PlayerAttack(c)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	resp.AddPayload(mc.RespAttack{
		Result:         result,
		RemainingShips: game.State.RemainingShips(mb.SidePlayer),
		IsTurn:         false,
	})
	return resp
}

// Lets the CPU answer the player attack
func (r Request) HandleCpuAttack(game *mb.Game) mc.Message[mc.RespAttack] {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeCpuAttack)

	if game == nil {
		resp.AddError(cerr.ErrNoActiveGame().Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	result, err := game.CpuAttack()
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	resp.AddPayload(mc.RespAttack{
		Result:         result,
		RemainingShips: game.State.RemainingShips(mb.SideOpponent),
		IsTurn:         !game.State.IsGameOver(),
	})
	return resp
}

func (r Request) HandleEndGame(game *mb.Game) mc.Message[mc.RespEndGame] {
	resp := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	resp.AddPayload(mc.RespEndGame{PlayerMatchStatus: mb.MatchStatus(game.State.Winner())})
	return resp
}
