package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-cpu/db/sqlc"
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
	mc "github.com/saeidalz13/battleship-cpu/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more that enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	metrics        gameMetrics
	ipnet          net.IPNet
	logger         zerolog.Logger
}

// q may be nil, in which case no analytics are recorded
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q sqlc.Querier,
	logger zerolog.Logger,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		ipnet:          serverIpNet(),
		logger:         logger,
	}

	metrics, err := newGameMetrics(meter(), sessionManager.CountSessions)
	if err != nil {
		logger.Warn().Err(err).Msg("game metrics are disabled")
	} else {
		rp.metrics = metrics
	}

	if q != nil {
		rp.analytics = sqlc.NewDbManager(q, pqtype.Inet{IPNet: rp.ipnet, Valid: true}).Analytics
	}
	return rp
}

// First non-loopback IPv4 network of this host. Falls back to
// 127.0.0.1/32 on hosts with only a loopback interface.
func serverIpNet() net.IPNet {
	fallback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		return fallback
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}

			if ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}

	return fallback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		rp.logger.Error().Err(err).Msg("could not open websocket connection")
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		rp.logger.Info().Str("remote_addr", conn.RemoteAddr().String()).Msg("a new connection established")
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			rp.logger.Warn().Err(err).Str("session", sessionIdQuery).Msg("reconnection rejected")

			resp := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID)
			resp.AddError(err.Error(), "session cannot be resumed")
			_ = conn.WriteJSON(resp)
			_ = conn.Close()
		}
	}
}

// Serves the analytics counters of this server as JSON
func (rp RequestProcessor) ServeAnalytics(w http.ResponseWriter, r *http.Request) {
	if rp.analytics == nil {
		http.Error(w, "analytics are disabled", http.StatusServiceUnavailable)
		return
	}

	snapshot, err := rp.analytics.Snapshot(r.Context())
	if err != nil {
		rp.logger.Error().Err(err).Msg("failed to read analytics")
		http.Error(w, "failed to read analytics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snapshot)
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	logger := rp.logger.With().Str("session", session.Id()).Logger()

	defer func() {
		if game := session.Game(); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			_ = conn.Close()
		}
		rp.sessionManager.TerminateSession(session)
		logger.Info().Msg("session terminated")
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// This error happens after retries. If it's not nil,
			// then something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), mc.ErrSignalAbsent.Error())
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		// A new game replaces whatever game the session had
		case mc.CodeCreateGame:
			game, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager)
			rp.replaceSessionGame(session, game, logger)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeRematch:
			game, respMsg := NewRequest().HandleRematch(rp.gameManager, session.Game())
			rp.replaceSessionGame(session, game, logger)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// The player attack is answered right away by the CPU
		// attack unless the player attack ended the game
		case mc.CodeAttack:
			game := session.Game()
			respMsg := NewRequest(payload).HandleAttack(game)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			// This means attack operation did not complete
			if respMsg.HasError() {
				continue sessionLoop
			}
			rp.metrics.recordGuess(mb.SidePlayer, respMsg.Payload.Result)

			if !game.State.IsGameOver() {
				respCpu := NewRequest().HandleCpuAttack(game)
				if respCpu.HasError() {
					logger.Error().Str("game", game.Uuid()).Msg(respCpu.Error.ErrorDetails)
				} else {
					rp.metrics.recordGuess(mb.SideOpponent, respCpu.Payload.Result)
				}

				if err := rp.sessionManager.WriteToSessionConn(session, respCpu, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

			if game.State.IsGameOver() {
				rp.recordMatchResult(game, logger)

				respEnd := NewRequest().HandleEndGame(game)
				if err := rp.sessionManager.WriteToSessionConn(session, respEnd, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

// Registers game as the game of the session. A nil game (creation
// failed) leaves the current game in place.
func (rp RequestProcessor) replaceSessionGame(session *mc.Session, game *mb.Game, logger zerolog.Logger) {
	if game == nil {
		return
	}

	if prevGame := session.Game(); prevGame != nil {
		rp.gameManager.TerminateGame(prevGame.Uuid())
	}
	session.SetGame(game)

	logger.Info().
		Str("game", game.Uuid()).
		Uint8("difficulty", game.Difficulty()).
		Msg("game created")
	logger.Debug().Str("game", game.Uuid()).Msg("player fleet\n" + game.State.RenderFleet(mb.SidePlayer))
	rp.metrics.recordGameCreated(game.Difficulty())

	if rp.analytics == nil {
		return
	}
	// for now not killing the game for it
	if err := rp.analytics.IncrementGamesCreatedCount(context.Background()); err != nil {
		logger.Error().Err(err).Msg("failed to record created game")
	}
}

func (rp RequestProcessor) recordMatchResult(game *mb.Game, logger zerolog.Logger) {
	winner := game.State.Winner()
	logger.Info().Str("game", game.Uuid()).Str("winner", winner.String()).Msg("game over")
	rp.metrics.recordGameFinished(winner)

	if rp.analytics == nil {
		return
	}

	var err error
	switch winner {
	case mb.SidePlayer:
		err = rp.analytics.IncrementPlayerWinsCount(context.Background())
	case mb.SideOpponent:
		err = rp.analytics.IncrementCpuWinsCount(context.Background())
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to record match result")
	}
}
