package connection

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

// How long an abnormally closed session waits for its client to come back
const DefaultGracePeriod = time.Minute * 2

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn) error
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one client of the server. The connection can only be
// swapped while the session waits out the grace period of an
// abnormal closure.
type Session struct {
	id        string
	createdAt time.Time
	logger    zerolog.Logger

	mu                     sync.RWMutex
	conn                   *websocket.Conn
	reconnectionSignalChan chan struct{}
	awaitingReconnection   bool

	// Game currently played against the CPU; nil until created
	game *mb.Game
}

func NewSession(id string, conn *websocket.Conn, logger zerolog.Logger) *Session {
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan struct{}),
		createdAt:              time.Now(),
		logger:                 logger.With().Str("session", id).Logger(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) Game() *mb.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game
}

func (s *Session) SetGame(game *mb.Game) {
	s.mu.Lock()
	s.game = game
	s.mu.Unlock()
}

func (s *Session) remoteAddr() string {
	conn := s.Conn()
	if conn == nil {
		return ""
	}
	return conn.RemoteAddr().String()
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		s.logger.Warn().Err(err).Msg("timeout error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		s.logger.Warn().Err(err).Msg("high server load/traffic error")
		return ConnLoopRetry
	}

	// Happens if a mobile client goes to background
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		s.logger.Warn().Err(err).Msg("abnormal closure error")
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		s.logger.Info().Err(err).Msg("close error")
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		s.logger.Error().Err(err).Msg("critical error")
		return ConnLoopBreak
	}

	// The client is probably not ours. Breaking not to
	// spend the server on invalid payloads (e.g. binary data)
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		s.logger.Warn().Err(err).Msg("non-critical error")
		return ConnLoopBreak
	}

	s.logger.Error().Err(err).Msg("unexpected error")
	return ConnLoopBreak
}

// Writes to the connection of that session. It also
// handles the abnormal or other types of errors of
// writing to a websocket connection.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

writeLoop:
	for {
		conn := s.Conn()
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				s.logger.Warn().Str("remote_addr", s.remoteAddr()).Uint8("retry", retries).Msg("writing to ws failed; retrying...")
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue writeLoop
			}
			return NewConnErr(ConnLoopBreak).AddDesc("max write retries reached: " + err.Error())

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
	}
}

// Handles the errors that occur when reading from the ws
// connection. `ConnLoopBreak` results in terminating the session.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			s.logger.Warn().Str("remote_addr", s.remoteAddr()).Uint8("retry", retries).Msg("failed to read from ws conn; retrying...")
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		s.logger.Info().Err(err).Msg("break ws conn loop")
		return ConnLoopBreak
	}
}

// Swaps in conn and wakes the waiting session. A session that
// is not waiting for its client keeps its connection.
func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingReconnection {
		return cerr.ErrSessionNotAwaitingReconnection(s.id)
	}
	s.awaitingReconnection = false

	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = conn

	// Signal for reconnection
	close(s.reconnectionSignalChan)
	s.reconnectionSignalChan = make(chan struct{})
	return nil
}

// Opens the session for reconnection and returns the channel
// closed by the reconnection.
func (s *Session) startAwaitingReconnection() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.awaitingReconnection = true
	return s.reconnectionSignalChan
}

// Closes the session for reconnection. False means a reconnection
// already took place.
func (s *Session) stopAwaitingReconnection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	awaiting := s.awaitingReconnection
	s.awaitingReconnection = false
	return awaiting
}

func (s *Session) IsAwaitingReconnection() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.awaitingReconnection
}

var _ ConnectionHandler = (*Session)(nil)
