package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

const DefaultCleanupInterval = time.Minute * 20

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(session *Session)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	HandleAbnormalClosureSession(session *Session) error
	CountSessions() int

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) ([]byte, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	logger          zerolog.Logger

	sessions map[string]*Session
	mu       sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

type SessionManagerOption func(*BattleshipSessionManager)

func WithCleanupInterval(interval time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = interval
	}
}

func WithGracePeriod(gracePeriod time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.gracePeriod = gracePeriod
	}
}

func WithSessionLogger(logger zerolog.Logger) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.logger = logger
	}
}

func NewBattleshipSessionManager(opts ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: DefaultCleanupInterval,
		gracePeriod:     DefaultGracePeriod,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn, bsm.logger)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(session *Session) {
	bsm.mu.Lock()
	delete(bsm.sessions, session.id)
	bsm.mu.Unlock()
}

func (bsm *BattleshipSessionManager) CountSessions() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// Hands conn to the session waiting in its grace period. Sessions
// with a live connection are not handed over.
func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}

	return session.reconnectionAfterAbnormalClosure(conn)
}

// To ensure that there is no dangling connections,
// server session manager marks the sessions with a
// lifetime of more than the cleanup interval as stale
// and deletes them.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bsm.cleanupStaleSessions()
		}
	}
}

func (bsm *BattleshipSessionManager) cleanupStaleSessions() int {
	assumedClosedConns := 10
	toDelete := make([]string, 0, assumedClosedConns)

	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	for id, session := range bsm.sessions {
		if time.Since(session.createdAt) > bsm.cleanupInterval {
			toDelete = append(toDelete, id)
		}
	}

	for _, id := range toDelete {
		delete(bsm.sessions, id)
		bsm.logger.Info().Str("session", id).Msg("stale session removed")
	}
	return len(toDelete)
}

// This function takes care of abnormal closures. This happens due
// to backgrounding in mobile clients or any other unexpected
// reasons for web apps. A session without a game has nothing
// worth resuming and ends right away.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	if s.Game() == nil {
		return NewConnErr(ConnLoopBreak).AddDesc("no game in session; nothing to resume")
	}

	reconnected := s.startAwaitingReconnection()
	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		if s.stopAwaitingReconnection() {
			s.logger.Info().Msg("grace period is over; session terminated")
			return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)
		}
		// the client came back together with the timer

	case <-reconnected:
	}

	s.logger.Info().Msg("player reconnected")

	resp := NewMessage[RespSessionId](CodeSessionReconnected)
	resp.AddPayload(RespSessionId{SessionID: s.id})
	return s.writeToConnWithRetry(resp, MessageTypeJSON)
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	if IsConnErrCode(err, ConnLoopAbnormalClosureRetry) {
		if err := bsm.HandleAbnormalClosureSession(session); err != nil {
			return err
		}
		// The reply is lost with the old connection; resend it
		return session.writeToConnWithRetry(msg, msgType)
	}
	return err
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) ([]byte, error) {
	var retries uint8

	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := session.Conn().ReadMessage()
		if err == nil {
			return payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return nil, err
			}
			retries = 0

		default:
			return nil, err
		}
	}
}

// Extracts the signal code of an incoming frame
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}

	if err := json.Unmarshal(payload, &signal); err != nil {
		return CodeSignalAbsent, err
	}
	if signal.Code == nil {
		return CodeSignalAbsent, ErrSignalAbsent
	}
	return *signal.Code, nil
}
