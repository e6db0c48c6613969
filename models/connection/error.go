package connection

import (
	"errors"
	"fmt"
)

const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
	ConnLoopAbnormalClosureRetry
	ConnLoopContinue
	ConnInvalidMsgType
)

var ErrSignalAbsent = errors.New("incoming req payload must contain 'code' field")

// ConnErr tells the session loop what to do after a failed
// read or write on the websocket connection
type ConnErr struct {
	code uint8
	desc string
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Error() string {
	return fmt.Sprintf("connection error - code: %d\tdesc: %s", c.code, c.desc)
}

func (c ConnErr) Code() uint8 {
	return c.code
}

// Reports whether err is a ConnErr carrying code
func IsConnErrCode(err error, code uint8) bool {
	var connErr ConnErr
	if !errors.As(err, &connErr) {
		return false
	}
	return connErr.code == code
}
