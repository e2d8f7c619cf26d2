package core

import (
	"errors"
	"fmt"
)

// Result is the acknowledgment value for a client request. Every expected
// failure is resolved into a fail Result; the connection stays open.
type Result struct {
	Status      string
	Data        any
	FailMessage string
}

const (
	StatusOK   = "ok"
	StatusFail = "fail"
)

// OK returns a successful result with no payload.
func OK() Result {
	return Result{Status: StatusOK}
}

// OKData returns a successful result carrying a payload.
func OKData(data any) Result {
	return Result{Status: StatusOK, Data: data}
}

// Fail returns a failed result with its canonical message.
func Fail(msg string) Result {
	return Result{Status: StatusFail, FailMessage: msg}
}

// Canonical precondition and validation messages.
const (
	MsgNotInRoom        = "This user is not yet in a room."
	MsgAlreadyInRoom    = "This user is already in a room."
	MsgNotHost          = "This user is not a host."
	MsgUsernameRequired = "Username should be a non-empty string."
	MsgRoomNameRequired = "Room name should be a non-empty string."
	MsgClipboardEntry   = "Clipboard entry should be a string."
)

// MsgRoomMissing is the templated not-found message for joinRoom.
func MsgRoomMissing(name string) string {
	return fmt.Sprintf("Room %q doesn't exist.", name)
}

// MsgUsernameTaken is the templated collision message for joinRoom.
func MsgUsernameTaken(username string) string {
	return fmt.Sprintf("Username %q is already taken by someone else in this room.", username)
}

// Handshake-fatal errors. These refuse a connection before any event
// exchange; their text is surfaced verbatim to the client.
var (
	ErrTooManyConnections = errors.New("Too many connections from the same address.")
	ErrRoomGone           = errors.New("The room for this session no longer exists.")
)

// ErrSessionMissing signals registry/room-directory desynchronization: a
// connected client has no session record. Not an ordinary failure; the
// offending operation is aborted and the connection dropped.
var ErrSessionMissing = errors.New("session record missing for connected client")
