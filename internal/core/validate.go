package core

import "fmt"

// argRule checks one positional argument and carries the canonical message
// returned when the check fails. Checks short-circuit left to right.
type argRule struct {
	check   func(v any) (string, bool)
	failMsg string
}

// nonEmptyString accepts only a JSON string with at least one character.
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

// anyString accepts any JSON string, including the empty one.
func anyString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// handlerFunc runs against trusted, already-validated inputs.
type handlerFunc func(h *Hub, c *Client, s *Session, args []string) Result

// eventSpec is one dispatch-table row: positional argument schema, required
// room-presence polarity, and the handler to run once both checks pass.
type eventSpec struct {
	args       []argRule
	wantInRoom bool
	handler    handlerFunc
}

var eventTable = map[string]eventSpec{
	"createRoom": {
		args:       []argRule{{nonEmptyString, MsgUsernameRequired}},
		wantInRoom: false,
		handler:    (*Hub).handleCreateRoom,
	},
	"joinRoom": {
		args: []argRule{
			{nonEmptyString, MsgUsernameRequired},
			{nonEmptyString, MsgRoomNameRequired},
		},
		wantInRoom: false,
		handler:    (*Hub).handleJoinRoom,
	},
	"toggleReady": {
		wantInRoom: true,
		handler:    (*Hub).handleToggleReady,
	},
	"updateClipboard": {
		args:       []argRule{{anyString, MsgClipboardEntry}},
		wantInRoom: true,
		handler:    (*Hub).handleUpdateClipboard,
	},
}

// checkArgs validates supplied arguments positionally against the schema.
// Missing arguments fail their rule; extra arguments are ignored.
func checkArgs(rules []argRule, args []any) ([]string, string) {
	vals := make([]string, len(rules))
	for i, rule := range rules {
		var v any
		if i < len(args) {
			v = args[i]
		}
		s, ok := rule.check(v)
		if !ok {
			return nil, rule.failMsg
		}
		vals[i] = s
	}
	return vals, ""
}

// checkPresence enforces the room-presence precondition, yielding one of
// exactly two fixed messages on mismatch.
func checkPresence(wantInRoom bool, s *Session) string {
	switch {
	case wantInRoom && !s.inRoom():
		return MsgNotInRoom
	case !wantInRoom && s.inRoom():
		return MsgAlreadyInRoom
	}
	return ""
}

// Dispatch validates and runs one client event, returning its acknowledgment.
// A non-nil error means an internal invariant was violated and the connection
// should be dropped, not answered.
func (h *Hub) Dispatch(client *Client, event string, args []any) (Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.sessions[client.ID]
	if !ok {
		h.log.Error().
			Str("client_id", client.ID).
			Str("event", event).
			Msg("session record missing for connected client")
		return Result{}, ErrSessionMissing
	}

	spec, ok := eventTable[event]
	if !ok {
		return Fail(fmt.Sprintf("Unknown event %q.", event)), nil
	}
	vals, failMsg := checkArgs(spec.args, args)
	if failMsg != "" {
		return Fail(failMsg), nil
	}
	if msg := checkPresence(spec.wantInRoom, sess); msg != "" {
		return Fail(msg), nil
	}
	return spec.handler(h, client, sess, vals), nil
}
