package proto

// Inbound is the envelope for client requests. Arguments are positional,
// matching the server-side argument schemas.
type Inbound struct {
	Type string `json:"type"`
	Seq  uint64 `json:"seq"`
	Args []any  `json:"args"`
}

// Client-initiated request types.
const (
	InboundCreateRoom      = "createRoom"
	InboundJoinRoom        = "joinRoom"
	InboundToggleReady     = "toggleReady"
	InboundUpdateClipboard = "updateClipboard"
)

// Outbound envelope types.
const (
	OutboundTypeAck   = "ack"
	OutboundTypeEvent = "event"
)

// Server-initiated notification names.
const (
	EventNameSessionID       = "sessionId"
	EventNameRoomStateChange = "roomStateChange"
	EventNameRoomReady       = "roomReady"
)

// Outbound is the envelope for everything sent to the client: request
// acknowledgments (echoing the request seq) and server notifications.
type Outbound struct {
	Type   string  `json:"type"`
	Seq    uint64  `json:"seq,omitempty"`
	Result *Result `json:"result,omitempty"`
	Event  string  `json:"event,omitempty"`
	Data   any     `json:"data,omitempty"`
}

// Result is the acknowledgment value: {status:"ok", data?} or
// {status:"fail", failMessage}.
type Result struct {
	Status      string `json:"status"`
	Data        any    `json:"data,omitempty"`
	FailMessage string `json:"failMessage,omitempty"`
}

// SessionIDData delivers the issued session id to a new connection.
type SessionIDData struct {
	SessionID string `json:"sessionId"`
}

// MemberState is one member's slice of a room state notification.
type MemberState struct {
	Username string `json:"username"`
	IsHost   bool   `json:"isHost"`
	IsReady  bool   `json:"isReady"`
}

// RoomStateData is broadcast to all room members on any membership,
// readiness or clipboard change.
type RoomStateData struct {
	Clipboard    []string      `json:"clipboard"`
	MembersState []MemberState `json:"membersState"`
}
