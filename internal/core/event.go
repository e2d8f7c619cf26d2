package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventSessionID delivers the issued session identifier, once, to a
	// genuinely new (non-resumed) connection.
	EventSessionID EventKind = iota
	// EventRoomState delivers the full room view to every current member
	// after any membership, readiness or clipboard change.
	EventRoomState
	// EventRoomReady notifies the host, and only the host, that every
	// member toggled ready.
	EventRoomReady
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind      EventKind
	SessionID string     // for EventSessionID
	State     *RoomState // for EventRoomState
}

// RoomState is the synchronized view every room member observes.
type RoomState struct {
	Clipboard []string
	Members   []MemberState
}
