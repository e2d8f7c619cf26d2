package core

// Session is the logical client record that survives reconnects. It is keyed
// in the hub by connection id while a client is attached, and referenced by
// the ghost store while detached.
type Session struct {
	// ID is the stable, opaque session identifier issued once on first
	// contact and presented by clients on reconnection attempts.
	ID string

	Username string
	IsHost   bool

	// Room is the name of the joined room, or "" when not in any room.
	Room string

	IsReady bool

	// Clipboard is the host-owned history, most-recent-first, bounded by
	// the configured maximum.
	Clipboard []string
}

// MemberState is the per-member slice of a room state broadcast.
type MemberState struct {
	Username string
	IsHost   bool
	IsReady  bool
}

func (s *Session) memberState() MemberState {
	return MemberState{
		Username: s.Username,
		IsHost:   s.IsHost,
		IsReady:  s.IsReady,
	}
}

func (s *Session) inRoom() bool {
	return s.Room != ""
}
