package core

// evaluateReady recomputes the room's ready consensus. It runs after every
// toggle and after any membership change, because removing a non-ready
// member can make the remainder unanimous. On unanimous true it resets every
// member's flag and sends a one-shot notification to the host only; the
// state broadcast that follows shows the reset flags.
func (h *Hub) evaluateReady(room *Room) {
	if room.empty() || !room.allReady() {
		return
	}

	room.resetReady()
	if host := room.hostClient(); host != nil {
		host.send(&Event{Kind: EventRoomReady})
	}
	h.log.Debug().Str("room", room.Name).Msg("room reached ready consensus")
}
