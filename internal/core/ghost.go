package core

import (
	"context"
	"time"
)

// ghost is a session whose connection dropped for an unexpected reason while
// in a room. It holds the session snapshot, the drop timestamp, and the
// address slot the departed connection was occupying.
type ghost struct {
	leftAt time.Time
	addr   string
	sess   *Session
}

// RunSweeper finalizes expired ghost sessions on a fixed interval until the
// context is cancelled.
func (h *Hub) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(h.limits.GhostSessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sweep(h.now())
		}
	}
}

// sweep finalizes every ghost whose age has reached the configured lifetime,
// treating it as a genuine departure: host ghosts tear the room down, member
// ghosts trigger a consensus re-check and a state broadcast.
func (h *Hub) sweep(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, g := range h.ghosts {
		if now.Sub(g.leftAt) < h.limits.GhostSessionLifetime {
			continue
		}
		delete(h.ghosts, id)
		h.addrs.release(g.addr)
		h.log.Info().
			Str("session_id", id).
			Str("room", g.sess.Room).
			Msg("ghost session expired")

		if room, ok := h.rooms[g.sess.Room]; ok {
			h.finalizeDeparture(room, g.sess)
		}
	}
	h.syncGauges()
}
