package core

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clipparty/clipparty-server/internal/metrics"
	"github.com/clipparty/clipparty-server/internal/utils"
)

// Limits carries the coordination-core tunables.
type Limits struct {
	MaxConnectionsPerAddress    int
	MaxClipboardEntries         int
	GhostSessionLifetime        time.Duration
	GhostSessionCleanupInterval time.Duration
}

// Hub is the session lifecycle controller. It exclusively owns the three
// shared registries (sessions, ghost sessions, address counts) plus the room
// directory; one mutex held for the duration of each handler keeps handlers
// serialized, so clients observe a causally consistent sequence of states.
type Hub struct {
	mu     sync.Mutex
	limits Limits
	log    *zerolog.Logger
	stats  *metrics.Metrics

	// sessions maps connection id -> session of an attached client.
	sessions map[string]*Session
	// bySession maps session id -> live client, for reconnect preemption.
	bySession map[string]*Client
	rooms     map[string]*Room
	ghosts    map[string]*ghost
	addrs     *addrCounter

	// now is swapped in tests to drive ghost expiry.
	now func() time.Time
}

// NewHub creates the hub with empty registries. stats may be nil.
func NewHub(limits Limits, logger *zerolog.Logger, stats *metrics.Metrics) *Hub {
	return &Hub{
		limits:    limits,
		log:       logger,
		stats:     stats,
		sessions:  make(map[string]*Session),
		bySession: make(map[string]*Client),
		rooms:     make(map[string]*Room),
		ghosts:    make(map[string]*ghost),
		addrs:     newAddrCounter(limits.MaxConnectionsPerAddress),
		now:       time.Now,
	}
}

// DisconnectReason classifies why a connection went away.
type DisconnectReason int

const (
	// ReasonClientClose is an explicit client-initiated close.
	ReasonClientClose DisconnectReason = iota
	// ReasonTimeout is a transport-level timeout.
	ReasonTimeout
	// ReasonTransportClose is an abrupt transport close without a close frame.
	ReasonTransportClose
	// ReasonTransportError is any other transport failure.
	ReasonTransportError
)

// Expected reports whether the departure was client-intended. Unexpected
// departures of in-room sessions become ghost sessions instead of finalizing.
func (r DisconnectReason) Expected() bool {
	return r == ReasonClientClose
}

// Admit is the handshake gate, checked before the websocket upgrade and
// before any session allocation. It refuses over-ceiling addresses and
// reconnection attempts whose room is gone; the latter consumes the ghost,
// since its session can never be restored.
func (h *Hub) Admit(addr, sessionID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.addrs.hasCapacity(addr) {
		h.stats.HandshakeRejected("throttled")
		return ErrTooManyConnections
	}
	if sessionID != "" {
		if g, ok := h.ghosts[sessionID]; ok {
			if _, exists := h.rooms[g.sess.Room]; !exists {
				delete(h.ghosts, sessionID)
				h.addrs.release(g.addr)
				h.stats.HandshakeRejected("room_gone")
				h.syncGauges()
				return ErrRoomGone
			}
		}
	}
	return nil
}

// Register attaches an accepted connection to a session: resuming a ghost,
// preempting a still-active session with the same id, or creating a fresh
// session whose id is delivered through a dedicated notification.
func (h *Hub) Register(client *Client, sessionID string) (resumed bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.addrs.acquire(client.Addr) {
		h.stats.HandshakeRejected("throttled")
		return false, ErrTooManyConnections
	}

	if sessionID != "" {
		if g, ok := h.ghosts[sessionID]; ok {
			return h.resumeGhost(client, g)
		}
		if stale, ok := h.bySession[sessionID]; ok {
			return h.preempt(client, stale, sessionID)
		}
	}

	sess := &Session{ID: utils.NewSessionID()}
	h.sessions[client.ID] = sess
	h.bySession[sess.ID] = client
	client.send(&Event{Kind: EventSessionID, SessionID: sess.ID})
	h.log.Debug().Str("session_id", sess.ID).Str("addr", client.Addr).Msg("session created")
	h.syncGauges()
	return false, nil
}

// resumeGhost consumes a ghost entry and restores the full session snapshot,
// rejoining the room it was frozen in.
func (h *Hub) resumeGhost(client *Client, g *ghost) (bool, error) {
	delete(h.ghosts, g.sess.ID)
	h.addrs.release(g.addr)

	room, ok := h.rooms[g.sess.Room]
	if !ok {
		// The room closed between Admit and Register; refuse as at handshake.
		h.addrs.release(client.Addr)
		h.stats.HandshakeRejected("room_gone")
		h.syncGauges()
		return false, ErrRoomGone
	}

	sess := g.sess
	h.sessions[client.ID] = sess
	h.bySession[sess.ID] = client
	room.attach(sess, client)
	h.log.Info().Str("session_id", sess.ID).Str("room", room.Name).Msg("session resumed")

	h.evaluateReady(room)
	h.broadcastState(room)
	h.syncGauges()
	return true, nil
}

// preempt hands the session of a still-active connection to a newer one
// presenting the same id. Last writer wins; the stale connection is closed.
func (h *Hub) preempt(client, stale *Client, sessionID string) (bool, error) {
	sess, ok := h.sessions[stale.ID]
	if !ok {
		h.log.Error().Str("session_id", sessionID).Msg("active session missing from registry")
		h.addrs.release(client.Addr)
		return false, ErrSessionMissing
	}

	delete(h.sessions, stale.ID)
	h.addrs.release(stale.Addr)
	stale.Kick("Session resumed from another connection.")

	h.sessions[client.ID] = sess
	h.bySession[sessionID] = client
	h.log.Info().Str("session_id", sessionID).Msg("session preempted by newer connection")

	if room, ok := h.rooms[sess.Room]; ok {
		room.attach(sess, client)
		h.broadcastState(room)
	}
	h.syncGauges()
	return true, nil
}

// Disconnect finalizes or freezes the session of a departed connection.
// Expected departures finalize immediately; an unexpected departure while in
// a room converts the session into a ghost, which keeps holding the address
// slot until it is consumed or expires.
func (h *Hub) Disconnect(client *Client, reason DisconnectReason) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.sessions[client.ID]
	if !ok {
		// Already finalized: kicked on teardown or preempted.
		return
	}
	delete(h.sessions, client.ID)
	delete(h.bySession, sess.ID)

	room := h.rooms[sess.Room]
	if !reason.Expected() && room != nil {
		room.detach(sess)
		h.ghosts[sess.ID] = &ghost{leftAt: h.now(), addr: client.Addr, sess: sess}
		h.log.Info().
			Str("session_id", sess.ID).
			Str("room", room.Name).
			Int("reason", int(reason)).
			Msg("session ghosted")
		h.syncGauges()
		return
	}

	h.addrs.release(client.Addr)
	if room != nil {
		h.finalizeDeparture(room, sess)
	}
	h.syncGauges()
}

// finalizeDeparture treats sess as genuinely departed from room: a host
// departure tears the room down, a member departure re-checks consensus and
// rebroadcasts. A room with no members left ceases to exist.
func (h *Hub) finalizeDeparture(room *Room, sess *Session) {
	if sess.IsHost {
		h.teardownRoom(room, sess)
		return
	}
	room.remove(sess)
	if room.empty() {
		delete(h.rooms, room.Name)
		return
	}
	h.evaluateReady(room)
	h.broadcastState(room)
}

// teardownRoom force-disconnects every remaining member and discards their
// sessions. Ghost members keep their ghost entry: a later reconnect attempt
// must be refused with the room-gone error, which consumes it, and the sweep
// discards whatever is never claimed.
func (h *Hub) teardownRoom(room *Room, departed *Session) {
	delete(h.rooms, room.Name)
	h.log.Info().Str("room", room.Name).Int("members", len(room.members)).Msg("room torn down")

	for _, m := range room.members {
		if m.sess == departed || m.client == nil {
			continue
		}
		delete(h.bySession, m.sess.ID)
		delete(h.sessions, m.client.ID)
		h.addrs.release(m.client.Addr)
		m.client.Kick("The room has been closed.")
	}
	room.members = nil
}

func (h *Hub) handleCreateRoom(client *Client, sess *Session, args []string) Result {
	username := args[0]

	var name string
	for {
		name = utils.NewRoomCode()
		if _, taken := h.rooms[name]; !taken {
			break
		}
	}

	sess.Username = username
	sess.IsHost = true
	sess.IsReady = false
	sess.Room = name

	room := newRoom(name)
	room.add(sess, client)
	h.rooms[name] = room
	h.log.Info().Str("room", name).Str("username", username).Msg("room created")

	h.broadcastState(room)
	h.syncGauges()
	return OKData(name)
}

func (h *Hub) handleJoinRoom(client *Client, sess *Session, args []string) Result {
	username, roomName := args[0], args[1]

	room, ok := h.rooms[roomName]
	if !ok {
		return Fail(MsgRoomMissing(roomName))
	}
	if room.hasUsername(username) {
		return Fail(MsgUsernameTaken(username))
	}

	sess.Username = username
	sess.IsHost = false
	sess.IsReady = false
	sess.Room = roomName
	room.add(sess, client)
	h.log.Info().Str("room", roomName).Str("username", username).Msg("user joined room")

	h.evaluateReady(room)
	h.broadcastState(room)
	return OK()
}

func (h *Hub) handleToggleReady(_ *Client, sess *Session, _ []string) Result {
	room, ok := h.rooms[sess.Room]
	if !ok {
		h.log.Error().Str("room", sess.Room).Msg("joined session references missing room")
		return Fail(MsgNotInRoom)
	}

	sess.IsReady = !sess.IsReady
	h.evaluateReady(room)
	h.broadcastState(room)
	return OK()
}

func (h *Hub) handleUpdateClipboard(_ *Client, sess *Session, args []string) Result {
	if !sess.IsHost {
		return Fail(MsgNotHost)
	}
	room, ok := h.rooms[sess.Room]
	if !ok {
		h.log.Error().Str("room", sess.Room).Msg("joined session references missing room")
		return Fail(MsgNotInRoom)
	}

	sess.Clipboard = append([]string{args[0]}, sess.Clipboard...)
	if max := h.limits.MaxClipboardEntries; max > 0 && len(sess.Clipboard) > max {
		sess.Clipboard = sess.Clipboard[:max]
	}

	h.broadcastState(room)
	return OK()
}

// broadcastState pushes the room view to every connected member within the
// same handler invocation that caused the mutation.
func (h *Hub) broadcastState(room *Room) {
	room.broadcast(&Event{Kind: EventRoomState, State: room.state()})
}

func (h *Hub) syncGauges() {
	h.stats.SetConnections(len(h.sessions))
	h.stats.SetRooms(len(h.rooms))
	h.stats.SetGhosts(len(h.ghosts))
}
