package core

import "github.com/samber/lo"

// member binds a session to its live connection. A nil client marks a ghost
// member: the session stays frozen in place until reconnect or expiry.
type member struct {
	sess   *Session
	client *Client
}

// Room groups the sessions joined under a shared name. A room has no
// independent record beyond this set: it exists exactly while the set is
// non-empty. Members keep join order, which fixes broadcast ordering.
type Room struct {
	Name    string
	members []*member
}

func newRoom(name string) *Room {
	return &Room{Name: name}
}

// add appends a new member. The caller guarantees username uniqueness.
func (r *Room) add(sess *Session, client *Client) {
	r.members = append(r.members, &member{sess: sess, client: client})
}

// attach rebinds a live connection to an existing member session.
// Returns false if the session is not a member.
func (r *Room) attach(sess *Session, client *Client) bool {
	for _, m := range r.members {
		if m.sess == sess {
			m.client = client
			return true
		}
	}
	return false
}

// detach drops the connection of a member, leaving the session in place.
func (r *Room) detach(sess *Session) {
	for _, m := range r.members {
		if m.sess == sess {
			m.client = nil
			return
		}
	}
}

// remove deletes a member session entirely. Returns true if removed.
func (r *Room) remove(sess *Session) bool {
	for i, m := range r.members {
		if m.sess == sess {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) empty() bool {
	return len(r.members) == 0
}

// host returns the member session holding isHost, or nil if the room is in
// a torn-down intermediate state.
func (r *Room) host() *Session {
	for _, m := range r.members {
		if m.sess.IsHost {
			return m.sess
		}
	}
	return nil
}

// hostClient returns the live connection of the host, or nil while the host
// is a ghost.
func (r *Room) hostClient() *Client {
	for _, m := range r.members {
		if m.sess.IsHost {
			return m.client
		}
	}
	return nil
}

// hasUsername reports whether any current member holds the exact username.
func (r *Room) hasUsername(username string) bool {
	return lo.SomeBy(r.members, func(m *member) bool {
		return m.sess.Username == username
	})
}

// allReady is the unanimous-AND aggregation over member ready flags.
// Ghost members count: their readiness is frozen until resolution.
func (r *Room) allReady() bool {
	return lo.EveryBy(r.members, func(m *member) bool {
		return m.sess.IsReady
	})
}

// resetReady clears every member's ready flag.
func (r *Room) resetReady() {
	for _, m := range r.members {
		m.sess.IsReady = false
	}
}

// state snapshots the room view broadcast to members. The host's clipboard
// is authoritative for the whole room.
func (r *Room) state() *RoomState {
	var clipboard []string
	if h := r.host(); h != nil {
		clipboard = append([]string(nil), h.Clipboard...)
	}
	return &RoomState{
		Clipboard: clipboard,
		Members: lo.Map(r.members, func(m *member, _ int) MemberState {
			return m.sess.memberState()
		}),
	}
}

// broadcast sends an event to every member with a live connection.
func (r *Room) broadcast(ev *Event) {
	for _, m := range r.members {
		if m.client != nil {
			m.client.send(ev)
		}
	}
}
