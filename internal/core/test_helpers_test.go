package core

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLimits() Limits {
	return Limits{
		MaxConnectionsPerAddress:    8,
		MaxClipboardEntries:         50,
		GhostSessionLifetime:        time.Minute,
		GhostSessionCleanupInterval: 10 * time.Second,
	}
}

func newTestHub(t *testing.T, limits Limits) *Hub {
	t.Helper()

	logger := zerolog.Nop()
	return NewHub(limits, &logger, nil)
}

// connect registers a fresh client and returns it with its issued session id.
func connect(t *testing.T, h *Hub, id, addr string) (*Client, string) {
	t.Helper()

	client := NewClient(id, addr)
	resumed, err := h.Register(client, "")
	if err != nil {
		t.Fatalf("register %s: %v", id, err)
	}
	if resumed {
		t.Fatalf("fresh client %s reported as resumed", id)
	}
	ev := mustEvent(t, client, EventSessionID)
	if ev.SessionID == "" {
		t.Fatalf("empty session id for %s", id)
	}
	return client, ev.SessionID
}

// mustEvent pops events until one of the wanted kind appears. Handlers are
// synchronous, so everything a dispatch produced is already buffered.
func mustEvent(t *testing.T, c *Client, kind EventKind) *Event {
	t.Helper()

	for {
		select {
		case ev := <-c.Events:
			if ev.Kind == kind {
				return ev
			}
		default:
			t.Fatalf("expected event kind %v not received", kind)
			return nil
		}
	}
}

// hasEvent reports whether an event of the kind is buffered, consuming
// everything up to and including it.
func hasEvent(c *Client, kind EventKind) bool {
	for {
		select {
		case ev := <-c.Events:
			if ev.Kind == kind {
				return true
			}
		default:
			return false
		}
	}
}

func drainEvents(c *Client) {
	for {
		select {
		case <-c.Events:
		default:
			return
		}
	}
}

// lastRoomState drains the event buffer and returns the freshest room view.
func lastRoomState(t *testing.T, c *Client) *RoomState {
	t.Helper()

	var state *RoomState
	for {
		select {
		case ev := <-c.Events:
			if ev.Kind == EventRoomState {
				state = ev.State
			}
		default:
			if state == nil {
				t.Fatal("no room state event buffered")
			}
			return state
		}
	}
}

func dispatchOK(t *testing.T, h *Hub, c *Client, event string, args ...any) Result {
	t.Helper()

	res, err := h.Dispatch(c, event, args)
	if err != nil {
		t.Fatalf("dispatch %s: %v", event, err)
	}
	if res.Status != StatusOK {
		t.Fatalf("dispatch %s failed: %s", event, res.FailMessage)
	}
	return res
}

func dispatchFail(t *testing.T, h *Hub, c *Client, event string, args ...any) string {
	t.Helper()

	res, err := h.Dispatch(c, event, args)
	if err != nil {
		t.Fatalf("dispatch %s: %v", event, err)
	}
	if res.Status != StatusFail {
		t.Fatalf("dispatch %s unexpectedly succeeded", event)
	}
	return res.FailMessage
}
