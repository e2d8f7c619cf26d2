package core

import "testing"

func TestSolitaryHostReadyConsensus(t *testing.T) {
	hub := newTestHub(t, testLimits())
	host, _ := connect(t, hub, "c1", "10.0.0.1")
	dispatchOK(t, hub, host, "createRoom", "alice")
	drainEvents(host)

	dispatchOK(t, hub, host, "toggleReady")

	if !hasEvent(host, EventRoomReady) {
		t.Fatal("solitary host should reach consensus instantly")
	}
	state := lastRoomState(t, host)
	if state.Members[0].IsReady {
		t.Fatal("ready flag should be reset after consensus")
	}
}

func TestUnanimousToggleResetsAndNotifiesHostOnly(t *testing.T) {
	hub := newTestHub(t, testLimits())
	host, _ := connect(t, hub, "c1", "10.0.0.1")
	roomName := dispatchOK(t, hub, host, "createRoom", "alice").Data.(string)

	guestA, _ := connect(t, hub, "c2", "10.0.0.2")
	dispatchOK(t, hub, guestA, "joinRoom", "bob", roomName)
	guestB, _ := connect(t, hub, "c3", "10.0.0.3")
	dispatchOK(t, hub, guestB, "joinRoom", "carol", roomName)

	dispatchOK(t, hub, guestA, "toggleReady")
	dispatchOK(t, hub, guestB, "toggleReady")
	drainEvents(host)
	drainEvents(guestA)
	drainEvents(guestB)

	// The Nth toggle makes it unanimous.
	dispatchOK(t, hub, host, "toggleReady")

	ready := 0
	for hasEvent(host, EventRoomReady) {
		ready++
	}
	if ready != 1 {
		t.Fatalf("expected exactly one roomReady for the host, got %d", ready)
	}
	if hasEvent(guestA, EventRoomReady) || hasEvent(guestB, EventRoomReady) {
		t.Fatal("roomReady must go to the host only")
	}

	state := lastRoomState(t, guestA)
	for _, m := range state.Members {
		if m.IsReady {
			t.Fatalf("flag not reset for %q", m.Username)
		}
	}
}

func TestDepartureOfSoleNonReadyMemberTriggersConsensus(t *testing.T) {
	hub := newTestHub(t, testLimits())
	host, _ := connect(t, hub, "c1", "10.0.0.1")
	roomName := dispatchOK(t, hub, host, "createRoom", "alice").Data.(string)

	guestA, _ := connect(t, hub, "c2", "10.0.0.2")
	dispatchOK(t, hub, guestA, "joinRoom", "bob", roomName)
	guestB, _ := connect(t, hub, "c3", "10.0.0.3")
	dispatchOK(t, hub, guestB, "joinRoom", "carol", roomName)

	dispatchOK(t, hub, host, "toggleReady")
	dispatchOK(t, hub, guestA, "toggleReady")
	drainEvents(host)

	// carol never toggled; her departure makes the remainder unanimous.
	hub.Disconnect(guestB, ReasonClientClose)

	if !hasEvent(host, EventRoomReady) {
		t.Fatal("expected consensus after sole non-ready member left")
	}
	state := lastRoomState(t, host)
	for _, m := range state.Members {
		if m.IsReady {
			t.Fatalf("flag not reset for %q", m.Username)
		}
	}
}

func TestToggleOffBlocksConsensus(t *testing.T) {
	hub := newTestHub(t, testLimits())
	host, _ := connect(t, hub, "c1", "10.0.0.1")
	roomName := dispatchOK(t, hub, host, "createRoom", "alice").Data.(string)

	guest, _ := connect(t, hub, "c2", "10.0.0.2")
	dispatchOK(t, hub, guest, "joinRoom", "bob", roomName)

	dispatchOK(t, hub, guest, "toggleReady")
	dispatchOK(t, hub, guest, "toggleReady") // back off
	drainEvents(host)

	dispatchOK(t, hub, host, "toggleReady")
	if hasEvent(host, EventRoomReady) {
		t.Fatal("consensus fired while a member was not ready")
	}
}
