package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThrottleRefusesAtCeiling(t *testing.T) {
	req := require.New(t)
	limits := testLimits()
	limits.MaxConnectionsPerAddress = 2
	hub := newTestHub(t, limits)

	for i := 1; i <= 2; i++ {
		req.NoError(hub.Admit("192.0.2.1", ""))
		connect(t, hub, fmt.Sprintf("c%d", i), "192.0.2.1")
	}

	req.ErrorIs(hub.Admit("192.0.2.1", ""), ErrTooManyConnections)

	// A different address is unaffected.
	req.NoError(hub.Admit("192.0.2.2", ""))
}

func TestThrottleRefusalLeavesCountsIntact(t *testing.T) {
	req := require.New(t)
	limits := testLimits()
	limits.MaxConnectionsPerAddress = 1
	hub := newTestHub(t, limits)

	accepted, _ := connect(t, hub, "c1", "192.0.2.1")

	over := NewClient("c2", "192.0.2.1")
	_, err := hub.Register(over, "")
	req.ErrorIs(err, ErrTooManyConnections)
	req.Equal(1, hub.addrs.counts["192.0.2.1"])

	// The accepted connection still works and releases cleanly.
	hub.Disconnect(accepted, ReasonClientClose)
	req.Empty(hub.addrs.counts)
	req.NoError(hub.Admit("192.0.2.1", ""))
}

func TestThrottleDisabledWhenLimitZero(t *testing.T) {
	req := require.New(t)
	limits := testLimits()
	limits.MaxConnectionsPerAddress = 0
	hub := newTestHub(t, limits)

	for i := 0; i < 20; i++ {
		req.NoError(hub.Admit("192.0.2.1", ""))
		connect(t, hub, fmt.Sprintf("c%d", i), "192.0.2.1")
	}
}
