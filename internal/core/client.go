package core

// Client is the transport-facing handle for one live connection: identity,
// event delivery, and a force-close signal. All session state lives in the
// hub's registries, never on the connection itself.
type Client struct {
	ID     string
	Addr   string
	Events chan *Event

	kicks chan string
}

// NewClient constructs a client with initialized channels.
func NewClient(id, addr string) *Client {
	return &Client{
		ID:     id,
		Addr:   addr,
		Events: make(chan *Event, 32),
		kicks:  make(chan string, 1),
	}
}

// send delivers an event without blocking the handler.
func (c *Client) send(ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
	}
}

// Kick asks the transport to close this connection. Only the first reason
// wins; subsequent kicks are no-ops.
func (c *Client) Kick(reason string) {
	select {
	case c.kicks <- reason:
	default:
	}
}

// Kicks exposes the force-close signal to the transport's write loop.
func (c *Client) Kicks() <-chan string {
	return c.kicks
}
