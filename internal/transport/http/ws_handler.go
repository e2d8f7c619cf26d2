package http

import (
	"context"
	"errors"
	"io"
	"net"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/clipparty/clipparty-server/internal/core"
	"github.com/clipparty/clipparty-server/internal/proto"
	"github.com/clipparty/clipparty-server/internal/utils"
)

// sessionIDParam is the handshake query parameter carrying a resume token.
const sessionIDParam = "session_id"

// WSHandler upgrades HTTP connections and bridges them to the hub.
type WSHandler struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{hub: hub, log: logger}
}

// kickError reports that the hub force-closed this connection.
type kickError struct {
	reason string
}

func (e *kickError) Error() string { return e.reason }

// Handle runs the handshake gate, upgrades, and pumps the connection until
// it drops. Handshake-fatal rejections answer the plain HTTP request before
// any event exchange.
func (h *WSHandler) Handle(c *gin.Context) {
	addr := clientAddr(c)
	sessionID := c.Query(sessionIDParam)

	if err := h.hub.Admit(addr, sessionID); err != nil {
		h.log.Warn().Err(err).Str("addr", addr).Msg("handshake refused")
		c.String(handshakeStatus(err), err.Error())
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client := core.NewClient(utils.NewConnID(), addr)
	resumed, err := h.hub.Register(client, sessionID)
	if err != nil {
		conn.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}
	h.log.Debug().Str("client_id", client.ID).Bool("resumed", resumed).Msg("ws connected")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	acks := make(chan proto.Outbound, 8)
	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client, acks)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client, acks)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	var kicked *kickError
	if errors.As(err, &kicked) {
		// The hub already finalized this session; Disconnect is a no-op.
		h.hub.Disconnect(client, core.ReasonClientClose)
		conn.Close(websocket.StatusNormalClosure, kicked.reason)
		return
	}

	reason := classifyDisconnect(err)
	h.hub.Disconnect(client, reason)
	if reason.Expected() {
		conn.Close(websocket.StatusNormalClosure, "closing")
		return
	}
	h.log.Warn().Err(err).Str("client_id", client.ID).Msg("ws connection dropped")
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client, acks chan<- proto.Outbound) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		result, err := h.hub.Dispatch(client, inbound.Type, inbound.Args)
		if err != nil {
			// Internal invariant violation; abort the connection loudly.
			return err
		}

		select {
		case acks <- ackFromResult(inbound.Seq, result):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client, acks <-chan proto.Outbound) error {
	for {
		select {
		case event := <-client.Events:
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				return err
			}
		case ack := <-acks:
			if err := wsjson.Write(ctx, conn, ack); err != nil {
				return err
			}
		case reason := <-client.Kicks():
			return &kickError{reason: reason}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// classifyDisconnect maps a connection error to the disconnect taxonomy:
// explicit close frames are expected, everything else is an unexpected
// transport failure.
func classifyDisconnect(err error) core.DisconnectReason {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return core.ReasonClientClose
	case websocket.StatusAbnormalClosure:
		return core.ReasonTransportClose
	case -1:
		// No close frame at all.
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return core.ReasonTimeout
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, net.ErrClosed):
			return core.ReasonTransportClose
		default:
			return core.ReasonTransportError
		}
	default:
		return core.ReasonTransportError
	}
}

func handshakeStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrTooManyConnections):
		return stdhttp.StatusTooManyRequests
	case errors.Is(err, core.ErrRoomGone):
		return stdhttp.StatusGone
	default:
		return stdhttp.StatusInternalServerError
	}
}

// clientAddr is the throttling key: the source address without the port.
func clientAddr(c *gin.Context) string {
	return c.ClientIP()
}
