package http

import (
	"github.com/samber/lo"

	"github.com/clipparty/clipparty-server/internal/core"
	"github.com/clipparty/clipparty-server/internal/proto"
)

func ackFromResult(seq uint64, res core.Result) proto.Outbound {
	return proto.Outbound{
		Type: proto.OutboundTypeAck,
		Seq:  seq,
		Result: &proto.Result{
			Status:      res.Status,
			Data:        res.Data,
			FailMessage: res.FailMessage,
		},
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventSessionID:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameSessionID,
			Data:  proto.SessionIDData{SessionID: event.SessionID},
		}
	case core.EventRoomState:
		clipboard := event.State.Clipboard
		if clipboard == nil {
			clipboard = []string{}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameRoomStateChange,
			Data: proto.RoomStateData{
				Clipboard: clipboard,
				MembersState: lo.Map(event.State.Members, func(m core.MemberState, _ int) proto.MemberState {
					return proto.MemberState{
						Username: m.Username,
						IsHost:   m.IsHost,
						IsReady:  m.IsReady,
					}
				}),
			},
		}
	case core.EventRoomReady:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameRoomReady,
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
