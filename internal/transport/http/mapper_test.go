package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roomrelay/server/internal/core"
	"github.com/roomrelay/server/internal/proto"
)

func inbound(t *testing.T, typ string, data any) proto.Inbound {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return proto.Inbound{Type: typ, Data: raw}
}

func TestInboundToCommand(t *testing.T) {
	tests := []struct {
		name     string
		inbound  proto.Inbound
		wantCmd  *core.Command
		wantCode string
	}{
		{
			name:    "join room",
			inbound: inbound(t, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "general", Username: "alice"}),
			wantCmd: &core.Command{Kind: core.CommandJoinRoom, Room: "general", User: "alice"},
		},
		{
			name:     "join without username",
			inbound:  inbound(t, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "general"}),
			wantCode: core.ErrCodeBadRequest,
		},
		{
			name:    "leave room",
			inbound: inbound(t, proto.InboundTypeLeaveRoom, proto.LeaveRoomData{RoomID: "general", Username: "alice"}),
			wantCmd: &core.Command{Kind: core.CommandLeaveRoom, Room: "general", User: "alice"},
		},
		{
			name:    "send message",
			inbound: inbound(t, proto.InboundTypeSendMessage, proto.SendMessageData{RoomID: "general", Message: "hi", User: "alice"}),
			wantCmd: &core.Command{Kind: core.CommandSendMessage, Room: "general", User: "alice", Text: "hi"},
		},
		{
			name:     "send message without room",
			inbound:  inbound(t, proto.InboundTypeSendMessage, proto.SendMessageData{Message: "hi", User: "alice"}),
			wantCode: core.ErrCodeBadRequest,
		},
		{
			name:    "typing start",
			inbound: inbound(t, proto.InboundTypeTypingStart, proto.TypingData{RoomID: "general", User: "alice"}),
			wantCmd: &core.Command{Kind: core.CommandTypingStart, Room: "general", User: "alice"},
		},
		{
			name:    "typing stop",
			inbound: inbound(t, proto.InboundTypeTypingStop, proto.TypingData{RoomID: "general", User: "alice"}),
			wantCmd: &core.Command{Kind: core.CommandTypingStop, Room: "general", User: "alice"},
		},
		{
			name:     "malformed payload",
			inbound:  proto.Inbound{Type: proto.InboundTypeJoinRoom, Data: json.RawMessage(`"not an object"`)},
			wantCode: core.ErrCodeBadRequest,
		},
		{
			name:     "unknown type",
			inbound:  inbound(t, "bogus", struct{}{}),
			wantCode: core.ErrCodeInvalidMessage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, protoErr := inboundToCommand(tc.inbound)
			if tc.wantCode != "" {
				require.Nil(t, cmd)
				require.NotNil(t, protoErr)
				require.Equal(t, tc.wantCode, protoErr.Code)
				return
			}
			require.Nil(t, protoErr)
			require.Equal(t, tc.wantCmd, cmd)
		})
	}
}

func TestOutboundFromEvent(t *testing.T) {
	out := outboundFromEvent(&core.Event{Kind: core.EventUserJoined, Room: "general", User: "bob", Users: []string{"alice", "bob"}})
	require.Equal(t, proto.EventUserJoined, out.Event)
	require.Equal(t, proto.UserJoinedData{Username: "bob", Users: []string{"alice", "bob"}}, out.Data)

	out = outboundFromEvent(&core.Event{Kind: core.EventRoomUsers, Room: "general", Users: []string{"alice"}})
	require.Equal(t, proto.EventRoomUsers, out.Event)
	require.Equal(t, []string{"alice"}, out.Data)

	out = outboundFromEvent(&core.Event{Kind: core.EventTypingUpdate, Room: "general", Users: []string{}})
	require.Equal(t, proto.EventTypingUpdate, out.Event)
	require.Equal(t, []string{}, out.Data)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out = outboundFromEvent(&core.Event{
		Kind:    core.EventReceiveMessage,
		Room:    "general",
		Message: &core.Message{ID: "m1", Text: "hi", From: "alice", Timestamp: ts},
	})
	require.Equal(t, proto.EventReceiveMessage, out.Event)
	require.Equal(t, proto.ReceiveMessageData{
		ID:        "m1",
		Message:   "hi",
		User:      "alice",
		Timestamp: "2024-05-01T12:00:00Z",
	}, out.Data)

	out = outboundFromEvent(&core.Event{Kind: core.EventError, Error: &core.CoreError{Code: core.ErrCodeBadRequest, Message: "nope"}})
	require.Equal(t, proto.OutboundTypeError, out.Type)
	require.Equal(t, core.ErrCodeBadRequest, out.Error.Code)
}
