package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom    = "join-room"
	InboundTypeLeaveRoom   = "leave-room"
	InboundTypeSendMessage = "send-message"
	InboundTypeTypingStart = "typing-start"
	InboundTypeTypingStop  = "typing-stop"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventUserJoined     = "user-joined"
	EventUserLeft       = "user-left"
	EventRoomUsers      = "room-users"
	EventTypingUpdate   = "typing-update"
	EventReceiveMessage = "receive-message"
)

// JoinRoomData requests to join a room under a username.
type JoinRoomData struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// LeaveRoomData requests to leave a room.
type LeaveRoomData struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// SendMessageData is a chat message from the client.
type SendMessageData struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
	User    string `json:"user"`
}

// TypingData signals a typing state change. Shared by typing-start and
// typing-stop.
type TypingData struct {
	RoomID string `json:"roomId"`
	User   string `json:"user"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// UserJoinedData notifies that a user joined, with the new roster.
type UserJoinedData struct {
	Username string   `json:"username"`
	Users    []string `json:"users"`
}

// UserLeftData notifies that a user left, with the remaining roster.
type UserLeftData struct {
	Username string   `json:"username"`
	Users    []string `json:"users"`
}

// ReceiveMessageData is a relayed chat message. Timestamp is ISO-8601.
// room-users and typing-update events carry a bare string list instead of
// a struct; the typing list is unfiltered and receiving clients drop their
// own name.
type ReceiveMessageData struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
