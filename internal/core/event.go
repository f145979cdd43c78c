package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventUserJoined notifies room members that a user joined.
	EventUserJoined EventKind = iota
	// EventUserLeft notifies room members that a user left.
	EventUserLeft
	// EventRoomUsers delivers the full roster snapshot after a join.
	EventRoomUsers
	// EventTypingUpdate delivers the current typing list for a room.
	EventTypingUpdate
	// EventReceiveMessage delivers a chat message to room members.
	EventReceiveMessage
	// EventError notifies a single client about a protocol error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
// Users carries the roster for EventUserJoined/EventUserLeft/EventRoomUsers
// and the typing list for EventTypingUpdate.
type Event struct {
	Kind    EventKind
	Room    string
	User    string
	Users   []string
	Message *Message
	Error   *CoreError
}
