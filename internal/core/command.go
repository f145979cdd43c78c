package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the connection to a room under a username.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the connection from a room.
	CommandLeaveRoom
	// CommandSendMessage relays a chat message to room participants.
	CommandSendMessage
	// CommandTypingStart marks the user as typing in a room.
	CommandTypingStart
	// CommandTypingStop clears the user's typing state in a room.
	CommandTypingStop
)

// Command represents an action requested by a client. Room and User are
// taken from the client payload; the server trusts them (no auth layer).
type Command struct {
	Kind CommandKind
	Room string
	User string
	Text string
}
