package core

// Client is a single live connection as seen by the core layer. Identity
// (username, room) is not stored here; it lives in the Registry so the hub
// can recover the pair for cleanup after the transport is gone.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
	}
}
