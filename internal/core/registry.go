package core

// binding is the (username, room) pair a connection claims on join.
type binding struct {
	User string
	Room string
}

// Registry maps live connections to their claimed identity. The pair stored
// here is the key used to remove the user from the presence and typing
// tables on leave or disconnect; losing it leaks state, so Forget hands it
// back to the caller.
type Registry struct {
	bindings map[*Client]binding
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[*Client]binding)}
}

// Identify records the (username, room) pair for a connection. Called once
// per join; a re-join overwrites the previous pair.
func (r *Registry) Identify(c *Client, user, room string) {
	r.bindings[c] = binding{User: user, Room: room}
}

// Lookup returns the connection's current pair, if it has one. Unidentified
// connections are simply unknown to downstream lookups.
func (r *Registry) Lookup(c *Client) (user, room string, ok bool) {
	b, ok := r.bindings[c]
	return b.User, b.Room, ok
}

// Forget removes the connection and returns its last known pair so the
// caller can run cleanup. ok is false if the connection never identified.
func (r *Registry) Forget(c *Client) (user, room string, ok bool) {
	b, ok := r.bindings[c]
	if ok {
		delete(r.bindings, c)
	}
	return b.User, b.Room, ok
}
