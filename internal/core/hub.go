package core

import (
	"context"

	"github.com/rs/zerolog"
)

// clientCommand pairs an inbound command with the connection that sent it.
type clientCommand struct {
	client *Client
	cmd    *Command
}

type membersQuery struct {
	room  string
	reply chan []string
}

type roomsQuery struct {
	reply chan []string
}

// Hub is the event fanout engine. It owns the registry, presence table and
// typing table exclusively: all mutation happens inside Run, one event at a
// time, so no locks are needed and ordering is simply the arrival order of
// events into the loop.
type Hub struct {
	log *zerolog.Logger

	registry *Registry
	presence *PresenceTable
	typing   *TypingTable

	// clients is the set of live connections. Commands racing in after
	// disconnect cleanup are dropped, so a dead client cannot re-enter
	// the tables.
	clients map[*Client]struct{}

	// audience maps a room to the live connections receiving its
	// broadcasts. Presence is keyed by username; this is the
	// transport-side view needed to actually deliver events.
	audience map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	members    chan membersQuery
	rooms      chan roomsQuery
}

// NewHub constructs a hub with empty state tables.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		log:        logger,
		registry:   NewRegistry(),
		presence:   NewPresenceTable(),
		typing:     NewTypingTable(),
		clients:    make(map[*Client]struct{}),
		audience:   make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		members:    make(chan membersQuery),
		rooms:      make(chan roomsQuery),
	}
}

// RegisterClient announces a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient runs disconnect cleanup for a connection. The client's
// Events channel is closed once cleanup is done.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Members reports the current member list of a room through the event loop,
// so reads never race the loop's writes.
func (h *Hub) Members(ctx context.Context, room string) ([]string, error) {
	q := membersQuery{room: room, reply: make(chan []string, 1)}
	select {
	case h.members <- q:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-q.reply:
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Rooms reports the ids of rooms that currently have members.
func (h *Hub) Rooms(ctx context.Context) ([]string, error) {
	q := roomsQuery{reply: make(chan []string, 1)}
	select {
	case h.rooms <- q:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-q.reply:
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run processes events until the context is cancelled. Exactly one inbound
// event is handled at a time; each mutate-then-broadcast sequence is atomic
// with respect to every other event.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(ctx, c)
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case cc := <-h.commands:
			if _, ok := h.clients[cc.client]; ok {
				h.dispatch(cc.client, cc.cmd)
			}
		case q := <-h.members:
			q.reply <- h.presence.Members(q.room)
		case q := <-h.rooms:
			q.reply <- h.presence.Rooms()
		}
	}
}

// pump forwards a client's commands into the single event loop, preserving
// per-connection ordering.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd.Room, cmd.User)
	case CommandLeaveRoom:
		h.handleLeave(c, cmd.Room, cmd.User)
	case CommandSendMessage:
		h.handleMessage(c, cmd.Room, cmd.User, cmd.Text)
	case CommandTypingStart:
		h.handleTypingStart(c, cmd.Room, cmd.User)
	case CommandTypingStop:
		h.handleTypingStop(c, cmd.Room, cmd.User)
	}
}

func (h *Hub) handleJoin(c *Client, room, user string) {
	if room == "" || user == "" {
		return
	}
	// One room per connection: a re-join moves the connection, and the
	// previous room sees a normal departure first.
	if prevUser, prevRoom, ok := h.registry.Lookup(c); ok && (prevRoom != room || prevUser != user) {
		h.handleLeave(c, prevRoom, prevUser)
	}

	h.registry.Identify(c, user, room)
	members := h.presence.Join(room, user)
	h.typing.EnsureRoom(room)
	h.joinAudience(room, c)

	h.broadcast(room, &Event{Kind: EventUserJoined, Room: room, User: user, Users: members}, c)
	// Roster snapshot goes to the full room, joiner included, so every
	// client converges on the same member list through one mechanism.
	h.broadcast(room, &Event{Kind: EventRoomUsers, Room: room, Users: members}, nil)

	h.log.Debug().Str("client_id", c.ID).Str("room", room).Str("user", user).Msg("user joined room")
}

func (h *Hub) handleLeave(c *Client, room, user string) {
	// Leaving before joining is a no-op.
	curUser, curRoom, ok := h.registry.Lookup(c)
	if !ok {
		return
	}

	h.leaveAudience(room, c)
	if typers, changed := h.typing.Stop(room, user); changed {
		h.broadcast(room, &Event{Kind: EventTypingUpdate, Room: room, Users: typers}, c)
	}
	members := h.presence.Leave(room, user)
	h.broadcast(room, &Event{Kind: EventUserLeft, Room: room, User: user, Users: members}, c)

	// The binding is only cleared when it matches what is being left;
	// otherwise a stale leave would orphan the connection's real room.
	if curRoom == room && curUser == user {
		h.registry.Forget(c)
	}

	h.log.Debug().Str("client_id", c.ID).Str("room", room).Str("user", user).Msg("user left room")
}

func (h *Hub) handleMessage(c *Client, room, user, text string) {
	if room == "" {
		return
	}
	// Unidentified connections are ignored.
	if _, _, ok := h.registry.Lookup(c); !ok {
		return
	}
	// Sending a message implies the user stopped typing.
	if typers, changed := h.typing.Stop(room, user); changed {
		h.broadcast(room, &Event{Kind: EventTypingUpdate, Room: room, Users: typers}, c)
	}
	// The sender renders its own copy optimistically on submit, so the
	// message goes to everyone else.
	msg := NewMessage(user, text)
	h.broadcast(room, &Event{Kind: EventReceiveMessage, Room: room, Message: msg}, c)

	h.log.Debug().Str("client_id", c.ID).Str("room", room).Str("user", user).Str("message_id", msg.ID).Msg("message relayed")
}

func (h *Hub) handleTypingStart(c *Client, room, user string) {
	if _, _, ok := h.registry.Lookup(c); !ok {
		return
	}
	typers := h.typing.Start(room, user)
	if typers == nil {
		return
	}
	h.broadcast(room, &Event{Kind: EventTypingUpdate, Room: room, Users: typers}, c)
}

func (h *Hub) handleTypingStop(c *Client, room, user string) {
	if _, _, ok := h.registry.Lookup(c); !ok {
		return
	}
	typers, _ := h.typing.Stop(room, user)
	if typers == nil {
		return
	}
	h.broadcast(room, &Event{Kind: EventTypingUpdate, Room: room, Users: typers}, c)
}

// handleDisconnect recovers the connection's (username, room) pair and
// scrubs it from both tables. A connection that never joined produces no
// broadcasts and no mutation.
func (h *Hub) handleDisconnect(c *Client) {
	delete(h.clients, c)
	user, room, ok := h.registry.Forget(c)
	if ok {
		h.leaveAudience(room, c)
		for _, r := range h.typing.ClearForUser(user) {
			h.broadcast(r, &Event{Kind: EventTypingUpdate, Room: r, Users: h.typing.Typing(r)}, nil)
		}
		members := h.presence.Leave(room, user)
		h.broadcast(room, &Event{Kind: EventUserLeft, Room: room, User: user, Users: members}, nil)

		h.log.Debug().Str("client_id", c.ID).Str("room", room).Str("user", user).Msg("user disconnected")
	}
	close(c.Events)
}

func (h *Hub) joinAudience(room string, c *Client) {
	conns, ok := h.audience[room]
	if !ok {
		conns = make(map[*Client]struct{})
		h.audience[room] = conns
	}
	conns[c] = struct{}{}
}

func (h *Hub) leaveAudience(room string, c *Client) {
	conns, ok := h.audience[room]
	if !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.audience, room)
	}
}

// broadcast delivers an event to every connection in the room's audience
// except skip. Sends are non-blocking: a slow consumer drops the event
// rather than stalling the loop or other recipients.
func (h *Hub) broadcast(room string, event *Event, skip *Client) {
	for c := range h.audience[room] {
		if c == skip {
			continue
		}
		select {
		case c.Events <- event:
		default:
			h.log.Warn().Str("client_id", c.ID).Str("room", room).Msg("dropping event for slow consumer")
		}
	}
}
