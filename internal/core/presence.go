package core

import (
	"sort"

	"github.com/samber/lo"
)

// PresenceTable tracks room membership by username. Rooms are created
// lazily on first join and retained when empty; absent and empty rooms
// answer queries identically, so no pruning is required for correctness.
type PresenceTable struct {
	rooms map[string]map[string]struct{}
}

// NewPresenceTable constructs an empty presence table.
func NewPresenceTable() *PresenceTable {
	return &PresenceTable{rooms: make(map[string]map[string]struct{})}
}

// Join adds the user to the room's member set, creating the room if needed.
// Adding twice is a no-op. Returns the full member list for broadcast.
func (p *PresenceTable) Join(room, user string) []string {
	members, ok := p.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		p.rooms[room] = members
	}
	members[user] = struct{}{}
	return memberList(members)
}

// Leave removes the user if present and returns the remaining member list.
// The room entry is retained when it empties.
func (p *PresenceTable) Leave(room, user string) []string {
	members, ok := p.rooms[room]
	if !ok {
		return []string{}
	}
	delete(members, user)
	return memberList(members)
}

// Members returns the current member list. Unknown rooms resolve to an
// empty list rather than an error.
func (p *PresenceTable) Members(room string) []string {
	members, ok := p.rooms[room]
	if !ok {
		return []string{}
	}
	return memberList(members)
}

// Rooms returns the ids of all rooms that currently have members.
func (p *PresenceTable) Rooms() []string {
	ids := make([]string, 0, len(p.rooms))
	for id, members := range p.rooms {
		if len(members) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// memberList snapshots a set as a sorted slice. Sorting keeps broadcasts
// deterministic; consumers must not depend on order.
func memberList(set map[string]struct{}) []string {
	list := lo.Keys(set)
	sort.Strings(list)
	return list
}
