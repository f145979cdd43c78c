package core

import "sort"

// TypingTable tracks which users are typing, keyed by (room, username).
// A room's typing set is created when the room sees its first join and
// typing signals for rooms without one are dropped, mirroring the guard on
// presence. There is no server-side idle timeout: stop-typing is entirely
// client-driven, and disconnect cleanup via ClearForUser is the backstop
// for crashed clients.
type TypingTable struct {
	rooms map[string]map[string]struct{}
}

// NewTypingTable constructs an empty typing table.
func NewTypingTable() *TypingTable {
	return &TypingTable{rooms: make(map[string]map[string]struct{})}
}

// EnsureRoom creates the room's typing set if absent. Called on join so
// later typing signals for the room are accepted.
func (t *TypingTable) EnsureRoom(room string) {
	if _, ok := t.rooms[room]; !ok {
		t.rooms[room] = make(map[string]struct{})
	}
}

// Start marks the user as typing. Idempotent. Returns the current typing
// list, or nil if the room has no typing set.
func (t *TypingTable) Start(room, user string) []string {
	typers, ok := t.rooms[room]
	if !ok {
		return nil
	}
	typers[user] = struct{}{}
	return memberList(typers)
}

// Stop clears the user's typing state. No-op if absent. Returns the current
// typing list (nil if the room has no typing set) and whether the set
// actually changed.
func (t *TypingTable) Stop(room, user string) ([]string, bool) {
	typers, ok := t.rooms[room]
	if !ok {
		return nil, false
	}
	_, present := typers[user]
	delete(typers, user)
	return memberList(typers), present
}

// Typing returns the current typing list for a room; empty for unknown rooms.
func (t *TypingTable) Typing(room string) []string {
	typers, ok := t.rooms[room]
	if !ok {
		return []string{}
	}
	return memberList(typers)
}

// ClearForUser removes the user from every room's typing set it appears in
// and returns the rooms whose set changed, so the caller can broadcast one
// update per affected room. Used on disconnect.
func (t *TypingTable) ClearForUser(user string) []string {
	var affected []string
	for room, typers := range t.rooms {
		if _, ok := typers[user]; ok {
			delete(typers, user)
			affected = append(affected, room)
		}
	}
	sort.Strings(affected)
	return affected
}
