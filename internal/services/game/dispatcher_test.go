package game

import "sync"

// fakeDispatcher records every delivery so tests can assert on the exact
// fan-out the core produced.
type fakeEvent struct {
	Scope  string // "all", "room", "unicast"
	RoomID string
	UserID string
	Event  string
	Body   any
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []fakeEvent
	rooms  map[string]map[string]bool // roomID -> member userIDs
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{rooms: make(map[string]map[string]bool)}
}

func (f *fakeDispatcher) BroadcastAll(event string, body any) {
	f.record(fakeEvent{Scope: "all", Event: event, Body: body})
}

func (f *fakeDispatcher) BroadcastRoom(roomID, event string, body any) {
	f.record(fakeEvent{Scope: "room", RoomID: roomID, Event: event, Body: body})
}

func (f *fakeDispatcher) Unicast(userID, event string, body any) {
	f.record(fakeEvent{Scope: "unicast", UserID: userID, Event: event, Body: body})
}

func (f *fakeDispatcher) JoinRoom(roomID, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rooms[roomID] == nil {
		f.rooms[roomID] = make(map[string]bool)
	}
	f.rooms[roomID][userID] = true
}

func (f *fakeDispatcher) LeaveRoom(roomID, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms[roomID], userID)
}

func (f *fakeDispatcher) CloseRoom(roomID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, roomID)
}

func (f *fakeDispatcher) record(ev fakeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeDispatcher) named(event string) []fakeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeEvent
	for _, ev := range f.events {
		if ev.Event == event {
			out = append(out, ev)
		}
	}
	return out
}

func (f *fakeDispatcher) roomMembers(roomID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for id := range f.rooms[roomID] {
		out = append(out, id)
	}
	return out
}
