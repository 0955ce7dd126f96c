package ws

import (
	"sync"
)

// room is a delivery scope: the set of userIDs subscribed to one private
// chat room. Connections themselves live on the Hub.
type room struct {
	mu      sync.RWMutex
	members map[string]struct{}
}

func newRoom() *room { return &room{members: map[string]struct{}{}} }

func (r *room) add(userID string) {
	r.mu.Lock()
	r.members[userID] = struct{}{}
	r.mu.Unlock()
}

func (r *room) remove(userID string) {
	r.mu.Lock()
	delete(r.members, userID)
	r.mu.Unlock()
}

func (r *room) memberList() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.members))
	for id := range r.members {
		out = append(out, id)
	}
	return out
}
