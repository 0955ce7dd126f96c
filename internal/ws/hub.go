package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub tracks every live connection by userID plus the member sets of the
// private chat rooms. It implements game.Dispatcher: the core pushes events
// through it without knowing anything about websockets.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*clientConn // userID -> connection

	rooms sync.Map // roomID -> *room (member userIDs)
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*clientConn)}
}

// Add registers a connection under its session's userID.
func (h *Hub) Add(userID string, c *clientConn) {
	h.mu.Lock()
	h.conns[userID] = c
	h.mu.Unlock()
}

// Remove drops the connection and closes the socket.
func (h *Hub) Remove(userID string) {
	h.mu.Lock()
	c, ok := h.conns[userID]
	delete(h.conns, userID)
	h.mu.Unlock()
	if ok {
		c.rawConn.Close()
	}
}

// BroadcastAll sends the event to every connected session.
func (h *Hub) BroadcastAll(event string, body any) {
	data, err := encodeEnvelope(event, body)
	if err != nil {
		zap.L().Warn("ws.encode", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	conns := make([]*clientConn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	// Do the I/O outside the lock; dead connections are simply skipped,
	// their reader loop tears them down.
	for _, c := range conns {
		_ = c.writeRaw(data)
	}
}

// BroadcastRoom sends the event to the members of one room.
func (h *Hub) BroadcastRoom(roomID, event string, body any) {
	v, ok := h.rooms.Load(roomID)
	if !ok {
		return
	}
	data, err := encodeEnvelope(event, body)
	if err != nil {
		zap.L().Warn("ws.encode", zap.String("event", event), zap.Error(err))
		return
	}
	for _, userID := range v.(*room).memberList() {
		if c := h.conn(userID); c != nil {
			_ = c.writeRaw(data)
		}
	}
}

// Unicast sends the event to a single session, if still connected.
func (h *Hub) Unicast(userID, event string, body any) {
	c := h.conn(userID)
	if c == nil {
		return
	}
	data, err := encodeEnvelope(event, body)
	if err != nil {
		zap.L().Warn("ws.encode", zap.String("event", event), zap.Error(err))
		return
	}
	_ = c.writeRaw(data)
}

func (h *Hub) JoinRoom(roomID, userID string) {
	r, _ := h.rooms.LoadOrStore(roomID, newRoom())
	r.(*room).add(userID)
}

func (h *Hub) LeaveRoom(roomID, userID string) {
	if v, ok := h.rooms.Load(roomID); ok {
		v.(*room).remove(userID)
	}
}

func (h *Hub) CloseRoom(roomID string) {
	h.rooms.Delete(roomID)
}

func (h *Hub) conn(userID string) *clientConn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conns[userID]
}

func encodeEnvelope(event string, body any) ([]byte, error) {
	env := map[string]any{"event": event}
	if body != nil {
		env["body"] = body
	}
	return json.Marshal(env)
}
