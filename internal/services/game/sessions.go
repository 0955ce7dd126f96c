package game

import (
	"sync"

	"github.com/google/uuid"
)

// SessionRegistry maps live connections to ephemeral user identities.
// Every register/remove pushes the new online count to all sessions.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]Session // connID -> session
	dsp      Dispatcher
}

func NewSessionRegistry(dsp Dispatcher) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]Session),
		dsp:      dsp,
	}
}

// Register creates a session with a fresh userId and a generated display
// name. It never fails.
func (r *SessionRegistry) Register(connID string) Session {
	sess := Session{
		ConnID:      connID,
		UserID:      uuid.NewString(),
		DisplayName: randomDisplayName(),
	}

	r.mu.Lock()
	r.sessions[connID] = sess
	count := len(r.sessions)
	r.mu.Unlock()

	r.dsp.BroadcastAll(EventOnlineUpdate, count)
	return sess
}

func (r *SessionRegistry) Lookup(connID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[connID]
	return sess, ok
}

// Remove deletes the session; removing an unknown connID is a no-op and
// does not broadcast.
func (r *SessionRegistry) Remove(connID string) {
	r.mu.Lock()
	_, ok := r.sessions[connID]
	if ok {
		delete(r.sessions, connID)
	}
	count := len(r.sessions)
	r.mu.Unlock()

	if ok {
		r.dsp.BroadcastAll(EventOnlineUpdate, count)
	}
}

// FindByUserID resolves a session by its ephemeral user identity. The
// registry stays small (one entry per live connection), so a scan is fine.
func (r *SessionRegistry) FindByUserID(userID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sess := range r.sessions {
		if sess.UserID == userID {
			return sess, true
		}
	}
	return Session{}, false
}

func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
