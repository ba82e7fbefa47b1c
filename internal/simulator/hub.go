// ABOUTME: Hub of simulator sessions keyed by browser cookie
// ABOUTME: TTL eviction of idle sessions and a hard cap with LRU fallback

package simulator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// cleanupInterval is how often the janitor scans for idle sessions.
const cleanupInterval = time.Minute

// Hub manages the simulator sessions of all connected operators.
type Hub struct {
	ttl    time.Duration
	max    int
	logger *slog.Logger
	cancel context.CancelFunc

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewHub creates a Hub evicting sessions idle longer than ttl and holding at
// most max sessions. The janitor goroutine runs until Close.
func NewHub(ttl time.Duration, max int, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if max <= 0 {
		max = 64
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		ttl:      ttl,
		max:      max,
		logger:   logger.With("component", "simulator"),
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
	go h.cleanupLoop(ctx)
	return h
}

// GetOrCreate returns the session for id, creating a fresh one under a new
// id when id is empty or unknown. The returned session's ID is what the
// handler should store in the cookie.
func (h *Hub) GetOrCreate(id string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if id != "" {
		if session, ok := h.sessions[id]; ok {
			session.mu.Lock()
			session.touch()
			session.mu.Unlock()
			return session
		}
	}

	if len(h.sessions) >= h.max {
		h.evictOldestLocked()
	}

	session := newSession(uuid.New().String())
	h.sessions[session.ID] = session
	h.logger.Debug("simulator session created", "session_id", session.ID)
	return session
}

// Get returns an existing session without creating one.
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	session, ok := h.sessions[id]
	return session, ok
}

// Remove drops a session from the hub.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// Len reports the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// evictOldestLocked removes the least recently used session. Callers must
// hold h.mu.
func (h *Hub) evictOldestLocked() {
	var oldestID string
	var oldestUsed time.Time
	for id, session := range h.sessions {
		session.mu.Lock()
		used := session.lastUsed
		session.mu.Unlock()
		if oldestID == "" || used.Before(oldestUsed) {
			oldestID = id
			oldestUsed = used
		}
	}
	if oldestID != "" {
		delete(h.sessions, oldestID)
		h.logger.Debug("simulator session evicted", "session_id", oldestID)
	}
}

// cleanupLoop periodically removes sessions idle past the TTL.
func (h *Hub) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.cleanupStale()
		}
	}
}

// cleanupStale removes sessions idle longer than the TTL.
func (h *Hub) cleanupStale() {
	now := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, session := range h.sessions {
		if session.idleSince(now) > h.ttl {
			delete(h.sessions, id)
			h.logger.Debug("simulator session expired", "session_id", id)
		}
	}
}

// Close stops the janitor and drops all sessions.
func (h *Hub) Close() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range h.sessions {
		delete(h.sessions, id)
	}
}
