package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"portmon/internal/combat"
	"portmon/internal/config"
	"portmon/internal/logging"
	"portmon/internal/util"
)

// Session is one battle plus the sockets watching it.
type Session struct {
	ID     string
	Battle *combat.Battle

	mu       sync.Mutex
	lastSeen time.Time
	clients  map[*client]struct{}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) attach(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Session) detach(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

// idleSince reports whether nobody is connected and the session has not
// been used since cutoff.
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients) == 0 && s.lastSeen.Before(cutoff)
}

func (s *Session) close() {
	s.Battle.Close()
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		c.stop()
	}
}

// Hub owns every live session. Sessions exist only in memory.
type Hub struct {
	data     *config.Data
	settings *config.Settings
	sleep    func(time.Duration)
	now      func() time.Time
	seq      atomic.Int64

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewHub(data *config.Data, settings *config.Settings, sleep func(time.Duration)) *Hub {
	return &Hub{
		data:     data,
		settings: settings,
		sleep:    sleep,
		now:      time.Now,
		sessions: map[string]*Session{},
	}
}

func (h *Hub) Create() *Session {
	id := uuid.NewString()
	seed := util.Derive(h.settings.Seed, 0, int(h.seq.Add(1)))
	b := combat.NewBattle(h.data, combat.Options{
		Rng:       util.New(seed),
		Pacing:    combat.PacingFrom(h.settings.Pacing),
		Sleep:     h.sleep,
		TeamSize:  h.settings.TeamSize,
		AutoDelay: h.settings.AutoBattle.Delay(),
		ID:        id,
	})
	s := &Session{ID: id, Battle: b, lastSeen: h.now(), clients: map[*client]struct{}{}}
	h.mu.Lock()
	h.sessions[id] = s
	n := len(h.sessions)
	h.mu.Unlock()
	logging.Info("session created", logging.Fields{"session": id, "live": n})
	return s
}

// Get returns the session and marks it as used.
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	s, ok := h.sessions[id]
	h.mu.RUnlock()
	if ok {
		s.touch(h.now())
	}
	return s, ok
}

func (h *Hub) Remove(id string) bool {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return false
	}
	s.close()
	logging.Info("session removed", logging.Fields{"session": id})
	return true
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Sweep drops sessions nobody has touched for ttl and returns how many
// went.
func (h *Hub) Sweep(ttl time.Duration) int {
	cutoff := h.now().Add(-ttl)
	var stale []string
	h.mu.RLock()
	for id, s := range h.sessions {
		if s.idleSince(cutoff) {
			stale = append(stale, id)
		}
	}
	h.mu.RUnlock()
	n := 0
	for _, id := range stale {
		if h.Remove(id) {
			n++
		}
	}
	if n > 0 {
		logging.Info("swept idle sessions", logging.Fields{"removed": n, "ttl": ttl.String()})
	}
	return n
}

// RunSweeper sweeps every interval until stop is closed.
func (h *Hub) RunSweeper(interval, ttl time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			h.Sweep(ttl)
		case <-stop:
			return
		}
	}
}
