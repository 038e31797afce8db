// README: Session manager owns session lifecycle: create, lookup, teardown and idle expiry.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"taxifare/internal/config"
	"taxifare/internal/modules/history"
	"taxifare/internal/modules/prediction"
)

// StoreFactory returns the history store for a new session.
type StoreFactory func(sessionID string) history.Store

type Manager struct {
	predictor prediction.Predictor
	stores    StoreFactory
	cfg       config.SessionConfig
	now       func() time.Time

	// tasks run under base so they survive the HTTP request that started them
	base context.Context

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(base context.Context, predictor prediction.Predictor, stores StoreFactory, cfg config.SessionConfig) *Manager {
	if stores == nil {
		stores = func(string) history.Store { return history.NewMemoryStore() }
	}
	return &Manager{
		predictor: predictor,
		stores:    stores,
		cfg:       cfg,
		now:       time.Now,
		base:      base,
		sessions:  make(map[string]*Session),
	}
}

// Context is the parent for prediction tasks started by this manager.
func (m *Manager) Context() context.Context {
	return m.base
}

func (m *Manager) Create() *Session {
	id := uuid.NewString()
	s := newSession(id, m.predictor, m.stores(id), m.now())

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	log.Printf("session %s: created", id)
	return s
}

// Get returns the session and marks it as recently seen.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(m.now())
	return s, nil
}

// GetOrCreate resolves id, creating a fresh session when it is unknown.
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		if s, err := m.Get(id); err == nil {
			return s
		}
	}
	return m.Create()
}

func (m *Manager) Teardown(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	log.Printf("session %s: teardown", id)
	return s.teardown(ctx)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ExpireIdle tears down sessions idle for longer than the configured TTL.
// Sessions with a pending prediction are never expired.
func (m *Manager) ExpireIdle(ctx context.Context) int {
	if m.cfg.TTL <= 0 {
		return 0
	}
	now := m.now()

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if s.idleSince(now) > m.cfg.TTL {
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	n := 0
	for _, id := range expired {
		if err := m.Teardown(ctx, id); err != nil {
			log.Printf("session %s: expire: %v", id, err)
			continue
		}
		n++
	}
	return n
}

func (m *Manager) RunJanitor(ctx context.Context) {
	tick := m.cfg.JanitorTick
	if tick <= 0 {
		tick = time.Minute
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.ExpireIdle(ctx); n > 0 {
				log.Printf("session janitor: expired %d sessions", n)
			}
		}
	}
}
