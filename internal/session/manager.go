package session

import (
	"context"
	"sync"
	"time"

	"table-together/internal/catalog"
	"table-together/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager owns the independent sessions of the process.
type Manager struct {
	catalog   *catalog.Catalog
	observers []Observer
	logger    zerolog.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Store
}

// NewManager creates a manager whose sessions share c and report to observers.
func NewManager(c *catalog.Catalog, logger zerolog.Logger, observers ...Observer) *Manager {
	return &Manager{
		catalog:   c,
		observers: observers,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*Store),
	}
}

// Create starts a new anonymous session.
func (m *Manager) Create() *Store {
	store := NewStore(uuid.New(), m.catalog, m.logger, m.observers...)
	store.createdAt = m.now()

	m.mu.Lock()
	m.sessions[store.ID()] = store
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info().
		Str("session_id", store.ID().String()).
		Int("active_sessions", count).
		Msg("session created")

	return store
}

// Get returns the session with the given id.
func (m *Manager) Get(id uuid.UUID) (*Store, error) {
	m.mu.RLock()
	store, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return store, nil
}

// Delete ends a session. It reports whether the session existed.
func (m *Manager) Delete(id uuid.UUID) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		m.logger.Info().Str("session_id", id.String()).Msg("session ended")
	}
	return ok
}

// Expire ends every session created more than maxAge ago and returns their
// ids. Session tokens carry the same lifetime, so an expired session can no
// longer be reached.
func (m *Manager) Expire(maxAge time.Duration) []uuid.UUID {
	cutoff := m.now().Add(-maxAge)

	m.mu.Lock()
	var expired []uuid.UUID
	for id, store := range m.sessions {
		if !store.createdAt.After(cutoff) {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	if len(expired) > 0 {
		m.logger.Info().
			Int("expired", len(expired)).
			Int("active_sessions", remaining).
			Msg("expired sessions removed")
	}
	return expired
}

// RunExpiry calls Expire every interval until ctx is done. onExpire, if set,
// is called for each removed session.
func (m *Manager) RunExpiry(ctx context.Context, maxAge, interval time.Duration, onExpire func(uuid.UUID)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range m.Expire(maxAge) {
				if onExpire != nil {
					onExpire(id)
				}
			}
		}
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Catalog returns the catalog shared by all sessions.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}
