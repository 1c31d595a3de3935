package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
)

var ErrSessionNotFound = errors.New("game session not found")

// SessionStore keeps in-flight sessions until they complete or expire.
type SessionStore interface {
	Create(ctx context.Context, session *models.GameSession) error
	Get(ctx context.Context, id string) (*models.GameSession, error)
	// Update applies fn atomically. If fn returns an error nothing is
	// written and the error is returned unchanged.
	Update(ctx context.Context, id string, fn func(*models.GameSession) error) (*models.GameSession, error)
	// PurgeExpired drops expired sessions and returns how many were removed.
	PurgeExpired(ctx context.Context) (int, error)
}

type memoryEntry struct {
	session   models.GameSession
	expiresAt time.Time
}

// MemoryStore is a process-local SessionStore for single-instance
// deployments and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, session *models.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = &memoryEntry{
		session:   cloneSession(session),
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s := cloneSession(&entry.session)
	return &s, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn func(*models.GameSession) error) (*models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	working := cloneSession(&entry.session)
	if err := fn(&working); err != nil {
		return nil, err
	}
	entry.session = working
	entry.expiresAt = m.now().Add(m.ttl)

	out := cloneSession(&working)
	return &out, nil
}

func (m *MemoryStore) PurgeExpired(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, entry := range m.sessions {
		if !now.Before(entry.expiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// live must be called with mu held.
func (m *MemoryStore) live(id string) (*memoryEntry, bool) {
	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.sessions, id)
		return nil, false
	}
	return entry, true
}

func cloneSession(s *models.GameSession) models.GameSession {
	out := *s
	if s.Actions != nil {
		out.Actions = append([]models.GameAction(nil), s.Actions...)
	}
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	return out
}
