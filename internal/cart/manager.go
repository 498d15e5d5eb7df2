package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager hands out one Store per browsing session.
type Manager struct {
	lookup      Lookup
	pricing     Pricing
	side        SideStore
	saveTimeout time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
	closing  map[string]chan struct{}
	now      func() time.Time
}

type session struct {
	store      *Store
	lastAccess time.Time
	ready      chan struct{}
}

// NewManager builds a session registry. side may be nil, in which case carts
// live only in memory.
func NewManager(lookup Lookup, pricing Pricing, side SideStore, saveTimeout time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		lookup:      lookup,
		pricing:     pricing,
		side:        side,
		saveTimeout: saveTimeout,
		logger:      logger,
		sessions:    make(map[string]*session),
		closing:     make(map[string]chan struct{}),
		now:         time.Now,
	}
}

// Session returns the cart for sessionID, creating it on first use and
// restoring it once from the side-store. A session being evicted is
// recreated only after its last mirror write.
func (m *Manager) Session(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	for {
		done, ok := m.closing[sessionID]
		if !ok {
			break
		}
		m.mu.Unlock()
		<-done
		m.mu.Lock()
	}
	if sess, ok := m.sessions[sessionID]; ok {
		sess.lastAccess = m.now()
		m.mu.Unlock()
		<-sess.ready
		return sess.store
	}

	opts := []Option{
		WithLogger(m.logger.With(zap.String("session_id", sessionID))),
		WithSaveTimeout(m.saveTimeout),
	}
	if m.side != nil {
		opts = append(opts, WithSideStore(m.side, sessionID))
	}
	sess := &session{
		store:      NewStore(m.lookup, m.pricing, opts...),
		lastAccess: m.now(),
		ready:      make(chan struct{}),
	}
	m.sessions[sessionID] = sess
	m.mu.Unlock()

	// Restore failures are logged by the store; the session starts empty.
	_ = sess.store.Restore(ctx)
	close(sess.ready)
	return sess.store
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Evict closes sessions idle for longer than maxIdle and returns how many
// were removed. Sessions with an open subscription are never idle.
func (m *Manager) Evict(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	evicted := make(map[string]*Store)
	for id, sess := range m.sessions {
		if sess.lastAccess.Before(cutoff) && sess.store.Subscribers() == 0 {
			delete(m.sessions, id)
			m.closing[id] = make(chan struct{})
			evicted[id] = sess.store
		}
	}
	m.mu.Unlock()

	for id, store := range evicted {
		m.close(id, store)
	}
	return len(evicted)
}

// close waits for the store's pending mirror writes and removes the mirror
// of a cart that was emptied, then lets the session be recreated. A store
// still at version 0 never read its mirror, so the mirror is kept.
func (m *Manager) close(sessionID string, store *Store) {
	timeout := m.saveTimeout
	if timeout <= 0 {
		timeout = defaultSaveTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := store.Flush(ctx); err != nil {
		m.logger.Warn("cart mirror flush on eviction failed", zap.String("session_id", sessionID), zap.Error(err))
	} else if m.side != nil && store.Version() > 0 && len(store.Lines()) == 0 {
		if err := m.side.Delete(ctx, sessionID); err != nil {
			m.logger.Warn("cart mirror delete failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	m.mu.Lock()
	done := m.closing[sessionID]
	delete(m.closing, sessionID)
	m.mu.Unlock()
	close(done)
}

// StartJanitor evicts idle sessions every interval until ctx is done.
func (m *Manager) StartJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := m.Evict(maxIdle); n > 0 {
					m.logger.Info("evicted idle carts", zap.Int("count", n))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Flush waits for pending mirror writes of every live session.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.sessions))
	for _, sess := range m.sessions {
		stores = append(stores, sess.store)
	}
	m.mu.Unlock()

	for _, s := range stores {
		if err := s.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}
