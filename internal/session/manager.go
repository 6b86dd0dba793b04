package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/swipe"
	"github.com/vmaia/cardswipe/internal/worker"
)

// entry pairs a controller with its last-access time for idle expiry.
type entry struct {
	ctrl     *swipe.Controller
	lastSeen time.Time
}

// Manager keeps one swipe controller per browser session, expiring idle
// sessions so abandoned queues do not pile up.
type Manager struct {
	svc       swipe.Service
	pool      *worker.Pool
	batchSize int
	lowWater  int
	ttl       time.Duration

	mu       sync.Mutex
	sessions map[string]*entry
	stop     chan struct{}
	stopOnce sync.Once
	log      *logger.Logger
}

// NewManager creates a session manager. Call Start to begin the idle
// sweep and Stop on shutdown.
func NewManager(svc swipe.Service, pool *worker.Pool, batchSize, lowWater int, ttl time.Duration) *Manager {
	return &Manager{
		svc:       svc,
		pool:      pool,
		batchSize: batchSize,
		lowWater:  lowWater,
		ttl:       ttl,
		sessions:  make(map[string]*entry),
		stop:      make(chan struct{}),
		log:       logger.Default().WithPrefix("session"),
	}
}

// Start launches the idle-session sweeper.
func (m *Manager) Start(ctx context.Context) {
	interval := m.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

// Stop halts the sweeper and closes every live controller.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.sessions {
		e.ctrl.Close()
		delete(m.sessions, id)
	}
	m.log.Info("all sessions closed")
}

// NewID allocates a fresh session identifier.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// Get returns the controller for the given session id, creating one on
// first use, and refreshes its idle timer.
func (m *Manager) Get(id string) *swipe.Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[id]; ok {
		e.lastSeen = time.Now()
		return e.ctrl
	}

	ctrl := swipe.NewController(m.svc, m.pool, m.batchSize, m.lowWater)
	m.sessions[id] = &entry{ctrl: ctrl, lastSeen: time.Now()}
	m.log.Debug("session created: id=%s, live=%d", id, len(m.sessions))
	return ctrl
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			// Close flips the controller's liveness flag, so refills
			// landing after expiry mutate nothing.
			e.ctrl.Close()
			delete(m.sessions, id)
			m.log.Debug("session expired: id=%s", id)
		}
	}
}
