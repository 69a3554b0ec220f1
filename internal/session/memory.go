package session

import (
	"context"
	"sync"
	"time"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
)

// DefaultSweepInterval is how often expired sessions are dropped.
const DefaultSweepInterval = time.Minute

// MemoryStore keeps sessions in process. Contents are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttl      time.Duration
	now      func() time.Time

	stopSweep chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewMemoryStore starts a sweeper when ttl is positive.
func NewMemoryStore(ttl, sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions:  make(map[string]*domain.Session),
		ttl:       ttl,
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}
	if ttl > 0 {
		if sweepInterval <= 0 {
			sweepInterval = DefaultSweepInterval
		}
		s.wg.Add(1)
		go s.sweepLoop(sweepInterval)
	}
	return s
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expire()
		case <-s.stopSweep:
			return
		}
	}
}

func (s *MemoryStore) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) expired(sess *domain.Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		return nil, nil
	}
	return clone(sess), nil
}

func (s *MemoryStore) Put(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.UpdatedAt = s.now()
	s.sessions[sess.ID] = clone(sess)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Len reports the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the sweeper and waits for it to exit.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopSweep)
	})
	s.wg.Wait()
	return nil
}
