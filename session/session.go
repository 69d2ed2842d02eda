// Package session keeps one report controller per browser.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"github.com/mbolis/case-report/log"
	"github.com/mbolis/case-report/model"
	"github.com/mbolis/case-report/report"
)

type Session struct {
	ID         string
	Controller *report.Controller

	mu       sync.Mutex
	pending  []model.Notification
	lastSeen time.Time
}

// Notify queues a notification until the next render.
func (s *Session) Notify(n model.Notification) {
	s.mu.Lock()
	s.pending = append(s.pending, n)
	s.mu.Unlock()
}

// Drain returns and clears the queued notifications.
func (s *Session) Drain() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time

	transmitter report.Transmitter
	// OnCountChange, if set, receives the session count after every change.
	OnCountChange func(int)
}

func NewStore(t report.Transmitter, ttl time.Duration) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		now:         time.Now,
		transmitter: t,
	}
}

// Get returns the live session with the given id and marks it as used.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, false
	}
	now := st.now()
	if s.idleSince(now) > st.ttl {
		st.remove(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

// New creates a session holding a fresh, empty form.
func (st *Store) New() (*Session, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	s := &Session{ID: id.String(), lastSeen: st.now()}
	s.Controller = report.NewController(st.transmitter, s)

	st.mu.Lock()
	st.sessions[s.ID] = s
	n := len(st.sessions)
	st.mu.Unlock()

	st.countChanged(n)
	return s, nil
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	n := len(st.sessions)
	st.mu.Unlock()
	st.countChanged(n)
}

// Sweep drops every session idle for longer than the TTL and returns how
// many were dropped.
func (st *Store) Sweep() int {
	now := st.now()

	st.mu.Lock()
	dropped := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			dropped++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	if dropped > 0 {
		st.countChanged(n)
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				log.Debugf("session.sweep: dropped %d idle sessions", n)
			}
		}
	}
}

func (st *Store) countChanged(n int) {
	if st.OnCountChange != nil {
		st.OnCountChange(n)
	}
}
