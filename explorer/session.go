package explorer

import "sync"

// Session queues edits between refreshes. Every edit marks exactly one
// pending entry and views are only recomputed by Sync.
type Session struct {
	mu      sync.Mutex
	state   State
	pending []Edit
	views   Views
}

func NewSession(st State) *Session {
	return &Session{state: st, views: DeriveViews(st)}
}

func (s *Session) Mark(e Edit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, e)
}

// Pending reports how many edits wait for the next Sync.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Sync applies the pending edits in order, recomputes the views once and
// clears the queue. An edit that fails is skipped; the first such error is
// returned after the rest are applied.
func (s *Session) Sync() (Views, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, e := range s.pending {
		next, err := Apply(s.state, e)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.state = next
	}
	s.pending = nil
	s.views = DeriveViews(s.state)
	return s.views, firstErr
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Views() Views {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views
}
