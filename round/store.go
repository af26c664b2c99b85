package round

import "sync/atomic"

// Store holds the latest snapshot behind a single pointer swap
// Writers and the tick reader never block each other
type Store struct {
	ptr atomic.Pointer[State]
}

// Set replaces the stored snapshot
func (s *Store) Set(st State) {
	s.ptr.Store(&st)
}

// Load returns the latest snapshot, ok is false until the first Set
func (s *Store) Load() (State, bool) {
	p := s.ptr.Load()
	if p == nil {
		return State{}, false
	}
	return *p, true
}

// Clear forgets the stored snapshot
func (s *Store) Clear() {
	s.ptr.Store(nil)
}
