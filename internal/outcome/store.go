package outcome

import "sync"

// Store keeps the latest signal per category and forwards every signal to
// its subscribers. Concurrent invocations of the same category overwrite
// each other; the last write wins.
type Store struct {
	mu     sync.RWMutex
	latest map[Category]Signal
	subs   map[int]func(Signal)
	nextID int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		latest: make(map[Category]Signal),
		subs:   make(map[int]func(Signal)),
	}
}

var _ Sink = (*Store)(nil)

// Emit records s and notifies subscribers. Subscribers run on the caller's
// goroutine after the store lock is released.
func (s *Store) Emit(sig Signal) {
	s.mu.Lock()
	s.latest[sig.Category] = sig
	subs := make([]func(Signal), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sig)
	}
}

// Latest returns the most recent signal for a category.
func (s *Store) Latest(c Category) (Signal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sig, ok := s.latest[c]
	return sig, ok
}

// Snapshot returns a copy of the latest signal of every category seen so far.
func (s *Store) Snapshot() map[Category]Signal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Category]Signal, len(s.latest))
	for c, sig := range s.latest {
		out[c] = sig
	}
	return out
}

// Subscribe registers fn for every future signal and returns a function that
// removes the subscription.
func (s *Store) Subscribe(fn func(Signal)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
