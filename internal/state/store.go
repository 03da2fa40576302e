package state

import (
	"sync"
	"time"
)

// Dispatcher is the write side of a Store.
type Dispatcher interface {
	Dispatch(a Action) *State
}

// Observer is told about every dispatched action after it was applied.
type Observer func(a Action, changed bool, took time.Duration)

// Store serializes reducer application and publishes immutable snapshots.
type Store struct {
	mu        sync.RWMutex
	state     *State
	revision  uint64
	observers []Observer

	// pending holds snapshots not yet delivered to subscribers, in revision
	// order. Guarded by mu.
	pending  []*State
	draining bool

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]func(*State)
}

type Option func(*Store)

// WithObserver registers an observer called after each dispatch.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observers = append(s.observers, o)
	}
}

// WithInitialState seeds the store.
func WithInitialState(st *State) Option {
	return func(s *Store) {
		s.state = st
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		state: New(),
		subs:  make(map[int]func(*State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot. Callers must treat it as read-only.
func (s *Store) State() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Revision counts state changes since the store was created.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Snapshot returns the state together with its revision.
func (s *Store) Snapshot() (*State, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.revision
}

// Dispatch applies a to the current state and returns the new snapshot.
//
// Subscribers see every snapshot in revision order. Delivery happens outside
// the lock on whichever dispatching goroutine got there first, so a
// subscriber may dispatch in turn; its snapshot is queued and delivered once
// the current one returns.
func (s *Store) Dispatch(a Action) *State {
	start := time.Now()

	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a)
	changed := next != prev
	drain := false
	if changed {
		s.state = next
		s.revision++
		s.pending = append(s.pending, next)
		if !s.draining {
			s.draining = true
			drain = true
		}
	}
	s.mu.Unlock()

	took := time.Since(start)
	for _, o := range s.observers {
		o(a, changed, took)
	}
	if drain {
		s.drain()
	}
	return next
}

func (s *Store) drain() {
	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		if len(batch) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		for _, st := range batch {
			s.notify(st)
		}
	}
}

// Subscribe registers fn to run after every state change and returns a
// function that removes it.
func (s *Store) Subscribe(fn func(*State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(st *State) {
	s.subMu.Lock()
	fns := make([]func(*State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
