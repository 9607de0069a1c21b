// Package audit keeps a bounded in-memory log of roster changes.
//
// Events are held newest first and capped; like the rest of the service,
// the log does not survive a restart.
package audit

import (
	"sync"
	"time"
)

// DefaultMaxEvents is the event cap used when none is given.
const DefaultMaxEvents = 500

// Action identifies the kind of roster change.
type Action string

const (
	ActionSignup     Action = "signup"
	ActionUnregister Action = "unregister"
)

// Event is a single roster change.
type Event struct {
	Time     time.Time `json:"time"`
	Action   Action    `json:"action"`
	Activity string    `json:"activity"`
	Email    string    `json:"email"`
}

// Store is a thread-safe, bounded event log.
type Store struct {
	mu     sync.Mutex
	events []Event
	max    int
}

// NewStore creates a Store holding at most max events. A non-positive max
// falls back to DefaultMaxEvents.
func NewStore(max int) *Store {
	if max <= 0 {
		max = DefaultMaxEvents
	}
	return &Store{
		events: make([]Event, 0, max),
		max:    max,
	}
}

// Record stores an event, evicting the oldest when the cap is reached.
// A zero Time is filled in with the current time.
func (s *Store) Record(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Prepend to keep most recent first.
	s.events = append([]Event{e}, s.events...)
	if len(s.events) > s.max {
		s.events = s.events[:s.max]
	}
}

// Events returns a copy of all stored events, most recent first.
func (s *Store) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Event, len(s.events))
	copy(result, s.events)
	return result
}
