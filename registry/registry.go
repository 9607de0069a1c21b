// Package registry holds the in-memory activity roster for the signup
// service.
//
// The registry is seeded once at process start and mutated only by Signup
// and Unregister. There is no persistence: state lives for the lifetime of
// the process and resets on restart.
package registry

import (
	"errors"
	"slices"
	"sync"
)

// Errors returned by roster operations.
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student is already signed up")
	ErrActivityFull     = errors.New("activity is full")
	ErrNotSignedUp      = errors.New("student is not signed up for this activity")
)

// Activity is a single extracurricular offering with a participant roster
// and a capacity limit.
type Activity struct {
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// Occupancy reports how full a single activity is.
type Occupancy struct {
	Activity     string
	Participants int
	Capacity     int
}

// Registry is the full set of activities. The set of names is fixed at
// construction; only rosters change afterwards. All operations take a
// scoped lock since net/http serves requests concurrently.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*Activity
}

// New builds a Registry from seed data. The seed is validated before use;
// see ValidateSeed for the rules.
func New(seed []SeedActivity) (*Registry, error) {
	if err := ValidateSeed(seed); err != nil {
		return nil, err
	}

	activities := make(map[string]*Activity, len(seed))
	for _, s := range seed {
		participants := make([]string, len(s.Participants))
		copy(participants, s.Participants)
		activities[s.Name] = &Activity{
			Description:     s.Description,
			Schedule:        s.Schedule,
			MaxParticipants: s.MaxParticipants,
			Participants:    participants,
		}
	}

	return &Registry{activities: activities}, nil
}

// List returns a copy of the full mapping. Mutating the result does not
// affect the registry.
func (r *Registry) List() map[string]Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]Activity, len(r.activities))
	for name, act := range r.activities {
		participants := make([]string, len(act.Participants))
		copy(participants, act.Participants)
		copied := *act
		copied.Participants = participants
		result[name] = copied
	}
	return result
}

// Signup adds email to the roster of the named activity.
// Returns ErrActivityNotFound for an unknown name, ErrAlreadySignedUp if
// the email is already on the roster, and ErrActivityFull at capacity.
func (r *Registry) Signup(name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	if slices.Contains(act.Participants, email) {
		return ErrAlreadySignedUp
	}
	if len(act.Participants) >= act.MaxParticipants {
		return ErrActivityFull
	}

	act.Participants = append(act.Participants, email)
	return nil
}

// Unregister removes email from the roster of the named activity.
// Returns ErrActivityNotFound for an unknown name and ErrNotSignedUp if
// the email is not on the roster.
func (r *Registry) Unregister(name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	i := slices.Index(act.Participants, email)
	if i < 0 {
		return ErrNotSignedUp
	}

	act.Participants = slices.Delete(act.Participants, i, i+1)
	return nil
}

// Roster returns the participant count and capacity for one activity.
// ok is false if the activity does not exist.
func (r *Registry) Roster(name string) (participants, capacity int, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	act, found := r.activities[name]
	if !found {
		return 0, 0, false
	}
	return len(act.Participants), act.MaxParticipants, true
}

// Occupancies returns the occupancy of every activity, sorted by name so
// callers get a stable order.
func (r *Registry) Occupancies() []Occupancy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Occupancy, 0, len(r.activities))
	for name, act := range r.activities {
		result = append(result, Occupancy{
			Activity:     name,
			Participants: len(act.Participants),
			Capacity:     act.MaxParticipants,
		})
	}
	slices.SortFunc(result, func(a, b Occupancy) int {
		switch {
		case a.Activity < b.Activity:
			return -1
		case a.Activity > b.Activity:
			return 1
		}
		return 0
	})
	return result
}

// Stats returns the number of activities and the total participant count
// across all rosters.
func (r *Registry) Stats() (activities, participants int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, act := range r.activities {
		participants += len(act.Participants)
	}
	return len(r.activities), participants
}
