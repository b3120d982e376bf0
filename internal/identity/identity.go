// Package identity assigns record IDs and timestamps.
package identity

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Source produces record IDs and creation/update timestamps.
type Source interface {
	NewID() string
	Now() time.Time
}

// System is the production Source: UUID v7 IDs and a UTC wall clock that
// never runs backwards.
type System struct {
	mu   sync.Mutex
	last time.Time
}

// NewSystem returns a System source.
func NewSystem() *System {
	return &System{}
}

// NewID generates a new UUID v7.
func (s *System) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// Now returns the current UTC time, or the previously returned time if the
// wall clock stepped back.
func (s *System) Now() time.Time {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Before(s.last) {
		now = s.last
	}
	s.last = now
	return now
}

// Sequence is a deterministic Source for tests. IDs are "<prefix>-1",
// "<prefix>-2", ...; the n-th call to Now returns start + n*step.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
	now    time.Time
	step   time.Duration
}

// NewSequence returns a Sequence starting at start.
func NewSequence(prefix string, start time.Time, step time.Duration) *Sequence {
	return &Sequence{prefix: prefix, now: start.UTC(), step: step}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next)
}

func (s *Sequence) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(s.step)
	return s.now
}
