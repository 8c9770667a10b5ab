package prediction

import (
	"sync"

	"go.uber.org/atomic"
)

// Ticket identifies one prediction request for a subject.
type Ticket struct {
	Subject string
	Seq     uint64
}

// Sequencer tracks the newest request per subject so that a slow response for
// an older request can be recognised and dropped.
type Sequencer struct {
	next atomic.Uint64

	mu     sync.Mutex
	latest map[string]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[string]uint64)}
}

// Begin issues a ticket that supersedes every earlier ticket for subject.
func (s *Sequencer) Begin(subject string) Ticket {
	seq := s.next.Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.latest[subject] {
		s.latest[subject] = seq
	}
	return Ticket{Subject: subject, Seq: seq}
}

// Latest reports whether t is still the newest ticket for its subject.
func (s *Sequencer) Latest(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[t.Subject] == t.Seq
}

// Finish retires t. It returns false if a newer ticket superseded it, in which
// case the caller must discard its result.
func (s *Sequencer) Finish(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest[t.Subject] != t.Seq {
		return false
	}
	delete(s.latest, t.Subject)
	return true
}

// Issued returns how many tickets have been handed out.
func (s *Sequencer) Issued() uint64 {
	return s.next.Load()
}
