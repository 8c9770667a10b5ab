package parcel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidSeed = errors.New("invalid parcel seed")

// Store is a read-only, in-memory parcel collection. It is safe for concurrent
// use because nothing mutates it after NewStore returns.
type Store struct {
	parcels       []Parcel
	index         map[string]int
	lookupLatency time.Duration
	listLatency   time.Duration
}

type Option func(*Store)

// WithLookupLatency delays every FindByID call, mimicking a remote tracking API.
func WithLookupLatency(d time.Duration) Option {
	return func(s *Store) { s.lookupLatency = d }
}

// WithListLatency delays every List and Stats call.
func WithListLatency(d time.Duration) Option {
	return func(s *Store) { s.listLatency = d }
}

func NewStore(parcels []Parcel, opts ...Option) (*Store, error) {
	s := &Store{
		parcels: make([]Parcel, 0, len(parcels)),
		index:   make(map[string]int, len(parcels)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, p := range parcels {
		if err := validate(p); err != nil {
			return nil, err
		}
		key := normalizeID(p.ID)
		if _, dup := s.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate parcel id %q", ErrInvalidSeed, p.ID)
		}
		s.index[key] = len(s.parcels)
		s.parcels = append(s.parcels, p.clone())
	}
	return s, nil
}

func validate(p Parcel) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: parcel id is empty", ErrInvalidSeed)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: parcel %q: unknown status %q", ErrInvalidSeed, p.ID, p.Status)
	}
	if len(p.History) == 0 {
		return fmt.Errorf("%w: parcel %q: history is empty", ErrInvalidSeed, p.ID)
	}
	for i, ev := range p.History {
		if !ev.Status.Valid() {
			return fmt.Errorf("%w: parcel %q: event %d has unknown status %q", ErrInvalidSeed, p.ID, i, ev.Status)
		}
		if i > 0 && ev.Timestamp.Before(p.History[i-1].Timestamp) {
			return fmt.Errorf("%w: parcel %q: event %d is older than event %d", ErrInvalidSeed, p.ID, i, i-1)
		}
	}
	if last := p.History[len(p.History)-1].Status; last != p.Status {
		return fmt.Errorf("%w: parcel %q: last event status %q does not match %q", ErrInvalidSeed, p.ID, last, p.Status)
	}
	return nil
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// FindByID matches id case-insensitively. A missing parcel is reported through
// the boolean; the error is only set when ctx ends before the lookup completes.
func (s *Store) FindByID(ctx context.Context, id string) (Parcel, bool, error) {
	if err := wait(ctx, s.lookupLatency); err != nil {
		return Parcel{}, false, err
	}
	i, ok := s.index[normalizeID(id)]
	if !ok {
		return Parcel{}, false, nil
	}
	return s.parcels[i].clone(), true, nil
}

// List returns every parcel in seed order.
func (s *Store) List(ctx context.Context) ([]Parcel, error) {
	if err := wait(ctx, s.listLatency); err != nil {
		return nil, err
	}
	out := make([]Parcel, len(s.parcels))
	for i, p := range s.parcels {
		out[i] = p.clone()
	}
	return out, nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	parcels, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(parcels), nil
}

// Summarize buckets parcels the way the dashboard reports them.
func Summarize(parcels []Parcel) Stats {
	st := Stats{Total: len(parcels)}
	for _, p := range parcels {
		switch {
		case p.Status.Terminal():
			st.Delivered++
		case p.Status == StatusInTransit || p.Status == StatusOutForDelivery:
			st.InTransit++
		case p.Status == StatusDelayed:
			st.Delayed++
		}
	}
	return st
}

func (s *Store) countByStatus() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, p := range s.parcels {
		counts[p.Status]++
	}
	return counts
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
