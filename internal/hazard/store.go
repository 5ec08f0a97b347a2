// Package hazard holds the authoritative in-memory hazard collection.
package hazard

import (
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"

	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

// Store serializes every read and write behind a single mutex. Ids come from
// a counter that only grows, so a deleted id is never handed out again.
type Store struct {
	mu      sync.Mutex
	hazards []domain.Hazard
	lastID  int64
	clock   clockwork.Clock
}

// NewStore creates a store pre-filled with seed records. The id counter
// continues after the highest seeded id.
func NewStore(clock clockwork.Clock, seed ...domain.Hazard) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Store{
		hazards: make([]domain.Hazard, 0, len(seed)),
		clock:   clock,
	}
	for _, h := range seed {
		if h.ID <= 0 {
			s.lastID++
			h.ID = s.lastID
		}
		if h.ID > s.lastID {
			s.lastID = h.ID
		}
		if h.CreatedAt.IsZero() {
			h.CreatedAt = clock.Now().UTC()
		}
		s.hazards = append(s.hazards, h)
	}
	return s
}

func (s *Store) List() []domain.Hazard {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Hazard, len(s.hazards))
	copy(out, s.hazards)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hazards)
}

// Create appends a new unverified hazard and reports it to commit.
func (s *Store) Create(req domain.CreateHazardRequest, commit domain.CommitFunc) domain.Hazard {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	h := domain.Hazard{
		ID:          s.lastID,
		Category:    req.Category,
		Label:       req.Label,
		Description: req.Description,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if req.Lat != nil {
		h.Lat = *req.Lat
	}
	if req.Lng != nil {
		h.Lng = *req.Lng
	}
	s.hazards = append(s.hazards, h)

	if commit != nil {
		commit(domain.HazardUpserted(h))
	}
	return h
}

// Delete removes the hazard with the given id. Commit runs only when a
// record was actually removed.
func (s *Store) Delete(id int64, commit domain.CommitFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.hazards = append(s.hazards[:idx], s.hazards[idx+1:]...)

	if commit != nil {
		commit(domain.HazardDeleted(id))
	}
	return true
}

// Verify marks the hazard verified. Verifying an already verified hazard
// succeeds and commits again.
func (s *Store) Verify(id int64, commit domain.CommitFunc) (domain.Hazard, error) {
	const op = "hazard.Store.Verify"

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Hazard{}, fmt.Errorf("%s: hazard %d: %w", op, id, e.ErrNotFound)
	}
	s.hazards[idx].Verified = true
	h := s.hazards[idx]

	if commit != nil {
		commit(domain.HazardUpserted(h))
	}
	return h, nil
}

// indexOf scans linearly; the collection is small. Caller holds mu.
func (s *Store) indexOf(id int64) int {
	for i := range s.hazards {
		if s.hazards[i].ID == id {
			return i
		}
	}
	return -1
}
