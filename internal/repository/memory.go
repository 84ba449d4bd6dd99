package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/models"
)

type cachedIncident struct {
	incident *models.Incident
	expires  time.Time
}

// MemoryStore - хранилище в памяти для локального запуска без Postgres и Redis.
// Реализует те же контракты, что и Postgres-репозитории; наружу отдаются только копии.
type MemoryStore struct {
	mu         sync.RWMutex
	incidents  map[uuid.UUID]*models.Incident
	cache      map[uuid.UUID]cachedIncident
	offers     map[uuid.UUID][]*models.CandidateOffer
	claims     map[string]string
	responders map[string]*models.Responder
	cacheTTL   time.Duration
	now        func() time.Time
}

func NewMemoryStore(cacheTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		incidents:  make(map[uuid.UUID]*models.Incident),
		cache:      make(map[uuid.UUID]cachedIncident),
		offers:     make(map[uuid.UUID][]*models.CandidateOffer),
		claims:     make(map[string]string),
		responders: make(map[string]*models.Responder),
		cacheTTL:   cacheTTL,
		now:        time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, incident *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.incidents[incident.ID]; ok {
		return fmt.Errorf("incident with id %s already exists: %w", incident.ID, models.ErrConflict)
	}
	incident.Version = 1
	s.incidents[incident.ID] = incident.Clone()
	return nil
}

func (s *MemoryStore) Update(_ context.Context, incident *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.incidents[incident.ID]
	if !ok {
		return fmt.Errorf("incident with id %s: %w", incident.ID, models.ErrNotFound)
	}
	if cur.Version != incident.Version {
		return fmt.Errorf("incident with id %s has a newer version than %d: %w", incident.ID, incident.Version, models.ErrConflict)
	}
	incident.Version++
	s.incidents[incident.ID] = incident.Clone()
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	incident, ok := s.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
	}
	return incident.Clone(), nil
}

func (s *MemoryStore) ListOpen(_ context.Context) ([]*models.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Incident, 0)
	for _, incident := range s.incidents {
		if !incident.State.IsTerminal() {
			out = append(out, incident.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) GetIncidentFromCache(_ context.Context, id uuid.UUID) (*models.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cached, ok := s.cache[id]
	if !ok || s.now().After(cached.expires) {
		return nil, nil
	}
	return cached.incident.Clone(), nil
}

func (s *MemoryStore) SetIncidentCache(_ context.Context, incident *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[incident.ID] = cachedIncident{
		incident: incident.Clone(),
		expires:  s.now().Add(s.cacheTTL),
	}
	return nil
}

func (s *MemoryStore) InvalidateIncidentCache(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, id)
	return nil
}

func (s *MemoryStore) SaveOffer(_ context.Context, offer *models.CandidateOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *offer
	list := s.offers[offer.IncidentID]
	for i, o := range list {
		if o.ID == offer.ID {
			list[i] = &saved
			return nil
		}
	}
	s.offers[offer.IncidentID] = append(list, &saved)
	return nil
}

func (s *MemoryStore) ListOffers(_ context.Context, incidentID uuid.UUID) ([]*models.CandidateOffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.offers[incidentID]
	out := make([]*models.CandidateOffer, 0, len(list))
	for _, o := range list {
		c := *o
		out = append(out, &c)
	}
	return out, nil
}

func claimKey(incidentID uuid.UUID, kind models.ServiceKind) string {
	return incidentID.String() + "/" + string(kind)
}

func (s *MemoryStore) ClaimSlot(_ context.Context, incidentID uuid.UUID, kind models.ServiceKind, responderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := claimKey(incidentID, kind)
	if _, taken := s.claims[key]; taken {
		return false, nil
	}
	// один исполнитель - один слот
	for _, holder := range s.claims {
		if holder == responderID {
			return false, nil
		}
	}
	s.claims[key] = responderID
	return true, nil
}

func (s *MemoryStore) ReleaseSlot(_ context.Context, incidentID uuid.UUID, kind models.ServiceKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.claims, claimKey(incidentID, kind))
	return nil
}

func (s *MemoryStore) ListResponders(_ context.Context) ([]*models.Responder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Responder, 0, len(s.responders))
	for _, r := range s.responders {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) UpsertResponder(_ context.Context, r *models.Responder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responders[r.ID] = r.Clone()
	return nil
}

func (s *MemoryStore) SaveLocation(_ context.Context, id string, loc models.Location) error {
	return s.updateResponder(id, func(r *models.Responder) { r.Location = loc })
}

func (s *MemoryStore) SaveAvailability(_ context.Context, id string, status models.Availability) error {
	return s.updateResponder(id, func(r *models.Responder) { r.Availability = status })
}

func (s *MemoryStore) SaveBeds(_ context.Context, id string, beds map[models.BedType]models.BedCount) error {
	return s.updateResponder(id, func(r *models.Responder) {
		r.Beds = make(map[models.BedType]models.BedCount, len(beds))
		for k, v := range beds {
			r.Beds[k] = v
		}
	})
}

func (s *MemoryStore) updateResponder(id string, apply func(*models.Responder)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.responders[id]
	if !ok {
		return fmt.Errorf("responder %s: %w", id, models.ErrNotFound)
	}
	apply(r)
	r.UpdatedAt = s.now()
	return nil
}
