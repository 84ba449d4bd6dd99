package stream

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/sirupsen/logrus"
)

// LocationUpdater - справочник, в который пишутся позиции исполнителей
type LocationUpdater interface {
	UpdateLocation(id string, loc models.Location) error
}

// Hub - потоки геопозиций по активным инцидентам
type Hub struct {
	locations LocationUpdater
	logger    *logrus.Logger
	speedKmh  float64
	buffer    int
	now       func() time.Time

	mu       sync.RWMutex
	channels map[uuid.UUID]*channel
}

type channel struct {
	id      uuid.UUID
	target  geo.Point
	observe func(models.Participant, models.Location)

	mu           sync.Mutex
	participants map[string]models.Participant
	subscribers  map[string]*Subscription
	last         map[string]models.LocationEvent
	seq          uint64
	closed       bool
}

// Subscription - конечный поток событий одного участника.
// Канал закрывается при закрытии инцидента, отмене контекста, повторной подписке или переполнении буфера.
type Subscription struct {
	IncidentID    uuid.UUID
	ParticipantID string

	events  chan models.LocationEvent
	once    sync.Once
	dropped atomic.Bool
	stop    func() bool
}

// Events - события в порядке seq
func (s *Subscription) Events() <-chan models.LocationEvent {
	return s.events
}

// Dropped - подписчик отключен из-за медленного чтения
func (s *Subscription) Dropped() bool {
	return s.dropped.Load()
}

func (s *Subscription) close() {
	s.once.Do(func() {
		if s.stop != nil {
			s.stop()
		}
		close(s.events)
	})
}

func NewHub(locations LocationUpdater, logger *logrus.Logger, speedKmh float64, buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		locations: locations,
		logger:    logger,
		speedKmh:  speedKmh,
		buffer:    buffer,
		now:       time.Now,
		channels:  make(map[uuid.UUID]*channel),
	}
}

// Open создает поток инцидента; observe вызывается на каждую принятую позицию вне блокировок
func (h *Hub) Open(incidentID uuid.UUID, target geo.Point, observe func(models.Participant, models.Location)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.channels[incidentID]; ok {
		ch.mu.Lock()
		ch.target = target
		ch.observe = observe
		ch.mu.Unlock()
		return
	}
	h.channels[incidentID] = &channel{
		id:           incidentID,
		target:       target,
		observe:      observe,
		participants: make(map[string]models.Participant),
		subscribers:  make(map[string]*Subscription),
		last:         make(map[string]models.LocationEvent),
	}
}

// Grant заменяет список авторизованных участников; отозванные теряют подписку
func (h *Hub) Grant(incidentID uuid.UUID, participants []models.Participant) {
	ch, ok := h.channel(incidentID)
	if !ok {
		return
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	granted := make(map[string]models.Participant, len(participants))
	for _, p := range participants {
		granted[p.ID] = p
	}
	for id, sub := range ch.subscribers {
		if _, ok := granted[id]; !ok {
			delete(ch.subscribers, id)
			sub.close()
		}
	}
	ch.participants = granted
}

// Close завершает все подписки инцидента; повторный вызов ничего не делает
func (h *Hub) Close(incidentID uuid.UUID) {
	h.mu.Lock()
	ch, ok := h.channels[incidentID]
	delete(h.channels, incidentID)
	h.mu.Unlock()
	if !ok {
		return
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.closed = true
	for id, sub := range ch.subscribers {
		delete(ch.subscribers, id)
		sub.close()
	}
}

func (h *Hub) channel(incidentID uuid.UUID) (*channel, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ch, ok := h.channels[incidentID]
	return ch, ok
}

func (ch *channel) authorize(participantID string) (models.Participant, error) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return models.Participant{}, fmt.Errorf("stream: incident %s: %w", ch.id, models.ErrNotFound)
	}
	p, ok := ch.participants[participantID]
	if !ok {
		return models.Participant{}, fmt.Errorf("stream: %s is not a participant of incident %s: %w", participantID, ch.id, models.ErrUnauthorized)
	}
	return p, nil
}

// Publish принимает позицию участника и рассылает ее подписчикам; не блокируется на медленных читателях
func (h *Hub) Publish(ctx context.Context, incidentID uuid.UUID, participantID string, loc models.Location) (models.LocationEvent, error) {
	log := h.logger.WithFields(logrus.Fields{
		"service":        "stream",
		"method":         "Publish",
		"incident_id":    incidentID,
		"participant_id": participantID,
	})
	if err := ctx.Err(); err != nil {
		return models.LocationEvent{}, err
	}

	ch, ok := h.channel(incidentID)
	if !ok {
		return models.LocationEvent{}, fmt.Errorf("stream: incident %s: %w", incidentID, models.ErrNotFound)
	}
	p, err := ch.authorize(participantID)
	if err != nil {
		log.WithError(err).Warn("Location publish rejected")
		return models.LocationEvent{}, err
	}
	if err := geo.Validate(loc.Point()); err != nil {
		return models.LocationEvent{}, fmt.Errorf("stream: %w", err)
	}
	if loc.Timestamp.IsZero() {
		loc.Timestamp = h.now()
	}

	if p.Role == models.RoleResponder && h.locations != nil {
		if err := h.locations.UpdateLocation(p.ID, loc); err != nil {
			log.WithError(err).Warn("Failed to update responder location in directory")
		}
	}

	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return models.LocationEvent{}, fmt.Errorf("stream: incident %s: %w", incidentID, models.ErrNotFound)
	}
	dist, err := geo.DistanceKm(loc.Point(), ch.target)
	if err != nil {
		ch.mu.Unlock()
		return models.LocationEvent{}, fmt.Errorf("stream: %w", err)
	}
	ch.seq++
	event := models.LocationEvent{
		IncidentID:    incidentID,
		ParticipantID: p.ID,
		Role:          p.Role,
		Lat:           loc.Lat,
		Lng:           loc.Lng,
		DistanceKm:    dist,
		ETAMinutes:    geo.ETAMinutes(dist, h.speedKmh),
		Timestamp:     loc.Timestamp,
		Seq:           ch.seq,
	}
	ch.last[p.ID] = event
	for id, sub := range ch.subscribers {
		select {
		case sub.events <- event:
		default:
			sub.dropped.Store(true)
			delete(ch.subscribers, id)
			sub.close()
			log.WithField("subscriber_id", id).Warn("Subscriber buffer is full, dropping subscriber")
		}
	}
	observe := ch.observe
	ch.mu.Unlock()

	if observe != nil {
		observe(p, loc)
	}
	return event, nil
}

// Subscribe открывает поток для участника и сразу отдает последние известные позиции.
// Повторная подписка закрывает предыдущую.
func (h *Hub) Subscribe(ctx context.Context, incidentID uuid.UUID, participantID string) (*Subscription, error) {
	ch, ok := h.channel(incidentID)
	if !ok {
		return nil, fmt.Errorf("stream: incident %s: %w", incidentID, models.ErrNotFound)
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return nil, fmt.Errorf("stream: incident %s: %w", incidentID, models.ErrNotFound)
	}
	if _, ok := ch.participants[participantID]; !ok {
		return nil, fmt.Errorf("stream: %s is not a participant of incident %s: %w", participantID, incidentID, models.ErrUnauthorized)
	}

	sub := &Subscription{
		IncidentID:    incidentID,
		ParticipantID: participantID,
		events:        make(chan models.LocationEvent, h.buffer),
	}
	if prev, ok := ch.subscribers[participantID]; ok {
		prev.close()
	}
	ch.subscribers[participantID] = sub

	replay := ch.snapshotLocked()
	if len(replay) > h.buffer {
		replay = replay[len(replay)-h.buffer:]
	}
	for _, event := range replay {
		sub.events <- event
	}

	sub.stop = context.AfterFunc(ctx, func() { ch.unsubscribe(sub) })
	return sub, nil
}

func (ch *channel) unsubscribe(sub *Subscription) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.subscribers[sub.ParticipantID] == sub {
		delete(ch.subscribers, sub.ParticipantID)
	}
	sub.close()
}

func (ch *channel) snapshotLocked() []models.LocationEvent {
	events := make([]models.LocationEvent, 0, len(ch.last))
	for _, e := range ch.last {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Seq < events[j].Seq })
	return events
}

// Latest - последние известные позиции участников инцидента
func (h *Hub) Latest(incidentID uuid.UUID, participantID string) ([]models.LocationEvent, error) {
	ch, ok := h.channel(incidentID)
	if !ok {
		return nil, fmt.Errorf("stream: incident %s: %w", incidentID, models.ErrNotFound)
	}
	if _, err := ch.authorize(participantID); err != nil {
		return nil, err
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.snapshotLocked(), nil
}
