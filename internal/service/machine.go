package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/sirupsen/logrus"
)

const storeTimeout = 5 * time.Second

const (
	msgSearchingLonger   = "Searching is taking longer than expected"
	msgSlotFilled        = "This request has already been accepted by another responder"
	msgIncidentCancelled = "Incident was cancelled"
	msgIncidentResolved  = "Incident resolved"
	msgIncidentClosed    = "Incident is already closed"
	msgDispatchExpired   = "No responders could be dispatched"

	msgDispatchInterrupted = "dispatch interrupted before triage"
)

type observation struct {
	participant models.Participant
	loc         models.Location
}

// effects - побочные эффекты, которые выполняются после снятия блокировки автомата
type effects struct {
	notifications []models.Notification
	archived      *models.Incident
}

func (fx *effects) notify(target string, kind models.NotificationKind, incidentID uuid.UUID, payload map[string]any) {
	if target == "" {
		return
	}
	fx.notifications = append(fx.notifications, models.Notification{
		TargetID:   target,
		Kind:       kind,
		IncidentID: incidentID,
		Payload:    payload,
	})
}

// incidentMachine владеет состоянием одного активного инцидента.
// Все изменения идут под mu; уведомления и закрытие потока - после Unlock.
type incidentMachine struct {
	c   *coordinator
	log *logrus.Entry

	mu       sync.Mutex
	incident *models.Incident
	offers   []*models.CandidateOffer
	pending  map[models.ServiceKind]map[string]*models.CandidateOffer
	timers   map[uuid.UUID]*time.Timer
	deadline *time.Timer
	closed   bool
	// superseded - инцидент закрыт другим экземпляром, автомат нужно снять при ближайшем flush
	superseded bool

	observations chan observation
	done         chan struct{}
	stopOnce     sync.Once
}

func newIncidentMachine(c *coordinator, incident *models.Incident) *incidentMachine {
	m := &incidentMachine{
		c:            c,
		log:          c.logger.WithFields(logrus.Fields{"service": "dispatch", "incident_id": incident.ID}),
		incident:     incident,
		pending:      make(map[models.ServiceKind]map[string]*models.CandidateOffer, len(incident.RequestedServices)),
		timers:       make(map[uuid.UUID]*time.Timer),
		observations: make(chan observation, max(c.cfg.StreamBuffer, 16)),
		done:         make(chan struct{}),
	}
	for _, kind := range incident.RequestedServices {
		m.pending[kind] = make(map[string]*models.CandidateOffer)
	}
	return m
}

// start переводит инцидент в Dispatching и рассылает первые предложения
func (m *incidentMachine) start() error {
	fx := &effects{}
	m.mu.Lock()
	if err := m.transition(models.StateDispatching, "candidate pools populated"); err != nil {
		m.mu.Unlock()
		return err
	}
	for _, kind := range m.incident.RequestedServices {
		m.fillOffers(kind, fx)
	}
	if d := m.c.cfg.DispatchDeadline; d > 0 {
		m.deadline = time.AfterFunc(d, m.deadlineReached)
	}
	m.grant()
	m.persist()
	m.mu.Unlock()

	go m.run()
	m.flush(fx)
	return nil
}

// resume продолжает диспетчеризацию поднятого из хранилища инцидента.
// Просроченные за время простоя предложения истекают сразу.
func (m *incidentMachine) resume(offers []*models.CandidateOffer) {
	fx := &effects{}
	now := m.c.now()
	m.mu.Lock()
	m.offers = offers
	for _, o := range offers {
		if o.Outcome != models.OfferPending {
			continue
		}
		if slot := m.incident.Slots[o.ServiceKind]; slot == nil || slot.State != models.SlotSearching {
			m.decide(o, models.OfferWithdrawn)
			continue
		}
		m.pending[o.ServiceKind][o.ResponderID] = o
		id := o.ID
		m.timers[id] = time.AfterFunc(max(o.ExpiresAt.Sub(now), 0), func() { m.expireOffer(id) })
	}
	for _, kind := range m.incident.RequestedServices {
		slot := m.incident.Slots[kind]
		if slot == nil {
			continue
		}
		if slot.State.Holding() {
			// Резерв мог не дойти до хранилища справочника до остановки
			if err := m.c.directory.Reserve(slot.ResponderID); err != nil && !errors.Is(err, models.ErrConflict) {
				m.log.WithError(err).WithField("responder_id", slot.ResponderID).Warn("Failed to restore responder reservation")
			}
			continue
		}
		m.fillOffers(kind, fx)
	}
	if d := m.c.cfg.DispatchDeadline; d > 0 && m.incident.State == models.StateDispatching {
		m.deadline = time.AfterFunc(max(m.incident.CreatedAt.Add(d).Sub(now), 0), m.deadlineReached)
	}
	m.grant()
	if len(fx.notifications) > 0 {
		m.persist()
	}
	m.mu.Unlock()

	m.log.WithField("pending_offers", len(m.timers)).Info("Incident dispatch resumed")
	go m.run()
	m.flush(fx)
}

func (m *incidentMachine) run() {
	for {
		select {
		case <-m.done:
			return
		case o := <-m.observations:
			m.applyProgress(o)
		}
	}
}

func (m *incidentMachine) stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

// shutdown останавливает таймеры без изменения состояния (остановка сервера)
func (m *incidentMachine) shutdown() {
	m.mu.Lock()
	m.stopTimers()
	m.mu.Unlock()
	m.stop()
}

func (m *incidentMachine) flush(fx *effects) {
	m.mu.Lock()
	if m.superseded {
		m.superseded = false
		if fx.archived == nil {
			fx.archived = m.incident.Clone()
		}
	}
	m.mu.Unlock()
	if fx.archived != nil {
		m.stop()
	}
	m.c.flush(fx)
}

func (m *incidentMachine) snapshot() *models.Incident {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.incident.Clone()
}

func (m *incidentMachine) offerSnapshot() []*models.CandidateOffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.CandidateOffer, 0, len(m.offers))
	for _, o := range m.offers {
		c := *o
		out = append(out, &c)
	}
	return out
}

func (m *incidentMachine) transition(to models.IncidentState, reason string) error {
	return applyTransition(m.incident, to, reason, m.c.now())
}

// syncAggregate подтягивает состояние инцидента к наименее продвинутому слоту, по одному ребру графа
func (m *incidentMachine) syncAggregate() error {
	target := models.StateArrived
	for _, kind := range m.incident.RequestedServices {
		if st := m.incident.Slots[kind].State.IncidentState(); st.Before(target) {
			target = st
		}
	}
	for m.incident.State.Before(target) {
		next, _ := m.incident.State.Next()
		if err := m.transition(next, "service progress"); err != nil {
			return err
		}
	}
	return nil
}

func (m *incidentMachine) slot(kind models.ServiceKind) (*models.ServiceSlot, error) {
	if m.closed {
		return nil, fmt.Errorf("incident %s is %s: %w", m.incident.ID, m.incident.State, models.ErrIncidentClosed)
	}
	slot, ok := m.incident.Slots[kind]
	if !ok {
		return nil, fmt.Errorf("service %s was not requested: %w", kind, models.ErrNotFound)
	}
	return slot, nil
}

func (m *incidentMachine) findOffer(id uuid.UUID) *models.CandidateOffer {
	if id == uuid.Nil {
		return nil
	}
	for _, o := range m.offers {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (m *incidentMachine) lastOffer(kind models.ServiceKind, responderID string) *models.CandidateOffer {
	for i := len(m.offers) - 1; i >= 0; i-- {
		if o := m.offers[i]; o.ServiceKind == kind && o.ResponderID == responderID {
			return o
		}
	}
	return nil
}

// fillOffers держит до OfferFanout предложений в ожидании, расширяя пул при исчерпании
func (m *incidentMachine) fillOffers(kind models.ServiceKind, fx *effects) {
	slot := m.incident.Slots[kind]
	for slot.State == models.SlotSearching && len(m.pending[kind]) < m.c.cfg.OfferFanout {
		if slot.Remaining() == 0 {
			if len(m.pending[kind]) > 0 {
				return
			}
			if slot.Refreshes >= m.c.cfg.MaxPoolRefreshes {
				m.exhaust(slot, fx)
				return
			}
			m.refreshPool(slot)
			continue
		}
		cand := slot.Pool[slot.NextCandidate]
		slot.NextCandidate++
		if !m.c.isAvailable(cand.ResponderID) {
			continue
		}
		m.offer(slot, cand, fx)
	}
}

func (m *incidentMachine) refreshPool(slot *models.ServiceSlot) {
	slot.Refreshes++
	slot.RadiusKm *= m.c.cfg.RadiusGrowth

	exclude := make(map[string]struct{}, len(slot.Offered))
	for _, id := range slot.Offered {
		exclude[id] = struct{}{}
	}
	cands, err := m.c.findCandidates(m.incident, slot.Kind, slot.RadiusKm, exclude)
	if err != nil {
		m.log.WithError(err).WithField("service_kind", slot.Kind).Error("Failed to refresh candidate pool")
		return
	}
	slot.Pool = append(slot.Pool, toPool(cands)...)
	m.log.WithFields(logrus.Fields{
		"service_kind": slot.Kind,
		"radius_km":    slot.RadiusKm,
		"refresh":      slot.Refreshes,
		"found":        len(cands),
	}).Info("Candidate pool refreshed with relaxed radius")
}

func (m *incidentMachine) offer(slot *models.ServiceSlot, cand models.Candidate, fx *effects) {
	now := m.c.now()
	offer := &models.CandidateOffer{
		ID:          uuid.New(),
		IncidentID:  m.incident.ID,
		ResponderID: cand.ResponderID,
		ServiceKind: slot.Kind,
		DistanceKm:  cand.DistanceKm,
		ETAMinutes:  cand.ETAMinutes,
		OfferedAt:   now,
		ExpiresAt:   now.Add(m.c.cfg.OfferTimeout),
		Outcome:     models.OfferPending,
	}
	m.offers = append(m.offers, offer)
	m.pending[slot.Kind][cand.ResponderID] = offer
	slot.Offered = append(slot.Offered, cand.ResponderID)

	id := offer.ID
	m.timers[id] = time.AfterFunc(m.c.cfg.OfferTimeout, func() { m.expireOffer(id) })
	m.saveOffer(offer)

	fx.notify(cand.ResponderID, models.RequestKind(slot.Kind), m.incident.ID, m.requestPayload(offer))
	m.log.WithFields(logrus.Fields{
		"service_kind": slot.Kind,
		"responder_id": cand.ResponderID,
		"distance_km":  cand.DistanceKm,
	}).Info("Offer sent")
}

func (m *incidentMachine) requestPayload(offer *models.CandidateOffer) map[string]any {
	payload := map[string]any{
		"offerId":    offer.ID.String(),
		"severity":   m.incident.Severity,
		"lat":        m.incident.Location.Lat,
		"lng":        m.incident.Location.Lng,
		"distanceKm": offer.DistanceKm,
		"distance":   geo.FormatDistance(offer.DistanceKm),
		"etaMinutes": offer.ETAMinutes,
		"eta":        geo.FormatETA(offer.ETAMinutes),
		"expiresAt":  offer.ExpiresAt,
	}
	if m.incident.Address != "" {
		payload["address"] = m.incident.Address
	}
	switch offer.ServiceKind {
	case models.ServiceAmbulance:
		payload["ambulanceType"] = m.incident.AmbulanceType
	case models.ServiceVolunteer:
		payload["distanceMeters"] = int(math.Round(offer.DistanceKm * 1000))
	case models.ServiceBloodDonor:
		payload["bloodType"] = m.incident.BloodGroup
		if m.incident.Hospital != nil {
			payload["hospitalName"] = m.incident.Hospital.Name
		}
	}
	return payload
}

func (m *incidentMachine) decide(offer *models.CandidateOffer, outcome models.OfferOutcome) {
	now := m.c.now()
	offer.Outcome = outcome
	offer.DecidedAt = &now
	if t, ok := m.timers[offer.ID]; ok {
		t.Stop()
		delete(m.timers, offer.ID)
	}
	if m.pending[offer.ServiceKind][offer.ResponderID] == offer {
		delete(m.pending[offer.ServiceKind], offer.ResponderID)
	}
	m.saveOffer(offer)
}

func (m *incidentMachine) withdrawPending(kind models.ServiceKind, message string, fx *effects) {
	for _, offer := range m.pending[kind] {
		m.decide(offer, models.OfferWithdrawn)
		fx.notify(offer.ResponderID, models.NotifyStatusUpdate, m.incident.ID, map[string]any{
			"serviceKind": kind,
			"message":     message,
		})
	}
}

// exhaust срабатывает один раз на слот: дальше слот ждет ручного назначения оператором
func (m *incidentMachine) exhaust(slot *models.ServiceSlot, fx *effects) {
	slot.State = models.SlotExhausted
	m.incident.Escalated = true
	m.log.WithError(models.ErrDispatchExhausted).WithFields(logrus.Fields{
		"service_kind": slot.Kind,
		"offered":      len(slot.Offered),
		"refreshes":    slot.Refreshes,
	}).Warn("Candidate pool exhausted, escalating to operator")

	fx.notify(m.c.cfg.OperatorTargetID, models.NotifyDispatchEscalation, m.incident.ID, map[string]any{
		"serviceKind": slot.Kind,
		"reason":      models.ErrDispatchExhausted.Error(),
		"offered":     len(slot.Offered),
		"refreshes":   slot.Refreshes,
		"radiusKm":    slot.RadiusKm,
	})
	fx.notify(m.incident.ReporterID, models.NotifyStatusUpdate, m.incident.ID, map[string]any{
		"serviceKind": slot.Kind,
		"message":     msgSearchingLonger,
	})
}

func (m *incidentMachine) expireOffer(id uuid.UUID) {
	fx := &effects{}
	m.mu.Lock()
	offer := m.findOffer(id)
	if m.closed || offer == nil || offer.Outcome != models.OfferPending {
		m.mu.Unlock()
		return
	}
	m.decide(offer, models.OfferExpired)
	m.log.WithError(models.ErrTimeout).WithFields(logrus.Fields{
		"service_kind": offer.ServiceKind,
		"responder_id": offer.ResponderID,
	}).Info("Offer expired, advancing to next candidate")
	m.fillOffers(offer.ServiceKind, fx)
	m.persist()
	m.mu.Unlock()
	m.flush(fx)
}

func (m *incidentMachine) accept(ctx context.Context, responderID string, kind models.ServiceKind) (models.AcceptOutcome, error) {
	m.mu.Lock()
	slot, err := m.slot(kind)
	if err != nil {
		m.mu.Unlock()
		return "", err
	}
	if slot.State.Holding() {
		m.mu.Unlock()
		return models.AcceptConflict, nil
	}
	offer := m.pending[kind][responderID]
	if offer == nil {
		last := m.lastOffer(kind, responderID)
		m.mu.Unlock()
		switch {
		case last == nil:
			return "", fmt.Errorf("no offer for responder %s: %w", responderID, models.ErrNotFound)
		case last.Outcome == models.OfferExpired:
			return "", fmt.Errorf("offer for responder %s: %w", responderID, models.ErrTimeout)
		case last.Outcome == models.OfferWithdrawn:
			return models.AcceptConflict, nil
		}
		return "", fmt.Errorf("offer for responder %s is %s: %w", responderID, last.Outcome, models.ErrConflict)
	}
	offerID := offer.ID
	m.mu.Unlock()

	return m.claim(ctx, responderID, kind, offerID)
}

// assign - ручное назначение оператором, в том числе для исчерпанного слота
func (m *incidentMachine) assign(ctx context.Context, responderID string, kind models.ServiceKind) (models.AcceptOutcome, error) {
	m.mu.Lock()
	slot, err := m.slot(kind)
	if err != nil {
		m.mu.Unlock()
		return "", err
	}
	if slot.State.Holding() {
		m.mu.Unlock()
		return models.AcceptConflict, nil
	}
	var offerID uuid.UUID
	if offer := m.pending[kind][responderID]; offer != nil {
		offerID = offer.ID
	}
	m.mu.Unlock()

	return m.claim(ctx, responderID, kind, offerID)
}

// claim резервирует исполнителя и выполняет долговременный check-and-set слота.
// Машина не блокируется на время записи в хранилище.
func (m *incidentMachine) claim(ctx context.Context, responderID string, kind models.ServiceKind, offerID uuid.UUID) (models.AcceptOutcome, error) {
	log := m.log.WithFields(logrus.Fields{
		"method":       "claim",
		"service_kind": kind,
		"responder_id": responderID,
	})

	if err := m.c.directory.Reserve(responderID); err != nil {
		if !errors.Is(err, models.ErrConflict) {
			return "", fmt.Errorf("could not reserve responder: %w", err)
		}
		log.WithError(err).Info("Responder is no longer available")
		m.settleLoser(kind, offerID, models.OfferDeclined)
		return models.AcceptConflict, nil
	}

	won, err := m.c.slots.ClaimSlot(ctx, m.incident.ID, kind, responderID)
	if err != nil {
		m.release(responderID)
		return "", fmt.Errorf("could not claim slot: %w", err)
	}
	if !won {
		m.release(responderID)
		log.Info("Slot already claimed, acceptance lost the race")
		m.settleLoser(kind, offerID, models.OfferWithdrawn)
		m.c.notify(ctx, models.Notification{
			TargetID:   responderID,
			Kind:       models.NotifyStatusUpdate,
			IncidentID: m.incident.ID,
			Payload:    map[string]any{"serviceKind": kind, "message": msgSlotFilled},
		})
		return models.AcceptConflict, nil
	}

	fx := &effects{}
	m.mu.Lock()
	slot := m.incident.Slots[kind]
	if m.closed || slot.State == models.SlotCancelled {
		m.mu.Unlock()
		log.Warn("Acceptance won the claim after the incident closed, reverting")
		m.compensate(ctx, responderID, kind)
		return models.AcceptConflict, nil
	}

	now := m.c.now()
	var eta int
	if offer := m.findOffer(offerID); offer != nil {
		m.decide(offer, models.OfferAccepted)
		eta = offer.ETAMinutes
	}
	m.withdrawPending(kind, msgSlotFilled, fx)

	slot.State = models.SlotAssigned
	slot.ResponderID = responderID
	slot.AssignedAt = &now
	slot.AssignedFrom = nil
	if r, err := m.c.directory.Get(responderID); err == nil {
		from := r.Location
		slot.AssignedFrom = &from
	}
	if err := m.syncAggregate(); err != nil {
		log.WithError(err).Error("Aggregate state rejected assignment")
	}
	m.grant()
	m.persist()

	fx.notify(m.incident.ReporterID, models.NotifyStatusUpdate, m.incident.ID, map[string]any{
		"serviceKind": kind,
		"responderId": responderID,
		"etaMinutes":  eta,
		"state":       m.incident.State,
		"message":     fmt.Sprintf("%s assigned", kind),
	})
	m.mu.Unlock()
	m.flush(fx)

	log.Info("Slot assigned")
	return models.AcceptAccepted, nil
}

func (m *incidentMachine) settleLoser(kind models.ServiceKind, offerID uuid.UUID, outcome models.OfferOutcome) {
	fx := &effects{}
	m.mu.Lock()
	if offer := m.findOffer(offerID); offer != nil && offer.Outcome == models.OfferPending && !m.closed {
		m.decide(offer, outcome)
		if outcome == models.OfferDeclined {
			m.fillOffers(kind, fx)
		}
		m.persist()
	}
	m.mu.Unlock()
	m.flush(fx)
}

// compensate откатывает назначение, выигравшее гонку у отмены
func (m *incidentMachine) compensate(ctx context.Context, responderID string, kind models.ServiceKind) {
	if err := m.c.slots.ReleaseSlot(ctx, m.incident.ID, kind); err != nil {
		m.log.WithError(err).WithField("service_kind", kind).Error("Failed to release slot claim")
	}
	m.release(responderID)
	m.c.notify(ctx, models.Notification{
		TargetID:   responderID,
		Kind:       models.NotifyStatusUpdate,
		IncidentID: m.incident.ID,
		Payload:    map[string]any{"serviceKind": kind, "message": msgIncidentClosed},
	})
}

func (m *incidentMachine) release(responderID string) {
	if err := m.c.directory.Release(responderID); err != nil {
		m.log.WithError(err).WithField("responder_id", responderID).Warn("Failed to release responder")
	}
}

func (m *incidentMachine) decline(responderID string, kind models.ServiceKind) error {
	fx := &effects{}
	m.mu.Lock()
	if _, err := m.slot(kind); err != nil {
		m.mu.Unlock()
		return err
	}
	offer := m.pending[kind][responderID]
	if offer == nil {
		m.mu.Unlock()
		return fmt.Errorf("no pending offer for responder %s: %w", responderID, models.ErrNotFound)
	}
	m.decide(offer, models.OfferDeclined)
	m.fillOffers(kind, fx)
	m.persist()
	m.mu.Unlock()
	m.flush(fx)
	return nil
}

func (m *incidentMachine) observe(p models.Participant, loc models.Location) {
	if p.Role != models.RoleResponder {
		return
	}
	select {
	case <-m.done:
	case m.observations <- observation{participant: p, loc: loc}:
	default:
		m.log.WithField("participant_id", p.ID).Warn("Progress queue is full, dropping location observation")
	}
}

// applyProgress: движение от точки принятия переводит слот в en_route, попадание в радиус - в arrived
func (m *incidentMachine) applyProgress(o observation) {
	fx := &effects{}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	pos := o.loc.Point()
	changed := false
	for _, kind := range m.incident.RequestedServices {
		slot := m.incident.Slots[kind]
		if slot.ResponderID != o.participant.ID || !slot.State.Holding() {
			continue
		}
		if slot.AssignedFrom == nil {
			from := o.loc
			slot.AssignedFrom = &from
			continue
		}
		before := slot.State
		if slot.State == models.SlotAssigned {
			moved, err := geo.DistanceMeters(slot.AssignedFrom.Point(), pos)
			if err == nil && moved >= m.c.cfg.MovementThresholdMeters {
				slot.State = models.SlotEnRoute
			}
		}
		if slot.State == models.SlotEnRoute {
			left, err := geo.DistanceMeters(pos, m.incident.Location.Point())
			if err == nil && left <= m.c.cfg.ArrivalRadiusMeters {
				slot.State = models.SlotArrived
			}
		}
		if slot.State != before {
			changed = true
			fx.notify(m.incident.ReporterID, models.NotifyStatusUpdate, m.incident.ID, map[string]any{
				"serviceKind": kind,
				"responderId": slot.ResponderID,
				"slotState":   slot.State,
			})
		}
	}
	if changed {
		if err := m.syncAggregate(); err != nil {
			m.log.WithError(err).Error("Failed to advance incident on responder progress")
		}
		m.persist()
	}
	m.mu.Unlock()
	m.flush(fx)
}

func (m *incidentMachine) markArrived(responderID string, kind models.ServiceKind) error {
	fx := &effects{}
	m.mu.Lock()
	slot, err := m.slot(kind)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if !slot.State.Holding() || slot.ResponderID != responderID {
		m.mu.Unlock()
		return fmt.Errorf("responder %s is not assigned to %s: %w", responderID, kind, models.ErrNotFound)
	}
	if slot.State != models.SlotArrived {
		slot.State = models.SlotArrived
		if err := m.syncAggregate(); err != nil {
			m.mu.Unlock()
			return err
		}
		m.persist()
		fx.notify(m.incident.ReporterID, models.NotifyStatusUpdate, m.incident.ID, map[string]any{
			"serviceKind": kind,
			"responderId": responderID,
			"slotState":   slot.State,
		})
	}
	m.mu.Unlock()
	m.flush(fx)
	return nil
}

func (m *incidentMachine) resolve() error {
	fx := &effects{}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return fmt.Errorf("incident %s: %w", m.incident.ID, models.ErrIncidentClosed)
	}
	if err := m.transition(models.StateResolved, "resolved"); err != nil {
		m.mu.Unlock()
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	for _, kind := range m.incident.RequestedServices {
		slot := m.incident.Slots[kind]
		if slot.State.Holding() {
			if err := m.c.slots.ReleaseSlot(ctx, m.incident.ID, kind); err != nil {
				m.log.WithError(err).WithField("service_kind", kind).Error("Failed to release slot claim")
			}
			m.release(slot.ResponderID)
			fx.notify(slot.ResponderID, models.NotifyStatusUpdate, m.incident.ID, map[string]any{
				"serviceKind": kind,
				"message":     msgIncidentResolved,
			})
		}
	}
	m.persist()
	m.close(fx)
	m.mu.Unlock()
	m.flush(fx)
	return nil
}

func (m *incidentMachine) cancel(reason string) error {
	fx := &effects{}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return fmt.Errorf("incident %s: %w", m.incident.ID, models.ErrIncidentClosed)
	}
	if err := m.transition(models.StateCancelled, reason); err != nil {
		m.mu.Unlock()
		return err
	}
	m.incident.CancelReason = reason
	m.releaseAll(msgIncidentCancelled, fx)
	fx.notify(m.incident.ReporterID, models.NotifyStatusUpdate, m.incident.ID, map[string]any{
		"state":   m.incident.State,
		"message": msgIncidentCancelled,
	})
	m.persist()
	m.close(fx)
	m.mu.Unlock()
	m.flush(fx)
	return nil
}

func (m *incidentMachine) expire(reason string) error {
	fx := &effects{}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return fmt.Errorf("incident %s: %w", m.incident.ID, models.ErrIncidentClosed)
	}
	if err := m.transition(models.StateExpired, reason); err != nil {
		m.mu.Unlock()
		return err
	}
	m.releaseAll(msgDispatchExpired, fx)
	fx.notify(m.incident.ReporterID, models.NotifyStatusUpdate, m.incident.ID, map[string]any{
		"state":   m.incident.State,
		"message": msgDispatchExpired,
	})
	m.persist()
	m.close(fx)
	m.mu.Unlock()
	m.flush(fx)
	return nil
}

func (m *incidentMachine) deadlineReached() {
	m.mu.Lock()
	if m.closed || m.incident.State != models.StateDispatching {
		m.mu.Unlock()
		return
	}
	for _, slot := range m.incident.Slots {
		if slot.State.Holding() {
			m.mu.Unlock()
			return
		}
	}
	m.mu.Unlock()

	if err := m.expire("dispatch deadline reached"); err != nil && !errors.Is(err, models.ErrIncidentClosed) {
		m.log.WithError(err).Error("Failed to expire incident on dispatch deadline")
	}
}

// releaseAll отзывает ожидающие предложения и освобождает назначенных исполнителей
func (m *incidentMachine) releaseAll(message string, fx *effects) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	for _, kind := range m.incident.RequestedServices {
		m.withdrawPending(kind, message, fx)
		slot := m.incident.Slots[kind]
		if slot.State.Holding() {
			if err := m.c.slots.ReleaseSlot(ctx, m.incident.ID, kind); err != nil {
				m.log.WithError(err).WithField("service_kind", kind).Error("Failed to release slot claim")
			}
			m.release(slot.ResponderID)
			fx.notify(slot.ResponderID, models.NotifyStatusUpdate, m.incident.ID, map[string]any{
				"serviceKind": kind,
				"message":     message,
			})
		}
		slot.State = models.SlotCancelled
	}
}

func (m *incidentMachine) close(fx *effects) {
	m.closed = true
	m.stopTimers()
	fx.archived = m.incident.Clone()
}

func (m *incidentMachine) stopTimers() {
	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
	if m.deadline != nil {
		m.deadline.Stop()
	}
}

// grant сообщает потоку, кто вправе публиковать и подписываться
func (m *incidentMachine) grant() {
	participants := []models.Participant{{ID: m.incident.ReporterID, Role: models.RoleReporter}}
	for _, kind := range m.incident.RequestedServices {
		if slot := m.incident.Slots[kind]; slot.State.Holding() {
			participants = append(participants, models.Participant{
				ID:          slot.ResponderID,
				Role:        models.RoleResponder,
				ServiceKind: kind,
			})
		}
	}
	m.c.hub.Grant(m.incident.ID, participants)
}

// persist пишет снимок с проверкой версии. При конфликте перечитывает запись:
// закрытый другим экземпляром инцидент снимается локально, иначе запись догоняет версию и повторяется.
func (m *incidentMachine) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	err := m.c.repo.Update(ctx, m.incident)
	if err == nil {
		return
	}
	if !errors.Is(err, models.ErrConflict) {
		m.log.WithError(err).Error("Failed to persist incident")
		return
	}

	stored, gerr := m.c.repo.GetByID(ctx, m.incident.ID)
	if gerr != nil {
		m.log.WithError(gerr).Error("Failed to reload incident after version conflict")
		return
	}
	log := m.log.WithFields(logrus.Fields{
		"local_version":  m.incident.Version,
		"stored_version": stored.Version,
		"stored_state":   stored.State,
	})
	if stored.State.IsTerminal() {
		log.Warn("Incident was closed elsewhere, retiring local dispatch")
		for _, kind := range m.incident.RequestedServices {
			if slot := m.incident.Slots[kind]; slot.State.Holding() {
				m.release(slot.ResponderID)
			}
		}
		m.incident = stored
		m.closed = true
		m.superseded = true
		m.stopTimers()
		return
	}

	log.Warn("Incident was modified concurrently, writing local state over the newer version")
	m.incident.Version = stored.Version
	if err := m.c.repo.Update(ctx, m.incident); err != nil {
		log.WithError(err).Error("Failed to persist incident")
	}
}

func (m *incidentMachine) saveOffer(offer *models.CandidateOffer) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := m.c.offers.SaveOffer(ctx, offer); err != nil {
		m.log.WithError(err).WithField("offer_id", offer.ID).Error("Failed to persist offer")
	}
}
