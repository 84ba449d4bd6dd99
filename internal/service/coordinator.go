package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/config"
	"github.com/healthlink/dispatch_engine/internal/directory"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Dependencies - внешние компоненты, с которыми работает диспетчер
type Dependencies struct {
	Incidents IncidentRepository
	Offers    OfferRepository
	Slots     SlotStore
	Directory ResponderDirectory
	Notifier  Notifier
	Hub       StreamHub
	Validator ReportValidator
}

type coordinator struct {
	cfg       *config.Config
	repo      IncidentRepository
	offers    OfferRepository
	slots     SlotStore
	directory ResponderDirectory
	notifier  Notifier
	hub       StreamHub
	validator ReportValidator
	logger    *logrus.Logger
	now       func() time.Time

	active sync.Map // map[uuid.UUID]*incidentMachine
}

func NewCoordinator(deps Dependencies, logger *logrus.Logger, cfg *config.Config) Dispatcher {
	return newCoordinator(deps, logger, cfg)
}

func newCoordinator(deps Dependencies, logger *logrus.Logger, cfg *config.Config) *coordinator {
	return &coordinator{
		cfg:       cfg,
		repo:      deps.Incidents,
		offers:    deps.Offers,
		slots:     deps.Slots,
		directory: deps.Directory,
		notifier:  deps.Notifier,
		hub:       deps.Hub,
		validator: deps.Validator,
		logger:    logger,
		now:       time.Now,
	}
}

// ReportIncident проверяет отчет, проводит триаж и запускает цикл предложений по каждой услуге
func (c *coordinator) ReportIncident(ctx context.Context, reporterID string, report models.EmergencyReport) (*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "ReportIncident",
		"reporter_id": reporterID,
	})
	log.Info("Attempting to report a new incident")

	if strings.TrimSpace(reporterID) == "" {
		return nil, fmt.Errorf("service: reporter id is required: %w", models.ErrUnauthorized)
	}
	if err := c.validator.ValidateReport(report); err != nil {
		log.WithError(err).Warn("Emergency report rejected")
		return nil, err
	}

	now := c.now()
	incident := &models.Incident{
		ID:         uuid.New(),
		ReporterID: reporterID,
		Type:       report.Type,
		Location: models.Location{
			Lat:       *report.Location.Lat,
			Lng:       *report.Location.Lng,
			Timestamp: now,
		},
		Address:           report.Address,
		Description:       report.Description,
		VictimDescription: report.VictimDescription,
		PhotoURL:          report.PhotoURL,
		Triage:            report.Triage(),
		BloodGroup:        report.BloodGroup,
		State:             models.StateReported,
		Slots:             make(map[models.ServiceKind]*models.ServiceSlot),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := c.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}
	log = log.WithField("incident_id", incident.ID)

	res := triage(report)
	incident.Severity = res.severity
	incident.AmbulanceType = res.ambulanceType
	incident.RequestedServices = res.services
	if err := applyTransition(incident, models.StateTriaged, fmt.Sprintf("triaged as %s", res.severity), c.now()); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	incident.Hospital = c.nearestHospital(incident, log)

	pools, err := c.buildPools(ctx, incident)
	if err != nil {
		log.WithError(err).Error("Failed to build candidate pools")
		return nil, fmt.Errorf("service: could not build candidate pools: %w", err)
	}
	for _, kind := range incident.RequestedServices {
		incident.Slots[kind] = &models.ServiceSlot{
			Kind:     kind,
			State:    models.SlotSearching,
			Pool:     pools[kind],
			RadiusKm: c.cfg.SearchRadiusKm,
		}
	}

	m := newIncidentMachine(c, incident)
	c.active.Store(incident.ID, m)
	c.hub.Open(incident.ID, incident.Location.Point(), m.observe)
	if err := m.start(); err != nil {
		c.active.Delete(incident.ID)
		c.hub.Close(incident.ID)
		log.WithError(err).Error("Failed to start dispatch")
		return nil, fmt.Errorf("service: could not start dispatch: %w", err)
	}

	snapshot := m.snapshot()
	c.notify(ctx, models.Notification{
		TargetID:   reporterID,
		Kind:       models.NotifyStatusUpdate,
		IncidentID: incident.ID,
		Payload: map[string]any{
			"state":    snapshot.State,
			"severity": snapshot.Severity,
			"services": snapshot.RequestedServices,
			"message":  "Searching for nearby responders",
		},
	})
	if h := snapshot.Hospital; h != nil {
		c.notify(ctx, models.Notification{
			TargetID:   h.ID,
			Kind:       models.NotifyEmergencyAlert,
			IncidentID: incident.ID,
			Payload: map[string]any{
				"severity":   snapshot.Severity,
				"lat":        snapshot.Location.Lat,
				"lng":        snapshot.Location.Lng,
				"distanceKm": h.DistanceKm,
				"bloodType":  snapshot.BloodGroup,
			},
		})
	}

	log.WithFields(logrus.Fields{
		"severity": snapshot.Severity,
		"services": snapshot.RequestedServices,
	}).Info("Incident dispatched")
	return snapshot, nil
}

func (c *coordinator) nearestHospital(incident *models.Incident, log *logrus.Entry) *models.HospitalRef {
	cands, err := c.directory.FindCandidates(incident.Location.Point(), models.ResponderHospital, directory.Filter{
		BedType: models.BedEmergency,
		Now:     c.now(),
	}, 1)
	if err != nil || len(cands) == 0 {
		log.WithError(err).Warn("No hospital with emergency beds found")
		return nil
	}
	h := cands[0]
	return &models.HospitalRef{
		ID:         h.Responder.ID,
		Name:       h.Responder.Name,
		Location:   h.Responder.Location,
		DistanceKm: h.DistanceKm,
	}
}

// buildPools запрашивает справочник по каждой услуге параллельно
func (c *coordinator) buildPools(ctx context.Context, incident *models.Incident) (map[models.ServiceKind][]models.Candidate, error) {
	results := make([][]models.Candidate, len(incident.RequestedServices))
	g, _ := errgroup.WithContext(ctx)
	for i, kind := range incident.RequestedServices {
		g.Go(func() error {
			cands, err := c.findCandidates(incident, kind, c.cfg.SearchRadiusKm, nil)
			if err != nil {
				return fmt.Errorf("%s pool: %w", kind, err)
			}
			results[i] = toPool(cands)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pools := make(map[models.ServiceKind][]models.Candidate, len(results))
	for i, kind := range incident.RequestedServices {
		pools[kind] = results[i]
	}
	return pools, nil
}

func (c *coordinator) findCandidates(incident *models.Incident, kind models.ServiceKind, radiusKm float64, exclude map[string]struct{}) ([]directory.Candidate, error) {
	f := directory.Filter{
		RadiusKm: radiusKm,
		Exclude:  exclude,
		Now:      c.now(),
	}
	switch kind {
	case models.ServiceAmbulance:
		f.AmbulanceType = incident.AmbulanceType
	case models.ServiceVolunteer:
		if incident.Triage != nil && !incident.Triage.Breathing {
			f.RequiredCertification = cprCertification
		}
	case models.ServiceBloodDonor:
		f.RecipientBloodGroup = incident.BloodGroup
	}
	return c.directory.FindCandidates(incident.Location.Point(), kind.ResponderKind(), f, c.cfg.CandidateLimit)
}

func (c *coordinator) isAvailable(responderID string) bool {
	r, err := c.directory.Get(responderID)
	return err == nil && r.Availability == models.Available
}

// machine возвращает автомат инцидента. Незакрытый инцидент, которого нет в памяти
// (создан другим экземпляром или до перезапуска), поднимается из хранилища.
func (c *coordinator) machine(ctx context.Context, id uuid.UUID) (*incidentMachine, error) {
	if v, ok := c.active.Load(id); ok {
		return v.(*incidentMachine), nil
	}
	if cached, _ := c.repo.GetIncidentFromCache(ctx, id); cached != nil && cached.State.IsTerminal() {
		return nil, fmt.Errorf("incident %s is %s: %w", id, cached.State, models.ErrIncidentClosed)
	}
	incident, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident.State.IsTerminal() {
		return nil, fmt.Errorf("incident %s is %s: %w", id, incident.State, models.ErrIncidentClosed)
	}
	c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "machine",
		"incident_id": id,
		"state":       incident.State,
	}).Info("Adopting open incident from storage")
	return c.adopt(ctx, incident)
}

// adopt восстанавливает автомат по сохраненной записи: предложения, таймеры, поток, резервы
func (c *coordinator) adopt(ctx context.Context, incident *models.Incident) (*incidentMachine, error) {
	offers, err := c.offers.ListOffers(ctx, incident.ID)
	if err != nil {
		return nil, fmt.Errorf("could not load offers of incident %s: %w", incident.ID, err)
	}
	m := newIncidentMachine(c, incident)
	if v, loaded := c.active.LoadOrStore(incident.ID, m); loaded {
		return v.(*incidentMachine), nil
	}
	c.hub.Open(incident.ID, incident.Location.Point(), m.observe)

	// Запись осталась в Reported: процесс остановился до триажа, пулы кандидатов не построены
	if incident.State == models.StateReported {
		if err := m.cancel(msgDispatchInterrupted); err != nil {
			c.active.Delete(incident.ID)
			c.hub.Close(incident.ID)
			return nil, err
		}
		return nil, fmt.Errorf("incident %s was interrupted before triage: %w", incident.ID, models.ErrIncidentClosed)
	}
	m.resume(offers)
	return m, nil
}

// Restore поднимает все незакрытые инциденты из хранилища; вызывается при старте
func (c *coordinator) Restore(ctx context.Context) (int, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service": "dispatch",
		"method":  "Restore",
	})
	incidents, err := c.repo.ListOpen(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list open incidents")
		return 0, fmt.Errorf("service: could not list open incidents: %w", err)
	}

	restored := 0
	for _, incident := range incidents {
		if _, ok := c.active.Load(incident.ID); ok {
			continue
		}
		if _, err := c.adopt(ctx, incident); err != nil {
			log.WithError(err).WithField("incident_id", incident.ID).Warn("Failed to restore incident")
			continue
		}
		restored++
	}
	log.WithFields(logrus.Fields{
		"open":     len(incidents),
		"restored": restored,
	}).Info("Open incidents restored")
	return restored, nil
}

// AcceptOffer разрешает гонку принятия: побеждает первый, кто записан в хранилище
func (c *coordinator) AcceptOffer(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) (models.AcceptOutcome, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "AcceptOffer",
		"incident_id":  incidentID,
		"responder_id": responderID,
		"service_kind": kind,
	})
	if !kind.Valid() {
		return "", fmt.Errorf("service: unknown service kind %q: %w", kind, models.ErrValidation)
	}
	m, err := c.machine(ctx, incidentID)
	if err != nil {
		return "", fmt.Errorf("service: could not accept offer: %w", err)
	}
	outcome, err := m.accept(ctx, responderID, kind)
	if err != nil {
		log.WithError(err).Warn("Offer acceptance rejected")
		return "", fmt.Errorf("service: could not accept offer: %w", err)
	}
	log.WithField("outcome", outcome).Info("Offer acceptance resolved")
	return outcome, nil
}

// DeclineOffer сразу переходит к следующему кандидату
func (c *coordinator) DeclineOffer(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) error {
	log := c.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "DeclineOffer",
		"incident_id":  incidentID,
		"responder_id": responderID,
		"service_kind": kind,
	})
	if !kind.Valid() {
		return fmt.Errorf("service: unknown service kind %q: %w", kind, models.ErrValidation)
	}
	m, err := c.machine(ctx, incidentID)
	if err != nil {
		return fmt.Errorf("service: could not decline offer: %w", err)
	}
	if err := m.decline(responderID, kind); err != nil {
		log.WithError(err).Warn("Offer decline rejected")
		return fmt.Errorf("service: could not decline offer: %w", err)
	}
	log.Info("Offer declined")
	return nil
}

// AssignManually - вмешательство оператора, когда автоматический поиск не справился
func (c *coordinator) AssignManually(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) (models.AcceptOutcome, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "AssignManually",
		"incident_id":  incidentID,
		"responder_id": responderID,
		"service_kind": kind,
	})
	if !kind.Valid() {
		return "", fmt.Errorf("service: unknown service kind %q: %w", kind, models.ErrValidation)
	}
	if _, err := c.directory.Get(responderID); err != nil {
		return "", fmt.Errorf("service: could not assign responder: %w", err)
	}
	m, err := c.machine(ctx, incidentID)
	if err != nil {
		return "", fmt.Errorf("service: could not assign responder: %w", err)
	}
	outcome, err := m.assign(ctx, responderID, kind)
	if err != nil {
		log.WithError(err).Warn("Manual assignment rejected")
		return "", fmt.Errorf("service: could not assign responder: %w", err)
	}
	log.WithField("outcome", outcome).Info("Manual assignment resolved")
	return outcome, nil
}

// MarkArrived - явный сигнал прибытия исполнителя
func (c *coordinator) MarkArrived(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) error {
	if !kind.Valid() {
		return fmt.Errorf("service: unknown service kind %q: %w", kind, models.ErrValidation)
	}
	m, err := c.machine(ctx, incidentID)
	if err != nil {
		return fmt.Errorf("service: could not mark arrival: %w", err)
	}
	if err := m.markArrived(responderID, kind); err != nil {
		return fmt.Errorf("service: could not mark arrival: %w", err)
	}
	c.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "MarkArrived",
		"incident_id":  incidentID,
		"responder_id": responderID,
	}).Info("Responder arrived")
	return nil
}

func (c *coordinator) Resolve(ctx context.Context, incidentID uuid.UUID) error {
	m, err := c.machine(ctx, incidentID)
	if err != nil {
		return fmt.Errorf("service: could not resolve incident: %w", err)
	}
	if err := m.resolve(); err != nil {
		return fmt.Errorf("service: could not resolve incident: %w", err)
	}
	return nil
}

// Cancel допустим из любого нетерминального состояния, кроме Arrived
func (c *coordinator) Cancel(ctx context.Context, incidentID uuid.UUID, reason string) error {
	if reason == "" {
		reason = "cancelled"
	}
	m, err := c.machine(ctx, incidentID)
	if err != nil {
		return fmt.Errorf("service: could not cancel incident: %w", err)
	}
	if err := m.cancel(reason); err != nil {
		return fmt.Errorf("service: could not cancel incident: %w", err)
	}
	return nil
}

// Expire закрывает безнадежный поиск (только из Dispatching)
func (c *coordinator) Expire(ctx context.Context, incidentID uuid.UUID, reason string) error {
	if reason == "" {
		reason = "expired by operator"
	}
	m, err := c.machine(ctx, incidentID)
	if err != nil {
		return fmt.Errorf("service: could not expire incident: %w", err)
	}
	if err := m.expire(reason); err != nil {
		return fmt.Errorf("service: could not expire incident: %w", err)
	}
	return nil
}

// GetIncident получает инцидент по ID: активный - из памяти, закрытый - из кеша или БД
func (c *coordinator) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	if v, ok := c.active.Load(id); ok {
		return v.(*incidentMachine).snapshot(), nil
	}

	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "GetIncident",
		"incident_id": id,
	})

	cached, err := c.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		return cached, nil
	}

	incident, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	// Незакрытый инцидент может вести другой экземпляр: в кеш попадают только закрытые
	if incident.State.IsTerminal() {
		if err := c.repo.SetIncidentCache(ctx, incident); err != nil {
			log.WithError(err).Warn("Failed to cache incident")
		}
	}
	return incident, nil
}

// ListActive возвращает активные инциденты, старые первыми
func (c *coordinator) ListActive(_ context.Context) ([]*models.Incident, error) {
	incidents := make([]*models.Incident, 0)
	c.active.Range(func(_, v any) bool {
		incidents = append(incidents, v.(*incidentMachine).snapshot())
		return true
	})
	sort.Slice(incidents, func(i, j int) bool {
		return incidents[i].CreatedAt.Before(incidents[j].CreatedAt)
	})
	return incidents, nil
}

func (c *coordinator) Offers(ctx context.Context, incidentID uuid.UUID) ([]*models.CandidateOffer, error) {
	if v, ok := c.active.Load(incidentID); ok {
		return v.(*incidentMachine).offerSnapshot(), nil
	}
	offers, err := c.offers.ListOffers(ctx, incidentID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list offers: %w", err)
	}
	return offers, nil
}

// Shutdown останавливает таймеры и горутины активных инцидентов
func (c *coordinator) Shutdown(ctx context.Context) error {
	count := 0
	c.active.Range(func(_, v any) bool {
		v.(*incidentMachine).shutdown()
		count++
		return ctx.Err() == nil
	})
	c.logger.WithField("active", count).Info("Dispatch coordinator stopped")
	return ctx.Err()
}

func (c *coordinator) flush(fx *effects) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if inc := fx.archived; inc != nil {
		c.hub.Close(inc.ID)
		c.active.Delete(inc.ID)
		if err := c.repo.SetIncidentCache(ctx, inc); err != nil {
			c.logger.WithError(err).WithField("incident_id", inc.ID).Warn("Failed to cache closed incident")
		}
		c.logger.WithFields(logrus.Fields{
			"service":     "dispatch",
			"incident_id": inc.ID,
			"state":       inc.State,
		}).Info("Incident closed")
	}
	for _, n := range fx.notifications {
		c.notify(ctx, n)
	}
}

// notify не прерывает диспетчеризацию: ошибки доставки только логируются
func (c *coordinator) notify(ctx context.Context, n models.Notification) {
	if n.TargetID == "" {
		return
	}
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"target_id":   n.TargetID,
			"kind":        n.Kind,
			"incident_id": n.IncidentID,
		}).Warn("Failed to send notification")
	}
}

// applyTransition проверяет ребро графа и пишет его в историю
func applyTransition(incident *models.Incident, to models.IncidentState, reason string, now time.Time) error {
	from := incident.State
	if !models.CanTransition(from, to) {
		return models.TransitionError(from, to)
	}
	incident.State = to
	incident.UpdatedAt = now
	incident.History = append(incident.History, models.StateTransition{
		From:   from,
		To:     to,
		Reason: reason,
		At:     now,
	})
	if to.IsTerminal() {
		closedAt := now
		incident.ClosedAt = &closedAt
	}
	return nil
}

func toPool(cands []directory.Candidate) []models.Candidate {
	pool := make([]models.Candidate, 0, len(cands))
	for _, c := range cands {
		pool = append(pool, models.Candidate{
			ResponderID: c.Responder.ID,
			DistanceKm:  c.DistanceKm,
			ETAMinutes:  c.ETAMinutes,
		})
	}
	return pool
}
