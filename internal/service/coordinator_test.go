package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/config"
	"github.com/healthlink/dispatch_engine/internal/directory"
	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/healthlink/dispatch_engine/internal/service/mocks"
	"github.com/healthlink/dispatch_engine/internal/validation"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	incidentLat = 28.6139
	incidentLng = 77.2090
	reporterID  = "reporter-1"
)

// testHarness - диспетчер с моками хранилища, уведомлений и потока и настоящим справочником
type testHarness struct {
	svc    *coordinator
	dir    *directory.Directory
	deps   Dependencies
	logger *logrus.Logger
	cfg    *config.Config

	mu            sync.Mutex
	sent          []models.Notification
	stored        map[uuid.UUID]*models.Incident
	cache         map[uuid.UUID]*models.Incident
	savedOffers   []*models.CandidateOffer
	claims        map[string]string
	observers     map[uuid.UUID]func(models.Participant, models.Location)
	closedStreams map[uuid.UUID]bool
	releasedSlots int
	beforeClaim   func()
}

func newTestCoordinator(t *testing.T, tune ...func(*config.Config)) *testHarness {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		SpeedKmh:                40,
		OfferTimeout:            time.Hour,
		OfferFanout:             1,
		CandidateLimit:          10,
		SearchRadiusKm:          10,
		RadiusGrowth:            2,
		MaxPoolRefreshes:        3,
		ArrivalRadiusMeters:     50,
		MovementThresholdMeters: 10,
		StreamBuffer:            32,
		OperatorTargetID:        "operators",
	}
	for _, f := range tune {
		f(cfg)
	}

	h := &testHarness{
		dir:           directory.New(nil, logger, cfg.SpeedKmh, 16),
		stored:        make(map[uuid.UUID]*models.Incident),
		cache:         make(map[uuid.UUID]*models.Incident),
		claims:        make(map[string]string),
		observers:     make(map[uuid.UUID]func(models.Participant, models.Location)),
		closedStreams: make(map[uuid.UUID]bool),
	}

	repo := mocks.NewMockIncidentRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inc *models.Incident) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		inc.Version = 1
		h.stored[inc.ID] = inc.Clone()
		return nil
	}).AnyTimes()
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inc *models.Incident) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		cur, ok := h.stored[inc.ID]
		if !ok {
			return models.ErrNotFound
		}
		if cur.Version != inc.Version {
			return models.ErrConflict
		}
		inc.Version++
		h.stored[inc.ID] = inc.Clone()
		return nil
	}).AnyTimes()
	repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id uuid.UUID) (*models.Incident, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		inc, ok := h.stored[id]
		if !ok {
			return nil, fmt.Errorf("incident %s: %w", id, models.ErrNotFound)
		}
		return inc.Clone(), nil
	}).AnyTimes()
	repo.EXPECT().ListOpen(gomock.Any()).DoAndReturn(func(_ context.Context) ([]*models.Incident, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		out := make([]*models.Incident, 0)
		for _, inc := range h.stored {
			if !inc.State.IsTerminal() {
				out = append(out, inc.Clone())
			}
		}
		return out, nil
	}).AnyTimes()
	repo.EXPECT().GetIncidentFromCache(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id uuid.UUID) (*models.Incident, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.cache[id].Clone(), nil
	}).AnyTimes()
	repo.EXPECT().SetIncidentCache(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inc *models.Incident) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.cache[inc.ID] = inc.Clone()
		return nil
	}).AnyTimes()

	offers := mocks.NewMockOfferRepository(ctrl)
	offers.EXPECT().SaveOffer(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *models.CandidateOffer) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		saved := *o
		for i, prev := range h.savedOffers {
			if prev.ID == o.ID {
				h.savedOffers[i] = &saved
				return nil
			}
		}
		h.savedOffers = append(h.savedOffers, &saved)
		return nil
	}).AnyTimes()
	offers.EXPECT().ListOffers(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id uuid.UUID) ([]*models.CandidateOffer, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		out := make([]*models.CandidateOffer, 0)
		for _, o := range h.savedOffers {
			if o.IncidentID == id {
				c := *o
				out = append(out, &c)
			}
		}
		return out, nil
	}).AnyTimes()

	slots := mocks.NewMockSlotStore(ctrl)
	slots.EXPECT().ClaimSlot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID, kind models.ServiceKind, responderID string) (bool, error) {
			if h.beforeClaim != nil {
				h.beforeClaim()
			}
			h.mu.Lock()
			defer h.mu.Unlock()
			key := id.String() + "/" + string(kind)
			if _, taken := h.claims[key]; taken {
				return false, nil
			}
			for _, holder := range h.claims {
				if holder == responderID {
					return false, nil
				}
			}
			h.claims[key] = responderID
			return true, nil
		}).AnyTimes()
	slots.EXPECT().ReleaseSlot(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID, kind models.ServiceKind) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.claims, id.String()+"/"+string(kind))
			h.releasedSlots++
			return nil
		}).AnyTimes()

	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n models.Notification) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.sent = append(h.sent, n)
		return nil
	}).AnyTimes()

	hub := mocks.NewMockStreamHub(ctrl)
	hub.EXPECT().Open(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(id uuid.UUID, _ geo.Point, observe func(models.Participant, models.Location)) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.observers[id] = observe
		}).AnyTimes()
	hub.EXPECT().Grant(gomock.Any(), gomock.Any()).AnyTimes()
	hub.EXPECT().Close(gomock.Any()).Do(func(id uuid.UUID) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.closedStreams[id] = true
	}).AnyTimes()

	h.deps = Dependencies{
		Incidents: repo,
		Offers:    offers,
		Slots:     slots,
		Directory: h.dir,
		Notifier:  notifier,
		Hub:       hub,
		Validator: validation.New(),
	}
	h.logger = logger
	h.cfg = cfg
	h.svc = newCoordinator(h.deps, logger, cfg)

	t.Cleanup(func() { _ = h.svc.Shutdown(context.Background()) })
	return h
}

// peer - второй экземпляр диспетчера с теми же хранилищем, справочником и потоком
func (h *testHarness) peer(t *testing.T) *coordinator {
	t.Helper()
	c := newCoordinator(h.deps, h.logger, h.cfg)
	t.Cleanup(func() { _ = c.Shutdown(context.Background()) })
	return c
}

// storedIncident - копия записи в хранилище
func (h *testHarness) storedIncident(id uuid.UUID) *models.Incident {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stored[id].Clone()
}

// rewriteStored имитирует запись другого экземпляра: меняет запись и увеличивает версию
func (h *testHarness) rewriteStored(id uuid.UUID, change func(*models.Incident)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	inc := h.stored[id].Clone()
	change(inc)
	inc.Version++
	h.stored[id] = inc
}

func (h *testHarness) addResponder(t *testing.T, id string, kind models.ResponderKind, lat, lng float64, opts ...func(*models.Responder)) {
	t.Helper()
	r := &models.Responder{
		ID:           id,
		Name:         id,
		Kind:         kind,
		Location:     models.Location{Lat: lat, Lng: lng},
		Availability: models.Available,
	}
	switch kind {
	case models.ResponderAmbulance:
		r.AmbulanceType = models.AmbulanceBasic
	case models.ResponderVolunteer:
		r.Certifications = []models.Certification{{Name: "CPR"}}
	}
	for _, opt := range opts {
		opt(r)
	}
	require.NoError(t, h.dir.Upsert(context.Background(), r))
}

// notifications возвращает отправленные уведомления заданного типа; пустой target - всем адресатам
func (h *testHarness) notifications(kind models.NotificationKind, target string) []models.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.Notification, 0)
	for _, n := range h.sent {
		if n.Kind == kind && (target == "" || n.TargetID == target) {
			out = append(out, n)
		}
	}
	return out
}

func (h *testHarness) observer(id uuid.UUID) func(models.Participant, models.Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.observers[id]
}

func (h *testHarness) streamClosed(id uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closedStreams[id]
}

func (h *testHarness) state(id uuid.UUID) models.IncidentState {
	inc, err := h.svc.GetIncident(context.Background(), id)
	if err != nil {
		return ""
	}
	return inc.State
}

func ptr[T any](v T) *T {
	return &v
}

func selfReport() models.EmergencyReport {
	return models.EmergencyReport{
		Type:        models.IncidentTypeSelf,
		Location:    &models.ReportLocation{Lat: ptr(incidentLat), Lng: ptr(incidentLng)},
		Description: "chest pain",
	}
}

func bystanderReport(conscious, breathing, bleeding bool) models.EmergencyReport {
	return models.EmergencyReport{
		Type:          models.IncidentTypeBystander,
		Location:      &models.ReportLocation{Lat: ptr(incidentLat), Lng: ptr(incidentLng)},
		TriageAnswers: answers(conscious, breathing, bleeding),
	}
}

func targets(ns []models.Notification) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.TargetID)
	}
	return out
}

func TestReportIncident_OffersNearestCandidate(t *testing.T) {
	// Подготовка
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-near", models.ResponderAmbulance, 28.62, 77.21)
	h.addResponder(t, "amb-far", models.ResponderAmbulance, 28.65, 77.21)
	h.addResponder(t, "hosp-1", models.ResponderHospital, 28.63, 77.22, func(r *models.Responder) {
		r.Beds = map[models.BedType]models.BedCount{models.BedEmergency: {Total: 5, Available: 2}}
	})

	// Действие
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StateDispatching, inc.State)
	assert.Equal(t, models.SeverityHigh, inc.Severity)
	assert.Equal(t, []models.ServiceKind{models.ServiceAmbulance}, inc.RequestedServices)
	require.NotNil(t, inc.Hospital)
	assert.Equal(t, "hosp-1", inc.Hospital.ID)

	require.Len(t, inc.History, 2)
	assert.Equal(t, models.StateTriaged, inc.History[0].To)
	assert.Equal(t, models.StateDispatching, inc.History[1].To)

	assert.Equal(t, []string{"amb-near"}, targets(h.notifications(models.NotifyAmbulanceRequest, "")))
	assert.Len(t, h.notifications(models.NotifyEmergencyAlert, "hosp-1"), 1)
	assert.Len(t, h.notifications(models.NotifyStatusUpdate, reporterID), 1)

	offers, err := h.svc.Offers(ctx, inc.ID)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, models.OfferPending, offers[0].Outcome)
	assert.Equal(t, offers[0].OfferedAt.Add(time.Hour), offers[0].ExpiresAt)

	active, err := h.svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, inc.ID, active[0].ID)
	assert.NotNil(t, h.observer(inc.ID))
}

func TestReportIncident_ValidationError(t *testing.T) {
	h := newTestCoordinator(t)
	report := bystanderReport(true, true, false)
	report.TriageAnswers = nil

	inc, err := h.svc.ReportIncident(context.Background(), reporterID, report)

	require.Error(t, err)
	assert.Nil(t, inc)
	assert.ErrorIs(t, err, models.ErrValidation)
	active, _ := h.svc.ListActive(context.Background())
	assert.Empty(t, active)
	assert.Empty(t, h.notifications(models.NotifyStatusUpdate, ""))
}

func TestReportIncident_RequiresReporter(t *testing.T) {
	h := newTestCoordinator(t)
	_, err := h.svc.ReportIncident(context.Background(), " ", selfReport())
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAcceptOffer_ConcurrentAcceptsExactlyOneWins(t *testing.T) {
	const n = 8
	h := newTestCoordinator(t, func(c *config.Config) { c.OfferFanout = n })
	ctx := context.Background()
	ids := make([]string, n)
	for i := range n {
		ids[i] = fmt.Sprintf("amb-%d", i)
		h.addResponder(t, ids[i], models.ResponderAmbulance, incidentLat+float64(i+1)*0.001, incidentLng)
	}
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)
	require.Len(t, h.notifications(models.NotifyAmbulanceRequest, ""), n)

	// Действие: все кандидаты принимают одновременно
	var wg sync.WaitGroup
	start := make(chan struct{})
	outcomes := make([]models.AcceptOutcome, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			outcomes[i], errs[i] = h.svc.AcceptOffer(ctx, inc.ID, ids[i], models.ServiceAmbulance)
		}()
	}
	close(start)
	wg.Wait()

	// Проверки
	winner := ""
	for i := range n {
		require.NoError(t, errs[i])
		if outcomes[i] == models.AcceptAccepted {
			assert.Empty(t, winner, "second winner %s", ids[i])
			winner = ids[i]
			continue
		}
		assert.Equal(t, models.AcceptConflict, outcomes[i])
	}
	require.NotEmpty(t, winner)

	got, err := h.svc.GetIncident(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateResponderAssigned, got.State)
	assert.Equal(t, winner, got.Slots[models.ServiceAmbulance].ResponderID)

	offers, err := h.svc.Offers(ctx, inc.ID)
	require.NoError(t, err)
	accepted := 0
	for _, o := range offers {
		switch o.Outcome {
		case models.OfferAccepted:
			accepted++
			assert.Equal(t, winner, o.ResponderID)
		default:
			assert.Equal(t, models.OfferWithdrawn, o.Outcome)
		}
	}
	assert.Equal(t, 1, accepted)

	for _, id := range ids {
		r, err := h.dir.Get(id)
		require.NoError(t, err)
		if id == winner {
			assert.Equal(t, models.Busy, r.Availability)
			continue
		}
		assert.Equal(t, models.Available, r.Availability)
		assert.NotEmpty(t, h.notifications(models.NotifyStatusUpdate, id), "loser %s must be told the slot is filled", id)
	}
}

func TestAcceptOffer_Errors(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	_, err = h.svc.AcceptOffer(ctx, inc.ID, "stranger", models.ServiceAmbulance)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = h.svc.AcceptOffer(ctx, inc.ID, "amb-1", models.ServiceBloodDonor)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = h.svc.AcceptOffer(ctx, inc.ID, "amb-1", "helicopter")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = h.svc.AcceptOffer(ctx, uuid.New(), "amb-1", models.ServiceAmbulance)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, h.svc.DeclineOffer(ctx, inc.ID, "stranger", models.ServiceAmbulance), models.ErrNotFound)
}

func TestDeclineOffer_AdvancesToNextCandidate(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	h.addResponder(t, "amb-2", models.ResponderAmbulance, 28.65, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	require.NoError(t, h.svc.DeclineOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance))

	assert.Equal(t, []string{"amb-1", "amb-2"}, targets(h.notifications(models.NotifyAmbulanceRequest, "")))
	offers, err := h.svc.Offers(ctx, inc.ID)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, models.OfferDeclined, offers[0].Outcome)
	assert.Equal(t, models.OfferPending, offers[1].Outcome)

	// Повторное принятие отклоненного предложения
	_, err = h.svc.AcceptOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance)
	assert.ErrorIs(t, err, models.ErrConflict)

	outcome, err := h.svc.AcceptOffer(ctx, inc.ID, "amb-2", models.ServiceAmbulance)
	require.NoError(t, err)
	assert.Equal(t, models.AcceptAccepted, outcome)
}

func TestOfferExpiry_AdvancesThenEscalatesOnce(t *testing.T) {
	h := newTestCoordinator(t, func(c *config.Config) {
		c.OfferTimeout = 20 * time.Millisecond
		c.MaxPoolRefreshes = 1
	})
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	h.addResponder(t, "amb-2", models.ResponderAmbulance, 28.65, 77.21)
	// За пределами 10 км, попадает только после расширения радиуса
	h.addResponder(t, "amb-far", models.ResponderAmbulance, 28.7041, 77.1025)

	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(h.notifications(models.NotifyDispatchEscalation, "operators")) == 1
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	assert.Len(t, h.notifications(models.NotifyDispatchEscalation, ""), 1)
	assert.Equal(t, []string{"amb-1", "amb-2", "amb-far"}, targets(h.notifications(models.NotifyAmbulanceRequest, "")))

	searching := 0
	for _, n := range h.notifications(models.NotifyStatusUpdate, reporterID) {
		if n.Payload["message"] == msgSearchingLonger {
			searching++
		}
	}
	assert.Equal(t, 1, searching)

	got, err := h.svc.GetIncident(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateDispatching, got.State, "incident stays open for the operator")
	assert.True(t, got.Escalated)
	slot := got.Slots[models.ServiceAmbulance]
	assert.Equal(t, models.SlotExhausted, slot.State)
	assert.Equal(t, 1, slot.Refreshes)
	assert.Equal(t, 20.0, slot.RadiusKm)

	offers, err := h.svc.Offers(ctx, inc.ID)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	for _, o := range offers {
		assert.Equal(t, models.OfferExpired, o.Outcome)
	}

	_, err = h.svc.AcceptOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance)
	assert.ErrorIs(t, err, models.ErrTimeout)
}

func TestAssignManually_AfterExhaustion(t *testing.T) {
	h := newTestCoordinator(t, func(c *config.Config) { c.MaxPoolRefreshes = 0 })
	ctx := context.Background()

	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)
	assert.Equal(t, models.SlotExhausted, inc.Slots[models.ServiceAmbulance].State)
	assert.Len(t, h.notifications(models.NotifyDispatchEscalation, "operators"), 1)

	h.addResponder(t, "amb-late", models.ResponderAmbulance, 28.9, 77.5)
	outcome, err := h.svc.AssignManually(ctx, inc.ID, "amb-late", models.ServiceAmbulance)
	require.NoError(t, err)
	assert.Equal(t, models.AcceptAccepted, outcome)
	assert.Equal(t, models.StateResponderAssigned, h.state(inc.ID))

	outcome, err = h.svc.AssignManually(ctx, inc.ID, "amb-late", models.ServiceAmbulance)
	require.NoError(t, err)
	assert.Equal(t, models.AcceptConflict, outcome)

	_, err = h.svc.AssignManually(ctx, inc.ID, "ghost", models.ServiceAmbulance)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProgress_EnRouteArrivedResolved(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	// Resolve до прибытия нарушает граф
	assert.ErrorIs(t, h.svc.Resolve(ctx, inc.ID), models.ErrIllegalTransition)

	outcome, err := h.svc.AcceptOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance)
	require.NoError(t, err)
	require.Equal(t, models.AcceptAccepted, outcome)
	assert.ErrorIs(t, h.svc.Expire(ctx, inc.ID, ""), models.ErrIllegalTransition)

	observe := h.observer(inc.ID)
	require.NotNil(t, observe)
	ambulance := models.Participant{ID: "amb-1", Role: models.RoleResponder, ServiceKind: models.ServiceAmbulance}

	// Смещение меньше порога не считается движением
	observe(ambulance, models.Location{Lat: 28.62000001, Lng: 77.21})
	observe(models.Participant{ID: reporterID, Role: models.RoleReporter}, models.Location{Lat: 28.0, Lng: 77.0})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, models.StateResponderAssigned, h.state(inc.ID))

	observe(ambulance, models.Location{Lat: 28.617, Lng: 77.209})
	require.Eventually(t, func() bool { return h.state(inc.ID) == models.StateEnRoute }, time.Second, 5*time.Millisecond)

	observe(ambulance, models.Location{Lat: incidentLat, Lng: incidentLng})
	require.Eventually(t, func() bool { return h.state(inc.ID) == models.StateArrived }, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, h.svc.Cancel(ctx, inc.ID, "too late"), models.ErrIllegalTransition)
	require.NoError(t, h.svc.Resolve(ctx, inc.ID))

	got, err := h.svc.GetIncident(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateResolved, got.State)
	assert.NotNil(t, got.ClosedAt)
	steps := make([]models.IncidentState, 0, len(got.History))
	for _, tr := range got.History {
		steps = append(steps, tr.To)
	}
	assert.Equal(t, []models.IncidentState{
		models.StateTriaged,
		models.StateDispatching,
		models.StateResponderAssigned,
		models.StateEnRoute,
		models.StateArrived,
		models.StateResolved,
	}, steps)

	r, err := h.dir.Get("amb-1")
	require.NoError(t, err)
	assert.Equal(t, models.Available, r.Availability)
	assert.True(t, h.streamClosed(inc.ID))

	active, _ := h.svc.ListActive(ctx)
	assert.Empty(t, active)
	assert.ErrorIs(t, h.svc.Resolve(ctx, inc.ID), models.ErrIncidentClosed)
}

func TestMarkArrived_ExplicitSignal(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	assert.ErrorIs(t, h.svc.MarkArrived(ctx, inc.ID, "amb-1", models.ServiceAmbulance), models.ErrNotFound)

	_, err = h.svc.AcceptOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance)
	require.NoError(t, err)
	require.NoError(t, h.svc.MarkArrived(ctx, inc.ID, "amb-1", models.ServiceAmbulance))
	assert.Equal(t, models.StateArrived, h.state(inc.ID))
}

func TestCancel_BystanderWithVolunteer(t *testing.T) {
	h := newTestCoordinator(t, func(c *config.Config) { c.OfferFanout = 2 })
	ctx := context.Background()
	h.addResponder(t, "amb-basic", models.ResponderAmbulance, 28.615, 77.209)
	h.addResponder(t, "amb-adv", models.ResponderAmbulance, 28.62, 77.21, func(r *models.Responder) {
		r.AmbulanceType = models.AmbulanceAdvanced
	})
	h.addResponder(t, "vol-1", models.ResponderVolunteer, 28.614, 77.21)
	h.addResponder(t, "vol-2", models.ResponderVolunteer, 28.616, 77.21)

	report := bystanderReport(false, true, false)
	report.RequestVolunteer = true
	inc, err := h.svc.ReportIncident(ctx, reporterID, report)
	require.NoError(t, err)

	// Два независимых цикла предложений
	assert.Equal(t, models.SeverityCritical, inc.Severity)
	assert.Equal(t, []models.ServiceKind{models.ServiceAmbulance, models.ServiceVolunteer}, inc.RequestedServices)
	assert.Equal(t, []string{"amb-adv"}, targets(h.notifications(models.NotifyAmbulanceRequest, "")))
	assert.ElementsMatch(t, []string{"vol-1", "vol-2"}, targets(h.notifications(models.NotifyVolunteerRequest, "")))

	outcome, err := h.svc.AcceptOffer(ctx, inc.ID, "amb-adv", models.ServiceAmbulance)
	require.NoError(t, err)
	require.Equal(t, models.AcceptAccepted, outcome)

	got, err := h.svc.GetIncident(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateDispatching, got.State, "volunteer is still searching")
	assert.Equal(t, models.SlotAssigned, got.Slots[models.ServiceAmbulance].State)
	assert.Equal(t, models.SlotSearching, got.Slots[models.ServiceVolunteer].State)

	// Действие
	require.NoError(t, h.svc.Cancel(ctx, inc.ID, "reporter cancelled"))

	// Проверки
	r, err := h.dir.Get("amb-adv")
	require.NoError(t, err)
	assert.Equal(t, models.Available, r.Availability)

	// Закрытый инцидент читает предложения из хранилища
	offers, err := h.svc.Offers(ctx, inc.ID)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	for _, o := range offers {
		switch o.ServiceKind {
		case models.ServiceAmbulance:
			assert.Equal(t, models.OfferAccepted, o.Outcome)
		default:
			assert.Equal(t, models.OfferWithdrawn, o.Outcome, o.ResponderID)
		}
	}

	got, err = h.svc.GetIncident(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCancelled, got.State)
	assert.Equal(t, "reporter cancelled", got.CancelReason)
	assert.True(t, h.streamClosed(inc.ID))
	assert.Equal(t, 1, h.releasedSlots)

	for _, id := range []string{"amb-adv", "vol-1", "vol-2"} {
		found := false
		for _, n := range h.notifications(models.NotifyStatusUpdate, id) {
			if n.Payload["message"] == msgIncidentCancelled {
				found = true
			}
		}
		assert.True(t, found, "%s must be told about the cancellation", id)
	}

	_, err = h.svc.AcceptOffer(ctx, inc.ID, "vol-1", models.ServiceVolunteer)
	assert.ErrorIs(t, err, models.ErrIncidentClosed)
	assert.ErrorIs(t, h.svc.Cancel(ctx, inc.ID, ""), models.ErrIncidentClosed)
}

func TestCancel_LateAcceptIsReverted(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	entered := make(chan struct{})
	proceed := make(chan struct{})
	h.beforeClaim = func() {
		close(entered)
		<-proceed
	}

	type result struct {
		outcome models.AcceptOutcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, err := h.svc.AcceptOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance)
		done <- result{outcome, err}
	}()

	<-entered
	require.NoError(t, h.svc.Cancel(ctx, inc.ID, "reporter cancelled"))
	close(proceed)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, models.AcceptConflict, res.outcome)

	r, err := h.dir.Get("amb-1")
	require.NoError(t, err)
	assert.Equal(t, models.Available, r.Availability)

	h.mu.Lock()
	assert.Empty(t, h.claims, "compensating release must drop the claim")
	h.mu.Unlock()
}

func TestDispatchDeadline_ExpiresUnassignedIncident(t *testing.T) {
	h := newTestCoordinator(t, func(c *config.Config) { c.DispatchDeadline = 30 * time.Millisecond })
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	require.Eventually(t, func() bool { return h.state(inc.ID) == models.StateExpired }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, h.streamClosed(inc.ID))

	withdrawn := false
	for _, n := range h.notifications(models.NotifyStatusUpdate, "amb-1") {
		if n.Payload["message"] == msgDispatchExpired {
			withdrawn = true
		}
	}
	assert.True(t, withdrawn)
}

func TestExpire_ByOperator(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	require.NoError(t, h.svc.Expire(ctx, inc.ID, "no units in the area"))
	assert.Equal(t, models.StateExpired, h.state(inc.ID))
	assert.ErrorIs(t, h.svc.Expire(ctx, inc.ID, ""), models.ErrIncidentClosed)
}

func TestGetIncident_NotFound(t *testing.T) {
	h := newTestCoordinator(t)
	inc, err := h.svc.GetIncident(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Nil(t, inc)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorContains(t, err, "could not get incident")
}

func TestBloodRequestPayload(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	h.addResponder(t, "donor-1", models.ResponderBloodDonor, 28.615, 77.21, func(r *models.Responder) { r.BloodGroup = "O-" })
	h.addResponder(t, "donor-2", models.ResponderBloodDonor, 28.614, 77.21, func(r *models.Responder) { r.BloodGroup = "B+" })
	h.addResponder(t, "hosp-1", models.ResponderHospital, 28.63, 77.22, func(r *models.Responder) {
		r.Name = "City Hospital"
		r.Beds = map[models.BedType]models.BedCount{models.BedEmergency: {Total: 5, Available: 1}}
	})

	report := bystanderReport(true, true, true)
	report.RequestBlood = true
	report.BloodGroup = "A+"
	_, err := h.svc.ReportIncident(ctx, reporterID, report)
	require.NoError(t, err)

	requests := h.notifications(models.NotifyBloodRequest, "")
	require.Len(t, requests, 1)
	assert.Equal(t, "donor-1", requests[0].TargetID, "B+ cannot donate to A+")
	assert.Equal(t, "A+", requests[0].Payload["bloodType"])
	assert.Equal(t, "City Hospital", requests[0].Payload["hospitalName"])
}

func TestRegister_DoesNotFreeEngagedResponder(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	responders := NewResponderService(h.dir, h.logger)

	first, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)
	outcome, err := h.svc.AcceptOffer(ctx, first.ID, "amb-1", models.ServiceAmbulance)
	require.NoError(t, err)
	require.Equal(t, models.AcceptAccepted, outcome)

	// Повторная регистрация со статусом available не снимает занятость
	err = responders.Register(ctx, &models.Responder{
		ID:            "amb-1",
		Name:          "amb-1",
		Kind:          models.ResponderAmbulance,
		AmbulanceType: models.AmbulanceBasic,
		Location:      models.Location{Lat: 28.62, Lng: 77.21},
		Availability:  models.Available,
	})
	assert.ErrorIs(t, err, models.ErrConflict)

	r, err := h.dir.Get("amb-1")
	require.NoError(t, err)
	assert.Equal(t, models.Busy, r.Availability)

	second, err := h.svc.ReportIncident(ctx, "reporter-2", selfReport())
	require.NoError(t, err)
	assert.Len(t, h.notifications(models.NotifyAmbulanceRequest, "amb-1"), 1, "busy responder is not offered again")

	outcome, err = h.svc.AssignManually(ctx, second.ID, "amb-1", models.ServiceAmbulance)
	require.NoError(t, err)
	assert.Equal(t, models.AcceptConflict, outcome)
	assert.Equal(t, models.StateResponderAssigned, h.state(first.ID))
	assert.Equal(t, models.StateDispatching, h.state(second.ID))
}

func TestPeerInstance_AdoptsOpenIncident(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	peer := h.peer(t)
	outcome, err := peer.AcceptOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance)
	require.NoError(t, err)
	assert.Equal(t, models.AcceptAccepted, outcome)

	stored := h.storedIncident(inc.ID)
	assert.Equal(t, models.StateResponderAssigned, stored.State)
	assert.Equal(t, "amb-1", stored.Slots[models.ServiceAmbulance].ResponderID)

	active, err := peer.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, inc.ID, active[0].ID)
}

func TestPeerInstance_ClosedIncidentStaysClosed(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)
	require.NoError(t, h.svc.Expire(ctx, inc.ID, "no units"))

	// Кеш мог истечь: решение принимается по записи в хранилище
	h.mu.Lock()
	delete(h.cache, inc.ID)
	h.mu.Unlock()

	peer := h.peer(t)
	_, err = peer.AcceptOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance)
	assert.ErrorIs(t, err, models.ErrIncidentClosed)

	active, err := peer.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = peer.AcceptOffer(ctx, uuid.New(), "amb-1", models.ServiceAmbulance)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRestore_ResumesDispatchAfterRestart(t *testing.T) {
	h := newTestCoordinator(t, func(c *config.Config) { c.OfferTimeout = 100 * time.Millisecond })
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	h.addResponder(t, "amb-2", models.ResponderAmbulance, 28.65, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	// Остановка до истечения предложения amb-1
	require.NoError(t, h.svc.Shutdown(ctx))
	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, h.notifications(models.NotifyAmbulanceRequest, "amb-2"))

	restarted := h.peer(t)
	restored, err := restarted.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, restored)

	require.Eventually(t, func() bool {
		return len(h.notifications(models.NotifyAmbulanceRequest, "amb-2")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	offers, err := restarted.Offers(ctx, inc.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(offers), 2)
	assert.Equal(t, "amb-1", offers[0].ResponderID)
	assert.Equal(t, models.OfferExpired, offers[0].Outcome)

	// Повторный Restore не поднимает уже активные инциденты
	restored, err = restarted.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, restored)
}

func TestRestore_CancelsIncidentInterruptedBeforeTriage(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()

	id := uuid.New()
	h.mu.Lock()
	h.stored[id] = &models.Incident{
		ID:         id,
		ReporterID: reporterID,
		Type:       models.IncidentTypeSelf,
		Location:   models.Location{Lat: incidentLat, Lng: incidentLng},
		State:      models.StateReported,
		Slots:      map[models.ServiceKind]*models.ServiceSlot{},
		Version:    1,
		CreatedAt:  time.Now(),
	}
	h.mu.Unlock()

	restored, err := h.svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, restored)

	stored := h.storedIncident(id)
	assert.Equal(t, models.StateCancelled, stored.State)
	assert.Equal(t, msgDispatchInterrupted, stored.CancelReason)
	assert.True(t, h.streamClosed(id))

	active, err := h.svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestPersist_ConcurrentWriteIsReconciled(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	h.addResponder(t, "amb-2", models.ResponderAmbulance, 28.65, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	// Запись другого экземпляра сдвигает версию
	h.rewriteStored(inc.ID, func(i *models.Incident) { i.Escalated = true })
	behind := h.storedIncident(inc.ID).Version

	require.NoError(t, h.svc.DeclineOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance))

	stored := h.storedIncident(inc.ID)
	assert.Greater(t, stored.Version, behind)
	assert.Equal(t, []string{"amb-1", "amb-2"}, stored.Slots[models.ServiceAmbulance].Offered)

	// Следующие записи больше не упираются в устаревшую версию
	outcome, err := h.svc.AcceptOffer(ctx, inc.ID, "amb-2", models.ServiceAmbulance)
	require.NoError(t, err)
	assert.Equal(t, models.AcceptAccepted, outcome)
	assert.Equal(t, models.StateResponderAssigned, h.storedIncident(inc.ID).State)
}

func TestPersist_IncidentClosedElsewhereRetiresMachine(t *testing.T) {
	h := newTestCoordinator(t)
	ctx := context.Background()
	h.addResponder(t, "amb-1", models.ResponderAmbulance, 28.62, 77.21)
	h.addResponder(t, "amb-2", models.ResponderAmbulance, 28.65, 77.21)
	inc, err := h.svc.ReportIncident(ctx, reporterID, selfReport())
	require.NoError(t, err)

	h.rewriteStored(inc.ID, func(i *models.Incident) {
		i.State = models.StateCancelled
		i.CancelReason = "cancelled on another instance"
	})

	require.NoError(t, h.svc.DeclineOffer(ctx, inc.ID, "amb-1", models.ServiceAmbulance))

	assert.True(t, h.streamClosed(inc.ID))
	active, err := h.svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	stored := h.storedIncident(inc.ID)
	assert.Equal(t, models.StateCancelled, stored.State, "closed record is not overwritten")

	got, err := h.svc.GetIncident(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCancelled, got.State)

	_, err = h.svc.AcceptOffer(ctx, inc.ID, "amb-2", models.ServiceAmbulance)
	assert.ErrorIs(t, err, models.ErrIncidentClosed)
}
