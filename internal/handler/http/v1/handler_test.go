package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/config"
	"github.com/healthlink/dispatch_engine/internal/directory"
	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/handler/http/v1/mocks"
	"github.com/healthlink/dispatch_engine/internal/models"
	servicemocks "github.com/healthlink/dispatch_engine/internal/service/mocks"
	"github.com/healthlink/dispatch_engine/pkg/token"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var apiKey = map[string]string{"X-API-Key": "test-api-key"}

type testDeps struct {
	dispatcher *servicemocks.MockDispatcher
	responders *servicemocks.MockResponderService
	locations  *mocks.MockLocationReader
	router     *gin.Engine
}

// newTestHandler создает Handler с мокированными сервисами
func newTestHandler(t *testing.T) testDeps {
	ctrl := gomock.NewController(t)
	deps := testDeps{
		dispatcher: servicemocks.NewMockDispatcher(ctrl),
		responders: servicemocks.NewMockResponderService(ctrl),
		locations:  mocks.NewMockLocationReader(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:         []string{"test-api-key"},
		StreamJWTSecret: "stream-secret",
		StreamTokenTTL:  time.Hour,
		SearchRadiusKm:  10,
	}

	handler := NewHandler(deps.dispatcher, deps.responders, deps.locations, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	deps.router = gin.New()
	api := deps.router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return deps
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func sampleIncident() *models.Incident {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.Incident{
		ID:                uuid.New(),
		ReporterID:        "user-1",
		Type:              models.IncidentTypeBystander,
		Location:          models.Location{Lat: 28.6139, Lng: 77.2090, Timestamp: now},
		Severity:          models.SeverityCritical,
		AmbulanceType:     models.AmbulanceAdvanced,
		RequestedServices: []models.ServiceKind{models.ServiceAmbulance, models.ServiceVolunteer},
		State:             models.StateResponderAssigned,
		Slots: map[models.ServiceKind]*models.ServiceSlot{
			models.ServiceVolunteer: {Kind: models.ServiceVolunteer, State: models.SlotSearching, RadiusKm: 10,
				Pool: []models.Candidate{{ResponderID: "vol-1"}, {ResponderID: "vol-2"}}, NextCandidate: 1},
			models.ServiceAmbulance: {Kind: models.ServiceAmbulance, State: models.SlotAssigned, ResponderID: "amb-1", RadiusKm: 10},
		},
		History: []models.StateTransition{
			{From: models.StateReported, To: models.StateTriaged, At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestReportIncident_Success(t *testing.T) {
	d := newTestHandler(t)
	incident := sampleIncident()

	d.dispatcher.EXPECT().
		ReportIncident(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, report models.EmergencyReport) (*models.Incident, error) {
			assert.Equal(t, models.IncidentTypeBystander, report.Type)
			require.NotNil(t, report.Location)
			assert.Equal(t, 28.6139, *report.Location.Lat)
			require.NotNil(t, report.TriageAnswers)
			assert.False(t, *report.TriageAnswers.Breathing)
			assert.True(t, report.RequestVolunteer)
			return incident, nil
		})

	body := `{"reporterId":"user-1","type":"bystander","location":{"lat":28.6139,"lng":77.2090},
		"triageAnswers":{"conscious":false,"breathing":false,"bleeding":false},"requestVolunteer":true}`
	w := makeRequest(d.router, "POST", "/api/v1/incidents", bytes.NewBufferString(body), apiKey)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incident.ID, resp.ID)
	assert.Equal(t, models.StateResponderAssigned, resp.State)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, models.ServiceAmbulance, resp.Services[0].Kind)
	assert.Equal(t, "amb-1", resp.Services[0].ResponderID)
	assert.Equal(t, 1, resp.Services[1].RemainingCandidates)
	assert.Len(t, resp.History, 1)
}

func TestReportIncident_MissingReporter(t *testing.T) {
	d := newTestHandler(t)
	d.dispatcher.EXPECT().ReportIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(d.router, "POST", "/api/v1/incidents", bytes.NewBufferString(`{"type":"self","location":{"lat":1,"lng":2}}`), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation error", resp.Message)
	assert.Equal(t, []models.FieldError{{Field: "reporterId", Message: "is required"}}, resp.Errors)
}

func TestReportIncident_ValidationError(t *testing.T) {
	d := newTestHandler(t)
	verr := &models.ValidationError{}
	verr.Add("location.lat", "must be a valid latitude")

	d.dispatcher.EXPECT().ReportIncident(gomock.Any(), "user-1", gomock.Any()).Return(nil, verr)

	w := makeRequest(d.router, "POST", "/api/v1/incidents", bytes.NewBufferString(`{"reporterId":"user-1","type":"self","location":{"lat":100,"lng":2}}`), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Validation error","errors":[{"field":"location.lat","message":"must be a valid latitude"}]}`, w.Body.String())
}

func TestReportIncident_InvalidJSON(t *testing.T) {
	d := newTestHandler(t)
	d.dispatcher.EXPECT().ReportIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(d.router, "POST", "/api/v1/incidents", bytes.NewBufferString(`{"reporterId": "x"`), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestGetIncident(t *testing.T) {
	incident := sampleIncident()

	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{"success", incident.ID.String(), nil, http.StatusOK},
		{"not found", incident.ID.String(), fmt.Errorf("repo: %w", models.ErrNotFound), http.StatusNotFound},
		{"service error", incident.ID.String(), errors.New("db down"), http.StatusInternalServerError},
		{"invalid id", "invalid-uuid", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandler(t)
			if tt.path == incident.ID.String() {
				var result *models.Incident
				if tt.err == nil {
					result = incident
				}
				d.dispatcher.EXPECT().GetIncident(gomock.Any(), incident.ID).Return(result, tt.err)
			}

			w := makeRequest(d.router, "GET", "/api/v1/incidents/"+tt.path, nil, apiKey)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestListIncidents_Success(t *testing.T) {
	d := newTestHandler(t)
	d.dispatcher.EXPECT().ListActive(gomock.Any()).Return([]*models.Incident{sampleIncident(), sampleIncident()}, nil)

	w := makeRequest(d.router, "GET", "/api/v1/incidents", nil, apiKey)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestListOffers_Success(t *testing.T) {
	d := newTestHandler(t)
	id := uuid.New()
	offers := []*models.CandidateOffer{
		{ID: uuid.New(), IncidentID: id, ResponderID: "amb-1", ServiceKind: models.ServiceAmbulance, Outcome: models.OfferDeclined},
		{ID: uuid.New(), IncidentID: id, ResponderID: "amb-2", ServiceKind: models.ServiceAmbulance, Outcome: models.OfferAccepted},
	}
	d.dispatcher.EXPECT().Offers(gomock.Any(), id).Return(offers, nil)

	w := makeRequest(d.router, "GET", fmt.Sprintf("/api/v1/incidents/%s/offers", id), nil, apiKey)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []OfferResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, models.OfferAccepted, resp[1].Outcome)
}

func TestAcceptOffer(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		kind       string
		body       string
		outcome    models.AcceptOutcome
		err        error
		callsSvc   bool
		wantStatus int
		wantBody   string
	}{
		{"accepted", "ambulance", `{"responderId":"amb-1"}`, models.AcceptAccepted, nil, true, http.StatusOK, `{"outcome":"accepted"}`},
		{"slot taken", "ambulance", `{"responderId":"amb-1"}`, models.AcceptConflict, nil, true, http.StatusConflict, `{"outcome":"conflict"}`},
		{"offer expired", "ambulance", `{"responderId":"amb-1"}`, "", fmt.Errorf("service: %w", models.ErrTimeout), true, http.StatusGone, `{"error":"offer expired"}`},
		{"no offer", "volunteer", `{"responderId":"amb-1"}`, "", models.ErrNotFound, true, http.StatusNotFound, `{"error":"not found"}`},
		{"unknown kind", "taxi", `{"responderId":"amb-1"}`, "", nil, false, http.StatusBadRequest, `{"error":"invalid service kind"}`},
		{"missing responder", "ambulance", `{}`, "", nil, false, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandler(t)
			if tt.callsSvc {
				d.dispatcher.EXPECT().
					AcceptOffer(gomock.Any(), id, "amb-1", models.ServiceKind(tt.kind)).
					Return(tt.outcome, tt.err)
			}

			url := fmt.Sprintf("/api/v1/incidents/%s/services/%s/accept", id, tt.kind)
			w := makeRequest(d.router, "POST", url, bytes.NewBufferString(tt.body), apiKey)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAssignManually_ResponderBusy(t *testing.T) {
	d := newTestHandler(t)
	id := uuid.New()
	d.dispatcher.EXPECT().
		AssignManually(gomock.Any(), id, "amb-9", models.ServiceAmbulance).
		Return(models.AcceptOutcome(""), fmt.Errorf("responder amb-9 is busy: %w", models.ErrConflict))

	w := makeRequest(d.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/services/ambulance/assign", id), jsonBody(t, ResponderActionRequest{ResponderID: "amb-9"}), apiKey)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeclineOffer_Success(t *testing.T) {
	d := newTestHandler(t)
	id := uuid.New()
	d.dispatcher.EXPECT().DeclineOffer(gomock.Any(), id, "vol-1", models.ServiceVolunteer).Return(nil)

	w := makeRequest(d.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/services/volunteer/decline", id), jsonBody(t, ResponderActionRequest{ResponderID: "vol-1"}), apiKey)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMarkArrived_NotAssigned(t *testing.T) {
	d := newTestHandler(t)
	id := uuid.New()
	d.dispatcher.EXPECT().
		MarkArrived(gomock.Any(), id, "amb-2", models.ServiceAmbulance).
		Return(fmt.Errorf("service: %w", models.ErrUnauthorized))

	w := makeRequest(d.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/services/ambulance/arrive", id), jsonBody(t, ResponderActionRequest{ResponderID: "amb-2"}), apiKey)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResolveIncident(t *testing.T) {
	d := newTestHandler(t)
	id := uuid.New()
	d.dispatcher.EXPECT().Resolve(gomock.Any(), id).Return(models.TransitionError(models.StateEnRoute, models.StateResolved))

	w := makeRequest(d.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/resolve", id), nil, apiKey)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "en_route -> resolved")
}

func TestCancelIncident(t *testing.T) {
	t.Run("without body", func(t *testing.T) {
		d := newTestHandler(t)
		id := uuid.New()
		d.dispatcher.EXPECT().Cancel(gomock.Any(), id, "").Return(nil)

		w := makeRequest(d.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/cancel", id), nil, apiKey)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("with reason", func(t *testing.T) {
		d := newTestHandler(t)
		id := uuid.New()
		d.dispatcher.EXPECT().Cancel(gomock.Any(), id, "false alarm").Return(nil)

		w := makeRequest(d.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/cancel", id), jsonBody(t, ReasonRequest{Reason: "false alarm"}), apiKey)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("already closed", func(t *testing.T) {
		d := newTestHandler(t)
		id := uuid.New()
		d.dispatcher.EXPECT().Cancel(gomock.Any(), id, "").Return(fmt.Errorf("service: %w", models.ErrIncidentClosed))

		w := makeRequest(d.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/cancel", id), nil, apiKey)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestExpireIncident_NotFound(t *testing.T) {
	d := newTestHandler(t)
	id := uuid.New()
	d.dispatcher.EXPECT().Expire(gomock.Any(), id, "no units").Return(models.ErrNotFound)

	w := makeRequest(d.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/expire", id), jsonBody(t, ReasonRequest{Reason: "no units"}), apiKey)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueStreamToken(t *testing.T) {
	incident := sampleIncident()
	closed := sampleIncident()
	closed.State = models.StateResolved

	tests := []struct {
		name        string
		incident    *models.Incident
		participant string
		wantStatus  int
		wantRole    models.ParticipantRole
	}{
		{"reporter", incident, "user-1", http.StatusOK, models.RoleReporter},
		{"assigned responder", incident, "amb-1", http.StatusOK, models.RoleResponder},
		{"offered but not assigned", incident, "vol-1", http.StatusForbidden, ""},
		{"closed incident", closed, "user-1", http.StatusConflict, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Подготовка
			d := newTestHandler(t)

			// Ожидания
			d.dispatcher.EXPECT().GetIncident(gomock.Any(), tt.incident.ID).Return(tt.incident, nil)

			// Действие
			url := fmt.Sprintf("/api/v1/incidents/%s/stream-token", tt.incident.ID)
			w := makeRequest(d.router, "POST", url, jsonBody(t, StreamTokenRequest{ParticipantID: tt.participant}), apiKey)

			// Проверки
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp StreamTokenResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantRole, resp.Role)

			claims, err := token.Parse([]byte("stream-secret"), resp.Token)
			require.NoError(t, err)
			assert.Equal(t, tt.participant, claims.Subject)
			assert.Equal(t, tt.incident.ID.String(), claims.IncidentID)
		})
	}
}

func TestLatestLocations(t *testing.T) {
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		d := newTestHandler(t)
		d.locations.EXPECT().Latest(id, "user-1").Return([]models.LocationEvent{
			{IncidentID: id, ParticipantID: "amb-1", Role: models.RoleResponder, Lat: 28.7041, Lng: 77.1025, DistanceKm: 14.44, ETAMinutes: 22, Seq: 3},
		}, nil)

		w := makeRequest(d.router, "GET", fmt.Sprintf("/api/v1/incidents/%s/locations?participantId=user-1", id), nil, apiKey)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []LocationEventResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, 22, resp[0].ETAMinutes)
	})

	t.Run("missing participant", func(t *testing.T) {
		d := newTestHandler(t)

		w := makeRequest(d.router, "GET", fmt.Sprintf("/api/v1/incidents/%s/locations", id), nil, apiKey)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "participantId")
	})

	t.Run("stranger", func(t *testing.T) {
		d := newTestHandler(t)
		d.locations.EXPECT().Latest(id, "stranger").Return(nil, fmt.Errorf("stream: %w", models.ErrUnauthorized))

		w := makeRequest(d.router, "GET", fmt.Sprintf("/api/v1/incidents/%s/locations?participantId=stranger", id), nil, apiKey)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRegisterResponder_Success(t *testing.T) {
	d := newTestHandler(t)
	lat, lng := 28.62, 77.21

	d.responders.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Responder) error {
			assert.Equal(t, models.ResponderHospital, r.Kind)
			assert.Equal(t, models.BedCount{Total: 10, Available: 4}, r.Beds[models.BedEmergency])
			assert.False(t, r.Location.Timestamp.IsZero())
			r.Availability = models.Available
			return nil
		})

	req := RegisterResponderRequest{
		ID:       "hosp-1",
		Kind:     "hospital",
		Name:     "AIIMS",
		Location: &LocationRequest{Lat: &lat, Lng: &lng},
		Beds:     map[string]BedCountRequest{"emergency": {Total: 10, Available: 4}},
	}
	w := makeRequest(d.router, "POST", "/api/v1/responders", jsonBody(t, req), apiKey)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp ResponderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hosp-1", resp.ID)
	assert.Equal(t, models.Available, resp.Availability)
}

func TestRegisterResponder_ValidationError(t *testing.T) {
	d := newTestHandler(t)
	d.responders.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(d.router, "POST", "/api/v1/responders", bytes.NewBufferString(`{"id":"x","kind":"taxi","location":{"lat":1,"lng":2}}`), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "kind", resp.Errors[0].Field)
}

func TestUpdateResponderLocation(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d := newTestHandler(t)
		d.responders.EXPECT().
			UpdateLocation(gomock.Any(), "amb-1", models.Location{Lat: 28.6, Lng: 77.2}).
			Return(nil)

		w := makeRequest(d.router, "PUT", "/api/v1/responders/amb-1/location", bytes.NewBufferString(`{"lat":28.6,"lng":77.2}`), apiKey)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("out of range", func(t *testing.T) {
		d := newTestHandler(t)

		w := makeRequest(d.router, "PUT", "/api/v1/responders/amb-1/location", bytes.NewBufferString(`{"lat":128.6,"lng":77.2}`), apiKey)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "lat")
	})

	t.Run("unknown responder", func(t *testing.T) {
		d := newTestHandler(t)
		d.responders.EXPECT().UpdateLocation(gomock.Any(), "ghost", gomock.Any()).Return(models.ErrNotFound)

		w := makeRequest(d.router, "PUT", "/api/v1/responders/ghost/location", bytes.NewBufferString(`{"lat":28.6,"lng":77.2}`), apiKey)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateResponderAvailability_Busy(t *testing.T) {
	d := newTestHandler(t)
	d.responders.EXPECT().
		UpdateAvailability(gomock.Any(), "amb-1", models.Offline).
		Return(fmt.Errorf("responder amb-1 is on an active incident: %w", models.ErrConflict))

	w := makeRequest(d.router, "PUT", "/api/v1/responders/amb-1/availability", jsonBody(t, AvailabilityRequest{Status: "offline"}), apiKey)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateResponderBeds(t *testing.T) {
	d := newTestHandler(t)
	d.responders.EXPECT().UpdateBeds(gomock.Any(), "hosp-1", models.BedICU, 0).Return(nil)

	w := makeRequest(d.router, "PUT", "/api/v1/responders/hosp-1/beds", bytes.NewBufferString(`{"bedType":"icu","available":0}`), apiKey)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestNearbyResponders(t *testing.T) {
	t.Run("success with clamped limit", func(t *testing.T) {
		d := newTestHandler(t)
		d.responders.EXPECT().
			Nearby(gomock.Any(), geo.Point{Lat: 28.6139, Lng: 77.209}, models.ResponderAmbulance, 10.0, maxNearbyLimit).
			Return([]directory.Candidate{
				{Responder: &models.Responder{ID: "amb-1", Kind: models.ResponderAmbulance}, DistanceKm: 1.2, ETAMinutes: 2},
			}, nil)

		w := makeRequest(d.router, "GET", "/api/v1/responders/nearby?lat=28.6139&lng=77.209&kind=ambulance&limit=500", nil, apiKey)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []NearbyResponderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "amb-1", resp[0].Responder.ID)
		assert.Equal(t, 1.2, resp[0].DistanceKm)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		d := newTestHandler(t)

		w := makeRequest(d.router, "GET", "/api/v1/responders/nearby?kind=ambulance", nil, apiKey)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		d := newTestHandler(t)
		d.responders.EXPECT().
			Nearby(gomock.Any(), gomock.Any(), models.ResponderAmbulance, 5.0, 10).
			Return(nil, fmt.Errorf("directory: %w", geo.ErrInvalidCoordinate))

		w := makeRequest(d.router, "GET", "/api/v1/responders/nearby?lat=95&lng=77&kind=ambulance&radiusKm=5", nil, apiKey)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRoutesRequireAPIKey(t *testing.T) {
	d := newTestHandler(t)

	w := makeRequest(d.router, "GET", "/api/v1/incidents", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(d.router, "GET", "/api/v1/system/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil) // Нет API ключа
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key", ""},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
