package v1

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/config"
	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/healthlink/dispatch_engine/internal/service"
	"github.com/healthlink/dispatch_engine/internal/validation"
	"github.com/healthlink/dispatch_engine/pkg/token"
	"github.com/sirupsen/logrus"
)

const maxNearbyLimit = 100

// LocationReader - последние известные позиции участников инцидента
type LocationReader interface {
	Latest(incidentID uuid.UUID, participantID string) ([]models.LocationEvent, error)
}

type Handler struct {
	dispatcher service.Dispatcher
	responders service.ResponderService
	locations  LocationReader
	logger     *logrus.Logger
	validate   *validation.Validator
	cfg        *config.Config
}

func NewHandler(dispatcher service.Dispatcher, responders service.ResponderService, locations LocationReader, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		responders: responders,
		locations:  locations,
		logger:     logger,
		validate:   validation.New(),
		cfg:        cfg,
	}
}

func (h *Handler) log(method string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{"handler": "v1", "method": method})
}

// bind читает тело и проверяет DTO; пустое тело допустимо только при allowEmpty
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, dst any, allowEmpty bool) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			log.WithError(err).Warn("Failed to bind JSON")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return false
		}
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(c, log, err)
		return false
	}
	return true
}

func incidentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return uuid.Nil, false
	}
	return id, true
}

func serviceKind(c *gin.Context) (models.ServiceKind, bool) {
	kind := models.ServiceKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service kind"})
		return "", false
	}
	return kind, true
}

// @Summary Report an emergency
// @Description Validate the report, triage it and start dispatching responders. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body ReportIncidentRequest true "Emergency report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} ValidationErrorResponse "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) reportIncident(c *gin.Context) {
	var input ReportIncidentRequest
	log := h.log("reportIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if input.ReporterID == "" {
		respondError(c, log, validationFailed("reporterId", "is required"))
		return
	}

	incident, err := h.dispatcher.ReportIncident(c.Request.Context(), input.ReporterID, input.EmergencyReport)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary List active incidents
// @Description Get all incidents that are not resolved, cancelled or expired. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.log("listIncidents")

	incidents, err := h.dispatcher.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID, active or archived. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	log := h.log("getIncident").WithField("id", id)

	incident, err := h.dispatcher.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary List offers of an incident
// @Description Get every offer made for the incident with its outcome. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {array} OfferResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/offers [get]
func (h *Handler) listOffers(c *gin.Context) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	log := h.log("listOffers").WithField("id", id)

	offers, err := h.dispatcher.Offers(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToOfferResponses(offers))
}

// @Summary Accept an offer
// @Description Responder accepts the pending offer for a service. Exactly one concurrent accept wins. Requires API key.
// @Tags Dispatch
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param kind path string true "Service kind" Enums(ambulance, volunteer, blood_donor)
// @Param body body ResponderActionRequest true "Responder"
// @Success 200 {object} AcceptResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "No offer for responder"
// @Failure 409 {object} AcceptResponse "Slot already taken"
// @Failure 410 {object} map[string]string "Offer expired"
// @Router /incidents/{id}/services/{kind}/accept [post]
func (h *Handler) acceptOffer(c *gin.Context) {
	h.claim(c, "acceptOffer", h.dispatcher.AcceptOffer)
}

// @Summary Assign a responder manually
// @Description Operator assigns a responder to a service without an offer. Requires API key.
// @Tags Dispatch
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param kind path string true "Service kind" Enums(ambulance, volunteer, blood_donor)
// @Param body body ResponderActionRequest true "Responder"
// @Success 200 {object} AcceptResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} AcceptResponse "Slot already taken or responder busy"
// @Router /incidents/{id}/services/{kind}/assign [post]
func (h *Handler) assignManually(c *gin.Context) {
	h.claim(c, "assignManually", h.dispatcher.AssignManually)
}

type claimFunc func(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) (models.AcceptOutcome, error)

func (h *Handler) claim(c *gin.Context, method string, do claimFunc) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	kind, ok := serviceKind(c)
	if !ok {
		return
	}
	log := h.log(method).WithFields(logrus.Fields{"id": id, "kind": kind})

	var input ResponderActionRequest
	if !h.bind(c, log, &input, false) {
		return
	}

	outcome, err := do(c.Request.Context(), id, input.ResponderID, kind)
	if err != nil {
		respondError(c, log.WithField("responder_id", input.ResponderID), err)
		return
	}
	if outcome == models.AcceptConflict {
		c.JSON(http.StatusConflict, AcceptResponse{Outcome: outcome})
		return
	}
	c.JSON(http.StatusOK, AcceptResponse{Outcome: outcome})
}

// @Summary Decline an offer
// @Description Responder declines the pending offer; the next candidate is offered. Requires API key.
// @Tags Dispatch
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param kind path string true "Service kind" Enums(ambulance, volunteer, blood_donor)
// @Param body body ResponderActionRequest true "Responder"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "No pending offer for responder"
// @Router /incidents/{id}/services/{kind}/decline [post]
func (h *Handler) declineOffer(c *gin.Context) {
	h.responderAction(c, "declineOffer", h.dispatcher.DeclineOffer)
}

// @Summary Mark responder arrived
// @Description Assigned responder reports arrival at the incident. Requires API key.
// @Tags Dispatch
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param kind path string true "Service kind" Enums(ambulance, volunteer, blood_donor)
// @Param body body ResponderActionRequest true "Responder"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Responder is not assigned"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /incidents/{id}/services/{kind}/arrive [post]
func (h *Handler) markArrived(c *gin.Context) {
	h.responderAction(c, "markArrived", h.dispatcher.MarkArrived)
}

type actionFunc func(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) error

func (h *Handler) responderAction(c *gin.Context, method string, do actionFunc) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	kind, ok := serviceKind(c)
	if !ok {
		return
	}
	log := h.log(method).WithFields(logrus.Fields{"id": id, "kind": kind})

	var input ResponderActionRequest
	if !h.bind(c, log, &input, false) {
		return
	}
	if err := do(c.Request.Context(), id, input.ResponderID, kind); err != nil {
		respondError(c, log.WithField("responder_id", input.ResponderID), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Resolve an incident
// @Description Close an incident after arrival. Requires API key.
// @Tags Incidents
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /incidents/{id}/resolve [post]
func (h *Handler) resolveIncident(c *gin.Context) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	log := h.log("resolveIncident").WithField("id", id)

	if err := h.dispatcher.Resolve(c.Request.Context(), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel an incident
// @Description Cancel an active incident and release every assigned responder. Requires API key.
// @Tags Incidents
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param body body ReasonRequest false "Cancel reason"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /incidents/{id}/cancel [post]
func (h *Handler) cancelIncident(c *gin.Context) {
	h.closeWithReason(c, "cancelIncident", h.dispatcher.Cancel)
}

// @Summary Expire an incident
// @Description Operator gives up on an incident that is still dispatching. Requires API key.
// @Tags Incidents
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param body body ReasonRequest false "Expiry reason"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /incidents/{id}/expire [post]
func (h *Handler) expireIncident(c *gin.Context) {
	h.closeWithReason(c, "expireIncident", h.dispatcher.Expire)
}

func (h *Handler) closeWithReason(c *gin.Context, method string, do func(ctx context.Context, incidentID uuid.UUID, reason string) error) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	log := h.log(method).WithField("id", id)

	var input ReasonRequest
	if !h.bind(c, log, &input, true) {
		return
	}
	if err := do(c.Request.Context(), id, input.Reason); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Issue a location stream token
// @Description Issue a token for the reporter or an assigned responder to join the incident location stream. Requires API key.
// @Tags Stream
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param body body StreamTokenRequest true "Participant"
// @Success 200 {object} StreamTokenResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident closed"
// @Router /incidents/{id}/stream-token [post]
func (h *Handler) issueStreamToken(c *gin.Context) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	log := h.log("issueStreamToken").WithField("id", id)

	var input StreamTokenRequest
	if !h.bind(c, log, &input, false) {
		return
	}

	incident, err := h.dispatcher.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	if incident.State.IsTerminal() {
		respondError(c, log, models.ErrIncidentClosed)
		return
	}
	role, ok := participantRole(incident, input.ParticipantID)
	if !ok {
		respondError(c, log.WithField("participant_id", input.ParticipantID), models.ErrUnauthorized)
		return
	}

	ttl := h.cfg.StreamTokenTTL
	signed, err := token.Issue([]byte(h.cfg.StreamJWTSecret), input.ParticipantID, id.String(), string(role), ttl)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, StreamTokenResponse{
		Token:     signed,
		Role:      role,
		ExpiresAt: time.Now().Add(ttl),
	})
}

func participantRole(incident *models.Incident, participantID string) (models.ParticipantRole, bool) {
	if participantID == incident.ReporterID {
		return models.RoleReporter, true
	}
	for _, responderID := range incident.AssignedResponders() {
		if responderID == participantID {
			return models.RoleResponder, true
		}
	}
	return "", false
}

// @Summary Latest participant locations
// @Description Last known location of every participant of the incident stream. Requires API key.
// @Tags Stream
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param participantId query string true "Requesting participant"
// @Success 200 {array} LocationEventResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "No active stream"
// @Router /incidents/{id}/locations [get]
func (h *Handler) latestLocations(c *gin.Context) {
	id, ok := incidentID(c)
	if !ok {
		return
	}
	log := h.log("latestLocations").WithField("id", id)

	participantID := c.Query("participantId")
	if participantID == "" {
		respondError(c, log, validationFailed("participantId", "is required"))
		return
	}

	events, err := h.locations.Latest(id, participantID)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, EventsToResponses(events))
}

// @Summary Register a responder
// @Description Register or replace an ambulance, volunteer, blood donor or hospital. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param responder body RegisterResponderRequest true "Responder"
// @Success 201 {object} ResponderResponse
// @Failure 400 {object} ValidationErrorResponse "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /responders [post]
func (h *Handler) registerResponder(c *gin.Context) {
	log := h.log("registerResponder")

	var input RegisterResponderRequest
	if !h.bind(c, log, &input, false) {
		return
	}

	responder := DTOToResponderModel(input)
	if err := h.responders.Register(c.Request.Context(), responder); err != nil {
		respondError(c, log.WithField("responder_id", input.ID), err)
		return
	}
	c.JSON(http.StatusCreated, ModelToResponderResponse(responder))
}

// @Summary Update responder location
// @Description Update the live location of a responder. Requires API key.
// @Tags Responders
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Responder ID"
// @Param location body LocationRequest true "Location"
// @Success 204 "No Content"
// @Failure 400 {object} ValidationErrorResponse "Validation error"
// @Failure 404 {object} map[string]string "Responder not found"
// @Router /responders/{id}/location [put]
func (h *Handler) updateResponderLocation(c *gin.Context) {
	id := c.Param("id")
	log := h.log("updateResponderLocation").WithField("responder_id", id)

	var input LocationRequest
	if !h.bind(c, log, &input, false) {
		return
	}
	if err := h.responders.UpdateLocation(c.Request.Context(), id, DTOToLocation(input)); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update responder availability
// @Description Change the availability status of a responder. Requires API key.
// @Tags Responders
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Responder ID"
// @Param status body AvailabilityRequest true "Availability"
// @Success 204 "No Content"
// @Failure 400 {object} ValidationErrorResponse "Validation error"
// @Failure 404 {object} map[string]string "Responder not found"
// @Failure 409 {object} map[string]string "Responder is busy"
// @Router /responders/{id}/availability [put]
func (h *Handler) updateResponderAvailability(c *gin.Context) {
	id := c.Param("id")
	log := h.log("updateResponderAvailability").WithField("responder_id", id)

	var input AvailabilityRequest
	if !h.bind(c, log, &input, false) {
		return
	}
	if err := h.responders.UpdateAvailability(c.Request.Context(), id, models.Availability(input.Status)); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update hospital beds
// @Description Set the number of available beds of one type. Requires API key.
// @Tags Responders
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Hospital ID"
// @Param beds body BedsRequest true "Beds"
// @Success 204 "No Content"
// @Failure 400 {object} ValidationErrorResponse "Validation error"
// @Failure 404 {object} map[string]string "Hospital not found"
// @Router /responders/{id}/beds [put]
func (h *Handler) updateResponderBeds(c *gin.Context) {
	id := c.Param("id")
	log := h.log("updateResponderBeds").WithField("responder_id", id)

	var input BedsRequest
	if !h.bind(c, log, &input, false) {
		return
	}
	if err := h.responders.UpdateBeds(c.Request.Context(), id, models.BedType(input.BedType), *input.Available); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Find nearby responders
// @Description Available responders of one kind sorted by distance. Requires API key.
// @Tags Responders
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param kind query string true "Responder kind" Enums(ambulance, volunteer, blood_donor, hospital)
// @Param radiusKm query number false "Search radius in km"
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} NearbyResponderResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Router /responders/nearby [get]
func (h *Handler) nearbyResponders(c *gin.Context) {
	log := h.log("nearbyResponders")

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required numbers"})
		return
	}
	radiusKm, err := strconv.ParseFloat(c.DefaultQuery("radiusKm", strconv.FormatFloat(h.cfg.SearchRadiusKm, 'f', -1, 64)), 64)
	if err != nil || radiusKm <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radiusKm"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	limit = min(limit, maxNearbyLimit)

	kind := models.ResponderKind(c.Query("kind"))
	cands, err := h.responders.Nearby(c.Request.Context(), geo.Point{Lat: lat, Lng: lng}, kind, radiusKm, limit)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, CandidatesToNearbyResponses(cands))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
