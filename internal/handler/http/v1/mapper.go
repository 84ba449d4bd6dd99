package v1

import (
	"time"

	"github.com/healthlink/dispatch_engine/internal/directory"
	"github.com/healthlink/dispatch_engine/internal/models"
)

// DTOToLocation преобразует координаты запроса в доменную модель; пустое время заполнит получатель
func DTOToLocation(dto LocationRequest) models.Location {
	loc := models.Location{Lat: *dto.Lat, Lng: *dto.Lng}
	if dto.Timestamp != nil {
		loc.Timestamp = *dto.Timestamp
	}
	return loc
}

func locationResponse(loc models.Location) LocationResponse {
	return LocationResponse{Lat: loc.Lat, Lng: loc.Lng, Timestamp: loc.Timestamp}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа.
// Услуги идут в порядке запроса.
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:                model.ID,
		ReporterID:        model.ReporterID,
		Type:              model.Type,
		State:             model.State,
		Severity:          model.Severity,
		Location:          locationResponse(model.Location),
		Address:           model.Address,
		Description:       model.Description,
		VictimDescription: model.VictimDescription,
		PhotoURL:          model.PhotoURL,
		BloodGroup:        model.BloodGroup,
		AmbulanceType:     model.AmbulanceType,
		RequestedServices: append([]models.ServiceKind{}, model.RequestedServices...),
		Services:          make([]ServiceSlotResponse, 0, len(model.RequestedServices)),
		Escalated:         model.Escalated,
		CancelReason:      model.CancelReason,
		History:           make([]TransitionResponse, len(model.History)),
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
		ClosedAt:          model.ClosedAt,
	}
	for _, kind := range model.RequestedServices {
		slot, ok := model.Slots[kind]
		if !ok {
			continue
		}
		resp.Services = append(resp.Services, ServiceSlotResponse{
			Kind:                slot.Kind,
			State:               slot.State,
			ResponderID:         slot.ResponderID,
			AssignedAt:          slot.AssignedAt,
			RadiusKm:            slot.RadiusKm,
			RemainingCandidates: slot.Remaining(),
		})
	}
	if h := model.Hospital; h != nil {
		resp.Hospital = &HospitalResponse{
			ID:         h.ID,
			Name:       h.Name,
			Location:   locationResponse(h.Location),
			DistanceKm: h.DistanceKm,
		}
	}
	for i, t := range model.History {
		resp.History[i] = TransitionResponse(t)
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func ModelsToOfferResponses(offers []*models.CandidateOffer) []OfferResponse {
	responses := make([]OfferResponse, len(offers))
	for i, o := range offers {
		responses[i] = OfferResponse{
			ID:          o.ID,
			ResponderID: o.ResponderID,
			ServiceKind: o.ServiceKind,
			DistanceKm:  o.DistanceKm,
			ETAMinutes:  o.ETAMinutes,
			OfferedAt:   o.OfferedAt,
			ExpiresAt:   o.ExpiresAt,
			Outcome:     o.Outcome,
			DecidedAt:   o.DecidedAt,
		}
	}
	return responses
}

func EventsToResponses(events []models.LocationEvent) []LocationEventResponse {
	responses := make([]LocationEventResponse, len(events))
	for i, e := range events {
		responses[i] = LocationEventResponse{
			ParticipantID: e.ParticipantID,
			Role:          e.Role,
			Lat:           e.Lat,
			Lng:           e.Lng,
			DistanceKm:    e.DistanceKm,
			ETAMinutes:    e.ETAMinutes,
			Timestamp:     e.Timestamp,
			Seq:           e.Seq,
		}
	}
	return responses
}

// DTOToResponderModel преобразует запрос регистрации в исполнителя
func DTOToResponderModel(dto RegisterResponderRequest) *models.Responder {
	r := &models.Responder{
		ID:            dto.ID,
		Kind:          models.ResponderKind(dto.Kind),
		Name:          dto.Name,
		Location:      DTOToLocation(*dto.Location),
		Availability:  models.Availability(dto.Availability),
		AmbulanceType: dto.AmbulanceType,
		Skills:        dto.Skills,
		BloodGroup:    dto.BloodGroup,
	}
	if r.Location.Timestamp.IsZero() {
		r.Location.Timestamp = time.Now()
	}
	for _, c := range dto.Certifications {
		r.Certifications = append(r.Certifications, models.Certification{
			Name:       c.Name,
			IssuedBy:   c.IssuedBy,
			IssueDate:  c.IssueDate,
			ExpiryDate: c.ExpiryDate,
		})
	}
	if len(dto.Beds) > 0 {
		r.Beds = make(map[models.BedType]models.BedCount, len(dto.Beds))
		for bedType, count := range dto.Beds {
			r.Beds[models.BedType(bedType)] = models.BedCount{Total: count.Total, Available: count.Available}
		}
	}
	return r
}

// ModelToResponderResponse преобразует исполнителя в DTO
func ModelToResponderResponse(r *models.Responder) ResponderResponse {
	return ResponderResponse{
		ID:             r.ID,
		Kind:           r.Kind,
		Name:           r.Name,
		Location:       locationResponse(r.Location),
		Availability:   r.Availability,
		AmbulanceType:  r.AmbulanceType,
		Skills:         r.Skills,
		Certifications: r.Certifications,
		BloodGroup:     r.BloodGroup,
		Beds:           r.Beds,
		UpdatedAt:      r.UpdatedAt,
	}
}

func CandidatesToNearbyResponses(cands []directory.Candidate) []NearbyResponderResponse {
	responses := make([]NearbyResponderResponse, len(cands))
	for i, c := range cands {
		responses[i] = NearbyResponderResponse{
			Responder:  ModelToResponderResponse(c.Responder),
			DistanceKm: c.DistanceKm,
			ETAMinutes: c.ETAMinutes,
		}
	}
	return responses
}
