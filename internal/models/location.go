package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/geo"
)

// Location - координаты с временем фиксации
type Location struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// Point отбрасывает время
func (l Location) Point() geo.Point {
	return geo.Point{Lat: l.Lat, Lng: l.Lng}
}

// ParticipantRole - роль участника потока геопозиций
type ParticipantRole string

const (
	RoleReporter  ParticipantRole = "reporter"
	RoleResponder ParticipantRole = "responder"
)

// Participant - авторизованный участник инцидента
type Participant struct {
	ID          string          `json:"id"`
	Role        ParticipantRole `json:"role"`
	ServiceKind ServiceKind     `json:"service_kind,omitempty"`
}

// LocationEvent - событие, которое получают подписчики потока
type LocationEvent struct {
	IncidentID    uuid.UUID       `json:"incident_id"`
	ParticipantID string          `json:"participant_id"`
	Role          ParticipantRole `json:"role"`
	Lat           float64         `json:"lat"`
	Lng           float64         `json:"lng"`
	DistanceKm    float64         `json:"distance_km"`
	ETAMinutes    int             `json:"eta_minutes"`
	Timestamp     time.Time       `json:"timestamp"`
	Seq           uint64          `json:"seq"`
}
