package models

import "github.com/google/uuid"

// NotificationKind - тип уведомления для внешнего сервиса доставки
type NotificationKind string

const (
	NotifyEmergencyAlert     NotificationKind = "emergency_alert"
	NotifyAmbulanceRequest   NotificationKind = "ambulance_request"
	NotifyVolunteerRequest   NotificationKind = "volunteer_request"
	NotifyBloodRequest       NotificationKind = "blood_request"
	NotifyStatusUpdate       NotificationKind = "status_update"
	NotifyDispatchEscalation NotificationKind = "dispatch_escalation"
)

// Notification - адресат, тип и полезная нагрузка
type Notification struct {
	TargetID   string           `json:"target_id"`
	Kind       NotificationKind `json:"kind"`
	IncidentID uuid.UUID        `json:"incident_id"`
	Payload    map[string]any   `json:"payload,omitempty"`
}

// RequestKind возвращает тип уведомления-запроса для вида услуги
func RequestKind(kind ServiceKind) NotificationKind {
	switch kind {
	case ServiceVolunteer:
		return NotifyVolunteerRequest
	case ServiceBloodDonor:
		return NotifyBloodRequest
	default:
		return NotifyAmbulanceRequest
	}
}
