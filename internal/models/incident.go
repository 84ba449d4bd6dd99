package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentType - кто сообщил о происшествии
type IncidentType string

const (
	IncidentTypeSelf      IncidentType = "self"
	IncidentTypeBystander IncidentType = "bystander"
)

// Severity - результат триажа
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
)

// TriageAnswers - ответы очевидца о состоянии пострадавшего
type TriageAnswers struct {
	Conscious bool `json:"conscious"`
	Breathing bool `json:"breathing"`
	Bleeding  bool `json:"bleeding"`
}

// HospitalRef - ближайшая больница с доступными экстренными койками
type HospitalRef struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Location   Location `json:"location"`
	DistanceKm float64  `json:"distance_km"`
}

// StateTransition - запись истории переходов инцидента
type StateTransition struct {
	From   IncidentState `json:"from"`
	To     IncidentState `json:"to"`
	Reason string        `json:"reason,omitempty"`
	At     time.Time     `json:"at"`
}

// Incident - экстренный вызов и весь его жизненный цикл
type Incident struct {
	ID                uuid.UUID                    `json:"id"`
	ReporterID        string                       `json:"reporter_id"`
	Type              IncidentType                 `json:"type"`
	Location          Location                     `json:"location"`
	Address           string                       `json:"address,omitempty"`
	Description       string                       `json:"description,omitempty"`
	VictimDescription string                       `json:"victim_description,omitempty"`
	PhotoURL          string                       `json:"photo_url,omitempty"`
	Triage            *TriageAnswers               `json:"triage,omitempty"`
	Severity          Severity                     `json:"severity"`
	BloodGroup        string                       `json:"blood_group,omitempty"`
	AmbulanceType     string                       `json:"ambulance_type"`
	RequestedServices []ServiceKind                `json:"requested_services"`
	State             IncidentState                `json:"state"`
	Slots             map[ServiceKind]*ServiceSlot `json:"slots"`
	Hospital          *HospitalRef                 `json:"hospital,omitempty"`
	Escalated         bool                         `json:"escalated"`
	CancelReason      string                       `json:"cancel_reason,omitempty"`
	History           []StateTransition            `json:"history"`
	Version           int                          `json:"version"`
	CreatedAt         time.Time                    `json:"created_at"`
	UpdatedAt         time.Time                    `json:"updated_at"`
	ClosedAt          *time.Time                   `json:"closed_at,omitempty"`
}

// Requests проверяет, запрошена ли услуга
func (i *Incident) Requests(kind ServiceKind) bool {
	for _, k := range i.RequestedServices {
		if k == kind {
			return true
		}
	}
	return false
}

// AssignedResponders возвращает назначенных исполнителей по видам услуг
func (i *Incident) AssignedResponders() map[ServiceKind]string {
	assigned := make(map[ServiceKind]string, len(i.Slots))
	for kind, slot := range i.Slots {
		if slot.ResponderID != "" && slot.State.Holding() {
			assigned[kind] = slot.ResponderID
		}
	}
	return assigned
}

// Clone делает глубокую копию, чтобы снимок можно было отдавать наружу без гонок
func (i *Incident) Clone() *Incident {
	if i == nil {
		return nil
	}
	c := *i
	if i.Triage != nil {
		t := *i.Triage
		c.Triage = &t
	}
	if i.Hospital != nil {
		h := *i.Hospital
		c.Hospital = &h
	}
	if i.ClosedAt != nil {
		at := *i.ClosedAt
		c.ClosedAt = &at
	}
	c.RequestedServices = append([]ServiceKind(nil), i.RequestedServices...)
	c.History = append([]StateTransition(nil), i.History...)
	c.Slots = make(map[ServiceKind]*ServiceSlot, len(i.Slots))
	for k, s := range i.Slots {
		c.Slots[k] = s.Clone()
	}
	return &c
}
