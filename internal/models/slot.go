package models

import "time"

// ServiceKind - вид запрашиваемой помощи
type ServiceKind string

const (
	ServiceAmbulance  ServiceKind = "ambulance"
	ServiceVolunteer  ServiceKind = "volunteer"
	ServiceBloodDonor ServiceKind = "blood_donor"
)

// Valid проверяет вид услуги
func (k ServiceKind) Valid() bool {
	switch k {
	case ServiceAmbulance, ServiceVolunteer, ServiceBloodDonor:
		return true
	}
	return false
}

// ResponderKind соответствует виду исполнителя
func (k ServiceKind) ResponderKind() ResponderKind {
	return ResponderKind(k)
}

// SlotState - подсостояние одной услуги внутри инцидента
type SlotState string

const (
	SlotSearching SlotState = "searching"
	SlotAssigned  SlotState = "assigned"
	SlotEnRoute   SlotState = "en_route"
	SlotArrived   SlotState = "arrived"
	SlotExhausted SlotState = "exhausted"
	SlotCancelled SlotState = "cancelled"
)

// Holding - слот занят исполнителем
func (s SlotState) Holding() bool {
	return s == SlotAssigned || s == SlotEnRoute || s == SlotArrived
}

// IncidentState отображает подсостояние слота на агрегированное состояние инцидента
func (s SlotState) IncidentState() IncidentState {
	switch s {
	case SlotAssigned:
		return StateResponderAssigned
	case SlotEnRoute:
		return StateEnRoute
	case SlotArrived:
		return StateArrived
	}
	return StateDispatching
}

// Candidate - исполнитель в пуле кандидатов
type Candidate struct {
	ResponderID string  `json:"responder_id"`
	DistanceKm  float64 `json:"distance_km"`
	ETAMinutes  int     `json:"eta_minutes"`
}

// ServiceSlot - цикл предложений для одного вида услуги
type ServiceSlot struct {
	Kind          ServiceKind `json:"kind"`
	State         SlotState   `json:"state"`
	ResponderID   string      `json:"responder_id,omitempty"`
	AssignedAt    *time.Time  `json:"assigned_at,omitempty"`
	AssignedFrom  *Location   `json:"assigned_from,omitempty"`
	Pool          []Candidate `json:"pool"`
	NextCandidate int         `json:"next_candidate"`
	RadiusKm      float64     `json:"radius_km"`
	Refreshes     int         `json:"refreshes"`
	Offered       []string    `json:"offered"`
}

// Clone копирует слот
func (s *ServiceSlot) Clone() *ServiceSlot {
	if s == nil {
		return nil
	}
	c := *s
	if s.AssignedAt != nil {
		at := *s.AssignedAt
		c.AssignedAt = &at
	}
	if s.AssignedFrom != nil {
		from := *s.AssignedFrom
		c.AssignedFrom = &from
	}
	c.Pool = append([]Candidate(nil), s.Pool...)
	c.Offered = append([]string(nil), s.Offered...)
	return &c
}

// Remaining - кандидаты, которым еще не было предложения
func (s *ServiceSlot) Remaining() int {
	if s.NextCandidate >= len(s.Pool) {
		return 0
	}
	return len(s.Pool) - s.NextCandidate
}
