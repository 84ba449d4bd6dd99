package models

import "time"

// ResponderKind - тип исполнителя
type ResponderKind string

const (
	ResponderAmbulance  ResponderKind = "ambulance"
	ResponderVolunteer  ResponderKind = "volunteer"
	ResponderBloodDonor ResponderKind = "blood_donor"
	ResponderHospital   ResponderKind = "hospital"
)

// Valid проверяет тип исполнителя
func (k ResponderKind) Valid() bool {
	switch k {
	case ResponderAmbulance, ResponderVolunteer, ResponderBloodDonor, ResponderHospital:
		return true
	}
	return false
}

// Availability - статус доступности исполнителя
type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
	OnDuty    Availability = "on_duty"
	Offline   Availability = "offline"
	OffDuty   Availability = "off_duty"
)

// Valid проверяет статус доступности
func (a Availability) Valid() bool {
	switch a {
	case Available, Busy, OnDuty, Offline, OffDuty:
		return true
	}
	return false
}

const (
	AmbulanceBasic     = "basic"
	AmbulanceAdvanced  = "advanced"
	AmbulanceTransport = "patient_transport"
)

// BedType - тип больничной койки
type BedType string

const (
	BedGeneral   BedType = "general"
	BedICU       BedType = "icu"
	BedEmergency BedType = "emergency"
)

// Valid проверяет тип койки
func (b BedType) Valid() bool {
	switch b {
	case BedGeneral, BedICU, BedEmergency:
		return true
	}
	return false
}

// BedCount - вместимость и свободные места
type BedCount struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

// Certification - сертификат волонтера (например, CPR)
type Certification struct {
	Name       string     `json:"name"`
	IssuedBy   string     `json:"issued_by"`
	IssueDate  time.Time  `json:"issue_date"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// Current - сертификат действителен на момент now
func (c Certification) Current(now time.Time) bool {
	return c.ExpiryDate == nil || c.ExpiryDate.After(now)
}

// Responder - скорая, волонтер, донор или больница
type Responder struct {
	ID             string               `json:"id"`
	Kind           ResponderKind        `json:"kind"`
	Name           string               `json:"name"`
	Location       Location             `json:"location"`
	Availability   Availability         `json:"availability"`
	AmbulanceType  string               `json:"ambulance_type,omitempty"`
	Skills         []string             `json:"skills,omitempty"`
	Certifications []Certification      `json:"certifications,omitempty"`
	BloodGroup     string               `json:"blood_group,omitempty"`
	Beds           map[BedType]BedCount `json:"beds,omitempty"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// Clone копирует исполнителя вместе со срезами и картами
func (r *Responder) Clone() *Responder {
	if r == nil {
		return nil
	}
	c := *r
	c.Skills = append([]string(nil), r.Skills...)
	c.Certifications = append([]Certification(nil), r.Certifications...)
	if r.Beds != nil {
		c.Beds = make(map[BedType]BedCount, len(r.Beds))
		for k, v := range r.Beds {
			c.Beds[k] = v
		}
	}
	return &c
}
