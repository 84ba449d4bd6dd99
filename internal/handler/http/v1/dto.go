package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/models"
)

// ReportIncidentRequest DTO для сообщения о происшествии
// @Description Отчет о происшествии и идентификатор сообщившего
type ReportIncidentRequest struct {
	ReporterID string `json:"reporterId"`
	models.EmergencyReport
}

// LocationRequest DTO координат
// @Description Координаты участника или исполнителя
type LocationRequest struct {
	Lat       *float64   `json:"lat" validate:"required,latitude"`
	Lng       *float64   `json:"lng" validate:"required,longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// LocationResponse DTO координат в ответе
type LocationResponse struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// ServiceSlotResponse DTO состояния одной услуги
// @Description Состояние поиска исполнителя для одной услуги
type ServiceSlotResponse struct {
	Kind                models.ServiceKind `json:"kind"`
	State               models.SlotState   `json:"state"`
	ResponderID         string             `json:"responderId,omitempty"`
	AssignedAt          *time.Time         `json:"assignedAt,omitempty"`
	RadiusKm            float64            `json:"radiusKm"`
	RemainingCandidates int                `json:"remainingCandidates"`
}

// HospitalResponse DTO ближайшей больницы
type HospitalResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Location   LocationResponse `json:"location"`
	DistanceKm float64          `json:"distanceKm"`
}

// TransitionResponse DTO записи истории
type TransitionResponse struct {
	From   models.IncidentState `json:"from"`
	To     models.IncidentState `json:"to"`
	Reason string               `json:"reason,omitempty"`
	At     time.Time            `json:"at"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                uuid.UUID             `json:"id"`
	ReporterID        string                `json:"reporterId"`
	Type              models.IncidentType   `json:"type"`
	State             models.IncidentState  `json:"state"`
	Severity          models.Severity       `json:"severity"`
	Location          LocationResponse      `json:"location"`
	Address           string                `json:"address,omitempty"`
	Description       string                `json:"description,omitempty"`
	VictimDescription string                `json:"victimDescription,omitempty"`
	PhotoURL          string                `json:"photoUrl,omitempty"`
	BloodGroup        string                `json:"bloodGroup,omitempty"`
	AmbulanceType     string                `json:"ambulanceType"`
	RequestedServices []models.ServiceKind  `json:"requestedServices"`
	Services          []ServiceSlotResponse `json:"services"`
	Hospital          *HospitalResponse     `json:"hospital,omitempty"`
	Escalated         bool                  `json:"escalated"`
	CancelReason      string                `json:"cancelReason,omitempty"`
	History           []TransitionResponse  `json:"history"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
	ClosedAt          *time.Time            `json:"closedAt,omitempty"`
}

// OfferResponse DTO предложения исполнителю
// @Description Предложение исполнителю и его исход
type OfferResponse struct {
	ID          uuid.UUID           `json:"id"`
	ResponderID string              `json:"responderId"`
	ServiceKind models.ServiceKind  `json:"serviceKind"`
	DistanceKm  float64             `json:"distanceKm"`
	ETAMinutes  int                 `json:"etaMinutes"`
	OfferedAt   time.Time           `json:"offeredAt"`
	ExpiresAt   time.Time           `json:"expiresAt"`
	Outcome     models.OfferOutcome `json:"outcome"`
	DecidedAt   *time.Time          `json:"decidedAt,omitempty"`
}

// ResponderActionRequest DTO действия исполнителя по предложению
// @Description Идентификатор исполнителя, который принимает, отклоняет или прибыл
type ResponderActionRequest struct {
	ResponderID string `json:"responderId" validate:"required,max=128"`
}

// AcceptResponse DTO результата принятия предложения
type AcceptResponse struct {
	Outcome models.AcceptOutcome `json:"outcome"`
}

// ReasonRequest DTO причины отмены или закрытия
type ReasonRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// StreamTokenRequest DTO запроса токена потока геопозиций
type StreamTokenRequest struct {
	ParticipantID string `json:"participantId" validate:"required,max=128"`
}

// StreamTokenResponse DTO токена потока геопозиций
// @Description Токен для первого кадра WebSocket-соединения
type StreamTokenResponse struct {
	Token     string                 `json:"token"`
	Role      models.ParticipantRole `json:"role"`
	ExpiresAt time.Time              `json:"expiresAt"`
}

// LocationEventResponse DTO последней известной позиции участника
type LocationEventResponse struct {
	ParticipantID string                 `json:"participantId"`
	Role          models.ParticipantRole `json:"role"`
	Lat           float64                `json:"lat"`
	Lng           float64                `json:"lng"`
	DistanceKm    float64                `json:"distanceKm"`
	ETAMinutes    int                    `json:"etaMinutes"`
	Timestamp     time.Time              `json:"timestamp"`
	Seq           uint64                 `json:"seq"`
}

// CertificationRequest DTO сертификата волонтера
type CertificationRequest struct {
	Name       string     `json:"name" validate:"required,max=100"`
	IssuedBy   string     `json:"issuedBy" validate:"max=200"`
	IssueDate  time.Time  `json:"issueDate"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

// BedCountRequest DTO вместимости
type BedCountRequest struct {
	Total     int `json:"total" validate:"min=0"`
	Available int `json:"available" validate:"min=0,ltefield=Total"`
}

// RegisterResponderRequest DTO регистрации исполнителя
// @Description Скорая, волонтер, донор крови или больница
type RegisterResponderRequest struct {
	ID             string                     `json:"id" validate:"required,max=128"`
	Kind           string                     `json:"kind" validate:"required,oneof=ambulance volunteer blood_donor hospital"`
	Name           string                     `json:"name" validate:"max=255"`
	Location       *LocationRequest           `json:"location" validate:"required"`
	Availability   string                     `json:"availability,omitempty" validate:"omitempty,oneof=available busy on_duty offline off_duty"`
	AmbulanceType  string                     `json:"ambulanceType,omitempty" validate:"omitempty,oneof=basic advanced patient_transport"`
	Skills         []string                   `json:"skills,omitempty"`
	Certifications []CertificationRequest     `json:"certifications,omitempty" validate:"dive"`
	BloodGroup     string                     `json:"bloodGroup,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Beds           map[string]BedCountRequest `json:"beds,omitempty" validate:"dive,keys,oneof=general icu emergency,endkeys"`
}

// AvailabilityRequest DTO смены статуса
type AvailabilityRequest struct {
	Status string `json:"status" validate:"required,oneof=available busy on_duty offline off_duty"`
}

// BedsRequest DTO обновления свободных коек
type BedsRequest struct {
	BedType   string `json:"bedType" validate:"required,oneof=general icu emergency"`
	Available *int   `json:"available" validate:"required,min=0"`
}

// ResponderResponse DTO исполнителя
type ResponderResponse struct {
	ID             string                             `json:"id"`
	Kind           models.ResponderKind               `json:"kind"`
	Name           string                             `json:"name,omitempty"`
	Location       LocationResponse                   `json:"location"`
	Availability   models.Availability                `json:"availability"`
	AmbulanceType  string                             `json:"ambulanceType,omitempty"`
	Skills         []string                           `json:"skills,omitempty"`
	Certifications []models.Certification             `json:"certifications,omitempty"`
	BloodGroup     string                             `json:"bloodGroup,omitempty"`
	Beds           map[models.BedType]models.BedCount `json:"beds,omitempty"`
	UpdatedAt      time.Time                          `json:"updatedAt"`
}

// NearbyResponderResponse DTO исполнителя рядом с точкой
type NearbyResponderResponse struct {
	Responder  ResponderResponse `json:"responder"`
	DistanceKm float64           `json:"distanceKm"`
	ETAMinutes int               `json:"etaMinutes"`
}

// ValidationErrorResponse DTO ошибки валидации
// @Description Список нарушений по полям
type ValidationErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors"`
}
