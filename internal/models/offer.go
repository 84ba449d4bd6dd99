package models

import (
	"time"

	"github.com/google/uuid"
)

// OfferOutcome - исход предложения
type OfferOutcome string

const (
	OfferPending   OfferOutcome = "pending"
	OfferAccepted  OfferOutcome = "accepted"
	OfferDeclined  OfferOutcome = "declined"
	OfferExpired   OfferOutcome = "expired"
	OfferWithdrawn OfferOutcome = "withdrawn"
)

// CandidateOffer - ограниченное по времени предложение исполнителю занять слот
type CandidateOffer struct {
	ID          uuid.UUID    `json:"id"`
	IncidentID  uuid.UUID    `json:"incident_id"`
	ResponderID string       `json:"responder_id"`
	ServiceKind ServiceKind  `json:"service_kind"`
	DistanceKm  float64      `json:"distance_km"`
	ETAMinutes  int          `json:"eta_minutes"`
	OfferedAt   time.Time    `json:"offered_at"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Outcome     OfferOutcome `json:"outcome"`
	DecidedAt   *time.Time   `json:"decided_at,omitempty"`
}

// AcceptOutcome - результат попытки принять предложение
type AcceptOutcome string

const (
	AcceptAccepted AcceptOutcome = "accepted"
	AcceptConflict AcceptOutcome = "conflict"
)
