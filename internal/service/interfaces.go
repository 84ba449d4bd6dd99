package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/directory"
	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/models"
)

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	// Update сохраняет инцидент, если версия в хранилище совпадает с incident.Version,
	// и увеличивает версию. Иначе возвращает models.ErrConflict.
	Update(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	// ListOpen возвращает незакрытые инциденты, старые первыми
	ListOpen(ctx context.Context) ([]*models.Incident, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// OfferRepository хранит историю предложений
type OfferRepository interface {
	SaveOffer(ctx context.Context, offer *models.CandidateOffer) error
	ListOffers(ctx context.Context, incidentID uuid.UUID) ([]*models.CandidateOffer, error)
}

// SlotStore - атомарный check-and-set по паре (incidentID, serviceKind).
// ClaimSlot возвращает true только для первого, кто записал назначение.
type SlotStore interface {
	ClaimSlot(ctx context.Context, incidentID uuid.UUID, kind models.ServiceKind, responderID string) (bool, error)
	ReleaseSlot(ctx context.Context, incidentID uuid.UUID, kind models.ServiceKind) error
}

// Notifier - внешняя служба доставки уведомлений (best-effort)
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// StreamHub - поток геопозиций инцидента
type StreamHub interface {
	Open(incidentID uuid.UUID, target geo.Point, observe func(models.Participant, models.Location))
	Grant(incidentID uuid.UUID, participants []models.Participant)
	Close(incidentID uuid.UUID)
}

// ResponderDirectory - часть справочника исполнителей, нужная диспетчеру
type ResponderDirectory interface {
	FindCandidates(origin geo.Point, kind models.ResponderKind, f directory.Filter, limit int) ([]directory.Candidate, error)
	Get(id string) (*models.Responder, error)
	Reserve(id string) error
	Release(id string) error
}

// ReportValidator - граница валидации отчетов
type ReportValidator interface {
	ValidateReport(report models.EmergencyReport) error
}

// Dispatcher определяет контракт бизнес-логики диспетчеризации инцидентов
type Dispatcher interface {
	ReportIncident(ctx context.Context, reporterID string, report models.EmergencyReport) (*models.Incident, error)
	AcceptOffer(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) (models.AcceptOutcome, error)
	DeclineOffer(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) error
	AssignManually(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) (models.AcceptOutcome, error)
	MarkArrived(ctx context.Context, incidentID uuid.UUID, responderID string, kind models.ServiceKind) error
	Resolve(ctx context.Context, incidentID uuid.UUID) error
	Cancel(ctx context.Context, incidentID uuid.UUID, reason string) error
	Expire(ctx context.Context, incidentID uuid.UUID, reason string) error
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListActive(ctx context.Context) ([]*models.Incident, error)
	Offers(ctx context.Context, incidentID uuid.UUID) ([]*models.CandidateOffer, error)
	Restore(ctx context.Context) (int, error)
	Shutdown(ctx context.Context) error
}

// ResponderRegistry - справочник исполнителей целиком
type ResponderRegistry interface {
	ResponderDirectory
	Upsert(ctx context.Context, r *models.Responder) error
	UpdateLocation(id string, loc models.Location) error
	UpdateAvailability(id string, status models.Availability) error
	UpdateBeds(id string, bedType models.BedType, available int) error
}

// ResponderService определяет контракт управления исполнителями
type ResponderService interface {
	Register(ctx context.Context, r *models.Responder) error
	UpdateLocation(ctx context.Context, id string, loc models.Location) error
	UpdateAvailability(ctx context.Context, id string, status models.Availability) error
	UpdateBeds(ctx context.Context, id string, bedType models.BedType, available int) error
	Nearby(ctx context.Context, origin geo.Point, kind models.ResponderKind, radiusKm float64, limit int) ([]directory.Candidate, error)
}
