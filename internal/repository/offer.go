package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/healthlink/dispatch_engine/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OfferRepository struct {
	db *pgxpool.Pool
}

func NewOfferRepository(db *pgxpool.Pool) service.OfferRepository {
	return &OfferRepository{db: db}
}

// SaveOffer вставляет предложение или обновляет его исход
func (r *OfferRepository) SaveOffer(ctx context.Context, offer *models.CandidateOffer) error {
	query := `
		INSERT INTO candidate_offers (id, incident_id, responder_id, service_kind, distance_km, eta_minutes, offered_at, expires_at, outcome, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			outcome = EXCLUDED.outcome,
			decided_at = EXCLUDED.decided_at;
	`
	_, err := r.db.Exec(ctx, query,
		offer.ID,
		offer.IncidentID,
		offer.ResponderID,
		offer.ServiceKind,
		offer.DistanceKm,
		offer.ETAMinutes,
		offer.OfferedAt,
		offer.ExpiresAt,
		offer.Outcome,
		offer.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}
	return nil
}

// ListOffers возвращает предложения инцидента в порядке отправки
func (r *OfferRepository) ListOffers(ctx context.Context, incidentID uuid.UUID) ([]*models.CandidateOffer, error) {
	query := `
		SELECT id, incident_id, responder_id, service_kind, distance_km, eta_minutes, offered_at, expires_at, outcome, decided_at
		FROM candidate_offers
		WHERE incident_id = $1
		ORDER BY offered_at, id;
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	offers := make([]*models.CandidateOffer, 0)
	for rows.Next() {
		o := &models.CandidateOffer{}
		err := rows.Scan(
			&o.ID,
			&o.IncidentID,
			&o.ResponderID,
			&o.ServiceKind,
			&o.DistanceKm,
			&o.ETAMinutes,
			&o.OfferedAt,
			&o.ExpiresAt,
			&o.Outcome,
			&o.DecidedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return offers, nil
}
