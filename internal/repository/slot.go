package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/healthlink/dispatch_engine/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotStore struct {
	db *pgxpool.Pool
}

func NewSlotStore(db *pgxpool.Pool) service.SlotStore {
	return &SlotStore{db: db}
}

// ClaimSlot - условная вставка: первая запись по (incident_id, service_kind) выигрывает.
// Уникальный индекс по responder_id не дает одному исполнителю держать два слота,
// даже если справочники разных экземпляров расходятся.
func (s *SlotStore) ClaimSlot(ctx context.Context, incidentID uuid.UUID, kind models.ServiceKind, responderID string) (bool, error) {
	query := `
		INSERT INTO slot_claims (incident_id, service_kind, responder_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING;
	`
	cmdTag, err := s.db.Exec(ctx, query, incidentID, kind, responderID)
	if err != nil {
		return false, fmt.Errorf("failed to claim slot: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func (s *SlotStore) ReleaseSlot(ctx context.Context, incidentID uuid.UUID, kind models.ServiceKind) error {
	_, err := s.db.Exec(ctx, `DELETE FROM slot_claims WHERE incident_id = $1 AND service_kind = $2;`, incidentID, kind)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	return nil
}
