package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/healthlink/dispatch_engine/internal/directory"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResponderRepository struct {
	db *pgxpool.Pool
}

func NewResponderRepository(db *pgxpool.Pool) directory.Store {
	return &ResponderRepository{db: db}
}

// ListResponders загружает всех исполнителей для прогрева справочника
func (r *ResponderRepository) ListResponders(ctx context.Context) ([]*models.Responder, error) {
	query := `
		SELECT id, kind, name, latitude, longitude, location_at, availability,
			ambulance_type, skills, certifications, blood_group, beds, updated_at
		FROM responders;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list responders: %w", err)
	}
	defer rows.Close()

	responders := make([]*models.Responder, 0)
	for rows.Next() {
		resp := &models.Responder{}
		var skills, certs, beds []byte
		err := rows.Scan(
			&resp.ID,
			&resp.Kind,
			&resp.Name,
			&resp.Location.Lat,
			&resp.Location.Lng,
			&resp.Location.Timestamp,
			&resp.Availability,
			&resp.AmbulanceType,
			&skills,
			&certs,
			&resp.BloodGroup,
			&beds,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan responder row: %w", err)
		}
		if err := unmarshalOptional(skills, &resp.Skills); err != nil {
			return nil, fmt.Errorf("responder %s skills: %w", resp.ID, err)
		}
		if err := unmarshalOptional(certs, &resp.Certifications); err != nil {
			return nil, fmt.Errorf("responder %s certifications: %w", resp.ID, err)
		}
		if err := unmarshalOptional(beds, &resp.Beds); err != nil {
			return nil, fmt.Errorf("responder %s beds: %w", resp.ID, err)
		}
		responders = append(responders, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return responders, nil
}

// UpsertResponder вставляет исполнителя или заменяет его профиль
func (r *ResponderRepository) UpsertResponder(ctx context.Context, resp *models.Responder) error {
	skills, err := json.Marshal(resp.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	certs, err := json.Marshal(resp.Certifications)
	if err != nil {
		return fmt.Errorf("failed to marshal certifications: %w", err)
	}
	beds, err := json.Marshal(resp.Beds)
	if err != nil {
		return fmt.Errorf("failed to marshal beds: %w", err)
	}
	query := `
		INSERT INTO responders (id, kind, name, latitude, longitude, location_at, availability,
			ambulance_type, skills, certifications, blood_group, beds, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			kind = EXCLUDED.kind,
			name = EXCLUDED.name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			location_at = EXCLUDED.location_at,
			availability = EXCLUDED.availability,
			ambulance_type = EXCLUDED.ambulance_type,
			skills = EXCLUDED.skills,
			certifications = EXCLUDED.certifications,
			blood_group = EXCLUDED.blood_group,
			beds = EXCLUDED.beds,
			updated_at = EXCLUDED.updated_at;
	`
	_, err = r.db.Exec(ctx, query,
		resp.ID,
		resp.Kind,
		resp.Name,
		resp.Location.Lat,
		resp.Location.Lng,
		resp.Location.Timestamp,
		resp.Availability,
		resp.AmbulanceType,
		skills,
		certs,
		resp.BloodGroup,
		beds,
		resp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert responder: %w", err)
	}
	return nil
}

func (r *ResponderRepository) SaveLocation(ctx context.Context, id string, loc models.Location) error {
	query := `
		UPDATE responders SET
			latitude = $1,
			longitude = $2,
			location_at = $3,
			updated_at = NOW()
		WHERE id = $4;
	`
	return r.exec(ctx, "location", query, loc.Lat, loc.Lng, loc.Timestamp, id)
}

func (r *ResponderRepository) SaveAvailability(ctx context.Context, id string, status models.Availability) error {
	query := `UPDATE responders SET availability = $1, updated_at = NOW() WHERE id = $2;`
	return r.exec(ctx, "availability", query, status, id)
}

func (r *ResponderRepository) SaveBeds(ctx context.Context, id string, beds map[models.BedType]models.BedCount) error {
	val, err := json.Marshal(beds)
	if err != nil {
		return fmt.Errorf("failed to marshal beds: %w", err)
	}
	query := `UPDATE responders SET beds = $1, updated_at = NOW() WHERE id = $2;`
	return r.exec(ctx, "beds", query, val, id)
}

func (r *ResponderRepository) exec(ctx context.Context, what, query string, args ...any) error {
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save responder %s: %w", what, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("responder for %s update: %w", what, models.ErrNotFound)
	}
	return nil
}

func unmarshalOptional(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
