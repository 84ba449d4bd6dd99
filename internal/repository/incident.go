package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/healthlink/dispatch_engine/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create сохраняет новый инцидент с версией 1
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	data, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident: %w", err)
	}
	query := `
		INSERT INTO incidents (id, reporter_id, type, state, severity, latitude, longitude, escalated, data, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11);
	`
	_, err = r.db.Exec(ctx, query,
		incident.ID,
		incident.ReporterID,
		incident.Type,
		incident.State,
		incident.Severity,
		incident.Location.Lat,
		incident.Location.Lng,
		incident.Escalated,
		data,
		incident.CreatedAt,
		incident.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	incident.Version = 1
	return nil
}

// Update записывает инцидент, только если версия в БД совпадает с версией снимка
func (r *IncidentRepository) Update(ctx context.Context, incident *models.Incident) error {
	next := *incident
	next.Version = incident.Version + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to marshal incident: %w", err)
	}
	query := `
		UPDATE incidents SET
			state = $1,
			severity = $2,
			escalated = $3,
			data = $4,
			version = version + 1,
			updated_at = $5,
			closed_at = $6
		WHERE id = $7 AND version = $8;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		incident.State,
		incident.Severity,
		incident.Escalated,
		data,
		incident.UpdatedAt,
		incident.ClosedAt,
		incident.ID,
		incident.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", err)
	}

	// Если ни одна строка не обновлена, инцидента нет или версия устарела
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM incidents WHERE id = $1)`, incident.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check incident: %w", err)
		}
		if !exists {
			return fmt.Errorf("incident with id %s: %w", incident.ID, models.ErrNotFound)
		}
		return fmt.Errorf("incident with id %s has a newer version than %d: %w", incident.ID, incident.Version, models.ErrConflict)
	}
	incident.Version = next.Version
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	var data []byte
	var version int
	err := r.db.QueryRow(ctx, `SELECT data, version FROM incidents WHERE id = $1;`, id).Scan(&data, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(data, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident: %w", err)
	}
	incident.Version = version
	return incident, nil
}

// ListOpen возвращает инциденты без closed_at, старые первыми
func (r *IncidentRepository) ListOpen(ctx context.Context) ([]*models.Incident, error) {
	rows, err := r.db.Query(ctx, `SELECT data, version FROM incidents WHERE closed_at IS NULL ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list open incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		var data []byte
		var version int
		if err := rows.Scan(&data, &version); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incident := &models.Incident{}
		if err := json.Unmarshal(data, incident); err != nil {
			return nil, fmt.Errorf("failed to unmarshal incident: %w", err)
		}
		incident.Version = version
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incidents: %w", err)
	}
	return incidents, nil
}

func incidentCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s", id.String())
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, incidentCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, incidentCacheKey(incident.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, incidentCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
