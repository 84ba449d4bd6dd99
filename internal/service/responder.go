package service

import (
	"context"
	"fmt"
	"time"

	"github.com/healthlink/dispatch_engine/internal/directory"
	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/sirupsen/logrus"
)

const maxNearbyLimit = 100

type responderService struct {
	registry ResponderRegistry
	logger   *logrus.Logger
}

func NewResponderService(registry ResponderRegistry, logger *logrus.Logger) ResponderService {
	return &responderService{
		registry: registry,
		logger:   logger,
	}
}

// Register добавляет или заменяет исполнителя в справочнике
func (s *responderService) Register(ctx context.Context, r *models.Responder) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "responder",
		"method":       "Register",
		"responder_id": r.ID,
	})
	if r.ID == "" {
		return fmt.Errorf("service: responder id is required: %w", models.ErrValidation)
	}
	if r.Availability == models.Busy {
		return fmt.Errorf("service: busy is assigned by dispatch only: %w", models.ErrValidation)
	}
	if current, err := s.registry.Get(r.ID); err == nil && current.Availability == models.Busy {
		log.Warn("Responder is engaged in an active incident")
		return fmt.Errorf("service: responder %s is engaged in an active incident: %w", r.ID, models.ErrConflict)
	}
	if err := s.registry.Upsert(ctx, r); err != nil {
		log.WithError(err).Error("Failed to register responder")
		return fmt.Errorf("service: could not register responder: %w", err)
	}
	log.Info("Responder registered")
	return nil
}

func (s *responderService) UpdateLocation(_ context.Context, id string, loc models.Location) error {
	if err := s.registry.UpdateLocation(id, loc); err != nil {
		return fmt.Errorf("service: could not update location: %w", err)
	}
	return nil
}

// UpdateAvailability меняет статус исполнителя; занятость управляется только диспетчером
func (s *responderService) UpdateAvailability(_ context.Context, id string, status models.Availability) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "responder",
		"method":       "UpdateAvailability",
		"responder_id": id,
		"status":       status,
	})
	if !status.Valid() {
		return fmt.Errorf("service: unknown availability %q: %w", status, models.ErrValidation)
	}
	if status == models.Busy {
		return fmt.Errorf("service: busy is assigned by dispatch only: %w", models.ErrValidation)
	}
	current, err := s.registry.Get(id)
	if err != nil {
		return fmt.Errorf("service: could not update availability: %w", err)
	}
	if current.Availability == models.Busy {
		log.Warn("Responder is engaged in an active incident")
		return fmt.Errorf("service: responder %s is engaged in an active incident: %w", id, models.ErrConflict)
	}
	if err := s.registry.UpdateAvailability(id, status); err != nil {
		return fmt.Errorf("service: could not update availability: %w", err)
	}
	log.Info("Responder availability updated")
	return nil
}

func (s *responderService) UpdateBeds(_ context.Context, id string, bedType models.BedType, available int) error {
	if !bedType.Valid() || available < 0 {
		return fmt.Errorf("service: invalid bed update %s=%d: %w", bedType, available, models.ErrValidation)
	}
	if err := s.registry.UpdateBeds(id, bedType, available); err != nil {
		return fmt.Errorf("service: could not update beds: %w", err)
	}
	return nil
}

// Nearby - доступные исполнители вида kind рядом с точкой
func (s *responderService) Nearby(_ context.Context, origin geo.Point, kind models.ResponderKind, radiusKm float64, limit int) ([]directory.Candidate, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("service: unknown responder kind %q: %w", kind, models.ErrValidation)
	}
	if limit < 1 || limit > maxNearbyLimit {
		limit = 20
	}
	cands, err := s.registry.FindCandidates(origin, kind, directory.Filter{RadiusKm: radiusKm, Now: time.Now()}, limit)
	if err != nil {
		return nil, fmt.Errorf("service: could not find responders: %w", err)
	}
	return cands, nil
}
