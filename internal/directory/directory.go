package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/sirupsen/logrus"
)

// Store - постоянное хранилище исполнителей, с которым кэш согласован в конечном счете
type Store interface {
	ListResponders(ctx context.Context) ([]*models.Responder, error)
	UpsertResponder(ctx context.Context, responder *models.Responder) error
	SaveLocation(ctx context.Context, id string, loc models.Location) error
	SaveAvailability(ctx context.Context, id string, status models.Availability) error
	SaveBeds(ctx context.Context, id string, beds map[models.BedType]models.BedCount) error
}

// Filter - критерии пригодности для конкретного вида исполнителя
type Filter struct {
	RadiusKm              float64
	AmbulanceType         string
	RequiredCertification string
	RecipientBloodGroup   string
	BedType               models.BedType
	Exclude               map[string]struct{}
	Now                   time.Time
}

// Candidate - исполнитель с расстоянием и ETA до точки поиска
type Candidate struct {
	Responder  *models.Responder
	DistanceKm float64
	ETAMinutes int
}

type entry struct {
	mu        sync.RWMutex
	responder *models.Responder
}

type writeKind int

const (
	writeLocation writeKind = iota
	writeAvailability
	writeBeds
)

type write struct {
	kind   writeKind
	id     string
	loc    models.Location
	status models.Availability
	beds   map[models.BedType]models.BedCount
}

// Directory - живой кэш местоположения и доступности исполнителей.
// Обновления разных исполнителей не блокируют друг друга.
type Directory struct {
	entries  sync.Map // map[string]*entry
	store    Store
	logger   *logrus.Logger
	speedKmh float64
	writes   chan write
	now      func() time.Time
}

// New создает справочник; store может быть nil, тогда изменения живут только в памяти
func New(store Store, logger *logrus.Logger, speedKmh float64, queueSize int) *Directory {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Directory{
		store:    store,
		logger:   logger,
		speedKmh: speedKmh,
		writes:   make(chan write, queueSize),
		now:      time.Now,
	}
}

// Load заполняет кэш из хранилища
func (d *Directory) Load(ctx context.Context) error {
	if d.store == nil {
		return nil
	}
	responders, err := d.store.ListResponders(ctx)
	if err != nil {
		return fmt.Errorf("directory: could not load responders: %w", err)
	}
	for _, r := range responders {
		d.entries.Store(r.ID, &entry{responder: r})
	}
	d.logger.WithField("count", len(responders)).Info("Responder directory loaded")
	return nil
}

// Run сбрасывает отложенные изменения в хранилище до отмены контекста
func (d *Directory) Run(ctx context.Context) {
	d.logger.Info("Starting directory persister...")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Stopping directory persister.")
			return
		case w := <-d.writes:
			d.persist(ctx, w)
		}
	}
}

func (d *Directory) persist(ctx context.Context, w write) {
	if d.store == nil {
		return
	}
	var err error
	switch w.kind {
	case writeLocation:
		err = d.store.SaveLocation(ctx, w.id, w.loc)
	case writeAvailability:
		err = d.store.SaveAvailability(ctx, w.id, w.status)
	case writeBeds:
		err = d.store.SaveBeds(ctx, w.id, w.beds)
	}
	if err != nil {
		d.logger.WithError(err).WithField("responder_id", w.id).Error("Failed to persist responder update")
	}
}

// enqueue никогда не блокирует: при переполнении очереди запись теряется, кэш остается источником правды
func (d *Directory) enqueue(w write) {
	if d.store == nil {
		return
	}
	select {
	case d.writes <- w:
	default:
		d.logger.WithField("responder_id", w.id).Warn("Directory write queue is full, dropping persisted update")
	}
}

// Upsert регистрирует или обновляет исполнителя.
// Существующая запись меняется под своей блокировкой: занятость, выставленная Reserve, сохраняется.
func (d *Directory) Upsert(ctx context.Context, r *models.Responder) error {
	if !r.Kind.Valid() {
		return fmt.Errorf("directory: unknown responder kind %q: %w", r.Kind, models.ErrValidation)
	}
	if err := geo.Validate(r.Location.Point()); err != nil {
		return err
	}
	if r.Availability == "" {
		r.Availability = models.Offline
	}
	r.UpdatedAt = d.now()

	if v, loaded := d.entries.LoadOrStore(r.ID, &entry{responder: r.Clone()}); loaded {
		e := v.(*entry)
		e.mu.Lock()
		if e.responder.Availability == models.Busy {
			r.Availability = models.Busy
		}
		e.responder = r.Clone()
		e.mu.Unlock()
	}

	if d.store != nil {
		if err := d.store.UpsertResponder(ctx, r); err != nil {
			return fmt.Errorf("directory: could not save responder: %w", err)
		}
	}
	return nil
}

func (d *Directory) lookup(id string) (*entry, error) {
	v, ok := d.entries.Load(id)
	if !ok {
		return nil, fmt.Errorf("responder %s: %w", id, models.ErrNotFound)
	}
	return v.(*entry), nil
}

// Get возвращает копию исполнителя
func (d *Directory) Get(id string) (*models.Responder, error) {
	e, err := d.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.responder.Clone(), nil
}

// UpdateLocation обновляет координаты исполнителя в кэше
func (d *Directory) UpdateLocation(id string, loc models.Location) error {
	if err := geo.Validate(loc.Point()); err != nil {
		return err
	}
	e, err := d.lookup(id)
	if err != nil {
		return err
	}
	if loc.Timestamp.IsZero() {
		loc.Timestamp = d.now()
	}
	e.mu.Lock()
	e.responder.Location = loc
	e.responder.UpdatedAt = d.now()
	e.mu.Unlock()

	d.enqueue(write{kind: writeLocation, id: id, loc: loc})
	return nil
}

// UpdateAvailability меняет статус доступности
func (d *Directory) UpdateAvailability(id string, status models.Availability) error {
	if !status.Valid() {
		return fmt.Errorf("directory: unknown availability %q: %w", status, models.ErrValidation)
	}
	e, err := d.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.responder.Availability = status
	e.responder.UpdatedAt = d.now()
	e.mu.Unlock()

	d.enqueue(write{kind: writeAvailability, id: id, status: status})
	return nil
}

// UpdateBeds меняет число свободных коек больницы
func (d *Directory) UpdateBeds(id string, bedType models.BedType, available int) error {
	if !bedType.Valid() || available < 0 {
		return fmt.Errorf("directory: invalid bed update %q=%d: %w", bedType, available, models.ErrValidation)
	}
	e, err := d.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	if e.responder.Kind != models.ResponderHospital {
		e.mu.Unlock()
		return fmt.Errorf("directory: responder %s is not a hospital: %w", id, models.ErrValidation)
	}
	if e.responder.Beds == nil {
		e.responder.Beds = make(map[models.BedType]models.BedCount)
	}
	count := e.responder.Beds[bedType]
	count.Available = available
	if count.Total < available {
		count.Total = available
	}
	e.responder.Beds[bedType] = count
	e.responder.UpdatedAt = d.now()
	beds := e.responder.Clone().Beds
	e.mu.Unlock()

	d.enqueue(write{kind: writeBeds, id: id, beds: beds})
	return nil
}

// Reserve атомарно переводит исполнителя из available в busy.
// Гарантирует, что исполнитель участвует не более чем в одном активном инциденте.
func (d *Directory) Reserve(id string) error {
	e, err := d.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	if e.responder.Availability != models.Available {
		status := e.responder.Availability
		e.mu.Unlock()
		return fmt.Errorf("responder %s is %s: %w", id, status, models.ErrConflict)
	}
	e.responder.Availability = models.Busy
	e.responder.UpdatedAt = d.now()
	e.mu.Unlock()

	d.enqueue(write{kind: writeAvailability, id: id, status: models.Busy})
	return nil
}

// Release возвращает занятого исполнителя в available
func (d *Directory) Release(id string) error {
	e, err := d.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	if e.responder.Availability != models.Busy {
		e.mu.Unlock()
		return nil
	}
	e.responder.Availability = models.Available
	e.responder.UpdatedAt = d.now()
	e.mu.Unlock()

	d.enqueue(write{kind: writeAvailability, id: id, status: models.Available})
	return nil
}

// FindCandidates возвращает подходящих исполнителей по возрастанию расстояния,
// при равенстве - по id
func (d *Directory) FindCandidates(origin geo.Point, kind models.ResponderKind, f Filter, limit int) ([]Candidate, error) {
	if err := geo.Validate(origin); err != nil {
		return nil, err
	}
	if f.Now.IsZero() {
		f.Now = d.now()
	}

	candidates := make([]Candidate, 0)
	d.entries.Range(func(_, v any) bool {
		e := v.(*entry)
		e.mu.RLock()
		r := e.responder
		ok := r.Kind == kind && eligible(r, f)
		var snapshot *models.Responder
		if ok {
			snapshot = r.Clone()
		}
		e.mu.RUnlock()
		if !ok {
			return true
		}
		dist, err := geo.DistanceKm(origin, snapshot.Location.Point())
		if err != nil {
			return true
		}
		if f.RadiusKm > 0 && dist > f.RadiusKm {
			return true
		}
		candidates = append(candidates, Candidate{
			Responder:  snapshot,
			DistanceKm: dist,
			ETAMinutes: geo.ETAMinutes(dist, d.speedKmh),
		})
		return true
	})

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DistanceKm != candidates[j].DistanceKm {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].Responder.ID < candidates[j].Responder.ID
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func eligible(r *models.Responder, f Filter) bool {
	if r.Availability != models.Available {
		return false
	}
	if _, skip := f.Exclude[r.ID]; skip {
		return false
	}
	switch r.Kind {
	case models.ResponderAmbulance:
		return ambulanceMatches(r.AmbulanceType, f.AmbulanceType)
	case models.ResponderVolunteer:
		return hasCurrentCertification(r, f.RequiredCertification, f.Now)
	case models.ResponderBloodDonor:
		return BloodCompatible(r.BloodGroup, f.RecipientBloodGroup)
	case models.ResponderHospital:
		return hasBeds(r, f.BedType)
	}
	return false
}

func ambulanceMatches(have, want string) bool {
	switch want {
	case "":
		return true
	case models.AmbulanceBasic:
		return have == models.AmbulanceBasic || have == models.AmbulanceAdvanced
	}
	return have == want
}

func hasCurrentCertification(r *models.Responder, required string, now time.Time) bool {
	for _, c := range r.Certifications {
		if !c.Current(now) {
			continue
		}
		if required == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(required)) {
			return true
		}
	}
	return false
}

func hasBeds(r *models.Responder, bedType models.BedType) bool {
	if bedType != "" {
		return r.Beds[bedType].Available > 0
	}
	for _, b := range r.Beds {
		if b.Available > 0 {
			return true
		}
	}
	return false
}
