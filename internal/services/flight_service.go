package services

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"flightboard-service/internal/events"
	"flightboard-service/internal/logging"
	"flightboard-service/internal/metrics"
	"flightboard-service/internal/models"
	"flightboard-service/internal/models/dtos"
	"flightboard-service/internal/status"
)

const destinationsCacheKey = "destinations"

// FlightRepository is the storage collaborator. Storage is the single
// source of truth and serializes its own writes.
type FlightRepository interface {
	GetAll(ctx context.Context) ([]models.Flight, error)
	GetByID(ctx context.Context, id uint) (*models.Flight, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	Insert(ctx context.Context, flight *models.Flight) error
	DeleteByID(ctx context.Context, id uint) error
	DistinctDestinations(ctx context.Context) ([]string, error)
}

// Broadcaster pushes events to all attached observers, best effort.
type Broadcaster interface {
	Publish(events.Event)
}

// FlightService is the only component that mutates flight storage and the
// sole trigger of mutation broadcasts. For every mutation the broadcast
// is emitted strictly after persistence succeeds; on any failure nothing
// is broadcast.
type FlightService struct {
	repo    FlightRepository
	hub     Broadcaster
	metrics *metrics.MetricsRegistry

	// destination names only; derived status is never cached
	destCache *cache.Cache
}

func NewFlightService(repo FlightRepository, hub Broadcaster, metricsReg *metrics.MetricsRegistry) *FlightService {
	return &FlightService{
		repo:      repo,
		hub:       hub,
		metrics:   metricsReg,
		destCache: cache.New(30*time.Second, time.Minute),
	}
}

// AddFlight validates the candidate, persists it, and broadcasts the new
// record. Validation errors surface as the Err* sentinels; storage errors
// propagate unchanged.
func (s *FlightService) AddFlight(ctx context.Context, req dtos.CreateFlightRequest) (*dtos.FlightResponse, error) {
	logging.Info("Adding flight",
		"flight_number", req.FlightNumber,
		"destination", req.Destination,
	)

	if err := ValidateFlight(ctx, req, time.Now(), s.repo.ExistsByNumber); err != nil {
		return nil, err
	}

	flight := models.Flight{
		FlightNumber:  req.FlightNumber,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		Gate:          req.Gate,
	}

	if err := s.repo.Insert(ctx, &flight); err != nil {
		return nil, err
	}

	// Broadcast only after the record is durable.
	resp := toResponse(flight, time.Now())
	s.hub.Publish(events.FlightAdded(resp))
	s.destCache.Delete(destinationsCacheKey)

	if s.metrics != nil {
		s.metrics.FlightsCreatedTotal.Inc()
	}
	logging.Info("Flight added", "flight_id", flight.ID, "flight_number", flight.FlightNumber)

	return &resp, nil
}

// DeleteFlight removes the flight with the given id and broadcasts the
// deletion. Absent ids fail with ErrFlightNotFound before any delete.
func (s *FlightService) DeleteFlight(ctx context.Context, id uint) error {
	logging.Info("Deleting flight", "flight_id", id)

	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if flight == nil {
		return ErrFlightNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.hub.Publish(events.FlightDeleted(id))
	s.destCache.Delete(destinationsCacheKey)

	if s.metrics != nil {
		s.metrics.FlightsDeletedTotal.Inc()
	}
	logging.Info("Flight deleted", "flight_id", id)

	return nil
}

// ListWithStatus returns every flight with its stage derived against a
// single snapshot of now, so all rows in one response are comparable.
// Zero rows yields an empty slice, never nil.
func (s *FlightService) ListWithStatus(ctx context.Context) ([]dtos.FlightResponse, error) {
	flights, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]dtos.FlightResponse, 0, len(flights))
	for _, f := range flights {
		out = append(out, toResponse(f, now))
	}
	return out, nil
}

// Search lists the board and filters in memory: exact case-insensitive
// stage name, case-insensitive destination substring. Blank filters pass
// everything.
func (s *FlightService) Search(ctx context.Context, stageFilter, destination string) ([]dtos.FlightResponse, error) {
	flights, err := s.ListWithStatus(ctx)
	if err != nil {
		return nil, err
	}

	stageFilter = strings.TrimSpace(stageFilter)
	destination = strings.TrimSpace(destination)

	out := make([]dtos.FlightResponse, 0, len(flights))
	for _, f := range flights {
		if stageFilter != "" && !strings.EqualFold(f.Status, stageFilter) {
			continue
		}
		if destination != "" && !strings.Contains(strings.ToLower(f.Destination), strings.ToLower(destination)) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// Destinations returns the distinct destinations on the board, cached
// briefly for the UI filter box.
func (s *FlightService) Destinations(ctx context.Context) ([]string, error) {
	if cached, ok := s.destCache.Get(destinationsCacheKey); ok {
		return cached.([]string), nil
	}

	destinations, err := s.repo.DistinctDestinations(ctx)
	if err != nil {
		return nil, err
	}

	s.destCache.Set(destinationsCacheKey, destinations, cache.DefaultExpiration)
	return destinations, nil
}

func toResponse(f models.Flight, now time.Time) dtos.FlightResponse {
	return dtos.FlightResponse{
		ID:            f.ID,
		FlightNumber:  f.FlightNumber,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
		Gate:          f.Gate,
		Status:        string(status.Classify(f.DepartureTime, now)),
	}
}
