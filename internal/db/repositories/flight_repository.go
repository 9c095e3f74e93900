package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"flightboard-service/internal/models"
)

type FlightRepository struct {
	db *gorm.DB
}

// NewFlightRepository creates a GORM-based flight repository
func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// GetAll returns every stored flight, oldest first.
func (r *FlightRepository) GetAll(ctx context.Context) ([]models.Flight, error) {
	var flights []models.Flight
	if err := r.db.WithContext(ctx).Order("id").Find(&flights).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch flights: %w", err)
	}
	return flights, nil
}

// GetByID returns the flight with the given id, or (nil, nil) when absent.
func (r *FlightRepository) GetByID(ctx context.Context, id uint) (*models.Flight, error) {
	var flight models.Flight
	err := r.db.WithContext(ctx).First(&flight, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight %d: %w", id, err)
	}
	return &flight, nil
}

// ExistsByNumber reports whether any flight carries the given number.
func (r *FlightRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Flight{}).
		Where("flight_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check flight number: %w", err)
	}
	return count > 0, nil
}

// Insert persists the flight and fills in its storage-assigned ID.
func (r *FlightRepository) Insert(ctx context.Context, flight *models.Flight) error {
	if err := r.db.WithContext(ctx).Create(flight).Error; err != nil {
		return fmt.Errorf("failed to insert flight: %w", err)
	}
	return nil
}

// DeleteByID removes the flight with the given id. No-op when absent;
// callers pre-check existence.
func (r *FlightRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Flight{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete flight %d: %w", id, err)
	}
	return nil
}

// DistinctDestinations returns the distinct destinations currently on the
// board, for the UI filter box.
func (r *FlightRepository) DistinctDestinations(ctx context.Context) ([]string, error) {
	var destinations []string
	err := r.db.WithContext(ctx).
		Model(&models.Flight{}).
		Distinct("destination").
		Order("destination").
		Pluck("destination", &destinations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch destinations: %w", err)
	}
	return destinations, nil
}
