package services

import (
	"context"
	"strings"
	"time"

	"flightboard-service/internal/models/dtos"
)

// ExistsByNumberFunc checks whether a flight number is already taken. It
// is the only suspension point in validation.
type ExistsByNumberFunc func(ctx context.Context, number string) (bool, error)

// ValidateFlight runs the creation checks in order, short-circuiting on
// the first failure: field presence, then future departure, then
// number uniqueness. The order determines which error the caller sees
// when multiple checks would fail.
func ValidateFlight(ctx context.Context, candidate dtos.CreateFlightRequest, now time.Time, exists ExistsByNumberFunc) error {
	if strings.TrimSpace(candidate.FlightNumber) == "" ||
		strings.TrimSpace(candidate.Destination) == "" ||
		strings.TrimSpace(candidate.Gate) == "" {
		return ErrMissingFields
	}

	// Strictly after now; departing exactly at the validation instant is
	// rejected.
	if !candidate.DepartureTime.After(now) {
		return ErrDepartureInPast
	}

	taken, err := exists(ctx, candidate.FlightNumber)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateFlightNumber
	}

	return nil
}
