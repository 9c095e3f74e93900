package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"flightboard-service/internal/models/dtos"
)

func neverExists(ctx context.Context, number string) (bool, error) {
	return false, nil
}

func validCandidate(now time.Time) dtos.CreateFlightRequest {
	return dtos.CreateFlightRequest{
		FlightNumber:  "LY315",
		Destination:   "Tel Aviv",
		DepartureTime: now.Add(2 * time.Hour),
		Gate:          "A1",
	}
}

func TestValidateFlight_MissingFields(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		mutate func(*dtos.CreateFlightRequest)
	}{
		{"empty flight number", func(r *dtos.CreateFlightRequest) { r.FlightNumber = "" }},
		{"whitespace flight number", func(r *dtos.CreateFlightRequest) { r.FlightNumber = "   " }},
		{"empty destination", func(r *dtos.CreateFlightRequest) { r.Destination = "" }},
		{"whitespace destination", func(r *dtos.CreateFlightRequest) { r.Destination = "\t" }},
		{"empty gate", func(r *dtos.CreateFlightRequest) { r.Gate = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := validCandidate(now)
			tc.mutate(&candidate)

			err := ValidateFlight(context.Background(), candidate, now, neverExists)
			if !errors.Is(err, ErrMissingFields) {
				t.Errorf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestValidateFlight_DepartureInPast(t *testing.T) {
	now := time.Now()

	candidate := validCandidate(now)
	candidate.DepartureTime = now.Add(-time.Minute)
	if err := ValidateFlight(context.Background(), candidate, now, neverExists); !errors.Is(err, ErrDepartureInPast) {
		t.Errorf("expected ErrDepartureInPast for past departure, got %v", err)
	}

	// Departure exactly at the validation instant is rejected.
	candidate.DepartureTime = now
	if err := ValidateFlight(context.Background(), candidate, now, neverExists); !errors.Is(err, ErrDepartureInPast) {
		t.Errorf("expected ErrDepartureInPast for departure == now, got %v", err)
	}

	// One millisecond in the future passes.
	candidate.DepartureTime = now.Add(time.Millisecond)
	if err := ValidateFlight(context.Background(), candidate, now, neverExists); err != nil {
		t.Errorf("expected departure at now+1ms to validate, got %v", err)
	}
}

func TestValidateFlight_DuplicateNumber(t *testing.T) {
	now := time.Now()
	exists := func(ctx context.Context, number string) (bool, error) {
		return number == "LY315", nil
	}

	err := ValidateFlight(context.Background(), validCandidate(now), now, exists)
	if !errors.Is(err, ErrDuplicateFlightNumber) {
		t.Errorf("expected ErrDuplicateFlightNumber, got %v", err)
	}
}

func TestValidateFlight_CheckOrder(t *testing.T) {
	now := time.Now()

	// A candidate failing every check reports MissingFields first, and the
	// existence check is never reached.
	called := false
	exists := func(ctx context.Context, number string) (bool, error) {
		called = true
		return true, nil
	}

	candidate := dtos.CreateFlightRequest{
		FlightNumber:  " ",
		Destination:   "",
		DepartureTime: now.Add(-time.Hour),
		Gate:          "",
	}

	if err := ValidateFlight(context.Background(), candidate, now, exists); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields first, got %v", err)
	}
	if called {
		t.Error("existence check should not run when earlier checks fail")
	}

	// Fields present but past departure: DepartureInPast before the
	// existence check.
	candidate = validCandidate(now)
	candidate.DepartureTime = now.Add(-time.Hour)
	if err := ValidateFlight(context.Background(), candidate, now, exists); !errors.Is(err, ErrDepartureInPast) {
		t.Errorf("expected ErrDepartureInPast before duplicate check, got %v", err)
	}
	if called {
		t.Error("existence check should not run when departure is in the past")
	}
}

func TestValidateFlight_ExistenceCheckErrorPropagates(t *testing.T) {
	now := time.Now()
	storageErr := errors.New("connection refused")
	exists := func(ctx context.Context, number string) (bool, error) {
		return false, storageErr
	}

	err := ValidateFlight(context.Background(), validCandidate(now), now, exists)
	if !errors.Is(err, storageErr) {
		t.Errorf("expected storage error to propagate unchanged, got %v", err)
	}
}
