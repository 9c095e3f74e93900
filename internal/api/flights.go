package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"flightboard-service/internal/logging"
	"flightboard-service/internal/models/dtos"
	"flightboard-service/internal/services"
)

// ListFlightsHandler handles GET /api/v1/flights: every flight with its
// stage derived at response time.
func ListFlightsHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flights, err := fltSvc.ListWithStatus(r.Context())
		if err != nil {
			logging.Error("Failed to list flights", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, initTime, "Failed to fetch flights")
			return
		}

		respondWithSuccess(w, http.StatusOK, initTime, flights)
	}
}

// SearchFlightsHandler handles GET /api/v1/flights/search with optional
// `status` and `destination` query parameters.
func SearchFlightsHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stage := r.URL.Query().Get("status")
		destination := r.URL.Query().Get("destination")

		flights, err := fltSvc.Search(r.Context(), stage, destination)
		if err != nil {
			logging.Error("Failed to search flights", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, initTime, "Failed to fetch flights")
			return
		}

		respondWithSuccess(w, http.StatusOK, initTime, flights)
	}
}

// AddFlightHandler handles POST /api/v1/flights. Validation failures come
// back as 400 with the exact validation message; storage failures as 500.
func AddFlightHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateFlightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, initTime, "Invalid request body")
			return
		}

		flight, err := fltSvc.AddFlight(r.Context(), req)
		if err != nil {
			if isValidationError(err) {
				respondWithError(w, http.StatusBadRequest, initTime, err.Error())
				return
			}
			logging.Error("Failed to add flight", "flight_number", req.FlightNumber, "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, initTime, "Failed to add flight")
			return
		}

		respondWithSuccess(w, http.StatusCreated, initTime, flight)
	}
}

// DeleteFlightHandler handles DELETE /api/v1/flights/{id}.
func DeleteFlightHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, initTime, "Invalid flight id")
			return
		}

		if err := fltSvc.DeleteFlight(r.Context(), uint(id)); err != nil {
			if errors.Is(err, services.ErrFlightNotFound) {
				respondWithError(w, http.StatusNotFound, initTime, err.Error())
				return
			}
			logging.Error("Failed to delete flight", "flight_id", id, "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, initTime, "Failed to delete flight")
			return
		}

		respondWithSuccess(w, http.StatusOK, initTime, nil)
	}
}

// DestinationsHandler handles GET /api/v1/flights/destinations for the UI
// filter box.
func DestinationsHandler(fltSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		destinations, err := fltSvc.Destinations(r.Context())
		if err != nil {
			logging.Error("Failed to fetch destinations", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, initTime, "Failed to fetch destinations")
			return
		}

		respondWithSuccess(w, http.StatusOK, initTime, destinations)
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, services.ErrMissingFields) ||
		errors.Is(err, services.ErrDepartureInPast) ||
		errors.Is(err, services.ErrDuplicateFlightNumber)
}
