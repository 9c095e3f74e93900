package dtos

import "time"

type CreateFlightRequest struct {
	FlightNumber  string    `json:"flightNumber"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departureTime"`
	Gate          string    `json:"gate"`
}
