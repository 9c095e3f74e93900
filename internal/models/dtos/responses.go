package dtos

import "time"

type APIResponse struct {
	Status       string      `json:"status"`
	Message      string      `json:"message,omitempty"`
	ResponseTime string      `json:"response_time,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

// FlightResponse is a flight record plus its stage derived at response time.
type FlightResponse struct {
	ID            uint      `json:"id"`
	FlightNumber  string    `json:"flightNumber"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departureTime"`
	Gate          string    `json:"gate"`
	Status        string    `json:"status"`
}
