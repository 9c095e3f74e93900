package services

import (
	"errors"

	"flightboard-service/internal/constants"
)

// Validation and lookup failures are caller-visible and non-retryable.
// Handlers match on them with errors.Is; anything else that escapes the
// service is a storage failure and surfaces as a generic fault.
var (
	ErrMissingFields         = errors.New(constants.MsgMissingFields)
	ErrDepartureInPast       = errors.New(constants.MsgDepartureInPast)
	ErrDuplicateFlightNumber = errors.New(constants.MsgDuplicateNumber)
	ErrFlightNotFound        = errors.New(constants.MsgFlightNotFound)
)
