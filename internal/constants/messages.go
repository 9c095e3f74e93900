package constants

type APIStatus string

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"
)

// Validation and lookup failure messages. These are part of the client
// contract; handlers return them verbatim.
const (
	MsgMissingFields   = "All fields are required."
	MsgDepartureInPast = "Departure time must be in the future."
	MsgDuplicateNumber = "Flight number must be unique."
	MsgFlightNotFound  = "Flight not found."
)
