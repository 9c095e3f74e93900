package api

import (
	"encoding/json"
	"net/http"
	"time"

	"flightboard-service/internal/constants"
	"flightboard-service/internal/models/dtos"
)

func respondWithSuccess(w http.ResponseWriter, statusCode int, initTime time.Time, data interface{}) {
	resp := dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		ResponseTime: time.Since(initTime).String(),
		Data:         data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, initTime time.Time, message string) {
	resp := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      message,
		ResponseTime: time.Since(initTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
