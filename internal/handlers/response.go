package handlers

import (
	"encoding/json"
	"net/http"

	"sprintboard/internal/logger"
	"sprintboard/internal/validation"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func toJSON(storage map[string]any, payload Payload) {
	storage[payload.Key] = payload.Payload
}

func responseWithJSON(w http.ResponseWriter, code int, payload ...Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	storage := make(map[string]any)
	for _, pl := range payload {
		toJSON(storage, pl)
	}
	if err := json.NewEncoder(w).Encode(storage); err != nil {
		logger.Error("HTTP: Ошибка записи ответа", err)
	}
}

// responseWithData writes the success envelope {success, message, data}.
func responseWithData(w http.ResponseWriter, code int, message string, data any) {
	responseWithJSON(w, code,
		toPayload("success", true),
		toPayload("message", message),
		toPayload("data", data),
	)
}

// responseWithError writes the failure envelope. fields is nil for general failures.
func responseWithError(w http.ResponseWriter, code int, message string, fields validation.Errors) {
	responseWithJSON(w, code,
		toPayload("success", false),
		toPayload("message", message),
		toPayload("errors", fields),
	)
}
