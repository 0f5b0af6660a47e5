// Package dto holds the wire shapes of the REST API that are not domain models.
package dto

import (
	"encoding/json"

	"sprintboard/internal/validation"
)

// SuccessResponse is {success: true, message, data}.
type SuccessResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ErrorResponse is {success: false, message, errors}; Errors is null for general failures.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors"`
}

// Decode reads an envelope body, used by tests of both sides.
func Decode[T any](body []byte) (SuccessResponse[T], error) {
	var res SuccessResponse[T]
	err := json.Unmarshal(body, &res)
	return res, err
}

type HealthResponse struct {
	Status     string `json:"status"`
	Repository string `json:"repository"`
}
