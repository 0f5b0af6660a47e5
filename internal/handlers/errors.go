package handlers

import (
	"errors"
	"net/http"

	"sprintboard/internal/logger"
	"sprintboard/internal/service"

	"go.uber.org/zap"
)

func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)
	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.String("message", businessErr.Message),
		zap.Int("http_status", statusCode))

	responseWithError(w, statusCode, businessErr.Message, businessErr.Fields)
	return true
}

// handleError renders business errors with their status and anything else as 500.
func handleError(w http.ResponseWriter, err error, defaultMessage string) {
	if handleBusinessError(w, err) {
		return
	}
	logger.Error("HTTP: Ошибка Service", err)
	responseWithError(w, http.StatusInternalServerError, defaultMessage, nil)
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeForbidden:
		return http.StatusForbidden
	case service.CodeValidation:
		return http.StatusUnprocessableEntity
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	case service.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
