package handlers

import (
	"net/http"

	"sprintboard/internal/handlers/dto"
	"sprintboard/internal/logger"
)

type HealthHandler struct {
	Repository     HealthChecker
	RepositoryType string
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.Repository.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Хранилище недоступно", err)
		responseWithError(w, http.StatusServiceUnavailable, "Repository unavailable", nil)
		return
	}
	responseWithData(w, http.StatusOK, "OK", dto.HealthResponse{Status: "ok", Repository: h.RepositoryType})
}
