package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"sprintboard/internal/logger"
	"sprintboard/internal/middleware"
	"sprintboard/internal/models/user"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// decodeBody reads a JSON request body into dst and writes the error response itself.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный Content-Type", zap.String("content_type", r.Header.Get("Content-Type")))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
		return false
	}

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("HTTP: Ошибка разбора тела запроса", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "Malformed JSON body", nil)
		return false
	}
	return true
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("HTTP: Неверный идентификатор", zap.String("param", name), zap.String("value", chi.URLParam(r, name)))
		responseWithError(w, http.StatusNotFound, "Resource not found", nil)
		return 0, false
	}
	return id, true
}

// currentUser is set by the Authenticate middleware on every protected route.
func currentUser(r *http.Request) *user.User {
	return middleware.UserFromContext(r.Context())
}
