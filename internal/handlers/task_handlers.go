package handlers

import (
	"net/http"
	"strconv"
	"time"

	"sprintboard/internal/logger"
	"sprintboard/internal/models/task"
	"sprintboard/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

// List serves GET /workspaces/{slug}/tasks?sprint_id=N.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var sprintID *int64
	if raw := r.URL.Query().Get("sprint_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("query", "sprint_id"),
				zap.String("value", raw),
				zap.String("client_ip", r.RemoteAddr))
			errs := validation.New("sprint_id", "The sprint id field must be an integer.")
			responseWithError(w, http.StatusUnprocessableEntity, errs.Field("sprint_id"), errs)
			return
		}
		sprintID = &id
	}

	tasks, err := h.TaskService.List(r.Context(), chi.URLParam(r, "slug"), currentUser(r).ID, sprintID)
	if err != nil {
		handleError(w, err, "Failed to load tasks")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Duration("ms", time.Since(start)),
		zap.Int("count", len(tasks)))
	responseWithData(w, http.StatusOK, "Tasks retrieved", tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	t, err := h.TaskService.Get(r.Context(), chi.URLParam(r, "slug"), id, currentUser(r).ID)
	if err != nil {
		handleError(w, err, "Failed to load task")
		return
	}
	responseWithData(w, http.StatusOK, "Task retrieved", t)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in task.CreateInput
	if !decodeBody(w, r, &in) {
		return
	}

	t, err := h.TaskService.Create(r.Context(), chi.URLParam(r, "slug"), currentUser(r).ID, in)
	if err != nil {
		handleError(w, err, "Failed to create task")
		return
	}
	responseWithData(w, http.StatusCreated, "Task created", t)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var patch task.Patch
	if !decodeBody(w, r, &patch) {
		return
	}

	t, err := h.TaskService.Update(r.Context(), chi.URLParam(r, "slug"), id, currentUser(r).ID, patch)
	if err != nil {
		handleError(w, err, "Failed to update task")
		return
	}
	responseWithData(w, http.StatusOK, "Task updated", t)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.TaskService.Delete(r.Context(), chi.URLParam(r, "slug"), id, currentUser(r).ID); err != nil {
		handleError(w, err, "Failed to delete task")
		return
	}
	responseWithData(w, http.StatusOK, "Task deleted", nil)
}
