package handlers

import (
	"net/http"

	"sprintboard/internal/models/sprint"
	"sprintboard/internal/service"

	"github.com/go-chi/chi/v5"
)

type SprintHandler struct {
	SprintService SprintService
}

func NewSprintHandler(sprintService SprintService) SprintHandler {
	return SprintHandler{SprintService: sprintService}
}

func (h *SprintHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.SprintService.List(r.Context(), chi.URLParam(r, "slug"), currentUser(r).ID)
	if err != nil {
		handleError(w, err, "Failed to load sprints")
		return
	}
	responseWithData(w, http.StatusOK, "Sprints retrieved", list)
}

func (h *SprintHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	sp, err := h.SprintService.Get(r.Context(), chi.URLParam(r, "slug"), id, currentUser(r).ID)
	if err != nil {
		handleError(w, err, "Failed to load sprint")
		return
	}
	responseWithData(w, http.StatusOK, "Sprint retrieved", sp)
}

func (h *SprintHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSprintInput
	if !decodeBody(w, r, &in) {
		return
	}

	sp, err := h.SprintService.Create(r.Context(), chi.URLParam(r, "slug"), currentUser(r).ID, in)
	if err != nil {
		handleError(w, err, "Failed to create sprint")
		return
	}
	responseWithData(w, http.StatusCreated, "Sprint created", sp)
}

func (h *SprintHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var patch sprint.Patch
	if !decodeBody(w, r, &patch) {
		return
	}

	sp, err := h.SprintService.Update(r.Context(), chi.URLParam(r, "slug"), id, currentUser(r).ID, patch)
	if err != nil {
		handleError(w, err, "Failed to update sprint")
		return
	}
	responseWithData(w, http.StatusOK, "Sprint updated", sp)
}
