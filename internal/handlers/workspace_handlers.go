package handlers

import (
	"net/http"

	"sprintboard/internal/models/workspace"

	"github.com/go-chi/chi/v5"
)

type WorkspaceHandler struct {
	WorkspaceService WorkspaceService
}

func NewWorkspaceHandler(workspaceService WorkspaceService) WorkspaceHandler {
	return WorkspaceHandler{WorkspaceService: workspaceService}
}

func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.WorkspaceService.List(r.Context(), currentUser(r).ID)
	if err != nil {
		handleError(w, err, "Failed to load workspaces")
		return
	}
	responseWithData(w, http.StatusOK, "Workspaces retrieved", list)
}

func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	ws, err := h.WorkspaceService.Get(r.Context(), chi.URLParam(r, "slug"), currentUser(r).ID)
	if err != nil {
		handleError(w, err, "Failed to load workspace")
		return
	}
	responseWithData(w, http.StatusOK, "Workspace retrieved", ws)
}

func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in workspace.CreateInput
	if !decodeBody(w, r, &in) {
		return
	}

	ws, err := h.WorkspaceService.Create(r.Context(), currentUser(r).ID, in)
	if err != nil {
		handleError(w, err, "Failed to create workspace")
		return
	}
	responseWithData(w, http.StatusCreated, "Workspace created", ws)
}

func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in workspace.UpdateInput
	if !decodeBody(w, r, &in) {
		return
	}

	ws, err := h.WorkspaceService.Update(r.Context(), chi.URLParam(r, "slug"), currentUser(r).ID, in)
	if err != nil {
		handleError(w, err, "Failed to update workspace")
		return
	}
	responseWithData(w, http.StatusOK, "Workspace updated", ws)
}

func (h *WorkspaceHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var in workspace.AddMemberInput
	if !decodeBody(w, r, &in) {
		return
	}

	member, err := h.WorkspaceService.AddMember(r.Context(), chi.URLParam(r, "slug"), currentUser(r).ID, in)
	if err != nil {
		handleError(w, err, "Failed to add member")
		return
	}
	responseWithData(w, http.StatusCreated, "Member added", member)
}
