// Package role answers which actions the current user may take in a workspace.
// The answers only gate what the client offers; the API makes the final decision.
package role

import (
	"slices"

	"sprintboard/internal/models/task"
	"sprintboard/internal/models/workspace"
)

type Role string

const Owner Role = Role(workspace.RoleOwner)
const Guest Role = Role(workspace.RoleGuest)
const None Role = ""

func (r Role) String() string {
	if r == None {
		return "none"
	}
	return string(r)
}

// Resolve derives the role from the workspace snapshot. A nil workspace means
// there is no workspace context.
func Resolve(ws *workspace.Workspace) Role {
	switch {
	case ws == nil:
		return None
	case ws.IsOwner:
		return Owner
	default:
		return Guest
	}
}

// HasRole reports whether r is one of allowed. No role never matches.
func HasRole(r Role, allowed ...Role) bool {
	if r == None {
		return false
	}
	return slices.Contains(allowed, r)
}

func CanManageWorkspace(ws *workspace.Workspace) bool {
	return HasRole(Resolve(ws), Owner)
}

func CanManageSprints(ws *workspace.Workspace) bool {
	return HasRole(Resolve(ws), Owner)
}

func CanCreateTask(ws *workspace.Workspace) bool {
	return HasRole(Resolve(ws), Owner, Guest)
}

// CanMutateTask allows the owner, the creator and the assignee.
func CanMutateTask(ws *workspace.Workspace, t task.Task, userID int64) bool {
	r := Resolve(ws)
	if HasRole(r, Owner) {
		return true
	}
	if !HasRole(r, Guest) {
		return false
	}
	return t.CreatedBy == userID || (t.AssignedTo != nil && *t.AssignedTo == userID)
}

// CanDeleteTask allows the owner and the creator.
func CanDeleteTask(ws *workspace.Workspace, t task.Task, userID int64) bool {
	r := Resolve(ws)
	if HasRole(r, Owner) {
		return true
	}
	return HasRole(r, Guest) && t.CreatedBy == userID
}
