package service

import (
	"context"
	"errors"
	"fmt"

	"sprintboard/internal/models/workspace"
	rep "sprintboard/internal/repository"
)

type membershipReader interface {
	WorkspaceBySlug(ctx context.Context, slug string) (*workspace.Workspace, error)
	MemberRole(ctx context.Context, workspaceID, userID int64) (workspace.Role, error)
}

// loadWorkspace returns the workspace as seen by userID. Outsiders get the same
// NOT_FOUND as for a missing slug.
func loadWorkspace(ctx context.Context, repo membershipReader, slug string, userID int64) (*workspace.Workspace, error) {
	ws, err := repo.WorkspaceBySlug(ctx, slug)
	if errors.Is(err, rep.ErrNotFound) {
		return nil, NewNotFound("Workspace", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("получение пространства: %w", err)
	}

	memberRole, err := repo.MemberRole(ctx, ws.ID, userID)
	if errors.Is(err, rep.ErrNotFound) {
		return nil, NewNotFound("Workspace", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("получение роли: %w", err)
	}

	ws.IsOwner = memberRole == workspace.RoleOwner
	return ws, nil
}
