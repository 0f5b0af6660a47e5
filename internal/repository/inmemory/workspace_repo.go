package inmemory

import (
	"context"

	"sprintboard/internal/models/workspace"
	repo "sprintboard/internal/repository"
)

func (s *Storage) CreateWorkspace(ctx context.Context, ws *workspace.Workspace) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, existing := range s.workspaces {
		if existing.Slug == ws.Slug {
			return repo.ErrConflict
		}
	}

	now := s.now()
	s.lastWorkspaceID++
	ws.ID = s.lastWorkspaceID
	ws.CreatedAt = now
	ws.UpdatedAt = now

	stored := *ws
	stored.Members = nil
	stored.Owner = nil
	s.workspaces[ws.ID] = &stored
	s.workspaceIDs = append(s.workspaceIDs, ws.ID)
	s.members[ws.ID] = []membership{{userID: ws.OwnerID, role: workspace.RoleOwner, joinedAt: now}}
	return nil
}

func (s *Storage) UpdateWorkspace(ctx context.Context, ws *workspace.Workspace) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.workspaces[ws.ID]
	if !ok {
		return repo.ErrNotFound
	}

	ws.UpdatedAt = s.now()
	existing.Name = ws.Name
	existing.SprintEnabled = ws.SprintEnabled
	existing.SprintDuration = ws.SprintDuration
	existing.UpdatedAt = ws.UpdatedAt
	return nil
}

func (s *Storage) WorkspaceBySlug(ctx context.Context, slug string) (*workspace.Workspace, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, id := range s.workspaceIDs {
		if ws := s.workspaces[id]; ws.Slug == slug {
			found := *ws
			found.MembersCount = len(s.members[id])
			return &found, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *Storage) SlugExists(ctx context.Context, slug string) (bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, ws := range s.workspaces {
		if ws.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *Storage) ListWorkspacesForUser(ctx context.Context, userID int64) ([]*workspace.Workspace, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*workspace.Workspace{}
	for _, id := range s.workspaceIDs {
		for _, m := range s.members[id] {
			if m.userID != userID {
				continue
			}
			found := *s.workspaces[id]
			found.MembersCount = len(s.members[id])
			res = append(res, &found)
			break
		}
	}
	return res, nil
}

func (s *Storage) AddMember(ctx context.Context, workspaceID, userID int64, role workspace.Role) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.workspaces[workspaceID]; !ok {
		return repo.ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return repo.ErrNotFound
	}
	for _, m := range s.members[workspaceID] {
		if m.userID == userID {
			return repo.ErrConflict
		}
	}
	s.members[workspaceID] = append(s.members[workspaceID], membership{userID: userID, role: role, joinedAt: s.now()})
	return nil
}

func (s *Storage) Members(ctx context.Context, workspaceID int64) ([]workspace.Member, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if _, ok := s.workspaces[workspaceID]; !ok {
		return nil, repo.ErrNotFound
	}

	res := make([]workspace.Member, 0, len(s.members[workspaceID]))
	for _, m := range s.members[workspaceID] {
		acc, ok := s.users[m.userID]
		if !ok {
			continue
		}
		res = append(res, workspace.Member{
			ID:       acc.ID,
			Name:     acc.Name,
			Email:    acc.Email,
			Role:     m.role,
			JoinedAt: m.joinedAt,
		})
	}
	return res, nil
}

func (s *Storage) MemberRole(ctx context.Context, workspaceID, userID int64) (workspace.Role, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, m := range s.members[workspaceID] {
		if m.userID == userID {
			return m.role, nil
		}
	}
	return "", repo.ErrNotFound
}
