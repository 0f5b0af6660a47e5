package inmemory

import (
	"context"

	"sprintboard/internal/models/task"
	repo "sprintboard/internal/repository"
)

func sameSprint(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *Storage) CreateTask(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.workspaces[t.WorkspaceID]; !ok {
		return repo.ErrNotFound
	}

	order := 0
	for _, existing := range s.tasks {
		if existing.WorkspaceID == t.WorkspaceID && sameSprint(existing.SprintID, t.SprintID) && existing.Order > order {
			order = existing.Order
		}
	}

	now := s.now()
	s.lastTaskID++
	t.ID = s.lastTaskID
	t.Order = order + 1
	t.CreatedAt = now
	t.UpdatedAt = now

	stored := *t
	stored.AssignedToUser, stored.CreatedByUser = nil, nil
	s.tasks[t.ID] = &stored
	s.taskIDs = append(s.taskIDs, t.ID)
	return nil
}

func (s *Storage) UpdateTask(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.tasks[t.ID]
	if !ok || existing.WorkspaceID != t.WorkspaceID {
		return repo.ErrNotFound
	}

	t.UpdatedAt = s.now()
	stored := *t
	stored.AssignedToUser, stored.CreatedByUser = nil, nil
	s.tasks[t.ID] = &stored
	return nil
}

func (s *Storage) TaskByID(ctx context.Context, workspaceID, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.WorkspaceID != workspaceID {
		return nil, repo.ErrNotFound
	}
	found := *t
	return &found, nil
}

func (s *Storage) ListTasks(ctx context.Context, workspaceID int64, sprintID *int64) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.taskIDs {
		t := s.tasks[id]
		if t.WorkspaceID != workspaceID {
			continue
		}
		if sprintID != nil && !sameSprint(t.SprintID, sprintID) {
			continue
		}
		found := *t
		res = append(res, &found)
	}
	return res, nil
}

func (s *Storage) DeleteTask(ctx context.Context, workspaceID, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.WorkspaceID != workspaceID {
		return repo.ErrNotFound
	}
	delete(s.tasks, id)
	s.taskIDs = removeID(s.taskIDs, id)
	return nil
}
