package inmemory

import (
	"cmp"
	"context"
	"slices"

	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"
	repo "sprintboard/internal/repository"
)

func (s *Storage) CreateSprint(ctx context.Context, sp *sprint.Sprint) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.workspaces[sp.WorkspaceID]; !ok {
		return repo.ErrNotFound
	}

	now := s.now()
	s.lastSprintID++
	sp.ID = s.lastSprintID
	sp.CreatedAt = now
	sp.UpdatedAt = now

	stored := *sp
	s.sprints[sp.ID] = &stored
	s.sprintIDs = append(s.sprintIDs, sp.ID)
	return nil
}

func (s *Storage) UpdateSprint(ctx context.Context, sp *sprint.Sprint) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.sprints[sp.ID]
	if !ok || existing.WorkspaceID != sp.WorkspaceID {
		return repo.ErrNotFound
	}

	sp.UpdatedAt = s.now()
	stored := *sp
	stored.DaysElapsed, stored.DaysRemaining, stored.Duration = nil, nil, nil
	s.sprints[sp.ID] = &stored
	return nil
}

func (s *Storage) SprintByID(ctx context.Context, workspaceID, id int64) (*sprint.Sprint, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	sp, ok := s.sprints[id]
	if !ok || sp.WorkspaceID != workspaceID {
		return nil, repo.ErrNotFound
	}
	found := *sp
	return &found, nil
}

func (s *Storage) ListSprints(ctx context.Context, workspaceID int64) ([]*sprint.Sprint, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*sprint.Sprint{}
	for _, id := range s.sprintIDs {
		if sp := s.sprints[id]; sp.WorkspaceID == workspaceID {
			found := *sp
			res = append(res, &found)
		}
	}
	slices.SortStableFunc(res, func(a, b *sprint.Sprint) int {
		return cmp.Or(a.StartDate.Time().Compare(b.StartDate.Time()), cmp.Compare(a.ID, b.ID))
	})
	return res, nil
}

func (s *Storage) ListDueSprints(ctx context.Context, today models.Date, limit int) ([]*sprint.Sprint, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*sprint.Sprint{}
	for _, id := range s.sprintIDs {
		if len(res) >= limit {
			break
		}
		if sp := s.sprints[id]; dueOn(sp, today) {
			found := *sp
			res = append(res, &found)
		}
	}
	return res, nil
}

func dueOn(sp *sprint.Sprint, today models.Date) bool {
	switch sp.Status {
	case sprint.StatusPlanned:
		return !sp.StartDate.After(today)
	case sprint.StatusActive:
		return !sp.IsEternal && sp.EndDate != nil && sp.EndDate.Before(today)
	}
	return false
}
