package service

import (
	"context"
	"errors"
	"fmt"

	"sprintboard/internal/lifecycle"
	"sprintboard/internal/logger"
	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/workspace"
	rep "sprintboard/internal/repository"
	"sprintboard/internal/role"

	"go.uber.org/zap"
)

type SprintRepository interface {
	rep.SprintRepository
	WorkspaceBySlug(ctx context.Context, slug string) (*workspace.Workspace, error)
	MemberRole(ctx context.Context, workspaceID, userID int64) (workspace.Role, error)
}

type SprintService struct {
	repo   SprintRepository
	engine *lifecycle.Engine
}

func NewSprintService(repo SprintRepository, engine *lifecycle.Engine) *SprintService {
	if engine == nil {
		engine = lifecycle.New(nil)
	}
	return &SprintService{repo: repo, engine: engine}
}

// CreateSprintInput is the creation request. The end date and eternity are
// always derived from the workspace policy, whatever the caller sent.
type CreateSprintInput struct {
	Name      string      `json:"name"`
	StartDate models.Date `json:"start_date"`
}

func (s *SprintService) withMetrics(sp *sprint.Sprint) *sprint.Sprint {
	out := sp.WithMetrics(s.engine.DeriveMetrics(*sp))
	return &out
}

func (s *SprintService) List(ctx context.Context, wsSlug string, userID int64) ([]*sprint.Sprint, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.ListSprints(ctx, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("получение спринтов: %w", err)
	}
	for i, sp := range list {
		list[i] = s.withMetrics(sp)
	}
	return list, nil
}

func (s *SprintService) Get(ctx context.Context, wsSlug string, id, userID int64) (*sprint.Sprint, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	sp, err := s.find(ctx, ws.ID, id)
	if err != nil {
		return nil, err
	}
	return s.withMetrics(sp), nil
}

func (s *SprintService) find(ctx context.Context, workspaceID, id int64) (*sprint.Sprint, error) {
	sp, err := s.repo.SprintByID(ctx, workspaceID, id)
	if errors.Is(err, rep.ErrNotFound) {
		return nil, NewNotFound("Sprint", id)
	}
	if err != nil {
		return nil, fmt.Errorf("получение спринта: %w", err)
	}
	return sp, nil
}

func (s *SprintService) Create(ctx context.Context, wsSlug string, userID int64, in CreateSprintInput) (*sprint.Sprint, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	if !role.CanManageSprints(ws) {
		return nil, NewForbidden("Only the workspace owner can create sprints")
	}

	plan, err := s.engine.PlanCreation(*ws, in.Name, in.StartDate)
	if err != nil {
		return nil, asValidation(err)
	}

	sp := &sprint.Sprint{
		WorkspaceID: ws.ID,
		Name:        plan.Name,
		Status:      sprint.StatusPlanned,
		StartDate:   plan.StartDate,
		EndDate:     plan.EndDate,
		IsEternal:   plan.IsEternal,
	}
	// спринт, начинающийся сегодня, сразу активен
	if next, changed := lifecycle.NextStatus(*sp, s.engine.Today()); changed {
		sp.Status = next
	}

	if err := s.repo.CreateSprint(ctx, sp); err != nil {
		return nil, fmt.Errorf("создание спринта: %w", err)
	}
	logger.Info("Service: Спринт создан", zap.Int64("sprint_id", sp.ID), zap.String("slug", ws.Slug))
	return s.withMetrics(sp), nil
}

func (s *SprintService) Update(ctx context.Context, wsSlug string, id, userID int64, patch sprint.Patch) (*sprint.Sprint, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	if !role.CanManageSprints(ws) {
		return nil, NewForbidden("Only the workspace owner can edit sprints")
	}

	sp, err := s.find(ctx, ws.ID, id)
	if err != nil {
		return nil, err
	}

	valid, err := s.engine.ValidateUpdate(*sp, patch)
	if err != nil {
		return nil, asValidation(err)
	}
	valid.Apply(sp)

	if err := s.repo.UpdateSprint(ctx, sp); err != nil {
		return nil, fmt.Errorf("обновление спринта: %w", err)
	}
	return s.withMetrics(sp), nil
}
