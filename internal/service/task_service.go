package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sprintboard/internal/logger"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/task"
	"sprintboard/internal/models/user"
	"sprintboard/internal/models/workspace"
	rep "sprintboard/internal/repository"
	"sprintboard/internal/role"
	"sprintboard/internal/transition"
	"sprintboard/internal/validation"

	"go.uber.org/zap"
)

type TaskRepository interface {
	rep.TaskRepository
	WorkspaceBySlug(ctx context.Context, slug string) (*workspace.Workspace, error)
	MemberRole(ctx context.Context, workspaceID, userID int64) (workspace.Role, error)
	Members(ctx context.Context, workspaceID int64) ([]workspace.Member, error)
	SprintByID(ctx context.Context, workspaceID, id int64) (*sprint.Sprint, error)
}

type TaskService struct {
	repo TaskRepository
	now  func() time.Time
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

// memberIndex maps user ids of a workspace to their public profile.
type memberIndex map[int64]user.User

func (s *TaskService) members(ctx context.Context, workspaceID int64) (memberIndex, error) {
	members, err := s.repo.Members(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("получение участников: %w", err)
	}
	idx := make(memberIndex, len(members))
	for _, m := range members {
		idx[m.ID] = user.User{ID: m.ID, Name: m.Name, Email: m.Email}
	}
	return idx, nil
}

func (idx memberIndex) hydrate(t *task.Task) {
	t.AssignedToUser, t.CreatedByUser = nil, nil
	if t.AssignedTo != nil {
		if u, ok := idx[*t.AssignedTo]; ok {
			t.AssignedToUser = &u
		}
	}
	if u, ok := idx[t.CreatedBy]; ok {
		t.CreatedByUser = &u
	}
}

func (s *TaskService) List(ctx context.Context, wsSlug string, userID int64, sprintID *int64) ([]*task.Task, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	if sprintID != nil {
		if err := s.checkSprint(ctx, ws.ID, *sprintID, false); err != nil {
			return nil, err
		}
	}

	tasks, err := s.repo.ListTasks(ctx, ws.ID, sprintID)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	idx, err := s.members(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		idx.hydrate(t)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, wsSlug string, id, userID int64) (*task.Task, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	t, err := s.find(ctx, ws.ID, id)
	if err != nil {
		return nil, err
	}
	idx, err := s.members(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	idx.hydrate(t)
	return t, nil
}

func (s *TaskService) find(ctx context.Context, workspaceID, id int64) (*task.Task, error) {
	t, err := s.repo.TaskByID(ctx, workspaceID, id)
	if errors.Is(err, rep.ErrNotFound) {
		return nil, NewNotFound("Task", id)
	}
	if err != nil {
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

// checkSprint reports a missing sprint as NOT_FOUND when listing and as a field
// error when the id comes from a task payload.
func (s *TaskService) checkSprint(ctx context.Context, workspaceID, sprintID int64, asField bool) error {
	_, err := s.repo.SprintByID(ctx, workspaceID, sprintID)
	if errors.Is(err, rep.ErrNotFound) {
		if asField {
			return NewValidationError("sprint_id", "The selected sprint is invalid.")
		}
		return NewNotFound("Sprint", sprintID)
	}
	if err != nil {
		return fmt.Errorf("получение спринта: %w", err)
	}
	return nil
}

func checkAssignee(idx memberIndex, assignee *int64) error {
	if assignee == nil {
		return nil
	}
	if _, ok := idx[*assignee]; !ok {
		return FromValidation(validation.New("assigned_to", "The assignee must be a workspace member."))
	}
	return nil
}

// stampCompletion keeps completed_at in step with the done status.
func (s *TaskService) stampCompletion(t *task.Task, previous task.Status) {
	switch {
	case t.Status == task.StatusDone && previous != task.StatusDone:
		now := s.now()
		t.CompletedAt = &now
	case t.Status != task.StatusDone:
		t.CompletedAt = nil
	}
}

func (s *TaskService) Create(ctx context.Context, wsSlug string, userID int64, in task.CreateInput) (*task.Task, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	if !role.CanCreateTask(ws) {
		return nil, NewForbidden("You cannot create tasks in this workspace")
	}

	normalized, err := transition.ValidateCreation(in)
	if err != nil {
		return nil, asValidation(err)
	}

	idx, err := s.members(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	if err := checkAssignee(idx, normalized.AssignedTo); err != nil {
		return nil, err
	}
	if normalized.SprintID.Valid {
		if err := s.checkSprint(ctx, ws.ID, normalized.SprintID.Value, true); err != nil {
			return nil, err
		}
	}

	t := &task.Task{WorkspaceID: ws.ID, CreatedBy: userID}
	normalized.Apply(t)
	s.stampCompletion(t, "")

	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}
	logger.Info("Service: Задача создана", zap.Int64("task_id", t.ID), zap.String("slug", ws.Slug))
	idx.hydrate(t)
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, wsSlug string, id, userID int64, patch task.Patch) (*task.Task, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	t, err := s.find(ctx, ws.ID, id)
	if err != nil {
		return nil, err
	}
	if !role.CanMutateTask(ws, *t, userID) {
		return nil, NewForbidden("You can only edit tasks you created or are assigned to")
	}

	normalized, err := transition.ValidateMutation(*t, patch)
	if err != nil {
		return nil, asValidation(err)
	}

	idx, err := s.members(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	if err := checkAssignee(idx, normalized.AssignedTo); err != nil {
		return nil, err
	}
	if normalized.SprintID.Valid {
		if err := s.checkSprint(ctx, ws.ID, normalized.SprintID.Value, true); err != nil {
			return nil, err
		}
	}

	previous := t.Status
	normalized.Apply(t)
	s.stampCompletion(t, previous)

	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	idx.hydrate(t)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, wsSlug string, id, userID int64) error {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return err
	}
	t, err := s.find(ctx, ws.ID, id)
	if err != nil {
		return err
	}
	if !role.CanDeleteTask(ws, *t, userID) {
		return NewForbidden("Only the workspace owner or the task creator can delete it")
	}

	if err := s.repo.DeleteTask(ctx, ws.ID, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound("Task", id)
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}
	logger.Info("Service: Задача удалена", zap.Int64("task_id", id), zap.Int64("user_id", userID))
	return nil
}
