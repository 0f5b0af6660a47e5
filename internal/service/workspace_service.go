package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sprintboard/internal/logger"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/user"
	"sprintboard/internal/models/workspace"
	rep "sprintboard/internal/repository"
	"sprintboard/internal/role"
	"sprintboard/internal/validation"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

type WorkspaceRepository interface {
	rep.WorkspaceRepository
	UserByEmail(ctx context.Context, email string) (*user.Account, error)
	ListSprints(ctx context.Context, workspaceID int64) ([]*sprint.Sprint, error)
}

type WorkspaceService struct {
	repo WorkspaceRepository
}

func NewWorkspaceService(repo WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{repo: repo}
}

const maxSlugAttempts = 20

func (s *WorkspaceService) List(ctx context.Context, userID int64) ([]*workspace.Workspace, error) {
	list, err := s.repo.ListWorkspacesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение пространств: %w", err)
	}
	for _, ws := range list {
		ws.IsOwner = ws.OwnerID == userID
	}
	return list, nil
}

// Get returns the workspace with its owner and members.
func (s *WorkspaceService) Get(ctx context.Context, wsSlug string, userID int64) (*workspace.Workspace, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachMembers(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *WorkspaceService) attachMembers(ctx context.Context, ws *workspace.Workspace) error {
	members, err := s.repo.Members(ctx, ws.ID)
	if err != nil {
		return fmt.Errorf("получение участников: %w", err)
	}
	ws.Members = members
	ws.MembersCount = len(members)
	for _, m := range members {
		if m.Role == workspace.RoleOwner {
			ws.Owner = &user.User{ID: m.ID, Name: m.Name, Email: m.Email}
			break
		}
	}
	return nil
}

func (s *WorkspaceService) Create(ctx context.Context, userID int64, in workspace.CreateInput) (*workspace.Workspace, error) {
	in, err := validation.ValidateCreateWorkspace(in)
	if err != nil {
		return nil, asValidation(err)
	}

	base := slug.Make(in.Name)
	if base == "" {
		base = "workspace"
	}

	ws := &workspace.Workspace{
		Name:           in.Name,
		OwnerID:        userID,
		SprintEnabled:  in.SprintEnabled,
		SprintDuration: in.SprintDuration,
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = base + "-" + strconv.Itoa(attempt)
		}

		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("проверка slug: %w", err)
		}
		if exists {
			continue
		}

		ws.Slug = candidate
		err = s.repo.CreateWorkspace(ctx, ws)
		if errors.Is(err, rep.ErrConflict) {
			// slug заняли между проверкой и вставкой
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("создание пространства: %w", err)
		}

		logger.Info("Service: Пространство создано", zap.String("slug", ws.Slug), zap.Int64("owner_id", userID))
		ws.IsOwner = true
		if err := s.attachMembers(ctx, ws); err != nil {
			return nil, err
		}
		return ws, nil
	}
	return nil, NewConflict("Could not allocate a unique workspace slug")
}

func (s *WorkspaceService) Update(ctx context.Context, wsSlug string, userID int64, in workspace.UpdateInput) (*workspace.Workspace, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	if !role.CanManageWorkspace(ws) {
		return nil, NewForbidden("Only the workspace owner can change its settings")
	}

	in, err = validation.ValidateUpdateWorkspace(*ws, in)
	if err != nil {
		return nil, asValidation(err)
	}

	updated := in.Apply(*ws)
	if updated.IsEternal() != ws.IsEternal() {
		if err := s.ensureNoOpenSprints(ctx, ws); err != nil {
			return nil, err
		}
	}
	if err := s.repo.UpdateWorkspace(ctx, &updated); err != nil {
		return nil, fmt.Errorf("обновление пространства: %w", err)
	}
	if err := s.attachMembers(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ensureNoOpenSprints keeps sprints consistent with the workspace policy: dated and
// eternal sprints cannot coexist, so the mode only switches once every sprint is completed.
func (s *WorkspaceService) ensureNoOpenSprints(ctx context.Context, ws *workspace.Workspace) error {
	sprints, err := s.repo.ListSprints(ctx, ws.ID)
	if err != nil {
		return fmt.Errorf("получение спринтов: %w", err)
	}
	for _, sp := range sprints {
		if sp.Status != sprint.StatusCompleted {
			logger.Debug("Service: Смена режима спринтов отклонена", zap.String("slug", ws.Slug), zap.Int64("sprint_id", sp.ID))
			return NewValidationError("sprint_enabled", "Complete the open sprints before switching sprint mode")
		}
	}
	return nil
}

// AddMember invites an existing user as a guest.
func (s *WorkspaceService) AddMember(ctx context.Context, wsSlug string, userID int64, in workspace.AddMemberInput) (*workspace.Member, error) {
	ws, err := loadWorkspace(ctx, s.repo, wsSlug, userID)
	if err != nil {
		return nil, err
	}
	if !role.CanManageWorkspace(ws) {
		return nil, NewForbidden("Only the workspace owner can add members")
	}

	in.Email = strings.TrimSpace(in.Email)
	if errs := validation.Struct(&in); len(errs) > 0 {
		return nil, FromValidation(errs)
	}

	acc, err := s.repo.UserByEmail(ctx, in.Email)
	if errors.Is(err, rep.ErrNotFound) {
		return nil, NewValidationError("email", "No user with this email exists")
	}
	if err != nil {
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	err = s.repo.AddMember(ctx, ws.ID, acc.ID, workspace.RoleGuest)
	if errors.Is(err, rep.ErrConflict) {
		return nil, NewValidationError("email", "This user is already a member")
	}
	if err != nil {
		return nil, fmt.Errorf("добавление участника: %w", err)
	}

	members, err := s.repo.Members(ctx, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("получение участников: %w", err)
	}
	for _, m := range members {
		if m.ID == acc.ID {
			logger.Info("Service: Участник добавлен", zap.String("slug", ws.Slug), zap.Int64("user_id", acc.ID))
			return &m, nil
		}
	}
	return nil, fmt.Errorf("участник %d не найден после добавления: %w", acc.ID, rep.ErrNotFound)
}
