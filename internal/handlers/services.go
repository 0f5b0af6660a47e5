package handlers

import (
	"context"

	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/task"
	"sprintboard/internal/models/user"
	"sprintboard/internal/models/workspace"
	"sprintboard/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

type WorkspaceService interface {
	List(ctx context.Context, userID int64) ([]*workspace.Workspace, error)
	Get(ctx context.Context, slug string, userID int64) (*workspace.Workspace, error)
	Create(ctx context.Context, userID int64, in workspace.CreateInput) (*workspace.Workspace, error)
	Update(ctx context.Context, slug string, userID int64, in workspace.UpdateInput) (*workspace.Workspace, error)
	AddMember(ctx context.Context, slug string, userID int64, in workspace.AddMemberInput) (*workspace.Member, error)
}

type SprintService interface {
	List(ctx context.Context, slug string, userID int64) ([]*sprint.Sprint, error)
	Get(ctx context.Context, slug string, id, userID int64) (*sprint.Sprint, error)
	Create(ctx context.Context, slug string, userID int64, in service.CreateSprintInput) (*sprint.Sprint, error)
	Update(ctx context.Context, slug string, id, userID int64, patch sprint.Patch) (*sprint.Sprint, error)
}

type TaskService interface {
	List(ctx context.Context, slug string, userID int64, sprintID *int64) ([]*task.Task, error)
	Get(ctx context.Context, slug string, id, userID int64) (*task.Task, error)
	Create(ctx context.Context, slug string, userID int64, in task.CreateInput) (*task.Task, error)
	Update(ctx context.Context, slug string, id, userID int64, patch task.Patch) (*task.Task, error)
	Delete(ctx context.Context, slug string, id, userID int64) error
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

var (
	_ AuthService      = (*service.AuthService)(nil)
	_ WorkspaceService = (*service.WorkspaceService)(nil)
	_ SprintService    = (*service.SprintService)(nil)
	_ TaskService      = (*service.TaskService)(nil)
)
