// Package repository declares the storage contracts shared by the in-memory and
// PostgreSQL stores.
package repository

import (
	"context"
	"time"

	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/task"
	"sprintboard/internal/models/user"
	"sprintboard/internal/models/workspace"
)

type UserRepository interface {
	CreateUser(ctx context.Context, account *user.Account) error
	UserByEmail(ctx context.Context, email string) (*user.Account, error)
	UserByID(ctx context.Context, id int64) (*user.User, error)
}

type TokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	// UserByToken fails with ErrNotFound for unknown and expired tokens.
	UserByToken(ctx context.Context, token string, now time.Time) (*user.User, error)
	DeleteToken(ctx context.Context, token string) error
}

type WorkspaceRepository interface {
	// CreateWorkspace stores ws and makes its owner a member with the owner role.
	CreateWorkspace(ctx context.Context, ws *workspace.Workspace) error
	UpdateWorkspace(ctx context.Context, ws *workspace.Workspace) error
	WorkspaceBySlug(ctx context.Context, slug string) (*workspace.Workspace, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListWorkspacesForUser(ctx context.Context, userID int64) ([]*workspace.Workspace, error)

	AddMember(ctx context.Context, workspaceID, userID int64, role workspace.Role) error
	Members(ctx context.Context, workspaceID int64) ([]workspace.Member, error)
	// MemberRole fails with ErrNotFound when the user is not a member.
	MemberRole(ctx context.Context, workspaceID, userID int64) (workspace.Role, error)
}

type SprintRepository interface {
	CreateSprint(ctx context.Context, s *sprint.Sprint) error
	UpdateSprint(ctx context.Context, s *sprint.Sprint) error
	SprintByID(ctx context.Context, workspaceID, id int64) (*sprint.Sprint, error)
	ListSprints(ctx context.Context, workspaceID int64) ([]*sprint.Sprint, error)
	// ListDueSprints returns up to limit sprints whose status should change on
	// today: planned ones that have started and dated active ones that have ended.
	ListDueSprints(ctx context.Context, today models.Date, limit int) ([]*sprint.Sprint, error)
}

type TaskRepository interface {
	// CreateTask assigns the ID and places the task last in its sprint.
	CreateTask(ctx context.Context, t *task.Task) error
	UpdateTask(ctx context.Context, t *task.Task) error
	TaskByID(ctx context.Context, workspaceID, id int64) (*task.Task, error)
	// ListTasks returns the tasks of a workspace, narrowed to one sprint when sprintID is set.
	ListTasks(ctx context.Context, workspaceID int64, sprintID *int64) ([]*task.Task, error)
	DeleteTask(ctx context.Context, workspaceID, id int64) error
}

type Store interface {
	UserRepository
	TokenRepository
	WorkspaceRepository
	SprintRepository
	TaskRepository

	HealthCheck(ctx context.Context) error
}
