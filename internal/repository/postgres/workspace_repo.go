package postgres

import (
	"context"
	"fmt"
	"time"

	"sprintboard/internal/models/workspace"
	repo "sprintboard/internal/repository"

	"github.com/jackc/pgx/v5"
)

const workspaceColumns = `w.id, w.name, w.slug, w.owner_id, w.sprint_enabled, w.sprint_duration,
	w.created_at, w.updated_at,
	(SELECT COUNT(*) FROM workspace_members m WHERE m.workspace_id = w.id)`

func scanWorkspace(row pgx.Row) (*workspace.Workspace, error) {
	var ws workspace.Workspace
	var duration *string
	err := row.Scan(
		&ws.ID,
		&ws.Name,
		&ws.Slug,
		&ws.OwnerID,
		&ws.SprintEnabled,
		&duration,
		&ws.CreatedAt,
		&ws.UpdatedAt,
		&ws.MembersCount,
	)
	if err != nil {
		return nil, err
	}
	if duration != nil {
		ws.SprintDuration = workspace.SprintDuration(*duration)
	}
	return &ws, nil
}

func durationParam(d workspace.SprintDuration) *string {
	if d == workspace.DurationNone {
		return nil
	}
	v := string(d)
	return &v
}

func (s *Storage) CreateWorkspace(ctx context.Context, ws *workspace.Workspace) error {
	defer s.observe("CreateWorkspace", time.Now())

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return wrap("начало транзакции", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO workspaces (name, slug, owner_id, sprint_enabled, sprint_duration)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, query, ws.Name, ws.Slug, ws.OwnerID, ws.SprintEnabled, durationParam(ws.SprintDuration)).
		Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return wrap("добавление пространства", err)
	}

	_, err = tx.Exec(ctx, `INSERT INTO workspace_members (workspace_id, user_id, role) VALUES ($1, $2, $3)`,
		ws.ID, ws.OwnerID, workspace.RoleOwner)
	if err != nil {
		return wrap("добавление владельца", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrap("фиксация транзакции", err)
	}
	return nil
}

func (s *Storage) UpdateWorkspace(ctx context.Context, ws *workspace.Workspace) error {
	defer s.observe("UpdateWorkspace", time.Now())

	query := `UPDATE workspaces
			SET name = $1,
				sprint_enabled = $2,
				sprint_duration = $3,
				updated_at = NOW()
			WHERE id = $4
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query, ws.Name, ws.SprintEnabled, durationParam(ws.SprintDuration), ws.ID).Scan(&ws.UpdatedAt)
	if err != nil {
		return wrap("обновление пространства", err)
	}
	return nil
}

func (s *Storage) WorkspaceBySlug(ctx context.Context, slug string) (*workspace.Workspace, error) {
	defer s.observe("WorkspaceBySlug", time.Now())

	ws, err := scanWorkspace(s.pool.QueryRow(ctx, `SELECT `+workspaceColumns+` FROM workspaces w WHERE w.slug = $1`, slug))
	if err != nil {
		return nil, wrap("получение пространства", err)
	}
	return ws, nil
}

func (s *Storage) SlugExists(ctx context.Context, slug string) (bool, error) {
	defer s.observe("SlugExists", time.Now())

	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM workspaces WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, wrap("проверка slug", err)
	}
	return exists, nil
}

func (s *Storage) ListWorkspacesForUser(ctx context.Context, userID int64) ([]*workspace.Workspace, error) {
	defer s.observe("ListWorkspacesForUser", time.Now())

	query := `SELECT ` + workspaceColumns + `
				FROM workspaces w
				JOIN workspace_members wm ON wm.workspace_id = w.id
				WHERE wm.user_id = $1
				ORDER BY w.id`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, wrap("получение пространств", err)
	}
	defer rows.Close()

	res := []*workspace.Workspace{}
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, wrap("чтение пространства", err)
		}
		res = append(res, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("итерация пространств", err)
	}
	return res, nil
}

func (s *Storage) AddMember(ctx context.Context, workspaceID, userID int64, role workspace.Role) error {
	defer s.observe("AddMember", time.Now())

	_, err := s.pool.Exec(ctx, `INSERT INTO workspace_members (workspace_id, user_id, role) VALUES ($1, $2, $3)`,
		workspaceID, userID, role)
	if err != nil {
		return wrap("добавление участника", err)
	}
	return nil
}

func (s *Storage) Members(ctx context.Context, workspaceID int64) ([]workspace.Member, error) {
	defer s.observe("Members", time.Now())

	query := `SELECT u.id, u.name, u.email, wm.role, wm.joined_at
				FROM workspace_members wm
				JOIN users u ON u.id = wm.user_id
				WHERE wm.workspace_id = $1
				ORDER BY wm.joined_at, u.id`

	rows, err := s.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, wrap("получение участников", err)
	}

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (workspace.Member, error) {
		var m workspace.Member
		err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.JoinedAt)
		return m, err
	})
	if err != nil {
		return nil, wrap("чтение участников", err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("участники пространства %d: %w", workspaceID, repo.ErrNotFound)
	}
	return members, nil
}

func (s *Storage) MemberRole(ctx context.Context, workspaceID, userID int64) (workspace.Role, error) {
	defer s.observe("MemberRole", time.Now())

	var role workspace.Role
	err := s.pool.QueryRow(ctx, `SELECT role FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, userID).Scan(&role)
	if err != nil {
		return "", wrap("получение роли", err)
	}
	return role, nil
}
