package postgres

import (
	"context"
	"time"

	"sprintboard/internal/models/task"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const taskColumns = `id, workspace_id, sprint_id, title, description, status, due_date, assigned_to,
	position, created_by, completed_at, created_at, updated_at`

func scanTask(row pgx.Row) (*task.Task, error) {
	var t task.Task
	var due pgtype.Date
	err := row.Scan(
		&t.ID,
		&t.WorkspaceID,
		&t.SprintID,
		&t.Title,
		&t.Description,
		&t.Status,
		&due,
		&t.AssignedTo,
		&t.Order,
		&t.CreatedBy,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.DueDate = fromPgDate(due)
	return &t, nil
}

func (s *Storage) CreateTask(ctx context.Context, t *task.Task) error {
	defer s.observe("CreateTask", time.Now())

	query := `INSERT INTO tasks
				(workspace_id, sprint_id, title, description, status, due_date, assigned_to, position, created_by, completed_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7,
					(SELECT COALESCE(MAX(position), 0) + 1 FROM tasks
						WHERE workspace_id = $1 AND sprint_id IS NOT DISTINCT FROM $2),
					$8, $9)
				RETURNING id, position, created_at, updated_at`

	err := s.pool.QueryRow(ctx, query,
		t.WorkspaceID,
		t.SprintID,
		t.Title,
		t.Description,
		t.Status,
		toPgDatePtr(t.DueDate),
		t.AssignedTo,
		t.CreatedBy,
		t.CompletedAt,
	).Scan(&t.ID, &t.Order, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return wrap("добавление задачи", err)
	}
	return nil
}

func (s *Storage) UpdateTask(ctx context.Context, t *task.Task) error {
	defer s.observe("UpdateTask", time.Now())

	query := `UPDATE tasks
			SET sprint_id = $1,
				title = $2,
				description = $3,
				status = $4,
				due_date = $5,
				assigned_to = $6,
				completed_at = $7,
				updated_at = NOW()
			WHERE id = $8 AND workspace_id = $9
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		t.SprintID,
		t.Title,
		t.Description,
		t.Status,
		toPgDatePtr(t.DueDate),
		t.AssignedTo,
		t.CompletedAt,
		t.ID,
		t.WorkspaceID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		return wrap("обновление задачи", err)
	}
	return nil
}

func (s *Storage) TaskByID(ctx context.Context, workspaceID, id int64) (*task.Task, error) {
	defer s.observe("TaskByID", time.Now())

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND workspace_id = $2`
	t, err := scanTask(s.pool.QueryRow(ctx, query, id, workspaceID))
	if err != nil {
		return nil, wrap("получение задачи", err)
	}
	return t, nil
}

func (s *Storage) ListTasks(ctx context.Context, workspaceID int64, sprintID *int64) ([]*task.Task, error) {
	defer s.observe("ListTasks", time.Now())

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE workspace_id = $1 AND ($2::BIGINT IS NULL OR sprint_id = $2)
				ORDER BY id`

	rows, err := s.pool.Query(ctx, query, workspaceID, sprintID)
	if err != nil {
		return nil, wrap("получение задач", err)
	}
	defer rows.Close()

	res := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, wrap("чтение задачи", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("итерация задач", err)
	}
	return res, nil
}

func (s *Storage) DeleteTask(ctx context.Context, workspaceID, id int64) error {
	defer s.observe("DeleteTask", time.Now())

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND workspace_id = $2`, id, workspaceID)
	if err != nil {
		return wrap("удаление задачи", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("удаление задачи", pgx.ErrNoRows)
	}
	return nil
}
