package postgres

import (
	"context"
	"time"

	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const sprintColumns = `id, workspace_id, name, status, start_date, end_date, is_eternal, created_at, updated_at`

func scanSprint(row pgx.Row) (*sprint.Sprint, error) {
	var sp sprint.Sprint
	var start, end pgtype.Date
	err := row.Scan(
		&sp.ID,
		&sp.WorkspaceID,
		&sp.Name,
		&sp.Status,
		&start,
		&end,
		&sp.IsEternal,
		&sp.CreatedAt,
		&sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if d := fromPgDate(start); d != nil {
		sp.StartDate = *d
	}
	sp.EndDate = fromPgDate(end)
	return &sp, nil
}

func collectSprints(rows pgx.Rows) ([]*sprint.Sprint, error) {
	defer rows.Close()

	res := []*sprint.Sprint{}
	for rows.Next() {
		sp, err := scanSprint(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, sp)
	}
	return res, rows.Err()
}

func (s *Storage) CreateSprint(ctx context.Context, sp *sprint.Sprint) error {
	defer s.observe("CreateSprint", time.Now())

	query := `INSERT INTO sprints (workspace_id, name, status, start_date, end_date, is_eternal)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id, created_at, updated_at`

	err := s.pool.QueryRow(ctx, query,
		sp.WorkspaceID,
		sp.Name,
		sp.Status,
		toPgDate(sp.StartDate),
		toPgDatePtr(sp.EndDate),
		sp.IsEternal,
	).Scan(&sp.ID, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		return wrap("добавление спринта", err)
	}
	return nil
}

func (s *Storage) UpdateSprint(ctx context.Context, sp *sprint.Sprint) error {
	defer s.observe("UpdateSprint", time.Now())

	query := `UPDATE sprints
			SET name = $1,
				status = $2,
				start_date = $3,
				end_date = $4,
				updated_at = NOW()
			WHERE id = $5 AND workspace_id = $6
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		sp.Name,
		sp.Status,
		toPgDate(sp.StartDate),
		toPgDatePtr(sp.EndDate),
		sp.ID,
		sp.WorkspaceID,
	).Scan(&sp.UpdatedAt)
	if err != nil {
		return wrap("обновление спринта", err)
	}
	return nil
}

func (s *Storage) SprintByID(ctx context.Context, workspaceID, id int64) (*sprint.Sprint, error) {
	defer s.observe("SprintByID", time.Now())

	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = $1 AND workspace_id = $2`
	sp, err := scanSprint(s.pool.QueryRow(ctx, query, id, workspaceID))
	if err != nil {
		return nil, wrap("получение спринта", err)
	}
	return sp, nil
}

func (s *Storage) ListSprints(ctx context.Context, workspaceID int64) ([]*sprint.Sprint, error) {
	defer s.observe("ListSprints", time.Now())

	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE workspace_id = $1 ORDER BY start_date, id`
	rows, err := s.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, wrap("получение спринтов", err)
	}
	res, err := collectSprints(rows)
	if err != nil {
		return nil, wrap("чтение спринтов", err)
	}
	return res, nil
}

func (s *Storage) ListDueSprints(ctx context.Context, today models.Date, limit int) ([]*sprint.Sprint, error) {
	defer s.observe("ListDueSprints", time.Now())

	query := `SELECT ` + sprintColumns + ` FROM sprints
		WHERE (status = $1 AND start_date <= $3)
		   OR (status = $2 AND NOT is_eternal AND end_date < $3)
		ORDER BY id LIMIT $4`
	rows, err := s.pool.Query(ctx, query, sprint.StatusPlanned, sprint.StatusActive, toPgDate(today), limit)
	if err != nil {
		return nil, wrap("получение открытых спринтов", err)
	}
	res, err := collectSprints(rows)
	if err != nil {
		return nil, wrap("чтение спринтов", err)
	}
	return res, nil
}
