package task

import (
	"time"

	"sprintboard/internal/models"
	"sprintboard/internal/models/user"
)

type Task struct {
	ID          int64        `json:"id" db:"id"`
	WorkspaceID int64        `json:"workspace_id" db:"workspace_id"`
	SprintID    *int64       `json:"sprint_id" db:"sprint_id"`
	Title       string       `json:"title" db:"title"`
	Description *string      `json:"description" db:"description"`
	Status      Status       `json:"status" db:"status"`
	DueDate     *models.Date `json:"due_date" db:"due_date"`
	AssignedTo  *int64       `json:"assigned_to" db:"assigned_to"`
	Order       int          `json:"order" db:"position"`
	CreatedBy   int64        `json:"created_by" db:"created_by"`
	CompletedAt *time.Time   `json:"completed_at" db:"completed_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`

	AssignedToUser *user.User `json:"assigned_to_user,omitempty" db:"-"`
	CreatedByUser  *user.User `json:"created_by_user,omitempty" db:"-"`
}

type Status string

const StatusBacklog Status = "backlog"
const StatusTodo Status = "todo"
const StatusInProgress Status = "in_progress"
const StatusDone Status = "done"

// Statuses lists the kanban columns in display order.
var Statuses = []Status{StatusBacklog, StatusTodo, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Patch is a proposed task mutation. Absent fields keep their current value,
// an explicit null clears nullable fields.
type Patch struct {
	Title       models.Nullable[string]      `json:"title,omitzero"`
	Description models.Nullable[string]      `json:"description,omitzero"`
	Status      models.Nullable[Status]      `json:"status,omitzero"`
	AssignedTo  models.Nullable[int64]       `json:"assigned_to,omitzero"`
	DueDate     models.Nullable[models.Date] `json:"due_date,omitzero"`
	SprintID    models.Nullable[int64]       `json:"sprint_id,omitzero"`
}

// NormalizedPatch is a validated mutation ready for dispatch. Status and
// AssignedTo always carry the effective values after the coupling rule.
type NormalizedPatch struct {
	Title       models.Nullable[string]      `json:"title,omitzero"`
	Description models.Nullable[string]      `json:"description,omitzero"`
	Status      Status                       `json:"status"`
	AssignedTo  *int64                       `json:"assigned_to"`
	DueDate     models.Nullable[models.Date] `json:"due_date,omitzero"`
	SprintID    models.Nullable[int64]       `json:"sprint_id,omitzero"`
}

// Apply writes the normalized patch onto t.
func (p NormalizedPatch) Apply(t *Task) {
	if p.Title.Valid {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Ptr()
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Ptr()
	}
	if p.SprintID.Set {
		t.SprintID = p.SprintID.Ptr()
	}
	t.Status = p.Status
	t.AssignedTo = p.AssignedTo
}

// CreateInput carries the fields of a new task.
type CreateInput struct {
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      Status       `json:"status"`
	SprintID    *int64       `json:"sprint_id"`
	AssignedTo  *int64       `json:"assigned_to"`
	DueDate     *models.Date `json:"due_date"`
}
