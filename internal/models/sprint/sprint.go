package sprint

import (
	"time"

	"sprintboard/internal/models"
)

type Sprint struct {
	ID          int64        `json:"id" db:"id"`
	WorkspaceID int64        `json:"workspace_id" db:"workspace_id"`
	Name        string       `json:"name" db:"name"`
	Status      Status       `json:"status" db:"status"`
	StartDate   models.Date  `json:"start_date" db:"start_date"`
	EndDate     *models.Date `json:"end_date" db:"end_date"`
	IsEternal   bool         `json:"is_eternal" db:"is_eternal"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`

	// вычисляемые поля, в базе не хранятся
	DaysRemaining *int `json:"days_remaining,omitempty" db:"-"`
	DaysElapsed   *int `json:"days_elapsed,omitempty" db:"-"`
	Duration      *int `json:"duration,omitempty" db:"-"`
}

type Status string

const StatusPlanned Status = "planned"
const StatusActive Status = "active"
const StatusCompleted Status = "completed"

func (s Status) Valid() bool {
	return s == StatusPlanned || s == StatusActive || s == StatusCompleted
}

// Rank orders statuses along the planned -> active -> completed lifecycle.
func (s Status) Rank() int {
	switch s {
	case StatusPlanned:
		return 0
	case StatusActive:
		return 1
	case StatusCompleted:
		return 2
	default:
		return -1
	}
}

// Plan is the creation payload derived from user input and workspace policy.
type Plan struct {
	Name      string       `json:"name"`
	StartDate models.Date  `json:"start_date"`
	EndDate   *models.Date `json:"end_date"`
	IsEternal bool         `json:"is_eternal"`
}

// Patch is a partial sprint update. Absent fields stay untouched.
type Patch struct {
	Name      models.Nullable[string]      `json:"name,omitzero"`
	Status    models.Nullable[Status]      `json:"status,omitzero"`
	StartDate models.Nullable[models.Date] `json:"start_date,omitzero"`
	EndDate   models.Nullable[models.Date] `json:"end_date,omitzero"`
}

// ValidPatch is a Patch that passed the lifecycle rules, with the name trimmed.
type ValidPatch struct {
	Patch
}

// Apply writes the patch onto s.
func (p ValidPatch) Apply(s *Sprint) {
	if p.Name.Valid {
		s.Name = p.Name.Value
	}
	if p.Status.Valid {
		s.Status = p.Status.Value
	}
	if p.StartDate.Valid {
		s.StartDate = p.StartDate.Value
	}
	if p.EndDate.Set {
		s.EndDate = p.EndDate.Ptr()
	}
}

type Metrics struct {
	DaysElapsed   int  `json:"days_elapsed"`
	DaysRemaining *int `json:"days_remaining"`
	Duration      *int `json:"duration"`
}

// WithMetrics returns a copy of s carrying the derived fields.
func (s Sprint) WithMetrics(m Metrics) Sprint {
	elapsed := m.DaysElapsed
	s.DaysElapsed = &elapsed
	s.DaysRemaining = m.DaysRemaining
	s.Duration = m.Duration
	return s
}
