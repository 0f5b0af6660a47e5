// Package lifecycle derives sprint creation payloads, checks sprint updates and
// computes the read-only sprint metrics.
package lifecycle

import (
	"time"

	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/workspace"
	"sprintboard/internal/validation"
)

const MaxNameLength = validation.MaxNameLength

const (
	msgEndAfterStart   = "must be after start date"
	msgNotInPast       = "cannot be in the past"
	msgEternalNoEnd    = "eternal sprints have no end date"
	msgInvalidStatus   = "must be one of planned, active, completed"
	msgStartRequired   = "Start date is required"
	msgEndRequired     = "End date is required"
	msgPolicyIncorrect = "workspace sprint settings are inconsistent"
)

type Engine struct {
	now func() time.Time
}

// New returns an engine reading "today" from now; nil means time.Now.
func New(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

func (e *Engine) Today() models.Date {
	return models.Today(e.now)
}

// PlanCreation builds the sprint creation payload for ws. A workspace without a
// sprint duration gets an eternal sprint with no end date; otherwise the end date
// is the start date plus the duration.
func (e *Engine) PlanCreation(ws workspace.Workspace, name string, startDate models.Date) (sprint.Plan, error) {
	errs := validation.Errors{}

	name = validation.CheckName(errs, "name", name, "Sprint name")

	if startDate.IsZero() {
		errs.Add("start_date", msgStartRequired)
	} else if startDate.Before(e.Today()) {
		errs.Add("start_date", msgNotInPast)
	}

	if err := validation.ValidatePolicy(validation.PolicyOf(ws)); err != nil {
		errs.Add("workspace", msgPolicyIncorrect)
	}

	if err := errs.OrNil(); err != nil {
		return sprint.Plan{}, err
	}

	plan := sprint.Plan{
		Name:      name,
		StartDate: startDate,
	}
	if ws.IsEternal() {
		plan.IsEternal = true
		return plan, nil
	}

	end := startDate.AddDays(ws.SprintDuration.Days())
	plan.EndDate = &end
	return plan, nil
}

// ValidateUpdate checks a partial update of s. Only fields present in the patch
// are checked and returned.
func (e *Engine) ValidateUpdate(s sprint.Sprint, patch sprint.Patch) (sprint.ValidPatch, error) {
	errs := validation.Errors{}
	today := e.Today()

	if patch.Name.Set {
		name := validation.CheckName(errs, "name", patch.Name.Value, "Sprint name")
		patch.Name = models.Some(name)
	}

	if patch.Status.Set && !patch.Status.Value.Valid() {
		errs.Add("status", msgInvalidStatus)
	}

	if patch.StartDate.IsNull() {
		errs.Add("start_date", msgStartRequired)
	}

	// прошлые даты можно ставить только пока спринт запланирован
	restrictPast := s.Status != sprint.StatusPlanned
	if restrictPast {
		if patch.StartDate.Valid && patch.StartDate.Value.Before(today) {
			errs.Add("start_date", msgNotInPast)
		}
		if patch.EndDate.Valid && patch.EndDate.Value.Before(today) {
			errs.Add("end_date", msgNotInPast)
		}
	}

	if s.IsEternal && patch.EndDate.Valid {
		errs.Add("end_date", msgEternalNoEnd)
	}
	if !s.IsEternal && patch.EndDate.IsNull() {
		errs.Add("end_date", msgEndRequired)
	}

	start := patch.StartDate.Value
	if !patch.StartDate.Valid {
		start = s.StartDate
	}
	end := patch.EndDate.Or(s.EndDate)
	datesTouched := patch.StartDate.Valid || patch.EndDate.Valid
	if datesTouched && !start.IsZero() && end != nil && !EndAfterStart.Check(DateRange{Start: start, End: *end}) {
		errs.Add(EndAfterStart.Field, EndAfterStart.Message)
	}

	if err := errs.OrNil(); err != nil {
		return sprint.ValidPatch{}, err
	}
	return sprint.ValidPatch{Patch: patch}, nil
}

// DateRange is the input of the end-after-start rule.
type DateRange struct {
	Start models.Date
	End   models.Date
}

var EndAfterStart = validation.Rule[DateRange]{
	Name:    "end_date_after_start_date",
	Field:   "end_date",
	Message: msgEndAfterStart,
	Check: func(r DateRange) bool {
		return r.End.After(r.Start)
	},
}

// DeriveMetrics computes the day counters of s as seen on today.
func DeriveMetrics(s sprint.Sprint, today models.Date) sprint.Metrics {
	m := sprint.Metrics{
		DaysElapsed: max(0, s.StartDate.DaysUntil(today)),
	}

	if s.IsEternal || s.EndDate == nil {
		return m
	}

	duration := s.StartDate.DaysUntil(*s.EndDate)
	m.Duration = &duration

	if s.Status == sprint.StatusCompleted {
		return m
	}
	remaining := max(0, today.DaysUntil(*s.EndDate))
	m.DaysRemaining = &remaining
	return m
}

func (e *Engine) DeriveMetrics(s sprint.Sprint) sprint.Metrics {
	return DeriveMetrics(s, e.Today())
}

// NextStatus returns the status s should move to on today, and whether it changes.
// Planned sprints start on their start date; dated sprints complete once their end
// date has passed. Statuses never move backwards.
func NextStatus(s sprint.Sprint, today models.Date) (sprint.Status, bool) {
	next := s.Status
	if next == sprint.StatusPlanned && !today.Before(s.StartDate) {
		next = sprint.StatusActive
	}
	if next == sprint.StatusActive && !s.IsEternal && s.EndDate != nil && today.After(*s.EndDate) {
		next = sprint.StatusCompleted
	}
	return next, next != s.Status
}
