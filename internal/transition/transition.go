// Package transition checks task mutations against the status/assignee coupling
// and produces the normalized payload sent to the API.
package transition

import (
	"strings"
	"unicode/utf8"

	"sprintboard/internal/models"
	"sprintboard/internal/models/task"
	"sprintboard/internal/validation"
)

const MaxTitleLength = validation.MaxNameLength
const MaxDescriptionLength = 5000

const (
	msgAssigneeRequired = "required unless status is backlog"
	msgInvalidStatus    = "must be one of backlog, todo, in_progress, done"
)

// ValidateMutation resolves the effective status and assignee of current after
// patch. Moving a task to backlog always clears its assignee; any other status
// needs one.
func ValidateMutation(current task.Task, patch task.Patch) (task.NormalizedPatch, error) {
	errs := validation.Errors{}
	out := task.NormalizedPatch{
		DueDate:  patch.DueDate,
		SprintID: patch.SprintID,
	}

	if patch.Title.Set {
		title := validation.CheckName(errs, "title", patch.Title.Value, "Title")
		out.Title = models.Some(title)
	}

	if patch.Description.Set {
		out.Description = normalizeDescription(errs, patch.Description)
	}

	status := current.Status
	if patch.Status.Set {
		status = patch.Status.Value
	}
	if !status.Valid() {
		errs.Add("status", msgInvalidStatus)
	}
	out.Status = status

	assignee := patch.AssignedTo.Or(current.AssignedTo)
	if patch.Status.Set && status == task.StatusBacklog {
		assignee = nil
	}
	if status != task.StatusBacklog && assignee == nil {
		errs.Add("assigned_to", msgAssigneeRequired)
	}
	out.AssignedTo = assignee

	if err := errs.OrNil(); err != nil {
		return task.NormalizedPatch{}, err
	}
	return out, nil
}

// ValidateCreation applies the mutation rules to a new task. The status defaults to todo.
func ValidateCreation(in task.CreateInput) (task.NormalizedPatch, error) {
	status := in.Status
	if status == "" {
		status = task.StatusTodo
	}
	patch := task.Patch{
		Title:      models.Some(in.Title),
		Status:     models.Some(status),
		AssignedTo: models.FromPtr(in.AssignedTo),
	}
	if in.Description != nil {
		patch.Description = models.Some(*in.Description)
	}
	if in.DueDate != nil {
		patch.DueDate = models.Some(*in.DueDate)
	}
	if in.SprintID != nil {
		patch.SprintID = models.Some(*in.SprintID)
	}
	return ValidateMutation(task.Task{}, patch)
}

func normalizeDescription(errs validation.Errors, d models.Nullable[string]) models.Nullable[string] {
	if !d.Valid {
		return d
	}
	trimmed := strings.TrimSpace(d.Value)
	if trimmed == "" {
		return models.Null[string]()
	}
	if utf8.RuneCountInString(trimmed) > MaxDescriptionLength {
		errs.Add("description", "Description cannot exceed 5000 characters")
	}
	return models.Some(trimmed)
}
