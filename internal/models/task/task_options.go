package task

import (
	"sprintboard/internal/models"
)

// PatchOption sets one field of a Patch.
type PatchOption func(*Patch)

func NewPatch(options ...PatchOption) Patch {
	var p Patch
	for _, opt := range options {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

func WithTitle(title string) PatchOption {
	return func(p *Patch) {
		p.Title = models.Some(title)
	}
}

// WithDescription clears the description when given an empty string.
func WithDescription(description string) PatchOption {
	return func(p *Patch) {
		if description == "" {
			p.Description = models.Null[string]()
			return
		}
		p.Description = models.Some(description)
	}
}

func WithStatus(status Status) PatchOption {
	if status == "" {
		return nil
	}
	return func(p *Patch) {
		p.Status = models.Some(status)
	}
}

func WithAssignee(userID int64) PatchOption {
	return func(p *Patch) {
		p.AssignedTo = models.Some(userID)
	}
}

func WithoutAssignee() PatchOption {
	return func(p *Patch) {
		p.AssignedTo = models.Null[int64]()
	}
}

func WithDueDate(due models.Date) PatchOption {
	return func(p *Patch) {
		if due.IsZero() {
			p.DueDate = models.Null[models.Date]()
			return
		}
		p.DueDate = models.Some(due)
	}
}

func WithSprint(sprintID int64) PatchOption {
	return func(p *Patch) {
		p.SprintID = models.Some(sprintID)
	}
}
