package validation

import (
	"strings"

	"sprintboard/internal/models/workspace"
)

// SprintPolicy is the pair of workspace fields the duration rules look at.
type SprintPolicy struct {
	Enabled  bool
	Duration workspace.SprintDuration
}

var DurationRequiredWhenEnabled = Rule[SprintPolicy]{
	Name:    "sprint_duration_required_when_enabled",
	Field:   "sprint_duration",
	Message: "Sprint duration is required when sprint mode is enabled",
	Check: func(p SprintPolicy) bool {
		return !p.Enabled || p.Duration != workspace.DurationNone
	},
}

var DurationEmptyWhenDisabled = Rule[SprintPolicy]{
	Name:    "sprint_duration_empty_when_disabled",
	Field:   "sprint_duration",
	Message: "Sprint duration must be empty when sprint mode is disabled",
	Check: func(p SprintPolicy) bool {
		return p.Enabled || p.Duration == workspace.DurationNone
	},
}

var DurationKnown = Rule[SprintPolicy]{
	Name:    "sprint_duration_known",
	Field:   "sprint_duration",
	Message: "Sprint duration must be weekly or biweekly",
	Check: func(p SprintPolicy) bool {
		return p.Duration == workspace.DurationNone || p.Duration.Valid()
	},
}

var PolicyRules = []Rule[SprintPolicy]{
	DurationRequiredWhenEnabled,
	DurationEmptyWhenDisabled,
	DurationKnown,
}

func PolicyOf(w workspace.Workspace) SprintPolicy {
	return SprintPolicy{Enabled: w.SprintEnabled, Duration: w.SprintDuration}
}

// ValidatePolicy checks the sprint_enabled / sprint_duration coupling.
func ValidatePolicy(p SprintPolicy) error {
	errs := Errors{}
	Apply(errs, p, PolicyRules...)
	return errs.OrNil()
}

// ValidateCreateWorkspace returns the normalized input or field errors.
func ValidateCreateWorkspace(in workspace.CreateInput) (workspace.CreateInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	errs := Struct(&in)
	Apply(errs, SprintPolicy{Enabled: in.SprintEnabled, Duration: in.SprintDuration}, PolicyRules...)
	if err := errs.OrNil(); err != nil {
		return workspace.CreateInput{}, err
	}
	return in, nil
}

// ValidateUpdateWorkspace applies the same rules to the workspace as it would be after the update.
func ValidateUpdateWorkspace(current workspace.Workspace, in workspace.UpdateInput) (workspace.UpdateInput, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	errs := Struct(&in)
	Apply(errs, PolicyOf(in.Apply(current)), PolicyRules...)
	if err := errs.OrNil(); err != nil {
		return workspace.UpdateInput{}, err
	}
	return in, nil
}
