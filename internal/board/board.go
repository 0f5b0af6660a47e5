// Package board keeps the task list of a sprint in sync with API results and
// shapes it for display.
package board

import (
	"cmp"
	"errors"
	"slices"
	"strconv"
	"strings"

	"sprintboard/internal/models/task"
)

type ResultKind int

const (
	Created ResultKind = iota + 1
	Updated
	Deleted
)

// Result is what the API returned for one task mutation. Deleted results only need ID.
type Result struct {
	Kind ResultKind
	Task task.Task
	ID   int64
}

func CreatedResult(t task.Task) Result { return Result{Kind: Created, Task: t, ID: t.ID} }
func UpdatedResult(t task.Task) Result { return Result{Kind: Updated, Task: t, ID: t.ID} }
func DeletedResult(id int64) Result    { return Result{Kind: Deleted, ID: id} }

// ApplyServerResult returns a new list with r merged in; list is not modified.
// The server copy always replaces the local one.
func ApplyServerResult(list []task.Task, r Result) []task.Task {
	out := slices.Clone(list)
	idx := slices.IndexFunc(out, func(t task.Task) bool { return t.ID == r.ID })

	switch r.Kind {
	case Created:
		if idx >= 0 {
			out[idx] = r.Task
			return out
		}
		return append(out, r.Task)
	case Updated:
		if idx >= 0 {
			out[idx] = r.Task
		}
		return out
	case Deleted:
		if idx >= 0 {
			out = slices.Delete(out, idx, idx+1)
		}
		return out
	}
	return out
}

const (
	AssigneeAll        = "all"
	AssigneeMe         = "me"
	AssigneeUnassigned = "unassigned"
)

var ErrBadAssignee = errors.New("assignee filter must be all, me, unassigned or a user id")

// Criteria narrows a task list. Zero values match everything.
type Criteria struct {
	Search   string
	Status   task.Status
	Assignee string
}

func (c Criteria) Validate() error {
	if c.Status != "" && !c.Status.Valid() {
		return errors.New("unknown status " + strconv.Quote(string(c.Status)))
	}
	switch c.Assignee {
	case "", AssigneeAll, AssigneeMe, AssigneeUnassigned:
		return nil
	}
	if _, err := strconv.ParseInt(c.Assignee, 10, 64); err != nil {
		return ErrBadAssignee
	}
	return nil
}

// Filter keeps the tasks matching c. currentUserID resolves the "me" assignee.
func Filter(tasks []task.Task, c Criteria, currentUserID int64) []task.Task {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if search != "" && !strings.Contains(strings.ToLower(t.Title), search) {
			continue
		}
		if c.Status != "" && t.Status != c.Status {
			continue
		}
		if !matchAssignee(t, c.Assignee, currentUserID) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchAssignee(t task.Task, filter string, currentUserID int64) bool {
	switch filter {
	case "", AssigneeAll:
		return true
	case AssigneeMe:
		return t.AssignedTo != nil && *t.AssignedTo == currentUserID
	case AssigneeUnassigned:
		return t.AssignedTo == nil
	}
	id, err := strconv.ParseInt(filter, 10, 64)
	if err != nil {
		return false
	}
	return t.AssignedTo != nil && *t.AssignedTo == id
}

type Column struct {
	Status task.Status
	Tasks  []task.Task
}

// GroupByStatus returns one column per status in kanban order, each sorted by position.
func GroupByStatus(tasks []task.Task) []Column {
	columns := make([]Column, len(task.Statuses))
	index := make(map[task.Status]int, len(task.Statuses))
	for i, s := range task.Statuses {
		columns[i] = Column{Status: s, Tasks: []task.Task{}}
		index[s] = i
	}

	for _, t := range tasks {
		i, ok := index[t.Status]
		if !ok {
			continue
		}
		columns[i].Tasks = append(columns[i].Tasks, t)
	}

	for i := range columns {
		slices.SortStableFunc(columns[i].Tasks, func(a, b task.Task) int {
			return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
		})
	}
	return columns
}
