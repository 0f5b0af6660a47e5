package cli

import (
	"errors"
	"fmt"
	"strconv"

	"sprintboard/internal/board"
	"sprintboard/internal/models"
	"sprintboard/internal/models/task"
	"sprintboard/internal/role"
	"sprintboard/internal/transition"
	"sprintboard/internal/validation"

	"github.com/spf13/cobra"
)

const taskListHint = "sprintboard task list SLUG"

var errNotAllowed = errors.New("you are not allowed to change this task")

func newTaskCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "task",
		Short:             "Task commands",
		PersistentPreRunE: e.setupLoggedIn,
	}

	cmd.AddCommand(
		withHint(newTaskListCommand(e), workspaceListHint),
		withHint(newTaskBoardCommand(e), workspaceListHint),
		withHint(newTaskCreateCommand(e), workspaceListHint),
		withHint(newTaskUpdateCommand(e), taskListHint),
		withHint(newTaskDeleteCommand(e), taskListHint),
	)
	return cmd
}

// parseAssignee accepts "me", "none" or a user id.
func (e *env) parseAssignee(errs validation.Errors, s string) models.Nullable[int64] {
	switch s {
	case "none":
		return models.Null[int64]()
	case "me":
		return models.Some(e.userID())
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		errs.Add("assigned_to", "must be me, none or a user id")
		return models.Nullable[int64]{}
	}
	return models.Some(id)
}

func parseSprintFlag(errs validation.Errors, s string) models.Nullable[int64] {
	if s == "none" {
		return models.Null[int64]()
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		errs.Add("sprint_id", "must be none or a sprint id")
		return models.Nullable[int64]{}
	}
	return models.Some(id)
}

func (e *env) listTasks(cmd *cobra.Command, slug, sprintFlag string) ([]task.Task, error) {
	var sprintID *int64
	if sprintFlag != "" {
		errs := validation.Errors{}
		sprintID = parseSprintFlag(errs, sprintFlag).Ptr()
		if err := errs.OrNil(); err != nil {
			return nil, err
		}
	}
	return e.client.ListTasks(cmd.Context(), slug, sprintID)
}

func newTaskListCommand(e *env) *cobra.Command {
	var sprintFlag, status string
	var criteria board.Criteria

	cmd := &cobra.Command{
		Use:   "list SLUG",
		Short: "List tasks, optionally filtered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria.Status = task.Status(status)
			if err := criteria.Validate(); err != nil {
				return err
			}

			tasks, err := e.listTasks(cmd, args[0], sprintFlag)
			if err != nil {
				return err
			}
			tasks = board.Filter(tasks, criteria, e.userID())
			if len(tasks) == 0 {
				fmt.Fprintln(e.out, "No tasks found")
				return nil
			}

			tw := newTable(e.out)
			row(tw, "ID", "TITLE", "STATUS", "ASSIGNEE", "DUE")
			for _, t := range tasks {
				row(tw, t.ID, t.Title, t.Status, userOrDash(t.AssignedToUser, t.AssignedTo), dateOrDash(t.DueDate))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&sprintFlag, "sprint", "", "sprint id")
	cmd.Flags().StringVarP(&criteria.Search, "search", "s", "", "case-insensitive title search")
	cmd.Flags().StringVar(&status, "status", "", "backlog, todo, in_progress or done")
	cmd.Flags().StringVar(&criteria.Assignee, "assignee", board.AssigneeAll, "all, me, unassigned or a user id")
	return cmd
}

func newTaskBoardCommand(e *env) *cobra.Command {
	var sprintFlag string

	cmd := &cobra.Command{
		Use:   "board SLUG",
		Short: "Show tasks as kanban columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := e.listTasks(cmd, args[0], sprintFlag)
			if err != nil {
				return err
			}

			for i, col := range board.GroupByStatus(tasks) {
				if i > 0 {
					fmt.Fprintln(e.out)
				}
				fmt.Fprintf(e.out, "%s (%d)\n", col.Status, len(col.Tasks))
				for _, t := range col.Tasks {
					fmt.Fprintf(e.out, "  #%d %s [%s]\n", t.ID, t.Title, userOrDash(t.AssignedToUser, t.AssignedTo))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sprintFlag, "sprint", "", "sprint id")
	return cmd
}

func newTaskCreateCommand(e *env) *cobra.Command {
	var title, description, status, assignee, due, sprintFlag string

	cmd := &cobra.Command{
		Use:   "create SLUG",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := task.CreateInput{Title: title, Status: task.Status(status)}
			errs := validation.Errors{}
			flags := cmd.Flags()
			if flags.Changed("description") {
				in.Description = &description
			}
			if flags.Changed("assignee") {
				in.AssignedTo = e.parseAssignee(errs, assignee).Ptr()
			}
			if flags.Changed("due") {
				in.DueDate = parseDateFlag(errs, "due_date", due).Ptr()
			}
			if flags.Changed("sprint") {
				in.SprintID = parseSprintFlag(errs, sprintFlag).Ptr()
			}
			if err := errs.OrNil(); err != nil {
				return err
			}

			payload, err := transition.ValidateCreation(in)
			if err != nil {
				return err
			}
			t, err := e.client.CreateTask(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Created task #%d %s [%s]\n", t.ID, t.Title, t.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&status, "status", "", "backlog, todo, in_progress or done (default todo)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "me or a user id")
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")
	cmd.Flags().StringVar(&sprintFlag, "sprint", "", "sprint id")
	return cmd
}

func newTaskUpdateCommand(e *env) *cobra.Command {
	var title, description, status, assignee, due, sprintFlag string

	cmd := &cobra.Command{
		Use:   "update SLUG ID",
		Short: "Change a task; moving it to backlog unassigns it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[1])
			if err != nil {
				return err
			}

			errs := validation.Errors{}
			flags := cmd.Flags()
			var opts []task.PatchOption
			if flags.Changed("title") {
				opts = append(opts, task.WithTitle(title))
			}
			if flags.Changed("description") {
				opts = append(opts, task.WithDescription(description))
			}
			if flags.Changed("status") {
				opts = append(opts, task.WithStatus(task.Status(status)))
			}
			patch := task.NewPatch(opts...)
			if flags.Changed("assignee") {
				patch.AssignedTo = e.parseAssignee(errs, assignee)
			}
			if flags.Changed("due") {
				patch.DueDate = parseDateFlag(errs, "due_date", due)
			}
			if flags.Changed("sprint") {
				patch.SprintID = parseSprintFlag(errs, sprintFlag)
			}
			if err := errs.OrNil(); err != nil {
				return err
			}

			ws, err := e.client.GetWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			current, err := e.client.GetTask(cmd.Context(), ws.Slug, id)
			if err != nil {
				return err
			}
			if !role.CanMutateTask(&ws, current, e.userID()) {
				return errNotAllowed
			}

			payload, err := transition.ValidateMutation(current, patch)
			if err != nil {
				return err
			}
			t, err := e.client.UpdateTask(cmd.Context(), ws.Slug, id, payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Updated task #%d %s [%s]\n", t.ID, t.Title, t.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description, empty to clear")
	cmd.Flags().StringVar(&status, "status", "", "backlog, todo, in_progress or done")
	cmd.Flags().StringVar(&assignee, "assignee", "", "me, none or a user id")
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD, or none")
	cmd.Flags().StringVar(&sprintFlag, "sprint", "", "sprint id, or none")
	return cmd
}

func newTaskDeleteCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete SLUG ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[1])
			if err != nil {
				return err
			}

			ws, err := e.client.GetWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			current, err := e.client.GetTask(cmd.Context(), ws.Slug, id)
			if err != nil {
				return err
			}
			if !role.CanDeleteTask(&ws, current, e.userID()) {
				return errNotAllowed
			}

			if err := e.client.DeleteTask(cmd.Context(), ws.Slug, id); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Deleted task #%d\n", id)
			return nil
		},
	}
}
