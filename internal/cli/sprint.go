package cli

import (
	"fmt"
	"strconv"

	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/role"
	"sprintboard/internal/validation"

	"github.com/spf13/cobra"
)

const sprintListHint = "sprintboard sprint list SLUG"

func newSprintCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "sprint",
		Short:             "Sprint commands",
		PersistentPreRunE: e.setupLoggedIn,
	}

	cmd.AddCommand(
		withHint(newSprintListCommand(e), workspaceListHint),
		withHint(newSprintCreateCommand(e), workspaceListHint),
		withHint(newSprintShowCommand(e), sprintListHint),
		withHint(newSprintUpdateCommand(e), sprintListHint),
	)
	return cmd
}

func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.New(field, "must be a positive number")
	}
	return id, nil
}

// parseDateFlag reads a date flag, "none" meaning an explicit null.
func parseDateFlag(errs validation.Errors, field, s string) models.Nullable[models.Date] {
	if s == "none" {
		return models.Null[models.Date]()
	}
	d, err := models.ParseDate(s)
	if err != nil {
		errs.Add(field, "must be a date in YYYY-MM-DD format")
		return models.Nullable[models.Date]{}
	}
	return models.Some(d)
}

func newSprintListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list SLUG",
		Short: "List the sprints of a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.client.ListSprints(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(e.out, "No sprints yet")
				return nil
			}

			tw := newTable(e.out)
			row(tw, "ID", "NAME", "STATUS", "START", "END", "REMAINING")
			for _, s := range list {
				m := e.engine.DeriveMetrics(s)
				row(tw, s.ID, s.Name, s.Status, s.StartDate, dateOrDash(s.EndDate), intOrDash(m.DaysRemaining))
			}
			return tw.Flush()
		},
	}
}

func newSprintCreateCommand(e *env) *cobra.Command {
	var name, start string

	cmd := &cobra.Command{
		Use:   "create SLUG",
		Short: "Plan a new sprint; the end date follows the workspace duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate := e.engine.Today()
			if start != "" {
				errs := validation.Errors{}
				startDate = parseDateFlag(errs, "start_date", start).Value
				if err := errs.OrNil(); err != nil {
					return err
				}
			}

			ws, err := e.client.GetWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !role.CanManageSprints(&ws) {
				return errOwnerOnly
			}

			plan, err := e.engine.PlanCreation(ws, name, startDate)
			if err != nil {
				return err
			}
			s, err := e.client.CreateSprint(cmd.Context(), ws.Slug, plan)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Created sprint #%d %s (%s to %s)\n", s.ID, s.Name, s.StartDate, dateOrDash(s.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "sprint name")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD, defaults to today")
	return cmd
}

func newSprintShowCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show SLUG ID",
		Short: "Show a sprint with its progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[1])
			if err != nil {
				return err
			}
			s, err := e.client.GetSprint(cmd.Context(), args[0], id)
			if err != nil {
				return err
			}

			m := e.engine.DeriveMetrics(s)
			fmt.Fprintf(e.out, "#%d %s [%s]\n", s.ID, s.Name, s.Status)
			fmt.Fprintf(e.out, "Start: %s\n", s.StartDate)
			if s.IsEternal {
				fmt.Fprintln(e.out, "End: none (eternal sprint)")
			} else {
				fmt.Fprintf(e.out, "End: %s\n", dateOrDash(s.EndDate))
			}
			fmt.Fprintf(e.out, "Days elapsed: %d\n", m.DaysElapsed)
			fmt.Fprintf(e.out, "Days remaining: %s\n", intOrDash(m.DaysRemaining))
			fmt.Fprintf(e.out, "Duration: %s\n", intOrDash(m.Duration))
			return nil
		},
	}
}

func newSprintUpdateCommand(e *env) *cobra.Command {
	var name, status, start, end string

	cmd := &cobra.Command{
		Use:   "update SLUG ID",
		Short: "Rename, reschedule or change the status of a sprint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[1])
			if err != nil {
				return err
			}

			patch, err := sprintPatchFromFlags(cmd, name, status, start, end)
			if err != nil {
				return err
			}

			ws, err := e.client.GetWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !role.CanManageSprints(&ws) {
				return errOwnerOnly
			}
			current, err := e.client.GetSprint(cmd.Context(), ws.Slug, id)
			if err != nil {
				return err
			}

			valid, err := e.engine.ValidateUpdate(current, patch)
			if err != nil {
				return err
			}
			s, err := e.client.UpdateSprint(cmd.Context(), ws.Slug, id, valid)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Updated sprint #%d %s [%s]\n", s.ID, s.Name, s.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new sprint name")
	cmd.Flags().StringVar(&status, "status", "", "planned, active or completed")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD, or none")
	return cmd
}

func sprintPatchFromFlags(cmd *cobra.Command, name, status, start, end string) (sprint.Patch, error) {
	var patch sprint.Patch
	flags := cmd.Flags()
	errs := validation.Errors{}

	if flags.Changed("name") {
		patch.Name = models.Some(name)
	}
	if flags.Changed("status") {
		patch.Status = models.Some(sprint.Status(status))
	}
	if flags.Changed("start") {
		patch.StartDate = parseDateFlag(errs, "start_date", start)
	}
	if flags.Changed("end") {
		patch.EndDate = parseDateFlag(errs, "end_date", end)
	}
	return patch, errs.OrNil()
}
