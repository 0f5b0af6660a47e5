package cli

import (
	"errors"
	"fmt"

	"sprintboard/internal/models/workspace"
	"sprintboard/internal/role"

	"github.com/spf13/cobra"
)

var errOwnerOnly = errors.New("only the workspace owner can do this")

const workspaceListHint = "sprintboard workspace list"

func newWorkspaceCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "workspace",
		Aliases:           []string{"ws"},
		Short:             "Workspace commands",
		PersistentPreRunE: e.setupLoggedIn,
	}

	cmd.AddCommand(
		newWorkspaceListCommand(e),
		newWorkspaceCreateCommand(e),
		withHint(newWorkspaceShowCommand(e), workspaceListHint),
		withHint(newWorkspaceUpdateCommand(e), workspaceListHint),
		withHint(newWorkspaceAddMemberCommand(e), workspaceListHint),
	)
	return cmd
}

func parseDuration(s string) workspace.SprintDuration {
	if s == "none" {
		return workspace.DurationNone
	}
	return workspace.SprintDuration(s)
}

func durationLabel(d workspace.SprintDuration) string {
	if d == workspace.DurationNone {
		return "none"
	}
	return string(d)
}

func newWorkspaceListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the workspaces you belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.client.ListWorkspaces(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(e.out, "No workspaces yet")
				return nil
			}

			tw := newTable(e.out)
			row(tw, "SLUG", "NAME", "ROLE", "SPRINTS", "MEMBERS")
			for i := range list {
				ws := &list[i]
				row(tw, ws.Slug, ws.Name, role.Resolve(ws), durationLabel(ws.SprintDuration), ws.MembersCount)
			}
			return tw.Flush()
		},
	}
}

func newWorkspaceCreateCommand(e *env) *cobra.Command {
	var in workspace.CreateInput
	var duration string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workspace you own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.SprintDuration = parseDuration(duration)
			ws, err := e.client.CreateWorkspace(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Created workspace %s (%s)\n", ws.Name, ws.Slug)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "workspace name")
	cmd.Flags().BoolVar(&in.SprintEnabled, "sprints", false, "enable sprint mode")
	cmd.Flags().StringVar(&duration, "duration", "none", "sprint duration: none, weekly or biweekly")
	return cmd
}

func newWorkspaceShowCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show SLUG",
		Short: "Show a workspace and its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := e.client.GetWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(e.out, "%s (%s)\n", ws.Name, ws.Slug)
			fmt.Fprintf(e.out, "Your role: %s\n", role.Resolve(&ws))
			if ws.SprintEnabled {
				fmt.Fprintf(e.out, "Sprints: %s\n", durationLabel(ws.SprintDuration))
			} else {
				fmt.Fprintln(e.out, "Sprints: off")
			}
			if len(ws.Members) == 0 {
				return nil
			}

			fmt.Fprintln(e.out)
			tw := newTable(e.out)
			row(tw, "ID", "NAME", "EMAIL", "ROLE")
			for _, m := range ws.Members {
				row(tw, m.ID, m.Name, m.Email, m.Role)
			}
			return tw.Flush()
		},
	}
}

func newWorkspaceUpdateCommand(e *env) *cobra.Command {
	var name, duration string
	var sprints bool

	cmd := &cobra.Command{
		Use:   "update SLUG",
		Short: "Rename a workspace or change its sprint policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := e.client.GetWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !role.CanManageWorkspace(&current) {
				return errOwnerOnly
			}

			var in workspace.UpdateInput
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = &name
			}
			if flags.Changed("sprints") {
				in.SprintEnabled = &sprints
			}
			if flags.Changed("duration") {
				d := parseDuration(duration)
				in.SprintDuration = &d
			}

			ws, err := e.client.UpdateWorkspace(cmd.Context(), current, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Updated workspace %s (%s)\n", ws.Name, ws.Slug)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new workspace name")
	cmd.Flags().BoolVar(&sprints, "sprints", false, "enable or disable sprint mode")
	cmd.Flags().StringVar(&duration, "duration", "", "sprint duration: none, weekly or biweekly")
	return cmd
}

func newWorkspaceAddMemberCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add-member SLUG EMAIL",
		Short: "Invite an existing user as a guest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := e.client.AddMember(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Added %s <%s> as %s\n", m.Name, m.Email, m.Role)
			return nil
		},
	}
}
