// Package cli is the sprintboard command line client. Every command validates
// locally with the engines before it reaches the API through the client facade.
package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"sprintboard/internal/client"
	"sprintboard/internal/config"
	"sprintboard/internal/lifecycle"
	"sprintboard/internal/logger"
	"sprintboard/internal/session"

	"github.com/spf13/cobra"
)

// hintKey is the command annotation holding where to go after a 404 or 403.
const hintKey = "parent"

var errNotLoggedIn = errors.New("not logged in, run `sprintboard login` first")

// Options replaces the parts of the environment a command would otherwise
// build from config. Zero values mean the defaults.
type Options struct {
	Config     *config.Config
	Store      session.Store
	HTTPClient *http.Client
	Out        io.Writer
	Err        io.Writer
	Now        func() time.Time
}

// env is filled in by the root command before any subcommand runs.
type env struct {
	opts       Options
	configPath string

	cfg     *config.Config
	session *session.Session
	client  *client.Client
	engine  *lifecycle.Engine
	out     io.Writer
}

func (e *env) setup() error {
	cfg := e.opts.Config
	if cfg == nil {
		loaded, err := config.Load(e.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	e.cfg = cfg

	if err := logger.InitQuiet(); err != nil {
		return err
	}

	store := e.opts.Store
	if store == nil {
		path := cfg.Client.SessionFile
		if path == "" {
			var err error
			if path, err = session.DefaultPath(); err != nil {
				return err
			}
		}
		store = session.NewFileStore(path)
	}
	sess, err := session.Open(store)
	if err != nil {
		return err
	}
	e.session = sess

	var clientOpts []client.Option
	if e.opts.HTTPClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(e.opts.HTTPClient))
	}
	e.client = client.New(cfg.Client, sess, clientOpts...)
	e.engine = lifecycle.New(e.opts.Now)
	return nil
}

// requireLogin fails fast instead of sending a request that can only be rejected.
func (e *env) requireLogin() error {
	if !e.session.Authenticated() {
		return errNotLoggedIn
	}
	return nil
}

// setupLoggedIn is the pre-run hook of every command that talks to a workspace.
func (e *env) setupLoggedIn(cmd *cobra.Command, args []string) error {
	if err := e.setup(); err != nil {
		return err
	}
	return e.requireLogin()
}

func (e *env) userID() int64 {
	if u := e.session.User(); u != nil {
		return u.ID
	}
	return 0
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	e := &env{opts: opts, out: opts.Out}

	rootCmd := &cobra.Command{
		Use:           "sprintboard",
		Short:         "Workspaces, sprints and tasks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
	}
	rootCmd.SetOut(opts.Out)
	rootCmd.SetErr(opts.Err)
	rootCmd.PersistentFlags().StringVarP(&e.configPath, "config", "c", "", "config file path")

	rootCmd.AddCommand(
		newLoginCommand(e),
		newLogoutCommand(e),
		newWhoamiCommand(e),
		newWorkspaceCommand(e),
		newSprintCommand(e),
		newTaskCommand(e),
	)

	return rootCmd
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, opts Options) int {
	rootCmd := NewRootCommand(opts)
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		hint := ""
		if cmd != nil {
			hint = cmd.Annotations[hintKey]
		}
		printError(rootCmd.ErrOrStderr(), err, hint)
		return 1
	}
	return 0
}

func withHint(cmd *cobra.Command, hint string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[hintKey] = hint
	return cmd
}
