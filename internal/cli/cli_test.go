package cli_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"sprintboard/internal/app"
	"sprintboard/internal/cli"
	"sprintboard/internal/config"
	"sprintboard/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps the session snapshot in memory between command runs.
type memStore struct {
	snap session.Snapshot
}

func (m *memStore) Load() (session.Snapshot, error) { return m.snap, nil }
func (m *memStore) Save(s session.Snapshot) error   { m.snap = s; return nil }
func (m *memStore) Remove() error                   { m.snap = session.Snapshot{}; return nil }

type harness struct {
	cfg   *config.Config
	store *memStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	apiCfg := &config.Config{
		Repository: config.RepositoryConfig{Type: "inmemory"},
		Auth: config.AuthConfig{
			TokenTTL: time.Hour,
			Users: []config.SeedUser{
				{Name: "Owner", Email: "owner@example.com", Password: "password"},
			},
		},
	}
	a, err := app.New(apiCfg).Init(context.Background())
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	return &harness{
		cfg:   &config.Config{Client: config.ClientConfig{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second}},
		store: &memStore{},
	}
}

// run executes one command line and returns the exit code, stdout and stderr.
func (h *harness) run(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := cli.Run(context.Background(), args, cli.Options{
		Config: h.cfg,
		Store:  h.store,
		Out:    &out,
		Err:    &errOut,
	})
	return code, out.String(), errOut.String()
}

// TestCLI тестирует команды поверх фасада и API
func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end test skipped in short mode")
	}
	h := newHarness(t)

	steps := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  []string
		wantErr  []string
	}{
		{
			name:     "error - commands need a session",
			args:     []string{"workspace", "list"},
			wantCode: 1,
			wantErr:  []string{"not logged in"},
		},
		{
			name:     "error - wrong password shows the field",
			args:     []string{"login", "-e", "owner@example.com", "-p", "nope"},
			wantCode: 1,
			wantErr:  []string{"  email: The provided credentials are incorrect."},
		},
		{
			name:    "success - login",
			args:    []string{"login", "-e", "owner@example.com", "-p", "password"},
			wantOut: []string{"Logged in as Owner <owner@example.com>"},
		},
		{
			name:    "success - whoami",
			args:    []string{"whoami"},
			wantOut: []string{"owner@example.com"},
		},
		{
			name:     "error - local validation before dispatch",
			args:     []string{"workspace", "create", "--name", "Broken", "--sprints"},
			wantCode: 1,
			wantErr:  []string{"The given data was invalid.", "  sprint_duration: Sprint duration is required when sprint mode is enabled"},
		},
		{
			name:    "success - workspace create",
			args:    []string{"workspace", "create", "--name", "Launch", "--sprints", "--duration", "weekly"},
			wantOut: []string{"Created workspace Launch (launch)"},
		},
		{
			name:    "success - workspace list",
			args:    []string{"ws", "list"},
			wantOut: []string{"SLUG", "launch", "owner"},
		},
		{
			name:     "error - unknown workspace points to the list",
			args:     []string{"workspace", "show", "nope"},
			wantCode: 1,
			wantErr:  []string{"See `sprintboard workspace list`."},
		},
		{
			name:    "success - sprint create starts today",
			args:    []string{"sprint", "create", "launch", "--name", "Sprint 1"},
			wantOut: []string{"Created sprint #1 Sprint 1"},
		},
		{
			name:    "success - sprint show",
			args:    []string{"sprint", "show", "launch", "1"},
			wantOut: []string{"#1 Sprint 1 [active]", "Duration: 7"},
		},
		{
			name:     "error - task outside backlog needs an assignee",
			args:     []string{"task", "create", "launch", "--title", "Ship"},
			wantCode: 1,
			wantErr:  []string{"  assigned_to: required unless status is backlog"},
		},
		{
			name:    "success - task create",
			args:    []string{"task", "create", "launch", "--title", "Ship", "--assignee", "me", "--sprint", "1"},
			wantOut: []string{"Created task #1 Ship [todo]"},
		},
		{
			name:    "success - moving to backlog",
			args:    []string{"task", "update", "launch", "1", "--status", "backlog"},
			wantOut: []string{"Updated task #1 Ship [backlog]"},
		},
		{
			name:    "success - board",
			args:    []string{"task", "board", "launch", "--sprint", "1"},
			wantOut: []string{"backlog (1)", "#1 Ship [-]", "todo (0)"},
		},
		{
			name:     "error - unknown status filter",
			args:     []string{"task", "list", "launch", "--status", "blocked"},
			wantCode: 1,
			wantErr:  []string{"blocked"},
		},
		{
			name:    "success - task delete",
			args:    []string{"task", "delete", "launch", "1"},
			wantOut: []string{"Deleted task #1"},
		},
		{
			name:     "error - deleted task points to the list",
			args:     []string{"task", "delete", "launch", "1"},
			wantCode: 1,
			wantErr:  []string{"See `sprintboard task list SLUG`."},
		},
		{
			name:    "success - logout",
			args:    []string{"logout"},
			wantOut: []string{"Logged out"},
		},
	}

	for _, step := range steps {
		code, out, errOut := h.run(step.args...)
		require.Equal(t, step.wantCode, code, "%s: stdout=%q stderr=%q", step.name, out, errOut)
		for _, want := range step.wantOut {
			assert.Contains(t, out, want, step.name)
		}
		for _, want := range step.wantErr {
			assert.Contains(t, errOut, want, step.name)
		}
	}

	assert.Empty(t, h.store.snap.Token)
}
