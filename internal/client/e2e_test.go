package client_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"sprintboard/internal/app"
	"sprintboard/internal/board"
	"sprintboard/internal/client"
	"sprintboard/internal/config"
	"sprintboard/internal/lifecycle"
	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/task"
	"sprintboard/internal/models/workspace"
	"sprintboard/internal/role"
	"sprintboard/internal/session"
	"sprintboard/internal/transition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startAPI(t *testing.T) string {
	t.Helper()
	cfg := &config.Config{
		Repository: config.RepositoryConfig{Type: "inmemory"},
		Auth: config.AuthConfig{
			TokenTTL: time.Hour,
			Users: []config.SeedUser{
				{Name: "Owner", Email: "owner@example.com", Password: "password"},
				{Name: "Guest", Email: "guest@example.com", Password: "password"},
			},
		},
	}

	a, err := app.New(cfg).Init(context.Background())
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func login(t *testing.T, baseURL, email string) *client.Client {
	t.Helper()
	c := client.New(config.ClientConfig{BaseURL: baseURL}, session.New())
	_, err := c.Login(context.Background(), email, "password")
	require.NoError(t, err)
	return c
}

// TestEndToEnd тестирует полный сценарий через фасад и REST API
func TestEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end test skipped in short mode")
	}

	ctx := context.Background()
	baseURL := startAPI(t)
	owner := login(t, baseURL, "owner@example.com")
	guest := login(t, baseURL, "guest@example.com")
	engine := lifecycle.New(nil)

	ws, err := owner.CreateWorkspace(ctx, workspace.CreateInput{
		Name:           "Launch Team",
		SprintEnabled:  true,
		SprintDuration: workspace.DurationBiweekly,
	})
	require.NoError(t, err)
	assert.Equal(t, "launch-team", ws.Slug)
	assert.Equal(t, role.Owner, role.Resolve(&ws))

	// гость не видит пространство, пока его не добавили
	_, err = guest.GetWorkspace(ctx, ws.Slug)
	assert.ErrorIs(t, err, client.ErrNotFound)

	member, err := owner.AddMember(ctx, ws.Slug, "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, workspace.RoleGuest, member.Role)

	guestView, err := guest.GetWorkspace(ctx, ws.Slug)
	require.NoError(t, err)
	assert.Equal(t, role.Guest, role.Resolve(&guestView))
	assert.False(t, role.CanManageSprints(&guestView))

	plan, err := engine.PlanCreation(ws, "Sprint 1", engine.Today().AddDays(1))
	require.NoError(t, err)
	sp, err := owner.CreateSprint(ctx, ws.Slug, plan)
	require.NoError(t, err)
	assert.Equal(t, sprint.StatusPlanned, sp.Status)
	require.NotNil(t, sp.EndDate)
	assert.Equal(t, 14, sp.StartDate.DaysUntil(*sp.EndDate))

	_, err = guest.CreateSprint(ctx, ws.Slug, plan)
	assert.ErrorIs(t, err, client.ErrForbidden)

	valid, err := engine.ValidateUpdate(sp, sprint.Patch{Name: models.Some("Sprint One")})
	require.NoError(t, err)
	sp, err = owner.UpdateSprint(ctx, ws.Slug, sp.ID, valid)
	require.NoError(t, err)
	assert.Equal(t, "Sprint One", sp.Name)

	payload, err := transition.ValidateCreation(task.CreateInput{
		Title:      "Ship it",
		SprintID:   &sp.ID,
		AssignedTo: &member.ID,
	})
	require.NoError(t, err)
	created, err := guest.CreateTask(ctx, ws.Slug, payload)
	require.NoError(t, err)
	require.NotNil(t, created.AssignedToUser)
	assert.Equal(t, "Guest", created.AssignedToUser.Name)

	list, err := owner.ListTasks(ctx, ws.Slug, &sp.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	update, err := transition.ValidateMutation(created, task.NewPatch(task.WithStatus(task.StatusBacklog)))
	require.NoError(t, err)
	moved, err := guest.UpdateTask(ctx, ws.Slug, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, task.StatusBacklog, moved.Status)
	assert.Nil(t, moved.AssignedTo)

	list = board.ApplyServerResult(list, board.UpdatedResult(moved))
	columns := board.GroupByStatus(list)
	assert.Len(t, columns[0].Tasks, 1)

	// гость больше не исполнитель, но остаётся автором
	require.NoError(t, guest.DeleteTask(ctx, ws.Slug, created.ID))
	list = board.ApplyServerResult(list, board.DeletedResult(created.ID))
	assert.Empty(t, list)

	_, err = owner.GetTask(ctx, ws.Slug, created.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)

	require.NoError(t, guest.Logout(ctx))
	assert.False(t, guest.Session().Authenticated())
	_, err = guest.ListWorkspaces(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

// TestEndToEnd_RemoteFieldErrors тестирует ошибки полей от сервера
func TestEndToEnd_RemoteFieldErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end test skipped in short mode")
	}

	ctx := context.Background()
	baseURL := startAPI(t)
	owner := login(t, baseURL, "owner@example.com")

	ws, err := owner.CreateWorkspace(ctx, workspace.CreateInput{Name: "Fields"})
	require.NoError(t, err)

	_, err = owner.AddMember(ctx, ws.Slug, "nobody@example.com")
	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsFieldError())
	assert.NotEmpty(t, apiErr.FieldErrors().Field("email"))

	_, err = client.New(config.ClientConfig{BaseURL: baseURL}, session.New()).
		Login(ctx, "owner@example.com", "wrong")
	apiErr, ok = client.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 422, apiErr.Status)
	assert.True(t, apiErr.FieldErrors().Has("email"))
}

// TestEndToEnd_EternalSprint тестирует создание бессрочного спринта без режима спринтов
func TestEndToEnd_EternalSprint(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end test skipped in short mode")
	}

	ctx := context.Background()
	owner := login(t, startAPI(t), "owner@example.com")
	engine := lifecycle.New(nil)

	ws, err := owner.CreateWorkspace(ctx, workspace.CreateInput{Name: "Support"})
	require.NoError(t, err)
	assert.False(t, ws.SprintEnabled)

	plan, err := engine.PlanCreation(ws, "Continuous", engine.Today())
	require.NoError(t, err)
	assert.True(t, plan.IsEternal)
	assert.Nil(t, plan.EndDate)

	sp, err := owner.CreateSprint(ctx, ws.Slug, plan)
	require.NoError(t, err)
	assert.True(t, sp.IsEternal)
	assert.Nil(t, sp.EndDate)
	assert.Nil(t, sp.DaysRemaining)

	got, err := owner.GetSprint(ctx, ws.Slug, sp.ID)
	require.NoError(t, err)
	assert.True(t, got.IsEternal)
	assert.Nil(t, got.EndDate)
}
