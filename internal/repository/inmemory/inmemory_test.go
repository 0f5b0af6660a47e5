package inmemory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/task"
	"sprintboard/internal/models/user"
	"sprintboard/internal/models/workspace"
	"sprintboard/internal/repository"
	"sprintboard/internal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *inmemory.Storage, email string) *user.Account {
	t.Helper()
	acc := &user.Account{User: user.User{Name: email, Email: email}, PasswordHash: []byte("hash")}
	require.NoError(t, s.CreateUser(context.Background(), acc))
	return acc
}

func seedWorkspace(t *testing.T, s *inmemory.Storage, ownerID int64, slug string) *workspace.Workspace {
	t.Helper()
	ws := &workspace.Workspace{
		Name:           slug,
		Slug:           slug,
		OwnerID:        ownerID,
		SprintEnabled:  true,
		SprintDuration: workspace.DurationWeekly,
	}
	require.NoError(t, s.CreateWorkspace(context.Background(), ws))
	return ws
}

func TestStorage_HealthCheck(t *testing.T) {
	storage := inmemory.NewStorage()
	assert.NoError(t, storage.HealthCheck(context.Background()))
}

func TestStorage_Users(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	acc := seedUser(t, storage, "ann@example.com")
	assert.Equal(t, int64(1), acc.ID)

	// email сравнивается без учёта регистра
	err := storage.CreateUser(ctx, &user.Account{User: user.User{Email: "ANN@example.com"}})
	assert.ErrorIs(t, err, repository.ErrConflict)

	found, err := storage.UserByEmail(ctx, "Ann@Example.com")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, found.ID)
	assert.Equal(t, []byte("hash"), found.PasswordHash)

	_, err = storage.UserByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStorage_Tokens(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	acc := seedUser(t, storage, "ann@example.com")
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, storage.CreateToken(ctx, "tok", acc.ID, now.Add(time.Hour)))

	u, err := storage.UserByToken(ctx, "tok", now)
	require.NoError(t, err)
	assert.Equal(t, acc.Email, u.Email)

	_, err = storage.UserByToken(ctx, "tok", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, repository.ErrNotFound, "expired token")

	require.NoError(t, storage.DeleteToken(ctx, "tok"))
	_, err = storage.UserByToken(ctx, "tok", now)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStorage_Workspaces(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	owner := seedUser(t, storage, "owner@example.com")
	guest := seedUser(t, storage, "guest@example.com")

	ws := seedWorkspace(t, storage, owner.ID, "alpha")
	assert.NotZero(t, ws.ID)
	assert.False(t, ws.CreatedAt.IsZero())

	err := storage.CreateWorkspace(ctx, &workspace.Workspace{Slug: "alpha", OwnerID: owner.ID})
	assert.ErrorIs(t, err, repository.ErrConflict)

	exists, err := storage.SlugExists(ctx, "alpha")
	require.NoError(t, err)
	assert.True(t, exists)

	role, err := storage.MemberRole(ctx, ws.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, workspace.RoleOwner, role)

	_, err = storage.MemberRole(ctx, ws.ID, guest.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, storage.AddMember(ctx, ws.ID, guest.ID, workspace.RoleGuest))
	assert.ErrorIs(t, storage.AddMember(ctx, ws.ID, guest.ID, workspace.RoleGuest), repository.ErrConflict)

	members, err := storage.Members(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, workspace.RoleOwner, members[0].Role)
	assert.Equal(t, "guest@example.com", members[1].Email)

	list, err := storage.ListWorkspacesForUser(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].MembersCount)

	ws.Name = "Alpha renamed"
	ws.SprintEnabled = false
	ws.SprintDuration = workspace.DurationNone
	require.NoError(t, storage.UpdateWorkspace(ctx, ws))

	got, err := storage.WorkspaceBySlug(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha renamed", got.Name)
	assert.True(t, got.IsEternal())
}

func TestStorage_Sprints(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	owner := seedUser(t, storage, "owner@example.com")
	ws := seedWorkspace(t, storage, owner.ID, "alpha")

	end := models.NewDate(2025, 3, 17)
	later := &sprint.Sprint{WorkspaceID: ws.ID, Name: "Second", Status: sprint.StatusPlanned, StartDate: models.NewDate(2025, 3, 10), EndDate: &end}
	earlier := &sprint.Sprint{WorkspaceID: ws.ID, Name: "First", Status: sprint.StatusCompleted, StartDate: models.NewDate(2025, 3, 3)}
	require.NoError(t, storage.CreateSprint(ctx, later))
	require.NoError(t, storage.CreateSprint(ctx, earlier))

	list, err := storage.ListSprints(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Name, "sorted by start date")

	due, err := storage.ListDueSprints(ctx, models.NewDate(2025, 3, 9), 10)
	require.NoError(t, err)
	assert.Empty(t, due, "not started yet")

	due, err = storage.ListDueSprints(ctx, models.NewDate(2025, 3, 10), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, later.ID, due[0].ID)

	_, err = storage.SprintByID(ctx, ws.ID+1, later.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "sprint of another workspace")

	later.Status = sprint.StatusActive
	require.NoError(t, storage.UpdateSprint(ctx, later))
	got, err := storage.SprintByID(ctx, ws.ID, later.ID)
	require.NoError(t, err)
	assert.Equal(t, sprint.StatusActive, got.Status)
	assert.Equal(t, end, *got.EndDate)
}

func TestStorage_Tasks(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	owner := seedUser(t, storage, "owner@example.com")
	ws := seedWorkspace(t, storage, owner.ID, "alpha")
	sprintID := int64(7)

	first := &task.Task{WorkspaceID: ws.ID, SprintID: &sprintID, Title: "first", Status: task.StatusBacklog, CreatedBy: owner.ID}
	second := &task.Task{WorkspaceID: ws.ID, SprintID: &sprintID, Title: "second", Status: task.StatusBacklog, CreatedBy: owner.ID}
	loose := &task.Task{WorkspaceID: ws.ID, Title: "loose", Status: task.StatusBacklog, CreatedBy: owner.ID}
	for _, tk := range []*task.Task{first, second, loose} {
		require.NoError(t, storage.CreateTask(ctx, tk))
	}
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 2, second.Order)
	assert.Equal(t, 1, loose.Order)

	inSprint, err := storage.ListTasks(ctx, ws.ID, &sprintID)
	require.NoError(t, err)
	assert.Len(t, inSprint, 2)

	all, err := storage.ListTasks(ctx, ws.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	assignee := owner.ID
	first.Status = task.StatusTodo
	first.AssignedTo = &assignee
	require.NoError(t, storage.UpdateTask(ctx, first))
	got, err := storage.TaskByID(ctx, ws.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusTodo, got.Status)
	assert.Equal(t, owner.ID, *got.AssignedTo)

	require.NoError(t, storage.DeleteTask(ctx, ws.ID, second.ID))
	assert.ErrorIs(t, storage.DeleteTask(ctx, ws.ID, second.ID), repository.ErrNotFound)
	_, err = storage.TaskByID(ctx, ws.ID, second.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	owner := seedUser(t, storage, "owner@example.com")
	ws := seedWorkspace(t, storage, owner.ID, "alpha")

	tk := &task.Task{WorkspaceID: ws.ID, Title: "original", Status: task.StatusBacklog}
	require.NoError(t, storage.CreateTask(ctx, tk))

	got, err := storage.TaskByID(ctx, ws.ID, tk.ID)
	require.NoError(t, err)
	got.Title = "changed outside"
	tk.Title = "changed by caller"

	again, err := storage.TaskByID(ctx, ws.ID, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

func TestStorage_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	owner := seedUser(t, storage, "owner@example.com")
	ws := seedWorkspace(t, storage, owner.ID, "alpha")
	taskCount := 100
	goroutines := 10

	var wg sync.WaitGroup
	errs := make(chan error, taskCount)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := 0; j < taskCount/goroutines; j++ {
				tk := &task.Task{
					WorkspaceID: ws.ID,
					Title:       fmt.Sprintf("Task %d-%d", workerID, j),
					Status:      task.StatusBacklog,
				}
				if err := storage.CreateTask(ctx, tk); err != nil {
					errs <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	tasks, err := storage.ListTasks(ctx, ws.ID, nil)
	require.NoError(t, err)
	assert.Len(t, tasks, taskCount)

	seen := make(map[int]bool, taskCount)
	for _, tk := range tasks {
		assert.False(t, seen[tk.Order], "order %d is unique", tk.Order)
		seen[tk.Order] = true
	}
}

// TestStorage_ListDueSprints тестирует выборку спринтов, которым пора сменить статус
func TestStorage_ListDueSprints(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	owner := seedUser(t, storage, "owner@example.com")
	ws := seedWorkspace(t, storage, owner.ID, "alpha")
	today := models.NewDate(2025, 3, 10)

	end := func(d models.Date) *models.Date { return &d }
	idle := []*sprint.Sprint{
		{Name: "future", Status: sprint.StatusPlanned, StartDate: today.AddDays(1), EndDate: end(today.AddDays(8))},
		{Name: "running", Status: sprint.StatusActive, StartDate: today.AddDays(-3), EndDate: end(today.AddDays(4))},
		{Name: "ends today", Status: sprint.StatusActive, StartDate: today.AddDays(-7), EndDate: end(today)},
		{Name: "eternal", Status: sprint.StatusActive, StartDate: today.AddDays(-30), IsEternal: true},
		{Name: "done", Status: sprint.StatusCompleted, StartDate: today.AddDays(-30), EndDate: end(today.AddDays(-23))},
	}
	for _, sp := range idle {
		sp.WorkspaceID = ws.ID
		require.NoError(t, storage.CreateSprint(ctx, sp))
	}

	starting := &sprint.Sprint{WorkspaceID: ws.ID, Name: "starting", Status: sprint.StatusPlanned, StartDate: today, EndDate: end(today.AddDays(7))}
	ended := &sprint.Sprint{WorkspaceID: ws.ID, Name: "ended", Status: sprint.StatusActive, StartDate: today.AddDays(-8), EndDate: end(today.AddDays(-1))}
	require.NoError(t, storage.CreateSprint(ctx, starting))
	require.NoError(t, storage.CreateSprint(ctx, ended))

	due, err := storage.ListDueSprints(ctx, today, 2)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, starting.ID, due[0].ID)
	assert.Equal(t, ended.ID, due[1].ID)

	due, err = storage.ListDueSprints(ctx, today, 1)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, starting.ID, due[0].ID)
}
