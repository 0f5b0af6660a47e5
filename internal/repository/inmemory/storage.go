package inmemory

import (
	"context"
	"sync"
	"time"

	"sprintboard/internal/logger"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/task"
	"sprintboard/internal/models/user"
	"sprintboard/internal/models/workspace"
	repo "sprintboard/internal/repository"
)

type tokenEntry struct {
	userID    int64
	expiresAt time.Time
}

type membership struct {
	userID   int64
	role     workspace.Role
	joinedAt time.Time
}

// Storage keeps every table in maps guarded by one RWMutex. The id slices keep
// insertion order for listings.
type Storage struct {
	mtx *sync.RWMutex
	now func() time.Time

	users   map[int64]*user.Account
	userIDs []int64
	tokens  map[string]tokenEntry

	workspaces   map[int64]*workspace.Workspace
	workspaceIDs []int64
	members      map[int64][]membership

	sprints   map[int64]*sprint.Sprint
	sprintIDs []int64

	tasks   map[int64]*task.Task
	taskIDs []int64

	lastUserID      int64
	lastWorkspaceID int64
	lastSprintID    int64
	lastTaskID      int64
}

var _ repo.Store = (*Storage)(nil)

func NewStorage() *Storage {
	return &Storage{
		mtx:        &sync.RWMutex{},
		now:        time.Now,
		users:      make(map[int64]*user.Account),
		tokens:     make(map[string]tokenEntry),
		workspaces: make(map[int64]*workspace.Workspace),
		members:    make(map[int64][]membership),
		sprints:    make(map[int64]*sprint.Sprint),
		tasks:      make(map[int64]*task.Task),
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

func removeID(ids []int64, id int64) []int64 {
	for ind, val := range ids {
		if val == id {
			return append(ids[:ind], ids[ind+1:]...)
		}
	}
	return ids
}
