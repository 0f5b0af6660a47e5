package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sprintboard/internal/handlers"
	"sprintboard/internal/handlers/dto"
	"sprintboard/internal/middleware"
	"sprintboard/internal/models"
	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/task"
	"sprintboard/internal/models/user"
	"sprintboard/internal/models/workspace"
	"sprintboard/internal/service"
	"sprintboard/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var currentUser = &user.User{ID: 1, Name: "Owner", Email: "owner@example.com"}

// MockWorkspaceService - мок сервиса рабочих пространств
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) List(ctx context.Context, userID int64) ([]*workspace.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspace.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Get(ctx context.Context, slug string, userID int64) (*workspace.Workspace, error) {
	args := m.Called(ctx, slug, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Create(ctx context.Context, userID int64, in workspace.CreateInput) (*workspace.Workspace, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Update(ctx context.Context, slug string, userID int64, in workspace.UpdateInput) (*workspace.Workspace, error) {
	args := m.Called(ctx, slug, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) AddMember(ctx context.Context, slug string, userID int64, in workspace.AddMemberInput) (*workspace.Member, error) {
	args := m.Called(ctx, slug, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.Member), args.Error(1)
}

// MockSprintService - мок сервиса спринтов
type MockSprintService struct {
	mock.Mock
}

func (m *MockSprintService) List(ctx context.Context, slug string, userID int64) ([]*sprint.Sprint, error) {
	args := m.Called(ctx, slug, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sprint.Sprint), args.Error(1)
}

func (m *MockSprintService) Get(ctx context.Context, slug string, id, userID int64) (*sprint.Sprint, error) {
	args := m.Called(ctx, slug, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sprint.Sprint), args.Error(1)
}

func (m *MockSprintService) Create(ctx context.Context, slug string, userID int64, in service.CreateSprintInput) (*sprint.Sprint, error) {
	args := m.Called(ctx, slug, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sprint.Sprint), args.Error(1)
}

func (m *MockSprintService) Update(ctx context.Context, slug string, id, userID int64, patch sprint.Patch) (*sprint.Sprint, error) {
	args := m.Called(ctx, slug, id, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sprint.Sprint), args.Error(1)
}

// MockTaskService - мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) List(ctx context.Context, slug string, userID int64, sprintID *int64) ([]*task.Task, error) {
	args := m.Called(ctx, slug, userID, sprintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, slug string, id, userID int64) (*task.Task, error) {
	args := m.Called(ctx, slug, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, slug string, userID int64, in task.CreateInput) (*task.Task, error) {
	args := m.Called(ctx, slug, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, slug string, id, userID int64, patch task.Patch) (*task.Task, error) {
	args := m.Called(ctx, slug, id, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, slug string, id, userID int64) error {
	args := m.Called(ctx, slug, id, userID)
	return args.Error(0)
}

// MockAuthService - мок сервиса аутентификации
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var (
	_ handlers.WorkspaceService = (*MockWorkspaceService)(nil)
	_ handlers.SprintService    = (*MockSprintService)(nil)
	_ handlers.TaskService      = (*MockTaskService)(nil)
	_ handlers.AuthService      = (*MockAuthService)(nil)
)

// serve routes one request through chi so URL parameters resolve, as the
// Authenticate middleware would with currentUser.
func serve(method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUser(req.Context(), currentUser)))
		})
	})
	r.MethodFunc(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeFailure(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var res dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Success)
	return res
}

// TestHealthHandler_HealthCheck тестирует проверку здоровья
func TestHealthHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		checkErr       error
		expectedStatus int
	}{
		{name: "success - healthy", expectedStatus: http.StatusOK},
		{name: "error - unhealthy", checkErr: errors.New("connection refused"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(MockHealthChecker)
			checker.On("HealthCheck", mock.Anything).Return(tt.checkErr)
			handler := handlers.HealthHandler{Repository: checker, RepositoryType: "inmemory"}

			w := httptest.NewRecorder()
			handler.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				res, err := dto.Decode[dto.HealthResponse](w.Body.Bytes())
				require.NoError(t, err)
				assert.True(t, res.Success)
				assert.Equal(t, "inmemory", res.Data.Repository)
			}
			checker.AssertExpectations(t)
		})
	}
}

// TestAuthHandler_Login тестирует вход
func TestAuthHandler_Login(t *testing.T) {
	input := service.LoginInput{Email: "owner@example.com", Password: "password"}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAuthService)
		expectedStatus int
		expectedField  string
	}{
		{
			name: "success - token returned",
			body: `{"email":"owner@example.com","password":"password"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, input).
					Return(&service.LoginResult{User: *currentUser, Token: "abc"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "error - bad credentials are a field error",
			body: `{"email":"owner@example.com","password":"password"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, input).
					Return(nil, service.NewValidationError("email", "The provided credentials are incorrect."))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "email",
		},
		{
			name:           "error - malformed body",
			body:           `{"email":`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.setupMock(mockService)
			handler := handlers.NewAuthHandler(mockService)

			w := serve(http.MethodPost, "/login", "/login", tt.body, handler.Login)

			assert.Equal(t, tt.expectedStatus, w.Code)
			switch {
			case tt.expectedStatus == http.StatusOK:
				res, err := dto.Decode[service.LoginResult](w.Body.Bytes())
				require.NoError(t, err)
				assert.Equal(t, "abc", res.Data.Token)
				assert.Equal(t, currentUser.Email, res.Data.User.Email)
			case tt.expectedField != "":
				res := decodeFailure(t, w)
				assert.True(t, res.Errors.Has(tt.expectedField))
			default:
				res := decodeFailure(t, w)
				assert.Nil(t, res.Errors)
			}
			mockService.AssertExpectations(t)
		})
	}
}

// TestAuthHandler_Logout тестирует выход с токеном из заголовка
func TestAuthHandler_Logout(t *testing.T) {
	mockService := new(MockAuthService)
	mockService.On("Logout", mock.Anything, "abc").Return(nil)
	handler := handlers.NewAuthHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "Bearer  abc ", want: "abc"},
		{header: "Basic abc", want: ""},
		{header: "", want: ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", tt.header)
		assert.Equal(t, tt.want, handlers.BearerToken(req), tt.header)
	}
}

// TestWorkspaceHandler_Get тестирует получение пространства и отображение бизнес-ошибок
func TestWorkspaceHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockWorkspaceService)
		expectedStatus int
	}{
		{
			name: "success - workspace returned",
			setupMock: func(m *MockWorkspaceService) {
				m.On("Get", mock.Anything, "team", currentUser.ID).
					Return(&workspace.Workspace{ID: 1, Slug: "team", Name: "Team", IsOwner: true}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "error - not a member",
			setupMock: func(m *MockWorkspaceService) {
				m.On("Get", mock.Anything, "team", currentUser.ID).
					Return(nil, service.NewNotFound("Workspace", "team"))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "error - unexpected failure",
			setupMock: func(m *MockWorkspaceService) {
				m.On("Get", mock.Anything, "team", currentUser.ID).
					Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockWorkspaceService)
			tt.setupMock(mockService)
			handler := handlers.NewWorkspaceHandler(mockService)

			w := serve(http.MethodGet, "/workspaces/{slug}", "/workspaces/team", "", handler.Get)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				res, err := dto.Decode[workspace.Workspace](w.Body.Bytes())
				require.NoError(t, err)
				assert.True(t, res.Data.IsOwner)
				assert.Equal(t, "team", res.Data.Slug)
			} else {
				res := decodeFailure(t, w)
				assert.NotEmpty(t, res.Message)
				assert.Nil(t, res.Errors)
			}
			mockService.AssertExpectations(t)
		})
	}
}

// TestWorkspaceHandler_Create тестирует создание пространства
func TestWorkspaceHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(*MockWorkspaceService)
		expectedStatus int
	}{
		{
			name:        "success - created",
			body:        `{"name":"Team","sprint_enabled":true,"sprint_duration":"weekly"}`,
			contentType: "application/json",
			setupMock: func(m *MockWorkspaceService) {
				in := workspace.CreateInput{Name: "Team", SprintEnabled: true, SprintDuration: workspace.DurationWeekly}
				m.On("Create", mock.Anything, currentUser.ID, in).
					Return(&workspace.Workspace{ID: 1, Slug: "team", Name: "Team"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "error - policy violation",
			body:        `{"name":"Team","sprint_enabled":true,"sprint_duration":null}`,
			contentType: "application/json",
			setupMock: func(m *MockWorkspaceService) {
				in := workspace.CreateInput{Name: "Team", SprintEnabled: true}
				errs := validation.New("sprint_duration", "Sprint duration is required when sprint mode is enabled")
				m.On("Create", mock.Anything, currentUser.ID, in).Return(nil, service.FromValidation(errs))
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "error - invalid content type",
			body:           `{}`,
			contentType:    "text/plain",
			setupMock:      func(m *MockWorkspaceService) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockWorkspaceService)
			tt.setupMock(mockService)
			handler := handlers.NewWorkspaceHandler(mockService)

			r := chi.NewRouter()
			r.Post("/workspaces", func(w http.ResponseWriter, req *http.Request) {
				handler.Create(w, req.WithContext(middleware.WithUser(req.Context(), currentUser)))
			})
			req := httptest.NewRequest(http.MethodPost, "/workspaces", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnprocessableEntity {
				res := decodeFailure(t, w)
				assert.Equal(t, "Sprint duration is required when sprint mode is enabled", res.Message)
				assert.True(t, res.Errors.Has("sprint_duration"))
			}
			mockService.AssertExpectations(t)
		})
	}
}

// TestWorkspaceHandler_AddMember тестирует добавление гостя
func TestWorkspaceHandler_AddMember(t *testing.T) {
	mockService := new(MockWorkspaceService)
	mockService.On("AddMember", mock.Anything, "team", currentUser.ID, workspace.AddMemberInput{Email: "guest@example.com"}).
		Return(&workspace.Member{ID: 2, Email: "guest@example.com", Role: workspace.RoleGuest}, nil)
	handler := handlers.NewWorkspaceHandler(mockService)

	w := serve(http.MethodPost, "/workspaces/{slug}/members", "/workspaces/team/members",
		`{"email":"guest@example.com"}`, handler.AddMember)

	assert.Equal(t, http.StatusCreated, w.Code)
	res, err := dto.Decode[workspace.Member](w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, workspace.RoleGuest, res.Data.Role)
	mockService.AssertExpectations(t)
}

// TestSprintHandler_Update тестирует частичное обновление спринта
func TestSprintHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		body           string
		setupMock      func(*MockSprintService)
		expectedStatus int
	}{
		{
			name:   "success - status only",
			target: "/workspaces/team/sprints/3",
			body:   `{"status":"completed"}`,
			setupMock: func(m *MockSprintService) {
				patch := sprint.Patch{Status: models.Some(sprint.StatusCompleted)}
				m.On("Update", mock.Anything, "team", int64(3), currentUser.ID, patch).
					Return(&sprint.Sprint{ID: 3, Status: sprint.StatusCompleted}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "error - guest forbidden",
			target: "/workspaces/team/sprints/3",
			body:   `{"name":"Renamed"}`,
			setupMock: func(m *MockSprintService) {
				patch := sprint.Patch{Name: models.Some("Renamed")}
				m.On("Update", mock.Anything, "team", int64(3), currentUser.ID, patch).
					Return(nil, service.NewForbidden("Only the workspace owner can manage sprints."))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "error - bad id",
			target:         "/workspaces/team/sprints/abc",
			body:           `{}`,
			setupMock:      func(m *MockSprintService) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSprintService)
			tt.setupMock(mockService)
			handler := handlers.NewSprintHandler(mockService)

			w := serve(http.MethodPatch, "/workspaces/{slug}/sprints/{id}", tt.target, tt.body, handler.Update)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestSprintHandler_Create тестирует создание спринта
func TestSprintHandler_Create(t *testing.T) {
	start := models.NewDate(2030, 1, 6)
	end := start.AddDays(7)

	mockService := new(MockSprintService)
	mockService.On("Create", mock.Anything, "team", currentUser.ID, service.CreateSprintInput{Name: "Sprint 1", StartDate: start}).
		Return(&sprint.Sprint{ID: 1, Name: "Sprint 1", StartDate: start, EndDate: &end, Status: sprint.StatusPlanned}, nil)
	handler := handlers.NewSprintHandler(mockService)

	w := serve(http.MethodPost, "/workspaces/{slug}/sprints", "/workspaces/team/sprints",
		`{"name":"Sprint 1","start_date":"2030-01-06","end_date":"2031-01-01","is_eternal":true}`, handler.Create)

	require.Equal(t, http.StatusCreated, w.Code)
	res, err := dto.Decode[sprint.Sprint](w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "2030-01-13", res.Data.EndDate.String())
	mockService.AssertExpectations(t)
}

// TestTaskHandler_List тестирует фильтр по спринту
func TestTaskHandler_List(t *testing.T) {
	sprintID := int64(4)

	tests := []struct {
		name           string
		target         string
		setupMock      func(*MockTaskService)
		expectedStatus int
	}{
		{
			name:   "success - whole workspace",
			target: "/workspaces/team/tasks",
			setupMock: func(m *MockTaskService) {
				m.On("List", mock.Anything, "team", currentUser.ID, (*int64)(nil)).
					Return([]*task.Task{{ID: 1, Title: "A"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "success - one sprint",
			target: "/workspaces/team/tasks?sprint_id=4",
			setupMock: func(m *MockTaskService) {
				m.On("List", mock.Anything, "team", currentUser.ID, &sprintID).
					Return([]*task.Task{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - sprint id not a number",
			target:         "/workspaces/team/tasks?sprint_id=x",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "error - sprint of another workspace",
			target: "/workspaces/team/tasks?sprint_id=4",
			setupMock: func(m *MockTaskService) {
				m.On("List", mock.Anything, "team", currentUser.ID, &sprintID).
					Return(nil, service.NewNotFound("Sprint", sprintID))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)
			handler := handlers.NewTaskHandler(mockService)

			w := serve(http.MethodGet, "/workspaces/{slug}/tasks", tt.target, "", handler.List)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnprocessableEntity {
				res := decodeFailure(t, w)
				assert.True(t, res.Errors.Has("sprint_id"))
			}
			mockService.AssertExpectations(t)
		})
	}
}

// TestTaskHandler_Update тестирует обновление задачи и ошибки полей
func TestTaskHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedField  string
	}{
		{
			name: "success - moved to backlog",
			body: `{"status":"backlog","assigned_to":null}`,
			setupMock: func(m *MockTaskService) {
				patch := task.Patch{Status: models.Some(task.StatusBacklog), AssignedTo: models.Null[int64]()}
				m.On("Update", mock.Anything, "team", int64(9), currentUser.ID, patch).
					Return(&task.Task{ID: 9, Status: task.StatusBacklog}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "error - assignee required",
			body: `{"status":"todo","assigned_to":null}`,
			setupMock: func(m *MockTaskService) {
				patch := task.Patch{Status: models.Some(task.StatusTodo), AssignedTo: models.Null[int64]()}
				errs := validation.New("assigned_to", "required unless status is backlog")
				m.On("Update", mock.Anything, "team", int64(9), currentUser.ID, patch).
					Return(nil, service.FromValidation(errs))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "assigned_to",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)
			handler := handlers.NewTaskHandler(mockService)

			w := serve(http.MethodPut, "/workspaces/{slug}/tasks/{id}", "/workspaces/team/tasks/9", tt.body, handler.Update)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedField != "" {
				res := decodeFailure(t, w)
				assert.Equal(t, "required unless status is backlog", res.Errors.Field(tt.expectedField))
			}
			mockService.AssertExpectations(t)
		})
	}
}

// TestTaskHandler_Delete тестирует удаление задачи
func TestTaskHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "success - deleted", expectedStatus: http.StatusOK},
		{name: "error - not creator", err: service.NewForbidden("Only the creator or the owner can delete this task."), expectedStatus: http.StatusForbidden},
		{name: "error - missing", err: service.NewNotFound("Task", 9), expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			mockService.On("Delete", mock.Anything, "team", int64(9), currentUser.ID).Return(tt.err)
			handler := handlers.NewTaskHandler(mockService)

			w := serve(http.MethodDelete, "/workspaces/{slug}/tasks/{id}", "/workspaces/team/tasks/9", "", handler.Delete)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
