package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sprintboard/internal/models/sprint"
	"sprintboard/internal/models/task"
	"sprintboard/internal/models/user"
	"sprintboard/internal/models/workspace"
	"sprintboard/internal/validation"
)

type LoginResult struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates and initializes the session on success.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	in := credentials{Email: email, Password: password}
	if err := validation.Struct(&in).OrNil(); err != nil {
		return LoginResult{}, err
	}

	var res LoginResult
	if err := c.Do(ctx, http.MethodPost, loginPath, in, &res); err != nil {
		return LoginResult{}, err
	}
	c.session.Init(res.Token, res.User)
	return res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.Do(ctx, http.MethodPost, "/logout", nil, nil); err != nil {
		return err
	}
	c.session.Clear()
	return nil
}

func workspacePath(slug string) string {
	return "/workspaces/" + url.PathEscape(slug)
}

func (c *Client) ListWorkspaces(ctx context.Context) ([]workspace.Workspace, error) {
	var out []workspace.Workspace
	if err := c.Do(ctx, http.MethodGet, "/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetWorkspace(ctx context.Context, slug string) (workspace.Workspace, error) {
	var out workspace.Workspace
	if err := c.Do(ctx, http.MethodGet, workspacePath(slug), nil, &out); err != nil {
		return workspace.Workspace{}, err
	}
	return out, nil
}

// CreateWorkspace validates in locally; invalid input is never sent.
func (c *Client) CreateWorkspace(ctx context.Context, in workspace.CreateInput) (workspace.Workspace, error) {
	in, err := validation.ValidateCreateWorkspace(in)
	if err != nil {
		return workspace.Workspace{}, err
	}

	var out workspace.Workspace
	if err := c.Do(ctx, http.MethodPost, "/workspaces", in, &out); err != nil {
		return workspace.Workspace{}, err
	}
	return out, nil
}

// UpdateWorkspace checks the merged result of current and in before sending.
func (c *Client) UpdateWorkspace(ctx context.Context, current workspace.Workspace, in workspace.UpdateInput) (workspace.Workspace, error) {
	in, err := validation.ValidateUpdateWorkspace(current, in)
	if err != nil {
		return workspace.Workspace{}, err
	}

	var out workspace.Workspace
	if err := c.Do(ctx, http.MethodPatch, workspacePath(current.Slug), in, &out); err != nil {
		return workspace.Workspace{}, err
	}
	return out, nil
}

func (c *Client) AddMember(ctx context.Context, slug, email string) (workspace.Member, error) {
	in := workspace.AddMemberInput{Email: email}
	if err := validation.Struct(&in).OrNil(); err != nil {
		return workspace.Member{}, err
	}

	var out workspace.Member
	if err := c.Do(ctx, http.MethodPost, workspacePath(slug)+"/members", in, &out); err != nil {
		return workspace.Member{}, err
	}
	return out, nil
}

func sprintPath(slug string, id int64) string {
	return workspacePath(slug) + "/sprints/" + strconv.FormatInt(id, 10)
}

func (c *Client) ListSprints(ctx context.Context, slug string) ([]sprint.Sprint, error) {
	var out []sprint.Sprint
	if err := c.Do(ctx, http.MethodGet, workspacePath(slug)+"/sprints", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSprint(ctx context.Context, slug string, id int64) (sprint.Sprint, error) {
	var out sprint.Sprint
	if err := c.Do(ctx, http.MethodGet, sprintPath(slug, id), nil, &out); err != nil {
		return sprint.Sprint{}, err
	}
	return out, nil
}

// CreateSprint sends a plan produced by the lifecycle engine.
func (c *Client) CreateSprint(ctx context.Context, slug string, plan sprint.Plan) (sprint.Sprint, error) {
	var out sprint.Sprint
	if err := c.Do(ctx, http.MethodPost, workspacePath(slug)+"/sprints", plan, &out); err != nil {
		return sprint.Sprint{}, err
	}
	return out, nil
}

func (c *Client) UpdateSprint(ctx context.Context, slug string, id int64, patch sprint.ValidPatch) (sprint.Sprint, error) {
	var out sprint.Sprint
	if err := c.Do(ctx, http.MethodPatch, sprintPath(slug, id), patch, &out); err != nil {
		return sprint.Sprint{}, err
	}
	return out, nil
}

func taskPath(slug string, id int64) string {
	return workspacePath(slug) + "/tasks/" + strconv.FormatInt(id, 10)
}

// ListTasks returns the tasks of one sprint, or of the whole workspace when sprintID is nil.
func (c *Client) ListTasks(ctx context.Context, slug string, sprintID *int64) ([]task.Task, error) {
	path := workspacePath(slug) + "/tasks"
	if sprintID != nil {
		q := url.Values{}
		q.Set("sprint_id", strconv.FormatInt(*sprintID, 10))
		path += "?" + q.Encode()
	}

	var out []task.Task
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTask(ctx context.Context, slug string, id int64) (task.Task, error) {
	var out task.Task
	if err := c.Do(ctx, http.MethodGet, taskPath(slug, id), nil, &out); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

// CreateTask sends a payload produced by the transition engine.
func (c *Client) CreateTask(ctx context.Context, slug string, p task.NormalizedPatch) (task.Task, error) {
	var out task.Task
	if err := c.Do(ctx, http.MethodPost, workspacePath(slug)+"/tasks", p, &out); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, slug string, id int64, p task.NormalizedPatch) (task.Task, error) {
	var out task.Task
	if err := c.Do(ctx, http.MethodPut, taskPath(slug, id), p, &out); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, slug string, id int64) error {
	return c.Do(ctx, http.MethodDelete, taskPath(slug, id), nil, nil)
}
