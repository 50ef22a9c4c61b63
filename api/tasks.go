package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Task statuses used by the backend state machine.
const (
	TaskStatusDraft      = "draft"
	TaskStatusPublished  = "published"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task is a backend task record.
type Task struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority,omitempty"`
	DepartmentID int64      `json:"department_id,omitempty"`
	CreatorID    int64      `json:"creator_id,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Page is one page of a list endpoint's envelope.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []T    `json:"results"`
}

// ListOptions are the common list-endpoint query parameters.
type ListOptions struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
	Status   string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Ordering != "" {
		q.Set("ordering", o.Ordering)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	return q
}

// ListTasks returns a page of all tasks visible to the current user.
func (c *Client) ListTasks(ctx context.Context, opts ListOptions) (*Page[Task], error) {
	return c.taskPage(ctx, "/v1/tasks/tasks/", opts)
}

// MyTasks returns tasks where the current user participates.
func (c *Client) MyTasks(ctx context.Context, opts ListOptions) (*Page[Task], error) {
	return c.taskPage(ctx, "/v1/tasks/tasks/my_tasks/", opts)
}

// AssignedTasks returns tasks assigned to the current user.
func (c *Client) AssignedTasks(ctx context.Context, opts ListOptions) (*Page[Task], error) {
	return c.taskPage(ctx, "/v1/tasks/tasks/assigned_to_me/", opts)
}

// CreatedTasks returns tasks the current user created.
func (c *Client) CreatedTasks(ctx context.Context, opts ListOptions) (*Page[Task], error) {
	return c.taskPage(ctx, "/v1/tasks/tasks/created_by_me/", opts)
}

// OverdueTasks returns tasks past their deadline.
func (c *Client) OverdueTasks(ctx context.Context, opts ListOptions) (*Page[Task], error) {
	return c.taskPage(ctx, "/v1/tasks/tasks/overdue/", opts)
}

func (c *Client) taskPage(ctx context.Context, path string, opts ListOptions) (*Page[Task], error) {
	var page Page[Task]
	if err := c.get(ctx, path, opts.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTask returns one task by id.
func (c *Client) GetTask(ctx context.Context, id int64) (*Task, error) {
	var task Task
	if err := c.get(ctx, fmt.Sprintf("/v1/tasks/tasks/%d/", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTaskRequest is the payload for CreateTask.
type CreateTaskRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Priority     string     `json:"priority,omitempty"`
	DepartmentID int64      `json:"department_id,omitempty"`
	AssigneeIDs  []int64    `json:"assignee_ids,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

// CreateTask creates a task in draft status.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.post(ctx, "/v1/tasks/tasks/", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces a task's mutable fields.
func (c *Client) UpdateTask(ctx context.Context, id int64, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.put(ctx, fmt.Sprintf("/v1/tasks/tasks/%d/", id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/v1/tasks/tasks/%d/", id))
}

// PublishTask moves a draft task to published.
func (c *Client) PublishTask(ctx context.Context, id int64) (*Task, error) {
	var task Task
	if err := c.post(ctx, fmt.Sprintf("/v1/tasks/tasks/%d/publish/", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CancelTask cancels a task in any pre-completed status.
func (c *Client) CancelTask(ctx context.Context, id int64) (*Task, error) {
	var task Task
	if err := c.post(ctx, fmt.Sprintf("/v1/tasks/tasks/%d/cancel/", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskStatistics is the aggregate the statistics endpoint returns.
type TaskStatistics struct {
	Total      int `json:"total"`
	Draft      int `json:"draft"`
	Published  int `json:"published"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Overdue    int `json:"overdue"`
}

// GetTaskStatistics returns task counts by status for the current user's scope.
func (c *Client) GetTaskStatistics(ctx context.Context) (*TaskStatistics, error) {
	var stats TaskStatistics
	if err := c.get(ctx, "/v1/tasks/tasks/statistics/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Assignment links a task to an assignee with an acceptance state.
type Assignment struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"task_id"`
	AssigneeID int64     `json:"assignee_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListAssignments returns a page of the current user's task assignments.
func (c *Client) ListAssignments(ctx context.Context, opts ListOptions) (*Page[Assignment], error) {
	var page Page[Assignment]
	if err := c.get(ctx, "/v1/tasks/assignments/", opts.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AcceptAssignment accepts an assignment offered to the current user.
func (c *Client) AcceptAssignment(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/v1/tasks/assignments/%d/accept/", id), nil, nil)
}

// RejectAssignment declines an assignment offered to the current user.
func (c *Client) RejectAssignment(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/v1/tasks/assignments/%d/reject/", id), nil, nil)
}

// CompleteAssignment marks the current user's part of a task as done.
func (c *Client) CompleteAssignment(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/v1/tasks/assignments/%d/complete/", id), nil, nil)
}
