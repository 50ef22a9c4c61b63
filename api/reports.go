package api

import (
	"context"
	"net/url"
)

// ReportRange bounds a report query to a date window. Dates use the
// backend's YYYY-MM-DD format; empty strings mean unbounded.
type ReportRange struct {
	StartDate string
	EndDate   string
}

func (r ReportRange) query() url.Values {
	q := url.Values{}
	if r.StartDate != "" {
		q.Set("start_date", r.StartDate)
	}
	if r.EndDate != "" {
		q.Set("end_date", r.EndDate)
	}
	return q
}

// TaskOverview is the headline numbers of the reporting dashboard.
type TaskOverview struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	OverdueTasks   int     `json:"overdue_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

// GetTaskOverview returns the aggregate task overview.
func (c *Client) GetTaskOverview(ctx context.Context, r ReportRange) (*TaskOverview, error) {
	var overview TaskOverview
	if err := c.get(ctx, "/v1/reports/task_overview/", r.query(), &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// CompletionRatePoint is one department's completion rate.
type CompletionRatePoint struct {
	DepartmentID   int64   `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	CompletionRate float64 `json:"completion_rate"`
}

// GetTaskCompletionRate returns completion rate per department.
func (c *Client) GetTaskCompletionRate(ctx context.Context, r ReportRange) ([]CompletionRatePoint, error) {
	var points []CompletionRatePoint
	if err := c.get(ctx, "/v1/reports/task_completion_rate/", r.query(), &points); err != nil {
		return nil, err
	}
	return points, nil
}

// WorkloadPoint is one department's open task load.
type WorkloadPoint struct {
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	ActiveTasks    int    `json:"active_tasks"`
	AssignedUsers  int    `json:"assigned_users"`
}

// GetDepartmentWorkload returns the per-department workload distribution.
func (c *Client) GetDepartmentWorkload(ctx context.Context, r ReportRange) ([]WorkloadPoint, error) {
	var points []WorkloadPoint
	if err := c.get(ctx, "/v1/reports/department_workload/", r.query(), &points); err != nil {
		return nil, err
	}
	return points, nil
}

// StatusDistribution maps task status to count.
type StatusDistribution map[string]int

// GetTaskStatusDistribution returns the global status breakdown.
func (c *Client) GetTaskStatusDistribution(ctx context.Context, r ReportRange) (StatusDistribution, error) {
	var dist StatusDistribution
	if err := c.get(ctx, "/v1/reports/task_status_distribution/", r.query(), &dist); err != nil {
		return nil, err
	}
	return dist, nil
}
