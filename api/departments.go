package api

import (
	"context"
	"fmt"

	"github.com/orchidsoft/taskgate"
)

// DepartmentNode is a department with its nested children, as returned
// by the tree endpoint.
type DepartmentNode struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	ParentID int64            `json:"parent_id,omitempty"`
	Children []DepartmentNode `json:"children,omitempty"`
}

// ListDepartments returns a page of departments.
func (c *Client) ListDepartments(ctx context.Context, opts ListOptions) (*Page[taskgate.Department], error) {
	var page Page[taskgate.Department]
	if err := c.get(ctx, "/v1/departments/departments/", opts.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDepartment returns one department by id.
func (c *Client) GetDepartment(ctx context.Context, id int64) (*taskgate.Department, error) {
	var dept taskgate.Department
	if err := c.get(ctx, fmt.Sprintf("/v1/departments/departments/%d/", id), nil, &dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

// DepartmentTree returns the full department hierarchy.
func (c *Client) DepartmentTree(ctx context.Context) ([]DepartmentNode, error) {
	var tree []DepartmentNode
	if err := c.get(ctx, "/v1/departments/departments/tree/", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Profession is a job profession within the organization.
type Profession struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListProfessions returns a page of professions.
func (c *Client) ListProfessions(ctx context.Context, opts ListOptions) (*Page[Profession], error) {
	var page Page[Profession]
	if err := c.get(ctx, "/v1/departments/professions/", opts.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListUsers returns a page of user profiles. Admin and manager scoped on
// the backend.
func (c *Client) ListUsers(ctx context.Context, opts ListOptions) (*Page[taskgate.Profile], error) {
	var page Page[taskgate.Profile]
	if err := c.get(ctx, "/v1/auth/users/", opts.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
