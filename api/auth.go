package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/orchidsoft/taskgate"
)

// Compile-time check that Client satisfies the session's gateway contract.
var _ taskgate.Gateway = (*Client)(nil)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access  string            `json:"access"`
	Refresh string            `json:"refresh"`
	User    *taskgate.Profile `json:"user"`
}

// Authenticate exchanges credentials for a token pair and profile.
// A 401 from the backend surfaces as taskgate.ErrInvalidCredentials.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*taskgate.LoginResult, error) {
	var resp loginResponse
	err := c.post(ctx, "/v1/auth/login/", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %v", taskgate.ErrInvalidCredentials, err)
		}
		return nil, err
	}

	return &taskgate.LoginResult{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		Profile:      resp.User,
	}, nil
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// EndSession invalidates the refresh token server-side.
func (c *Client) EndSession(ctx context.Context, refreshToken string) error {
	return c.post(ctx, "/v1/auth/logout/", refreshRequest{Refresh: refreshToken}, nil)
}

// RenewToken exchanges a refresh token for a fresh access token. A 401
// means the refresh token is spent and surfaces as taskgate.ErrRefreshInvalid.
func (c *Client) RenewToken(ctx context.Context, refreshToken string) (string, error) {
	var resp struct {
		Access string `json:"access"`
	}
	err := c.post(ctx, "/v1/auth/token/refresh/", refreshRequest{Refresh: refreshToken}, &resp)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return "", fmt.Errorf("%w: %v", taskgate.ErrRefreshInvalid, err)
		}
		return "", err
	}
	return resp.Access, nil
}

// FetchProfile returns the profile bound to the current access token.
func (c *Client) FetchProfile(ctx context.Context) (*taskgate.Profile, error) {
	var profile taskgate.Profile
	if err := c.get(ctx, "/v1/auth/users/me/", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FetchPermissionSet returns the server-declared permission payload.
func (c *Client) FetchPermissionSet(ctx context.Context) (*taskgate.PermissionSet, error) {
	var set taskgate.PermissionSet
	if err := c.get(ctx, "/v1/auth/permissions/", nil, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// ChangePasswordRequest carries the password rotation payload. The backend
// validates that NewPassword and ConfirmPassword match.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword rotates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.post(ctx, "/v1/auth/users/change_password/", req, nil)
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// UpdateProfile updates the current user's profile and returns the new state.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*taskgate.Profile, error) {
	var profile taskgate.Profile
	if err := c.put(ctx, "/v1/auth/users/update_profile/", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// RegisterUserRequest creates a user account. Admin-only on the backend.
type RegisterUserRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	DepartmentID int64  `json:"department_id,omitempty"`
}

// RegisterUser creates a new user account.
func (c *Client) RegisterUser(ctx context.Context, req RegisterUserRequest) (*taskgate.Profile, error) {
	var profile taskgate.Profile
	if err := c.post(ctx, "/v1/auth/register/", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
