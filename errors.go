package taskgate

import "errors"

var (
	// ErrInvalidCredentials is returned by Login when the username or
	// password is empty or rejected by the backend.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotLoggedIn is returned by operations that require an
	// established session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrMalformedResponse is returned when the gateway answers a
	// successful call with an incomplete payload.
	ErrMalformedResponse = errors.New("malformed gateway response")
	// ErrRefreshInvalid is returned when the stored refresh token is
	// rejected and the session cannot be restored.
	ErrRefreshInvalid = errors.New("invalid refresh token")
	// ErrSessionNotReady is returned when a Session is used before
	// Builder.Build wired its dependencies.
	ErrSessionNotReady = errors.New("session not initialized")
)
