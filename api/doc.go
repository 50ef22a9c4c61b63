// Package api is the HTTP client for the task-management backend.
//
// Client implements taskgate.Gateway for the session core and additionally
// exposes typed wrappers for the task, department, notification and report
// endpoints. Every call takes a context, attaches the current access token
// as a bearer header, stamps an X-Request-ID, and maps backend status codes
// onto sentinel errors so callers can branch with errors.Is.
package api
