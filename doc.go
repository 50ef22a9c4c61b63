// Package taskgate is the client-side session and authorization core for the
// org task-management service. It owns the access/refresh token lifecycle,
// the authenticated user profile, the derived permission set, and the
// decisions consumed by the route guard.
//
// A [Session] is built through [Builder.Build] and is safe for concurrent use
// after construction. All session mutation funnels through Session operations
// (Login, Logout, CheckLoginStatus, FetchPermissions and the internal token
// refresh path); nothing else writes session state.
//
// # Architecture boundaries
//
// taskgate is the public surface. It exposes [Session], [Builder], [Config],
// the [Gateway] network contract, and value types (Profile, PermissionSet,
// MetricsSnapshot, AuditEvent). Transport lives in the api subpackage,
// credential persistence in storage and token, pure capability resolution in
// permission, and navigation interception in guard.
//
// # What this package must NOT do
//
//   - Speak HTTP. All network operations go through the injected [Gateway].
//   - Touch durable storage directly. Credentials go through [token.Repository].
//   - Let a permission fetch failure reach callers: fire-and-forget paths
//     degrade to the default permission set and never propagate an error.
package taskgate
