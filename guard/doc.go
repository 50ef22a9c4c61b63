// Package guard intercepts navigation attempts and decides allow or
// redirect before the navigation proceeds. Each evaluation fully
// resolves — including the session restore-from-storage step — so no
// navigation completes in an indeterminate auth state.
//
// # Architecture boundaries
//
// The guard consults an [Authorizer] (the taskgate Session) and the
// route's declared metadata (requiresAuth, permission). It translates
// those answers into a [Decision]; it makes no authorization decisions
// of its own and ignores any other route metadata.
//
// # What this package must NOT do
//
//   - Mutate session state (restore happens inside the Authorizer).
//   - Treat a permission denial as an error: it is a defined redirect
//     outcome.
package guard
