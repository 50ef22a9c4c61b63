// Package permission is the pure capability resolver: a deterministic
// function of (role, superuser flag, permission flags) with no I/O and no
// mutation, so it can be tested independently of network state.
//
// Capability names form a closed set. [ParseCheck] is a deliberate
// allow-list, not a pass-through into the raw permission map: a typo in
// route metadata resolves to an unknown check and is denied, never
// silently granted.
//
// # What this package must NOT do
//
//   - Fetch or cache anything (the Session owns permission state).
//   - Accept free-form permission names beyond the registered checks.
package permission
