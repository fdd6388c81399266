// Package handlers contains the thin HTTP layer: parse the request,
// call a service, write the response. No business logic, no SQL.
package handlers

// contextKey is a private type for request-context values, so keys
// cannot collide with other packages.
type contextKey string

// UserContextKey carries the *models.User resolved by the auth
// middleware.
const UserContextKey contextKey = "user"
