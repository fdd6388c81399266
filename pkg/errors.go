// Package pkg holds small helpers shared across layers: domain error
// sentinels and HTTP response writing.
//
// Handlers map these sentinels to HTTP status codes; services wrap them
// with context via fmt.Errorf("%w: ...") so errors.Is still matches.
package pkg

import "errors"

// Domain-level errors. The service layer returns these, the handler layer
// (via Error in response.go) converts them to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal error")
)
