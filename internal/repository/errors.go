// Package repository implements data access on the shared pgx pool.  This
// file defines sentinel error values reused across repositories so that
// handlers can map failure scenarios to distinct HTTP responses: a duplicate
// registration becomes 409, a missing user 404, and so on.
package repository

import "errors"

// ErrEmailExists is returned when registering an email that is already
// taken (unique constraint on auth.users.email).  Handlers translate this
// into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a looked-up entity does not exist.  Handlers
// translate this into HTTP 404.
var ErrNotFound = errors.New("not found")
