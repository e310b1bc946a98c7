package routes

import "errors"

// ErrNotFound indicates no route in the group matches the method and path.
var ErrNotFound = errors.New("route not found")
