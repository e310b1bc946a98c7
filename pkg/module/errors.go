package module

import "errors"

var (
	// ErrInvalidPrefix indicates a mount prefix is empty or malformed.
	ErrInvalidPrefix = errors.New("invalid module prefix")

	// ErrDuplicatePrefix indicates a prefix is already mounted on the router.
	ErrDuplicatePrefix = errors.New("duplicate module prefix")

	// ErrNotFound indicates no mounted module or native route matches a request.
	ErrNotFound = errors.New("not found")

	// ErrSealed indicates a mount was attempted after the router started serving.
	ErrSealed = errors.New("router is sealed")
)
