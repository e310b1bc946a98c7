// Package users implements user profile management. Users are created by
// the auth domain on first phone verification and managed here afterwards.
package users

import (
	"context"

	"github.com/JaimeStill/pledge/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the interface for user management.
type System interface {
	// List returns a paginated list of users matching the filter criteria.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error)

	// Find retrieves a user by ID.
	// Returns ErrNotFound if the user does not exist.
	Find(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByPhone retrieves a user by E.164 phone number.
	// Returns ErrNotFound if no user has the number.
	FindByPhone(ctx context.Context, phone string) (*User, error)

	// Create validates and stores a new user. An empty avatar is derived
	// from the name.
	// Returns ErrDuplicate if the phone number is registered.
	Create(ctx context.Context, cmd CreateCommand) (*User, error)

	// Update modifies a user's profile.
	// Returns ErrNotFound if the user does not exist.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error)

	// Delete removes a user and, through cascading keys, their sessions.
	// Returns ErrNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
