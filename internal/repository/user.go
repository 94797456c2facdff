package repository

import (
	"context"

	"docflow/internal/model"
)

// UserRepository defines data access for users and their profiles.
type UserRepository interface {
	// CreateUser inserts a new user row. A unique-violation on email is
	// surfaced as the driver error for the service layer to classify.
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)

	// CreateProfile inserts the profile row associated with a user.
	CreateProfile(ctx context.Context, p *model.Profile) (*model.Profile, error)

	// DeleteUser removes a user row by ID. Used as the compensating action
	// when profile creation fails after the user row was inserted.
	DeleteUser(ctx context.Context, id string) error

	// FindByEmail returns a user by email, sql.ErrNoRows when absent.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns a user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindProfileByUserID returns the profile belonging to a user.
	FindProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)
}
