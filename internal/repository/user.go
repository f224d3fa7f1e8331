package repository

import (
	"context"

	"guestbook/internal/model"
)

// UserRepository defines data access for registered users.
type UserRepository interface {
	// Create inserts a new user record and returns the stored row.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByUsername returns a user by username. sql.ErrNoRows when absent.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
