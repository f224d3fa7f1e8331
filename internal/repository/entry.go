package repository

import (
	"context"

	"guestbook/internal/model"
)

// EntryRepository defines data access for guestbook entries using SQL queries only.
// No business logic here — strictly persistence operations.
type EntryRepository interface {
	// Create inserts a new entry record.
	// The caller provides required fields (ID, CreatedAt) according to the schema defaults.
	// Returns the stored entry (may include values set by the DB).
	Create(ctx context.Context, e *model.Entry) (*model.Entry, error)

	// FindByID returns an entry by its ID.
	FindByID(ctx context.Context, id string) (*model.Entry, error)

	// List returns a paginated list of entries and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Entry], error)

	// ListAll returns every entry, newest first. Used by snapshot exports.
	ListAll(ctx context.Context) ([]model.Entry, error)

	// Delete removes an entry by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
