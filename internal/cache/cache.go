// Package cache holds the read-through cache for guestbook entry listings.
// The service layer treats cache failures as soft: a miss or a backend error
// falls through to the database.
package cache

import (
	"context"
	"errors"

	"guestbook/internal/model"
	"guestbook/internal/repository"
)

// ErrCacheMiss is returned when no cached page exists for the requested key.
var ErrCacheMiss = errors.New("cache miss")

// EntryCache caches paginated entry listings.
type EntryCache interface {
	// GetPage returns the cached page for (limit, offset), or ErrCacheMiss.
	GetPage(ctx context.Context, limit, offset int) (*repository.PageResult[model.Entry], error)

	// SetPage stores a page for (limit, offset) with the configured TTL.
	SetPage(ctx context.Context, limit, offset int, page *repository.PageResult[model.Entry]) error

	// Invalidate drops every cached page. Called after create/delete.
	Invalidate(ctx context.Context) error
}
