package model

import "time"

// Entry represents a single guestbook message.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, cache) without coupling to persistence.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Entry     string    `json:"entry"`
	CreatedAt time.Time `json:"date"`
}
