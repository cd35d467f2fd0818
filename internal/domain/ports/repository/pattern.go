package repository

import (
	"context"

	"telegram-appointment-monitor/internal/domain/model"
)

// PatternRepository is the port for the pattern registry. Implementations own
// durability and ordering: List returns patterns in insertion order, Add and
// Remove persist before returning, and a persistence failure must leave the
// in-memory registry as the source of truth for the rest of the process.
type PatternRepository interface {
	// Add inserts a new pattern. Returns domain.ErrAlreadyExists when the
	// case-sensitive key is already present.
	Add(ctx context.Context, p model.Pattern) error
	// Remove deletes a pattern by its exact raw text. Returns
	// domain.ErrNotFound when absent.
	Remove(ctx context.Context, p model.Pattern) error
	// List returns the current patterns in insertion order.
	List(ctx context.Context) ([]model.Pattern, error)
	// Count returns the number of stored patterns.
	Count(ctx context.Context) (int, error)
}
