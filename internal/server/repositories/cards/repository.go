// Package cards provides SQL-backed persistence for greeting cards.
// PostgreSQL is the production backend; a SQLite implementation covers
// single-binary deployments. Both store the fixed-size image sequences as
// JSON arrays in TEXT columns.
package cards

import (
	"context"

	"github.com/unbox-app/unbox/internal/models"
)

// Repository is the storage contract the card service depends on.
type Repository interface {
	// Create persists a new card from the (already validated and
	// normalized) input and returns the stored entity with its assigned
	// id and creation time.
	Create(ctx context.Context, in *models.CreateCardInput) (*models.GreetingCard, error)

	// FindByID returns the card or (nil, nil) when no card has that id.
	// A non-nil error means the lookup itself failed.
	FindByID(ctx context.Context, id string) (*models.GreetingCard, error)

	// IncrementViewCount bumps the card's view counter by one. Callers
	// treat failures as non-fatal.
	IncrementViewCount(ctx context.Context, id string) error

	// Delete removes the card. Returns common.ErrNotFound when no row
	// matched.
	Delete(ctx context.Context, id string) error
}
