package trace

import (
	"context"

	"github.com/google/uuid"
)

// Repository is append-only: entries are never updated or deleted.
type Repository interface {
	Create(ctx context.Context, e *Entry) error

	// GetByID returns one entry or ErrEntryNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// ListAll returns every entry ordered by fecha_hora descending.
	ListAll(ctx context.Context) ([]*Entry, error)

	// ListByEntity returns the entries targeting one entity, fecha_hora
	// descending. An empty result is not an error.
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*Entry, error)
}
