package vitals

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new measurement row.
	Create(ctx context.Context, r *Record) error

	// GetByID retrieves a record by primary key. Returns ErrRecordNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// ListByPatient returns every record belonging to a patient.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Record, error)

	// Update persists the full merged row. Returns ErrRecordNotFound when
	// the update affected zero rows.
	Update(ctx context.Context, r *Record) error
}
