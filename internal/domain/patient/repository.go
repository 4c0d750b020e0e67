package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient row.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. Returns ErrPatientNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// List returns every patient, newest first.
	List(ctx context.Context) ([]*Patient, error)

	// Update persists the full merged row. Returns ErrPatientNotFound when
	// the update affected zero rows.
	Update(ctx context.Context, p *Patient) error

	// UpdateStatus changes only the status and responsible-user columns.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, responsible string) error
}
