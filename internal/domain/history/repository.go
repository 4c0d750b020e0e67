package history

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// AppendPatient inserts one patient snapshot row.
	AppendPatient(ctx context.Context, s *PatientSnapshot) error

	// AppendVitals inserts one vital-signs snapshot row.
	AppendVitals(ctx context.Context, s *VitalsSnapshot) error

	// ListPatient returns a patient's snapshots, newest first.
	ListPatient(ctx context.Context, patientID uuid.UUID) ([]*PatientSnapshot, error)

	// ListVitals returns a patient's vital-signs snapshots, oldest first
	// by surrogate sequence.
	ListVitals(ctx context.Context, patientID uuid.UUID) ([]*VitalsSnapshot, error)
}
