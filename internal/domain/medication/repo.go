package medication

import "context"

type Repository interface {
	Create(ctx context.Context, m *Medication) error
	ListByPatient(ctx context.Context, patientID int) ([]*Medication, error)
	// MarkTaken sets the status to Taken after verifying ownership. Returns
	// ErrNotFound for misses and foreign medications.
	MarkTaken(ctx context.Context, medicationID, patientID int) error
}
