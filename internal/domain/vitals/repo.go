package vitals

import "context"

type Repository interface {
	Create(ctx context.Context, r *Reading) error
	ListByPatient(ctx context.Context, patientID, limit, offset int) ([]*Reading, int, error)
	// Recent returns up to limit readings, most recent first.
	Recent(ctx context.Context, patientID, limit int) ([]*Reading, error)
	// Latest returns the most recent reading, or nil when the patient has none.
	Latest(ctx context.Context, patientID int) (*Reading, error)
}
