package alerts

import "context"

type Repository interface {
	Create(ctx context.Context, a *Alert) error
	// MarkRead flips is_read for the given alert after verifying it belongs
	// to patientID. Idempotent: marking an already-read alert succeeds.
	// Misses and foreign alerts return ErrNotFound.
	MarkRead(ctx context.Context, alertID, patientID int) error
	ListByPatient(ctx context.Context, patientID int, unreadOnly bool, limit, offset int) ([]*Alert, int, error)
	// ListForDoctor returns alerts for every patient with an appointment with
	// the doctor, most recent first.
	ListForDoctor(ctx context.Context, doctorID int, unreadOnly bool, limit int) ([]*DoctorAlert, error)
	// MarkReadForDoctor flips is_read, scoped to the doctor's patients.
	MarkReadForDoctor(ctx context.Context, alertID, doctorID int) error
}
