package scheduling

import "context"

type Repository interface {
	CreateAppointment(ctx context.Context, a *Appointment) error
	ListByPatient(ctx context.Context, patientID int) ([]*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID int) ([]*DoctorAppointment, error)
	// UpdateStatus changes an appointment's status, scoped to the doctor it
	// belongs to. Misses and foreign appointments return ErrNotFound.
	UpdateStatus(ctx context.Context, appointmentID, doctorID int, status string) error
	// CompleteScheduled marks every Scheduled appointment between the pair
	// as Completed. Zero matches is not an error.
	CompleteScheduled(ctx context.Context, patientID, doctorID int) error

	CreateRequest(ctx context.Context, r *TelemedicineRequest) error
	ListRequestsByDoctor(ctx context.Context, doctorID int) ([]*TelemedicineRequest, error)
	UpdateRequestStatus(ctx context.Context, requestID, doctorID int, status string) error
}
