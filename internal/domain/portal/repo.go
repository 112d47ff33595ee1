package portal

import "context"

type Repository interface {
	// Roster lists every patient with an appointment with the doctor, with
	// per-patient monitoring counters. Status is filled in by the service.
	Roster(ctx context.Context, doctorID int) ([]*RosterEntry, error)
	// IsDoctorPatient reports whether the patient is on the doctor's roster.
	IsDoctorPatient(ctx context.Context, patientID, doctorID int) (bool, error)
}
