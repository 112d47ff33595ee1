package scheduling

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("appointment not found")

const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

const (
	RequestPending  = "Pending"
	RequestApproved = "Approved"
	RequestDeclined = "Declined"
)

type Appointment struct {
	AppointmentID int       `db:"appointment_id" json:"appointment_id"`
	PatientID     int       `db:"patient_id" json:"patient_id"`
	DoctorID      int       `db:"doctor_id" json:"doctor_id"`
	ScheduledAt   time.Time `db:"scheduled_at" json:"scheduled_at"`
	Type          *string   `db:"type" json:"type,omitempty"`
	Status        string    `db:"status" json:"status"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
}

// DoctorAppointment is an appointment joined with the patient's name, as
// shown on the doctor schedule.
type DoctorAppointment struct {
	Appointment
	PatientName string `db:"patient_name" json:"patient_name"`
}

type TelemedicineRequest struct {
	RequestID   int        `db:"request_id" json:"request_id"`
	PatientID   int        `db:"patient_id" json:"patient_id"`
	DoctorID    int        `db:"doctor_id" json:"doctor_id"`
	RequestedAt time.Time  `db:"requested_at" json:"requested_at"`
	PreferredAt *time.Time `db:"preferred_at" json:"preferred_at,omitempty"`
	Reason      *string    `db:"reason" json:"reason,omitempty"`
	Symptoms    *string    `db:"symptoms" json:"symptoms,omitempty"`
	Status      string     `db:"status" json:"status"`
}
