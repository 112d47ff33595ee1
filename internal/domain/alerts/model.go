package alerts

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an alert does not exist or belongs to another
// patient. Ownership misses and genuine misses are indistinguishable on
// purpose.
var ErrNotFound = errors.New("alert not found")

// Alert is a severity-tagged message raised for a patient. Alerts are
// append-only; is_read is the single mutable field and only moves
// false -> true.
type Alert struct {
	AlertID   int       `db:"alert_id" json:"alert_id"`
	PatientID int       `db:"patient_id" json:"patient_id"`
	Message   string    `db:"message" json:"message"`
	Severity  string    `db:"severity" json:"severity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	IsRead    bool      `db:"is_read" json:"is_read"`
}

// DoctorAlert is an alert joined with the patient it belongs to, as shown on
// the doctor dashboard.
type DoctorAlert struct {
	Alert
	PatientName string `db:"patient_name" json:"patient_name"`
}
