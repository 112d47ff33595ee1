package medication

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("medication not found")

const (
	StatusPending = "Pending"
	StatusTaken   = "Taken"
)

type Medication struct {
	MedicationID int       `db:"medication_id" json:"medication_id"`
	PatientID    int       `db:"patient_id" json:"patient_id"`
	Name         string    `db:"name" json:"name"`
	Dosage       string    `db:"dosage" json:"dosage"`
	Frequency    string    `db:"frequency" json:"frequency"`
	NextDose     time.Time `db:"next_dose" json:"next_dose"`
	Instructions *string   `db:"instructions" json:"instructions,omitempty"`
	PrescribedBy string    `db:"prescribed_by" json:"prescribed_by"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
