package portal

import (
	"errors"
	"time"

	"github.com/carebridge/carebridge/internal/domain/identity"
	"github.com/carebridge/carebridge/internal/domain/medication"
	"github.com/carebridge/carebridge/internal/domain/risk"
	"github.com/carebridge/carebridge/internal/domain/vitals"
)

// ErrNotFound is returned when the requested patient is not on the doctor's
// roster.
var ErrNotFound = errors.New("patient not found")

const (
	StatusNormal   = "Normal"
	StatusWarning  = "Warning"
	StatusCritical = "Critical"
)

// RosterEntry is one row of the doctor dashboard.
type RosterEntry struct {
	PatientID          int        `db:"patient_id" json:"patient_id"`
	PatientName        string     `db:"patient_name" json:"patient_name"`
	Email              string     `db:"email" json:"email"`
	LatestRiskScore    int        `db:"latest_risk_score" json:"latest_risk_score"`
	UnreadAlerts       int        `db:"unread_alerts" json:"unread_alerts"`
	PendingMedications int        `db:"pending_medications" json:"pending_medications"`
	LastReadingAt      *time.Time `db:"last_reading_at" json:"last_reading_at,omitempty"`
	Status             string     `json:"status"`
}

// PatientDetail is the aggregate view a doctor opens for a single patient.
type PatientDetail struct {
	Profile     *identity.PatientProfile `json:"profile"`
	Readings    []*vitals.Reading        `json:"readings"`
	Medications []*medication.Medication `json:"medications"`
	RiskScores  []*risk.ScoreRecord      `json:"risk_scores"`
}
