package vitals

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedReading is returned when a submitted reading cannot be parsed,
// e.g. a blood pressure value that is not in "systolic/diastolic" form.
var ErrMalformedReading = errors.New("malformed vitals reading")

// Reading is one timestamped capture of a patient's vitals. Blood pressure
// travels as a single "systolic/diastolic" string, matching the wire format
// patient devices and the dashboard submit.
type Reading struct {
	RecordID      int       `db:"record_id" json:"record_id"`
	PatientID     int       `db:"patient_id" json:"patient_id"`
	BloodPressure string    `db:"blood_pressure" json:"blood_pressure"`
	HeartRate     int       `db:"heart_rate" json:"heart_rate"`
	BloodSugar    int       `db:"blood_sugar" json:"blood_sugar"`
	OxygenLevel   int       `db:"oxygen_level" json:"oxygen_level"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	RecordedAt    time.Time `db:"recorded_at" json:"recorded_at"`
}

// ParseBloodPressure splits a "systolic/diastolic" string into its two
// components. Only the "int/int" form is accepted; any other separator or
// non-numeric part fails with ErrMalformedReading.
func ParseBloodPressure(s string) (systolic, diastolic int, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: blood pressure %q is not in systolic/diastolic form", ErrMalformedReading, s)
	}

	systolic, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: systolic %q is not a number", ErrMalformedReading, parts[0])
	}
	diastolic, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: diastolic %q is not a number", ErrMalformedReading, parts[1])
	}

	if systolic <= 0 || diastolic <= 0 {
		return 0, 0, fmt.Errorf("%w: blood pressure %q must be positive", ErrMalformedReading, s)
	}

	return systolic, diastolic, nil
}
