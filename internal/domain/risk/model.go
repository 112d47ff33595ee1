package risk

import "time"

// ScoreRecord is one point in a patient's risk score time series. Records are
// append-only; exactly one is produced per analyzed submission.
type ScoreRecord struct {
	ScoreID      int       `db:"score_id" json:"score_id"`
	PatientID    int       `db:"patient_id" json:"patient_id"`
	Score        int       `db:"risk_score" json:"score"`
	CalculatedAt time.Time `db:"calculated_at" json:"calculated_at"`
}
