package rewards

import "time"

// Entry is one line of the engagement points ledger. Totals are always
// derived from the ledger, never stored.
type Entry struct {
	PointID   int       `db:"point_id" json:"point_id"`
	PatientID int       `db:"patient_id" json:"patient_id"`
	Points    int       `db:"points" json:"points"`
	Reason    string    `db:"reason" json:"reason"`
	AwardedAt time.Time `db:"awarded_at" json:"awarded_at"`
}
