package risk

import "context"

type ScoreRepository interface {
	Append(ctx context.Context, patientID, score int) (*ScoreRecord, error)
	// Latest returns the most recent record, or nil when the patient has no
	// history. Callers treat no history as score zero.
	Latest(ctx context.Context, patientID int) (*ScoreRecord, error)
	// Recent returns up to limit records, most recent first.
	Recent(ctx context.Context, patientID, limit int) ([]*ScoreRecord, error)
}
