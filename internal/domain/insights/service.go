package insights

import (
	"context"

	"github.com/carebridge/carebridge/internal/domain/risk"
	"github.com/carebridge/carebridge/internal/domain/vitals"
)

type ReadingSource interface {
	Latest(ctx context.Context, patientID int) (*vitals.Reading, error)
}

type ScoreSource interface {
	Latest(ctx context.Context, patientID int) (*risk.ScoreRecord, error)
}

type Service struct {
	readings ReadingSource
	scores   ScoreSource
}

func NewService(readings ReadingSource, scores ScoreSource) *Service {
	return &Service{readings: readings, scores: scores}
}

// Recommendations returns the advice list for a patient. A patient with no
// score history is treated as score zero.
func (s *Service) Recommendations(ctx context.Context, patientID int) ([]Recommendation, error) {
	score := 0
	rec, err := s.scores.Latest(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		score = rec.Score
	}

	latest, err := s.readings.Latest(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return Recommend(score, latest), nil
}
