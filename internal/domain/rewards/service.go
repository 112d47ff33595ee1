package rewards

import (
	"context"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Award credits points to a patient. Points are best-effort gamification: a
// failed ledger write is logged but never fails the action that earned them.
func (s *Service) Award(ctx context.Context, patientID, points int, reason string) error {
	err := s.repo.Insert(ctx, &Entry{
		PatientID: patientID,
		Points:    points,
		Reason:    reason,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("patient_id", patientID).
			Int("points", points).
			Str("reason", reason).
			Msg("failed to award points")
	}
	return nil
}

func (s *Service) Total(ctx context.Context, patientID int) (int, error) {
	return s.repo.Total(ctx, patientID)
}

func (s *Service) History(ctx context.Context, patientID, limit int) ([]*Entry, error) {
	return s.repo.History(ctx, patientID, limit)
}
