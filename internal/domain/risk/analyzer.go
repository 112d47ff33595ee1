package risk

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/carebridge/carebridge/internal/domain/vitals"
)

// analysisWindow is how many recent readings the analyzer pulls for context.
// Only the newest is scored today; the window stays so trend-based scoring
// can be added without touching storage.
const analysisWindow = 10

// ReadingSource supplies recent readings for analysis.
type ReadingSource interface {
	Recent(ctx context.Context, patientID, limit int) ([]*vitals.Reading, error)
}

// AlertWriter records alerts raised by the policy.
type AlertWriter interface {
	Append(ctx context.Context, patientID int, severity, message string) error
}

// Analyzer runs the scoring pipeline for one submission: fetch recent
// readings, score the newest, persist the score, then raise an alert when the
// policy asks for one. The three steps are separate durable writes with no
// wrapping transaction; a crash between steps leaves a partial but consistent
// trail.
type Analyzer struct {
	readings ReadingSource
	scores   ScoreRepository
	alerts   AlertWriter
	logger   zerolog.Logger
}

func NewAnalyzer(readings ReadingSource, scores ScoreRepository, alerts AlertWriter, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		readings: readings,
		scores:   scores,
		alerts:   alerts,
		logger:   logger,
	}
}

// Analyze scores the patient's newest reading and persists the result. Score
// persistence failures propagate; an alert write failure is logged and
// swallowed because the score is already durably recorded and the submission
// must still succeed.
func (a *Analyzer) Analyze(ctx context.Context, patientID int) error {
	readings, err := a.readings.Recent(ctx, patientID, analysisWindow)
	if err != nil {
		return fmt.Errorf("fetch recent readings: %w", err)
	}
	if len(readings) == 0 {
		return nil
	}

	score, err := Compute(readings[0])
	if err != nil {
		return err
	}

	rec, err := a.scores.Append(ctx, patientID, score)
	if err != nil {
		return fmt.Errorf("store risk score: %w", err)
	}

	draft, ok := EvaluateScore(score)
	if !ok {
		return nil
	}

	if err := a.alerts.Append(ctx, patientID, draft.Severity, draft.Message); err != nil {
		a.logger.Error().
			Err(err).
			Int("patient_id", patientID).
			Int("score", rec.Score).
			Str("severity", draft.Severity).
			Msg("failed to store alert")
	}

	return nil
}
