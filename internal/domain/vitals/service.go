package vitals

import (
	"context"
	"fmt"
)

// Analyzer is the risk pipeline triggered after every stored reading.
type Analyzer interface {
	Analyze(ctx context.Context, patientID int) error
}

// SubmitInput is one vitals submission from the patient dashboard.
type SubmitInput struct {
	BloodPressure string  `json:"blood_pressure"`
	HeartRate     int     `json:"heart_rate"`
	BloodSugar    int     `json:"blood_sugar"`
	OxygenLevel   int     `json:"oxygen_level"`
	Notes         *string `json:"notes,omitempty"`
}

type Service struct {
	readings Repository
	analyzer Analyzer
}

func NewService(readings Repository, analyzer Analyzer) *Service {
	return &Service{readings: readings, analyzer: analyzer}
}

// Submit validates and stores a reading, then runs the risk pipeline.
// Validation happens before any write: a malformed blood pressure aborts the
// whole submission with ErrMalformedReading and leaves no trace in storage.
func (s *Service) Submit(ctx context.Context, patientID int, in SubmitInput) (*Reading, error) {
	if _, _, err := ParseBloodPressure(in.BloodPressure); err != nil {
		return nil, err
	}

	rd := &Reading{
		PatientID:     patientID,
		BloodPressure: in.BloodPressure,
		HeartRate:     in.HeartRate,
		BloodSugar:    in.BloodSugar,
		OxygenLevel:   in.OxygenLevel,
		Notes:         in.Notes,
	}
	if err := s.readings.Create(ctx, rd); err != nil {
		return nil, fmt.Errorf("store reading: %w", err)
	}

	if err := s.analyzer.Analyze(ctx, patientID); err != nil {
		return nil, fmt.Errorf("analyze reading: %w", err)
	}

	return rd, nil
}

func (s *Service) History(ctx context.Context, patientID, limit, offset int) ([]*Reading, int, error) {
	return s.readings.ListByPatient(ctx, patientID, limit, offset)
}

// Latest returns the most recent reading, or nil when the patient has none.
func (s *Service) Latest(ctx context.Context, patientID int) (*Reading, error) {
	return s.readings.Latest(ctx, patientID)
}
