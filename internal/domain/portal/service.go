package portal

import (
	"context"

	"github.com/carebridge/carebridge/internal/domain/identity"
	"github.com/carebridge/carebridge/internal/domain/medication"
	"github.com/carebridge/carebridge/internal/domain/risk"
	"github.com/carebridge/carebridge/internal/domain/vitals"
)

const (
	detailReadingCount = 10
	detailScoreCount   = 5
)

type ProfileSource interface {
	PatientProfile(ctx context.Context, patientID int) (*identity.PatientProfile, error)
}

type ReadingSource interface {
	Recent(ctx context.Context, patientID, limit int) ([]*vitals.Reading, error)
}

type MedicationSource interface {
	ListByPatient(ctx context.Context, patientID int) ([]*medication.Medication, error)
}

type ScoreSource interface {
	Recent(ctx context.Context, patientID, limit int) ([]*risk.ScoreRecord, error)
}

type Service struct {
	repo        Repository
	profiles    ProfileSource
	readings    ReadingSource
	medications MedicationSource
	scores      ScoreSource
}

func NewService(repo Repository, profiles ProfileSource, readings ReadingSource,
	medications MedicationSource, scores ScoreSource) *Service {
	return &Service{
		repo:        repo,
		profiles:    profiles,
		readings:    readings,
		medications: medications,
		scores:      scores,
	}
}

// statusFor buckets a risk score using the same thresholds the alerting
// pipeline uses, so the dashboard and the alert feed never disagree.
func statusFor(score int) string {
	draft, ok := risk.EvaluateScore(score)
	if !ok {
		return StatusNormal
	}
	if draft.Severity == risk.SeverityHigh {
		return StatusCritical
	}
	return StatusWarning
}

func (s *Service) Roster(ctx context.Context, doctorID int) ([]*RosterEntry, error) {
	items, err := s.repo.Roster(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	for _, e := range items {
		e.Status = statusFor(e.LatestRiskScore)
	}
	return items, nil
}

// PatientDetail assembles the single-patient view, refusing patients outside
// the doctor's roster.
func (s *Service) PatientDetail(ctx context.Context, patientID, doctorID int) (*PatientDetail, error) {
	ok, err := s.repo.IsDoctorPatient(ctx, patientID, doctorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	profile, err := s.profiles.PatientProfile(ctx, patientID)
	if err != nil {
		return nil, err
	}
	readings, err := s.readings.Recent(ctx, patientID, detailReadingCount)
	if err != nil {
		return nil, err
	}
	meds, err := s.medications.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	scores, err := s.scores.Recent(ctx, patientID, detailScoreCount)
	if err != nil {
		return nil, err
	}

	return &PatientDetail{
		Profile:     profile,
		Readings:    readings,
		Medications: meds,
		RiskScores:  scores,
	}, nil
}
