package medication

import (
	"context"
	"fmt"
	"time"
)

// PointsAwarder credits reward points for adherence actions.
type PointsAwarder interface {
	Award(ctx context.Context, patientID, points int, reason string) error
}

// AppointmentCompleter closes out the scheduled appointments between a
// patient and the prescribing doctor once a prescription is written.
type AppointmentCompleter interface {
	CompleteScheduled(ctx context.Context, patientID, doctorID int) error
}

const (
	takenPoints = 5
	// A fresh prescription is due one day out.
	firstDoseDelay = 24 * time.Hour
)

type Service struct {
	repo         Repository
	points       PointsAwarder
	appointments AppointmentCompleter
}

func NewService(repo Repository, points PointsAwarder, appointments AppointmentCompleter) *Service {
	return &Service{repo: repo, points: points, appointments: appointments}
}

type AddInput struct {
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage"`
	Frequency    string    `json:"frequency"`
	NextDose     time.Time `json:"next_dose"`
	Instructions *string   `json:"instructions,omitempty"`
}

func (in AddInput) validate() error {
	if in.Name == "" || in.Dosage == "" || in.Frequency == "" {
		return fmt.Errorf("name, dosage and frequency are required")
	}
	return nil
}

// Add records a medication the patient tracks themselves.
func (s *Service) Add(ctx context.Context, patientID int, in AddInput) (*Medication, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	nextDose := in.NextDose
	if nextDose.IsZero() {
		nextDose = time.Now().Add(firstDoseDelay)
	}

	m := &Medication{
		PatientID:    patientID,
		Name:         in.Name,
		Dosage:       in.Dosage,
		Frequency:    in.Frequency,
		NextDose:     nextDose,
		Instructions: in.Instructions,
		PrescribedBy: "Self",
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int) ([]*Medication, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// MarkTaken flips the medication to Taken and credits adherence points. The
// status update is the source of truth; a failed points write is logged by
// the rewards layer but does not undo the dose.
func (s *Service) MarkTaken(ctx context.Context, medicationID, patientID int) error {
	if err := s.repo.MarkTaken(ctx, medicationID, patientID); err != nil {
		return err
	}
	return s.points.Award(ctx, patientID, takenPoints, "Medication taken")
}

type PrescribeInput struct {
	PatientID    int     `json:"patient_id"`
	Name         string  `json:"name"`
	Dosage       string  `json:"dosage"`
	Frequency    string  `json:"frequency"`
	Instructions *string `json:"instructions,omitempty"`
}

// Prescribe writes a prescription on behalf of a doctor and completes the
// scheduled appointments between the pair, treating the prescription as the
// outcome of the visit.
func (s *Service) Prescribe(ctx context.Context, doctorID int, prescriber string, in PrescribeInput) (*Medication, error) {
	if in.PatientID == 0 {
		return nil, fmt.Errorf("patient_id is required")
	}
	if err := (AddInput{Name: in.Name, Dosage: in.Dosage, Frequency: in.Frequency}).validate(); err != nil {
		return nil, err
	}

	m := &Medication{
		PatientID:    in.PatientID,
		Name:         in.Name,
		Dosage:       in.Dosage,
		Frequency:    in.Frequency,
		NextDose:     time.Now().Add(firstDoseDelay),
		Instructions: in.Instructions,
		PrescribedBy: prescriber,
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := s.appointments.CompleteScheduled(ctx, in.PatientID, doctorID); err != nil {
		return nil, err
	}
	return m, nil
}
