package scheduling

import (
	"context"
	"fmt"
	"time"
)

// PointsAwarder credits reward points for engagement actions.
type PointsAwarder interface {
	Award(ctx context.Context, patientID, points int, reason string) error
}

const telemedicinePoints = 10

type Service struct {
	repo   Repository
	points PointsAwarder
}

func NewService(repo Repository, points PointsAwarder) *Service {
	return &Service{repo: repo, points: points}
}

type BookInput struct {
	DoctorID    int       `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Type        *string   `json:"type,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
}

func (s *Service) Book(ctx context.Context, patientID int, in BookInput) (*Appointment, error) {
	if in.DoctorID == 0 {
		return nil, fmt.Errorf("doctor_id is required")
	}
	if in.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("scheduled_at is required")
	}

	a := &Appointment{
		PatientID:   patientID,
		DoctorID:    in.DoctorID,
		ScheduledAt: in.ScheduledAt,
		Type:        in.Type,
		Status:      StatusScheduled,
		Notes:       in.Notes,
	}
	if err := s.repo.CreateAppointment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int) ([]*Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int) ([]*DoctorAppointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func validStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s *Service) UpdateStatus(ctx context.Context, appointmentID, doctorID int, status string) error {
	if !validStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.repo.UpdateStatus(ctx, appointmentID, doctorID, status)
}

// CompleteScheduled closes out the open appointments between the pair. It is
// called by the prescription flow.
func (s *Service) CompleteScheduled(ctx context.Context, patientID, doctorID int) error {
	return s.repo.CompleteScheduled(ctx, patientID, doctorID)
}

type RequestInput struct {
	DoctorID    int        `json:"doctor_id"`
	PreferredAt *time.Time `json:"preferred_at,omitempty"`
	Reason      *string    `json:"reason,omitempty"`
	Symptoms    *string    `json:"symptoms,omitempty"`
}

// RequestTelemedicine files a remote-consult request and credits engagement
// points for reaching out.
func (s *Service) RequestTelemedicine(ctx context.Context, patientID int, in RequestInput) (*TelemedicineRequest, error) {
	if in.DoctorID == 0 {
		return nil, fmt.Errorf("doctor_id is required")
	}

	req := &TelemedicineRequest{
		PatientID:   patientID,
		DoctorID:    in.DoctorID,
		PreferredAt: in.PreferredAt,
		Reason:      in.Reason,
		Symptoms:    in.Symptoms,
		Status:      RequestPending,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	if err := s.points.Award(ctx, patientID, telemedicinePoints, "Telemedicine consult requested"); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) ListRequestsByDoctor(ctx context.Context, doctorID int) ([]*TelemedicineRequest, error) {
	return s.repo.ListRequestsByDoctor(ctx, doctorID)
}

func validRequestStatus(status string) bool {
	switch status {
	case RequestPending, RequestApproved, RequestDeclined:
		return true
	}
	return false
}

func (s *Service) UpdateRequestStatus(ctx context.Context, requestID, doctorID int, status string) error {
	if !validRequestStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.repo.UpdateRequestStatus(ctx, requestID, doctorID, status)
}
