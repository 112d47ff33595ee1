package alerts

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append records a new unread alert. The analysis pipeline calls this after a
// risk score crosses an alert threshold.
func (s *Service) Append(ctx context.Context, patientID int, severity, message string) error {
	return s.repo.Create(ctx, &Alert{
		PatientID: patientID,
		Message:   message,
		Severity:  severity,
	})
}

func (s *Service) ListByPatient(ctx context.Context, patientID int, unreadOnly bool, limit, offset int) ([]*Alert, int, error) {
	return s.repo.ListByPatient(ctx, patientID, unreadOnly, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, alertID, patientID int) error {
	return s.repo.MarkRead(ctx, alertID, patientID)
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID int, unreadOnly bool, limit int) ([]*DoctorAlert, error) {
	return s.repo.ListForDoctor(ctx, doctorID, unreadOnly, limit)
}

func (s *Service) MarkReadForDoctor(ctx context.Context, alertID, doctorID int) error {
	return s.repo.MarkReadForDoctor(ctx, alertID, doctorID)
}
