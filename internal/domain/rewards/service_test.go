package rewards

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockRepo struct {
	entries []*Entry
	err     error
}

func (m *mockRepo) Insert(_ context.Context, e *Entry) error {
	if m.err != nil {
		return m.err
	}
	e.PointID = len(m.entries) + 1
	e.AwardedAt = time.Now()
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockRepo) Total(_ context.Context, patientID int) (int, error) {
	total := 0
	for _, e := range m.entries {
		if e.PatientID == patientID {
			total += e.Points
		}
	}
	return total, nil
}

func (m *mockRepo) History(_ context.Context, patientID, limit int) ([]*Entry, error) {
	var out []*Entry
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.entries[i].PatientID == patientID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

func TestAward_AccumulatesTotal(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, zerolog.Nop())

	if err := svc.Award(context.Background(), 1, 5, "Medication taken"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Award(context.Background(), 1, 10, "Telemedicine consult requested"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Award(context.Background(), 2, 5, "Medication taken"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := svc.Total(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 15 {
		t.Errorf("expected total 15 for patient 1, got %d", total)
	}
}

func TestAward_LedgerFailureSwallowed(t *testing.T) {
	repo := &mockRepo{err: fmt.Errorf("connection refused")}
	svc := NewService(repo, zerolog.Nop())

	// The earning action must not fail because gamification is down.
	if err := svc.Award(context.Background(), 1, 5, "Medication taken"); err != nil {
		t.Fatalf("expected ledger failure to be swallowed, got %v", err)
	}
}
