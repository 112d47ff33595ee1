package risk

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebridge/carebridge/internal/domain/vitals"
)

// -- Mocks --

type mockReadingSource struct {
	readings []*vitals.Reading
	err      error
	lastLimit int
}

func (m *mockReadingSource) Recent(_ context.Context, patientID, limit int) ([]*vitals.Reading, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.readings) {
		return m.readings[:limit], nil
	}
	return m.readings, nil
}

type mockScoreRepo struct {
	records []*ScoreRecord
	err     error
}

func (m *mockScoreRepo) Append(_ context.Context, patientID, score int) (*ScoreRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec := &ScoreRecord{
		ScoreID:      len(m.records) + 1,
		PatientID:    patientID,
		Score:        score,
		CalculatedAt: time.Now(),
	}
	m.records = append(m.records, rec)
	return rec, nil
}

func (m *mockScoreRepo) Latest(_ context.Context, patientID int) (*ScoreRecord, error) {
	if len(m.records) == 0 {
		return nil, nil
	}
	return m.records[len(m.records)-1], nil
}

func (m *mockScoreRepo) Recent(_ context.Context, patientID, limit int) ([]*ScoreRecord, error) {
	var out []*ScoreRecord
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

type appendedAlert struct {
	patientID int
	severity  string
	message   string
}

type mockAlertWriter struct {
	alerts []appendedAlert
	err    error
}

func (m *mockAlertWriter) Append(_ context.Context, patientID int, severity, message string) error {
	if m.err != nil {
		return m.err
	}
	m.alerts = append(m.alerts, appendedAlert{patientID, severity, message})
	return nil
}

func newTestAnalyzer(readings *mockReadingSource, scores *mockScoreRepo, alerts *mockAlertWriter) *Analyzer {
	return NewAnalyzer(readings, scores, alerts, zerolog.Nop())
}

// -- Tests --

func TestAnalyze_BloodPressureOnly_NoAlert(t *testing.T) {
	readings := &mockReadingSource{readings: []*vitals.Reading{reading("150/95", 72, 110, 97)}}
	scores := &mockScoreRepo{}
	alerts := &mockAlertWriter{}

	if err := newTestAnalyzer(readings, scores, alerts).Analyze(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scores.records) != 1 || scores.records[0].Score != 30 {
		t.Fatalf("expected one score record of 30, got %+v", scores.records)
	}
	if len(alerts.alerts) != 0 {
		t.Errorf("expected no alert for score 30, got %+v", alerts.alerts)
	}
}

func TestAnalyze_AllSevere_HighAlert(t *testing.T) {
	readings := &mockReadingSource{readings: []*vitals.Reading{reading("160/100", 110, 150, 90)}}
	scores := &mockScoreRepo{}
	alerts := &mockAlertWriter{}

	if err := newTestAnalyzer(readings, scores, alerts).Analyze(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scores.records) != 1 || scores.records[0].Score != 100 {
		t.Fatalf("expected one score record capped at 100, got %+v", scores.records)
	}
	if len(alerts.alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts.alerts))
	}
	a := alerts.alerts[0]
	if a.severity != SeverityHigh {
		t.Errorf("expected High severity, got %s", a.severity)
	}
	if a.message != "High risk detected. Please consult your doctor immediately." {
		t.Errorf("unexpected alert message: %q", a.message)
	}
}

func TestAnalyze_WatchBuckets_NoAlert(t *testing.T) {
	readings := &mockReadingSource{readings: []*vitals.Reading{reading("125/80", 95, 125, 94)}}
	scores := &mockScoreRepo{}
	alerts := &mockAlertWriter{}

	if err := newTestAnalyzer(readings, scores, alerts).Analyze(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scores.records) != 1 || scores.records[0].Score != 32 {
		t.Fatalf("expected one score record of 32, got %+v", scores.records)
	}
	if len(alerts.alerts) != 0 {
		t.Errorf("expected no alert for score 32, got %+v", alerts.alerts)
	}
}

func TestAnalyze_MalformedReading_NothingStored(t *testing.T) {
	readings := &mockReadingSource{readings: []*vitals.Reading{reading("not-a-number", 72, 100, 98)}}
	scores := &mockScoreRepo{}
	alerts := &mockAlertWriter{}

	err := newTestAnalyzer(readings, scores, alerts).Analyze(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error for malformed reading")
	}
	if len(scores.records) != 0 {
		t.Errorf("expected no score records, got %+v", scores.records)
	}
	if len(alerts.alerts) != 0 {
		t.Errorf("expected no alerts, got %+v", alerts.alerts)
	}
}

func TestAnalyze_NoReadings_NoOp(t *testing.T) {
	readings := &mockReadingSource{}
	scores := &mockScoreRepo{}
	alerts := &mockAlertWriter{}

	if err := newTestAnalyzer(readings, scores, alerts).Analyze(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores.records) != 0 || len(alerts.alerts) != 0 {
		t.Error("expected nothing stored when the patient has no readings")
	}
}

func TestAnalyze_ScoresOnlyNewestReading(t *testing.T) {
	// Older severe readings must not influence the score of the newest one.
	readings := &mockReadingSource{readings: []*vitals.Reading{
		reading("120/80", 72, 100, 98),
		reading("160/100", 110, 150, 90),
		reading("160/100", 110, 150, 90),
	}}
	scores := &mockScoreRepo{}
	alerts := &mockAlertWriter{}

	if err := newTestAnalyzer(readings, scores, alerts).Analyze(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if readings.lastLimit != analysisWindow {
		t.Errorf("expected the analyzer to request %d readings, got %d", analysisWindow, readings.lastLimit)
	}
	if len(scores.records) != 1 || scores.records[0].Score != 0 {
		t.Errorf("expected score 0 from the newest reading, got %+v", scores.records)
	}
}

func TestAnalyze_ScoreStoreFailure_Propagates(t *testing.T) {
	readings := &mockReadingSource{readings: []*vitals.Reading{reading("160/100", 110, 150, 90)}}
	scores := &mockScoreRepo{err: fmt.Errorf("connection refused")}
	alerts := &mockAlertWriter{}

	err := newTestAnalyzer(readings, scores, alerts).Analyze(context.Background(), 1)
	if err == nil {
		t.Fatal("expected score store failure to propagate")
	}
	if len(alerts.alerts) != 0 {
		t.Errorf("expected no alert after score store failure, got %+v", alerts.alerts)
	}
}

func TestAnalyze_AlertStoreFailure_Swallowed(t *testing.T) {
	readings := &mockReadingSource{readings: []*vitals.Reading{reading("160/100", 110, 150, 90)}}
	scores := &mockScoreRepo{}
	alerts := &mockAlertWriter{err: fmt.Errorf("connection refused")}

	// The score is durable, so an alert write failure must not fail the run.
	if err := newTestAnalyzer(readings, scores, alerts).Analyze(context.Background(), 1); err != nil {
		t.Fatalf("expected alert store failure to be swallowed, got %v", err)
	}
	if len(scores.records) != 1 {
		t.Errorf("expected the score record to survive, got %+v", scores.records)
	}
}
