package risk

import "testing"

func TestEvaluateScore_Boundaries(t *testing.T) {
	tests := []struct {
		score        int
		wantAlert    bool
		wantSeverity string
	}{
		{0, false, ""},
		{40, false, ""},
		{41, true, SeverityMedium},
		{70, true, SeverityMedium},
		{71, true, SeverityHigh},
		{100, true, SeverityHigh},
	}

	for _, tt := range tests {
		draft, ok := EvaluateScore(tt.score)
		if ok != tt.wantAlert {
			t.Errorf("EvaluateScore(%d): alert = %v, want %v", tt.score, ok, tt.wantAlert)
			continue
		}
		if ok && draft.Severity != tt.wantSeverity {
			t.Errorf("EvaluateScore(%d): severity = %s, want %s", tt.score, draft.Severity, tt.wantSeverity)
		}
	}
}

func TestEvaluateScore_Messages(t *testing.T) {
	high, ok := EvaluateScore(85)
	if !ok || high.Message != "High risk detected. Please consult your doctor immediately." {
		t.Errorf("unexpected high alert: %+v", high)
	}

	medium, ok := EvaluateScore(55)
	if !ok || medium.Message != "Moderate risk detected. Monitor your condition closely." {
		t.Errorf("unexpected medium alert: %+v", medium)
	}
}
