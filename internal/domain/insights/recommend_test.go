package insights

import (
	"reflect"
	"testing"

	"github.com/carebridge/carebridge/internal/domain/vitals"
)

func categories(recs []Recommendation) []string {
	var out []string
	for _, r := range recs {
		out = append(out, r.Category)
	}
	return out
}

func TestRecommend_HighRisk(t *testing.T) {
	recs := Recommend(85, &vitals.Reading{BloodPressure: "120/80"})

	want := []string{"Critical Alert", "Exercise", "Nutrition", "Sleep"}
	if got := categories(recs); !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
	if recs[0].Priority != PriorityHigh || recs[0].ExpectedImpact != 30 {
		t.Errorf("unexpected critical recommendation: %+v", recs[0])
	}
}

func TestRecommend_ElevatedRisk(t *testing.T) {
	recs := Recommend(55, nil)
	if recs[0].Category != "Warning" || recs[0].ExpectedImpact != 20 {
		t.Errorf("unexpected warning recommendation: %+v", recs[0])
	}
}

func TestRecommend_RiskBoundaries(t *testing.T) {
	if recs := Recommend(40, nil); recs[0].Category != "Exercise" {
		t.Errorf("score 40 must not trigger risk advice, got %v", categories(recs))
	}
	if recs := Recommend(41, nil); recs[0].Category != "Warning" {
		t.Errorf("score 41 must trigger the warning, got %v", categories(recs))
	}
	if recs := Recommend(70, nil); recs[0].Category != "Warning" {
		t.Errorf("score 70 must stay a warning, got %v", categories(recs))
	}
	if recs := Recommend(71, nil); recs[0].Category != "Critical Alert" {
		t.Errorf("score 71 must be critical, got %v", categories(recs))
	}
}

func TestRecommend_BloodPressure(t *testing.T) {
	recs := Recommend(0, &vitals.Reading{BloodPressure: "150/95"})
	if recs[0].Category != "Blood Pressure" || recs[0].Priority != PriorityMedium {
		t.Errorf("unexpected blood pressure recommendation: %+v", recs[0])
	}

	recs = Recommend(0, &vitals.Reading{BloodPressure: "165/95"})
	if recs[0].Priority != PriorityHigh {
		t.Errorf("expected high priority for very high blood pressure, got %+v", recs[0])
	}

	// 140/90 sits on the boundary and is not flagged.
	recs = Recommend(0, &vitals.Reading{BloodPressure: "140/90"})
	if recs[0].Category == "Blood Pressure" {
		t.Error("boundary blood pressure must not be flagged")
	}
}

func TestRecommend_MalformedBloodPressureSkipped(t *testing.T) {
	recs := Recommend(0, &vitals.Reading{BloodPressure: "not-a-number"})
	want := []string{"Exercise", "Nutrition", "Sleep"}
	if got := categories(recs); !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	r := &vitals.Reading{BloodPressure: "150/95"}
	first := Recommend(50, r)
	second := Recommend(50, r)
	if !reflect.DeepEqual(first, second) {
		t.Error("same inputs produced different recommendations")
	}
}

func TestRecommend_BaselineAlwaysPresent(t *testing.T) {
	recs := Recommend(0, nil)
	want := []string{"Exercise", "Nutrition", "Sleep"}
	if got := categories(recs); !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
}
