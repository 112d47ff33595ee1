package risk

import (
	"errors"
	"testing"

	"github.com/carebridge/carebridge/internal/domain/vitals"
)

func reading(bp string, hr, sugar, oxygen int) *vitals.Reading {
	return &vitals.Reading{
		BloodPressure: bp,
		HeartRate:     hr,
		BloodSugar:    sugar,
		OxygenLevel:   oxygen,
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		r    *vitals.Reading
		want int
	}{
		{"all normal", reading("120/80", 72, 100, 98), 0},
		{"normal upper bounds", reading("130/85", 90, 120, 95), 0},
		{"bp severe systolic", reading("150/80", 72, 100, 98), 30},
		{"bp severe diastolic", reading("120/95", 72, 100, 98), 30},
		{"bp elevated", reading("135/80", 72, 100, 98), 15},
		{"bp boundary 140/90 not severe", reading("140/90", 72, 100, 98), 15},
		{"hr tachycardia", reading("120/80", 110, 100, 98), 20},
		{"hr bradycardia", reading("120/80", 55, 100, 98), 20},
		{"hr watch high", reading("120/80", 95, 100, 98), 10},
		{"hr watch low", reading("120/80", 62, 100, 98), 10},
		{"hr boundary 100 is watch", reading("120/80", 100, 100, 98), 10},
		{"hr boundary 60 is watch", reading("120/80", 60, 100, 98), 10},
		{"sugar high", reading("120/80", 72, 150, 98), 25},
		{"sugar elevated", reading("120/80", 72, 125, 98), 12},
		{"sugar boundary 140 is elevated", reading("120/80", 72, 140, 98), 12},
		{"oxygen critical", reading("120/80", 72, 100, 90), 25},
		{"oxygen watch", reading("120/80", 72, 100, 93), 10},
		{"oxygen boundary 92 is watch", reading("120/80", 72, 100, 92), 10},
		{"oxygen boundary 95 is normal", reading("120/80", 72, 100, 95), 0},
		{"bp only scenario", reading("150/95", 72, 110, 97), 30},
		{"all watch buckets", reading("125/80", 95, 125, 94), 32},
		{"everything severe caps at 100", reading("160/100", 110, 150, 90), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.r)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Compute() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	r := reading("145/92", 105, 135, 93)
	first, err := Compute(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compute(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same reading scored differently: %d then %d", first, second)
	}
}

func TestCompute_Bounds(t *testing.T) {
	readings := []*vitals.Reading{
		reading("200/150", 200, 500, 50),
		reading("90/60", 40, 60, 85),
		reading("120/80", 72, 100, 98),
	}
	for _, r := range readings {
		got, err := Compute(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got < 0 || got > MaxScore {
			t.Errorf("score %d out of [0,%d] for %+v", got, MaxScore, r)
		}
	}
}

func TestCompute_MalformedBloodPressure(t *testing.T) {
	bad := []string{"not-a-number", "120-80", "120", "120/80/90", "abc/def", ""}
	for _, bp := range bad {
		_, err := Compute(reading(bp, 72, 100, 98))
		if !errors.Is(err, vitals.ErrMalformedReading) {
			t.Errorf("expected ErrMalformedReading for %q, got %v", bp, err)
		}
	}
}
