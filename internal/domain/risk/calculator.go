package risk

import (
	"github.com/carebridge/carebridge/internal/domain/vitals"
)

// Per-metric thresholds for the rule-based risk model. Each metric
// contributes points independently; the severe branch is checked before the
// moderate one, and every comparison is strict, so boundary values fall into
// the lower bucket.
const (
	systolicSevere   = 140
	diastolicSevere  = 90
	bpSeverePoints   = 30
	systolicElevated = 130
	diastolicWatch   = 85
	bpElevatedPoints = 15

	heartRateHigh      = 100
	heartRateLow       = 60
	hrSeverePoints     = 20
	heartRateHighWatch = 90
	heartRateLowWatch  = 65
	hrWatchPoints      = 10

	bloodSugarHigh      = 140
	sugarSeverePoints   = 25
	bloodSugarElevated  = 120
	sugarElevatedPoints = 12

	oxygenCritical    = 92
	oxygenSeverePoints = 25
	oxygenWatch       = 95
	oxygenWatchPoints = 10

	// MaxScore caps the composite score.
	MaxScore = 100
)

// Compute derives the composite risk score for one reading. It is a pure
// function: same reading, same score. The only failure mode is a blood
// pressure string that does not parse, which surfaces
// vitals.ErrMalformedReading.
func Compute(r *vitals.Reading) (int, error) {
	systolic, diastolic, err := vitals.ParseBloodPressure(r.BloodPressure)
	if err != nil {
		return 0, err
	}

	score := 0

	switch {
	case systolic > systolicSevere || diastolic > diastolicSevere:
		score += bpSeverePoints
	case systolic > systolicElevated || diastolic > diastolicWatch:
		score += bpElevatedPoints
	}

	switch {
	case r.HeartRate > heartRateHigh || r.HeartRate < heartRateLow:
		score += hrSeverePoints
	case r.HeartRate > heartRateHighWatch || r.HeartRate < heartRateLowWatch:
		score += hrWatchPoints
	}

	switch {
	case r.BloodSugar > bloodSugarHigh:
		score += sugarSeverePoints
	case r.BloodSugar > bloodSugarElevated:
		score += sugarElevatedPoints
	}

	switch {
	case r.OxygenLevel < oxygenCritical:
		score += oxygenSeverePoints
	case r.OxygenLevel < oxygenWatch:
		score += oxygenWatchPoints
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score, nil
}
