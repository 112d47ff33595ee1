// Package insights derives coaching recommendations from a patient's latest
// vitals and risk score. The output is a pure function of the inputs so that
// refreshing the dashboard never shuffles the advice.
package insights

import (
	"github.com/carebridge/carebridge/internal/domain/vitals"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

type Recommendation struct {
	Category       string   `json:"category"`
	Recommendation string   `json:"recommendation"`
	Priority       Priority `json:"priority"`
	// ExpectedImpact estimates how many risk points following the advice
	// could shave off.
	ExpectedImpact int `json:"expected_impact"`
}

const (
	riskCriticalThreshold = 70
	riskWarningThreshold  = 40

	bpHighSystolic      = 140
	bpHighDiastolic     = 90
	bpVeryHighSystolic  = 160
	bpVeryHighDiastolic = 100
)

// Recommend builds the advice list for the given risk score and newest
// reading. latest may be nil when the patient has no readings yet. A reading
// with an unparsable blood pressure contributes no blood pressure advice.
func Recommend(score int, latest *vitals.Reading) []Recommendation {
	var recs []Recommendation

	if score > riskCriticalThreshold {
		recs = append(recs, Recommendation{
			Category:       "Critical Alert",
			Recommendation: "Your risk score is high. Please consult with your doctor immediately.",
			Priority:       PriorityHigh,
			ExpectedImpact: 30,
		})
	} else if score > riskWarningThreshold {
		recs = append(recs, Recommendation{
			Category:       "Warning",
			Recommendation: "Your risk score is elevated. Consider scheduling a check-up.",
			Priority:       PriorityHigh,
			ExpectedImpact: 20,
		})
	}

	if latest != nil {
		if sys, dia, err := vitals.ParseBloodPressure(latest.BloodPressure); err == nil {
			if sys > bpHighSystolic || dia > bpHighDiastolic {
				priority := PriorityMedium
				if sys > bpVeryHighSystolic || dia > bpVeryHighDiastolic {
					priority = PriorityHigh
				}
				recs = append(recs, Recommendation{
					Category:       "Blood Pressure",
					Recommendation: "Your blood pressure is high. Reduce sodium intake and increase physical activity.",
					Priority:       priority,
					ExpectedImpact: 15,
				})
			}
		}
	}

	recs = append(recs,
		Recommendation{
			Category:       "Exercise",
			Recommendation: "Aim for at least 30 minutes of moderate exercise 5 days a week.",
			Priority:       PriorityMedium,
			ExpectedImpact: 10,
		},
		Recommendation{
			Category:       "Nutrition",
			Recommendation: "Increase your intake of fruits and vegetables to at least 5 servings per day.",
			Priority:       PriorityMedium,
			ExpectedImpact: 8,
		},
		Recommendation{
			Category:       "Sleep",
			Recommendation: "Maintain a consistent sleep schedule with 7-9 hours of sleep per night.",
			Priority:       PriorityMedium,
			ExpectedImpact: 12,
		},
	)

	return recs
}
