// Package score aggregates derived coverage and completeness into the
// figures shown to the user.
//
// Both outputs are linear heuristics, deliberately transparent and
// deliberately modest: indicative estimates, not actuarial computations.
package score

import (
	"math"

	"github.com/aprilio/claimscope/internal/model"
)

// TrackedMedicalFields are the six derived medical-record fields that
// count toward claim-success completeness.
var TrackedMedicalFields = []string{
	"hospital", "department", "doctor", "diagnosis", "treatment", "medication",
}

const (
	rateFloor = 70
	rateSpan  = 25
)

// SuccessRate maps missing-field count to a claim success rate in
// [70, 95]: round(70 + 25 * completeness), where completeness is the
// clamped share of the six tracked fields that resolved. It is a
// completeness proxy, not a statistical model, and is non-decreasing as
// missing fields shrink.
func SuccessRate(missingFields int) int {
	tracked := len(TrackedMedicalFields)
	completeness := float64(tracked-missingFields) / float64(tracked)
	if completeness < 0 {
		completeness = 0
	}
	if completeness > 1 {
		completeness = 1
	}
	return int(math.Round(rateFloor + rateSpan*completeness))
}

// TotalEstimate sums per-category coverage estimates. Ineligible
// placeholder items contribute nothing.
func TotalEstimate(coverage []model.CoverageItem) float64 {
	var total float64
	for _, item := range coverage {
		if item.Eligible {
			total += item.EstimatedAmount
		}
	}
	return total
}
