package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aprilio/claimscope/internal/model"
	"github.com/aprilio/claimscope/internal/score"
)

// Assumptions behind the per-category estimates.
const (
	assumedHospitalStayDays = 30
	medicalExpenseCeiling   = 100_000
)

// First decimal or integer magnitude in the text, thousands separators
// allowed. The separated form must come first in the alternation and
// require at least one comma group, or leftmost-first matching would
// stop a plain number after three digits.
var magnitudePattern = regexp.MustCompile(`(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?`)

// coverageRule describes how one coverage category is read and estimated.
type coverageRule struct {
	ctype    model.CoverageType
	source   func(p model.ExtractedInsurancePolicy) string
	unit     func(text string) string
	estimate func(amount float64) float64
	maxDays  int
	// confidence of the parsed item; critical illness is high because
	// the category itself is explicit in the policy wording
	confidence model.Confidence
}

var coverageRules = []coverageRule{
	{
		ctype:      model.CoverageHospitalization,
		source:     func(p model.ExtractedInsurancePolicy) string { return p.HospitalizationCoverage },
		unit:       dailyUnit,
		estimate:   func(amount float64) float64 { return amount * assumedHospitalStayDays },
		maxDays:    assumedHospitalStayDays,
		confidence: model.ConfidenceMedium,
	},
	{
		ctype:      model.CoverageSurgery,
		source:     func(p model.ExtractedInsurancePolicy) string { return p.SurgeryCoverage },
		unit:       trailingUnit,
		estimate:   func(amount float64) float64 { return amount },
		confidence: model.ConfidenceMedium,
	},
	{
		ctype:  model.CoverageMedicalExpense,
		source: func(p model.ExtractedInsurancePolicy) string { return p.MedicalExpenseCoverage },
		unit:   trailingUnit,
		estimate: func(amount float64) float64 {
			if amount > medicalExpenseCeiling {
				return medicalExpenseCeiling
			}
			return amount
		},
		confidence: model.ConfidenceMedium,
	},
	{
		ctype:      model.CoverageCriticalIllness,
		source:     func(p model.ExtractedInsurancePolicy) string { return p.CriticalIllnessCoverage },
		unit:       trailingUnit,
		estimate:   func(amount float64) float64 { return amount },
		confidence: model.ConfidenceHigh,
	},
}

// parseMagnitude extracts the first numeric magnitude from coverage text.
func parseMagnitude(text string) (float64, bool) {
	m := magnitudePattern.FindString(text)
	if m == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// trailingUnit keeps everything after the magnitude as the unit, scale
// qualifiers included. The amount is always a bare number; "x10,000/day"
// style qualifiers must never leak into it.
func trailingUnit(text string) string {
	loc := magnitudePattern.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(text[loc[1]:])
}

// dailyUnit is trailingUnit but guarantees a "/day" qualifier survives
// for daily hospitalization rates.
func dailyUnit(text string) string {
	unit := trailingUnit(text)
	if unit == "" && strings.Contains(strings.ToLower(text), "day") {
		return "/day"
	}
	return unit
}

// ParseCoverage normalizes a policy's free-text coverage sub-fields into
// coverage items. Categories with no field or no extractable magnitude
// are omitted; an empty result collapses to a single ineligible
// placeholder item.
func ParseCoverage(policy model.ExtractedInsurancePolicy) []model.CoverageItem {
	var items []model.CoverageItem
	for _, rule := range coverageRules {
		text := rule.source(policy)
		if strings.TrimSpace(text) == "" || model.IsPlaceholder(text) {
			continue
		}
		amount, ok := parseMagnitude(text)
		if !ok {
			continue
		}
		items = append(items, model.CoverageItem{
			Type:            rule.ctype,
			Amount:          amount,
			Unit:            rule.unit(text),
			MaxDays:         rule.maxDays,
			Eligible:        true,
			EstimatedAmount: rule.estimate(amount),
			Confidence:      rule.confidence,
		})
	}

	if len(items) == 0 {
		items = []model.CoverageItem{{
			Type:       model.CoverageUnknown,
			Eligible:   false,
			Confidence: model.ConfidenceLow,
		}}
	}
	return items
}

// Policy fields tracked for completeness on the read-time view.
var trackedPolicyFields = []struct {
	name  string
	value func(p model.ExtractedInsurancePolicy) string
}{
	{"company", func(p model.ExtractedInsurancePolicy) string { return p.Company }},
	{"number", func(p model.ExtractedInsurancePolicy) string { return p.Number }},
	{"start_date", func(p model.ExtractedInsurancePolicy) string { return p.StartDate }},
	{"end_date", func(p model.ExtractedInsurancePolicy) string { return p.EndDate }},
}

// PolicyView derives the read-time claim view of a stored policy.
func PolicyView(policy model.ExtractedInsurancePolicy) model.ClaimInsurancePolicy {
	view := model.ClaimInsurancePolicy{
		Policy:   policy,
		Coverage: ParseCoverage(policy),
	}

	var missing []string
	for _, f := range trackedPolicyFields {
		if model.IsPlaceholder(f.value(policy)) {
			missing = append(missing, f.name)
		}
	}
	view.MissingFields = missing
	view.HasDataIssues = len(missing) > 0
	view.TotalEstimatedAmount = score.TotalEstimate(view.Coverage)
	return view
}
