package model

// MedicalCaseAnalysis is the orchestrator's pipeline-intermediate case
// summary. It lives for one matching run only and is never persisted.
type MedicalCaseAnalysis struct {
	Disease        string `json:"disease"`
	Severity       string `json:"severity"`
	TreatmentStage string `json:"treatment_stage"`
	EstimatedCost  string `json:"estimated_cost"`
	CareNeeds      string `json:"care_needs"`
	FamilyImpact   string `json:"family_impact"`
}

// DegradedCaseAnalysis returns the analysis used when the case-analysis
// stage fails. Each field carries its own human-readable failure
// placeholder so downstream stages can tell degraded input apart from
// real content.
func DegradedCaseAnalysis() MedicalCaseAnalysis {
	return MedicalCaseAnalysis{
		Disease:        "Disease could not be determined from the records",
		Severity:       "Severity assessment unavailable",
		TreatmentStage: "Treatment stage unknown",
		EstimatedCost:  "Cost estimate unavailable",
		CareNeeds:      "Care needs not assessed",
		FamilyImpact:   "Family impact not assessed",
	}
}

// ResourceCategory tags the origin of a matched benefit opportunity.
type ResourceCategory string

const (
	CategoryGovernmentSubsidy ResourceCategory = "government subsidy"
	CategoryCorporateBenefit  ResourceCategory = "corporate benefit"
	CategoryPolicyClaim       ResourceCategory = "policy claim"
)

// ResourcePriority ranks a matched resource for display.
type ResourcePriority string

const (
	PriorityHigh   ResourcePriority = "high"
	PriorityMedium ResourcePriority = "medium"
	PriorityLow    ResourcePriority = "low"
)

// ResourceStatus indicates whether a resource applies outright or only
// under further conditions.
type ResourceStatus string

const (
	StatusEligible    ResourceStatus = "eligible"
	StatusConditional ResourceStatus = "conditional"
)

// ResourceItem is one normalized benefit/subsidy/claim opportunity,
// uniform across government, corporate, and insurance categories.
type ResourceItem struct {
	ID                string           `json:"id"`
	Category          ResourceCategory `json:"category"`
	Subcategory       string           `json:"subcategory,omitempty"`
	Title             string           `json:"title"`
	Organization      string           `json:"organization,omitempty"`
	Eligibility       string           `json:"eligibility,omitempty"`
	Amount            string           `json:"amount,omitempty"`
	Deadline          string           `json:"deadline,omitempty"`
	MatchedConditions []string         `json:"matched_conditions,omitempty"`
	Details           string           `json:"details,omitempty"`
	Priority          ResourcePriority `json:"priority"`
	Status            ResourceStatus   `json:"status"`
}

// CaseProfile carries the structured patient facts fed to the matching
// pipeline alongside the free-text medical content.
type CaseProfile struct {
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Disease   string `json:"disease"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`
}
