package model

// CoverageType classifies one normalized coverage category.
type CoverageType string

const (
	CoverageHospitalization CoverageType = "hospitalization"
	CoverageSurgery         CoverageType = "surgery"
	CoverageMedicalExpense  CoverageType = "medical_expense"
	CoverageCriticalIllness CoverageType = "critical_illness"
	CoverageUnknown         CoverageType = "unknown"
)

// CoverageItem is one normalized (amount, unit, category) triple derived
// from a policy's free-text coverage description. Amount is always a bare
// numeric magnitude; any scale or frequency qualifier ("x10,000", "/day")
// lives only in Unit.
type CoverageItem struct {
	Type            CoverageType `json:"type"`
	Amount          float64      `json:"amount"`
	Unit            string       `json:"unit"`
	MaxDays         int          `json:"max_days,omitempty"`
	Eligible        bool         `json:"eligible"`
	EstimatedAmount float64      `json:"estimated_amount"`
	Confidence      Confidence   `json:"confidence"`
}

// ExtractedInsurancePolicy is the canonical, persisted form of an
// insurance policy document. The four coverage sub-fields keep the
// insurer's free-text wording; normalization into CoverageItems happens
// at read time.
type ExtractedInsurancePolicy struct {
	Company        string `json:"company"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	Number         string `json:"number"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	InsuredName    string `json:"insured_name"`
	Beneficiary    string `json:"beneficiary"`
	MaxClaimAmount string `json:"max_claim_amount"`
	MaxClaimUnit   string `json:"max_claim_unit"`

	HospitalizationCoverage string `json:"hospitalization_coverage,omitempty"`
	SurgeryCoverage         string `json:"surgery_coverage,omitempty"`
	MedicalExpenseCoverage  string `json:"medical_expense_coverage,omitempty"`
	CriticalIllnessCoverage string `json:"critical_illness_coverage,omitempty"`
}

// EmptyInsurancePolicy returns a policy with every field set to the
// placeholder sentinel. This is the degraded-extraction result.
func EmptyInsurancePolicy() ExtractedInsurancePolicy {
	return ExtractedInsurancePolicy{
		Company:        Placeholder,
		Type:           Placeholder,
		Name:           Placeholder,
		Number:         Placeholder,
		StartDate:      Placeholder,
		EndDate:        Placeholder,
		InsuredName:    Placeholder,
		Beneficiary:    Placeholder,
		MaxClaimAmount: Placeholder,
		MaxClaimUnit:   Placeholder,
	}
}

// ClaimInsurancePolicy is the read-time view of a stored policy: the base
// policy plus normalized coverage and the estimated total. Never persisted.
type ClaimInsurancePolicy struct {
	Policy   ExtractedInsurancePolicy `json:"policy"`
	Coverage []CoverageItem           `json:"coverage"`

	MissingFields []string `json:"missing_fields"`
	HasDataIssues bool     `json:"has_data_issues"`

	// TotalEstimatedAmount sums per-category estimates. It is an
	// indicative figure, not a payout commitment.
	TotalEstimatedAmount float64 `json:"total_estimated_amount"`
}
