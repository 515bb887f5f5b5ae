package extract

import (
	"context"

	"github.com/aprilio/claimscope/internal/llm"
	"github.com/aprilio/claimscope/internal/model"
	"github.com/aprilio/claimscope/internal/parse"
	"go.uber.org/zap"
)

// Coverage amounts and their units are split into separate slots at the
// prompt level. The normalizer does not repair a collapsed amount+unit
// at runtime.
var policyFields = []fieldSpec{
	{"company", "insurance company name"},
	{"type", "policy type, e.g. critical illness, medical reimbursement"},
	{"name", "product name of the policy"},
	{"number", "policy number"},
	{"start_date", "coverage start date, as written"},
	{"end_date", "coverage end date, as written"},
	{"insured_name", "name of the insured person"},
	{"beneficiary", "beneficiary name"},
	{"max_claim_amount", "maximum claimable amount as a bare number, no units or scale words"},
	{"max_claim_unit", "the unit and any scale/frequency qualifier for the maximum amount, e.g. \"x10,000 per year\""},
	{"hospitalization_coverage", "the policy's hospitalization allowance wording, verbatim"},
	{"surgery_coverage", "the policy's surgery benefit wording, verbatim"},
	{"medical_expense_coverage", "the policy's general medical expense wording, verbatim"},
	{"critical_illness_coverage", "the policy's critical illness lump-sum wording, verbatim"},
}

// PolicyExtractor extracts canonical insurance policies from uploaded
// documents.
type PolicyExtractor struct {
	client      llm.Client
	instruction string
	logger      *zap.Logger
}

// NewPolicyExtractor creates an insurance policy extractor.
func NewPolicyExtractor(client llm.Client, logger *zap.Logger) *PolicyExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PolicyExtractor{
		client:      client,
		instruction: promptFor("insurance policy", policyFields),
		logger:      logger,
	}
}

type policyPayload struct {
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

	HospitalizationCoverage string `json:"hospitalization_coverage"`
	SurgeryCoverage         string `json:"surgery_coverage"`
	MedicalExpenseCoverage  string `json:"medical_expense_coverage"`
	CriticalIllnessCoverage string `json:"critical_illness_coverage"`
}

// Extract converts one document payload into a canonical policy. It never
// fails: inference or parse errors produce the all-sentinel policy.
func (e *PolicyExtractor) Extract(ctx context.Context, payload model.RawDocumentPayload) model.ExtractedInsurancePolicy {
	resp, err := completionFor(ctx, e.client, e.instruction, payload)
	if err != nil {
		logDegraded(e.logger, model.KindInsurancePolicy, payload.Filename, err)
		return model.EmptyInsurancePolicy()
	}

	var parsed policyPayload
	if err := parse.Into(resp.Text, &parsed); err != nil {
		logDegraded(e.logger, model.KindInsurancePolicy, payload.Filename, err)
		return model.EmptyInsurancePolicy()
	}

	return model.ExtractedInsurancePolicy{
		Company:        orPlaceholder(parsed.Company),
		Type:           orPlaceholder(parsed.Type),
		Name:           orPlaceholder(parsed.Name),
		Number:         orPlaceholder(parsed.Number),
		StartDate:      orPlaceholder(parsed.StartDate),
		EndDate:        orPlaceholder(parsed.EndDate),
		InsuredName:    orPlaceholder(parsed.InsuredName),
		Beneficiary:    orPlaceholder(parsed.Beneficiary),
		MaxClaimAmount: orPlaceholder(parsed.MaxClaimAmount),
		MaxClaimUnit:   orPlaceholder(parsed.MaxClaimUnit),

		// Coverage wording stays free text; normalization happens at
		// read time in the coverage parser.
		HospitalizationCoverage: coverageText(parsed.HospitalizationCoverage),
		SurgeryCoverage:         coverageText(parsed.SurgeryCoverage),
		MedicalExpenseCoverage:  coverageText(parsed.MedicalExpenseCoverage),
		CriticalIllnessCoverage: coverageText(parsed.CriticalIllnessCoverage),
	}
}

// coverageText keeps coverage sub-fields empty rather than sentinel so an
// absent category is simply omitted downstream, not flagged missing.
func coverageText(v string) string {
	if model.IsPlaceholder(v) {
		return ""
	}
	return v
}
