package match

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aprilio/claimscope/internal/llm"
	"github.com/aprilio/claimscope/internal/model"
	"github.com/aprilio/claimscope/internal/parse"
)

// analyzeCase is stage A: it condenses the free-text medical content and
// the structured profile into the six-field case analysis every search
// stage consumes.
func (m *Matcher) analyzeCase(ctx context.Context, req Request) (model.MedicalCaseAnalysis, error) {
	var b strings.Builder
	b.WriteString("You are reviewing a patient's medical case to prepare a benefits search.\n")
	b.WriteString("Return ONLY a JSON object with exactly these keys:\n")
	b.WriteString(`- "disease": the primary disease or condition` + "\n")
	b.WriteString(`- "severity": how severe the condition is` + "\n")
	b.WriteString(`- "treatment_stage": where the patient is in treatment` + "\n")
	b.WriteString(`- "estimated_cost": a rough total treatment cost range` + "\n")
	b.WriteString(`- "care_needs": ongoing care the patient needs` + "\n")
	b.WriteString(`- "family_impact": how the illness affects the household` + "\n")
	b.WriteString("\nPatient profile:\n")
	fmt.Fprintf(&b, "- age: %d\n- gender: %s\n- known disease: %s\n- current treatment: %s\n- notes: %s\n",
		req.Profile.Age, req.Profile.Gender, req.Profile.Disease, req.Profile.Treatment, req.Profile.Notes)

	resp, err := m.complete(ctx, llm.CompletionRequest{
		Instruction: b.String(),
		Text:        req.CaseText,
		Image:       req.CaseImage,
	})
	if err != nil {
		return model.MedicalCaseAnalysis{}, err
	}

	var analysis model.MedicalCaseAnalysis
	if err := parse.Into(resp.Text, &analysis); err != nil {
		return model.MedicalCaseAnalysis{}, err
	}

	// Fields the model left blank get their documented failure
	// placeholders; a field is never half-empty.
	fillDegradedFields(&analysis)
	return analysis, nil
}

func fillDegradedFields(a *model.MedicalCaseAnalysis) {
	degraded := model.DegradedCaseAnalysis()
	fill := func(target *string, fallback string) {
		if strings.TrimSpace(*target) == "" {
			*target = fallback
		}
	}
	fill(&a.Disease, degraded.Disease)
	fill(&a.Severity, degraded.Severity)
	fill(&a.TreatmentStage, degraded.TreatmentStage)
	fill(&a.EstimatedCost, degraded.EstimatedCost)
	fill(&a.CareNeeds, degraded.CareNeeds)
	fill(&a.FamilyImpact, degraded.FamilyImpact)
}

// rawResource mirrors the JSON shape the search prompts request. Defaults
// for priority and status are applied at the formatting boundary, not
// here.
type rawResource struct {
	Subcategory       string   `json:"subcategory"`
	Title             string   `json:"title"`
	Organization      string   `json:"organization"`
	Eligibility       string   `json:"eligibility"`
	Amount            string   `json:"amount"`
	Deadline          string   `json:"deadline"`
	MatchedConditions []string `json:"matched_conditions"`
	Details           string   `json:"details"`
	Priority          string   `json:"priority"`
	Status            string   `json:"status"`
}

type rawResourceList struct {
	Resources []rawResource `json:"resources"`
}

// resourceContract is the shared output contract for the three search
// prompts.
const resourceContract = `Return ONLY a JSON object of the form {"resources": [...]} where each
element has the keys "subcategory", "title", "organization",
"eligibility", "amount", "deadline", "matched_conditions" (array of
strings), "details", "priority" ("high"/"medium"/"low") and "status"
("eligible"/"conditional"). Return {"resources": []} if nothing applies.`

// analysisContext renders the stage-A output for a search prompt.
func analysisContext(a model.MedicalCaseAnalysis) string {
	return fmt.Sprintf(`Case analysis:
- disease: %s
- severity: %s
- treatment stage: %s
- estimated cost: %s
- care needs: %s
- family impact: %s`,
		a.Disease, a.Severity, a.TreatmentStage, a.EstimatedCost, a.CareNeeds, a.FamilyImpact)
}

// runSearchStage performs one leaf stage: prompt, inference, parse,
// format.
func (m *Matcher) runSearchStage(ctx context.Context, req llm.CompletionRequest, category model.ResourceCategory, prefix string) ([]model.ResourceItem, error) {
	resp, err := m.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var parsed rawResourceList
	if err := parse.Into(resp.Text, &parsed); err != nil {
		return nil, err
	}

	return formatResources(parsed.Resources, category, prefix, time.Now()), nil
}

func (m *Matcher) searchGovernmentSubsidies(ctx context.Context, analysis model.MedicalCaseAnalysis) ([]model.ResourceItem, error) {
	instruction := `You are matching a patient against government medical subsidy and
assistance programs: serious illness funds, means-tested medical aid,
disability allowances, catastrophic expense relief.

` + analysisContext(analysis) + "\n\n" + resourceContract
	return m.runSearchStage(ctx, llm.CompletionRequest{Instruction: instruction}, model.CategoryGovernmentSubsidy, "gov")
}

func (m *Matcher) searchCorporateBenefits(ctx context.Context, analysis model.MedicalCaseAnalysis) ([]model.ResourceItem, error) {
	instruction := `You are matching a patient against employer and corporate welfare
programs: supplementary medical insurance, mutual aid funds, hardship
grants, extended sick leave entitlements.

` + analysisContext(analysis) + "\n\n" + resourceContract
	return m.runSearchStage(ctx, llm.CompletionRequest{Instruction: instruction}, model.CategoryCorporateBenefit, "corp")
}

func (m *Matcher) searchPolicyClaims(ctx context.Context, analysis model.MedicalCaseAnalysis, req Request) ([]model.ResourceItem, error) {
	instruction := `You are matching a patient's case against their own insurance policy to
find claimable benefits. Use the policy content provided; do not invent
coverage the policy does not state.

` + analysisContext(analysis) + "\n\n" + resourceContract
	return m.runSearchStage(ctx, llm.CompletionRequest{
		Instruction: instruction,
		Text:        req.PolicyText,
		Image:       req.PolicyImage,
	}, model.CategoryPolicyClaim, "claim")
}

// formatResources is the formatting boundary: synthetic ids, category
// tags, and priority/status defaults are applied here and nowhere else.
func formatResources(raw []rawResource, category model.ResourceCategory, prefix string, now time.Time) []model.ResourceItem {
	items := make([]model.ResourceItem, 0, len(raw))
	ts := now.Unix()
	for i, r := range raw {
		item := model.ResourceItem{
			ID:                fmt.Sprintf("%s-%d-%d", prefix, ts, i),
			Category:          category,
			Subcategory:       r.Subcategory,
			Title:             r.Title,
			Organization:      r.Organization,
			Eligibility:       r.Eligibility,
			Amount:            r.Amount,
			Deadline:          r.Deadline,
			MatchedConditions: r.MatchedConditions,
			Details:           r.Details,
			Priority:          model.ResourcePriority(r.Priority),
			Status:            model.ResourceStatus(r.Status),
		}
		switch item.Priority {
		case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		default:
			item.Priority = model.PriorityMedium
		}
		switch item.Status {
		case model.StatusEligible, model.StatusConditional:
		default:
			item.Status = model.StatusEligible
		}
		items = append(items, item)
	}
	return items
}
