// Package resolve derives read-time claim views from stored records.
//
// Field derivation is table-driven: each derived field names an ordered
// list of (source sub-field, pattern, confidence) stages, and one generic
// interpreter walks the stages until a match. Fields that exhaust their
// stages end at the placeholder sentinel and are reported in
// MissingFields.
package resolve

import (
	"regexp"
	"strings"

	"github.com/aprilio/claimscope/internal/model"
	"github.com/aprilio/claimscope/internal/score"
)

const diagnosisCap = 50

var (
	// Title-cased run of words ending in an institution suffix.
	institutionPattern = regexp.MustCompile(`\b(?:[A-Z][A-Za-z0-9.&'-]*\s+)*(?:Hospital|Clinic|Medical\s+Center)\b`)

	// "doctor: Chen" / "Dr. Chen" / "Chen doctor". Case-insensitivity
	// covers the label only; the captured name stays title-cased so the
	// match cannot run on into following prose.
	doctorLabelPattern    = regexp.MustCompile(`\b(?i:doctor|dr\.?)[:\s]+([A-Z][A-Za-z'-]+(?: [A-Z][A-Za-z'-]+)?)`)
	doctorTrailingPattern = regexp.MustCompile(`\b([A-Z][A-Za-z'-]+)\s+(?i:doctor)\b`)

	diagnosisLabelPattern = regexp.MustCompile(`(?i)\bdiagnosis[::]\s*([^\n.;]+)`)
	treatmentLabelPattern = regexp.MustCompile(`(?i)\btreatment[::]\s*([^\n.;]+)`)

	medicationSeparator = regexp.MustCompile(`[,\n;、]+`)
)

// Closed vocabulary for department matching against the narrative.
var departmentVocabulary = []string{
	"oncology", "cardiology", "neurology", "orthopedics", "pediatrics",
	"internal medicine", "general surgery", "gynecology", "dermatology",
	"urology", "ophthalmology", "respiratory", "gastroenterology",
	"endocrinology", "emergency",
}

// matcher extracts a derived value from one source sub-field.
type matcher func(text string) (string, bool)

// stage is one (source sub-field, pattern, confidence) derivation rule.
type stage struct {
	source     func(r model.ExtractedMedicalRecord) string
	match      matcher
	confidence model.Confidence
}

// derivationRules holds the staged rules per derived field, in priority
// order. Department and doctor have no primary-field stage: they are
// matched only against the symptom narrative.
var derivationRules = map[string][]stage{
	"hospital": {
		{source: fieldHospital, match: matchInstitution, confidence: model.ConfidenceHigh},
		{source: fieldSymptoms, match: matchInstitution, confidence: model.ConfidenceMedium},
	},
	"department": {
		{source: fieldSymptoms, match: matchDepartment, confidence: model.ConfidenceMedium},
	},
	"doctor": {
		{source: fieldSymptoms, match: matchDoctor, confidence: model.ConfidenceMedium},
	},
	"diagnosis": {
		{source: fieldSymptoms, match: matchDiagnosisLabel, confidence: model.ConfidenceHigh},
		{source: fieldDiagnosis, match: matchTruncated, confidence: model.ConfidenceMedium},
		{source: fieldAdmission, match: matchTruncated, confidence: model.ConfidenceLow},
		{source: fieldExamination, match: matchTruncated, confidence: model.ConfidenceLow},
	},
}

func fieldHospital(r model.ExtractedMedicalRecord) string    { return r.Hospital }
func fieldSymptoms(r model.ExtractedMedicalRecord) string    { return r.Symptoms }
func fieldDiagnosis(r model.ExtractedMedicalRecord) string   { return r.Diagnosis }
func fieldAdmission(r model.ExtractedMedicalRecord) string   { return r.AdmissionNotes }
func fieldExamination(r model.ExtractedMedicalRecord) string { return r.ExaminationNotes }

// matchInstitution finds a substring ending in an institution-type suffix.
func matchInstitution(text string) (string, bool) {
	m := institutionPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}

// matchDepartment matches the narrative against the closed vocabulary.
func matchDepartment(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, dept := range departmentVocabulary {
		if strings.Contains(lower, dept) {
			return dept, true
		}
	}
	return "", false
}

// matchDoctor matches a labelled doctor phrase, either order.
func matchDoctor(text string) (string, bool) {
	if m := doctorLabelPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := doctorTrailingPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// matchDiagnosisLabel matches an explicit "diagnosis:" phrase.
func matchDiagnosisLabel(text string) (string, bool) {
	m := diagnosisLabelPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// matchTruncated keeps a narrative as-is up to the length cap, with an
// ellipsis beyond it. The cap counts runes so a multibyte narrative is
// never cut mid-sequence.
func matchTruncated(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	if runes := []rune(text); len(runes) > diagnosisCap {
		return string(runes[:diagnosisCap]) + "...", true
	}
	return text, true
}

// deriveField walks one field's stages until a match. Placeholder source
// sub-fields never match.
func deriveField(record model.ExtractedMedicalRecord, stages []stage) (model.DerivedField, bool) {
	for _, s := range stages {
		text := s.source(record)
		if model.IsPlaceholder(text) {
			continue
		}
		if value, ok := s.match(text); ok {
			return model.DerivedField{Value: value, Confidence: s.confidence}, true
		}
	}
	return model.DerivedField{Value: model.Placeholder, Confidence: model.ConfidenceLow}, false
}

// deriveTreatments collects treatments from a labelled phrase in the
// treatment sub-field plus the surgery record when present.
func deriveTreatments(record model.ExtractedMedicalRecord) []string {
	var treatments []string
	if !model.IsPlaceholder(record.Treatment) {
		if m := treatmentLabelPattern.FindStringSubmatch(record.Treatment); m != nil {
			treatments = append(treatments, strings.TrimSpace(m[1]))
		} else {
			treatments = append(treatments, strings.TrimSpace(record.Treatment))
		}
	}
	if !model.IsPlaceholder(record.SurgeryRecord) {
		treatments = append(treatments, strings.TrimSpace(record.SurgeryRecord))
	}
	return treatments
}

// deriveMedications splits the medication sub-field on its separators.
func deriveMedications(record model.ExtractedMedicalRecord) []string {
	if model.IsPlaceholder(record.Medications) {
		return nil
	}
	var medications []string
	for _, part := range medicationSeparator.Split(record.Medications, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			medications = append(medications, part)
		}
	}
	return medications
}

// MedicalView derives the read-time claim view of a stored medical
// record. Nothing here is persisted; every read recomputes the view.
func MedicalView(record model.ExtractedMedicalRecord) model.ClaimMedicalRecord {
	view := model.ClaimMedicalRecord{Record: record}
	var missing []string

	scalar := []struct {
		name   string
		target *model.DerivedField
	}{
		{"hospital", &view.Hospital},
		{"department", &view.Department},
		{"doctor", &view.Doctor},
		{"diagnosis", &view.Diagnosis},
	}
	for _, f := range scalar {
		derived, ok := deriveField(record, derivationRules[f.name])
		*f.target = derived
		if !ok {
			missing = append(missing, f.name)
		}
	}

	view.Treatments = deriveTreatments(record)
	if len(view.Treatments) == 0 {
		view.Treatments = []string{model.Placeholder}
		missing = append(missing, "treatment")
	}

	view.Medications = deriveMedications(record)
	if len(view.Medications) == 0 {
		view.Medications = []string{model.Placeholder}
		missing = append(missing, "medication")
	}

	view.MissingFields = missing
	view.HasDataIssues = len(missing) > 0
	view.ClaimSuccessRate = score.SuccessRate(len(missing))
	return view
}
