package resolve

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aprilio/claimscope/internal/model"
)

func TestMedicalView_CompleteRecord(t *testing.T) {
	record := model.ExtractedMedicalRecord{
		Hospital:    "Mercy General Hospital",
		Symptoms:    "Seen in cardiology by Dr. Chen. Diagnosis: unstable angina",
		Diagnosis:   "angina pectoris",
		Treatment:   "treatment: stent placement",
		Medications: "aspirin, clopidogrel; atorvastatin",
	}

	view := MedicalView(record)

	if view.Hospital.Value != "Mercy General Hospital" {
		t.Errorf("hospital = %q", view.Hospital.Value)
	}
	if view.Hospital.Confidence != model.ConfidenceHigh {
		t.Errorf("hospital confidence = %q, want high", view.Hospital.Confidence)
	}
	if view.Department.Value != "cardiology" {
		t.Errorf("department = %q", view.Department.Value)
	}
	if view.Doctor.Value != "Chen" {
		t.Errorf("doctor = %q", view.Doctor.Value)
	}
	if view.Diagnosis.Value != "unstable angina" {
		t.Errorf("diagnosis = %q", view.Diagnosis.Value)
	}
	if view.Diagnosis.Confidence != model.ConfidenceHigh {
		t.Errorf("diagnosis confidence = %q, want high", view.Diagnosis.Confidence)
	}
	if want := []string{"stent placement"}; !reflect.DeepEqual(view.Treatments, want) {
		t.Errorf("treatments = %v, want %v", view.Treatments, want)
	}
	if want := []string{"aspirin", "clopidogrel", "atorvastatin"}; !reflect.DeepEqual(view.Medications, want) {
		t.Errorf("medications = %v, want %v", view.Medications, want)
	}
	if view.HasDataIssues {
		t.Errorf("unexpected data issues: %v", view.MissingFields)
	}
	if view.ClaimSuccessRate != 95 {
		t.Errorf("claim success rate = %d, want 95", view.ClaimSuccessRate)
	}
}

// A hospital field without an institution suffix does not resolve; the
// narrative is tried next, and when that fails too the field reports
// missing.
func TestMedicalView_NoInstitutionPhrase(t *testing.T) {
	record := model.EmptyMedicalRecord()
	record.Hospital = "somewhere downtown"
	record.Symptoms = "persistent cough, mild fever"

	view := MedicalView(record)

	if view.Hospital.Value != model.Placeholder {
		t.Errorf("hospital = %q, want placeholder", view.Hospital.Value)
	}
	found := false
	for _, f := range view.MissingFields {
		if f == "hospital" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing fields %v should include hospital", view.MissingFields)
	}
	if !view.HasDataIssues {
		t.Error("expected data issues")
	}
}

func TestMedicalView_NarrativeFallbackHospital(t *testing.T) {
	record := model.EmptyMedicalRecord()
	record.Symptoms = "admitted to Riverside Clinic overnight"

	view := MedicalView(record)

	if view.Hospital.Value != "Riverside Clinic" {
		t.Errorf("hospital = %q", view.Hospital.Value)
	}
	if view.Hospital.Confidence != model.ConfidenceMedium {
		t.Errorf("narrative match confidence = %q, want medium", view.Hospital.Confidence)
	}
}

func TestMedicalView_DiagnosisFallbackChain(t *testing.T) {
	long := strings.Repeat("chronic obstructive pulmonary ", 4) // > 50 chars

	cases := []struct {
		name       string
		mutate     func(r *model.ExtractedMedicalRecord)
		want       string
		confidence model.Confidence
	}{
		{
			name:       "primary field",
			mutate:     func(r *model.ExtractedMedicalRecord) { r.Diagnosis = "type 2 diabetes" },
			want:       "type 2 diabetes",
			confidence: model.ConfidenceMedium,
		},
		{
			name:       "admission notes",
			mutate:     func(r *model.ExtractedMedicalRecord) { r.AdmissionNotes = "admitted for observation" },
			want:       "admitted for observation",
			confidence: model.ConfidenceLow,
		},
		{
			name:       "examination notes",
			mutate:     func(r *model.ExtractedMedicalRecord) { r.ExaminationNotes = "elevated blood pressure" },
			want:       "elevated blood pressure",
			confidence: model.ConfidenceLow,
		},
		{
			name:       "truncation",
			mutate:     func(r *model.ExtractedMedicalRecord) { r.Diagnosis = long },
			want:       strings.TrimSpace(long)[:50] + "...",
			confidence: model.ConfidenceMedium,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := model.EmptyMedicalRecord()
			tc.mutate(&record)

			view := MedicalView(record)
			if view.Diagnosis.Value != tc.want {
				t.Errorf("diagnosis = %q, want %q", view.Diagnosis.Value, tc.want)
			}
			if view.Diagnosis.Confidence != tc.confidence {
				t.Errorf("confidence = %q, want %q", view.Diagnosis.Confidence, tc.confidence)
			}
		})
	}
}

// Truncation counts runes, never splitting a multibyte sequence.
func TestMatchTruncated_MultibyteNarrative(t *testing.T) {
	long := strings.Repeat("é", 60)

	got, ok := matchTruncated(long)
	if !ok {
		t.Fatal("expected a match")
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated text is not valid UTF-8: %q", got)
	}
	if want := strings.Repeat("é", 50) + "..."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	short := "café au lait"
	if got, ok := matchTruncated(short); !ok || got != short {
		t.Errorf("short narrative changed: (%q, %v)", got, ok)
	}
}

func TestMedicalView_AllMissing(t *testing.T) {
	view := MedicalView(model.EmptyMedicalRecord())

	want := []string{"hospital", "department", "doctor", "diagnosis", "treatment", "medication"}
	if !reflect.DeepEqual(view.MissingFields, want) {
		t.Errorf("missing fields = %v, want %v", view.MissingFields, want)
	}
	if !view.HasDataIssues {
		t.Error("expected data issues")
	}
	if view.ClaimSuccessRate != 70 {
		t.Errorf("claim success rate = %d, want 70", view.ClaimSuccessRate)
	}
	if want := []string{model.Placeholder}; !reflect.DeepEqual(view.Treatments, want) {
		t.Errorf("treatments = %v, want placeholder list", view.Treatments)
	}
	if want := []string{model.Placeholder}; !reflect.DeepEqual(view.Medications, want) {
		t.Errorf("medications = %v, want placeholder list", view.Medications)
	}
}

// The flag and the list never disagree, whatever the record contains.
func TestMedicalView_DataIssuesInvariant(t *testing.T) {
	records := []model.ExtractedMedicalRecord{
		model.EmptyMedicalRecord(),
		{Hospital: "City Hospital"},
		{
			Hospital:    "City Hospital",
			Symptoms:    "Seen in oncology by doctor: Santos. Diagnosis: lymphoma",
			Treatment:   "chemotherapy",
			Medications: "rituximab",
		},
	}
	for i, record := range records {
		view := MedicalView(record)
		if view.HasDataIssues != (len(view.MissingFields) > 0) {
			t.Errorf("record %d: HasDataIssues = %v with %d missing fields",
				i, view.HasDataIssues, len(view.MissingFields))
		}
	}
}

func TestDeriveTreatments_SurgeryRecordIncluded(t *testing.T) {
	record := model.EmptyMedicalRecord()
	record.Treatment = "physical therapy"
	record.SurgeryRecord = "arthroscopic knee repair"

	got := deriveTreatments(record)
	want := []string{"physical therapy", "arthroscopic knee repair"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("treatments = %v, want %v", got, want)
	}
}

func TestMatchDoctor(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"follow up with Dr. Okafor next week", "Okafor", true},
		{"doctor: Lee Wan", "Lee Wan", true},
		{"DOCTOR: Reyes", "Reyes", true},
		{"seen by Dr. Chen. Diagnosis follows", "Chen", true},
		{"Ibrahim doctor on call", "Ibrahim", true},
		{"no physician named here", "", false},
	}
	for _, tc := range cases {
		got, ok := matchDoctor(tc.text)
		if got != tc.want || ok != tc.ok {
			t.Errorf("matchDoctor(%q) = (%q, %v), want (%q, %v)", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}
