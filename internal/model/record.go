package model

// ExtractedMedicalRecord is the canonical, persisted form of a medical
// record document. Each field holds either extracted content or the
// Placeholder sentinel, never a partial mix.
type ExtractedMedicalRecord struct {
	Hospital          string `json:"hospital"`
	Department        string `json:"department"`
	Doctor            string `json:"doctor"`
	VisitDate         string `json:"visit_date"`
	Diagnosis         string `json:"diagnosis"`
	Symptoms          string `json:"symptoms"`
	Treatment         string `json:"treatment"`
	Medications       string `json:"medications"`
	IsFirstOccurrence string `json:"is_first_occurrence"`

	// Narrative sub-fields read by the staged derivation rules.
	AdmissionNotes   string `json:"admission_notes,omitempty"`
	ExaminationNotes string `json:"examination_notes,omitempty"`
	SurgeryRecord    string `json:"surgery_record,omitempty"`
}

// EmptyMedicalRecord returns a record with every field set to the
// placeholder sentinel. This is the degraded-extraction result.
func EmptyMedicalRecord() ExtractedMedicalRecord {
	return ExtractedMedicalRecord{
		Hospital:          Placeholder,
		Department:        Placeholder,
		Doctor:            Placeholder,
		VisitDate:         Placeholder,
		Diagnosis:         Placeholder,
		Symptoms:          Placeholder,
		Treatment:         Placeholder,
		Medications:       Placeholder,
		IsFirstOccurrence: Placeholder,
	}
}

// ClaimMedicalRecord is the read-time view of a stored medical record:
// the base record plus fields derived by the entity resolver, completeness
// tracking, and the claim-success heuristic. It is never persisted;
// every read recomputes it.
type ClaimMedicalRecord struct {
	Record ExtractedMedicalRecord `json:"record"`

	Hospital   DerivedField `json:"hospital"`
	Department DerivedField `json:"department"`
	Doctor     DerivedField `json:"doctor"`
	Diagnosis  DerivedField `json:"diagnosis"`

	Treatments  []string `json:"treatments"`
	Medications []string `json:"medications"`

	MissingFields []string `json:"missing_fields"`
	HasDataIssues bool     `json:"has_data_issues"`

	// ClaimSuccessRate is a linear completeness heuristic in [70,95].
	// It is an indicative estimate, not an actuarial probability.
	ClaimSuccessRate int `json:"claim_success_rate"`
}
