package model

import "testing"

func TestIsPlaceholder(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"", true},
		{Placeholder, true},
		{"City Hospital", false},
		{"to be completed", false}, // literal match only
		{" " + Placeholder, false},
	}
	for _, tc := range cases {
		if got := IsPlaceholder(tc.value); got != tc.want {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestEmptyMedicalRecord(t *testing.T) {
	record := EmptyMedicalRecord()
	for name, value := range map[string]string{
		"hospital":    record.Hospital,
		"department":  record.Department,
		"doctor":      record.Doctor,
		"visit_date":  record.VisitDate,
		"diagnosis":   record.Diagnosis,
		"symptoms":    record.Symptoms,
		"treatment":   record.Treatment,
		"medications": record.Medications,
	} {
		if value != Placeholder {
			t.Errorf("%s = %q, want sentinel", name, value)
		}
	}
}
