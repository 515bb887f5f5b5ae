package extract

import (
	"context"

	"github.com/aprilio/claimscope/internal/llm"
	"github.com/aprilio/claimscope/internal/model"
	"github.com/aprilio/claimscope/internal/parse"
	"go.uber.org/zap"
)

var medicalFields = []fieldSpec{
	{"hospital", "full name of the treating institution"},
	{"department", "clinical department, e.g. oncology, cardiology"},
	{"doctor", "attending doctor's name"},
	{"visit_date", "date of the visit or admission, as written"},
	{"diagnosis", "primary diagnosis text"},
	{"symptoms", "symptom narrative, verbatim where possible"},
	{"treatment", "treatment plan or procedures performed"},
	{"medications", "prescribed medications, comma separated"},
	{"is_first_occurrence", "\"yes\" if this is the first occurrence of the condition, \"no\" otherwise"},
}

// MedicalExtractor extracts canonical medical records from uploaded
// documents.
type MedicalExtractor struct {
	client      llm.Client
	instruction string
	logger      *zap.Logger
}

// NewMedicalExtractor creates a medical record extractor.
func NewMedicalExtractor(client llm.Client, logger *zap.Logger) *MedicalExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MedicalExtractor{
		client:      client,
		instruction: promptFor("medical record", medicalFields),
		logger:      logger,
	}
}

type medicalPayload struct {
	Hospital          string `json:"hospital"`
	Department        string `json:"department"`
	Doctor            string `json:"doctor"`
	VisitDate         string `json:"visit_date"`
	Diagnosis         string `json:"diagnosis"`
	Symptoms          string `json:"symptoms"`
	Treatment         string `json:"treatment"`
	Medications       string `json:"medications"`
	IsFirstOccurrence string `json:"is_first_occurrence"`
}

// Extract converts one document payload into a canonical medical record.
// It never fails: inference or parse errors produce the all-sentinel
// record so batch processing continues.
func (e *MedicalExtractor) Extract(ctx context.Context, payload model.RawDocumentPayload) model.ExtractedMedicalRecord {
	resp, err := completionFor(ctx, e.client, e.instruction, payload)
	if err != nil {
		logDegraded(e.logger, model.KindMedicalRecord, payload.Filename, err)
		return model.EmptyMedicalRecord()
	}

	var parsed medicalPayload
	if err := parse.Into(resp.Text, &parsed); err != nil {
		logDegraded(e.logger, model.KindMedicalRecord, payload.Filename, err)
		return model.EmptyMedicalRecord()
	}

	return model.ExtractedMedicalRecord{
		Hospital:          orPlaceholder(parsed.Hospital),
		Department:        orPlaceholder(parsed.Department),
		Doctor:            orPlaceholder(parsed.Doctor),
		VisitDate:         orPlaceholder(parsed.VisitDate),
		Diagnosis:         orPlaceholder(parsed.Diagnosis),
		Symptoms:          orPlaceholder(parsed.Symptoms),
		Treatment:         orPlaceholder(parsed.Treatment),
		Medications:       orPlaceholder(parsed.Medications),
		IsFirstOccurrence: orPlaceholder(parsed.IsFirstOccurrence),
	}
}
