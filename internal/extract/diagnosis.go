package extract

import (
	"context"

	"github.com/aprilio/claimscope/internal/llm"
	"github.com/aprilio/claimscope/internal/model"
	"github.com/aprilio/claimscope/internal/parse"
	"go.uber.org/zap"
)

var diagnosisFields = []fieldSpec{
	{"hospital", "issuing institution name"},
	{"department", "issuing clinical department"},
	{"doctor", "certifying doctor's name"},
	{"visit_date", "certificate issue date, as written"},
	{"diagnosis", "certified diagnosis, verbatim"},
	{"symptoms", "clinical findings supporting the diagnosis"},
	{"treatment", "recommended treatment, if stated"},
	{"medications", "prescribed medications, comma separated"},
	{"admission_notes", "admission narrative, if the certificate includes one"},
	{"examination_notes", "examination findings narrative, if present"},
	{"surgery_record", "surgery description, if a procedure is certified"},
}

// DiagnosisExtractor extracts diagnosis certificates. Certificates share
// the medical record schema; fields a certificate never carries stay at
// the sentinel.
type DiagnosisExtractor struct {
	client      llm.Client
	instruction string
	logger      *zap.Logger
}

// NewDiagnosisExtractor creates a diagnosis certificate extractor.
func NewDiagnosisExtractor(client llm.Client, logger *zap.Logger) *DiagnosisExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiagnosisExtractor{
		client:      client,
		instruction: promptFor("diagnosis certificate", diagnosisFields),
		logger:      logger,
	}
}

type diagnosisPayload struct {
	medicalPayload
	AdmissionNotes   string `json:"admission_notes"`
	ExaminationNotes string `json:"examination_notes"`
	SurgeryRecord    string `json:"surgery_record"`
}

// Extract converts one certificate payload into a canonical medical
// record. It never fails.
func (e *DiagnosisExtractor) Extract(ctx context.Context, payload model.RawDocumentPayload) model.ExtractedMedicalRecord {
	resp, err := completionFor(ctx, e.client, e.instruction, payload)
	if err != nil {
		logDegraded(e.logger, model.KindDiagnosisCertificate, payload.Filename, err)
		return model.EmptyMedicalRecord()
	}

	var parsed diagnosisPayload
	if err := parse.Into(resp.Text, &parsed); err != nil {
		logDegraded(e.logger, model.KindDiagnosisCertificate, payload.Filename, err)
		return model.EmptyMedicalRecord()
	}

	record := model.EmptyMedicalRecord()
	record.Hospital = orPlaceholder(parsed.Hospital)
	record.Department = orPlaceholder(parsed.Department)
	record.Doctor = orPlaceholder(parsed.Doctor)
	record.VisitDate = orPlaceholder(parsed.VisitDate)
	record.Diagnosis = orPlaceholder(parsed.Diagnosis)
	record.Symptoms = orPlaceholder(parsed.Symptoms)
	record.Treatment = orPlaceholder(parsed.Treatment)
	record.Medications = orPlaceholder(parsed.Medications)
	record.AdmissionNotes = orPlaceholder(parsed.AdmissionNotes)
	record.ExaminationNotes = orPlaceholder(parsed.ExaminationNotes)
	record.SurgeryRecord = orPlaceholder(parsed.SurgeryRecord)
	return record
}
