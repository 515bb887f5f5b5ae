package model

// Placeholder is the single reserved literal meaning "not available".
// Every extracted field holds either real content or exactly this value;
// all missing-field detection funnels through IsPlaceholder.
const Placeholder = "To be completed"

// IsPlaceholder reports whether a field value carries no real content.
func IsPlaceholder(v string) bool {
	return v == "" || v == Placeholder
}

// DocumentKind identifies the target schema of an uploaded document.
type DocumentKind string

const (
	KindMedicalRecord        DocumentKind = "medical_record"
	KindInsurancePolicy      DocumentKind = "insurance_policy"
	KindDiagnosisCertificate DocumentKind = "diagnosis_certificate"
)

// PayloadKind distinguishes text uploads from image uploads.
type PayloadKind string

const (
	PayloadText  PayloadKind = "text"
	PayloadImage PayloadKind = "image"
)

// RawDocumentPayload is the transient intake form of an uploaded document.
// It is consumed exactly once by a field extractor. Size ceilings are
// enforced by the intake layer before the payload reaches the pipeline.
type RawDocumentPayload struct {
	Kind       PayloadKind `json:"kind"`
	Filename   string      `json:"filename"`
	ByteSize   int64       `json:"byte_size"`
	Text       string      `json:"text,omitempty"`
	ImageBytes []byte      `json:"image_bytes,omitempty"`
}

// Confidence is a coarse tag reflecting which extraction stage produced
// a derived field.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// DerivedField pairs a derived value with the confidence of the stage
// that produced it, so a UI can color badges per field.
type DerivedField struct {
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
}
