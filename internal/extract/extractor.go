// Package extract turns raw document payloads into canonical records.
//
// One extractor exists per document kind, each with a fixed canonical
// field list embedded in its instruction prompt. Extraction is total:
// inference and parse failures degrade to an all-sentinel record instead
// of propagating, so one bad document can never abort a batch.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/aprilio/claimscope/internal/llm"
	"github.com/aprilio/claimscope/internal/model"
	"go.uber.org/zap"
)

// fieldSpec describes one canonical field in an extractor's prompt.
type fieldSpec struct {
	key  string
	hint string
}

// promptFor builds the shared instruction wrapper around a kind-specific
// field list. Monetary coverage fields are contractually split into
// separate amount/unit slots here, at the prompt level; there is no
// runtime repair if the model collapses them.
func promptFor(kind string, fields []fieldSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are extracting structured data from a %s document.\n", kind)
	b.WriteString("Return ONLY a JSON object with exactly these keys:\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "- %q: %s\n", f.key, f.hint)
	}
	fmt.Fprintf(&b, "\nFor any value the document does not state, use the exact string %q.\n", model.Placeholder)
	b.WriteString("Do not add keys, comments, or explanatory text outside the JSON object.\n")
	return b.String()
}

// completionFor runs one inference call for a payload. Text payloads ride
// in the supplementary slot; image payloads go through the vision path.
func completionFor(ctx context.Context, client llm.Client, instruction string, payload model.RawDocumentPayload) (*llm.CompletionResponse, error) {
	req := llm.CompletionRequest{Instruction: instruction}
	switch payload.Kind {
	case model.PayloadImage:
		req.Image = payload.ImageBytes
	default:
		req.Text = payload.Text
	}
	return client.Complete(ctx, req)
}

// orPlaceholder normalizes a parsed field: trimmed real content, or the
// sentinel. A field is never left partially filled.
func orPlaceholder(v string) string {
	v = strings.TrimSpace(v)
	if model.IsPlaceholder(v) {
		return model.Placeholder
	}
	return v
}

// logDegraded records why an extraction fell back to the sentinel record.
func logDegraded(logger *zap.Logger, kind model.DocumentKind, filename string, err error) {
	logger.Warn("extraction degraded",
		zap.String("kind", string(kind)),
		zap.String("filename", filename),
		zap.Error(err),
	)
}
