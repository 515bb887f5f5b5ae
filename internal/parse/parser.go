// Package parse digs structured payloads out of opaque inference output.
//
// Model responses promise JSON but deliver prose, markdown fences, or
// both. Rather than scattering ad-hoc recovery attempts across callers,
// this package runs an ordered list of pure text -> candidate strategies
// and takes the first one that both matches and parses. It never invents
// a default: when no strategy succeeds the caller gets a ParseError and
// decides what degraded means for its document kind.
package parse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports that no extraction strategy produced a valid payload.
type ParseError struct {
	Attempts int
	Snippet  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no parse strategy succeeded (%d tried): %s", e.Attempts, e.Snippet)
}

// Strategy attempts to locate a candidate JSON span in raw response text.
// It returns the candidate and whether it matched at all; syntactic
// validity is checked by the caller.
type Strategy func(text string) (string, bool)

var (
	labeledFencePattern = regexp.MustCompile("(?s)```(?:json|JSON)\\s*\\n?(.*?)```")
	anyFencePattern     = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)```")
)

// strategies is the fixed attempt order: an explicitly labeled json
// fence, then the largest brace-delimited span, then any fence whose
// trimmed content itself looks brace-delimited.
var strategies = []Strategy{
	labeledFence,
	largestBraceSpan,
	braceLikeFence,
}

// labeledFence extracts the payload of a ```json fenced block.
func labeledFence(text string) (string, bool) {
	m := labeledFencePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// largestBraceSpan takes the span between the first '{' and the last '}'.
func largestBraceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// braceLikeFence extracts any fenced block whose trimmed content starts
// and ends with braces.
func braceLikeFence(text string) (string, bool) {
	for _, m := range anyFencePattern.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(m[1])
		if strings.HasPrefix(candidate, "{") && strings.HasSuffix(candidate, "}") {
			return candidate, true
		}
	}
	return "", false
}

// Payload extracts the first syntactically valid JSON object embedded in
// the response text. First strategy that matches and parses wins.
func Payload(text string) (json.RawMessage, error) {
	for _, strategy := range strategies {
		candidate, ok := strategy(text)
		if !ok {
			continue
		}
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, &ParseError{Attempts: len(strategies), Snippet: snippet(text)}
}

// Into extracts the embedded payload and unmarshals it into v.
func Into(text string, v any) error {
	raw, err := Payload(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ParseError{Attempts: len(strategies), Snippet: snippet(text)}
	}
	return nil
}

// snippet truncates response text for error messages.
func snippet(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 120 {
		return text[:120] + "..."
	}
	return text
}
