package llm

import (
	"strings"
	"testing"
)

func TestSniffImageMediaType(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, "image/png"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "image/jpeg"},
		{"gif", []byte("GIF89a"), "image/gif"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBP"), "image/webp"},
		{"riff but not webp", []byte("RIFF\x00\x00\x00\x00WAVE"), "image/jpeg"},
		{"unknown", []byte("random bytes"), "image/jpeg"},
		{"empty", nil, "image/jpeg"},
		{"short riff", []byte("RIFF"), "image/jpeg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SniffImageMediaType(tc.data); got != tc.want {
				t.Errorf("SniffImageMediaType = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCompletionRequest_MediaTypeOverride(t *testing.T) {
	req := CompletionRequest{Image: []byte{0x89, 'P', 'N', 'G'}, MediaType: "image/tiff"}
	if got := req.mediaType(); got != "image/tiff" {
		t.Errorf("mediaType = %q, explicit override must win", got)
	}

	req.MediaType = ""
	if got := req.mediaType(); got != "image/png" {
		t.Errorf("mediaType = %q, want sniffed image/png", got)
	}
}

func TestUserText(t *testing.T) {
	req := CompletionRequest{Instruction: "extract fields"}
	if got := userText(req); got != "extract fields" {
		t.Errorf("userText = %q", got)
	}

	req.Text = "document body"
	got := userText(req)
	if !strings.HasPrefix(got, "extract fields") || !strings.HasSuffix(got, "document body") {
		t.Errorf("userText = %q, want instruction then document", got)
	}
}

func TestInferenceError_Message(t *testing.T) {
	err := &InferenceError{Status: 429, Body: "rate limited"}
	msg := err.Error()
	if !strings.Contains(msg, "429") || !strings.Contains(msg, "rate limited") {
		t.Errorf("error message %q should carry status and body", msg)
	}
}
