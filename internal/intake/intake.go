// Package intake admits uploaded documents into the pipeline.
//
// It enforces the upstream size ceilings, classifies payloads as text or
// image, and normalizes HTML text exports down to visible text so the
// extractors see prose, not markup. Everything past intake assumes the
// ceilings already hold.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aprilio/claimscope/internal/model"
	"golang.org/x/net/html"
)

var (
	ErrFileTooLarge  = errors.New("document file exceeds size ceiling")
	ErrImageTooLarge = errors.New("image exceeds size ceiling")
	ErrTextTooLarge  = errors.New("text exceeds size ceiling")
	ErrEmptyPayload  = errors.New("document is empty")
)

// Intake validates and normalizes uploaded documents.
type Intake struct {
	cfg model.IntakeConfig
}

// New creates an intake with the given ceilings.
func New(cfg model.IntakeConfig) *Intake {
	return &Intake{cfg: cfg}
}

// imageExtensions short-circuits classification for common uploads; the
// byte signature check below still decides for unknown extensions.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// FromFile reads one uploaded file into a raw document payload.
func (i *Intake) FromFile(path string) (model.RawDocumentPayload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.RawDocumentPayload{}, fmt.Errorf("stat document: %w", err)
	}
	if info.Size() == 0 {
		return model.RawDocumentPayload{}, ErrEmptyPayload
	}
	if info.Size() > i.cfg.MaxFileBytes {
		return model.RawDocumentPayload{}, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.RawDocumentPayload{}, fmt.Errorf("read document: %w", err)
	}

	filename := filepath.Base(path)
	if imageExtensions[strings.ToLower(filepath.Ext(path))] || looksLikeImage(data) {
		return i.FromImage(filename, data)
	}
	return i.FromText(filename, string(data))
}

// FromText admits a text payload, normalizing HTML exports to visible
// text.
func (i *Intake) FromText(filename, text string) (model.RawDocumentPayload, error) {
	if looksLikeHTML(text) {
		text = visibleText(text)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.RawDocumentPayload{}, ErrEmptyPayload
	}
	if len(text) > i.cfg.MaxTextChars {
		return model.RawDocumentPayload{}, fmt.Errorf("%w: %d chars", ErrTextTooLarge, len(text))
	}

	return model.RawDocumentPayload{
		Kind:     model.PayloadText,
		Filename: filename,
		ByteSize: int64(len(text)),
		Text:     text,
	}, nil
}

// FromImage admits an image payload.
func (i *Intake) FromImage(filename string, data []byte) (model.RawDocumentPayload, error) {
	if len(data) == 0 {
		return model.RawDocumentPayload{}, ErrEmptyPayload
	}
	if int64(len(data)) > i.cfg.MaxImageBytes {
		return model.RawDocumentPayload{}, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}

	return model.RawDocumentPayload{
		Kind:       model.PayloadImage,
		Filename:   filename,
		ByteSize:   int64(len(data)),
		ImageBytes: data,
	}, nil
}

func looksLikeImage(data []byte) bool {
	signatures := [][]byte{
		{0x89, 'P', 'N', 'G'},
		{0xFF, 0xD8, 0xFF},
		[]byte("GIF8"),
		[]byte("RIFF"),
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

func looksLikeHTML(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<!doctype html")
}

// visibleText extracts text nodes from HTML, skipping scripts and styles.
func visibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String()
}
