// Package document assembles the story, an optional illustration, and the
// original prompt into a paginated PDF.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageBreakMargin = 15.0
	promptLimit     = 50
	attribution     = "Created with OpenAI GPT & GapGPT DALL-E 3"
)

// Builder renders documents with a typeface resolved once at construction.
type Builder struct {
	face Typeface
	now  func() time.Time
}

// NewBuilder probes the optional embedded font at fontPath and returns a
// ready Builder. An unusable font silently falls back to the builtin face.
func NewBuilder(fontPath string) *Builder {
	return &Builder{
		face: ResolveTypeface(fontPath),
		now:  time.Now,
	}
}

// Build lays out the title page, the story pages, and (when imageBytes is
// non-nil) the illustration page, and serializes the document to bytes.
func (b *Builder) Build(paragraphs []string, imageBytes []byte, prompt string) ([]byte, error) {
	if len(paragraphs) == 0 {
		return nil, errors.New("document requires at least one paragraph")
	}

	pdf := b.compose(paragraphs, imageBytes, prompt)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// compose builds the in-memory document; split out so tests can inspect page
// structure before serialization.
func (b *Builder) compose(paragraphs []string, imageBytes []byte, prompt string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pageBreakMargin)

	tr := func(s string) string { return s }
	if b.face.Builtin {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	} else {
		pdf.AddUTF8Font(b.face.Family, "", b.face.TTFPath)
	}

	b.titlePage(pdf, tr, prompt)
	b.storyPages(pdf, tr, paragraphs)
	if len(imageBytes) > 0 {
		b.imagePage(pdf, tr, imageBytes)
	}
	return pdf
}

func (b *Builder) titlePage(pdf *fpdf.Fpdf, tr func(string) string, prompt string) {
	pdf.AddPage()
	pdf.SetFont(b.face.Family, "", 32)
	pdf.CellFormat(0, 50, tr("AI Generated Story"), "", 1, "C", false, 0, "")
	pdf.Ln(20)

	pdf.SetFont(b.face.Family, "", 24)
	pdf.MultiCell(0, 15, tr(truncatePrompt(prompt)), "", "C", false)
	pdf.Ln(30)

	pdf.SetFont(b.face.Family, "", 14)
	generated := fmt.Sprintf("Generated on: %s", b.now().Format("January 02, 2006"))
	pdf.CellFormat(0, 10, tr(generated), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, tr(attribution), "", 1, "C", false, 0, "")
}

func (b *Builder) storyPages(pdf *fpdf.Fpdf, tr func(string) string, paragraphs []string) {
	pdf.AddPage()
	pdf.SetFont(b.face.Family, "", 22)
	pdf.CellFormat(0, 15, tr("The Story"), "", 1, "L", false, 0, "")
	pdf.SetFont(b.face.Family, "", 12)
	pdf.Ln(10)

	for i, p := range paragraphs {
		pdf.MultiCell(0, 8, tr(p), "", "L", false)
		if i < len(paragraphs)-1 {
			pdf.Ln(8)
		}
	}
}

func (b *Builder) imagePage(pdf *fpdf.Fpdf, tr func(string) string, imageBytes []byte) {
	pdf.AddPage()
	pdf.SetFont(b.face.Family, "", 22)
	pdf.CellFormat(0, 15, tr("Story Illustration"), "", 1, "L", false, 0, "")
	pdf.SetFont(b.face.Family, "", 12)
	pdf.CellFormat(0, 10, tr("Generated from the first paragraph"), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	format, err := probeImage(imageBytes)
	if err != nil {
		// Degrade to a placeholder rather than failing the document.
		pdf.MultiCell(0, 8, tr("(illustration could not be placed: "+err.Error()+")"), "", "L", false)
		return
	}

	opts := fpdf.ImageOptions{ImageType: format}
	pdf.RegisterImageOptionsReader("story-illustration", opts, bytes.NewReader(imageBytes))
	pageWidth, _ := pdf.GetPageSize()
	pdf.ImageOptions("story-illustration", 10, -1, pageWidth-20, 0, true, opts, 0, "")
}

// probeImage fully decodes the payload and maps its format to fpdf's image
// type names. Anything undecodable is rejected up front so a bad payload
// cannot poison the document.
func probeImage(data []byte) (string, error) {
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	switch format {
	case "png":
		return "PNG", nil
	case "jpeg":
		return "JPG", nil
	default:
		return "", fmt.Errorf("unsupported image format %q", format)
	}
}

// truncatePrompt caps the title-page prompt at promptLimit runes, marking the
// cut with an ellipsis.
func truncatePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= promptLimit {
		return prompt
	}
	return string(runes[:promptLimit-3]) + "..."
}
