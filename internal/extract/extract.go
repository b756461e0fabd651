package extract

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-quality/internal/shared/metrics"
)

// Format identifies the source document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// Method identifies how text was pulled out of the document.
type Method string

const (
	MethodDirect Method = "direct"
	MethodOCR    Method = "ocr"
)

// Document is the result of extracting one file. Immutable after creation.
type Document struct {
	RawText      string
	SourceFormat Format
	Method       Method
}

// ErrUnsupportedFormat is returned for unrecognized file extensions or when
// a required format-reading capability is absent.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extract pulls text from the file at path, dispatching on extension.
// For PDFs with no text layer it falls back to a single OCR pass when an
// OCR capability is supplied; ocr may be nil.
func Extract(ctx context.Context, path string, ocr OCR) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(ctx, path, ocr)
	case ".docx":
		text, err := extractDOCX(path)
		if err != nil {
			return Document{}, err
		}
		return Document{RawText: text, SourceFormat: FormatDOCX, Method: MethodDirect}, nil
	case ".txt":
		text, err := extractTXT(path)
		if err != nil {
			return Document{}, err
		}
		return Document{RawText: text, SourceFormat: FormatTXT, Method: MethodDirect}, nil
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Stubbed in tests; scanned-PDF fixtures are impractical to fabricate.
var pdfPageTextFn = pdfPageText

func extractPDF(ctx context.Context, path string, ocr OCR) (Document, error) {
	text, err := pdfPageTextFn(path)
	if err != nil {
		return Document{}, fmt.Errorf("pdf extract %s: %w", filepath.Base(path), err)
	}

	if strings.TrimSpace(text) != "" {
		return Document{RawText: text, SourceFormat: FormatPDF, Method: MethodDirect}, nil
	}
	if ocr == nil {
		// Scanned PDF without OCR support: return the empty text and let
		// the caller surface an empty-document failure.
		return Document{RawText: "", SourceFormat: FormatPDF, Method: MethodDirect}, nil
	}

	// No text layer: one OCR pass over the rasterized pages, never repeated.
	metrics.IncOCRPass()
	pages, err := ocr.ExtractPages(ctx, path)
	if err != nil {
		return Document{}, fmt.Errorf("ocr %s: %w", filepath.Base(path), err)
	}
	var nonEmpty []string
	for _, p := range pages {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			nonEmpty = append(nonEmpty, trimmed)
		}
	}
	return Document{
		RawText:      strings.Join(nonEmpty, "\n"),
		SourceFormat: FormatPDF,
		Method:       MethodOCR,
	}, nil
}

func pdfPageText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}

func extractDOCX(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: docx open: %v", ErrUnsupportedFormat, err)
	}
	defer doc.Close()

	return docxParagraphText(doc.Editable().GetContent()), nil
}

// docxParagraphText walks the document XML and joins non-empty paragraphs
// with newlines, in document order.
func docxParagraphText(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var out []string
	var para strings.Builder
	flush := func() {
		if text := strings.TrimSpace(para.String()); text != "" {
			out = append(out, text)
		}
		para.Reset()
	}
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(raw)
		}
		switch t := tok.(type) {
		case xml.CharData:
			para.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" {
				flush()
			}
		}
	}
	flush()
	return strings.Join(out, "\n")
}

func extractTXT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read txt: %w", err)
	}
	// Permissive decode: invalid bytes are replaced, never fatal.
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean normalizes extracted text: null bytes become spaces, whitespace runs
// (including newlines) collapse to single spaces, ends are trimmed. Applied
// uniformly so downstream analyzers see one shape of text.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\x00", " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
