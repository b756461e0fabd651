package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// OCR rasterizes a PDF and recognizes text per page. Implementations are
// expected to be expensive; the extractor invokes one at most once per call.
type OCR interface {
	ExtractPages(ctx context.Context, pdfPath string) ([]string, error)
}

const rasterDPI = 300

// CommandOCR implements OCR by shelling out to poppler's pdftoppm for
// rasterization and tesseract for recognition.
type CommandOCR struct {
	PdftoppmPath  string
	TesseractPath string
}

// NewCommandOCR probes for the two binaries and returns a CommandOCR, or nil
// when either is missing so callers degrade instead of failing later.
func NewCommandOCR(pdftoppmPath, tesseractPath string) *CommandOCR {
	if pdftoppmPath == "" || tesseractPath == "" {
		return nil
	}
	if _, err := exec.LookPath(pdftoppmPath); err != nil {
		return nil
	}
	if _, err := exec.LookPath(tesseractPath); err != nil {
		return nil
	}
	return &CommandOCR{PdftoppmPath: pdftoppmPath, TesseractPath: tesseractPath}
}

// ExtractPages rasterizes every page at 300 DPI into a scratch directory and
// runs recognition per page image. The scratch directory is always removed.
func (c *CommandOCR) ExtractPages(ctx context.Context, pdfPath string) ([]string, error) {
	scratch, err := os.MkdirTemp("", "ocr-pages-")
	if err != nil {
		return nil, fmt.Errorf("ocr scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	prefix := filepath.Join(scratch, "page")
	raster := exec.CommandContext(ctx, c.PdftoppmPath, "-png", "-r", fmt.Sprint(rasterDPI), pdfPath, prefix)
	var rasterErr bytes.Buffer
	raster.Stderr = &rasterErr
	if err := raster.Run(); err != nil {
		return nil, fmt.Errorf("rasterize: %w: %s", err, rasterErr.String())
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return nil, fmt.Errorf("list page images: %w", err)
	}
	sort.Strings(images)

	pages := make([]string, 0, len(images))
	for _, img := range images {
		var out bytes.Buffer
		recognize := exec.CommandContext(ctx, c.TesseractPath, img, "stdout")
		recognize.Stdout = &out
		if err := recognize.Run(); err != nil {
			return nil, fmt.Errorf("recognize %s: %w", filepath.Base(img), err)
		}
		pages = append(pages, out.String())
	}
	return pages, nil
}
