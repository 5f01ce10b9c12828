// Package export renders a finished invoice as plain text or as a printable
// A4 PDF.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/andy/boutiquebill/internal/wizard"
)

var ErrPreviewUnavailable = errors.New("invoice preview is not ready: complete every step first")

// Options controls where and how documents are written
type Options struct {
	OutputDir     string
	CurrencyLabel string // ASCII label for the PDF, e.g. "Rs."
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName returns the PDF file name for an invoice number
func FileName(invoiceNumber string) string {
	name := unsafeFileChars.ReplaceAllString(invoiceNumber, "_")
	if name == "" || name == "_" {
		name = "invoice"
	}
	return name + ".pdf"
}

// ExportPDF writes the wizard's invoice to <OutputDir>/<number>.pdf and
// returns the path. The wizard must be on the preview step.
func ExportPDF(w *wizard.Wizard, opts Options) (string, error) {
	if !w.IsFinal() {
		return "", ErrPreviewUnavailable
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	inv := w.Invoice()
	path := filepath.Join(opts.OutputDir, FileName(inv.InvoiceNumber))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := WritePDF(f, inv, w.Totals(), opts.CurrencyLabel); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
