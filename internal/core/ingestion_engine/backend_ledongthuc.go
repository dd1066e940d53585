package ingestion_engine

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/markdave123-py/TypeSpark/internal/core"
)

var _ core.DocumentOpener = (*LedongthucOpener)(nil)

// LedongthucOpener is the fallback PDF backend.
type LedongthucOpener struct{}

func NewLedongthucOpener() *LedongthucOpener {
	return &LedongthucOpener{}
}

func (o *LedongthucOpener) Name() string { return "ledongthuc" }

func (o *LedongthucOpener) Open(path string) (core.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ledongthuc: open %s: %w", path, err)
	}
	return &ledongthucDocument{f: f, r: r}, nil
}

type ledongthucDocument struct {
	f *os.File
	r *pdf.Reader
}

func (d *ledongthucDocument) PageCount() int { return d.r.NumPage() }

func (d *ledongthucDocument) PageText(index int) (string, error) {
	page := d.r.Page(index + 1)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("ledongthuc: page %d: %w", index+1, err)
	}
	return text, nil
}

func (d *ledongthucDocument) Close() error {
	return d.f.Close()
}
