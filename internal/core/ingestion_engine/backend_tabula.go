package ingestion_engine

import (
	"fmt"

	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/reader"
)

var _ core.DocumentOpener = (*TabulaOpener)(nil)

// TabulaOpener is the primary PDF backend, a pure Go reader that keeps the
// document open and extracts one page at a time.
type TabulaOpener struct{}

func NewTabulaOpener() *TabulaOpener {
	return &TabulaOpener{}
}

func (o *TabulaOpener) Name() string { return "tabula" }

func (o *TabulaOpener) Open(path string) (core.Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabula: open %s: %w", path, err)
	}
	n, err := r.PageCount()
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("tabula: page count: %w", err)
	}
	return &tabulaDocument{r: r, pages: n}, nil
}

type tabulaDocument struct {
	r     *reader.Reader
	pages int
}

func (d *tabulaDocument) PageCount() int { return d.pages }

func (d *tabulaDocument) PageText(index int) (string, error) {
	// FromReader does not take ownership, so Text leaves the reader open.
	text, _, err := tabula.FromReader(d.r).Pages(index + 1).Text()
	if err != nil {
		return "", fmt.Errorf("tabula: page %d: %w", index+1, err)
	}
	return text, nil
}

func (d *tabulaDocument) Close() error {
	return d.r.Close()
}
