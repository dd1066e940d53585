package ingestion_engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/markdave123-py/TypeSpark/internal/models"
)

type fakeDoc struct {
	pages  []string
	errs   map[int]error
	panics map[int]bool
	onRead func(index int)
	closed bool
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }

func (d *fakeDoc) PageText(index int) (string, error) {
	if d.onRead != nil {
		d.onRead(index)
	}
	if d.panics[index] {
		panic("corrupt page")
	}
	if err := d.errs[index]; err != nil {
		return "", err
	}
	return d.pages[index], nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

type fakeOpener struct {
	name        string
	doc         core.Document
	err         error
	panicOnOpen bool
}

func (o *fakeOpener) Name() string { return o.name }

func (o *fakeOpener) Open(string) (core.Document, error) {
	if o.panicOnOpen {
		panic("bad xref")
	}
	if o.err != nil {
		return nil, o.err
	}
	return o.doc, nil
}

func singlePage(name, text string) *fakeOpener {
	return &fakeOpener{name: name, doc: &fakeDoc{pages: []string{text}}}
}

type fakeStrategy struct {
	name  string
	items []models.StudyItem
	err   error
	panic bool
}

func (s fakeStrategy) Name() string { return s.name }

func (s fakeStrategy) Extract(string) ([]models.StudyItem, error) {
	if s.panic {
		panic("regex blew up")
	}
	return s.items, s.err
}

var errBoom = errors.New("boom")

// writeFile creates name inside a temp dir and returns its path.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func pdfPath(t *testing.T) string {
	return writeFile(t, "doc.pdf", []byte("%PDF-1.4\n"))
}
