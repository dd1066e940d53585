package core

import (
	"github.com/markdave123-py/TypeSpark/internal/models"
)

// Document is an opened source whose text can be read page by page.
type Document interface {
	// PageCount is the number of pages known when the document was opened.
	PageCount() int
	// PageText returns the raw text of the zero-based page. A failing page
	// does not invalidate the document.
	PageText(index int) (string, error)
	Close() error
}

// DocumentOpener is a text backend capability ("open document, enumerate pages, get page text").
type DocumentOpener interface {
	Name() string
	Open(path string) (Document, error)
}

// ItemStrategy turns normalized document text into typed study items.
type ItemStrategy interface {
	Name() string
	Extract(text string) ([]models.StudyItem, error)
}
