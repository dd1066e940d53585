package ingestion_engine

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/markdave123-py/TypeSpark/internal/core"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	_ core.DocumentOpener = (*PlainTextOpener)(nil)
	_ core.DocumentOpener = (*DocconvOpener)(nil)
)

// PlainTextOpener reads .txt files. UTF-8 (with or without BOM) is taken as
// is; anything else is decoded as Windows-1252.
type PlainTextOpener struct{}

func NewPlainTextOpener() *PlainTextOpener {
	return &PlainTextOpener{}
}

func (o *PlainTextOpener) Name() string { return "plaintext" }

func (o *PlainTextOpener) Open(path string) (core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plaintext: read %s: %w", path, err)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("plaintext: decode %s: %w", path, err)
	}
	return newPagedText(text), nil
}

func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		b, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DocconvOpener converts word processor and HTML documents with docconv.
type DocconvOpener struct{}

func NewDocconvOpener() *DocconvOpener {
	return &DocconvOpener{}
}

func (o *DocconvOpener) Name() string { return "docconv" }

func (o *DocconvOpener) Open(path string) (core.Document, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return nil, fmt.Errorf("docconv: convert %s: %w", path, err)
	}
	return newPagedText(res.Body), nil
}

// pagedText is an in-memory document. Form feeds, which converters emit
// between pages, separate its pages.
type pagedText struct {
	pages []string
}

func newPagedText(text string) *pagedText {
	if text == "" {
		return &pagedText{}
	}
	return &pagedText{pages: strings.Split(text, "\f")}
}

func (d *pagedText) PageCount() int { return len(d.pages) }

func (d *pagedText) PageText(index int) (string, error) {
	if index < 0 || index >= len(d.pages) {
		return "", fmt.Errorf("page %d out of range (1-%d)", index+1, len(d.pages))
	}
	return d.pages[index], nil
}

func (d *pagedText) Close() error { return nil }
