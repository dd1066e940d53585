package ingestion_engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/markdave123-py/TypeSpark/internal/pkg/logger"
)

// TextExtractor walks a document's pages and produces one normalized text
// blob, bounded by page count, elapsed time and size.
type TextExtractor struct {
	backends Backends
	limits   Limits
	log      *logger.Logger
	now      func() time.Time
}

func NewTextExtractor(backends Backends, limits Limits, log *logger.Logger) *TextExtractor {
	return &TextExtractor{
		backends: backends,
		limits:   limits,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

// SupportStatus reports which PDF capabilities were configured.
func (e *TextExtractor) SupportStatus() SupportStatus {
	return e.backends.SupportStatus()
}

// Extract reads the document at path. It never returns an error: missing
// files, absent backends and backend failures are reported through the
// result's Status.
func (e *TextExtractor) Extract(path string) *ExtractionResult {
	start := e.now()
	res := &ExtractionResult{Status: StatusOK, Truncated: TruncatedNone}
	defer func() {
		res.Elapsed = e.now().Sub(start)
		e.log.Info("document extraction finished",
			"path", path,
			"status", res.Status.String(),
			"backend", res.Backend,
			"pages", res.PagesProcessed,
			"chars", len(res.RawText),
			"truncated", string(res.Truncated),
			"elapsed", res.Elapsed,
		)
	}()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.log.Error("file not found", "path", path)
			res.Status = StatusNotFound
			res.Reason = "file not found"
			return res
		}
		res.Status = StatusFailure
		res.Reason = err.Error()
		return res
	}
	if info.IsDir() {
		res.Status = StatusFailure
		res.Reason = fmt.Sprintf("%s is a directory", path)
		return res
	}
	e.log.Debug("document size", "path", path, "kb", float64(info.Size())/1024)

	res.Kind = ClassifyKind(path, readHead(path, 5))
	opener := e.openerFor(res.Kind)
	if opener == nil {
		e.log.Error("no backend available", "kind", string(res.Kind))
		res.Status = StatusUnsupported
		if res.Kind != KindPDF {
			res.Reason = fmt.Sprintf("DOCUMENT SUPPORT NOT AVAILABLE for %s files.", res.Kind)
		}
		return res
	}
	res.Backend = opener.Name()

	doc, err := openDocument(opener, path)
	if err != nil {
		e.log.Error("error extracting text", "path", path, "backend", opener.Name(), "error", err)
		res.Status = StatusFailure
		res.Reason = err.Error()
		return res
	}
	defer doc.Close()

	e.walkPages(doc, res, start)
	return res
}

func (e *TextExtractor) openerFor(kind DocumentKind) core.DocumentOpener {
	switch kind {
	case KindText:
		return e.backends.Text
	case KindOffice:
		return e.backends.Office
	}
	if e.backends.Primary != nil {
		return e.backends.Primary
	}
	return e.backends.Fallback
}

// walkPages appends page text until the pages run out or a limit is hit.
// The time limit is checked before each page is started; a page already in
// flight is never interrupted.
func (e *TextExtractor) walkPages(doc core.Document, res *ExtractionResult, start time.Time) {
	total := doc.PageCount()
	e.log.Debug("walking pages", "pages", total, "max_pages", e.limits.MaxPages)

	var buf strings.Builder
	for i := 0; i < total; i++ {
		if e.now().Sub(start) > e.limits.Timeout {
			e.log.Warn("processing timeout reached", "timeout", e.limits.Timeout, "page", i)
			buf.WriteString(timeoutMarker)
			res.Truncated = TruncatedTimeout
			break
		}
		if i >= e.limits.MaxPages {
			buf.WriteString(fmt.Sprintf(pageLimitMarker, e.limits.MaxPages))
			res.Truncated = TruncatedPageLimit
			break
		}

		text, err := readPage(doc, i)
		if err != nil {
			e.log.Error("error processing page", "page", i, "error", err)
			continue
		}
		text = NormalizePageText(text)
		if strings.TrimSpace(text) != "" {
			if buf.Len() > 0 {
				buf.WriteString("\n\n")
			}
			buf.WriteString(text)
		}
		res.PagesProcessed++

		if buf.Len() > e.limits.MaxContentSize {
			kept := truncateUTF8(buf.String(), e.limits.MaxContentSize)
			buf.Reset()
			buf.WriteString(kept)
			buf.WriteString(sizeLimitMarker)
			res.Truncated = TruncatedSizeLimit
			break
		}

		if i > 0 && i%5 == 0 {
			e.log.Debug("pages processed so far", "pages", i)
		}
	}
	res.RawText = buf.String()
}

// openDocument converts a backend panic into an error; some PDF readers
// panic on malformed cross-reference tables.
func openDocument(opener core.DocumentOpener, path string) (doc core.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%s: panic while opening: %v", opener.Name(), r)
		}
	}()
	return opener.Open(path)
}

func readPage(doc core.Document, index int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: panic: %v", index+1, r)
		}
	}()
	return doc.PageText(index)
}
