package ingestion_engine

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DocumentKind selects which backend reads a document.
type DocumentKind string

const (
	KindPDF    DocumentKind = "pdf"
	KindText   DocumentKind = "text"
	KindOffice DocumentKind = "office"
)

// ClassifyKind decides the document kind from the file name, falling back to
// the leading bytes. Anything unrecognised is treated as PDF.
func ClassifyKind(name string, head []byte) DocumentKind {
	if isPDFHeader(head) {
		return KindPDF
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF
	case ".txt", ".text", ".md":
		return KindText
	case ".docx", ".doc", ".odt", ".rtf", ".html", ".htm", ".pages":
		return KindOffice
	}
	return KindPDF
}

func isPDFHeader(b []byte) bool {
	if len(b) < 5 {
		return false
	}
	return string(b[:5]) == "%PDF-"
}

func readHead(path string, n int) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	buf := make([]byte, n)
	m, _ := io.ReadFull(f, buf)
	return buf[:m]
}
