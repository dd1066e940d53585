package ingestion_engine

import (
	"time"

	"github.com/markdave123-py/TypeSpark/internal/core"
)

// Limits bounds the cost of walking one document.
//
// MaxPages:       pages read before the walk stops with a truncation marker.
// MaxContentSize: bytes of normalized text kept; the rest is cut off.
// Timeout:        elapsed time after which no further page is started.
type Limits struct {
	MaxPages       int
	MaxContentSize int
	Timeout        time.Duration
}

// DefaultLimits returns 10 pages, 50 KB and 30 seconds.
func DefaultLimits() Limits {
	return Limits{
		MaxPages:       10,
		MaxContentSize: 50 * 1024,
		Timeout:        30 * time.Second,
	}
}

// Backends is the capability set chosen once at startup.
//
// Primary:  preferred PDF backend (nil when disabled).
// Fallback: PDF backend used only when Primary is nil.
// Text:     plain text files.
// Office:   word processor and HTML documents.
type Backends struct {
	Primary  core.DocumentOpener
	Fallback core.DocumentOpener
	Text     core.DocumentOpener
	Office   core.DocumentOpener
}

// ExtractionStatus tags how a document walk ended.
type ExtractionStatus int

const (
	StatusOK ExtractionStatus = iota
	StatusNotFound
	StatusUnsupported
	StatusFailure
)

func (s ExtractionStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not-found"
	case StatusUnsupported:
		return "unsupported"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// TruncationReason records why a walk stopped early.
type TruncationReason string

const (
	TruncatedNone      TruncationReason = "none"
	TruncatedPageLimit TruncationReason = "page-limit"
	TruncatedTimeout   TruncationReason = "timeout"
	TruncatedSizeLimit TruncationReason = "size-limit"
)

// ExtractionResult is owned by a single extraction call and discarded once
// items have been produced from it.
//
// RawText:        normalized text, including any truncation marker.
// Reason:         failure description for StatusFailure / StatusUnsupported.
// PagesProcessed: pages whose text was appended.
// Backend:        name of the capability that opened the document.
type ExtractionResult struct {
	Status         ExtractionStatus
	Reason         string
	Kind           DocumentKind
	Backend        string
	RawText        string
	PagesProcessed int
	Elapsed        time.Duration
	Truncated      TruncationReason
}

const (
	unsupportedText   = "PDF SUPPORT NOT AVAILABLE. Enable the tabula or ledongthuc backend (PDF_PRIMARY_ENABLED / PDF_FALLBACK_ENABLED)."
	failurePrefix     = "ERROR EXTRACTING TEXT: "
	timeoutMarker     = "\n\n[Processing timeout: document too complex]"
	pageLimitMarker   = "\n\n[Content truncated: only first %d pages processed for performance]"
	sizeLimitMarker   = "\n\n[Content truncated: maximum content size reached]"
	contentTruncation = "... [truncated]"
)

// Description returns the human-readable text shown in an error item.
func (r *ExtractionResult) Description() string {
	switch r.Status {
	case StatusUnsupported:
		if r.Reason != "" {
			return r.Reason
		}
		return unsupportedText
	case StatusFailure:
		return failurePrefix + r.Reason
	default:
		return r.RawText
	}
}

const (
	fastPathThreshold = 30000 // characters; above this the strategies are skipped
	minTextLength     = 50
	chunkMaxLength    = 500
	fastPathMaxChunks = 20
	fallbackMaxChunks = 10
	minChunkLength    = 50

	// MaxItemContent is the longest content an item may carry.
	MaxItemContent = 1000
	// MaxBatchItems caps the number of items produced for one document.
	MaxBatchItems = 20
)
