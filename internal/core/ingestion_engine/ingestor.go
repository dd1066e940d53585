package ingestion_engine

import (
	"context"
	"time"

	"github.com/markdave123-py/TypeSpark/internal/models"
	"github.com/markdave123-py/TypeSpark/internal/pkg/logger"
	"golang.org/x/sync/semaphore"
)

// Ingestor is what the upload handler calls to turn a stored document into
// study items.
type Ingestor interface {
	Process(ctx context.Context, path string) []models.StudyItem
	SupportStatus() SupportStatus
}

var _ Ingestor = (*DocumentIngestor)(nil)

// DocumentIngestor runs each extraction on its own goroutine.
//
// slots:     bounds how many extractions run at once.
// wallClock: how long a caller waits for one extraction.
type DocumentIngestor struct {
	text      *TextExtractor
	items     *ItemExtractor
	slots     *semaphore.Weighted
	wallClock time.Duration
	log       *logger.Logger
}

// NewDocumentIngestor constructs the ingestor with maxConcurrent extraction slots.
func NewDocumentIngestor(text *TextExtractor, items *ItemExtractor, maxConcurrent int, wallClock time.Duration, log *logger.Logger) *DocumentIngestor {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &DocumentIngestor{
		text:      text,
		items:     items,
		slots:     semaphore.NewWeighted(int64(maxConcurrent)),
		wallClock: wallClock,
		log:       logger.OrNop(log),
	}
}

func (i *DocumentIngestor) SupportStatus() SupportStatus {
	return i.text.SupportStatus()
}

// Process always returns at least one item. When the wall clock runs out the
// extraction keeps its slot until it finishes, and its result is dropped.
func (i *DocumentIngestor) Process(ctx context.Context, path string) []models.StudyItem {
	if i.wallClock > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.wallClock)
		defer cancel()
	}

	if err := i.slots.Acquire(ctx, 1); err != nil {
		i.log.Warn("no extraction slot available", "path", path, "error", err)
		return boundItems([]models.StudyItem{
			newItem(models.KindError, "Server busy:", "The server is busy processing other documents. Please try again shortly.", "Busy"),
		})
	}

	out := make(chan []models.StudyItem, 1)
	go func() {
		defer i.slots.Release(1)
		out <- i.processOne(path)
	}()

	select {
	case items := <-out:
		return items
	case <-ctx.Done():
		i.log.Warn("extraction abandoned", "path", path, "error", ctx.Err())
		return boundItems([]models.StudyItem{
			newItem(models.KindError, "Processing timeout:", "Processing took too long; the document may be too complex.", "Timeout"),
		})
	}
}

func (i *DocumentIngestor) processOne(path string) []models.StudyItem {
	res := i.text.Extract(path)
	if res.Kind == KindText && res.Status == StatusOK {
		return TextItems(res.RawText)
	}
	return i.items.ItemsFromResult(res)
}
