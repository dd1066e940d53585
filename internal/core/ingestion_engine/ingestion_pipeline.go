package ingestion_engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/markdave123-py/TypeSpark/internal/models"
	"github.com/markdave123-py/TypeSpark/internal/pkg/logger"
)

const (
	emptyContentText = "This document appears to be empty or contains no extractable text. It may be an image-based PDF that requires OCR processing."
	fallbackText     = "No study items could be extracted from this document. Try uploading a document with more running text."
)

// ItemExtractor turns a document into a bounded, non-empty list of study items.
type ItemExtractor struct {
	text       *TextExtractor
	strategies []core.ItemStrategy
	log        *logger.Logger
}

// NewItemExtractor wires the extractor. With no strategies given the four
// default strategies are used.
func NewItemExtractor(text *TextExtractor, log *logger.Logger, strategies ...core.ItemStrategy) *ItemExtractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &ItemExtractor{text: text, strategies: strategies, log: logger.OrNop(log)}
}

// ExtractItems reads the document at path and returns 1..MaxBatchItems items.
func (x *ItemExtractor) ExtractItems(path string) []models.StudyItem {
	return x.ItemsFromResult(x.text.Extract(path))
}

// ItemsFromResult produces items from an already extracted document.
func (x *ItemExtractor) ItemsFromResult(res *ExtractionResult) []models.StudyItem {
	switch res.Status {
	case StatusUnsupported, StatusFailure:
		return boundItems([]models.StudyItem{
			newItem(models.KindError, "Error processing PDF:", res.Description(), "Error"),
		})
	}

	text := res.RawText
	if runeLen(text) < minTextLength {
		return boundItems([]models.StudyItem{
			newItem(models.KindError, "No text content found in PDF:", emptyContentText, "Empty Content"),
		})
	}

	start := time.Now()

	if runeLen(text) > fastPathThreshold {
		x.log.Info("content is large, using chunk splitting", "chars", runeLen(text))
		items := chunkItems(text, fastPathMaxChunks)
		x.log.Info("created chunks from large content", "items", len(items))
		return boundItems(items)
	}

	items, err := x.runStrategies(text)
	if err != nil {
		x.log.Error("error during item extraction", "error", err)
		items = nil
	}

	if len(items) == 0 {
		items = chunkItems(text, fallbackMaxChunks)
	}

	x.log.Info("item extraction finished", "elapsed", time.Since(start), "items", len(items))
	return boundItems(items)
}

// runStrategies applies every strategy in order. A single failing strategy
// discards the whole set.
func (x *ItemExtractor) runStrategies(text string) ([]models.StudyItem, error) {
	var items []models.StudyItem
	for _, s := range x.strategies {
		found, err := runStrategy(s, text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
		x.log.Debug("strategy finished", "strategy", s.Name(), "items", len(found))
		items = append(items, found...)
	}
	return items, nil
}

func runStrategy(s core.ItemStrategy, text string) (items []models.StudyItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Extract(text)
}

// chunkItems wraps up to limit chunks longer than minChunkLength as text items.
func chunkItems(text string, limit int) []models.StudyItem {
	chunks := SplitIntoChunks(text, chunkMaxLength)
	total := min(len(chunks), limit)

	var items []models.StudyItem
	for i, chunk := range chunks[:total] {
		if runeLen(strings.TrimSpace(chunk)) <= minChunkLength {
			continue
		}
		items = append(items, newItem(models.KindText,
			fmt.Sprintf("Type this text (part %d/%d):", i+1, total), chunk, "PDF Content"))
	}
	return items
}

// boundItems enforces the batch invariants: no blank or duplicate content,
// content no longer than MaxItemContent, at most MaxBatchItems items and
// never an empty list.
func boundItems(in []models.StudyItem) []models.StudyItem {
	out := make([]models.StudyItem, 0, min(len(in), MaxBatchItems))
	seen := make(map[string]bool, len(in))
	for _, it := range in {
		key := strings.TrimSpace(it.Content)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		it.Content = truncateContent(it.Content)
		out = append(out, it)
		if len(out) == MaxBatchItems {
			break
		}
	}
	if len(out) == 0 {
		out = append(out, newItem(models.KindText, "Type this text:", fallbackText, "PDF Content"))
	}
	return out
}

func truncateContent(s string) string {
	if runeLen(s) <= MaxItemContent {
		return s
	}
	return headRunes(s, MaxItemContent-runeLen(contentTruncation)) + contentTruncation
}
