package ingestion_engine

import (
	"fmt"
	"strings"

	"github.com/markdave123-py/TypeSpark/internal/models"
)

const sampleText = "Sample text for typing practice."

// TextItems builds items for plain text uploads: one item per paragraph, or
// the whole text when it is short or has no paragraphs.
func TextItems(text string) []models.StudyItem {
	if strings.TrimSpace(text) == "" {
		return boundItems([]models.StudyItem{wholeText(sampleText)})
	}

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	if len(paragraphs) == 0 || runeLen(text) < 100 {
		return boundItems([]models.StudyItem{wholeText(text)})
	}

	var items []models.StudyItem
	for i, p := range paragraphs {
		if runeLen(p) <= 10 {
			continue
		}
		items = append(items, newItem(models.KindText,
			fmt.Sprintf("Type this paragraph (%d/%d):", i+1, len(paragraphs)), p, "Custom Text"))
	}
	if len(items) == 0 {
		items = append(items, wholeText(text))
	}
	return boundItems(items)
}

func wholeText(text string) models.StudyItem {
	return newItem(models.KindText, "Type this text:", text, "Custom Text")
}
