package ingestion_engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/markdave123-py/TypeSpark/internal/models"
)

var (
	_ core.ItemStrategy = DefinitionStrategy{}
	_ core.ItemStrategy = ParagraphStrategy{}
	_ core.ItemStrategy = KeyConceptStrategy{}
	_ core.ItemStrategy = ListStrategy{}
)

var (
	// "Term: definition." or "Term - definition." with a capitalised term.
	definitionPattern = regexp.MustCompile(`([A-Z][a-zA-Z\s]{2,40})(?::|-)([^.]+\.)`)
	paragraphBreak    = regexp.MustCompile(`\n\s*\n`)
	numberedList      = regexp.MustCompile(`(?:\d+\.\s*[^\n]+\n){2,}`)
	bulletedList      = regexp.MustCompile(`(?:[•\-*]\s*[^\n]+\n){2,}`)

	keyPhrases = []string{"important", "key concept", "remember", "critical", "note that"}
)

const (
	definitionScanLimit = 30000
	paragraphScanLimit  = 30000
	conceptScanLimit    = 20000
	listScanLimit       = 20000

	maxDefinitions = 15
	maxParagraphs  = 10
	maxConcepts    = 5
	maxLists       = 3
)

// DefaultStrategies returns the strategies in the order their items are merged.
func DefaultStrategies() []core.ItemStrategy {
	return []core.ItemStrategy{
		DefinitionStrategy{},
		ParagraphStrategy{},
		KeyConceptStrategy{},
		ListStrategy{},
	}
}

func newItem(kind models.ItemKind, prompt, content, context string) models.StudyItem {
	return models.StudyItem{
		ID:      uuid.NewString(),
		Prompt:  prompt,
		Content: content,
		Kind:    kind,
		Context: context,
	}
}

// DefinitionStrategy picks up term/definition pairs. Only the first 15
// pattern matches are considered; terms of two characters or less and
// definitions of ten characters or less are dropped.
type DefinitionStrategy struct{}

func (DefinitionStrategy) Name() string { return "definitions" }

func (DefinitionStrategy) Extract(text string) ([]models.StudyItem, error) {
	var items []models.StudyItem
	for _, m := range definitionPattern.FindAllStringSubmatch(headRunes(text, definitionScanLimit), maxDefinitions) {
		term := strings.TrimSpace(m[1])
		definition := strings.TrimSpace(m[2])
		if runeLen(term) <= 2 || runeLen(definition) <= 10 {
			continue
		}
		items = append(items, newItem(models.KindDefinition,
			fmt.Sprintf("Define the term: %s", term), definition, "Terminology"))
	}
	return items, nil
}

// ParagraphStrategy keeps blank-line separated blocks of at least 50
// characters and 10 words.
type ParagraphStrategy struct{}

func (ParagraphStrategy) Name() string { return "paragraphs" }

func (ParagraphStrategy) Extract(text string) ([]models.StudyItem, error) {
	var items []models.StudyItem
	for _, p := range paragraphBreak.Split(headRunes(text, paragraphScanLimit), -1) {
		if len(items) >= maxParagraphs {
			break
		}
		p = strings.TrimSpace(p)
		if runeLen(p) < 50 || len(strings.Fields(p)) < 10 {
			continue
		}
		items = append(items, newItem(models.KindParagraph, "Type this paragraph:", p, "Content"))
	}
	return items, nil
}

// KeyConceptStrategy keeps sentences that mention one of the key phrases.
type KeyConceptStrategy struct{}

func (KeyConceptStrategy) Name() string { return "key_concepts" }

func (KeyConceptStrategy) Extract(text string) ([]models.StudyItem, error) {
	var items []models.StudyItem
	for _, sentence := range strings.Split(headRunes(text, conceptScanLimit), ".") {
		if len(items) >= maxConcepts {
			break
		}
		if !containsKeyPhrase(sentence) {
			continue
		}
		concept := strings.TrimSpace(sentence)
		if runeLen(concept) > 20 {
			items = append(items, newItem(models.KindKeyConcept, "Type this key concept:", concept, "Key Concepts"))
		}
	}
	return items, nil
}

func containsKeyPhrase(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, phrase := range keyPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// ListStrategy keeps runs of two or more numbered lines, then, while fewer
// than three lists were found, runs of bulleted lines.
type ListStrategy struct{}

func (ListStrategy) Name() string { return "lists" }

func (ListStrategy) Extract(text string) ([]models.StudyItem, error) {
	scan := headRunes(text, listScanLimit)

	var items []models.StudyItem
	collect := func(blocks []string) {
		for _, block := range blocks {
			if len(items) >= maxLists {
				return
			}
			block = strings.TrimSpace(block)
			if runeLen(block) > 30 {
				items = append(items, newItem(models.KindList, "Type out this list in order:", block, "Lists"))
			}
		}
	}

	collect(numberedList.FindAllString(scan, -1))
	if len(items) < maxLists {
		collect(bulletedList.FindAllString(scan, -1))
	}
	return items, nil
}
