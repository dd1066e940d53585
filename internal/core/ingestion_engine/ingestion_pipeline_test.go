package ingestion_engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/markdave123-py/TypeSpark/internal/models"
)

func itemsFor(t *testing.T, text string, strategies ...core.ItemStrategy) []models.StudyItem {
	t.Helper()
	e := newExtractor(Backends{Primary: singlePage("p", text)}, DefaultLimits())
	return NewItemExtractor(e, nil, strategies...).ExtractItems(pdfPath(t))
}

func assertBatchInvariants(t *testing.T, items []models.StudyItem) {
	t.Helper()
	if len(items) < 1 || len(items) > MaxBatchItems {
		t.Fatalf("batch size %d out of range", len(items))
	}
	for i, it := range items {
		if strings.TrimSpace(it.Content) == "" {
			t.Fatalf("item %d has blank content", i)
		}
		if runeLen(it.Content) > MaxItemContent {
			t.Fatalf("item %d has %d chars", i, runeLen(it.Content))
		}
		if it.ID == "" {
			t.Fatalf("item %d has no id", i)
		}
	}
}

func TestExtractItems_MissingPath(t *testing.T) {
	e := newExtractor(Backends{Primary: singlePage("p", "x")}, DefaultLimits())
	items := NewItemExtractor(e, nil).ExtractItems(filepath.Join(t.TempDir(), "nope.pdf"))
	if len(items) != 1 || items[0].Kind != models.KindError {
		t.Fatalf("expected a single error item, got %+v", items)
	}
}

func TestExtractItems_Unsupported(t *testing.T) {
	items := NewItemExtractor(newExtractor(Backends{}, DefaultLimits()), nil).ExtractItems(pdfPath(t))
	if len(items) != 1 || items[0].Kind != models.KindError {
		t.Fatalf("expected a single error item, got %+v", items)
	}
	if !strings.HasPrefix(items[0].Content, "PDF SUPPORT NOT AVAILABLE") {
		t.Fatalf("unexpected content %q", items[0].Content)
	}
}

func TestExtractItems_BackendFailure(t *testing.T) {
	e := newExtractor(Backends{Primary: &fakeOpener{name: "p", err: errBoom}}, DefaultLimits())
	items := NewItemExtractor(e, nil).ExtractItems(pdfPath(t))
	if len(items) != 1 || items[0].Kind != models.KindError || !strings.HasPrefix(items[0].Content, "ERROR EXTRACTING TEXT: ") {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestExtractItems_ShortText(t *testing.T) {
	items := itemsFor(t, "Too short to study.")
	if len(items) != 1 || items[0].Kind != models.KindError || items[0].Context != "Empty Content" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestExtractItems_NonsenseFallsBackToChunks(t *testing.T) {
	text := strings.Repeat("qwrtzplkmn", 6)
	items := itemsFor(t, text)
	assertBatchInvariants(t, items)
	if len(items) != 1 {
		t.Fatalf("expected 1 chunk item, got %d", len(items))
	}
	if items[0].Kind != models.KindText || items[0].Content != text || items[0].Prompt != "Type this text (part 1/1):" {
		t.Fatalf("unexpected item %+v", items[0])
	}
}

func TestExtractItems_FastPathForLargeText(t *testing.T) {
	var b strings.Builder
	for i := 0; b.Len() < 40000; i++ {
		fmt.Fprintf(&b, "word%d ", i)
	}
	items := itemsFor(t, b.String()[:40000])
	assertBatchInvariants(t, items)
	for i, it := range items {
		if it.Kind != models.KindText {
			t.Fatalf("item %d has kind %s", i, it.Kind)
		}
		if runeLen(it.Content) > chunkMaxLength {
			t.Fatalf("item %d has %d chars", i, runeLen(it.Content))
		}
		if want := fmt.Sprintf("(part %d/%d):", i+1, fastPathMaxChunks); !strings.Contains(it.Prompt, want) {
			t.Fatalf("item %d prompt %q missing %q", i, it.Prompt, want)
		}
	}
}

func TestExtractItems_StrategyOrder(t *testing.T) {
	text := "Photosynthesis: The process by which plants convert light into energy.\n\n" +
		"This paragraph has more than ten words in it so that it qualifies as a paragraph item\n\n" +
		"1. Apples\n2. Bananas\n3. Cherries\n"
	items := itemsFor(t, text)
	assertBatchInvariants(t, items)

	first := map[models.ItemKind]int{}
	for i, it := range items {
		if _, ok := first[it.Kind]; !ok {
			first[it.Kind] = i
		}
	}
	if items[0].Kind != models.KindDefinition {
		t.Fatalf("expected a definition first, got %s", items[0].Kind)
	}
	p, okP := first[models.KindParagraph]
	l, okL := first[models.KindList]
	if !okP || !okL || p > l {
		t.Fatalf("unexpected order: %v", first)
	}
}

func TestExtractItems_FailingStrategyDiscardsAll(t *testing.T) {
	text := strings.Repeat("qwrtzplkmn", 6)
	ok := fakeStrategy{name: "ok", items: []models.StudyItem{newItem(models.KindDefinition, "p", "kept?", "c")}}

	for _, bad := range []fakeStrategy{{name: "err", err: errBoom}, {name: "panic", panic: true}} {
		items := itemsFor(t, text, ok, bad)
		if len(items) != 1 || items[0].Kind != models.KindText || items[0].Context != "PDF Content" {
			t.Fatalf("%s: expected chunk fallback only, got %+v", bad.name, items)
		}
	}
}

func TestExtractItems_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("y", 1500)
	s := fakeStrategy{name: "long", items: []models.StudyItem{newItem(models.KindParagraph, "p", long, "c")}}
	items := itemsFor(t, strings.Repeat("qwrtzplkmn", 6), s)
	if runeLen(items[0].Content) != MaxItemContent || !strings.HasSuffix(items[0].Content, contentTruncation) {
		t.Fatalf("content not truncated: %d chars", runeLen(items[0].Content))
	}
}

func TestExtractItems_CapsBatchAndDedupes(t *testing.T) {
	var many []models.StudyItem
	for i := 0; i < 33; i++ {
		many = append(many, newItem(models.KindDefinition, "p", fmt.Sprintf("definition %d", i), "c"))
	}
	many = append([]models.StudyItem{newItem(models.KindDefinition, "p", "definition 0", "c")}, many...)
	items := itemsFor(t, strings.Repeat("qwrtzplkmn", 6), fakeStrategy{name: "many", items: many})
	if len(items) != MaxBatchItems {
		t.Fatalf("expected %d items, got %d", MaxBatchItems, len(items))
	}
	if items[1].Content != "definition 1" {
		t.Fatalf("duplicate not removed: %q", items[1].Content)
	}
}

func TestExtractItems_NeverEmpty(t *testing.T) {
	items := itemsFor(t, "ab"+strings.Repeat(" ", 50))
	if len(items) != 1 || items[0].Kind != models.KindText || items[0].Content != fallbackText {
		t.Fatalf("expected fallback item, got %+v", items)
	}
}
