package ingestion_engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/markdave123-py/TypeSpark/internal/models"
)

func TestTextItems_Empty(t *testing.T) {
	items := TextItems("  \n ")
	if len(items) != 1 || items[0].Content != sampleText {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestTextItems_ShortTextIsOneItem(t *testing.T) {
	items := TextItems("Just a short note.\n\nWith two lines.")
	if len(items) != 1 || items[0].Prompt != "Type this text:" || items[0].Context != "Custom Text" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestTextItems_OneItemPerParagraph(t *testing.T) {
	p1 := "The first paragraph is long enough to be typed out by the user."
	p2 := "Tiny."
	p3 := "The third paragraph is also long enough to be used as an item."
	items := TextItems(p1 + "\n\n" + p2 + "\n\n" + p3)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Prompt != "Type this paragraph (1/3):" || items[0].Content != p1 {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if items[1].Prompt != "Type this paragraph (3/3):" || items[1].Content != p3 {
		t.Fatalf("unexpected second item %+v", items[1])
	}
	for _, it := range items {
		if it.Kind != models.KindText {
			t.Fatalf("unexpected kind %s", it.Kind)
		}
	}
}

func TestTextItems_LongTextIsBounded(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "paragraph %d %s\n\n", i, strings.Repeat("word ", 300))
	}
	items := TextItems(b.String())
	if len(items) != MaxBatchItems {
		t.Fatalf("expected %d items, got %d", MaxBatchItems, len(items))
	}
	if runeLen(items[0].Content) > MaxItemContent {
		t.Fatalf("content not truncated")
	}
}
