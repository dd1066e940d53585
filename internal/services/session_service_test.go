package services

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/markdave123-py/TypeSpark/internal/models"
)

func sampleItems() []models.StudyItem {
	return []models.StudyItem{
		{ID: "a", Prompt: "Type this text:", Content: "the quick brown fox", Kind: models.KindText},
		{ID: "b", Prompt: "Type this text:", Content: "jumps over", Kind: models.KindText},
	}
}

func TestSessionService_NextWalksItems(t *testing.T) {
	s := NewSessionService()
	sess := s.Create("notes.txt", sampleItems())
	if sess.TotalItems != 2 || sess.CurrentIndex != 0 {
		t.Fatalf("unexpected session %+v", sess)
	}

	item, p, err := s.Next(sess.ID)
	if err != nil || item.ID != "a" || p.Current != 1 || p.Total != 2 {
		t.Fatalf("first next: %+v %+v %v", item, p, err)
	}
	item, p, err = s.Next(sess.ID)
	if err != nil || item.ID != "b" || p.Current != 2 {
		t.Fatalf("second next: %+v %+v %v", item, p, err)
	}
	if _, _, err := s.Next(sess.ID); !errors.Is(err, ErrSessionComplete) {
		t.Fatalf("expected ErrSessionComplete, got %v", err)
	}
}

func TestSessionService_UnknownSession(t *testing.T) {
	s := NewSessionService()
	if _, err := s.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("get: %v", err)
	}
	if _, _, err := s.Next("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("next: %v", err)
	}
	if _, _, err := s.Submit("missing", "a", "x", nil); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("submit: %v", err)
	}
}

func TestSessionService_GetReturnsCopy(t *testing.T) {
	s := NewSessionService()
	sess := s.Create("doc.pdf", sampleItems())

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Items[0].Content = "changed"
	got.CurrentIndex = 5

	again, _ := s.Get(sess.ID)
	if again.Items[0].Content != "the quick brown fox" || again.CurrentIndex != 0 {
		t.Fatalf("stored session was mutated: %+v", again)
	}
}

func TestSessionService_Submit(t *testing.T) {
	s := NewSessionService()
	sess := s.Create("doc.pdf", sampleItems())

	taken := 30.0
	res, _, err := s.Submit(sess.ID, "a", "the quick brown fox", &taken)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Accuracy != 1 || res.WPM != 8 || res.TimeTaken != 30 {
		t.Fatalf("unexpected result %+v", res)
	}

	res, _, err = s.Submit(sess.ID, "b", "jumps", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.TimeTaken != DefaultTimeTaken || res.WPM != 2 || math.Abs(res.Accuracy-0.5) > 1e-9 {
		t.Fatalf("unexpected result %+v", res)
	}

	if _, _, err := s.Submit(sess.ID, "zzz", "x", nil); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestAccuracyAndWPM(t *testing.T) {
	if got := Accuracy("", "anything"); got != 0 {
		t.Fatalf("empty expected: %v", got)
	}
	if got := Accuracy("abcd", "abxdzz"); got != 0.75 {
		t.Fatalf("positional: %v", got)
	}
	if got := Accuracy("héllo", "héllo"); got != 1 {
		t.Fatalf("multibyte: %v", got)
	}
	if got := WPM("one two", 0); got != 0 {
		t.Fatalf("zero time: %v", got)
	}
	if got := WPM("one two", -5); got != 0 {
		t.Fatalf("negative time: %v", got)
	}
}

func TestSessionService_ConcurrentNext(t *testing.T) {
	s := NewSessionService()
	items := make([]models.StudyItem, 50)
	for i := range items {
		items[i] = models.StudyItem{ID: string(rune('A' + i)), Content: "x"}
	}
	sess := s.Create("doc.pdf", items)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item, _, err := s.Next(sess.ID)
			if err != nil {
				return
			}
			mu.Lock()
			seen[item.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != 50 {
		t.Fatalf("expected every item served once, got %d", len(seen))
	}
}
