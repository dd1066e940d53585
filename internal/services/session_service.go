package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/markdave123-py/TypeSpark/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionComplete = errors.New("no more items in session")
	ErrItemNotFound    = errors.New("item not found")
)

// DefaultTimeTaken is used when a submission carries no time.
const DefaultTimeTaken = 60.0

// SessionService keeps study sessions in memory. Sessions live until the
// process exits.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*models.StudySession
	now      func() time.Time
}

func NewSessionService() *SessionService {
	return &SessionService{
		sessions: make(map[string]*models.StudySession),
		now:      time.Now,
	}
}

// Create stores a new session over items with the cursor at the start.
func (s *SessionService) Create(filename string, items []models.StudyItem) *models.StudySession {
	sess := &models.StudySession{
		ID:         uuid.NewString(),
		Filename:   filename,
		Items:      append([]models.StudyItem(nil), items...),
		TotalItems: len(items),
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return snapshot(sess)
}

// Get returns a copy of the session.
func (s *SessionService) Get(id string) (*models.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return snapshot(sess), nil
}

// Next returns the item under the cursor and advances it.
func (s *SessionService) Next(id string) (models.StudyItem, models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return models.StudyItem{}, models.Progress{}, ErrSessionNotFound
	}
	if sess.CurrentIndex >= sess.TotalItems {
		return models.StudyItem{}, progressOf(sess), ErrSessionComplete
	}

	item := sess.Items[sess.CurrentIndex]
	sess.CurrentIndex++
	return item, progressOf(sess), nil
}

// Submit scores answer against the item's content. A nil timeTaken means
// DefaultTimeTaken seconds. The cursor does not move.
func (s *SessionService) Submit(id, itemID, answer string, timeTaken *float64) (models.SubmitResult, models.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return models.SubmitResult{}, models.Progress{}, ErrSessionNotFound
	}

	var item *models.StudyItem
	for i := range sess.Items {
		if sess.Items[i].ID == itemID {
			item = &sess.Items[i]
			break
		}
	}
	if item == nil {
		return models.SubmitResult{}, progressOf(sess), ErrItemNotFound
	}

	t := DefaultTimeTaken
	if timeTaken != nil {
		t = *timeTaken
	}
	return models.SubmitResult{
		ItemID:    itemID,
		Accuracy:  Accuracy(item.Content, answer),
		WPM:       WPM(item.Content, t),
		TimeTaken: t,
	}, progressOf(sess), nil
}

// Count is the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Accuracy is the share of expected characters matched at the same position
// in answer. An empty expected text scores 0.
func Accuracy(expected, answer string) float64 {
	exp := []rune(expected)
	if len(exp) == 0 {
		return 0
	}
	got := []rune(answer)

	matches := 0
	for i := 0; i < len(exp) && i < len(got); i++ {
		if exp[i] == got[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(exp))
}

// WPM counts the whitespace separated words of expected typed in seconds.
func WPM(expected string, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(len(strings.Fields(expected))) / seconds * 60
}

func progressOf(sess *models.StudySession) models.Progress {
	return models.Progress{Current: sess.CurrentIndex, Total: sess.TotalItems}
}

func snapshot(sess *models.StudySession) *models.StudySession {
	cp := *sess
	cp.Items = append([]models.StudyItem(nil), sess.Items...)
	return &cp
}
