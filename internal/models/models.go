package models

import (
	"time"
)

// ItemKind tags what a study item was extracted as.
type ItemKind string

const (
	KindText       ItemKind = "text"
	KindDefinition ItemKind = "definition"
	KindParagraph  ItemKind = "paragraph"
	KindKeyConcept ItemKind = "key_concept"
	KindList       ItemKind = "list"
	KindError      ItemKind = "error"
)

// StudyItem is one fragment the user types out.
type StudyItem struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Content string   `json:"content"`
	Kind    ItemKind `json:"type"`
	Context string   `json:"context"` // origin label, e.g. "Terminology"
}

// StudySession holds the items produced from one upload and a cursor into them.
type StudySession struct {
	ID           string      `json:"id"`
	Filename     string      `json:"filename"`
	Items        []StudyItem `json:"items"`
	CurrentIndex int         `json:"current_index"`
	TotalItems   int         `json:"total_items"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Progress reports the cursor position of a session.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// SubmitResult is the score for one typed answer.
type SubmitResult struct {
	ItemID    string  `json:"item_id"`
	Accuracy  float64 `json:"accuracy"`
	WPM       float64 `json:"wpm"`
	TimeTaken float64 `json:"time_taken"`
}

// StorageStats summarises the upload folder.
type StorageStats struct {
	FilesCount int          `json:"files_count"`
	TotalSize  int64        `json:"total_size"`
	Files      []StoredFile `json:"files"`
}

// StoredFile describes one file in the upload folder.
type StoredFile struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	Created time.Time `json:"created"`
}
