package types

import "time"

// Snapshot is a point-in-time copy of all three collections, as written to
// and read from export files. A nil Flashcards or Categories slice means the
// key was absent from the file.
type Snapshot struct {
	Flashcards []*Flashcard `json:"flashcards"`
	Categories []*Category  `json:"categories"`
	Images     []*Image     `json:"images"`
	ExportDate time.Time    `json:"exportDate"`
}
