package domain

import "time"

// Document is a free-text note that takes part in retrieval.
// Notes are stored in SQLite or read from configured note directories.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title, used as the result label.
	Title string

	// Content is the full note text.
	Content string

	// Path is the file the note was read from. Empty for stored notes.
	Path string

	// CreatedAt is when the note was written.
	CreatedAt time.Time
}

// Label returns the display label used for search results.
func (d Document) Label() string {
	return d.Title
}
