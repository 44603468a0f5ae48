package checklist

import "strings"

// Document is the immutable text of one rip log.
type Document struct {
	text string
}

// NewDocument wraps already-decoded log text.
func NewDocument(text string) Document {
	return Document{text: text}
}

// Text returns the full log text.
func (d Document) Text() string {
	return d.text
}

// Empty reports whether the document carries no content. Whitespace-only
// text counts as empty.
func (d Document) Empty() bool {
	return strings.TrimSpace(d.text) == ""
}
