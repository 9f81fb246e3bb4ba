package model

// Field length limits for cards, inherited from the diary schema
const (
	MaxCardTitleLen    = 64
	MaxCardSubtitleLen = 100
	MaxCardTextLen     = 220
)

// Card represents a single diary entry.
// Title, subtitle and text are each globally unique across all cards;
// cards are not owned by any user.
type Card struct {
	ID       int64
	Title    string
	Subtitle string
	Text     string
}
