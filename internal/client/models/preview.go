package models

// PreviewLength is the number of characters shown on a list card.
const PreviewLength = 20

// ShortenComment returns the comment unchanged when it has at most
// PreviewLength characters, otherwise its first PreviewLength characters
// followed by "...".
func ShortenComment(comment string) string {
	runes := []rune(comment)
	if len(runes) <= PreviewLength {
		return comment
	}
	return string(runes[:PreviewLength]) + "..."
}
