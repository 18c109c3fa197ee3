// Package share builds pre-filled tweet intent links for reviews and
// reading statistics.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
)

const tweetIntentURL = "https://twitter.com/intent/tweet"

// ReviewText is "[<book title>]" followed by the comment on the next line.
func ReviewText(r models.Review) string {
	return fmt.Sprintf("[%s]\n%s", r.BookTitle, r.Comment)
}

// StatsText summarises a month and its year, one count per line.
func StatsText(year, month int, st models.Stats) string {
	lines := []string{
		fmt.Sprintf("Books read in %d/%d: %d", month, year, st.NumOfReadBooksOfMonth),
		fmt.Sprintf("Pages read in %d/%d: %d", month, year, st.NumOfReadPagesOfMonth),
		fmt.Sprintf("Books read in %d: %d", year, st.NumOfReadBooksOfYear),
		fmt.Sprintf("Pages read in %d: %d", year, st.NumOfReadPagesOfYear),
	}
	return strings.Join(lines, "\n")
}

// TweetURL returns the intent link that opens a tweet pre-filled with text.
func TweetURL(text string) string {
	q := url.Values{}
	q.Set("text", text)
	return tweetIntentURL + "?" + q.Encode()
}
