package models

// Book is a catalog search result. It is fetched fresh per query and only
// ever used to seed a new review draft.
type Book struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ThumbnailLink string `json:"thumbnailLink"`
	PublishedDate string `json:"publishedDate"`
	NumOfPages    int    `json:"numOfPages"`
	IsForSale     bool   `json:"isForSale"`
	BuyLink       string `json:"buyLink"`
	IsReviewed    bool   `json:"isReviewed"`
}

// ReviewSeed builds the draft a "create review" action starts from.
func (b Book) ReviewSeed() Review {
	r := EmptyReview()
	r.Rating = DefaultRating
	r.BookTitle = b.Title
	r.BookAuthor = b.Author
	r.BookThumbnailLink = b.ThumbnailLink
	r.BookPublishedDate = b.PublishedDate
	r.BookNumOfPages = b.NumOfPages
	return r
}
