// Package models defines the client-side data shapes of the book review
// tracker: reviews, catalog books, identities and the request payloads
// exchanged with the remote API.
package models

// ReadingStatus is the progress state of a reviewed book.
type ReadingStatus string

const (
	StatusReading  ReadingStatus = "Reading"
	StatusFinished ReadingStatus = "Finished"
)

// PlaceholderID marks a review that has not been persisted yet.
const PlaceholderID int64 = -1

// DefaultRating seeds a freshly created review draft.
const DefaultRating = 3.0

// Review is a persisted (or to-be-persisted) review joined with its book.
// Tags is the comma-joined wire form; see ParseTags and JoinTags.
type Review struct {
	ID                int64         `json:"id"`
	Comment           string        `json:"comment"`
	Rating            float64       `json:"rating"`
	ReadingStatus     ReadingStatus `json:"readingStatus"`
	ReadPages         int           `json:"readPages"`
	StartReadAt       string        `json:"startReadAt"`
	FinishReadAt      string        `json:"finishReadAt"`
	Tags              string        `json:"tags"`
	BookTitle         string        `json:"bookTitle"`
	BookAuthor        string        `json:"bookAuthor"`
	BookThumbnailLink string        `json:"bookThumbnailLink"`
	BookPublishedDate string        `json:"bookPublishedDate"`
	BookNumOfPages    int           `json:"bookNumOfPages"`
}

// EmptyReview is the closed-dialog placeholder.
func EmptyReview() Review {
	return Review{ID: PlaceholderID, ReadingStatus: StatusReading}
}

// IsPersisted reports whether the review carries a server-assigned id.
func (r Review) IsPersisted() bool {
	return r.ID > 0
}

// ReviewPage is one page of the review collection as returned by the server.
type ReviewPage struct {
	Items      []Review `json:"items"`
	TotalPages int      `json:"totalPages"`
}

// Normalize applies the server-side defaults: a missing item list is empty
// and a missing page count is one.
func (p ReviewPage) Normalize() ReviewPage {
	if p.Items == nil {
		p.Items = []Review{}
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	return p
}

// CreateReviewInput is the body of POST /review/.
type CreateReviewInput struct {
	Comment           string        `json:"comment"`
	Rating            float64       `json:"rating" validate:"gte=0,lte=5,halfstep"`
	ReadingStatus     ReadingStatus `json:"readingStatus" validate:"required,oneof=Reading Finished"`
	ReadPages         int           `json:"readPages" validate:"gte=0"`
	StartReadAt       string        `json:"startReadAt" validate:"omitempty,datetime=2006-01-02"`
	FinishReadAt      string        `json:"finishReadAt" validate:"omitempty,datetime=2006-01-02"`
	Tags              string        `json:"tags"`
	BookTitle         string        `json:"bookTitle" validate:"required"`
	BookAuthor        string        `json:"bookAuthor" validate:"required"`
	BookThumbnailLink string        `json:"bookThumbnailLink"`
	BookPublishedDate string        `json:"bookPublishedDate"`
	BookNumOfPages    int           `json:"bookNumOfPages" validate:"gte=0"`
}

// UpdateReviewInput is the body of PATCH /review/{id}.
type UpdateReviewInput struct {
	Comment       string        `json:"comment"`
	Rating        float64       `json:"rating" validate:"gte=0,lte=5,halfstep"`
	ReadingStatus ReadingStatus `json:"readingStatus" validate:"required,oneof=Reading Finished"`
	ReadPages     int           `json:"readPages" validate:"gte=0"`
	StartReadAt   string        `json:"startReadAt" validate:"omitempty,datetime=2006-01-02"`
	FinishReadAt  string        `json:"finishReadAt" validate:"omitempty,datetime=2006-01-02"`
	Tags          string        `json:"tags"`
}

// Stats are the aggregate reading counts of a given year and month.
type Stats struct {
	NumOfReadBooksOfMonth int64 `json:"numOfReadBooksOfMonth"`
	NumOfReadPagesOfMonth int64 `json:"numOfReadPagesOfMonth"`
	NumOfReadBooksOfYear  int64 `json:"numOfReadBooksOfYear"`
	NumOfReadPagesOfYear  int64 `json:"numOfReadPagesOfYear"`
}
