package draft

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/common"
	"github.com/dmitrijs2005/bookreview/internal/validation"
)

const (
	MaxRating        = 5.0
	DefaultMinRating = 0.5
)

// ReviewEditor edits a review together with its tag list. While open, the
// tag list is canonical and the draft's Tags string is stale; Commit joins
// the list back into the payload.
type ReviewEditor struct {
	*Editor[models.Review]

	tags      []string
	tagInput  string
	minRating float64
	validate  *validation.Validator
}

type ReviewOption func(*ReviewEditor)

// WithMinRating sets the lowest rating Commit accepts.
func WithMinRating(min float64) ReviewOption {
	return func(e *ReviewEditor) { e.minRating = min }
}

func WithValidator(v *validation.Validator) ReviewOption {
	return func(e *ReviewEditor) { e.validate = v }
}

func NewReviewEditor(dialog *Dialog, opts ...ReviewOption) *ReviewEditor {
	e := &ReviewEditor{
		Editor:    newEditor(dialog, models.EmptyReview),
		tags:      []string{},
		minRating: DefaultMinRating,
	}
	e.Editor.reset = func() {
		e.tags = []string{}
		e.tagInput = ""
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.validate == nil {
		e.validate = validation.New()
	}
	return e
}

// OpenEdit seeds the draft from a list item.
func (e *ReviewEditor) OpenEdit(r models.Review) {
	e.begin(r, func() {
		e.tags = models.ParseTags(r.Tags)
	})
}

// OpenCreate seeds a new review from a catalog result.
func (e *ReviewEditor) OpenCreate(b models.Book) {
	e.begin(b.ReviewSeed(), nil)
}

// Tags returns a copy of the tag list.
func (e *ReviewEditor) Tags() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.tags))
	copy(out, e.tags)
	return out
}

func (e *ReviewEditor) TagInput() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tagInput
}

func (e *ReviewEditor) SetComment(s string) error {
	return e.update(func(r *models.Review) error {
		r.Comment = s
		return nil
	})
}

func (e *ReviewEditor) SetRating(v float64) error {
	if v < 0 || v > MaxRating || !validation.IsHalfStep(v) {
		return fmt.Errorf("%w: got %v", ErrInvalidRating, v)
	}
	return e.update(func(r *models.Review) error {
		r.Rating = v
		return nil
	})
}

func (e *ReviewEditor) SetReadingStatus(s models.ReadingStatus) error {
	if s != models.StatusReading && s != models.StatusFinished {
		return fmt.Errorf("%w: got %q", ErrInvalidStatus, s)
	}
	return e.update(func(r *models.Review) error {
		r.ReadingStatus = s
		return nil
	})
}

func (e *ReviewEditor) SetReadPages(n int) error {
	if n < 0 {
		return ErrNegativePages
	}
	return e.update(func(r *models.Review) error {
		r.ReadPages = n
		return nil
	})
}

func (e *ReviewEditor) SetStartReadAt(date string) error {
	if err := checkDate(date); err != nil {
		return err
	}
	return e.update(func(r *models.Review) error {
		r.StartReadAt = date
		return nil
	})
}

func (e *ReviewEditor) SetFinishReadAt(date string) error {
	if err := checkDate(date); err != nil {
		return err
	}
	return e.update(func(r *models.Review) error {
		r.FinishReadAt = date
		return nil
	})
}

func checkDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(common.DateLayout, date); err != nil {
		return fmt.Errorf("%w: got %q", ErrInvalidDate, date)
	}
	return nil
}

func (e *ReviewEditor) SetTagInput(s string) error {
	return e.update(func(*models.Review) error {
		e.tagInput = s
		return nil
	})
}

// AddTag appends the trimmed tag input and clears it. Blank input is a no-op.
func (e *ReviewEditor) AddTag() error {
	return e.update(func(*models.Review) error {
		tag := strings.TrimSpace(e.tagInput)
		if tag == "" {
			return nil
		}
		if strings.Contains(tag, models.TagSeparator) {
			return fmt.Errorf("%w: %q", ErrTagHasComma, tag)
		}
		e.tags = append(e.tags, tag)
		e.tagInput = ""
		return nil
	})
}

// RemoveTag removes the tag at position i, keeping the order of the rest.
func (e *ReviewEditor) RemoveTag(i int) error {
	return e.update(func(*models.Review) error {
		if i < 0 || i >= len(e.tags) {
			return fmt.Errorf("%w: %d", ErrTagIndex, i)
		}
		e.tags = append(e.tags[:i:i], e.tags[i+1:]...)
		return nil
	})
}

// Set assigns a field from its textual form.
func (e *ReviewEditor) Set(field, value string) error {
	switch strings.ToLower(field) {
	case "comment":
		return e.SetComment(value)
	case "rating":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidRating, value)
		}
		return e.SetRating(v)
	case "status":
		return e.SetReadingStatus(models.ReadingStatus(normalizeStatus(value)))
	case "pages":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("read pages: %w", err)
		}
		return e.SetReadPages(n)
	case "start":
		return e.SetStartReadAt(value)
	case "finish":
		return e.SetFinishReadAt(value)
	case "tag":
		return e.SetTagInput(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

func normalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reading":
		return string(models.StatusReading)
	case "finished":
		return string(models.StatusFinished)
	}
	return s
}

// Commit returns the persistable review: the draft with the tag list joined
// into Tags. The editor stays open; the owner closes it once the save
// succeeds.
func (e *ReviewEditor) Commit() (models.Review, error) {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return models.Review{}, ErrDraftClosed
	}
	out := Payload(e.draft, e.tags)
	e.mu.Unlock()

	if out.Rating < e.minRating {
		return models.Review{}, fmt.Errorf("%w: rating must be at least %v", ErrInvalidRating, e.minRating)
	}

	var err error
	if out.IsPersisted() {
		err = e.validate.Validate(UpdatePayload(out))
	} else {
		err = e.validate.Validate(CreatePayload(out))
	}
	if err != nil {
		return models.Review{}, err
	}
	return out, nil
}

// Payload serializes a draft and its tag list into a persistable review.
func Payload(r models.Review, tags []string) models.Review {
	r.Tags = models.JoinTags(tags)
	return r
}

func CreatePayload(r models.Review) models.CreateReviewInput {
	return models.CreateReviewInput{
		Comment:           r.Comment,
		Rating:            r.Rating,
		ReadingStatus:     r.ReadingStatus,
		ReadPages:         r.ReadPages,
		StartReadAt:       r.StartReadAt,
		FinishReadAt:      r.FinishReadAt,
		Tags:              r.Tags,
		BookTitle:         r.BookTitle,
		BookAuthor:        r.BookAuthor,
		BookThumbnailLink: r.BookThumbnailLink,
		BookPublishedDate: r.BookPublishedDate,
		BookNumOfPages:    r.BookNumOfPages,
	}
}

func UpdatePayload(r models.Review) models.UpdateReviewInput {
	return models.UpdateReviewInput{
		Comment:       r.Comment,
		Rating:        r.Rating,
		ReadingStatus: r.ReadingStatus,
		ReadPages:     r.ReadPages,
		StartReadAt:   r.StartReadAt,
		FinishReadAt:  r.FinishReadAt,
		Tags:          r.Tags,
	}
}
