package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/bookreview/internal/client/client"
	"github.com/dmitrijs2005/bookreview/internal/client/draft"
	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/client/notify"
	"github.com/dmitrijs2005/bookreview/internal/logging"
)

// Pagination is the position of the in-memory page.
type Pagination struct {
	CurrentPage int
	TotalPages  int
}

// ReviewCommitter yields the persistable review of an open draft.
type ReviewCommitter interface {
	Commit() (models.Review, error)
}

// ReviewService owns the in-memory page of reviews. The page is only ever
// replaced wholesale by a fetch; mutations resync instead of splicing.
//
// Contract:
//   - FetchPage/SetPage: load a page; results of superseded fetches are
//     dropped and reported as ErrSuperseded. A page past the end is
//     refetched as the last page, so the items always belong to CurrentPage.
//   - Reset: subscribed to the session; logout drops the loaded page.
//   - Create/Update/Delete: on success close the draft dialog, resync the
//     current page once and emit one success notification; on failure emit
//     one error notification and leave the draft open.
//   - Any 401 logs the user out and returns ErrLoginRequired.
type ReviewService interface {
	FetchPage(ctx context.Context, page int) error
	Refresh(ctx context.Context) error
	SetPage(ctx context.Context, page int) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error

	Create(ctx context.Context, in models.CreateReviewInput) error
	Update(ctx context.Context, id int64, in models.UpdateReviewInput) error
	Delete(ctx context.Context, id int64) error
	Save(ctx context.Context, d ReviewCommitter) error

	Items() []models.Review
	Item(index int) (models.Review, bool)
	Reset(id *models.Identity)
	Pagination() Pagination
	Statistics(ctx context.Context, year, month int) (models.Stats, error)
}

type reviewService struct {
	client  client.Client
	notes   Notifier
	dialog  DialogCloser
	failure *failureHandler
	logger  logging.Logger

	mu         sync.Mutex
	generation uint64
	items      []models.Review
	page       int
	totalPages int
}

func NewReviewService(c client.Client, s Session, n Notifier, d DialogCloser, logger logging.Logger) ReviewService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &reviewService{
		client:     c,
		notes:      n,
		dialog:     d,
		failure:    &failureHandler{session: s, notes: n, logger: logger},
		logger:     logger,
		items:      []models.Review{},
		page:       1,
		totalPages: 1,
	}
}

// maxClampRefetch bounds the refetches when the page count keeps shrinking
// under a requested page.
const maxClampRefetch = 2

func (s *reviewService) FetchPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.generation++
	ticket := s.generation
	s.mu.Unlock()

	var (
		res models.ReviewPage
		err error
	)
	for attempt := 0; ; attempt++ {
		res, err = s.client.ListReviews(ctx, page)
		if err != nil || page <= res.TotalPages || attempt == maxClampRefetch {
			break
		}
		if s.stale(ticket) {
			break
		}
		s.logger.Info(ctx, "requested page is past the end, refetching", "page", page, "total_pages", res.TotalPages)
		page = res.TotalPages
	}

	s.mu.Lock()
	if ticket != s.generation {
		s.mu.Unlock()
		s.logger.Info(ctx, "dropping superseded page fetch", "page", page)
		return ErrSuperseded
	}
	if err != nil {
		s.mu.Unlock()
		return s.failure.handle(ctx, "fetch reviews", err)
	}

	s.items = res.Items
	s.totalPages = res.TotalPages
	s.page = min(page, s.totalPages)
	s.mu.Unlock()

	return nil
}

func (s *reviewService) stale(ticket uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ticket != s.generation
}

// Reset forgets the loaded page. It matches session.Listener and drops the
// page when the identity is cleared.
func (s *reviewService) Reset(id *models.Identity) {
	if id != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.items = []models.Review{}
	s.page = 1
	s.totalPages = 1
}

func (s *reviewService) Refresh(ctx context.Context) error {
	return s.FetchPage(ctx, s.Pagination().CurrentPage)
}

// SetPage moves to page, clamped to the known page range.
func (s *reviewService) SetPage(ctx context.Context, page int) error {
	p := s.Pagination()
	return s.FetchPage(ctx, min(max(page, 1), p.TotalPages))
}

func (s *reviewService) NextPage(ctx context.Context) error {
	return s.SetPage(ctx, s.Pagination().CurrentPage+1)
}

func (s *reviewService) PrevPage(ctx context.Context) error {
	return s.SetPage(ctx, s.Pagination().CurrentPage-1)
}

func (s *reviewService) Create(ctx context.Context, in models.CreateReviewInput) error {
	return s.mutate(ctx, "create review", notify.MsgCreated, func() error {
		_, err := s.client.CreateReview(ctx, in)
		return err
	})
}

func (s *reviewService) Update(ctx context.Context, id int64, in models.UpdateReviewInput) error {
	return s.mutate(ctx, "update review", notify.MsgUpdated, func() error {
		_, err := s.client.UpdateReview(ctx, id, in)
		return err
	})
}

func (s *reviewService) Delete(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete review", notify.MsgDeleted, func() error {
		return s.client.DeleteReview(ctx, id)
	})
}

// Save commits the draft and persists it with Create or Update.
func (s *reviewService) Save(ctx context.Context, d ReviewCommitter) error {
	r, err := d.Commit()
	if err != nil {
		return s.failure.handleAnonymous(ctx, "save review", err)
	}
	if r.IsPersisted() {
		return s.Update(ctx, r.ID, draft.UpdatePayload(r))
	}
	return s.Create(ctx, draft.CreatePayload(r))
}

func (s *reviewService) mutate(ctx context.Context, op, success string, call func() error) error {
	if err := call(); err != nil {
		return s.failure.handle(ctx, op, err)
	}

	s.dialog.CloseAll()
	s.notes.Success(success)

	if err := s.Refresh(ctx); err != nil {
		if errors.Is(err, ErrLoginRequired) {
			return err
		}
		s.logger.Warn(ctx, "resync after mutation failed", "op", op, "error", err)
	}
	return nil
}

func (s *reviewService) Items() []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Review, len(s.items))
	copy(out, s.items)
	return out
}

func (s *reviewService) Item(index int) (models.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return models.Review{}, false
	}
	return s.items[index], true
}

func (s *reviewService) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Pagination{CurrentPage: s.page, TotalPages: s.totalPages}
}

func (s *reviewService) Statistics(ctx context.Context, year, month int) (models.Stats, error) {
	st, err := s.client.Statistics(ctx, year, month)
	if err != nil {
		return models.Stats{}, s.failure.handle(ctx, "fetch statistics", err)
	}
	return st, nil
}
