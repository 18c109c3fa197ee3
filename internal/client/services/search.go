package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookreview/internal/client/client"
	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/logging"
)

// CreateDraftOpener seeds a new review draft from a catalog result.
type CreateDraftOpener interface {
	OpenCreate(b models.Book)
}

// SearchService queries the catalog. Each search replaces the previous
// result set wholesale.
type SearchService interface {
	Search(ctx context.Context, keyword string) error
	Keyword() string
	Results() []models.Book
	OpenCreateDraft(index int) error
	BuyLink(index int) (string, bool)
}

type searchService struct {
	client  client.Client
	drafts  CreateDraftOpener
	failure *failureHandler
	logger  logging.Logger

	mu         sync.Mutex
	generation uint64
	keyword    string
	results    []models.Book
}

func NewSearchService(c client.Client, s Session, n Notifier, drafts CreateDraftOpener, logger logging.Logger) SearchService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &searchService{
		client:  c,
		drafts:  drafts,
		failure: &failureHandler{session: s, notes: n, logger: logger},
		logger:  logger,
		results: []models.Book{},
	}
}

// Search runs a catalog query. A blank keyword issues no request and keeps
// the current results.
func (s *searchService) Search(ctx context.Context, keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ErrEmptyKeyword
	}

	s.mu.Lock()
	s.generation++
	ticket := s.generation
	s.mu.Unlock()

	books, err := s.client.SearchBooks(ctx, keyword)

	s.mu.Lock()
	if ticket != s.generation {
		s.mu.Unlock()
		s.logger.Info(ctx, "dropping superseded search", "keyword", keyword)
		return ErrSuperseded
	}
	if err != nil {
		s.mu.Unlock()
		return s.failure.handle(ctx, "search books", err)
	}
	s.keyword = keyword
	s.results = books
	s.mu.Unlock()

	return nil
}

func (s *searchService) Keyword() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyword
}

func (s *searchService) Results() []models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Book, len(s.results))
	copy(out, s.results)
	return out
}

func (s *searchService) result(index int) (models.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.results) {
		return models.Book{}, false
	}
	return s.results[index], true
}

func (s *searchService) OpenCreateDraft(index int) error {
	b, ok := s.result(index)
	if !ok {
		return ErrNoSuchResult
	}
	s.drafts.OpenCreate(b)
	return nil
}

// BuyLink returns the purchase link of a result; ok is false when the book
// is not for sale.
func (s *searchService) BuyLink(index int) (string, bool) {
	b, ok := s.result(index)
	if !ok || !b.IsForSale || b.BuyLink == "" {
		return "", false
	}
	return b.BuyLink, true
}
