package services

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/dmitrijs2005/bookreview/internal/client/client"
	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/client/notify"
	"github.com/dmitrijs2005/bookreview/internal/client/session"
	"github.com/stretchr/testify/require"
)

var errUnauthorized = &client.APIError{Status: http.StatusUnauthorized, Message: "token is expired"}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	mu sync.Mutex

	ListFn   func(ctx context.Context, page int) (models.ReviewPage, error)
	ListArgs []int

	CreateErr  error
	CreateArgs []models.CreateReviewInput

	UpdateErr error
	UpdateIDs []int64
	UpdateIns []models.UpdateReviewInput

	DeleteErr error
	DeleteIDs []int64

	StatsRet models.Stats
	StatsErr error

	SearchFn   func(ctx context.Context, kw string) ([]models.Book, error)
	SearchArgs []string

	LoginRet  models.AuthResult
	LoginErr  error
	LoginArgs []models.LoginInput

	RegisterRet models.AuthResult
	RegisterErr error

	UpdateAccountRet  models.AuthResult
	UpdateAccountErr  error
	UpdateAccountArgs []models.UpdateAccountInput

	DeleteAccountErr  error
	DeleteAccountArgs []models.DeleteAccountInput
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(_ context.Context, in models.LoginInput) (models.AuthResult, error) {
	f.LoginArgs = append(f.LoginArgs, in)
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(context.Context, models.RegisterInput) (models.AuthResult, error) {
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) UpdateAccount(_ context.Context, in models.UpdateAccountInput) (models.AuthResult, error) {
	f.UpdateAccountArgs = append(f.UpdateAccountArgs, in)
	return f.UpdateAccountRet, f.UpdateAccountErr
}

func (f *fakeClient) DeleteAccount(_ context.Context, in models.DeleteAccountInput) error {
	f.DeleteAccountArgs = append(f.DeleteAccountArgs, in)
	return f.DeleteAccountErr
}

func (f *fakeClient) ListReviews(ctx context.Context, page int) (models.ReviewPage, error) {
	f.mu.Lock()
	f.ListArgs = append(f.ListArgs, page)
	fn := f.ListFn
	f.mu.Unlock()
	if fn == nil {
		return models.ReviewPage{Items: []models.Review{}, TotalPages: 1}, nil
	}
	return fn(ctx, page)
}

func (f *fakeClient) listCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.ListArgs))
	copy(out, f.ListArgs)
	return out
}

func (f *fakeClient) CreateReview(_ context.Context, in models.CreateReviewInput) (models.Review, error) {
	f.CreateArgs = append(f.CreateArgs, in)
	return models.Review{ID: 99}, f.CreateErr
}

func (f *fakeClient) UpdateReview(_ context.Context, id int64, in models.UpdateReviewInput) (models.Review, error) {
	f.UpdateIDs = append(f.UpdateIDs, id)
	f.UpdateIns = append(f.UpdateIns, in)
	return models.Review{ID: id}, f.UpdateErr
}

func (f *fakeClient) DeleteReview(_ context.Context, id int64) error {
	f.DeleteIDs = append(f.DeleteIDs, id)
	return f.DeleteErr
}

func (f *fakeClient) Statistics(context.Context, int, int) (models.Stats, error) {
	return f.StatsRet, f.StatsErr
}

func (f *fakeClient) SearchBooks(ctx context.Context, kw string) ([]models.Book, error) {
	f.mu.Lock()
	f.SearchArgs = append(f.SearchArgs, kw)
	fn := f.SearchFn
	f.mu.Unlock()
	if fn == nil {
		return []models.Book{}, nil
	}
	return fn(ctx, kw)
}

// recorder collects every notification raised on a channel.
type recorder struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (r *recorder) sink(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recorder) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Notification, len(r.got))
	copy(out, r.got)
	return out
}

func (r *recorder) count(sev notify.Severity) int {
	n := 0
	for _, x := range r.all() {
		if x.Severity == sev {
			n++
		}
	}
	return n
}

func newNotes() (*notify.Channel, *recorder) {
	ch := notify.NewChannel()
	rec := &recorder{}
	ch.Subscribe(rec.sink)
	return ch, rec
}

func signedIn(t *testing.T) *session.Store {
	t.Helper()
	s := session.NewStore(&session.MemoryCredentials{})
	require.NoError(t, s.SaveCredential(context.Background(), models.AuthResult{Name: "alice", Email: "alice@example.com", Token: "tok"}))
	return s
}
