package client

import (
	"context"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
)

// Client is the transport-agnostic contract of the remote book review API.
// The bearer credential is supplied by a TokenSource configured on the
// implementation, never passed per call.
type Client interface {
	Close() error

	Login(ctx context.Context, in models.LoginInput) (models.AuthResult, error)
	Register(ctx context.Context, in models.RegisterInput) (models.AuthResult, error)
	UpdateAccount(ctx context.Context, in models.UpdateAccountInput) (models.AuthResult, error)
	DeleteAccount(ctx context.Context, in models.DeleteAccountInput) error

	ListReviews(ctx context.Context, page int) (models.ReviewPage, error)
	CreateReview(ctx context.Context, in models.CreateReviewInput) (models.Review, error)
	UpdateReview(ctx context.Context, id int64, in models.UpdateReviewInput) (models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	Statistics(ctx context.Context, year, month int) (models.Stats, error)

	SearchBooks(ctx context.Context, keyword string) ([]models.Book, error)
}

// TokenSource yields the current bearer credential, or "" when there is none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
