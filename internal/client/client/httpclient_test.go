package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) { return s.token, s.err }

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, data any, msg string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	st := "success"
	if status >= 300 {
		st = "fail"
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"status": st, "error": msg, "data": data})
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource, opts ...Option) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, tokens, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient("localhost:8080", nil)
	require.Error(t, err)

	_, err = NewHTTPClient("/api", nil)
	require.Error(t, err)
}

func TestListReviews_SendsPageAndBearer(t *testing.T) {
	var gotAuth, gotReqID, gotPage, gotPath string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotPage = r.URL.Query().Get("page")
		gotPath = r.URL.Path
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"items":      []models.Review{{ID: 7, Comment: "good", Rating: 4}},
			"totalPages": 3,
		}, "")
	}, staticTokens{token: "abc"})

	page, err := c.ListReviews(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "/review/", gotPath)

	want := models.ReviewPage{Items: []models.Review{{ID: 7, Comment: "good", Rating: 4}}, TotalPages: 3}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestListReviews_NormalizesMissingFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, map[string]any{}, "")
	}, nil)

	page, err := c.ListReviews(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestDo_NoTokenNoAuthorizationHeader(t *testing.T) {
	var hadAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		writeEnvelope(t, w, http.StatusOK, []models.Book{}, "")
	}, staticTokens{})

	_, err := c.SearchBooks(context.Background(), "dune")
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestDo_TokenSourceErrorIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}, staticTokens{err: errors.New("store broken")})

	err := c.DeleteReview(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, nil, "token expired")
	}, staticTokens{token: "old"})

	err := c.DeleteReview(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "token expired")
}

func TestDo_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusConflict, nil, "email already registered")
	}, nil)

	_, err := c.Register(context.Background(), models.RegisterInput{Name: "a", Email: "a@example.com", Password: "p", PasswordConfirmation: "p"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email already registered", apiErr.Error())
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestAPIError_EmptyMessage(t *testing.T) {
	err := &APIError{Status: http.StatusInternalServerError}
	assert.Equal(t, "server error: 500 Internal Server Error", err.Error())
}

func TestDo_BadResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "<html>not json</html>")
	}, nil)

	_, err := c.Statistics(context.Background(), 2024, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestDo_ResponseSizeLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		author := "Frank Herbert"
		if r.URL.Query().Get("search") == "huge" {
			author = strings.Repeat("x", 1024)
		}
		writeEnvelope(t, w, http.StatusOK, []models.Book{{Title: "Dune", Author: author}}, "")
	}, nil, WithMaxResponseSize(256))
	ctx := context.Background()

	books, err := c.SearchBooks(ctx, "dune")
	require.NoError(t, err)
	require.Len(t, books, 1)

	_, err = c.SearchBooks(ctx, "huge")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadResponse)
	assert.Contains(t, err.Error(), "exceeds 256 bytes")
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c, err := NewHTTPClient(endpoint, nil, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.ListReviews(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, nil, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.ListReviews(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUpdateReview_PatchBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody models.UpdateReviewInput

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeEnvelope(t, w, http.StatusOK, models.Review{ID: 7, Rating: 4.5}, "")
	}, nil)

	in := models.UpdateReviewInput{Comment: "c", Rating: 4.5, ReadingStatus: models.StatusReading, Tags: "mystery"}
	res, err := c.UpdateReview(context.Background(), 7, in)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/review/7", gotPath)
	assert.Equal(t, in, gotBody)
	assert.Equal(t, int64(7), res.ID)
}

func TestStatistics_Query(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/review/statistics", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		assert.Equal(t, "5", r.URL.Query().Get("month"))
		writeEnvelope(t, w, http.StatusOK, models.Stats{NumOfReadBooksOfMonth: 2, NumOfReadPagesOfYear: 900}, "")
	}, nil)

	st, err := c.Statistics(context.Background(), 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.NumOfReadBooksOfMonth)
	assert.Equal(t, int64(900), st.NumOfReadPagesOfYear)
}

func TestSearchBooks_NullDataIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book/search", r.URL.Path)
		assert.Equal(t, "the hobbit", r.URL.Query().Get("search"))
		writeEnvelope(t, w, http.StatusOK, nil, "")
	}, nil)

	books, err := c.SearchBooks(context.Background(), "the hobbit")
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestSearchBooks_RateLimitHonorsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, []models.Book{}, "")
	}, nil, WithSearchRate(0.001, 1))

	_, err := c.SearchBooks(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.SearchBooks(ctx, "b")
	require.Error(t, err)
}

func TestLoginAndAccount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
			var in models.LoginInput
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "alice@example.com", in.Email)
			writeEnvelope(t, w, http.StatusOK, models.AuthResult{Name: "alice", Email: in.Email, Token: "tok"}, "")
		case r.Method == http.MethodPatch && r.URL.Path == "/auth/account":
			writeEnvelope(t, w, http.StatusOK, models.AuthResult{Name: "alicia", Email: "alicia@example.com", Token: "tok2"}, "")
		case r.Method == http.MethodDelete && r.URL.Path == "/auth/account":
			var in models.DeleteAccountInput
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "pw", in.Password)
			writeEnvelope(t, w, http.StatusOK, nil, "")
		default:
			http.NotFound(w, r)
		}
	}, nil)

	ctx := context.Background()

	res, err := c.Login(ctx, models.LoginInput{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)

	res, err = c.UpdateAccount(ctx, models.UpdateAccountInput{Password: "pw", NewName: "alicia", NewEmail: "alicia@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alicia", res.Name)

	require.NoError(t, c.DeleteAccount(ctx, models.DeleteAccountInput{Password: "pw"}))
}
