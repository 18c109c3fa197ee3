package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/logging"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultSearchRate  = 2
	defaultSearchBurst = 4

	// defaultMaxResponse caps the bytes read from one response body.
	defaultMaxResponse = 8 << 20
)

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

// HTTPClient implements Client over the REST/JSON API.
type HTTPClient struct {
	baseURL       *url.URL
	httpClient    *http.Client
	searchLimiter *rate.Limiter
	logger        logging.Logger
	maxResponse   int64
}

type Option func(*HTTPClient)

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithSearchRate limits catalog searches to rps requests per second.
func WithSearchRate(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps > 0 {
			c.searchLimiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithMaxResponseSize caps the size of a response body. Larger bodies fail
// with ErrBadResponse.
func WithMaxResponseSize(n int64) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.maxResponse = n
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithBaseTransport replaces the underlying round tripper (tests).
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		if bt, ok := c.httpClient.Transport.(*bearerTransport); ok {
			bt.next = rt
		}
	}
}

// NewHTTPClient creates a client for the API rooted at endpointURL.
// tokens may be nil, in which case requests are sent unauthenticated.
func NewHTTPClient(endpointURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	base, err := url.Parse(endpointURL)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("endpoint url %q must be absolute", endpointURL)
	}

	c := &HTTPClient{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: &bearerTransport{next: http.DefaultTransport, tokens: tokens},
		},
		searchLimiter: rate.NewLimiter(defaultSearchRate, defaultSearchBurst),
		logger:        logging.Nop(),
		maxResponse:   defaultMaxResponse,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug(ctx, "api request", "method", method, "path", u.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponse+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	if int64(len(raw)) > c.maxResponse {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrBadResponse, c.maxResponse)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	c.logger.Debug(ctx, "api response", "method", method, "path", u.Path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}

	if decodeErr != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, decodeErr)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, in models.LoginInput) (models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "auth/login", nil, in, &res); err != nil {
		return models.AuthResult{}, err
	}
	return res, nil
}

func (c *HTTPClient) Register(ctx context.Context, in models.RegisterInput) (models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "auth/register", nil, in, &res); err != nil {
		return models.AuthResult{}, err
	}
	return res, nil
}

func (c *HTTPClient) UpdateAccount(ctx context.Context, in models.UpdateAccountInput) (models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPatch, "auth/account", nil, in, &res); err != nil {
		return models.AuthResult{}, err
	}
	return res, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, in models.DeleteAccountInput) error {
	return c.do(ctx, http.MethodDelete, "auth/account", nil, in, nil)
}

func (c *HTTPClient) ListReviews(ctx context.Context, page int) (models.ReviewPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	var res models.ReviewPage
	if err := c.do(ctx, http.MethodGet, "review/", q, nil, &res); err != nil {
		return models.ReviewPage{}, err
	}
	return res.Normalize(), nil
}

func (c *HTTPClient) CreateReview(ctx context.Context, in models.CreateReviewInput) (models.Review, error) {
	var res models.Review
	if err := c.do(ctx, http.MethodPost, "review/", nil, in, &res); err != nil {
		return models.Review{}, err
	}
	return res, nil
}

func (c *HTTPClient) UpdateReview(ctx context.Context, id int64, in models.UpdateReviewInput) (models.Review, error) {
	var res models.Review
	if err := c.do(ctx, http.MethodPatch, "review/"+strconv.FormatInt(id, 10), nil, in, &res); err != nil {
		return models.Review{}, err
	}
	return res, nil
}

func (c *HTTPClient) DeleteReview(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "review/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (c *HTTPClient) Statistics(ctx context.Context, year, month int) (models.Stats, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))

	var res models.Stats
	if err := c.do(ctx, http.MethodGet, "review/statistics", q, nil, &res); err != nil {
		return models.Stats{}, err
	}
	return res, nil
}

func (c *HTTPClient) SearchBooks(ctx context.Context, keyword string) ([]models.Book, error) {
	if err := c.searchLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("search", keyword)

	var res []models.Book
	if err := c.do(ctx, http.MethodGet, "book/search", q, nil, &res); err != nil {
		return nil, err
	}
	if res == nil {
		res = []models.Book{}
	}
	return res, nil
}
