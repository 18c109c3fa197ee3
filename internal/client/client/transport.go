package client

import (
	"net/http"

	"github.com/dmitrijs2005/bookreview/internal/common"
	"github.com/google/uuid"
)

// bearerTransport decorates every outbound request with the current
// credential (when there is one) and a fresh request id.
type bearerTransport struct {
	next   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if req.Header.Get(common.RequestIDHeaderName) == "" {
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	if t.tokens != nil {
		token, err := t.tokens.Token(req.Context())
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(req)
}
