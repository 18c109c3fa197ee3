package services

import (
	"errors"

	"github.com/dmitrijs2005/bookreview/internal/client/client"
	"github.com/dmitrijs2005/bookreview/internal/client/draft"
	"github.com/dmitrijs2005/bookreview/internal/validation"
)

var (
	// ErrLoginRequired wraps client.ErrUnauthorized once the session has been
	// cleared; the caller should ask the user to log in again.
	ErrLoginRequired = errors.New("login required")
	// ErrSuperseded is returned by a fetch whose result was dropped because a
	// newer fetch started after it.
	ErrSuperseded   = errors.New("superseded by a newer request")
	ErrEmptyKeyword = errors.New("empty search keyword")
	ErrNoSuchResult = errors.New("no such search result")
	ErrNotSignedIn  = errors.New("not signed in")
)

// Kind is the user-facing failure class of an error.
type Kind int

const (
	KindNone Kind = iota
	KindAuthorization
	KindValidation
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	default:
		return "transport"
	}
}

// Classify maps err to its failure class. Anything unrecognised is treated
// as a transport failure.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, ErrLoginRequired) || errors.Is(err, client.ErrUnauthorized) || errors.Is(err, ErrNotSignedIn) {
		return KindAuthorization
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return KindValidation
	}

	switch {
	case errors.Is(err, validation.ErrValidation),
		errors.Is(err, draft.ErrInvalidRating),
		errors.Is(err, draft.ErrInvalidStatus),
		errors.Is(err, draft.ErrInvalidDate),
		errors.Is(err, draft.ErrNegativePages),
		errors.Is(err, draft.ErrTagHasComma),
		errors.Is(err, draft.ErrTagIndex),
		errors.Is(err, draft.ErrUnknownField),
		errors.Is(err, draft.ErrDraftClosed),
		errors.Is(err, ErrEmptyKeyword),
		errors.Is(err, ErrNoSuchResult):
		return KindValidation
	}

	return KindTransport
}
