package draft

import "errors"

var (
	ErrDraftClosed   = errors.New("no draft is open")
	ErrInvalidRating = errors.New("rating must be between 0 and 5 in steps of 0.5")
	ErrInvalidStatus = errors.New("reading status must be Reading or Finished")
	ErrNegativePages = errors.New("read pages must not be negative")
	ErrInvalidDate   = errors.New("date must be formatted as YYYY-MM-DD")
	ErrTagHasComma   = errors.New("tags must not contain commas")
	ErrTagIndex      = errors.New("no tag at that position")
	ErrUnknownField  = errors.New("unknown field")
)
